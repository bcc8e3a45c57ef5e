package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sayed-elhawary/app-2/internal/config"
	appHTTP "github.com/sayed-elhawary/app-2/internal/handler/http"
	"github.com/sayed-elhawary/app-2/internal/pkg/cron"
	"github.com/sayed-elhawary/app-2/internal/pkg/database"
	"github.com/sayed-elhawary/app-2/internal/pkg/jwt"
	"github.com/sayed-elhawary/app-2/internal/repository/postgresql"
	attendanceService "github.com/sayed-elhawary/app-2/internal/service/attendance"
	authService "github.com/sayed-elhawary/app-2/internal/service/auth"
	employeeService "github.com/sayed-elhawary/app-2/internal/service/employee"
	payrollService "github.com/sayed-elhawary/app-2/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	employeeSvc := employeeService.NewPolicyService(db, employeeRepo)
	attendanceSvc := attendanceService.NewFactService(attendanceRepo, employeeRepo)
	payrollSvc := payrollService.NewSummaryService(attendanceRepo, employeeRepo)

	scheduler := cron.NewScheduler()
	monthlyGuard := cron.NewPeriodGuard(cron.MonthKey)
	scheduler.AddJob("reset-monthly-late-allowance", time.Hour, monthlyGuard.Wrap(func(ctx context.Context) error {
		return employeeSvc.ResetMonthlyLateAllowance(ctx, "")
	}))
	annualGuard := cron.NewPeriodGuard(cron.YearKey)
	scheduler.AddJob("reset-annual-leave-balance", time.Hour, annualGuard.Wrap(func(ctx context.Context) error {
		return employeeSvc.ResetAnnualLeaveBalance(ctx, "")
	}))
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		employeeHandler,
		attendanceHandler,
		payrollHandler,
		cfg.App.AllowedOrigins,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
