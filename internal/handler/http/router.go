package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/sayed-elhawary/app-2/internal/handler/http/middleware"
	"github.com/sayed-elhawary/app-2/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	allowedOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "app-2"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Post("/bulk-update", employeeHandler.BulkUpdate)
				r.Post("/reset-late-allowance", employeeHandler.ResetMonthlyLateAllowance)
				r.Post("/reset-leave-balance", employeeHandler.ResetAnnualLeaveBalance)
				r.Get("/{id}", employeeHandler.GetByID)
				r.Put("/{id}", employeeHandler.Update)
				r.Patch("/{id}/finance", employeeHandler.UpdateFinance)
				r.Delete("/{id}", employeeHandler.Delete)
			})

			r.Route("/attendance", func(r chi.Router) {
				// Record writes are admin operations
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", attendanceHandler.RecordDay)
					r.Post("/{code}/{date}/recompute", attendanceHandler.Recompute)
					r.Delete("/{code}/{date}", attendanceHandler.DeleteDay)
				})

				r.Get("/{code}", attendanceHandler.ListDays)
				r.Get("/{code}/{date}", attendanceHandler.GetDay)
			})

			r.Get("/salary-report", payrollHandler.SalaryReport)
		})
	})
	return r
}
