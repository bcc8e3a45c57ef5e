package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sayed-elhawary/app-2/internal/domain/auth"
	"github.com/sayed-elhawary/app-2/internal/domain/employee"
	"github.com/sayed-elhawary/app-2/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	policyRepo employee.PolicyRepository
	jwtService jwt.Service
}

func NewAuthService(policyRepo employee.PolicyRepository, jwtService jwt.Service) auth.Service {
	return &authService{
		policyRepo: policyRepo,
		jwtService: jwtService,
	}
}

// Login implements auth.Service. A wrong code and a wrong password produce
// the same error so the response does not leak which codes exist.
func (s *authService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	policy, err := s.policyRepo.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, employee.ErrPolicyNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(policy.PasswordHash), []byte(req.Password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	token, _, err := s.jwtService.GenerateAccessToken(policy.ID, policy.Code, policy.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(policy.ID)
	if err != nil {
		return nil, err
	}

	slog.Info("employee logged in", "code", policy.Code, "role", policy.Role)
	return &auth.LoginResponse{
		AccessToken:      token,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiresAt,
		User: &employee.PolicyResponse{
			ID:          policy.ID,
			Code:        policy.Code,
			Name:        policy.Name,
			Department:  policy.Department,
			Role:        policy.Role,
			ShiftType:   string(policy.ShiftType),
			WorkingDays: string(policy.WorkingDays),
		},
	}, nil
}

// Refresh implements auth.Service.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*auth.AccessTokenResponse, error) {
	employeeID, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	policy, err := s.policyRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrPolicyNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(policy.ID, policy.Code, policy.Role)
	if err != nil {
		return nil, err
	}
	return &auth.AccessTokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout implements auth.Service.
func (s *authService) Logout(_ context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	s.jwtService.RevokeToken(refreshToken)
	return nil
}
