package auth

import (
	"github.com/sayed-elhawary/app-2/internal/domain/employee"
	"github.com/sayed-elhawary/app-2/internal/pkg/validator"
)

type LoginRequest struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "employee code is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LoginResponse carries the access token in the body; the refresh token is
// delivered as an HttpOnly cookie and never serialized.
type LoginResponse struct {
	AccessToken      string                   `json:"access_token"`
	User             *employee.PolicyResponse `json:"user"`
	RefreshToken     string                   `json:"-"`
	RefreshExpiresAt int64                    `json:"-"`
}

// AccessTokenResponse is the payload of a successful token refresh.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}
