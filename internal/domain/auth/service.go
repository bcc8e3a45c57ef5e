package auth

import "context"

type Service interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)

	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (*AccessTokenResponse, error)

	// Logout revokes the refresh token. Revoking an already revoked or
	// unknown token is not an error.
	Logout(ctx context.Context, refreshToken string) error
}
