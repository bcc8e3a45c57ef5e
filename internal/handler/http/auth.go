package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sayed-elhawary/app-2/internal/domain/auth"
	"github.com/sayed-elhawary/app-2/internal/handler/http/response"
	"github.com/sayed-elhawary/app-2/internal/pkg/jwt"
)

type AuthHandler struct {
	authService auth.Service
	jwtService  jwt.Service
}

func NewAuthHandler(authService auth.Service, jwtService jwt.Service) AuthHandler {
	return AuthHandler{
		authService: authService,
		jwtService:  jwtService,
	}
}

// Login authenticates an employee by code and password. The refresh token
// travels only in an HttpOnly cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(resp.RefreshToken, resp.RefreshExpiresAt))
	response.Success(w, resp)
}

// Refresh issues a new access token from the refresh-token cookie.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	resp, err := h.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Logout revokes the refresh token and clears its cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("refresh_token"); err == nil {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	expired := h.jwtService.RefreshTokenCookie("", time.Now().Add(-time.Hour).Unix())
	http.SetCookie(w, expired)
	response.SuccessWithMessage(w, "Logged out", nil)
}
