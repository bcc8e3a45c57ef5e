package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sayed-elhawary/app-2/internal/domain/auth"
	"github.com/sayed-elhawary/app-2/internal/handler/http/response"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// ClaimEmployeeCode extracts the caller's employee code from the verified
// token. Empty when absent.
func ClaimEmployeeCode(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	code, _ := claims["employee_code"].(string)
	return code
}

// ClaimRole extracts the caller's role from the verified token.
func ClaimRole(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}
