package jwt

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/sayed-elhawary/app-2/internal/domain/employee"
)

type Service interface {
	GenerateAccessToken(employeeID string, code string, role employee.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(employeeID string) (token string, expiresAt int64, err error)
	ValidateToken(tokenString string) (employeeID string, code string, role employee.Role, err error)
	ValidateRefreshToken(tokenString string) (employeeID string, err error)
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	RevokeToken(token string)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                  string
	accessTokenExpirationTime  string
	refreshTokenExpirationTime string
	tokenAuth                  *jwtauth.JWTAuth
	revokedTokens              map[string]int64
	mu                         sync.RWMutex
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                  secretKey,
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:              make(map[string]int64),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(employeeID string, code string, role employee.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id":   employeeID,
		"employee_code": code,
		"role":          string(role),
		"type":          "access",
		"exp":           expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(employeeID string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.refreshTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"type":        "refresh",
		"exp":         expiresAt,
	})
	return tokenString, expiresAt, err
}

// ValidateRefreshToken verifies signature, type, and revocation state.
func (j *JWTService) ValidateRefreshToken(tokenString string) (employeeID string, err error) {
	if j.isTokenRevoked(tokenString) {
		return "", jwt.ErrInvalidJWT()
	}

	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", err
	}

	typeVal, ok := token.Get("type")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	if tokenType, ok := typeVal.(string); !ok || tokenType != "refresh" {
		return "", jwt.ErrInvalidJWT()
	}

	idVal, ok := token.Get("employee_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	employeeID, ok = idVal.(string)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	return employeeID, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = time.Now().Unix()
}

func (j *JWTService) isTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

func (j *JWTService) ValidateToken(tokenString string) (employeeID string, code string, role employee.Role, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", "", "", err
	}

	idVal, ok := token.Get("employee_id")
	if !ok {
		return "", "", "", jwt.ErrInvalidJWT()
	}
	employeeID, ok = idVal.(string)
	if !ok {
		return "", "", "", jwt.ErrInvalidJWT()
	}

	codeVal, ok := token.Get("employee_code")
	if !ok {
		return "", "", "", jwt.ErrInvalidJWT()
	}
	code, ok = codeVal.(string)
	if !ok {
		return "", "", "", jwt.ErrInvalidJWT()
	}

	roleVal, ok := token.Get("role")
	if !ok {
		return "", "", "", jwt.ErrInvalidJWT()
	}
	roleStr, ok := roleVal.(string)
	if !ok {
		return "", "", "", jwt.ErrInvalidJWT()
	}

	return employeeID, code, employee.Role(roleStr), nil
}
