package security

import (
	"errors"
	"time"

	"snapurl_admin/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenAuth signs the gateway's own session cookie. This is distinct from the
// upstream SnapURL bearer token, which never leaves the server side.
var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.SessionKey, nil)
}

// GenerateSessionToken signs a cookie value binding the browser to the
// server-side session id.
func GenerateSessionToken(sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(config.AppConfig.SessionExp).Unix(),
		"iat": time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// GetSessionIDFromClaims extracts the session id from verified claims.
func GetSessionIDFromClaims(claims jwt.MapClaims) (string, error) {
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", errors.New("sid claim is missing or not a string")
	}
	return sid, nil
}
