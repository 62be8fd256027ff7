package jwtx

import (
	"errors"
	"net/http"
	"time"

	jwtutil "invoicedash/util/jwt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const CookieName = "session"

func claimsFromContext(c echo.Context) (*jwtutil.Claims, error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return nil, errors.New("no jwt token in context")
	}
	claims, ok := tok.Claims.(*jwtutil.Claims)
	if !ok {
		return nil, errors.New("invalid jwt claims")
	}
	return claims, nil
}

func UserIDFromContext(c echo.Context) (string, error) {
	claims, err := claimsFromContext(c)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("sub missing in claims")
	}
	return claims.Subject, nil
}

func EmailFromContext(c echo.Context) (string, error) {
	claims, err := claimsFromContext(c)
	if err != nil {
		return "", err
	}
	if claims.Email == "" {
		return "", errors.New("email missing in claims")
	}
	return claims.Email, nil
}

// ClientKey identifies the signed-in user for per-client caching.
func ClientKey(c echo.Context) string {
	uid, err := UserIDFromContext(c)
	if err != nil {
		return "anonymous"
	}
	return uid
}

func SetSession(c echo.Context, token string, expires time.Time, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSession(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
