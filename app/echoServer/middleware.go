// app/echoServer/middleware.go
package echoServer

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"invoicedash/app/echoServer/jwtx"
	jwtutil "invoicedash/util/jwt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const loginRoute = "/login"

func RegisterMiddlewares(e *echo.Echo, log *slog.Logger) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(Slog(log))
}

func Slog(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let echo render the error first so the logged status is real
				c.Error(err)
			}
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			log.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			)
			return nil
		}
	}
}

// RequireSession lets through requests carrying a valid session cookie and
// sends everyone else to the login page, remembering where they were going.
func RequireSession(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(secret),
		TokenLookup:   "cookie:" + jwtx.CookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return new(jwtutil.Claims) },
		ErrorHandler: func(c echo.Context, err error) error {
			target := loginRoute + "?callbackUrl=" + url.QueryEscape(c.Request().URL.RequestURI())
			return c.Redirect(http.StatusSeeOther, target)
		},
	})
}

// RedirectIfSignedIn keeps signed-in users off the login page.
func RedirectIfSignedIn(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(jwtx.CookieName)
			if err == nil {
				if _, err := jwtutil.Parse(ck.Value, secret); err == nil {
					return c.Redirect(http.StatusSeeOther, "/dashboard")
				}
			}
			return next(c)
		}
	}
}
