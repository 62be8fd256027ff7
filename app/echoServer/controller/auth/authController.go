package auth

import (
	"log/slog"
	"net/http"

	"invoicedash/app/echoServer/jwtx"
	"invoicedash/app/echoServer/navigate"
	authsvc "invoicedash/service/auth"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc authsvc.Service
	Log *slog.Logger
	// SecureCookie marks the session cookie Secure (HTTPS only).
	SecureCookie bool
}

// LoginPage
// @Summary      Login page
// @Tags         auth
// @Produce      json
// @Param        callbackUrl  query  string  false  "where to go after sign in"
// @Success      200  {object}  map[string]any
// @Success      303  "already signed in"
// @Router       /login [get]
func (ct *Controller) LoginPage(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message":     "sign in",
		"callbackUrl": c.QueryParam("callbackUrl"),
	})
}

// Login
// @Summary      Login
// @Description  Sign in with email + password. Sets the session cookie and redirects.
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        email       formData  string  true   "email"
// @Param        password    formData  string  true   "password"
// @Param        redirectTo  formData  string  false  "relative path to land on"
// @Success      303  "redirect"
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /login [post]
func (ct *Controller) Login(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := ct.Svc.Authenticate(c.Request().Context(), "", form)
	if err != nil {
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		ct.Log.Error("login failed",
			"err", err,
			"req_id", rid,
			"path", c.Path(),
			"method", c.Request().Method,
		)
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}
	if res.Session == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": res.Message})
	}

	jwtx.SetSession(c, res.Session.Token, res.Session.ExpiresAt, ct.SecureCookie)
	ct.Log.Info("signed in", "user_id", res.Session.UserID)
	return navigate.New(c).RedirectTo(res.Redirect)
}

// Logout
// @Summary      Logout
// @Tags         auth
// @Success      303  "redirect to /login"
// @Router       /logout [post]
func (ct *Controller) Logout(c echo.Context) error {
	jwtx.ClearSession(c)
	return navigate.New(c).RedirectTo("/login")
}
