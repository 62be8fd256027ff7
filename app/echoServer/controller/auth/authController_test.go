package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"invoicedash/app/echoServer/jwtx"
	authsvc "invoicedash/service/auth"
	"invoicedash/util/logx"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type svcFunc func(ctx context.Context, prev string, form url.Values) (authsvc.Result, error)

func (f svcFunc) Authenticate(ctx context.Context, prev string, form url.Values) (authsvc.Result, error) {
	return f(ctx, prev, form)
}

func login(t *testing.T, svc authsvc.Service, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	ct := &Controller{Svc: svc, Log: logx.Nop()}
	e.POST("/login", ct.Login)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLogin_Success(t *testing.T) {
	svc := svcFunc(func(ctx context.Context, prev string, form url.Values) (authsvc.Result, error) {
		require.Equal(t, "user@nextmail.com", form.Get("email"))
		return authsvc.Result{
			Session:  &authsvc.Session{UserID: "u1", Token: "signed.jwt.token", ExpiresAt: time.Now().Add(time.Hour)},
			Redirect: "/dashboard",
		}, nil
	})

	rec := login(t, svc, url.Values{"email": {"user@nextmail.com"}, "password": {"123456"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, jwtx.CookieName, cookies[0].Name)
	require.Equal(t, "signed.jwt.token", cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)
}

func TestLogin_IgnoresPostedPreviousResult(t *testing.T) {
	svc := svcFunc(func(ctx context.Context, prev string, form url.Values) (authsvc.Result, error) {
		require.Empty(t, prev)
		return authsvc.Result{Message: "Invalid credentials."}, nil
	})

	rec := login(t, svc, url.Values{"email": {"a@b.co"}, "password": {"x"}, "errorMessage": {"Something went wrong."}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := svcFunc(func(ctx context.Context, prev string, form url.Values) (authsvc.Result, error) {
		return authsvc.Result{Message: "Invalid credentials."}, nil
	})

	rec := login(t, svc, url.Values{"email": {"a@b.co"}})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"Invalid credentials."}`, rec.Body.String())
	require.Empty(t, rec.Result().Cookies())
}

func TestLogin_UnexpectedError(t *testing.T) {
	svc := svcFunc(func(ctx context.Context, prev string, form url.Values) (authsvc.Result, error) {
		return authsvc.Result{}, errors.New("boom")
	})

	rec := login(t, svc, url.Values{})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLogout(t *testing.T) {
	e := echo.New()
	ct := &Controller{Log: logx.Nop()}
	e.POST("/logout", ct.Logout)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	require.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}
