package authsvc

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"
)

// ErrCode classifies authentication failures.
type ErrCode string

const (
	ErrCredentialsSignin ErrCode = "CredentialsSignin"
	ErrCallbackRoute     ErrCode = "CallbackRouteError"
	ErrConfiguration     ErrCode = "Configuration"
)

// AuthError is a classified authentication failure.
type AuthError struct {
	Kind ErrCode
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

func (e *AuthError) Unwrap() error { return e.Err }
func (e *AuthError) Code() ErrCode { return e.Kind }

func makeErr(k ErrCode, err error) error { return &AuthError{Kind: k, Err: err} }

// Code extracts the auth failure kind, or "" when err is not an auth failure.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

const (
	ProviderCredentials = "credentials"
	DefaultRedirect     = "/dashboard"

	msgInvalidCreds = "Invalid credentials."
	msgWentWrong    = "Something went wrong."
)

type Session struct {
	UserID    string
	Email     string
	Name      string
	Token     string
	ExpiresAt time.Time
}

// Provider signs a user in with the named mechanism.
type Provider interface {
	SignIn(ctx context.Context, provider string, form url.Values) (*Session, error)
}

// Result of an authentication attempt. Message is set on a handled failure;
// otherwise Session is set and the caller should navigate to Redirect.
type Result struct {
	Message  string
	Session  *Session
	Redirect string
}

type Service interface {
	// Authenticate signs in with the credentials in form. prev is the result
	// of the previous attempt and is not consulted. Failures that are not
	// authentication failures are returned as errors, untouched.
	Authenticate(ctx context.Context, prev string, form url.Values) (Result, error)
}

type service struct{ p Provider }

func New(p Provider) Service { return &service{p: p} }

func (s *service) Authenticate(ctx context.Context, _ string, form url.Values) (Result, error) {
	sess, err := s.p.SignIn(ctx, ProviderCredentials, form)
	if err != nil {
		switch Code(err) {
		case "":
			return Result{}, err
		case ErrCredentialsSignin:
			return Result{Message: msgInvalidCreds}, nil
		default:
			return Result{Message: msgWentWrong}, nil
		}
	}
	return Result{Session: sess, Redirect: safeRedirect(form.Get("redirectTo"))}, nil
}

// safeRedirect keeps post-login navigation on this site.
func safeRedirect(to string) string {
	if to == "" || !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") || strings.Contains(to, `\`) {
		return DefaultRedirect
	}
	return to
}
