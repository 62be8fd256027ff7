package authsvc

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"invoicedash/model"
	authrepo "invoicedash/repository/auth"
	"invoicedash/util/hash"
	jwtutil "invoicedash/util/jwt"

	"github.com/go-playground/validator/v10"
)

type Repo interface {
	ByEmail(ctx context.Context, email string) (*model.User, error)
}

type credentials struct {
	r      Repo
	v      *validator.Validate
	secret string
	ttl    time.Duration
}

// NewCredentials returns the email/password provider. Sessions are signed
// with secret and live for ttl.
func NewCredentials(r Repo, v *validator.Validate, secret string, ttl time.Duration) Provider {
	return &credentials{r: r, v: v, secret: secret, ttl: ttl}
}

func (c *credentials) SignIn(ctx context.Context, provider string, form url.Values) (*Session, error) {
	if provider != ProviderCredentials {
		return nil, makeErr(ErrConfiguration, fmt.Errorf("unknown provider %q", provider))
	}

	req := model.LoginReq{
		Email:    strings.TrimSpace(form.Get("email")),
		Password: form.Get("password"),
	}
	if err := c.v.Struct(req); err != nil {
		return nil, makeErr(ErrCredentialsSignin, err)
	}

	u, err := c.r.ByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, authrepo.ErrNotFound) {
			return nil, makeErr(ErrCredentialsSignin, nil)
		}
		return nil, makeErr(ErrCallbackRoute, err)
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, makeErr(ErrCredentialsSignin, nil)
	}

	token, exp, err := jwtutil.Issue(c.secret, u.ID, u.Email, u.Name, c.ttl)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}
	return &Session{
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Token:     token,
		ExpiresAt: exp,
	}, nil
}
