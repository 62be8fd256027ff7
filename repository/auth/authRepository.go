package auth

import (
	"context"
	"errors"
	"fmt"

	"invoicedash/model"
	"invoicedash/util/database"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("user not found")

type Repo interface {
	ByEmail(ctx context.Context, email string) (*model.User, error)
}

type repo struct{ db database.Querier }

func New(db database.Querier) Repo { return &repo{db: db} }

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.db.QueryRow(ctx, `
        SELECT id::text, name, email, password
        FROM users
        WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("user by email: %w", err)
	}
	return u, nil
}
