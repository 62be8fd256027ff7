package customerrepo

import (
	"context"
	"fmt"

	"invoicedash/model"
	"invoicedash/util/database"
)

type Repo interface {
	List(ctx context.Context) ([]model.Customer, error)
}

type repo struct{ db database.Querier }

func New(db database.Querier) Repo { return &repo{db: db} }

func (r *repo) List(ctx context.Context) ([]model.Customer, error) {
	const q = `
SELECT id::text, name, email, image_url
FROM customers
ORDER BY name ASC`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	out := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.ImageURL); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
