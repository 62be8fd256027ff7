package invoicerepo

import (
	"context"
	"errors"
	"fmt"

	"invoicedash/model"
	"invoicedash/util/database"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrInvalidID       = errors.New("invalid id")
	ErrUnknownCustomer = errors.New("unknown customer")
	ErrNotFound        = errors.New("invoice not found")
)

type Repo interface {
	Insert(ctx context.Context, inv *model.Invoice) error
	Update(ctx context.Context, inv model.Invoice) error
	Delete(ctx context.Context, id string) error

	ByID(ctx context.Context, id string) (*model.Invoice, error)
	ListFiltered(ctx context.Context, query string, limit, offset int) ([]model.InvoiceRow, error)
	CountFiltered(ctx context.Context, query string) (int, error)
}

type repo struct{ db database.Querier }

func New(db database.Querier) Repo { return &repo{db: db} }

// Insert stores a new invoice; the database assigns inv.ID.
func (r *repo) Insert(ctx context.Context, inv *model.Invoice) error {
	const q = `
INSERT INTO invoices (customer_id, amount, status, date)
VALUES ($1, $2, $3, $4)
RETURNING id::text`
	if err := r.db.QueryRow(ctx, q, inv.CustomerID, inv.Amount, string(inv.Status), inv.Date).Scan(&inv.ID); err != nil {
		return fmt.Errorf("insert invoice: %w", mapErr(err))
	}
	return nil
}

// Update rewrites customer, amount and status. date and id never change.
func (r *repo) Update(ctx context.Context, inv model.Invoice) error {
	if _, err := uuid.Parse(inv.ID); err != nil {
		return fmt.Errorf("update invoice %q: %w", inv.ID, ErrInvalidID)
	}
	const q = `
UPDATE invoices
SET customer_id = $1,
	amount = $2,
	status = $3
WHERE id = $4`
	if _, err := r.db.Exec(ctx, q, inv.CustomerID, inv.Amount, string(inv.Status), inv.ID); err != nil {
		return fmt.Errorf("update invoice %s: %w", inv.ID, mapErr(err))
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("delete invoice %q: %w", id, ErrInvalidID)
	}
	const q = `DELETE FROM invoices WHERE id = $1`
	if _, err := r.db.Exec(ctx, q, id); err != nil {
		return fmt.Errorf("delete invoice %s: %w", id, mapErr(err))
	}
	return nil
}

func (r *repo) ByID(ctx context.Context, id string) (*model.Invoice, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	const q = `
SELECT id::text, customer_id::text, amount, status, date::text
FROM invoices
WHERE id = $1`
	var (
		inv    model.Invoice
		status string
	)
	err := r.db.QueryRow(ctx, q, id).Scan(&inv.ID, &inv.CustomerID, &inv.Amount, &status, &inv.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("invoice %s: %w", id, err)
	}
	inv.Status = model.InvoiceStatus(status)
	return &inv, nil
}

const filterWhere = `
WHERE customers.name ILIKE $1
   OR customers.email ILIKE $1
   OR invoices.amount::text ILIKE $1
   OR invoices.date::text ILIKE $1
   OR invoices.status ILIKE $1`

func (r *repo) ListFiltered(ctx context.Context, query string, limit, offset int) ([]model.InvoiceRow, error) {
	const q = `
SELECT invoices.id::text, invoices.amount, invoices.date::text, invoices.status,
       customers.name, customers.email, customers.image_url
FROM invoices
JOIN customers ON invoices.customer_id = customers.id` + filterWhere + `
ORDER BY invoices.date DESC
LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, q, "%"+query+"%", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	out := []model.InvoiceRow{}
	for rows.Next() {
		var (
			row    model.InvoiceRow
			status string
		)
		if err := rows.Scan(&row.ID, &row.Amount, &row.Date, &status, &row.Name, &row.Email, &row.ImageURL); err != nil {
			return nil, err
		}
		row.Status = model.InvoiceStatus(status)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repo) CountFiltered(ctx context.Context, query string) (int, error) {
	const q = `
SELECT COUNT(*)
FROM invoices
JOIN customers ON invoices.customer_id = customers.id` + filterWhere
	var n int
	if err := r.db.QueryRow(ctx, q, "%"+query+"%").Scan(&n); err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

func mapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.InvalidTextRepresentation:
			return fmt.Errorf("%w: %s", ErrInvalidID, pgErr.Message)
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrUnknownCustomer, pgErr.ConstraintName)
		}
	}
	return err
}
