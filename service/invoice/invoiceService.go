package invoicesvc

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"invoicedash/model"
	invoicerepo "invoicedash/repository/invoice"

	"github.com/shopspring/decimal"
)

// InvoicesRoute is the dashboard listing every mutation refreshes.
const InvoicesRoute = "/dashboard/invoices"

// ItemsPerPage is the page size of the invoices table.
const ItemsPerPage = 6

const (
	msgCreateInvalid = "Missing Fields. Failed to Create Invoice."
	msgUpdateInvalid = "Missing Fields. Failed to Update Invoice."
	msgCreateFailed  = "Database Error: Failed to create invoice."
	msgUpdateFailed  = "Database Error: Failed to update invoice."
	msgDeleteFailed  = "Database Error: Failed to delete invoice"
	msgDeleted       = "Deleted Invoice."
)

// CacheInvalidator drops any cached rendering of a route.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, route string)
}

// Result is the outcome of a mutation. Exactly one of State or Redirect is
// meaningful: a non-empty Redirect means the caller should navigate there.
// Err carries the failure variant (*ValidationError or *PersistenceError).
type Result struct {
	State    model.State
	Redirect string
	Err      error
}

type Page struct {
	Data       []model.InvoiceRow `json:"data"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
}

type Repo interface {
	Insert(ctx context.Context, inv *model.Invoice) error
	Update(ctx context.Context, inv model.Invoice) error
	Delete(ctx context.Context, id string) error
	ByID(ctx context.Context, id string) (*model.Invoice, error)
	ListFiltered(ctx context.Context, query string, limit, offset int) ([]model.InvoiceRow, error)
	CountFiltered(ctx context.Context, query string) (int, error)
}

type CustomerRepo interface {
	List(ctx context.Context) ([]model.Customer, error)
}

type Service interface {
	// Create validates the form and inserts a new invoice dated today (UTC).
	Create(ctx context.Context, prev model.State, form url.Values) Result
	// Update validates the form and rewrites customer, amount and status of id.
	Update(ctx context.Context, id string, form url.Values) Result
	// Delete removes id. It never redirects.
	Delete(ctx context.Context, id string) Result

	List(ctx context.Context, query string, page int) (*Page, error)
	// Detail returns nil, nil when the invoice does not exist.
	Detail(ctx context.Context, id string) (*model.InvoiceForm, error)
	Customers(ctx context.Context) ([]model.Customer, error)
}

type Option func(*service)

// WithClock replaces time.Now as the source of invoice dates.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

type service struct {
	r      Repo
	cr     CustomerRepo
	cache  CacheInvalidator
	schema *Schema
	log    *slog.Logger
	now    func() time.Time
}

func New(r Repo, cr CustomerRepo, cache CacheInvalidator, log *slog.Logger, opts ...Option) Service {
	s := &service{
		r:      r,
		cr:     cr,
		cache:  cache,
		schema: NewSchema(),
		log:    log,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, _ model.State, form url.Values) Result {
	in, err := s.schema.Parse(form)
	if err != nil {
		return rejected(err, msgCreateInvalid)
	}

	inv := &model.Invoice{
		CustomerID: in.CustomerID,
		Amount:     in.AmountInCents(),
		Status:     in.Status,
		Date:       s.now().UTC().Format(time.DateOnly),
	}
	if err := s.r.Insert(ctx, inv); err != nil {
		return s.failed("create", err, msgCreateFailed)
	}
	s.log.Info("invoice created", "id", inv.ID, "customer_id", inv.CustomerID, "amount", inv.Amount)

	s.cache.Invalidate(ctx, InvoicesRoute)
	return Result{Redirect: InvoicesRoute}
}

func (s *service) Update(ctx context.Context, id string, form url.Values) Result {
	in, err := s.schema.Parse(form)
	if err != nil {
		return rejected(err, msgUpdateInvalid)
	}

	inv := model.Invoice{
		ID:         id,
		CustomerID: in.CustomerID,
		Amount:     in.AmountInCents(),
		Status:     in.Status,
	}
	if err := s.r.Update(ctx, inv); err != nil {
		return s.failed("update", err, msgUpdateFailed)
	}
	s.log.Info("invoice updated", "id", id, "amount", inv.Amount, "status", inv.Status)

	s.cache.Invalidate(ctx, InvoicesRoute)
	return Result{Redirect: InvoicesRoute}
}

func (s *service) Delete(ctx context.Context, id string) Result {
	if err := s.r.Delete(ctx, id); err != nil {
		return s.failed("delete", err, msgDeleteFailed)
	}
	s.log.Info("invoice deleted", "id", id)

	s.cache.Invalidate(ctx, InvoicesRoute)
	return Result{State: model.State{Message: msgDeleted}}
}

func (s *service) List(ctx context.Context, query string, page int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	total, err := s.r.CountFiltered(ctx, query)
	if err != nil {
		return nil, err
	}
	rows, err := s.r.ListFiltered(ctx, query, ItemsPerPage, (page-1)*ItemsPerPage)
	if err != nil {
		return nil, err
	}
	return &Page{
		Data:       rows,
		Page:       page,
		TotalPages: (total + ItemsPerPage - 1) / ItemsPerPage,
	}, nil
}

func (s *service) Detail(ctx context.Context, id string) (*model.InvoiceForm, error) {
	inv, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, invoicerepo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &model.InvoiceForm{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     decimal.New(inv.Amount, -2),
		Status:     inv.Status,
	}, nil
}

func (s *service) Customers(ctx context.Context) ([]model.Customer, error) {
	return s.cr.List(ctx)
}

func rejected(err error, msg string) Result {
	st := model.State{Message: msg}
	var ve *ValidationError
	if errors.As(err, &ve) {
		st.Errors = ve.Fields
	}
	return Result{State: st, Err: err}
}

func (s *service) failed(op string, err error, msg string) Result {
	pe := &PersistenceError{Op: op, Err: err}
	s.log.Error("invoice store failed",
		"op", op,
		"err", err,
		"invalid_id", errors.Is(err, invoicerepo.ErrInvalidID),
		"unknown_customer", errors.Is(err, invoicerepo.ErrUnknownCustomer),
	)
	return Result{State: model.State{Message: msg}, Err: pe}
}
