package invoicerepo

import (
	"context"
	"errors"
	"testing"

	"invoicedash/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeRow struct{ scanFn func(dest ...any) error }

func (r fakeRow) Scan(dest ...any) error { return r.scanFn(dest...) }

type fakeDB struct {
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	calls      int
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls++
	return f.execFn(ctx, sql, args...)
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.calls++
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.calls++
	return f.queryRowFn(ctx, sql, args...)
}

const invoiceID = "cc27c14a-0acf-4f4a-a6c9-d45682c144b9"

func TestInsert_AssignsID(t *testing.T) {
	var got []any
	db := &fakeDB{queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
		got = args
		return fakeRow{scanFn: func(dest ...any) error {
			*(dest[0].(*string)) = invoiceID
			return nil
		}}
	}}

	inv := &model.Invoice{CustomerID: "cust-1", Amount: 15795, Status: model.InvoicePending, Date: "2026-10-17"}
	require.NoError(t, New(db).Insert(context.Background(), inv))
	require.Equal(t, invoiceID, inv.ID)
	require.Equal(t, []any{"cust-1", int64(15795), "pending", "2026-10-17"}, got)
}

func TestInsert_ForeignKeyViolation(t *testing.T) {
	db := &fakeDB{queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
		return fakeRow{scanFn: func(dest ...any) error {
			return &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "invoices_customer_id_fkey"}
		}}
	}}

	err := New(db).Insert(context.Background(), &model.Invoice{CustomerID: "nope"})
	require.ErrorIs(t, err, ErrUnknownCustomer)
}

func TestUpdate_InvalidIDSkipsDatabase(t *testing.T) {
	db := &fakeDB{}
	err := New(db).Update(context.Background(), model.Invoice{ID: "not-a-uuid"})
	require.ErrorIs(t, err, ErrInvalidID)
	require.Zero(t, db.calls)
}

func TestUpdate_PassesFields(t *testing.T) {
	var got []any
	db := &fakeDB{execFn: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
		got = args
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}}

	err := New(db).Update(context.Background(), model.Invoice{ID: invoiceID, CustomerID: "cust-2", Amount: 100, Status: model.InvoicePaid})
	require.NoError(t, err)
	require.Equal(t, []any{"cust-2", int64(100), "paid", invoiceID}, got)
}

func TestDelete(t *testing.T) {
	db := &fakeDB{execFn: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
		require.Equal(t, []any{invoiceID}, args)
		return pgconn.NewCommandTag("DELETE 1"), nil
	}}
	require.NoError(t, New(db).Delete(context.Background(), invoiceID))

	db.execFn = func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
		return pgconn.CommandTag{}, errors.New("conn reset")
	}
	require.Error(t, New(db).Delete(context.Background(), invoiceID))
}

func TestByID_NotFound(t *testing.T) {
	db := &fakeDB{queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
		return fakeRow{scanFn: func(dest ...any) error { return pgx.ErrNoRows }}
	}}

	_, err := New(db).ByID(context.Background(), invoiceID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = New(db).ByID(context.Background(), "garbage")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMapErr(t *testing.T) {
	err := mapErr(&pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation, Message: "invalid input syntax for type uuid"})
	require.ErrorIs(t, err, ErrInvalidID)

	plain := errors.New("boom")
	require.Equal(t, plain, mapErr(plain))
}
