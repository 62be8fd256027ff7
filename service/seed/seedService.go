// Package seed bootstraps the invoices schema and loads placeholder rows.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	"invoicedash/model"
	"invoicedash/util/database"
	"invoicedash/util/hash"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed placeholder.yaml
var placeholder []byte

type User struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type Customer struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	ImageURL string `yaml:"image_url"`
}

type Invoice struct {
	ID         string `yaml:"id"`
	CustomerID string `yaml:"customer_id"`
	Amount     int64  `yaml:"amount"`
	Status     string `yaml:"status"`
	Date       string `yaml:"date"`
}

type Data struct {
	Users     []User     `yaml:"users"`
	Customers []Customer `yaml:"customers"`
	Invoices  []Invoice  `yaml:"invoices"`
}

// Load reads seed data from path, or the built-in placeholder set when path
// is empty.
func Load(path string) (*Data, error) {
	if path == "" {
		return Parse(placeholder)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

func Parse(b []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("seed yaml: %w", err)
	}
	for i := range d.Invoices {
		inv := &d.Invoices[i]
		if inv.Amount < 0 {
			return nil, fmt.Errorf("invoice %d: negative amount %d", i, inv.Amount)
		}
		if !model.InvoiceStatus(inv.Status).Valid() {
			return nil, fmt.Errorf("invoice %d: bad status %q", i, inv.Status)
		}
		if _, err := time.Parse(time.DateOnly, inv.Date); err != nil {
			return nil, fmt.Errorf("invoice %d: bad date %q", i, inv.Date)
		}
		if inv.ID == "" {
			inv.ID = invoiceID(*inv)
		}
	}
	return &d, nil
}

// invoiceID derives a stable id so reseeding does not duplicate rows.
func invoiceID(inv Invoice) string {
	key := fmt.Sprintf("%s|%d|%s|%s", inv.CustomerID, inv.Amount, inv.Status, inv.Date)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID DEFAULT uuid_generate_v4() PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID DEFAULT uuid_generate_v4() PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		image_url VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id UUID DEFAULT uuid_generate_v4() PRIMARY KEY,
		customer_id UUID NOT NULL REFERENCES customers(id),
		amount INT NOT NULL CHECK (amount >= 0),
		status VARCHAR(255) NOT NULL CHECK (status IN ('pending', 'paid')),
		date DATE NOT NULL
	)`,
}

type Seeder struct {
	db  database.Querier
	log *slog.Logger
}

func New(db database.Querier, log *slog.Logger) *Seeder {
	return &Seeder{db: db, log: log}
}

func (s *Seeder) Run(ctx context.Context, d *Data) error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}

	for _, u := range d.Users {
		hashed, err := hash.HashPassword(u.Password)
		if err != nil {
			return err
		}
		const q = `
INSERT INTO users (id, name, email, password)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING`
		if _, err := s.db.Exec(ctx, q, u.ID, u.Name, u.Email, hashed); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	for _, c := range d.Customers {
		const q = `
INSERT INTO customers (id, name, email, image_url)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING`
		if _, err := s.db.Exec(ctx, q, c.ID, c.Name, c.Email, c.ImageURL); err != nil {
			return fmt.Errorf("seed customer %s: %w", c.Email, err)
		}
	}

	for _, inv := range d.Invoices {
		const q = `
INSERT INTO invoices (id, customer_id, amount, status, date)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING`
		if _, err := s.db.Exec(ctx, q, inv.ID, inv.CustomerID, inv.Amount, inv.Status, inv.Date); err != nil {
			return fmt.Errorf("seed invoice %s: %w", inv.ID, err)
		}
	}

	s.log.Info("seeded",
		"users", len(d.Users),
		"customers", len(d.Customers),
		"invoices", len(d.Invoices),
	)
	return nil
}
