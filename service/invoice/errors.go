package invoicesvc

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a form field name to its messages, in order.
type FieldErrors map[string][]string

// ValidationError is returned when a submitted form fails the schema.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

// PersistenceError wraps any failure of the invoice store. The cause is kept
// for logs only; callers see a fixed message per operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s invoice: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
