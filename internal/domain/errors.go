// Package domain defines the typed errors the settlement engine returns.
// Handlers map them onto HTTP statuses; services never touch HTTP.
package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ValidationError marks input the caller can fix.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// OutOfStockError is returned when an order asks for more units than the
// product's cached stock holds. Never partially fulfilled.
type OutOfStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// InventoryInconsistencyError means the lot ledger does not cover the cached
// stock for a product that has received batches. The settlement transaction
// rolls back and the condition is surfaced as a server fault, not retried.
type InventoryInconsistencyError struct {
	ProductID uuid.UUID
	Needed    int
	Covered   int
}

func (e *InventoryInconsistencyError) Error() string {
	return fmt.Sprintf("inventory ledger inconsistent for product %s: needed %d units, lots cover %d",
		e.ProductID, e.Needed, e.Covered)
}

// InvalidTransitionError rejects backward or out-of-order lifecycle moves.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s cannot move from %q to %q", e.Entity, e.From, e.To)
}

// NotFoundError wraps lookups by ID or code that matched nothing.
type NotFoundError struct {
	Entity string
	Ref    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Ref)
}

func NewNotFound(entity, ref string) error {
	return &NotFoundError{Entity: entity, Ref: ref}
}

// IsUserError reports whether err is caused by client input rather than a
// server-side fault.
func IsUserError(err error) bool {
	var ve *ValidationError
	var oos *OutOfStockError
	var it *InvalidTransitionError
	var nf *NotFoundError
	return errors.As(err, &ve) || errors.As(err, &oos) || errors.As(err, &it) || errors.As(err, &nf)
}
