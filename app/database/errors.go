package database

import (
	"database/sql"
	"errors"
)

// Validation and conflict errors surfaced by the mutation paths. Handlers
// map these to HTTP status codes; sql.ErrNoRows doubles as the not-found
// signal throughout the package.
var (
	ErrInvalidAmount       = errors.New("payment amount must be greater than zero")
	ErrInvalidMethod       = errors.New("unknown payment method")
	ErrExceedsBalance      = errors.New("payment amount exceeds the fee's remaining balance")
	ErrDuplicatePayment    = errors.New("fee already has a payment recorded against it")
	ErrFeeAlreadyCollected = errors.New("fee is already fully collected")
	ErrTenantHasContracts  = errors.New("tenant still has contracts")
	ErrPropertyInUse       = errors.New("property is attached to a contract")
	ErrInvalidArea         = errors.New("property area must be greater than zero")
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so the read helpers can run
// inside or outside a transaction.
type DBTX interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}
