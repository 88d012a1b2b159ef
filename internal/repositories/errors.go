package repositories

import (
	"database/sql"
	"errors"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It wraps more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrForeignKey is returned when a write violates a foreign key constraint,
	// e.g. deleting a store that products or sales still reference.
	ErrForeignKey = errors.New("foreign key constraint violated")
)

// SQLExecutor is satisfied by *sql.DB, *sql.Tx and Transaction, so repository
// methods can run against a direct connection or inside a transaction.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// Transaction is an open database transaction.
type Transaction interface {
	SQLExecutor
	Commit() error
	Rollback() error
}

// Database is the subset of *sql.DB the services need. Keeping it an
// interface lets tests substitute an in-memory implementation.
type Database interface {
	SQLExecutor
	Begin() (Transaction, error)
}

type sqlDatabase struct {
	*sql.DB
}

func (d sqlDatabase) Begin() (Transaction, error) {
	return d.DB.Begin()
}

// WrapDB adapts a *sql.DB to the Database interface.
func WrapDB(db *sql.DB) Database {
	return sqlDatabase{db}
}
