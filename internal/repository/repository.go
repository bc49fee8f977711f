// Package repository defines the external collaborators of the importer:
// the journal registry, the currency registry and the statement store. The
// importer only talks to the Repository interface; implementations decide
// where the data lives.
package repository

import (
	"fmt"

	"fjacquet/camt-import/internal/models"
)

// Repository is the contract the import pipeline depends on.
type Repository interface {
	// Journal returns the destination journal configuration.
	Journal(journalID int64) (models.Journal, error)

	// CompanyCurrency returns the fallback currency code of a company.
	CompanyCurrency(companyID int64) (string, error)

	// LookupCurrency resolves an ISO-4217 code against the currency
	// registry. The second return value is false when the code is unknown.
	LookupCurrency(code string) (models.Currency, bool, error)

	// StatementNameExists reports whether a statement with the given name
	// was already persisted in the journal.
	StatementNameExists(journalID int64, name string) (bool, error)

	// CreateStatements persists all statements in one batch and returns
	// their ids in the same order. Either all statements persist or none.
	CreateStatements(statements []models.PersistedStatement) ([]int64, error)
}

// NotFoundError reports a missing journal or company.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}
