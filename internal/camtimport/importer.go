// Package camtimport implements the CAMT.053 bank statement import
// pipeline: reading the document, selecting the statements that belong to
// the destination journal, parsing balances and entries, and handing the
// assembled statements to the repository.
package camtimport

import (
	"fjacquet/camt-import/internal/importerror"
	"fjacquet/camt-import/internal/logging"
	"fjacquet/camt-import/internal/models"
	"fjacquet/camt-import/internal/repository"
)

// Importer runs CAMT.053 imports against a repository.
type Importer struct {
	repo   repository.Repository
	log    logging.Logger
	strict bool
}

// New creates an Importer. With strict set, any statement in the file that
// does not belong to the journal fails the whole import instead of being
// skipped with a warning.
func New(repo repository.Repository, log logging.Logger, strict bool) *Importer {
	return &Importer{repo: repo, log: log, strict: strict}
}

// Result is the outcome of a successful import.
type Result struct {
	// StatementIDs are the repository ids of the created statements, in
	// document order. Empty when every statement in the file was skipped.
	StatementIDs []int64
	// Statements are the created statements themselves, aligned with
	// StatementIDs.
	Statements []models.PersistedStatement
	// Warnings are the non-fatal findings of the run.
	Warnings []importerror.Warning
}

// Import parses raw CAMT.053 bytes and persists the statements belonging to
// the journal. Nothing is persisted when an error is returned.
func (imp *Importer) Import(raw []byte, journalID, companyID int64) (*Result, error) {
	log := imp.log.WithField("journal_id", journalID)

	message, err := readDocument(raw)
	if err != nil {
		return nil, err
	}

	journal, err := imp.repo.Journal(journalID)
	if err != nil {
		return nil, err
	}
	effectiveCurrency := journal.CurrencyCode
	if effectiveCurrency == "" {
		effectiveCurrency, err = imp.repo.CompanyCurrency(companyID)
		if err != nil {
			return nil, err
		}
	}

	resolver := newCurrencyResolver(imp.repo)
	if _, err := resolver.resolve(effectiveCurrency); err != nil {
		return nil, err
	}

	journalAccount := models.NormalizeAccountIdentifier(journal.AccountIdentifier)
	accepted, warnings, err := selectStatements(message, journalAccount, effectiveCurrency, imp.strict, log)
	if err != nil {
		return nil, err
	}
	if len(accepted) == 0 {
		log.Warn("No statement in the file matches the journal, nothing imported")
		return &Result{Warnings: warnings}, nil
	}

	candidates := make([]*models.StatementCandidate, 0, len(accepted))
	for _, stmt := range accepted {
		candidate, stmtWarnings, err := parseStatement(stmt, resolver, log)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, stmtWarnings...)
		candidates = append(candidates, candidate)
	}

	statements, err := assembleStatements(candidates, journalID, imp.repo, resolver)
	if err != nil {
		return nil, err
	}
	ids, err := imp.repo.CreateStatements(statements)
	if err != nil {
		return nil, err
	}

	log.Info("Import finished",
		logging.F("statements", len(ids)),
		logging.F("warnings", len(warnings)))
	return &Result{StatementIDs: ids, Statements: statements, Warnings: warnings}, nil
}
