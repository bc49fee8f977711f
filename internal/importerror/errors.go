// Package importerror defines the error and warning taxonomy of the
// statement importer. Fatal conditions are errors and abort the import
// before anything is persisted; warnings are plain values returned to the
// caller alongside the created statement ids. The two channels never mix.
package importerror

import (
	"fmt"
	"strings"
)

// Kind is the stable machine-readable tag of a fatal import error.
type Kind string

const (
	// KindParseError tags malformed XML input.
	KindParseError Kind = "parse_error"
	// KindUnsupportedDocument tags files that are not CAMT.053 or carry no statements.
	KindUnsupportedDocument Kind = "unsupported_document"
	// KindJournalMissingAccount tags a journal without a configured account
	// faced with a file holding several candidate accounts.
	KindJournalMissingAccount Kind = "journal_missing_account"
	// KindAccountMismatch tags a file whose only statement targets a
	// different account or currency than the journal.
	KindAccountMismatch Kind = "account_mismatch"
	// KindAlreadyImported tags a replay of an already ingested statement.
	KindAlreadyImported Kind = "already_imported"
	// KindUnknownCurrency tags a currency code absent from the registry.
	KindUnknownCurrency Kind = "unknown_currency"
)

// ImportError is a fatal import failure with a stable kind tag and a
// human-readable message.
type ImportError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// New creates an ImportError with a formatted message.
func New(kind Kind, format string, args ...interface{}) *ImportError {
	return &ImportError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an ImportError around an underlying cause.
func Wrap(kind Kind, err error, format string, args ...interface{}) *ImportError {
	return &ImportError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// ParseError reports malformed XML together with the byte offset at which
// the decoder gave up.
func ParseError(offset int64, err error) *ImportError {
	return Wrap(KindParseError, err, "malformed XML at byte offset %d", offset)
}

// Warning is a non-fatal diagnostic returned to the caller.
type Warning interface {
	// Tag returns the stable machine-readable tag of the warning.
	Tag() string
	// Message returns the human-readable text.
	Message() string
}

// BalanceMismatch reports a statement whose opening balance plus the sum of
// its line amounts does not meet the closing balance.
type BalanceMismatch struct {
	StatementName string
	Opening       string
	Closing       string
	LineSum       string
}

// Tag returns the warning tag.
func (w BalanceMismatch) Tag() string { return "balance_mismatch" }

// Message returns the human-readable text.
func (w BalanceMismatch) Message() string {
	return fmt.Sprintf("statement %s: opening balance %s plus transactions %s does not equal closing balance %s",
		w.StatementName, w.Opening, w.LineSum, w.Closing)
}

// SkippedStatement identifies one statement that did not match the journal.
type SkippedStatement struct {
	AccountIdentifier string
	Currency          string
}

func (s SkippedStatement) String() string {
	return fmt.Sprintf("%s (%s)", s.AccountIdentifier, s.Currency)
}

// StatementsSkipped lists the statements of a file that were left out
// because their account or currency did not match the destination journal.
type StatementsSkipped struct {
	Skipped []SkippedStatement
}

// Tag returns the warning tag.
func (w StatementsSkipped) Tag() string { return "statements_skipped" }

// Message returns the human-readable text.
func (w StatementsSkipped) Message() string {
	names := make([]string, len(w.Skipped))
	for i, s := range w.Skipped {
		names[i] = s.String()
	}
	return fmt.Sprintf("skipped statements not matching the journal account: %s",
		strings.Join(names, ", "))
}
