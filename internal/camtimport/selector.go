package camtimport

import (
	"gopkg.in/xmlpath.v2"

	"fjacquet/camt-import/internal/importerror"
	"fjacquet/camt-import/internal/logging"
	"fjacquet/camt-import/internal/models"
	"fjacquet/camt-import/internal/xmlutils"
)

// acceptedStatement is a Stmt element that belongs to the destination
// journal, together with the identifiers derived while matching it.
type acceptedStatement struct {
	node              *xmlpath.Node
	accountIdentifier string
	currencyCode      string
}

// statementAccount extracts the account identifier of a Stmt: the IBAN, or
// the proprietary Othr/Id when no IBAN is given.
func statementAccount(stmt *xmlpath.Node) string {
	if iban, ok := xmlutils.Text(stmt, pathAcctIBAN); ok {
		return models.NormalizeAccountIdentifier(iban)
	}
	return models.NormalizeAccountIdentifier(xmlutils.TextOr(stmt, pathAcctOthrID, ""))
}

// statementCurrency extracts the currency of a Stmt: Acct/Ccy, or the
// currency of the first balance when the account carries none.
func statementCurrency(stmt *xmlpath.Node) string {
	if ccy, ok := xmlutils.Text(stmt, pathAcctCcy); ok {
		return ccy
	}
	for _, bal := range xmlutils.Nodes(stmt, pathBal) {
		if ccy, ok := xmlutils.Text(bal, pathAmtCcy); ok {
			return ccy
		}
	}
	return ""
}

// selectStatements partitions the statements of the document into the ones
// belonging to the journal and diagnostics for the rest.
//
// A statement is accepted when its account identifier equals the journal
// account and its currency equals the effective journal currency. A blank
// statement currency is taken to mean the journal currency. When the journal
// has no account configured, a single-account file is accepted as-is (the
// repository side records the account on first use) but a multi-account file
// is refused, since there is no way to tell which account was meant.
func selectStatements(message *xmlpath.Node, journalAccount, effectiveCurrency string, strict bool, log logging.Logger) ([]acceptedStatement, []importerror.Warning, error) {
	statements := xmlutils.Nodes(message, pathStmt)

	distinct := make(map[string]bool)
	for _, stmt := range statements {
		distinct[statementAccount(stmt)] = true
	}
	if journalAccount == "" && len(distinct) > 1 {
		return nil, nil, importerror.New(importerror.KindJournalMissingAccount,
			"the journal has no bank account set but the file contains statements for %d accounts; configure the journal account first", len(distinct))
	}

	var accepted []acceptedStatement
	var skipped []importerror.SkippedStatement
	for _, stmt := range statements {
		account := statementAccount(stmt)
		currency := statementCurrency(stmt)
		if currency == "" {
			currency = effectiveCurrency
		}

		accountMatch := journalAccount == "" || account == journalAccount
		currencyMatch := currency == effectiveCurrency
		if accountMatch && currencyMatch {
			accepted = append(accepted, acceptedStatement{
				node:              stmt,
				accountIdentifier: account,
				currencyCode:      currency,
			})
			continue
		}

		log.Debug("Skipping statement not matching the journal",
			logging.F("account", account),
			logging.F("currency", currency))
		skipped = append(skipped, importerror.SkippedStatement{
			AccountIdentifier: account,
			Currency:          currency,
		})
	}

	if len(skipped) == 0 {
		return accepted, nil, nil
	}

	warning := importerror.StatementsSkipped{Skipped: skipped}
	if len(statements) == 1 || strict {
		return nil, nil, importerror.New(importerror.KindAccountMismatch, "%s", warning.Message())
	}

	log.Warn("Some statements do not match the journal",
		logging.F("skipped", len(skipped)),
		logging.F("accepted", len(accepted)))
	return accepted, []importerror.Warning{warning}, nil
}
