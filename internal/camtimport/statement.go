package camtimport

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/xmlpath.v2"

	"fjacquet/camt-import/internal/dateutils"
	"fjacquet/camt-import/internal/importerror"
	"fjacquet/camt-import/internal/logging"
	"fjacquet/camt-import/internal/models"
	"fjacquet/camt-import/internal/xmlutils"
)

// parsedBalance is one Bal element with its sign already applied.
type parsedBalance struct {
	code   string
	amount decimal.Decimal
	date   time.Time
}

// parseBalances reads all Bal elements of a statement. Balance amounts are
// unsigned in the document; the sign comes from CdtDbtInd (DBIT negates).
func parseBalances(stmt *xmlpath.Node, name string) ([]parsedBalance, error) {
	var balances []parsedBalance
	for _, bal := range xmlutils.Nodes(stmt, pathBal) {
		code := xmlutils.TextOr(bal, pathBalCode, "")
		if code == "" {
			continue
		}

		amountStr := xmlutils.TextOr(bal, pathAmt, "")
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, importerror.Wrap(importerror.KindParseError, err,
				"statement %s: invalid %s balance amount %q", name, code, amountStr)
		}
		if xmlutils.TextOr(bal, pathCdtDbtInd, "") == models.IndicatorDebit {
			amount = amount.Neg()
		}

		var date time.Time
		if value, ok := xmlutils.Text(bal, pathBalDt); ok {
			date, _ = dateutils.ParseISODate(value)
		} else if value, ok := xmlutils.Text(bal, pathBalDtTm); ok {
			date, _ = dateutils.ParseISODateTime(value)
		}

		balances = append(balances, parsedBalance{code: code, amount: amount, date: date})
	}
	return balances, nil
}

// pickBalance returns the first balance with any of the wanted codes, in
// priority order.
func pickBalance(balances []parsedBalance, codes ...string) (parsedBalance, bool) {
	for _, code := range codes {
		for _, bal := range balances {
			if bal.code == code {
				return bal, true
			}
		}
	}
	return parsedBalance{}, false
}

// onlyInterim reports whether ITBD is the only balance type present, and
// returns the first and last interim balances. A statement carrying nothing
// but interim balances is an intraday statement: the single balance type
// stands in for both the opening and the closing side.
func onlyInterim(balances []parsedBalance) (first, last parsedBalance, ok bool) {
	if len(balances) == 0 {
		return parsedBalance{}, parsedBalance{}, false
	}
	for _, bal := range balances {
		if bal.code != models.BalanceInterimBooked {
			return parsedBalance{}, parsedBalance{}, false
		}
	}
	return balances[0], balances[len(balances)-1], true
}

// statementName synthesizes the stable statement identifier: the Id element
// joined with the date portion of CreDtTm.
func statementName(stmt *xmlpath.Node) string {
	id := xmlutils.TextOr(stmt, pathStmtID, "")
	creDtTm := xmlutils.TextOr(stmt, pathCreDtTm, "")
	if creDtTm == "" {
		return id
	}
	created, err := dateutils.ParseISODateTime(creDtTm)
	if err != nil {
		return id
	}
	return fmt.Sprintf("%s.%s", id, dateutils.ToISODate(created))
}

// parseStatement turns one accepted Stmt element into a StatementCandidate.
// A BalanceMismatch between the balances and the entry sum is reported as a
// warning; reconciling it is the user's responsibility downstream.
func parseStatement(accepted acceptedStatement, resolver *currencyResolver, log logging.Logger) (*models.StatementCandidate, []importerror.Warning, error) {
	stmt := accepted.node
	name := statementName(stmt)
	log = log.WithField("statement", name)

	balances, err := parseBalances(stmt, name)
	if err != nil {
		return nil, nil, err
	}

	candidate := &models.StatementCandidate{
		Name:              name,
		AccountIdentifier: accepted.accountIdentifier,
		CurrencyCode:      accepted.currencyCode,
	}

	if opening, ok := pickBalance(balances, models.BalanceOpeningBooked, models.BalancePreviouslyClose); ok {
		candidate.OpeningBalance = opening.amount
	}
	closing, hasClosing := pickBalance(balances, models.BalanceClosingBooked)
	if hasClosing {
		candidate.ClosingBalance = closing.amount
		candidate.Date = closing.date
	}
	if first, last, interim := onlyInterim(balances); interim {
		candidate.Intraday = true
		candidate.OpeningBalance = first.amount
		candidate.ClosingBalance = last.amount
		candidate.Date = last.date
	}
	if candidate.Date.IsZero() {
		if created, err := dateutils.ParseISODateTime(xmlutils.TextOr(stmt, pathCreDtTm, "")); err == nil {
			candidate.Date = created
		}
	}

	for i, entry := range xmlutils.Nodes(stmt, pathNtry) {
		lines, err := parseEntry(entry, i, candidate, resolver)
		if err != nil {
			return nil, nil, err
		}
		candidate.Entries = append(candidate.Entries, lines...)
	}

	var warnings []importerror.Warning
	currency, err := resolver.resolve(candidate.CurrencyCode)
	if err != nil {
		return nil, nil, err
	}
	sum := candidate.LineSum()
	diff := candidate.OpeningBalance.Add(sum).Sub(candidate.ClosingBalance)
	if diff.Abs().GreaterThan(currency.HalfUnit()) {
		log.Warn("Statement balances do not reconcile with its transactions",
			logging.F("opening", candidate.OpeningBalance),
			logging.F("closing", candidate.ClosingBalance),
			logging.F("sum", sum))
		warnings = append(warnings, importerror.BalanceMismatch{
			StatementName: name,
			Opening:       candidate.OpeningBalance.String(),
			Closing:       candidate.ClosingBalance.String(),
			LineSum:       sum.String(),
		})
	}

	log.Debug("Parsed statement",
		logging.F("lines", len(candidate.Entries)),
		logging.F("currency", candidate.CurrencyCode))
	return candidate, warnings, nil
}
