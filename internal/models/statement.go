// Package models provides the data structures shared by the importer, the
// repository implementations and the export/API surfaces.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Credit/debit indicator values as they appear in CAMT documents.
const (
	IndicatorCredit = "CRDT"
	IndicatorDebit  = "DBIT"
)

// Balance type codes of interest, in priority order per balance role.
const (
	BalanceOpeningBooked   = "OPBD"
	BalanceClosingBooked   = "CLBD"
	BalancePreviouslyClose = "PRCD"
	BalanceInterimBooked   = "ITBD"
)

// Journal is the destination accounting book of an import. It owns one
// configured account identifier and one currency; a blank currency means the
// company default applies.
type Journal struct {
	ID                int64  `yaml:"id"`
	Name              string `yaml:"name"`
	AccountIdentifier string `yaml:"account"`
	CurrencyCode      string `yaml:"currency"`
}

// Currency is an entry of the external currency registry.
type Currency struct {
	ID            int64  `yaml:"id"`
	Code          string `yaml:"code"`
	DecimalPlaces int32  `yaml:"decimal_places"`
}

// HalfUnit returns half of the smallest representable amount in this
// currency, the tolerance used by the balance check.
func (c Currency) HalfUnit() decimal.Decimal {
	unit := decimal.New(1, -c.DecimalPlaces)
	return unit.Div(decimal.NewFromInt(2))
}

// NormalizeAccountIdentifier strips whitespace from and upper-cases an
// account identifier so IBANs with presentation spacing compare equal.
func NormalizeAccountIdentifier(id string) string {
	return strings.ToUpper(strings.Join(strings.Fields(id), ""))
}

// ChargeRecord is one itemized bank fee attached to an entry.
type ChargeRecord struct {
	Amount    decimal.Decimal
	Indicator string
}

// Signed returns the charge amount carrying the entry sign convention:
// positive for CRDT, negative for DBIT.
func (c ChargeRecord) Signed() decimal.Decimal {
	if c.Indicator == IndicatorDebit {
		return c.Amount.Neg()
	}
	return c.Amount
}

// EntryCandidate is one statement line as parsed from an <Ntry> element or
// from one of its <TxDtls> children. Amount is signed and net of charges,
// expressed in the statement currency.
type EntryCandidate struct {
	Amount              decimal.Decimal
	BookingDate         time.Time
	ValueDate           time.Time
	BankReference       string
	PartnerName         string
	CounterpartyAccount string
	PaymentReference    string
	Charges             []ChargeRecord

	// InstructedAmount is set when the transaction was instructed in a
	// currency other than the statement currency. Its sign follows Amount.
	InstructedAmount *Money
	// ExchangeRate is the instructed-amount-units-per-statement-unit rate,
	// when quoted or derivable.
	ExchangeRate *decimal.Decimal
}

// StatementCandidate is one parsed <Stmt> element, before assembly.
type StatementCandidate struct {
	Name              string
	AccountIdentifier string
	CurrencyCode      string
	Date              time.Time
	OpeningBalance    decimal.Decimal
	ClosingBalance    decimal.Decimal
	Intraday          bool
	Entries           []EntryCandidate
}

// LineSum returns the signed sum of all entry amounts.
func (s *StatementCandidate) LineSum() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range s.Entries {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// PersistedLine is the line schema consumed by the statement repository.
// Hints (partner name, counterparty account) are resolved downstream.
type PersistedLine struct {
	Date                   time.Time        `json:"date" yaml:"date"`
	PaymentRef             string           `json:"payment_ref" yaml:"payment_ref"`
	Ref                    string           `json:"ref" yaml:"ref"`
	PartnerName            string           `json:"partner_name,omitempty" yaml:"partner_name,omitempty"`
	Amount                 decimal.Decimal  `json:"amount" yaml:"amount"`
	AmountCurrency         *decimal.Decimal `json:"amount_currency,omitempty" yaml:"amount_currency,omitempty"`
	ForeignCurrencyID      *int64           `json:"foreign_currency_id,omitempty" yaml:"foreign_currency_id,omitempty"`
	PartnerBankAccountHint string           `json:"partner_bank_account_identifier,omitempty" yaml:"partner_bank_account_identifier,omitempty"`
}

// PersistedStatement is the statement schema consumed by the repository.
type PersistedStatement struct {
	Name         string          `json:"name" yaml:"name"`
	JournalID    int64           `json:"journal_id" yaml:"journal_id"`
	Date         time.Time       `json:"date" yaml:"date"`
	BalanceStart decimal.Decimal `json:"balance_start" yaml:"balance_start"`
	BalanceEnd   decimal.Decimal `json:"balance_end_real" yaml:"balance_end_real"`
	Lines        []PersistedLine `json:"line_ids" yaml:"line_ids"`
}
