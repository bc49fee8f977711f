package camtimport

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/xmlpath.v2"

	"fjacquet/camt-import/internal/dateutils"
	"fjacquet/camt-import/internal/importerror"
	"fjacquet/camt-import/internal/models"
	"fjacquet/camt-import/internal/xmlutils"
)

// signFor maps a credit/debit indicator to the sign convention used
// throughout the importer: CRDT is positive, DBIT negative.
func signFor(indicator string) decimal.Decimal {
	if indicator == models.IndicatorDebit {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// cleanText collapses runs of whitespace, XML pretty-printing included.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// parseCharges reads the itemized bank fees of an entry. When no per-record
// breakdown exists, a lone TtlChrgsAndTaxAmt is applied once, as a debit:
// charge totals describe fees withheld from the gross movement.
func parseCharges(entry *xmlpath.Node, name string) ([]models.ChargeRecord, error) {
	var charges []models.ChargeRecord
	for _, record := range xmlutils.Nodes(entry, pathChrgsRcrd) {
		amountStr := xmlutils.TextOr(record, pathAmt, "")
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, importerror.Wrap(importerror.KindParseError, err,
				"entry %s: invalid charge amount %q", name, amountStr)
		}
		charges = append(charges, models.ChargeRecord{
			Amount:    amount,
			Indicator: xmlutils.TextOr(record, pathCdtDbtInd, models.IndicatorDebit),
		})
	}
	if len(charges) > 0 {
		return charges, nil
	}

	if totalStr, ok := xmlutils.Text(entry, pathChrgsTotal); ok {
		total, err := decimal.NewFromString(totalStr)
		if err != nil {
			return nil, importerror.Wrap(importerror.KindParseError, err,
				"entry %s: invalid total charges amount %q", name, totalStr)
		}
		charges = append(charges, models.ChargeRecord{
			Amount:    total,
			Indicator: models.IndicatorDebit,
		})
	}
	return charges, nil
}

// entryDate reads a date element pair (Dt, DtTm) under an entry, falling
// back to the given default.
func entryDate(entry *xmlpath.Node, datePath, datetimePath *xmlpath.Path, fallback time.Time) time.Time {
	if value, ok := xmlutils.Text(entry, datePath); ok {
		if t, err := dateutils.ParseISODate(value); err == nil {
			return t
		}
	}
	if value, ok := xmlutils.Text(entry, datetimePath); ok {
		if t, err := dateutils.ParseISODateTime(value); err == nil {
			return t
		}
	}
	return fallback
}

// detailPartnerName returns the counterparty name of a transaction detail:
// the debtor for money coming in, the creditor for money going out.
func detailPartnerName(detail *xmlpath.Node, indicator string) string {
	if indicator == models.IndicatorCredit {
		return cleanText(xmlutils.TextOr(detail, pathDbtrNm, ""))
	}
	return cleanText(xmlutils.TextOr(detail, pathCdtrNm, ""))
}

// detailCounterpartyAccount returns the counterparty account identifier of
// a transaction detail, preferring the IBAN over a proprietary id.
func detailCounterpartyAccount(detail *xmlpath.Node, indicator string) string {
	ibanPath, othrPath := pathDbtrAcctIBAN, pathDbtrAcctOthr
	if indicator == models.IndicatorDebit {
		ibanPath, othrPath = pathCdtrAcctIBAN, pathCdtrAcctOthr
	}
	if iban, ok := xmlutils.Text(detail, ibanPath); ok {
		return models.NormalizeAccountIdentifier(iban)
	}
	return models.NormalizeAccountIdentifier(xmlutils.TextOr(detail, othrPath, ""))
}

// detailPaymentRef builds the free-form payment reference of a detail: all
// unstructured remittance lines joined with spaces, else the structured
// creditor reference.
func detailPaymentRef(detail *xmlpath.Node) string {
	var parts []string
	for _, ustrd := range xmlutils.Nodes(detail, pathRmtInfUstrd) {
		if text := cleanText(ustrd.String()); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if ref, ok := xmlutils.Text(detail, pathRmtInfStrdRef); ok {
		return cleanText(ref)
	}
	return ""
}

// readQuotedRate returns the exchange rate quoted on a detail, if any.
// Banks place the CcyXchg block either directly on the detail or inside
// AmtDtls/TxAmt.
func readQuotedRate(detail *xmlpath.Node) *quotedRate {
	if rateStr, ok := xmlutils.Text(detail, pathXchgRate); ok {
		if rate, err := decimal.NewFromString(rateStr); err == nil {
			return &quotedRate{
				rate:   rate,
				source: xmlutils.TextOr(detail, pathXchgSrcCcy, ""),
				target: xmlutils.TextOr(detail, pathXchgTrgtCcy, ""),
			}
		}
	}
	if rateStr, ok := xmlutils.Text(detail, pathTxAmtXchgRate); ok {
		if rate, err := decimal.NewFromString(rateStr); err == nil {
			return &quotedRate{
				rate:   rate,
				source: xmlutils.TextOr(detail, pathTxAmtXchgSrc, ""),
				target: xmlutils.TextOr(detail, pathTxAmtXchgTrgt, ""),
			}
		}
	}
	return nil
}

// applyInstructedAmount fills the foreign-currency fields of a line when the
// detail was instructed in a currency other than the statement currency.
// The persisted line amount stays in the statement currency; the instructed
// amount keeps its own currency, signed like the line amount.
func applyInstructedAmount(line *models.EntryCandidate, detail *xmlpath.Node, stmt *models.StatementCandidate, gross decimal.Decimal, resolver *currencyResolver) error {
	instdStr, ok := xmlutils.Text(detail, pathInstdAmt)
	if !ok {
		return nil
	}
	currency := xmlutils.TextOr(detail, pathInstdAmtCcy, "")
	if currency == "" || currency == stmt.CurrencyCode {
		return nil
	}

	instructed, err := decimal.NewFromString(instdStr)
	if err != nil {
		return importerror.Wrap(importerror.KindParseError, err,
			"statement %s: invalid instructed amount %q", stmt.Name, instdStr)
	}
	if _, err := resolver.resolve(currency); err != nil {
		return err
	}

	signed := instructed.Abs()
	if line.Amount.IsNegative() {
		signed = signed.Neg()
	}
	line.InstructedAmount = &models.Money{Amount: signed, Currency: currency}
	line.ExchangeRate = effectiveRate(readQuotedRate(detail), stmt.CurrencyCode, currency, instructed, gross)
	return nil
}

// detailAmount reads the amount of one TxDtls when an entry is split into
// several details: the detail's own Amt, else the same-currency instructed
// amount, else the transaction amount.
func detailAmount(detail *xmlpath.Node, statementCurrency string) (string, bool) {
	if value, ok := xmlutils.Text(detail, pathAmt); ok {
		return value, true
	}
	if value, ok := xmlutils.Text(detail, pathInstdAmt); ok {
		ccy := xmlutils.TextOr(detail, pathInstdAmtCcy, "")
		if ccy == "" || ccy == statementCurrency {
			return value, true
		}
	}
	if value, ok := xmlutils.Text(detail, pathTxAmt); ok {
		return value, true
	}
	return "", false
}

// parseEntry turns one Ntry element into statement lines. A single
// transaction detail enriches the entry itself; multiple details split the
// entry into one line each.
func parseEntry(entry *xmlpath.Node, index int, stmt *models.StatementCandidate, resolver *currencyResolver) ([]models.EntryCandidate, error) {
	bankRef := xmlutils.TextOr(entry, pathAcctSvcrRef, "")
	if bankRef == "" {
		bankRef = xmlutils.TextOr(entry, pathNtryRef, "")
	}
	if bankRef == "" {
		bankRef = fmt.Sprintf("%s-%d", stmt.Name, index+1)
	}

	amountStr := xmlutils.TextOr(entry, pathAmt, "")
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, importerror.Wrap(importerror.KindParseError, err,
			"entry %s: invalid amount %q", bankRef, amountStr)
	}
	indicator := xmlutils.TextOr(entry, pathCdtDbtInd, models.IndicatorCredit)
	gross := amount.Mul(signFor(indicator))

	charges, err := parseCharges(entry, bankRef)
	if err != nil {
		return nil, err
	}
	net := gross
	for _, charge := range charges {
		net = net.Add(charge.Signed())
	}

	bookingDate := entryDate(entry, pathBookgDtDt, pathBookgDtDtTm, stmt.Date)
	valueDate := entryDate(entry, pathValDtDt, pathValDtDtTm, bookingDate)
	additionalInfo := cleanText(xmlutils.TextOr(entry, pathAddtlNtryInf, ""))

	details := xmlutils.Nodes(entry, pathTxDtls)

	if len(details) <= 1 {
		line := models.EntryCandidate{
			Amount:           net,
			BookingDate:      bookingDate,
			ValueDate:        valueDate,
			BankReference:    bankRef,
			PaymentReference: additionalInfo,
			Charges:          charges,
		}
		if len(details) == 1 {
			detail := details[0]
			line.PartnerName = detailPartnerName(detail, indicator)
			line.CounterpartyAccount = detailCounterpartyAccount(detail, indicator)
			if ref := detailPaymentRef(detail); ref != "" {
				line.PaymentReference = ref
			}
			if err := applyInstructedAmount(&line, detail, stmt, gross, resolver); err != nil {
				return nil, err
			}
		}
		return []models.EntryCandidate{line}, nil
	}

	// Split entry: one line per detail, each detail carrying its own amount
	// and inheriting the parent sign unless it declares its own indicator.
	lines := make([]models.EntryCandidate, 0, len(details))
	for n, detail := range details {
		detailIndicator := xmlutils.TextOr(detail, pathCdtDbtInd, indicator)
		valueStr, ok := detailAmount(detail, stmt.CurrencyCode)
		if !ok {
			return nil, importerror.New(importerror.KindParseError,
				"entry %s: transaction detail %d carries no amount", bankRef, n+1)
		}
		value, err := decimal.NewFromString(valueStr)
		if err != nil {
			return nil, importerror.Wrap(importerror.KindParseError, err,
				"entry %s: invalid detail amount %q", bankRef, valueStr)
		}
		signed := value.Mul(signFor(detailIndicator))

		ref := xmlutils.TextOr(detail, pathRefsEndToEndID, "")
		if ref == "" {
			ref = xmlutils.TextOr(detail, pathRefsInstrID, "")
		}
		if ref == "" {
			ref = fmt.Sprintf("%s-%d", bankRef, n+1)
		}

		line := models.EntryCandidate{
			Amount:              signed,
			BookingDate:         bookingDate,
			ValueDate:           valueDate,
			BankReference:       ref,
			PartnerName:         detailPartnerName(detail, detailIndicator),
			CounterpartyAccount: detailCounterpartyAccount(detail, detailIndicator),
			PaymentReference:    detailPaymentRef(detail),
		}
		if line.PaymentReference == "" {
			line.PaymentReference = additionalInfo
		}
		if err := applyInstructedAmount(&line, detail, stmt, signed.Abs(), resolver); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
