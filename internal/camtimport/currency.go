package camtimport

import (
	"github.com/shopspring/decimal"

	"fjacquet/camt-import/internal/importerror"
	"fjacquet/camt-import/internal/models"
	"fjacquet/camt-import/internal/repository"
)

// currencyResolver memoizes registry lookups for the duration of one import.
type currencyResolver struct {
	repo  repository.Repository
	cache map[string]models.Currency
}

func newCurrencyResolver(repo repository.Repository) *currencyResolver {
	return &currencyResolver{
		repo:  repo,
		cache: make(map[string]models.Currency),
	}
}

// resolve returns the currency entity for an ISO-4217 code. A code absent
// from the registry is a fatal import error.
func (r *currencyResolver) resolve(code string) (models.Currency, error) {
	if currency, ok := r.cache[code]; ok {
		return currency, nil
	}
	currency, found, err := r.repo.LookupCurrency(code)
	if err != nil {
		return models.Currency{}, err
	}
	if !found {
		return models.Currency{}, importerror.New(importerror.KindUnknownCurrency,
			"currency %s is not present in the registry", code)
	}
	r.cache[code] = currency
	return currency, nil
}

// quotedRate is an exchange rate as quoted in a CcyXchg block, together
// with the direction it was quoted in.
type quotedRate struct {
	rate   decimal.Decimal
	source string
	target string
}

// effectiveRate computes the canonical rate, in instructed-amount units per
// statement-currency unit. A quoted rate wins over the derived one and is
// inverted when quoted in the opposite direction; without a quote the rate
// is derived as instructed / gross. Returns nil when neither is available.
func effectiveRate(quoted *quotedRate, statementCcy, instructedCcy string, instructed, gross decimal.Decimal) *decimal.Decimal {
	if quoted != nil && !quoted.rate.IsZero() {
		rate := quoted.rate
		if quoted.source == instructedCcy && quoted.target == statementCcy {
			rate = decimal.NewFromInt(1).Div(rate)
		}
		return &rate
	}
	if gross.IsZero() {
		return nil
	}
	rate := instructed.Abs().Div(gross.Abs())
	return &rate
}
