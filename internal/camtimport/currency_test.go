package camtimport

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/camt-import/internal/importerror"
)

func TestResolveKnownCurrency(t *testing.T) {
	resolver := testResolver()

	currency, err := resolver.resolve("EUR")
	require.NoError(t, err)
	assert.Equal(t, int64(2), currency.ID)

	// Second lookup is served from the cache.
	cached, err := resolver.resolve("EUR")
	require.NoError(t, err)
	assert.Equal(t, currency, cached)
}

func TestResolveUnknownCurrency(t *testing.T) {
	resolver := testResolver()

	_, err := resolver.resolve("XXX")
	require.Error(t, err)
	var importErr *importerror.ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, importerror.KindUnknownCurrency, importErr.Kind)
}

func TestEffectiveRateQuotedForward(t *testing.T) {
	quoted := &quotedRate{
		rate:   decimal.RequireFromString("1.1111"),
		source: "CHF",
		target: "EUR",
	}
	rate := effectiveRate(quoted, "CHF", "EUR", decimal.RequireFromString("100"), decimal.RequireFromString("90"))
	require.NotNil(t, rate)
	assert.True(t, rate.Equal(decimal.RequireFromString("1.1111")))
}

func TestEffectiveRateQuotedInverted(t *testing.T) {
	quoted := &quotedRate{
		rate:   decimal.RequireFromString("0.9"),
		source: "EUR",
		target: "CHF",
	}
	rate := effectiveRate(quoted, "CHF", "EUR", decimal.RequireFromString("100"), decimal.RequireFromString("90"))
	require.NotNil(t, rate)
	expected := decimal.NewFromInt(1).Div(decimal.RequireFromString("0.9"))
	assert.True(t, rate.Equal(expected))
}

func TestEffectiveRateDerived(t *testing.T) {
	rate := effectiveRate(nil, "CHF", "EUR", decimal.RequireFromString("-100"), decimal.RequireFromString("-90"))
	require.NotNil(t, rate)
	expected := decimal.RequireFromString("100").Div(decimal.RequireFromString("90"))
	assert.True(t, rate.Equal(expected))
}

func TestEffectiveRateZeroGrossWithoutQuote(t *testing.T) {
	rate := effectiveRate(nil, "CHF", "EUR", decimal.RequireFromString("100"), decimal.Zero)
	assert.Nil(t, rate)
}
