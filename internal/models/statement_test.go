package models_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"fjacquet/camt-import/internal/models"
)

func TestNormalizeAccountIdentifier(t *testing.T) {
	assert.Equal(t, "CH9300762011623852957", models.NormalizeAccountIdentifier("ch93 0076 2011 6238 5295 7"))
	assert.Equal(t, "CH9300762011623852957", models.NormalizeAccountIdentifier("CH9300762011623852957"))
	assert.Equal(t, "", models.NormalizeAccountIdentifier("   "))
}

func TestChargeRecordSigned(t *testing.T) {
	debit := models.ChargeRecord{Amount: decimal.RequireFromString("10"), Indicator: models.IndicatorDebit}
	credit := models.ChargeRecord{Amount: decimal.RequireFromString("10"), Indicator: models.IndicatorCredit}
	assert.True(t, debit.Signed().Equal(decimal.RequireFromString("-10")))
	assert.True(t, credit.Signed().Equal(decimal.RequireFromString("10")))
}

func TestCurrencyHalfUnit(t *testing.T) {
	chf := models.Currency{Code: "CHF", DecimalPlaces: 2}
	jpy := models.Currency{Code: "JPY", DecimalPlaces: 0}
	assert.True(t, chf.HalfUnit().Equal(decimal.RequireFromString("0.005")))
	assert.True(t, jpy.HalfUnit().Equal(decimal.RequireFromString("0.5")))
}

func TestStatementCandidateLineSum(t *testing.T) {
	s := models.StatementCandidate{
		Entries: []models.EntryCandidate{
			{Amount: decimal.RequireFromString("100.00")},
			{Amount: decimal.RequireFromString("-30.50")},
		},
	}
	assert.True(t, s.LineSum().Equal(decimal.RequireFromString("69.50")))
}
