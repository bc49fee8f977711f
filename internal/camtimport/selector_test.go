package camtimport

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/xmlpath.v2"

	"fjacquet/camt-import/internal/importerror"
	"fjacquet/camt-import/internal/logging"
)

func messageFrom(t *testing.T, doc string) *xmlpath.Node {
	t.Helper()
	return parseNodes(t, doc, xmlpath.MustCompile("//BkToCstmrStmt"))[0]
}

const selectorDoc = `<Document><BkToCstmrStmt>
	<Stmt>
		<Id>ONE</Id>
		<Acct><Id><IBAN>CH93 0076 2011 6238 5295 7</IBAN></Id><Ccy>CHF</Ccy></Acct>
	</Stmt>
	<Stmt>
		<Id>TWO</Id>
		<Acct><Id><IBAN>CH5604835012345678009</IBAN></Id><Ccy>CHF</Ccy></Acct>
	</Stmt>
</BkToCstmrStmt></Document>`

func TestSelectStatementsNormalizesIBANSpacing(t *testing.T) {
	message := messageFrom(t, selectorDoc)

	accepted, warnings, err := selectStatements(message, "CH9300762011623852957", "CHF", false, logging.NewMockLogger())
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, "CH9300762011623852957", accepted[0].accountIdentifier)
	require.Len(t, warnings, 1)
	assert.Equal(t, "statements_skipped", warnings[0].Tag())
}

func TestSelectStatementsStrictRejectsSkips(t *testing.T) {
	message := messageFrom(t, selectorDoc)

	_, _, err := selectStatements(message, "CH9300762011623852957", "CHF", true, logging.NewMockLogger())
	require.Error(t, err)
	var importErr *importerror.ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, importerror.KindAccountMismatch, importErr.Kind)
}

func TestSelectStatementsSingleMismatchIsFatal(t *testing.T) {
	doc := `<Document><BkToCstmrStmt>
		<Stmt>
			<Id>ONLY</Id>
			<Acct><Id><IBAN>CH5604835012345678009</IBAN></Id><Ccy>CHF</Ccy></Acct>
		</Stmt>
	</BkToCstmrStmt></Document>`
	message := messageFrom(t, doc)

	_, _, err := selectStatements(message, "CH9300762011623852957", "CHF", false, logging.NewMockLogger())
	require.Error(t, err)
	var importErr *importerror.ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, importerror.KindAccountMismatch, importErr.Kind)
}

func TestSelectStatementsCurrencyMismatchSkips(t *testing.T) {
	doc := `<Document><BkToCstmrStmt>
		<Stmt>
			<Id>CHF1</Id>
			<Acct><Id><IBAN>CH9300762011623852957</IBAN></Id><Ccy>CHF</Ccy></Acct>
		</Stmt>
		<Stmt>
			<Id>EUR1</Id>
			<Acct><Id><IBAN>CH9300762011623852957</IBAN></Id><Ccy>EUR</Ccy></Acct>
		</Stmt>
	</BkToCstmrStmt></Document>`
	message := messageFrom(t, doc)

	accepted, warnings, err := selectStatements(message, "CH9300762011623852957", "CHF", false, logging.NewMockLogger())
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, "CHF", accepted[0].currencyCode)
	require.Len(t, warnings, 1)
}

func TestSelectStatementsBlankJournalAccountSingleAccount(t *testing.T) {
	doc := `<Document><BkToCstmrStmt>
		<Stmt>
			<Id>ONLY</Id>
			<Acct><Id><IBAN>CH9300762011623852957</IBAN></Id><Ccy>CHF</Ccy></Acct>
		</Stmt>
	</BkToCstmrStmt></Document>`
	message := messageFrom(t, doc)

	accepted, warnings, err := selectStatements(message, "", "CHF", false, logging.NewMockLogger())
	require.NoError(t, err)
	assert.Len(t, accepted, 1)
	assert.Empty(t, warnings)
}

func TestSelectStatementsBlankJournalAccountMultipleAccounts(t *testing.T) {
	message := messageFrom(t, selectorDoc)

	_, _, err := selectStatements(message, "", "CHF", false, logging.NewMockLogger())
	require.Error(t, err)
	var importErr *importerror.ImportError
	require.True(t, errors.As(err, &importErr))
	assert.Equal(t, importerror.KindJournalMissingAccount, importErr.Kind)
}

func TestStatementCurrencyFallsBackToBalance(t *testing.T) {
	doc := `<Document><BkToCstmrStmt>
		<Stmt>
			<Id>NOCCY</Id>
			<Acct><Id><IBAN>CH9300762011623852957</IBAN></Id></Acct>
			<Bal>
				<Tp><CdOrPrtry><Cd>OPBD</Cd></CdOrPrtry></Tp>
				<Amt Ccy="EUR">10.00</Amt>
				<CdtDbtInd>CRDT</CdtDbtInd>
			</Bal>
		</Stmt>
	</BkToCstmrStmt></Document>`
	stmt := firstStmt(t, doc)
	assert.Equal(t, "EUR", statementCurrency(stmt))
}

func TestStatementAccountProprietaryID(t *testing.T) {
	doc := `<Document><BkToCstmrStmt>
		<Stmt>
			<Id>OTHR</Id>
			<Acct><Id><Othr><Id>0123-456789.0</Id></Othr></Id><Ccy>CHF</Ccy></Acct>
		</Stmt>
	</BkToCstmrStmt></Document>`
	stmt := firstStmt(t, doc)
	assert.Equal(t, "0123-456789.0", statementAccount(stmt))
}
