package camtimport

import (
	"fjacquet/camt-import/internal/importerror"
	"fjacquet/camt-import/internal/models"
	"fjacquet/camt-import/internal/repository"
)

// assembleLine maps one parsed entry onto the persisted line schema. Foreign
// instructed amounts are carried as amount_currency plus the registry id of
// their currency.
func assembleLine(entry models.EntryCandidate, resolver *currencyResolver) (models.PersistedLine, error) {
	line := models.PersistedLine{
		Date:                   entry.BookingDate,
		PaymentRef:             entry.PaymentReference,
		Ref:                    entry.BankReference,
		PartnerName:            entry.PartnerName,
		Amount:                 entry.Amount,
		PartnerBankAccountHint: entry.CounterpartyAccount,
	}
	if entry.InstructedAmount != nil {
		currency, err := resolver.resolve(entry.InstructedAmount.Currency)
		if err != nil {
			return models.PersistedLine{}, err
		}
		amount := entry.InstructedAmount.Amount
		line.AmountCurrency = &amount
		line.ForeignCurrencyID = &currency.ID
	}
	return line, nil
}

// assembleStatements turns the parsed candidates into persistable statements,
// in document order, refusing any statement whose name is already on file.
func assembleStatements(candidates []*models.StatementCandidate, journalID int64, repo repository.Repository, resolver *currencyResolver) ([]models.PersistedStatement, error) {
	statements := make([]models.PersistedStatement, 0, len(candidates))
	for _, candidate := range candidates {
		exists, err := repo.StatementNameExists(journalID, candidate.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, importerror.New(importerror.KindAlreadyImported,
				"statement %s has already been imported into journal %d", candidate.Name, journalID)
		}

		statement := models.PersistedStatement{
			Name:         candidate.Name,
			JournalID:    journalID,
			Date:         candidate.Date,
			BalanceStart: candidate.OpeningBalance,
			BalanceEnd:   candidate.ClosingBalance,
			Lines:        make([]models.PersistedLine, 0, len(candidate.Entries)),
		}
		for _, entry := range candidate.Entries {
			line, err := assembleLine(entry, resolver)
			if err != nil {
				return nil, err
			}
			statement.Lines = append(statement.Lines, line)
		}
		statements = append(statements, statement)
	}
	return statements, nil
}
