// Package export writes imported statements to CSV for inspection outside
// the repository.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"fjacquet/camt-import/internal/dateutils"
	"fjacquet/camt-import/internal/logging"
	"fjacquet/camt-import/internal/models"
)

// Row is one statement line in the CSV output. Dates are ISO formatted and
// amounts keep the statement sign convention.
type Row struct {
	Statement      string `csv:"Statement"`
	Date           string `csv:"Date"`
	Ref            string `csv:"Ref"`
	PaymentRef     string `csv:"Payment Ref"`
	PartnerName    string `csv:"Partner"`
	PartnerAccount string `csv:"Partner Account"`
	Amount         string `csv:"Amount"`
	AmountCurrency string `csv:"Amount Currency"`
}

// Rows flattens persisted statements into CSV rows, one per line, in
// document order.
func Rows(statements []models.PersistedStatement) []Row {
	var rows []Row
	for _, statement := range statements {
		for _, line := range statement.Lines {
			row := Row{
				Statement:      statement.Name,
				Date:           dateutils.ToISODate(line.Date),
				Ref:            line.Ref,
				PaymentRef:     line.PaymentRef,
				PartnerName:    line.PartnerName,
				PartnerAccount: line.PartnerBankAccountHint,
				Amount:         line.Amount.String(),
			}
			if line.AmountCurrency != nil {
				row.AmountCurrency = line.AmountCurrency.String()
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteCSV writes the statements to a CSV file, creating the parent
// directory when needed.
func WriteCSV(statements []models.PersistedStatement, csvFile string, log logging.Logger) error {
	rows := Rows(statements)
	log.Info("Writing statement lines to CSV file",
		logging.F("file", csvFile),
		logging.F("count", len(rows)))

	if err := os.MkdirAll(filepath.Dir(csvFile), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}
	return nil
}
