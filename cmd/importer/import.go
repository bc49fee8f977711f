// Package importer contains the import command
package importer

import (
	"os"

	"github.com/spf13/cobra"

	"fjacquet/camt-import/cmd/root"
	"fjacquet/camt-import/internal/camtimport"
	"fjacquet/camt-import/internal/export"
	"fjacquet/camt-import/internal/repository"
)

var (
	file      string
	journalID int64
	companyID int64
	output    string
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import a CAMT.053 file into a journal",
	Long: `Import reads a CAMT.053 XML file, selects the statements belonging to the
journal and persists them. Statements for other accounts are skipped with a
warning; a statement imported before fails the run.`,
	Run: importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&file, "file", "f", "", "CAMT.053 XML file to import")
	Cmd.Flags().Int64VarP(&journalID, "journal", "j", 0, "Destination journal id")
	Cmd.Flags().Int64VarP(&companyID, "company", "c", 0, "Company id providing the fallback currency")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Optional CSV file for the imported lines")
	_ = Cmd.MarkFlagRequired("file")
	_ = Cmd.MarkFlagRequired("journal")
}

func importFunc(cmd *cobra.Command, args []string) {
	log := root.Logger()

	raw, err := os.ReadFile(file)
	if err != nil {
		root.Log.Fatalf("Error reading input file: %v", err)
	}

	store, err := repository.NewYAMLStore(root.DataDirectory(), log)
	if err != nil {
		root.Log.Fatalf("Error opening repository: %v", err)
	}

	imp := camtimport.New(store, log, root.Cfg.Import.StrictMatching)
	result, err := imp.Import(raw, journalID, companyID)
	if err != nil {
		root.Log.Fatalf("Import failed: %v", err)
	}

	for _, warning := range result.Warnings {
		root.Log.Warnf("%s: %s", warning.Tag(), warning.Message())
	}
	root.Log.Infof("Imported %d statement(s): %v", len(result.StatementIDs), result.StatementIDs)

	if output != "" {
		if err := export.WriteCSV(result.Statements, output, log); err != nil {
			root.Log.Fatalf("Error writing CSV output: %v", err)
		}
		root.Log.Infof("Wrote imported lines to %s", output)
	}
}
