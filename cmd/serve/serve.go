// Package serve contains the HTTP server command
package serve

import (
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"

	"fjacquet/camt-import/cmd/root"
	"fjacquet/camt-import/internal/api"
	"fjacquet/camt-import/internal/camtimport"
	"fjacquet/camt-import/internal/repository"
)

var address string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the import HTTP API",
	Long: `Serve starts an HTTP server exposing the importer: POST a CAMT.053 file to
/api/import with a journal_id and company_id to run an import.`,
	Run: serveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&address, "address", "a", "", "Listen address (overrides configuration)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	log := root.Logger()

	store, err := repository.NewYAMLStore(root.DataDirectory(), log)
	if err != nil {
		root.Log.Fatalf("Error opening repository: %v", err)
	}

	imp := camtimport.New(store, log, root.Cfg.Import.StrictMatching)
	handler := api.NewHandler(imp, log)

	app := fiber.New(fiber.Config{
		AppName: "camt-import",
	})
	handler.Register(app)

	listen := address
	if listen == "" {
		listen = root.Cfg.Server.Address
	}
	root.Log.Infof("Listening on %s", listen)
	if err := app.Listen(listen); err != nil {
		root.Log.Fatalf("Server stopped: %v", err)
	}
}
