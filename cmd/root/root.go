// Package root contains the root command for the application
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/camt-import/internal/config"
	"fjacquet/camt-import/internal/logging"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "camt-import",
		Short: "A CLI tool to import CAMT.053 bank statement files into accounting journals.",
		Long: `camt-import reads CAMT.053 XML files, selects the statements belonging to
a journal and persists them as bank statements with their transaction lines.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to camt-import!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv(Log)

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to initialize configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)
		},
	}

	// DataDir overrides the configured data directory when set
	DataDir string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&DataDir, "data-dir", "d", "", "Directory holding the journal, currency and statement files")
}

// DataDirectory returns the effective data directory: the flag when given,
// the configuration otherwise.
func DataDirectory() string {
	if DataDir != "" {
		return DataDir
	}
	return Cfg.Data.Directory
}

// Logger returns the shared logger behind the logging abstraction.
func Logger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}
