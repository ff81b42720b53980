// Package root contains the root command for the application
package root

import (
	"fjacquet/stmt-sorter/internal/config"
	"fjacquet/stmt-sorter/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are shared by multiple commands.
type CommonFlags struct {
	Input  string
	Output string
	Format string
}

var (
	// Log is the shared logger instance for commands. It starts with
	// defaults and is replaced with the configured logger before any
	// subcommand runs.
	Log = logging.NewLogrusAdapter("info", "text")

	// Cfg is the loaded application configuration, available to all
	// subcommands after PersistentPreRunE.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "stmt-sorter",
		Short: "Sort bank statement files into a categorized summary workbook.",
		Long: `stmt-sorter reads bank statement files (PDF, scanned PDF, XLS, XLSX, CSV),
extracts the transaction rows, categorizes them with pattern rules and
produces a styled summary workbook with Deposits, Withdrawals and Summary
sheets. It runs either as a one-shot converter or as an HTTP service.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to stmt-sorter!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}

	// SharedFlags holds the common flag values for all subcommands.
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and its persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input statement file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file path")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "xlsx", "Output format (xlsx or csv)")
}
