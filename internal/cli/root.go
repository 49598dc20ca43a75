package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	debugFlag   bool
	presetsFile string
	noColor     bool
)

var rootCmd = &cobra.Command{
	Use:   "visastay",
	Short: "Check visa-free stay compliance from a flight log",
	Long: `visastay reconstructs stays in a country from a flight log and reports
days used in the rolling window, how long you may stay if you enter today,
and when longer stays become possible.

Flight logs are read from a local CSV export, a Google Sheet
(sheets://<spreadsheetID>/<range>), a remote host over SSH
(ssh://user@host[:port]:path) or the local store (sqlite://<path>).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
			log.Debug().Msg("Debug logging enabled")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&presetsFile, "config", "", "Country presets YAML file (default $VISASTAY_PRESETS)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")

	rootCmd.AddCommand(analyzeCmd, koreaCmd, presetCmd, importCmd)
}

// Execute runs the command tree
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
