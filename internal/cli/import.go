package cli

import (
	"fmt"

	"visastay/internal/app"
	"visastay/internal/processing"
	"visastay/internal/source"
	"visastay/internal/store/sqlite"

	"github.com/spf13/cobra"
)

var importOpts struct {
	file   string
	dbPath string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a flight log into the local store",
	Long: `Copy a flight log into the local SQLite store so later runs can read
it with -f sqlite://<path>. Legs already stored are updated in place.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.LoadConfig()
		dbPath := importOpts.dbPath
		if dbPath == "" {
			dbPath = cfg.DatabasePath
		}

		ctx := cmd.Context()
		src, err := source.Open(ctx, importOpts.file, source.OptionsFromConfig(cfg))
		if err != nil {
			return err
		}

		store, err := sqlite.Open(ctx, sqlite.Config{Path: dbPath})
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := processing.NewImporter(src, store).Import(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d flight legs into %s\n", n, dbPath)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importOpts.file, "file", "f", "", "Flight log location to import (CSV path, sheets:// or ssh://)")
	importCmd.Flags().StringVar(&importOpts.dbPath, "db", "", "SQLite store path (default $VISASTAY_DB)")
	_ = importCmd.MarkFlagRequired("file")
}
