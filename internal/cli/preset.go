package cli

import (
	"fmt"
	"strings"

	"visastay/internal/app"
	"visastay/internal/config"
	"visastay/internal/domain/stay"

	"github.com/spf13/cobra"
)

var presetOpts struct {
	analysisFlags
	list bool
}

var presetCmd = &cobra.Command{
	Use:   "preset [name]",
	Short: "Analyze stays using a named country preset",
	Long: `Run an analysis with a built-in or configured country preset.
Presets from --config (or $VISASTAY_PRESETS) are merged over the built-ins.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := presetsFile
		if path == "" {
			path = app.LoadConfig().PresetsFile
		}

		presets, err := config.LoadPresets(path)
		if err != nil {
			return err
		}

		if presetOpts.list || len(args) == 0 {
			printPresets(cmd, presets)
			return nil
		}

		preset, err := config.LookupPreset(presets, args[0])
		if err != nil {
			return err
		}
		return runAnalysis(cmd, presetOpts.analysisFlags, preset.DisplayName, stay.NewLocationSet(preset.Airports...), preset.Rules)
	},
}

func printPresets(cmd *cobra.Command, presets map[string]config.CountryPreset) {
	out := cmd.OutOrStdout()
	for _, key := range config.PresetKeys(presets) {
		p := presets[key]
		consecutive := "no consecutive limit"
		if p.Rules.HasConsecutiveCap() {
			consecutive = fmt.Sprintf("max %d consecutive", p.Rules.MaxConsecutiveDays)
		}
		fmt.Fprintf(out, "%-12s %s: %d days in %d, %s [%s]\n",
			key, p.DisplayName, p.Rules.MaxDaysInWindow, p.Rules.WindowDays, consecutive, strings.Join(p.Airports, ","))
	}
}

func init() {
	presetOpts.bind(presetCmd, "Flight log location (default $VISASTAY_FILE)")
	presetCmd.Flags().BoolVarP(&presetOpts.list, "list", "l", false, "List available presets")
}
