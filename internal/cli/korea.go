package cli

import (
	"visastay/internal/config"
	"visastay/internal/domain/stay"

	"github.com/spf13/cobra"
)

var koreaOpts analysisFlags

var koreaCmd = &cobra.Command{
	Use:   "korea",
	Short: "Analyze South Korea stays (90 days in 180, max 60 consecutive)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		preset := config.KoreaPreset
		return runAnalysis(cmd, koreaOpts, preset.DisplayName, stay.NewLocationSet(preset.Airports...), preset.Rules)
	},
}

func init() {
	koreaOpts.bind(koreaCmd, "Flight log location (default $VISASTAY_FILE)")
}
