package cli

import (
	"visastay/internal/domain/stay"

	"github.com/spf13/cobra"
)

var analyzeOpts struct {
	analysisFlags
	airports       string
	country        string
	window         int
	maxDays        int
	maxConsecutive int
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze stays for any country or region",
	Example: `  # South Korea: 90 days in 180, max 60 consecutive
  visastay analyze -f flights.csv -a ICN,GMP,CJU,PUS -c "South Korea" -w 180 -m 90 -x 60

  # Schengen: 90 days in 180
  visastay analyze -f flights.csv -a CDG,AMS,FCO,MAD -c Schengen -w 180 -m 90`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules := stay.RuleSet{
			WindowDays:         analyzeOpts.window,
			MaxDaysInWindow:    analyzeOpts.maxDays,
			MaxConsecutiveDays: analyzeOpts.maxConsecutive,
		}
		codes := stay.ParseLocationCodes(analyzeOpts.airports)
		return runAnalysis(cmd, analyzeOpts.analysisFlags, analyzeOpts.country, codes, rules)
	},
}

func init() {
	analyzeOpts.bind(analyzeCmd, "Flight log location (CSV path, sheets://, ssh:// or sqlite://)")
	analyzeCmd.Flags().StringVarP(&analyzeOpts.airports, "airports", "a", "", "Comma-separated location codes (e.g. ICN,GMP,CJU)")
	analyzeCmd.Flags().StringVarP(&analyzeOpts.country, "country", "c", "", "Country or region name for display")
	analyzeCmd.Flags().IntVarP(&analyzeOpts.window, "window", "w", 0, "Rolling window size in days (e.g. 180)")
	analyzeCmd.Flags().IntVarP(&analyzeOpts.maxDays, "max-days", "m", 0, "Maximum days allowed in the window (e.g. 90)")
	analyzeCmd.Flags().IntVarP(&analyzeOpts.maxConsecutive, "max-consecutive", "x", 0, "Maximum consecutive days per stay (0 = no limit)")

	for _, name := range []string{"file", "airports", "country", "window", "max-days"} {
		_ = analyzeCmd.MarkFlagRequired(name)
	}
}
