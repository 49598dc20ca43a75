package cli

import (
	"errors"
	"fmt"
	"strings"

	"visastay/internal/app"
	"visastay/internal/domain/stay"
	"visastay/internal/processing"
	"visastay/internal/report"
	"visastay/internal/source"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"
)

var ErrInvalidReferenceDate = errors.New("invalid reference date")

// analysisFlags are shared by every command that runs an analysis
type analysisFlags struct {
	file            string
	date            string
	includeOpenStay bool
}

func (f *analysisFlags) bind(cmd *cobra.Command, fileUsage string) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", fileUsage)
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "Reference date YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&f.includeOpenStay, "include-open-stay", false, "Count an entry without exit through the reference date")
}

// parseReferenceDate returns nil for an empty value
func parseReferenceDate(value string) (*civil.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	date, err := civil.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidReferenceDate, value)
	}
	return &date, nil
}

// runAnalysis validates the request, opens the flight log and prints the report
func runAnalysis(cmd *cobra.Command, flags analysisFlags, country string, codes stay.LocationSet, rules stay.RuleSet) error {
	ref, err := parseReferenceDate(flags.date)
	if err != nil {
		return err
	}
	if err := rules.Validate(); err != nil {
		return err
	}
	if len(codes) == 0 {
		return processing.ErrNoLocationCodes
	}

	cfg := app.LoadConfig()
	location := flags.file
	if location == "" {
		location = cfg.FlightLogFile
	}
	if location == "" {
		return errors.New("no flight log given: pass --file or set VISASTAY_FILE")
	}

	ctx := cmd.Context()
	src, err := source.Open(ctx, location, source.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	analysis, err := processing.NewStayAnalyzer(src, stay.SystemClock{}).Analyze(ctx, processing.Request{
		Country:         country,
		Codes:           codes,
		Rules:           rules,
		ReferenceDate:   ref,
		IncludeOpenStay: flags.includeOpenStay,
	})
	if err != nil {
		return err
	}

	report.NewPrinter(cmd.OutOrStdout(), noColor).Print(analysis)
	return nil
}
