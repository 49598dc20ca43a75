package processing

import (
	"context"
	"errors"
	"fmt"

	"visastay/internal/domain/stay"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrNoLocationCodes = errors.New("no location codes given")

// Request describes one analysis run
type Request struct {
	Country string
	Codes   stay.LocationSet
	Rules   stay.RuleSet

	// ReferenceDate overrides the clock when set
	ReferenceDate *civil.Date

	// IncludeOpenStay counts an unterminated entry through the reference date
	IncludeOpenStay bool
}

// StayAnalyzer runs the extraction, reconstruction, accounting and projection
// stages over a flight log
type StayAnalyzer struct {
	source LegSourceInterface
	clock  stay.Clock
}

// NewStayAnalyzer creates a new stay analyzer
func NewStayAnalyzer(source LegSourceInterface, clock stay.Clock) *StayAnalyzer {
	return &StayAnalyzer{
		source: source,
		clock:  clock,
	}
}

// Analyze loads the flight log and computes stays, quota usage and future
// availability for the request. Rules are validated before the log is read.
func (a *StayAnalyzer) Analyze(ctx context.Context, req Request) (*Analysis, error) {
	if len(req.Codes) == 0 {
		return nil, ErrNoLocationCodes
	}
	if err := req.Rules.Validate(); err != nil {
		return nil, err
	}

	ref := a.clock.Today()
	if req.ReferenceDate != nil {
		ref = *req.ReferenceDate
	}

	analysis := &Analysis{
		RunID:         uuid.NewString(),
		Country:       req.Country,
		Codes:         req.Codes.Codes(),
		Rules:         req.Rules,
		ReferenceDate: ref,
		Window:        stay.RollingWindow(ref, req.Rules.WindowDays),
	}

	logger := log.With().
		Str("run_id", analysis.RunID).
		Str("country", req.Country).
		Logger()

	logger.Debug().
		Str("reference_date", ref.String()).
		Strs("codes", analysis.Codes).
		Int("window_days", req.Rules.WindowDays).
		Int("max_days", req.Rules.MaxDaysInWindow).
		Int("max_consecutive_days", req.Rules.MaxConsecutiveDays).
		Msg("Starting stay analysis")

	legs, err := a.source.LoadLegs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load flight log: %w", err)
	}

	events := stay.ExtractEvents(legs, req.Codes)
	analysis.EventCount = len(events)
	logger.Debug().Int("legs", len(legs)).Int("events", len(events)).Msg("Extracted border crossings")

	if len(events) == 0 {
		analysis.Status = StatusNoEvents
		logger.Info().Msg("No crossings found for country")
		return analysis, nil
	}

	recon := stay.ReconstructStays(events)
	stays := recon.Stays

	analysis.Warnings = Warnings{
		OpenEntry:        recon.OpenEntry,
		DiscardedEntries: recon.DiscardedEntries,
		OrphanExits:      recon.OrphanExits,
	}

	if recon.OpenEntry != nil {
		if req.IncludeOpenStay {
			stays = append(stays, stay.OpenStay(recon.OpenEntry, ref))
			analysis.Warnings.OpenStayCounted = true
		}
		logger.Warn().
			Str("entry_date", recon.OpenEntry.Date().String()).
			Str("flight", recon.OpenEntry.Label).
			Bool("counted", req.IncludeOpenStay).
			Msg("Entry has no matching exit")
	}
	for _, entry := range recon.DiscardedEntries {
		logger.Warn().
			Str("entry_date", entry.Date().String()).
			Str("flight", entry.Label).
			Msg("Entry superseded by a later entry before any exit")
	}
	for _, exit := range recon.OrphanExits {
		logger.Warn().
			Str("exit_date", exit.Date().String()).
			Str("flight", exit.Label).
			Msg("Exit without a preceding entry")
	}

	if len(stays) == 0 {
		analysis.Status = StatusNoStays
		logger.Info().Msg("No completed stays found")
		return analysis, nil
	}

	analysis.Stays = buildStayRows(stays, analysis.Window)
	analysis.Summary = summarize(stays, analysis.Window, req.Rules)

	for _, desired := range stay.DesiredStayLengths(req.Rules) {
		availability, err := stay.FindAvailabilityDate(stays, ref, req.Rules, desired)
		projection := Projection{DesiredDays: desired, Availability: availability}
		if err != nil {
			if !errors.Is(err, stay.ErrInfeasibleStay) {
				return nil, fmt.Errorf("projection for %d days: %w", desired, err)
			}
			projection.Infeasible = true
		}
		analysis.Projections = append(analysis.Projections, projection)
	}

	logger.Info().
		Int("stays", len(stays)).
		Int("used_days", analysis.Summary.UsedDays).
		Int("remaining_days", analysis.Summary.RemainingDays).
		Int("max_stay_today", analysis.Summary.MaxStayToday).
		Msg("Stay analysis complete")

	return analysis, nil
}

func buildStayRows(stays []stay.Stay, window stay.Window) []StayRow {
	rows := make([]StayRow, 0, len(stays))
	for _, s := range stays {
		days, counted, ok := stay.Contribution(s, window)
		row := StayRow{
			Stay:       s,
			TotalDays:  s.TotalDays(),
			WindowDays: days,
			InWindow:   ok,
		}
		if ok {
			row.Counted = counted
			row.Clamped = counted.Start != s.EntryDate || counted.End != s.ExitDate
		}
		rows = append(rows, row)
	}
	return rows
}

func summarize(stays []stay.Stay, window stay.Window, rules stay.RuleSet) Summary {
	used := stay.DaysInWindow(stays, window)
	maxToday, limitedByCap := stay.MaxStayToday(used, rules)
	return Summary{
		UsedDays:      used,
		MaxDays:       rules.MaxDaysInWindow,
		RemainingDays: rules.MaxDaysInWindow - used,
		MaxStayToday:  maxToday,
		LimitedByCap:  limitedByCap,
	}
}
