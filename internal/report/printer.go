package report

import (
	"fmt"
	"io"
	"strings"

	"visastay/internal/domain/stay"
	"visastay/internal/processing"

	"github.com/fatih/color"
)

var rule = strings.Repeat("=", 70)

// Printer renders an analysis as a human-readable report
type Printer struct {
	out     io.Writer
	heading *color.Color
	good    *color.Color
	warn    *color.Color
	bad     *color.Color
	dim     *color.Color
}

// NewPrinter creates a printer writing to out. Colour follows fatih/color's
// terminal and NO_COLOR detection unless noColor forces it off.
func NewPrinter(out io.Writer, noColor bool) *Printer {
	p := &Printer{
		out:     out,
		heading: color.New(color.Bold),
		good:    color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		bad:     color.New(color.FgRed, color.Bold),
		dim:     color.New(color.Faint),
	}
	if noColor {
		for _, c := range []*color.Color{p.heading, p.good, p.warn, p.bad, p.dim} {
			c.DisableColor()
		}
	}
	return p
}

// Print writes the full report for analysis
func (p *Printer) Print(a *processing.Analysis) {
	p.header(a)

	switch a.Status {
	case processing.StatusNoEvents:
		p.bad.Fprintf(p.out, "No flights found to/from %s\n", a.Country)
		return
	case processing.StatusNoStays:
		p.bad.Fprintf(p.out, "No completed stays found in %s\n", a.Country)
		p.warnings(a)
		return
	}

	p.stays(a)
	p.summary(a)
	p.availability(a)
	p.warnings(a)
}

func (p *Printer) header(a *processing.Analysis) {
	p.heading.Fprintf(p.out, "Analyzing visa-free stays: %s\n", a.Country)
	fmt.Fprintln(p.out, rule)
	fmt.Fprintf(p.out, "Reference date: %s\n", a.ReferenceDate)
	fmt.Fprintf(p.out, "%d-day window: %s\n", a.Rules.WindowDays, a.Window)
	p.dim.Fprintf(p.out, "Locations: %s\n", strings.Join(a.Codes, ", "))
	fmt.Fprintf(p.out, "\n%s\n\n", rule)
}

func (p *Printer) stays(a *processing.Analysis) {
	fmt.Fprintf(p.out, "All %s stays:\n", a.Country)
	fmt.Fprintln(p.out, rule)

	for i, row := range a.Stays {
		fmt.Fprintf(p.out, "\nStay #%d:\n", i+1)
		fmt.Fprintf(p.out, "  Entry:  %s\n", crossing(row.Stay.EntryDate.String(), row.Stay.Entry))
		if row.Stay.Open {
			p.warn.Fprintf(p.out, "  Exit:   (none, counted through %s)\n", row.Stay.ExitDate)
		} else {
			fmt.Fprintf(p.out, "  Exit:   %s\n", crossing(row.Stay.ExitDate.String(), row.Stay.Exit))
		}
		fmt.Fprintf(p.out, "  Total stay: %d days\n", row.TotalDays)

		switch {
		case !row.InWindow:
			p.dim.Fprintln(p.out, "  Days in window: 0 days (outside window)")
		case row.Clamped:
			fmt.Fprintf(p.out, "  Days in %s window: %d days (from %s)\n", a.Window.Start, row.WindowDays, row.Counted)
		default:
			p.good.Fprintf(p.out, "  Days in window: %d days ✓\n", row.WindowDays)
		}
	}
}

func crossing(date string, event *stay.TravelEvent) string {
	if event == nil {
		return date
	}
	return fmt.Sprintf("%s - %s (%s)", date, event.Label, event.Route())
}

func (p *Printer) summary(a *processing.Analysis) {
	s := a.Summary

	fmt.Fprintf(p.out, "\n%s\n\n", rule)
	p.heading.Fprintln(p.out, "SUMMARY:")
	fmt.Fprintln(p.out, rule)
	fmt.Fprintf(p.out, "Total days in %s within rolling window: %d days\n", a.Country, s.UsedDays)
	fmt.Fprintf(p.out, "Maximum allowed days: %d days\n", s.MaxDays)
	if s.RemainingDays < 0 {
		p.bad.Fprintf(p.out, "Days remaining: %d days (over the limit)\n", s.RemainingDays)
	} else {
		fmt.Fprintf(p.out, "Days remaining: %d days\n", s.RemainingDays)
	}

	if a.Rules.HasConsecutiveCap() {
		p.warn.Fprintf(p.out, "\nNote: a single stay cannot exceed %d days consecutively\n", a.Rules.MaxConsecutiveDays)
	}

	if s.QuotaExhausted() {
		p.bad.Fprintf(p.out, "\nYou have exhausted your %d-day limit within the window.\n", s.MaxDays)
		fmt.Fprintf(p.out, "   You cannot enter %s until some days expire from the window.\n", a.Country)
		return
	}

	p.good.Fprintf(p.out, "\nIf you fly to %s today (%s):\n", a.Country, a.ReferenceDate)
	fmt.Fprintf(p.out, "   You can stay for up to %d days\n", s.MaxStayToday)
	if a.Rules.HasConsecutiveCap() {
		reason := "remaining days in window"
		if s.LimitedByCap {
			reason = fmt.Sprintf("%d-day consecutive stay rule", a.Rules.MaxConsecutiveDays)
		}
		fmt.Fprintf(p.out, "   (Limited by: %s)\n", reason)
	}
}

func (p *Printer) availability(a *processing.Analysis) {
	fmt.Fprintf(p.out, "\n%s\n\n", rule)
	p.heading.Fprintln(p.out, "FUTURE AVAILABILITY:")
	fmt.Fprintln(p.out, rule)

	for _, proj := range a.Projections {
		av := proj.Availability
		switch {
		case proj.Infeasible:
			p.bad.Fprintf(p.out, "\nA %d-day stay exceeds the %d-day consecutive stay limit\n", proj.DesiredDays, a.Rules.MaxConsecutiveDays)
		case av.AvailableToday:
			p.good.Fprintf(p.out, "\n✓ You can already stay %d days today!\n", proj.DesiredDays)
		case av.Found:
			p.heading.Fprintf(p.out, "\nTo stay %d days:\n", proj.DesiredDays)
			fmt.Fprintf(p.out, "   Wait until: %s (%d days from today)\n", av.Date, av.DaysFromReference)
			fmt.Fprintf(p.out, "   On that date, you will have used %d days in the window\n", av.UsedDays)
			if av.LimitedTo < av.AvailableDays {
				fmt.Fprintf(p.out, "   Available for stay: %d days (limited to %d by consecutive rule)\n", av.AvailableDays, av.LimitedTo)
			} else {
				fmt.Fprintf(p.out, "   Available for stay: %d days\n", av.AvailableDays)
			}
		default:
			p.warn.Fprintf(p.out, "\nCannot determine a date for a %d-day stay within the next year\n", proj.DesiredDays)
		}
	}
}

func (p *Printer) warnings(a *processing.Analysis) {
	w := a.Warnings
	if !w.Any() {
		return
	}

	fmt.Fprintf(p.out, "\n%s\n\n", rule)
	p.warn.Fprintln(p.out, "WARNINGS:")
	fmt.Fprintln(p.out, rule)

	if w.OpenEntry != nil {
		if w.OpenStayCounted {
			p.warn.Fprintf(p.out, "Entry on %s (%s) has no exit; counted as an ongoing stay through %s\n",
				w.OpenEntry.Date(), w.OpenEntry.Label, a.ReferenceDate)
		} else {
			p.warn.Fprintf(p.out, "Entry on %s (%s) has no exit and is not counted (use --include-open-stay)\n",
				w.OpenEntry.Date(), w.OpenEntry.Label)
		}
	}
	for _, e := range w.DiscardedEntries {
		p.warn.Fprintf(p.out, "Entry on %s (%s) was followed by another entry and ignored\n", e.Date(), e.Label)
	}
	for _, e := range w.OrphanExits {
		p.warn.Fprintf(p.out, "Exit on %s (%s) has no matching entry and was ignored\n", e.Date(), e.Label)
	}
}
