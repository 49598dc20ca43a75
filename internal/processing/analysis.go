package processing

import (
	"visastay/internal/domain/stay"

	"cloud.google.com/go/civil"
)

// Status describes how far an analysis got
type Status int

const (
	StatusOK Status = iota
	StatusNoEvents
	StatusNoStays
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoEvents:
		return "no_events"
	case StatusNoStays:
		return "no_stays"
	default:
		return "unknown"
	}
}

// Analysis is the full result of one compliance run
type Analysis struct {
	RunID         string
	Country       string
	Codes         []string
	Rules         stay.RuleSet
	ReferenceDate civil.Date
	Window        stay.Window
	Status        Status
	EventCount    int

	Stays       []StayRow
	Summary     Summary
	Projections []Projection
	Warnings    Warnings
}

// StayRow is one reconstructed stay with its share of the current window
type StayRow struct {
	Stay       stay.Stay
	TotalDays  int
	WindowDays int
	InWindow   bool

	// Counted is the part of the stay inside the window; Clamped is true when
	// it differs from the stay itself
	Counted stay.Window
	Clamped bool
}

// Summary of quota usage on the reference date
type Summary struct {
	UsedDays      int
	MaxDays       int
	RemainingDays int // may be negative when over quota

	MaxStayToday int
	LimitedByCap bool
}

// QuotaExhausted reports whether no day can be added today
func (s Summary) QuotaExhausted() bool {
	return s.MaxStayToday <= 0
}

// Projection is the availability search outcome for one desired stay length
type Projection struct {
	DesiredDays  int
	Availability stay.Availability

	// Infeasible is set when the length exceeds the consecutive cap
	Infeasible bool
}

// Warnings collects irregularities found while pairing crossings
type Warnings struct {
	OpenEntry        *stay.TravelEvent
	OpenStayCounted  bool
	DiscardedEntries []*stay.TravelEvent
	OrphanExits      []*stay.TravelEvent
}

// Any reports whether there is anything to warn about
func (w Warnings) Any() bool {
	return w.OpenEntry != nil || len(w.DiscardedEntries) > 0 || len(w.OrphanExits) > 0
}
