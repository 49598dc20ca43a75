package stay

import (
	"time"

	"visastay/internal/app"

	"cloud.google.com/go/civil"
)

// Direction of a border crossing relative to the target country
type Direction int

const (
	DirectionEntry Direction = iota + 1
	DirectionExit
)

func (d Direction) String() string {
	switch d {
	case DirectionEntry:
		return "entry"
	case DirectionExit:
		return "exit"
	default:
		return "unknown"
	}
}

// TravelEvent is one directional crossing into or out of the target country
type TravelEvent struct {
	Origin      string
	Destination string
	Direction   Direction
	Timestamp   time.Time
	Label       string
	Leg         *app.FlightLeg
}

// Date returns the calendar date of the event as recorded in the log
func (e *TravelEvent) Date() civil.Date {
	return civil.DateOf(e.Timestamp)
}

// Route returns "FROM → TO"
func (e *TravelEvent) Route() string {
	return e.Origin + " → " + e.Destination
}

// Stay is one interval of presence in the country, bounded by a matched
// entry and exit. Exit is nil for an open stay counted through the
// reference date.
type Stay struct {
	Entry     *TravelEvent
	Exit      *TravelEvent
	EntryDate civil.Date
	ExitDate  civil.Date
	Open      bool
}

// TotalDays returns the inclusive length of the stay (0 for malformed pairs)
func (s Stay) TotalDays() int {
	return DaysBetween(s.EntryDate, s.ExitDate)
}

// Window is an inclusive range of calendar dates
type Window struct {
	Start civil.Date
	End   civil.Date
}

// RollingWindow returns the window of the given size ending on end
func RollingWindow(end civil.Date, days int) Window {
	return Window{Start: end.AddDays(-(days - 1)), End: end}
}

// Days returns the number of calendar days the window spans
func (w Window) Days() int {
	return DaysBetween(w.Start, w.End)
}

func (w Window) String() string {
	return w.Start.String() + " to " + w.End.String()
}
