package app

import "time"

// FlightLeg represents a single row of a flight log export (one travel leg).
// Timestamp fields are nil when the source value is absent or unparseable.
type FlightLeg struct {
	Date     string // Scheduled date, display only
	Airline  string
	Flight   string
	From     string
	To       string
	Canceled bool

	GateDeparture *time.Time // Gate Departure (Actual)
	TakeOff       *time.Time // Take off (Actual)
	Landing       *time.Time // Landing (Actual)
	GateArrival   *time.Time // Gate Arrival (Actual)
}

// Label returns the carrier and flight identifier used in reports
func (l FlightLeg) Label() string {
	switch {
	case l.Airline == "":
		return l.Flight
	case l.Flight == "":
		return l.Airline
	default:
		return l.Airline + " " + l.Flight
	}
}
