package stay

import (
	"sort"
	"strings"
	"time"

	"visastay/internal/app"

	"github.com/rs/zerolog/log"
)

// LocationSet is the set of location (airport) codes that make up a country
type LocationSet map[string]struct{}

// NewLocationSet builds a set from codes, normalising case and dropping blanks
func NewLocationSet(codes ...string) LocationSet {
	set := make(LocationSet, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			set[code] = struct{}{}
		}
	}
	return set
}

// ParseLocationCodes parses a comma-separated list such as "ICN, GMP,CJU"
func ParseLocationCodes(list string) LocationSet {
	return NewLocationSet(strings.Split(list, ",")...)
}

// Contains reports whether code belongs to the set
func (s LocationSet) Contains(code string) bool {
	_, ok := s[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// Codes returns the codes in sorted order
func (s LocationSet) Codes() []string {
	codes := make([]string, 0, len(s))
	for code := range s {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ExtractEvents turns raw flight legs into border crossings for the country
// described by codes, ordered by event timestamp.
//
// Canceled legs, legs that stay inside or outside the country, and legs whose
// relevant timestamp cannot be resolved are dropped.
//
// Pure function: No I/O operations, input legs are not modified.
func ExtractEvents(legs []app.FlightLeg, codes LocationSet) []TravelEvent {
	events := make([]TravelEvent, 0, len(legs))

	for i := range legs {
		leg := &legs[i]
		if leg.Canceled {
			continue
		}

		direction, ok := classifyLeg(leg, codes)
		if !ok {
			continue
		}

		var ts *time.Time
		if direction == DirectionEntry {
			ts = firstResolved(leg.GateArrival, leg.Landing)
		} else {
			ts = firstResolved(leg.GateDeparture, leg.TakeOff)
		}
		if ts == nil {
			log.Debug().
				Str("flight", leg.Label()).
				Str("date", leg.Date).
				Str("direction", direction.String()).
				Msg("Skipping leg without a usable timestamp")
			continue
		}

		events = append(events, TravelEvent{
			Origin:      strings.ToUpper(leg.From),
			Destination: strings.ToUpper(leg.To),
			Direction:   direction,
			Timestamp:   *ts,
			Label:       leg.Label(),
			Leg:         leg,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	return events
}

// classifyLeg decides whether a leg enters or leaves the country
func classifyLeg(leg *app.FlightLeg, codes LocationSet) (Direction, bool) {
	fromInside := codes.Contains(leg.From)
	toInside := codes.Contains(leg.To)

	switch {
	case toInside && !fromInside:
		return DirectionEntry, true
	case fromInside && !toInside:
		return DirectionExit, true
	default:
		return 0, false
	}
}

func firstResolved(primary, fallback *time.Time) *time.Time {
	if primary != nil && !primary.IsZero() {
		return primary
	}
	if fallback != nil && !fallback.IsZero() {
		return fallback
	}
	return nil
}
