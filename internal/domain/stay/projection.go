package stay

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
)

var (
	ErrInfeasibleStay     = errors.New("desired stay exceeds the consecutive-stay limit")
	ErrInvalidDesiredStay = errors.New("desired stay must be positive")
)

// Representative stay lengths reported in future availability
const (
	StandardStayDays = 30
	ExtendedStayDays = 60
)

// Availability is the outcome of a projection search for one stay length
type Availability struct {
	DesiredDays int

	// Found is false when no date within the horizon satisfies the quota
	Found bool

	// AvailableToday is true when the reference date itself qualifies
	AvailableToday bool

	Date              civil.Date
	DaysFromReference int
	UsedDays          int // days used in the window ending on Date
	AvailableDays     int // quota minus UsedDays
	LimitedTo         int // AvailableDays after the consecutive cap
}

// FindAvailabilityDate finds the earliest date on or after ref at which the
// traveler could enter and stay desiredDays without exceeding the quota of the
// rolling window ending on that date. No future travel is assumed.
//
// Returns ErrInfeasibleStay when desiredDays exceeds the consecutive cap. A
// result with Found == false (and a nil error) means the horizon was exhausted.
//
// Pure function: ref is passed in explicitly for deterministic results.
func FindAvailabilityDate(stays []Stay, ref civil.Date, rules RuleSet, desiredDays int) (Availability, error) {
	result := Availability{DesiredDays: desiredDays}

	if desiredDays <= 0 {
		return result, fmt.Errorf("%w: got %d", ErrInvalidDesiredStay, desiredDays)
	}
	if rules.HasConsecutiveCap() && desiredDays > rules.MaxConsecutiveDays {
		return result, fmt.Errorf("%w: %d > %d days", ErrInfeasibleStay, desiredDays, rules.MaxConsecutiveDays)
	}
	if err := rules.Validate(); err != nil {
		return result, err
	}

	maxUsed := rules.MaxDaysInWindow - desiredDays

	used := DaysInWindow(stays, RollingWindow(ref, rules.WindowDays))
	if used <= maxUsed {
		result.fill(rules, ref, 0, used)
		result.AvailableToday = true
		return result, nil
	}

	// used(d) is not monotonic in general, so scan every day to the horizon
	for k := 1; k <= ProjectionHorizonDays; k++ {
		candidate := ref.AddDays(k)
		used = DaysInWindow(stays, RollingWindow(candidate, rules.WindowDays))
		if used <= maxUsed {
			result.fill(rules, candidate, k, used)
			return result, nil
		}
	}

	return result, nil
}

func (a *Availability) fill(rules RuleSet, date civil.Date, daysFromRef, used int) {
	a.Found = true
	a.Date = date
	a.DaysFromReference = daysFromRef
	a.UsedDays = used
	a.AvailableDays = rules.MaxDaysInWindow - used
	a.LimitedTo = rules.CapStay(a.AvailableDays)
}

// MaxStayToday returns how many days could be stayed when entering on the
// reference date given used days in the current window. limitedByCap reports
// whether the consecutive cap, rather than the remaining quota, is the bound.
func MaxStayToday(used int, rules RuleSet) (days int, limitedByCap bool) {
	remaining := rules.MaxDaysInWindow - used
	if remaining <= 0 {
		return 0, false
	}
	days = rules.CapStay(remaining)
	return days, rules.HasConsecutiveCap() && days == rules.MaxConsecutiveDays
}

// DesiredStayLengths returns the stay lengths worth projecting for rules:
// 30 days always, 60 days when no cap forbids it.
func DesiredStayLengths(rules RuleSet) []int {
	if !rules.HasConsecutiveCap() || rules.MaxConsecutiveDays >= ExtendedStayDays {
		return []int{StandardStayDays, ExtendedStayDays}
	}
	return []int{StandardStayDays}
}
