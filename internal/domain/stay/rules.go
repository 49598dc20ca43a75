package stay

import (
	"errors"
	"fmt"
)

// ProjectionHorizonDays bounds the forward availability search
const ProjectionHorizonDays = 365

var ErrInvalidRuleSet = errors.New("invalid rule set")

// RuleSet describes a visa-free regime: at most MaxDaysInWindow days in any
// rolling window of WindowDays, and optionally at most MaxConsecutiveDays in a
// single stay (0 = no consecutive cap).
type RuleSet struct {
	WindowDays         int
	MaxDaysInWindow    int
	MaxConsecutiveDays int
}

// Validate checks the rule set is internally consistent
func (r RuleSet) Validate() error {
	if r.WindowDays <= 0 {
		return fmt.Errorf("%w: window must be positive, got %d", ErrInvalidRuleSet, r.WindowDays)
	}
	if r.MaxDaysInWindow <= 0 {
		return fmt.Errorf("%w: max days must be positive, got %d", ErrInvalidRuleSet, r.MaxDaysInWindow)
	}
	if r.MaxDaysInWindow > r.WindowDays {
		return fmt.Errorf("%w: max days %d exceeds window %d", ErrInvalidRuleSet, r.MaxDaysInWindow, r.WindowDays)
	}
	if r.MaxConsecutiveDays < 0 {
		return fmt.Errorf("%w: max consecutive days cannot be negative, got %d", ErrInvalidRuleSet, r.MaxConsecutiveDays)
	}
	return nil
}

// HasConsecutiveCap reports whether single stays are capped
func (r RuleSet) HasConsecutiveCap() bool {
	return r.MaxConsecutiveDays > 0
}

// CapStay applies the consecutive cap, if any, to a number of days
func (r RuleSet) CapStay(days int) int {
	if r.HasConsecutiveCap() && days > r.MaxConsecutiveDays {
		return r.MaxConsecutiveDays
	}
	return days
}
