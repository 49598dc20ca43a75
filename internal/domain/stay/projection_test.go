package stay

import (
	"errors"
	"reflect"
	"testing"
)

var koreaRules = RuleSet{WindowDays: 180, MaxDaysInWindow: 90, MaxConsecutiveDays: 60}

func TestFindAvailabilityDateWaitsForDaysToExpire(t *testing.T) {
	// 90 days used: 2025-01-01 .. 2025-03-31
	stays := []Stay{stayBetween(t, "2025-01-01", "2025-03-31")}
	ref := mustDate(t, "2025-03-31")

	result, err := FindAvailabilityDate(stays, ref, koreaRules, 30)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !result.Found {
		t.Fatal("Expected a date within the horizon")
	}
	if result.AvailableToday {
		t.Error("Quota is exhausted; must not be available on the reference date")
	}
	if result.Date.String() != "2025-07-29" {
		t.Errorf("Expected 2025-07-29, got %s", result.Date)
	}
	if result.DaysFromReference != 120 {
		t.Errorf("Expected 120 days from reference, got %d", result.DaysFromReference)
	}
	if result.UsedDays != 60 || result.AvailableDays != 30 || result.LimitedTo != 30 {
		t.Errorf("Unexpected accounting: used=%d available=%d limited=%d", result.UsedDays, result.AvailableDays, result.LimitedTo)
	}

	// The day before must not qualify
	previous := RollingWindow(result.Date.AddDays(-1), koreaRules.WindowDays)
	if used := DaysInWindow(stays, previous); used <= koreaRules.MaxDaysInWindow-30 {
		t.Errorf("Day before result already qualifies (used %d); search is not returning the earliest date", used)
	}
}

func TestFindAvailabilityDateAvailableToday(t *testing.T) {
	stays := []Stay{stayBetween(t, "2025-05-01", "2025-05-20")}
	ref := mustDate(t, "2025-06-01")

	result, err := FindAvailabilityDate(stays, ref, koreaRules, 60)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !result.Found || !result.AvailableToday {
		t.Fatalf("Expected availability today, got %+v", result)
	}
	if result.Date != ref || result.DaysFromReference != 0 {
		t.Errorf("Expected reference date, got %s (+%d)", result.Date, result.DaysFromReference)
	}
	if result.UsedDays != 20 || result.AvailableDays != 70 || result.LimitedTo != 60 {
		t.Errorf("Unexpected accounting: used=%d available=%d limited=%d", result.UsedDays, result.AvailableDays, result.LimitedTo)
	}
}

func TestFindAvailabilityDateRejectsInfeasibleStay(t *testing.T) {
	capped := RuleSet{WindowDays: 180, MaxDaysInWindow: 90, MaxConsecutiveDays: 60}

	result, err := FindAvailabilityDate(nil, mustDate(t, "2025-01-01"), capped, 90)

	if !errors.Is(err, ErrInfeasibleStay) {
		t.Fatalf("Expected ErrInfeasibleStay, got %v", err)
	}
	if result.Found {
		t.Error("Infeasible request must not report a date")
	}
}

func TestFindAvailabilityDateRejectsNonPositiveStay(t *testing.T) {
	for _, desired := range []int{0, -5} {
		_, err := FindAvailabilityDate(nil, mustDate(t, "2025-01-01"), koreaRules, desired)
		if !errors.Is(err, ErrInvalidDesiredStay) {
			t.Errorf("desired=%d: expected ErrInvalidDesiredStay, got %v", desired, err)
		}
	}
}

func TestFindAvailabilityDateInvalidRules(t *testing.T) {
	_, err := FindAvailabilityDate(nil, mustDate(t, "2025-01-01"), RuleSet{WindowDays: 0, MaxDaysInWindow: 90}, 30)
	if !errors.Is(err, ErrInvalidRuleSet) {
		t.Errorf("Expected ErrInvalidRuleSet, got %v", err)
	}
}

func TestFindAvailabilityDateHorizonExhausted(t *testing.T) {
	rules := RuleSet{WindowDays: 730, MaxDaysInWindow: 700}
	ref := mustDate(t, "2025-06-30")
	stays := []Stay{{EntryDate: ref.AddDays(-699), ExitDate: ref}}

	result, err := FindAvailabilityDate(stays, ref, rules, 400)
	if err != nil {
		t.Fatalf("Horizon exhaustion is not an error, got %v", err)
	}
	if result.Found {
		t.Errorf("Expected no date within %d days, got %s", ProjectionHorizonDays, result.Date)
	}
}

func TestFindAvailabilityDateDesiredAboveQuota(t *testing.T) {
	rules := RuleSet{WindowDays: 180, MaxDaysInWindow: 90}

	result, err := FindAvailabilityDate(nil, mustDate(t, "2025-01-01"), rules, 91)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Found {
		t.Error("A stay longer than the quota can never become available")
	}
}

func TestMaxStayToday(t *testing.T) {
	tests := []struct {
		name          string
		used          int
		rules         RuleSet
		expectedDays  int
		expectedByCap bool
	}{
		{"cap binds", 10, koreaRules, 60, true},
		{"remaining binds", 50, koreaRules, 40, false},
		{"remaining equals cap", 30, koreaRules, 60, true},
		{"no cap", 10, RuleSet{WindowDays: 180, MaxDaysInWindow: 90}, 80, false},
		{"exhausted", 90, koreaRules, 0, false},
		{"over quota", 95, koreaRules, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days, byCap := MaxStayToday(tt.used, tt.rules)
			if days != tt.expectedDays || byCap != tt.expectedByCap {
				t.Errorf("MaxStayToday(%d) = (%d, %v), expected (%d, %v)", tt.used, days, byCap, tt.expectedDays, tt.expectedByCap)
			}
		})
	}
}

func TestDesiredStayLengths(t *testing.T) {
	tests := []struct {
		name     string
		cap      int
		expected []int
	}{
		{"no cap", 0, []int{30, 60}},
		{"cap 60", 60, []int{30, 60}},
		{"cap 90", 90, []int{30, 60}},
		{"cap 45", 45, []int{30}},
		{"cap 20", 20, []int{30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := RuleSet{WindowDays: 180, MaxDaysInWindow: 90, MaxConsecutiveDays: tt.cap}
			if got := DesiredStayLengths(rules); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("DesiredStayLengths() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestRuleSetValidate(t *testing.T) {
	tests := []struct {
		name    string
		rules   RuleSet
		wantErr bool
	}{
		{"korea", koreaRules, false},
		{"schengen style", RuleSet{WindowDays: 180, MaxDaysInWindow: 90}, false},
		{"zero window", RuleSet{WindowDays: 0, MaxDaysInWindow: 90}, true},
		{"zero quota", RuleSet{WindowDays: 180, MaxDaysInWindow: 0}, true},
		{"quota above window", RuleSet{WindowDays: 30, MaxDaysInWindow: 90}, true},
		{"negative cap", RuleSet{WindowDays: 180, MaxDaysInWindow: 90, MaxConsecutiveDays: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rules.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRuleSet) {
				t.Errorf("Validate() error should wrap ErrInvalidRuleSet, got %v", err)
			}
		})
	}
}

func TestFixedClock(t *testing.T) {
	date := mustDate(t, "2025-10-18")
	var clock Clock = FixedClock(date)
	if clock.Today() != date {
		t.Errorf("FixedClock.Today() = %s, expected %s", clock.Today(), date)
	}
}
