package validation

import (
	"strings"
	"time"
)

// acquisitionLayouts are tried in order when parsing an acquisition date.
var acquisitionLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// ValidateAssetRegistrationDeadline checks that an asset acquired on
// acquisitionDate is still inside its registration window of windowDays as of
// today. Only calendar dates are compared; time of day is dropped from both
// sides. Same-day acquisition leaves exactly windowDays remaining.
func ValidateAssetRegistrationDeadline(acquisitionDate string, today time.Time, windowDays int) DeadlineResult {
	acquired, ok := parseCivilDate(acquisitionDate)
	if !ok {
		return DeadlineResult{Result: fail("acquisition date %q is not a valid date", acquisitionDate)}
	}

	elapsed := daysBetween(acquired, civil(today))
	remaining := windowDays - elapsed
	if remaining < 0 {
		return DeadlineResult{
			Result:        fail("asset registration deadline of %d days expired %d days ago", windowDays, -remaining),
			DaysRemaining: remaining,
		}
	}
	return DeadlineResult{Result: pass(), DaysRemaining: remaining}
}

// ValidateAssetRegistrationDeadline applies the catalog window against the
// engine clock.
func (e *Engine) ValidateAssetRegistrationDeadline(acquisitionDate string) DeadlineResult {
	return ValidateAssetRegistrationDeadline(acquisitionDate, e.now(), e.catalog.RegistrationDeadlineDays())
}

func parseCivilDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range acquisitionLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return civil(t), true
		}
	}
	return time.Time{}, false
}

// civil keeps the calendar date of t as seen in t's own location, at UTC
// midnight, so day arithmetic is free of DST shifts.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}
