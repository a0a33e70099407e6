package services

import "time"

// DateOf strips the clock from t and returns its civil date at midnight UTC,
// which is how reservation dates are stored.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD form value into a stored date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

// WeekDates returns Sunday..Saturday of the week offset whole weeks away from
// the week containing today.
func WeekDates(today time.Time, offset int) []time.Time {
	today = DateOf(today)
	sunday := today.AddDate(0, 0, -int(today.Weekday()))
	start := sunday.AddDate(0, 0, 7*offset)

	out := make([]time.Time, 7)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}
