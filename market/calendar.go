package market

import "time"

// BusinessDays returns n consecutive weekdays starting at start, or at the
// first weekday after it when start falls on a weekend. Holidays are not
// observed. Times are truncated to midnight UTC.
func BusinessDays(start time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	cur := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, 0, n)
	for len(out) < n {
		if IsBusinessDay(cur) {
			out = append(out, cur)
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return out
}

func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
