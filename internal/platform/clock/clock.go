package clock

import "time"

// Clock abstracts time so "today" and token expiry stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local wall time; the food log is a per-day view in the
// user's own timezone.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
