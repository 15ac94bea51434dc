package utils

import "time"

// Clock supplies the current time so future-date and advance-booking checks
// can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
