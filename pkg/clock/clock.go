package clock

import "time"

// DateLayout is the calendar-day format used across appointment records.
const DateLayout = "2006-01-02"

// Clock abstracts the time source so upcoming/past partitioning is testable.
type Clock interface {
	Now() time.Time
	// Today returns the current calendar day formatted as DateLayout.
	Today() string
}

type systemClock struct{}

// System returns the wall clock.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// Fixed is a clock pinned to one instant, for tests.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}

func (f Fixed) Today() string {
	return f.Instant.Format(DateLayout)
}
