package benchman

import "time"

// Clock is used by stopwatches to read the current time in a testable manner.
type Clock interface {
	Now() time.Time
}

type realtimeClock struct{}

func (realtimeClock) Now() time.Time { return time.Now() }
