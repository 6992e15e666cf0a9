package usecase

import "time"

// Clock returns the current time. Tests substitute a fixed one.
type Clock func() time.Time

// now truncates to milliseconds so timestamps survive every store unchanged.
func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC().Truncate(time.Millisecond)
	}
	return c().UTC().Truncate(time.Millisecond)
}
