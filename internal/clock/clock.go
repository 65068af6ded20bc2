// Package clock stamps action log entries
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock -source=clock.go

// Clock provides time functionality
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current local time
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Fixed always reports the same instant
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}
