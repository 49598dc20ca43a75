package stay

import (
	"time"

	"cloud.google.com/go/civil"
)

// Clock supplies the default reference date
type Clock interface {
	Today() civil.Date
}

// SystemClock reads the local wall clock
type SystemClock struct{}

func (SystemClock) Today() civil.Date {
	return civil.DateOf(time.Now())
}

// FixedClock always returns the same date
type FixedClock civil.Date

func (c FixedClock) Today() civil.Date {
	return civil.Date(c)
}
