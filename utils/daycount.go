package utils

import (
	"errors"
	"fmt"
	"time"
)

// Supported day count conventions.
const (
	Act360     = "ACT/360"
	Act365F    = "ACT/365F"
	Thirty360  = "30/360"
	ThirtyE360 = "30E/360"
)

// ErrUnknownDayCount is returned for day count convention names that are not supported.
var ErrUnknownDayCount = errors.New("unknown day count convention")

// ValidateDayCount checks that convention is one of the supported conventions.
func ValidateDayCount(convention string) error {
	switch convention {
	case Act360, Act365F, Thirty360, ThirtyE360:
		return nil
	default:
		return fmt.Errorf("ValidateDayCount: %q: %w", convention, ErrUnknownDayCount)
	}
}

// YearFraction computes the year fraction between two dates using the specified
// day count convention. The result is never negative: if end is before start
// the fraction is clamped to zero.
func YearFraction(start, end time.Time, convention string) (float64, error) {
	if err := ValidateDayCount(convention); err != nil {
		return 0, fmt.Errorf("YearFraction: %q: %w", convention, ErrUnknownDayCount)
	}
	if end.Before(start) {
		return 0, nil
	}

	switch convention {
	case Act360:
		return Days(start, end) / 360.0, nil
	case Act365F:
		return Days(start, end) / 365.0, nil
	case Thirty360:
		// 30/360 US (bond basis): D2 is capped only when D1 was capped.
		d1 := start.Day()
		d2 := end.Day()
		if d1 > 30 {
			d1 = 30
		}
		if d2 > 30 && d1 == 30 {
			d2 = 30
		}
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0, nil
	default:
		// 30E/360 (Eurobond basis): D1 and D2 are both capped at 30.
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0, nil
	}
}
