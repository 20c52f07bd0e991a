package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	// NYSE covers US equity market holidays.
	NYSE CalendarID = "NYSE"
	// TARGET covers the Eurosystem TARGET2 closing days.
	TARGET CalendarID = "TARGET"
	// Weekends is a weekend-only calendar with no holidays.
	Weekends CalendarID = "WEEKENDS"
)

// Convention is a business day rolling convention.
type Convention string

const (
	Following         Convention = "FOLLOWING"
	ModifiedFollowing Convention = "MODFOLLOWING"
	Preceding         Convention = "PRECEDING"
	Unadjusted        Convention = "UNADJUSTED"
)

var (
	// ErrUnknownCalendar is returned for calendar names that are not supported.
	ErrUnknownCalendar = errors.New("unknown calendar")
	// ErrUnknownConvention is returned for rolling convention names that are not supported.
	ErrUnknownConvention = errors.New("unknown business day convention")
)

var nyseHolidays = map[string]struct{}{}
var targetHolidays = map[string]struct{}{}

func init() {
	nyseHolidays = make(map[string]struct{}, len(nyseHolidayList))
	for _, h := range nyseHolidayList {
		nyseHolidays[h] = struct{}{}
	}
	targetHolidays = make(map[string]struct{}, len(targetHolidayList))
	for _, h := range targetHolidayList {
		targetHolidays[h] = struct{}{}
	}
}

// ParseCalendar resolves a calendar name. Accepted aliases follow common market
// data shorthand (US, US:NYSE, EU:TARGET, NONE).
func ParseCalendar(name string) (CalendarID, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NYSE", "US", "US:NYSE":
		return NYSE, nil
	case "TARGET", "EU:TARGET":
		return TARGET, nil
	case "WEEKENDS", "NONE", "NULL":
		return Weekends, nil
	default:
		return "", fmt.Errorf("ParseCalendar: %q: %w", name, ErrUnknownCalendar)
	}
}

// ParseConvention resolves a business day convention name.
func ParseConvention(name string) (Convention, error) {
	switch strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(name)), " ", "") {
	case "FOLLOWING":
		return Following, nil
	case "MODFOLLOWING", "MODIFIEDFOLLOWING":
		return ModifiedFollowing, nil
	case "PRECEDING":
		return Preceding, nil
	case "UNADJUSTED":
		return Unadjusted, nil
	default:
		return "", fmt.Errorf("ParseConvention: %q: %w", name, ErrUnknownConvention)
	}
}

func isHoliday(cal CalendarID, t time.Time) bool {
	key := t.Format("2006-01-02")
	switch cal {
	case NYSE:
		_, ok := nyseHolidays[key]
		return ok
	case TARGET:
		_, ok := targetHolidays[key]
		return ok
	default:
		return false
	}
}

// IsBusinessDay checks weekends and holiday sets.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust rolls t to a business day under the given convention.
func Adjust(cal CalendarID, t time.Time, conv Convention) (time.Time, error) {
	switch conv {
	case Unadjusted:
		return t, nil
	case Following:
		return adjustFollowing(cal, t), nil
	case Preceding:
		return adjustPreceding(cal, t), nil
	case ModifiedFollowing:
		origMonth := t.Month()
		out := adjustFollowing(cal, t)
		if out.Month() != origMonth {
			out = adjustPreceding(cal, t)
		}
		return out, nil
	default:
		return time.Time{}, fmt.Errorf("Adjust: %q: %w", conv, ErrUnknownConvention)
	}
}

func adjustFollowing(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

func adjustPreceding(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}

// BusinessDays returns every business day in [start, end].
func BusinessDays(cal CalendarID, start, end time.Time) []time.Time {
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(cal, d) {
			out = append(out, d)
		}
	}
	return out
}
