package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lawson/optlib/utils"
)

// ErrInvalidTenor is returned for tenor strings that do not match <positive integer><D|W|M|Y>.
var ErrInvalidTenor = errors.New("invalid tenor")

// TenorUnit is one of D, W, M, Y.
type TenorUnit byte

const (
	UnitDay   TenorUnit = 'D'
	UnitWeek  TenorUnit = 'W'
	UnitMonth TenorUnit = 'M'
	UnitYear  TenorUnit = 'Y'
)

// Tenor is a parsed tenor like 3M or 1Y.
type Tenor struct {
	N    int
	Unit TenorUnit
}

func (t Tenor) String() string {
	return fmt.Sprintf("%d%c", t.N, t.Unit)
}

// Years returns the tenor length as a rough year count, used for axis ordering.
func (t Tenor) Years() float64 {
	switch t.Unit {
	case UnitDay:
		return float64(t.N) / 365.0
	case UnitWeek:
		return float64(t.N) * 7.0 / 365.0
	case UnitMonth:
		return float64(t.N) / 12.0
	default:
		return float64(t.N)
	}
}

// ParseTenor parses a tenor string like "1D", "2W", "3M", "5Y".
func ParseTenor(s string) (Tenor, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if len(trimmed) < 2 {
		return Tenor{}, fmt.Errorf("ParseTenor: %q: %w", s, ErrInvalidTenor)
	}

	unit := TenorUnit(trimmed[len(trimmed)-1])
	switch unit {
	case UnitDay, UnitWeek, UnitMonth, UnitYear:
	default:
		return Tenor{}, fmt.Errorf("ParseTenor: %q: unit must be one of D/W/M/Y: %w", s, ErrInvalidTenor)
	}

	digits := trimmed[:len(trimmed)-1]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Tenor{}, fmt.Errorf("ParseTenor: %q: count must be a positive integer: %w", s, ErrInvalidTenor)
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return Tenor{}, fmt.Errorf("ParseTenor: %q: count must be a positive integer: %w", s, ErrInvalidTenor)
	}

	return Tenor{N: n, Unit: unit}, nil
}

// Advance shifts t forward by the tenor and rolls the result to a business day
// under the given convention. Day tenors advance whole business days; week,
// month and year tenors advance calendar time first and then roll.
func Advance(cal CalendarID, t time.Time, tenor Tenor, conv Convention) (time.Time, error) {
	switch tenor.Unit {
	case UnitDay:
		return AddBusinessDays(cal, t, tenor.N), nil
	case UnitWeek:
		return Adjust(cal, t.AddDate(0, 0, 7*tenor.N), conv)
	case UnitMonth:
		return Adjust(cal, utils.AddMonth(t, tenor.N), conv)
	case UnitYear:
		return Adjust(cal, utils.AddMonth(t, 12*tenor.N), conv)
	default:
		return time.Time{}, fmt.Errorf("Advance: %q: %w", tenor, ErrInvalidTenor)
	}
}

// AdvanceTenor parses and advances in one step.
func AdvanceTenor(cal CalendarID, t time.Time, tenor string, conv Convention) (time.Time, error) {
	parsed, err := ParseTenor(tenor)
	if err != nil {
		return time.Time{}, err
	}
	return Advance(cal, t, parsed, conv)
}
