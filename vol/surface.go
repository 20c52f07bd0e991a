package vol

import (
	"fmt"
	"sort"
	"time"

	"github.com/lawson/optlib/calendar"
	"github.com/lawson/optlib/utils"
)

// Surface is a Black volatility surface on a (tenor x strike) grid with
// bilinear interpolation inside the grid and flat extrapolation beyond it
// when enabled.
type Surface struct {
	reference   time.Time
	dayCount    string
	extrapolate bool
	strikes     []float64
	expiries    []float64 // year fractions to each tenor's expiry date
	tenors      []string
	vols        [][]float64 // vols[tenorIdx][strikeIdx]
}

// NewSurface builds a surface from a grid. vols must have one row per tenor
// and each row must have one entry per strike; shape is validated before any
// curve state is built. Strikes must be strictly increasing, tenors must
// resolve to strictly increasing expiry dates, and every vol must be positive.
func NewSurface(reference time.Time, tenors []string, strikes []float64, vols [][]float64, cal calendar.CalendarID, dayCount string, extrapolate bool) (*Surface, error) {
	if len(tenors) == 0 || len(strikes) == 0 {
		return nil, fmt.Errorf("NewSurface: tenors and strikes must be non-empty: %w", ErrShapeMismatch)
	}
	if len(vols) != len(tenors) {
		return nil, fmt.Errorf("NewSurface: %d vol rows for %d tenors: %w", len(vols), len(tenors), ErrShapeMismatch)
	}
	for i, row := range vols {
		if len(row) != len(strikes) {
			return nil, fmt.Errorf("NewSurface: row %d has %d vols for %d strikes: %w",
				i, len(row), len(strikes), ErrShapeMismatch)
		}
	}
	if err := utils.ValidateDayCount(dayCount); err != nil {
		return nil, fmt.Errorf("NewSurface: %w", err)
	}

	for i := 1; i < len(strikes); i++ {
		if strikes[i] <= strikes[i-1] {
			return nil, fmt.Errorf("NewSurface: strikes must be strictly increasing at index %d", i)
		}
	}
	for i, row := range vols {
		for j, v := range row {
			if v <= 0 {
				return nil, fmt.Errorf("NewSurface: vols[%d][%d]=%v: %w", i, j, v, ErrNonPositiveVol)
			}
		}
	}

	expiries := make([]float64, len(tenors))
	for i, tenor := range tenors {
		d, err := calendar.AdvanceTenor(cal, reference, tenor, calendar.ModifiedFollowing)
		if err != nil {
			return nil, fmt.Errorf("NewSurface: tenor %q: %w", tenor, err)
		}
		t, err := utils.YearFraction(reference, d, dayCount)
		if err != nil {
			return nil, fmt.Errorf("NewSurface: %w", err)
		}
		expiries[i] = t
		if i > 0 && expiries[i] <= expiries[i-1] {
			return nil, fmt.Errorf("NewSurface: tenors must be strictly increasing at index %d (%q)", i, tenor)
		}
	}

	return &Surface{
		reference:   reference,
		dayCount:    dayCount,
		extrapolate: extrapolate,
		strikes:     append([]float64(nil), strikes...),
		expiries:    expiries,
		tenors:      append([]string(nil), tenors...),
		vols:        vols,
	}, nil
}

// ReferenceDate returns the anchor date.
func (s *Surface) ReferenceDate() time.Time { return s.reference }

func (s *Surface) Vol(expiry time.Time, strike float64) (float64, error) {
	t, err := utils.YearFraction(s.reference, expiry, s.dayCount)
	if err != nil {
		return 0, err
	}

	ti, tw, err := s.bracket(s.expiries, t, "expiry")
	if err != nil {
		return 0, err
	}
	ki, kw, err := s.bracket(s.strikes, strike, "strike")
	if err != nil {
		return 0, err
	}

	// Bilinear blend over the bracketing cell. Weights collapse to 0 on the
	// grid edges, which makes the extrapolated region flat.
	v00 := s.vols[ti][ki]
	v01 := s.vols[ti][min(ki+1, len(s.strikes)-1)]
	v10 := s.vols[min(ti+1, len(s.expiries)-1)][ki]
	v11 := s.vols[min(ti+1, len(s.expiries)-1)][min(ki+1, len(s.strikes)-1)]

	low := v00*(1-kw) + v01*kw
	high := v10*(1-kw) + v11*kw
	return low*(1-tw) + high*tw, nil
}

// bracket locates x on a strictly increasing axis and returns the lower index
// and the interpolation weight toward the next node. Outside the axis it
// clamps (weight 0 on the boundary node) when extrapolation is enabled.
func (s *Surface) bracket(axis []float64, x float64, what string) (int, float64, error) {
	if x <= axis[0] {
		if x < axis[0] && !s.extrapolate {
			return 0, 0, fmt.Errorf("Surface.Vol: %s %v below grid: %w", what, x, ErrOutOfRange)
		}
		return 0, 0, nil
	}
	last := len(axis) - 1
	if x >= axis[last] {
		if x > axis[last] && !s.extrapolate {
			return 0, 0, fmt.Errorf("Surface.Vol: %s %v above grid: %w", what, x, ErrOutOfRange)
		}
		return last, 0, nil
	}

	i := sort.SearchFloat64s(axis, x)
	if axis[i] == x {
		return i, 0, nil
	}
	i--
	w := (x - axis[i]) / (axis[i+1] - axis[i])
	return i, w, nil
}
