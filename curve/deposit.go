package curve

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lawson/optlib/calendar"
	"github.com/lawson/optlib/utils"
)

type pillar struct {
	tenor string
	date  time.Time
	t     float64
	df    float64
}

// Deposit is a discount curve bootstrapped from money-market deposit quotes.
//
// Each quote is a simple-compounded rate for a tenor; deposits are
// non-recursive so the discount factors are constructed directly:
// DF(T_i) = 1 / (1 + r_i * tau_i). Between pillars discount factors are
// log-linearly interpolated; beyond the last pillar the curve extrapolates
// flat-forward, but only when extrapolation was explicitly enabled.
type Deposit struct {
	reference   time.Time
	cal         calendar.CalendarID
	dayCount    string
	extrapolate bool
	pillars     []pillar
}

// NewDeposit bootstraps a deposit curve anchored at reference.
// Quotes map tenor strings (e.g. "3M") to decimal rates.
func NewDeposit(reference time.Time, quotes map[string]float64, cal calendar.CalendarID, dayCount string, extrapolate bool) (*Deposit, error) {
	if reference.IsZero() {
		return nil, fmt.Errorf("NewDeposit: reference date is required")
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("NewDeposit: at least one deposit quote is required")
	}
	if err := utils.ValidateDayCount(dayCount); err != nil {
		return nil, fmt.Errorf("NewDeposit: %w", err)
	}

	pillars := make([]pillar, 0, len(quotes)+1)
	pillars = append(pillars, pillar{tenor: "0D", date: reference, t: 0, df: 1.0})

	for tenor, rate := range quotes {
		maturity, err := calendar.AdvanceTenor(cal, reference, tenor, calendar.ModifiedFollowing)
		if err != nil {
			return nil, fmt.Errorf("NewDeposit: tenor %q: %w", tenor, err)
		}
		tau, err := utils.YearFraction(reference, maturity, dayCount)
		if err != nil {
			return nil, fmt.Errorf("NewDeposit: %w", err)
		}
		if tau <= 0 {
			return nil, fmt.Errorf("NewDeposit: tenor %q matures on or before the reference date", tenor)
		}
		pillars = append(pillars, pillar{
			tenor: tenor,
			date:  maturity,
			t:     tau,
			df:    1.0 / (1.0 + rate*tau),
		})
	}

	sort.Slice(pillars, func(i, j int) bool { return pillars[i].t < pillars[j].t })
	for i := 1; i < len(pillars); i++ {
		if pillars[i].t == pillars[i-1].t {
			return nil, fmt.Errorf("NewDeposit: tenors %q and %q resolve to the same maturity",
				pillars[i-1].tenor, pillars[i].tenor)
		}
	}

	return &Deposit{
		reference:   reference,
		cal:         cal,
		dayCount:    dayCount,
		extrapolate: extrapolate,
		pillars:     pillars,
	}, nil
}

// ReferenceDate returns the anchor date.
func (c *Deposit) ReferenceDate() time.Time { return c.reference }

// DayCount returns the curve's day count convention.
func (c *Deposit) DayCount() string { return c.dayCount }

// MaxDate returns the last pillar maturity.
func (c *Deposit) MaxDate() time.Time { return c.pillars[len(c.pillars)-1].date }

func (c *Deposit) Discount(d time.Time) (float64, error) {
	if d.Before(c.reference) {
		return 0, fmt.Errorf("Deposit.Discount: %s: %w", d.Format("2006-01-02"), ErrBeforeReference)
	}
	t, err := utils.YearFraction(c.reference, d, c.dayCount)
	if err != nil {
		return 0, err
	}
	return c.discountAt(t, d)
}

func (c *Deposit) discountAt(t float64, d time.Time) (float64, error) {
	last := c.pillars[len(c.pillars)-1]
	if t > last.t {
		if !c.extrapolate {
			return 0, fmt.Errorf("Deposit.Discount: %s beyond last pillar %s: %w",
				d.Format("2006-01-02"), last.date.Format("2006-01-02"), ErrOutOfRange)
		}
		// Flat-forward: continue the last segment's forward rate.
		fwd := c.segmentForward(len(c.pillars) - 1)
		return last.df * math.Exp(-fwd*(t-last.t)), nil
	}

	// First pillar at or after t.
	i := sort.Search(len(c.pillars), func(i int) bool { return c.pillars[i].t >= t })
	if c.pillars[i].t == t {
		return c.pillars[i].df, nil
	}

	p1, p2 := c.pillars[i-1], c.pillars[i]
	fwd := math.Log(p1.df/p2.df) / (p2.t - p1.t)
	return p1.df * math.Exp(-fwd*(t-p1.t)), nil
}

// segmentForward returns the continuously compounded forward over the segment
// ending at pillar i.
func (c *Deposit) segmentForward(i int) float64 {
	p1, p2 := c.pillars[i-1], c.pillars[i]
	return math.Log(p1.df/p2.df) / (p2.t - p1.t)
}

func (c *Deposit) ZeroRate(d time.Time) (float64, error) {
	if d.Before(c.reference) {
		return 0, fmt.Errorf("Deposit.ZeroRate: %s: %w", d.Format("2006-01-02"), ErrBeforeReference)
	}
	t, err := utils.YearFraction(c.reference, d, c.dayCount)
	if err != nil {
		return 0, err
	}
	if t == 0 {
		// Zero rate at the anchor is the first segment's forward.
		return c.segmentForward(1), nil
	}
	df, err := c.discountAt(t, d)
	if err != nil {
		return 0, err
	}
	return -math.Log(df) / t, nil
}

func (c *Deposit) ForwardRate(d1, d2 time.Time) (float64, error) {
	if d2.Before(d1) {
		return 0, fmt.Errorf("Deposit.ForwardRate: end %s before start %s",
			d2.Format("2006-01-02"), d1.Format("2006-01-02"))
	}
	df1, err := c.Discount(d1)
	if err != nil {
		return 0, err
	}
	df2, err := c.Discount(d2)
	if err != nil {
		return 0, err
	}
	t1, err := utils.YearFraction(c.reference, d1, c.dayCount)
	if err != nil {
		return 0, err
	}
	t2, err := utils.YearFraction(c.reference, d2, c.dayCount)
	if err != nil {
		return 0, err
	}
	if t2 == t1 {
		return c.ZeroRate(d1)
	}
	return math.Log(df1/df2) / (t2 - t1), nil
}
