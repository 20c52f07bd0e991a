package curve_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lawson/optlib/calendar"
	"github.com/lawson/optlib/curve"
	"github.com/lawson/optlib/utils"
)

// Monday March 2, 2026. Under Modified Following on the weekend calendar the
// 3M pillar matures June 2 (92 days) and the 6M pillar September 2 (184 days).
var depositReference = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func buildDepositCurve(t *testing.T, extrapolate bool) *curve.Deposit {
	t.Helper()
	quotes := map[string]float64{
		"3M": 0.040,
		"6M": 0.038,
	}
	c, err := curve.NewDeposit(depositReference, quotes, calendar.Weekends, utils.Act360, extrapolate)
	if err != nil {
		t.Fatalf("NewDeposit error: %v", err)
	}
	return c
}

func TestDeposit_AnchorAndPillarDiscounts(t *testing.T) {
	t.Parallel()

	c := buildDepositCurve(t, false)

	df, err := c.Discount(depositReference)
	if err != nil {
		t.Fatalf("Discount error: %v", err)
	}
	if df != 1.0 {
		t.Fatalf("DF at reference: got %v want 1", df)
	}

	// Simple compounding at the pillar: DF = 1 / (1 + r*tau).
	tau3 := 92.0 / 360.0
	want3 := 1.0 / (1.0 + 0.040*tau3)
	df, err = c.Discount(time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Discount error: %v", err)
	}
	if math.Abs(df-want3) > 1e-12 {
		t.Fatalf("3M pillar DF: got %v want %v", df, want3)
	}

	tau6 := 184.0 / 360.0
	want6 := 1.0 / (1.0 + 0.038*tau6)
	df, err = c.Discount(time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Discount error: %v", err)
	}
	if math.Abs(df-want6) > 1e-12 {
		t.Fatalf("6M pillar DF: got %v want %v", df, want6)
	}
}

func TestDeposit_DiscountsDecrease(t *testing.T) {
	t.Parallel()

	c := buildDepositCurve(t, false)

	prev := 1.0
	for d := depositReference.AddDate(0, 0, 7); !d.After(c.MaxDate()); d = d.AddDate(0, 0, 7) {
		df, err := c.Discount(d)
		if err != nil {
			t.Fatalf("Discount(%s) error: %v", d.Format("2006-01-02"), err)
		}
		if df >= prev {
			t.Fatalf("DF not decreasing at %s: %v >= %v", d.Format("2006-01-02"), df, prev)
		}
		if df <= 0 {
			t.Fatalf("DF not positive at %s: %v", d.Format("2006-01-02"), df)
		}
		prev = df
	}
}

func TestDeposit_ZeroRateConsistency(t *testing.T) {
	t.Parallel()

	c := buildDepositCurve(t, false)

	d := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	df, err := c.Discount(d)
	if err != nil {
		t.Fatalf("Discount error: %v", err)
	}
	z, err := c.ZeroRate(d)
	if err != nil {
		t.Fatalf("ZeroRate error: %v", err)
	}
	tau, err := utils.YearFraction(depositReference, d, utils.Act360)
	if err != nil {
		t.Fatalf("YearFraction error: %v", err)
	}
	if math.Abs(math.Exp(-z*tau)-df) > 1e-12 {
		t.Fatalf("zero rate inconsistent with DF: exp(-z*t)=%v df=%v", math.Exp(-z*tau), df)
	}
}

func TestDeposit_ForwardRecoverDiscountRatio(t *testing.T) {
	t.Parallel()

	c := buildDepositCurve(t, false)

	d1 := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	f, err := c.ForwardRate(d1, d2)
	if err != nil {
		t.Fatalf("ForwardRate error: %v", err)
	}
	df1, _ := c.Discount(d1)
	df2, _ := c.Discount(d2)
	want := math.Log(df1/df2) / (92.0 / 360.0)
	if math.Abs(f-want) > 1e-12 {
		t.Fatalf("forward: got %v want %v", f, want)
	}
}

func TestDeposit_ExtrapolationGate(t *testing.T) {
	t.Parallel()

	beyond := time.Date(2027, 3, 2, 0, 0, 0, 0, time.UTC)

	noExtrap := buildDepositCurve(t, false)
	if _, err := noExtrap.Discount(beyond); !errors.Is(err, curve.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}

	extrap := buildDepositCurve(t, true)
	df, err := extrap.Discount(beyond)
	if err != nil {
		t.Fatalf("extrapolated Discount error: %v", err)
	}
	lastDF, err := extrap.Discount(extrap.MaxDate())
	if err != nil {
		t.Fatalf("Discount error: %v", err)
	}
	if df >= lastDF || df <= 0 {
		t.Fatalf("flat-forward extrapolation out of bounds: %v (last pillar %v)", df, lastDF)
	}
}

func TestDeposit_BeforeReference(t *testing.T) {
	t.Parallel()

	c := buildDepositCurve(t, false)
	if _, err := c.Discount(depositReference.AddDate(0, 0, -1)); !errors.Is(err, curve.ErrBeforeReference) {
		t.Fatalf("expected ErrBeforeReference, got %v", err)
	}
}

func TestNewDeposit_Validation(t *testing.T) {
	t.Parallel()

	if _, err := curve.NewDeposit(depositReference, nil, calendar.Weekends, utils.Act360, false); err == nil {
		t.Fatal("expected error for empty quotes")
	}

	bad := map[string]float64{"3X": 0.04}
	if _, err := curve.NewDeposit(depositReference, bad, calendar.Weekends, utils.Act360, false); !errors.Is(err, calendar.ErrInvalidTenor) {
		t.Fatalf("expected ErrInvalidTenor, got %v", err)
	}
}

func TestCurveTable(t *testing.T) {
	t.Parallel()

	c := buildDepositCurve(t, false)
	points, err := curve.Table(c, calendar.Weekends, []string{"1M", "3M", "6M"})
	if err != nil {
		t.Fatalf("Table error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	for i, p := range points {
		if p.Discount <= 0 || p.Discount > 1 {
			t.Fatalf("point %d: DF out of range: %v", i, p.Discount)
		}
		if i > 0 && !points[i].Date.After(points[i-1].Date) {
			t.Fatalf("point %d: dates not increasing", i)
		}
	}
	if points[1].Tenor != "3M" {
		t.Fatalf("tenor label mismatch: %q", points[1].Tenor)
	}
}
