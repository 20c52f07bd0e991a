package instrument_test

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/lawson/optlib/curve"
	"github.com/lawson/optlib/instrument"
	"github.com/lawson/optlib/model"
	"github.com/lawson/optlib/option"
	"github.com/lawson/optlib/utils"
	"github.com/lawson/optlib/vol"
)

var instReference = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func equityMarket(t *testing.T, spot, r, q, sigma float64) instrument.EquityMarket {
	t.Helper()
	discount, err := curve.NewFlat(instReference, r, utils.Act365F)
	if err != nil {
		t.Fatalf("NewFlat error: %v", err)
	}
	dividend, err := curve.NewFlat(instReference, q, utils.Act365F)
	if err != nil {
		t.Fatalf("NewFlat error: %v", err)
	}
	fv, err := vol.NewFlat(sigma, instReference)
	if err != nil {
		t.Fatalf("vol.NewFlat error: %v", err)
	}
	return instrument.EquityMarket{
		Spot:      spot,
		Discount:  discount,
		Dividend:  dividend,
		Vol:       fv,
		Reference: instReference,
		DayCount:  utils.Act365F,
	}
}

func TestEquityOption_PriceFromMarket(t *testing.T) {
	t.Parallel()

	econ, err := option.NewVanilla(105, instReference.AddDate(1, 0, 0), option.Call)
	if err != nil {
		t.Fatalf("NewVanilla error: %v", err)
	}
	opt, err := instrument.NewEquityOption(econ)
	if err != nil {
		t.Fatalf("NewEquityOption error: %v", err)
	}
	opt.SetMarket(equityMarket(t, 100, 0.05, 0.02, 0.25))

	price, err := opt.Price()
	if err != nil {
		t.Fatalf("Price error: %v", err)
	}
	if price <= 0 {
		t.Fatalf("price must be positive: %v", price)
	}

	greeks, err := opt.Greeks()
	if err != nil {
		t.Fatalf("Greeks error: %v", err)
	}
	if greeks.Delta <= 0 || greeks.Delta >= 1 {
		t.Fatalf("call delta out of range: %v", greeks.Delta)
	}
	if greeks.Gamma <= 0 || greeks.Vega <= 0 {
		t.Fatalf("gamma/vega must be positive: %+v", greeks)
	}
}

func TestEquityOption_MissingMarketInputs(t *testing.T) {
	t.Parallel()

	econ, err := option.NewVanilla(105, instReference.AddDate(1, 0, 0), option.Call)
	if err != nil {
		t.Fatalf("NewVanilla error: %v", err)
	}
	opt, err := instrument.NewEquityOption(econ)
	if err != nil {
		t.Fatalf("NewEquityOption error: %v", err)
	}

	_, err = opt.Price()
	var missing *instrument.MissingModelError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingModelError, got %v", err)
	}
	for _, name := range []string{"spot", "discount curve", "dividend curve", "vol", "reference date"} {
		found := false
		for _, m := range missing.Missing {
			if m == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing list should include %q: %v", name, missing.Missing)
		}
	}
	if !strings.Contains(missing.Error(), "spot") {
		t.Fatalf("error text should name the missing inputs: %v", missing)
	}
}

func TestEquityOption_ExplicitModelWins(t *testing.T) {
	t.Parallel()

	econ, err := option.NewVanilla(100, instReference.AddDate(1, 0, 0), option.Call)
	if err != nil {
		t.Fatalf("NewVanilla error: %v", err)
	}
	opt, err := instrument.NewEquityOption(econ)
	if err != nil {
		t.Fatalf("NewEquityOption error: %v", err)
	}
	opt.SetMarket(equityMarket(t, 100, 0.03, 0, 0.20))

	marketPrice, err := opt.Price()
	if err != nil {
		t.Fatalf("Price error: %v", err)
	}

	// An explicitly supplied model overrides the bound one.
	mkt := equityMarket(t, 100, 0.03, 0, 0.40)
	highVol, err := model.NewEquityAnalytic(mkt.Spot, mkt.Discount, mkt.Dividend, mkt.Vol, mkt.Reference, mkt.DayCount)
	if err != nil {
		t.Fatalf("NewEquityAnalytic error: %v", err)
	}
	explicitPrice, err := opt.Price(highVol)
	if err != nil {
		t.Fatalf("Price error: %v", err)
	}
	if explicitPrice <= marketPrice {
		t.Fatalf("40%% vol price %v should exceed 20%% vol price %v", explicitPrice, marketPrice)
	}

	// The explicit model is not sticky.
	again, err := opt.Price()
	if err != nil {
		t.Fatalf("Price error: %v", err)
	}
	if math.Abs(again-marketPrice) > 1e-12 {
		t.Fatalf("explicit model leaked into instrument state: %v vs %v", again, marketPrice)
	}
}

func TestEquityOption_SetMarketInvalidatesBoundModel(t *testing.T) {
	t.Parallel()

	econ, err := option.NewVanilla(100, instReference.AddDate(1, 0, 0), option.Call)
	if err != nil {
		t.Fatalf("NewVanilla error: %v", err)
	}
	opt, err := instrument.NewEquityOption(econ)
	if err != nil {
		t.Fatalf("NewEquityOption error: %v", err)
	}

	opt.SetMarket(equityMarket(t, 100, 0.03, 0, 0.20))
	lowVolPrice, err := opt.Price()
	if err != nil {
		t.Fatalf("Price error: %v", err)
	}

	opt.SetMarket(equityMarket(t, 100, 0.03, 0, 0.40))
	highVolPrice, err := opt.Price()
	if err != nil {
		t.Fatalf("Price error: %v", err)
	}
	if highVolPrice <= lowVolPrice {
		t.Fatalf("stale model after SetMarket: %v <= %v", highVolPrice, lowVolPrice)
	}
}

func TestEquityOption_ImpliedVolRoundTrip(t *testing.T) {
	t.Parallel()

	econ, err := option.NewVanilla(100, instReference.AddDate(0, 6, 0), option.Call)
	if err != nil {
		t.Fatalf("NewVanilla error: %v", err)
	}
	opt, err := instrument.NewEquityOption(econ)
	if err != nil {
		t.Fatalf("NewEquityOption error: %v", err)
	}
	opt.SetMarket(equityMarket(t, 100, 0.03, 0, 0.22))

	target, err := opt.Price()
	if err != nil {
		t.Fatalf("Price error: %v", err)
	}
	iv, err := opt.ImpliedVol(target, model.DefaultSolverConfig())
	if err != nil {
		t.Fatalf("ImpliedVol error: %v", err)
	}
	if math.Abs(iv-0.22) > 1e-6 {
		t.Fatalf("ImpliedVol: got %v want 0.22", iv)
	}
}
