package main

import (
	"fmt"
	"log"
	"time"

	"github.com/lawson/optlib/calendar"
	"github.com/lawson/optlib/curve"
	"github.com/lawson/optlib/instrument"
	"github.com/lawson/optlib/model"
	"github.com/lawson/optlib/option"
	"github.com/lawson/optlib/utils"
	"github.com/lawson/optlib/vol"
)

func main() {
	reference := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	fmt.Println("================================================================================")
	fmt.Println("EUROPEAN OPTION PRICING EXAMPLES")
	fmt.Println("================================================================================")
	fmt.Println("Valuation Date:", reference.Format("2006-01-02"))
	fmt.Println()

	fmt.Println("1. EQUITY CALL: S=100, K=105, T=1Y, r=5%, q=2%, vol=25%")
	priceEquityCall(reference)

	fmt.Println("\n2. FX OPTION (EURUSD STYLE): S=1.10, K=1.10, T=1Y, rd=4%, rf=1%, vol=10%")
	priceFXCall(reference)

	fmt.Println("\n3. IMPLIED VOL ROUND TRIP")
	impliedVolRoundTrip(reference)

	fmt.Println("\n4. DEPOSIT CURVE TABLE")
	printCurveTable(reference)

	fmt.Println("\n================================================================================")
}

func priceEquityCall(reference time.Time) {
	maturity := reference.AddDate(1, 0, 0)
	discount, err := curve.NewFlat(reference, 0.05, utils.Act365F)
	if err != nil {
		log.Fatal(err)
	}
	dividend, err := curve.NewFlat(reference, 0.02, utils.Act365F)
	if err != nil {
		log.Fatal(err)
	}
	flatVol, err := vol.NewFlat(0.25, reference)
	if err != nil {
		log.Fatal(err)
	}

	econ, err := option.NewVanilla(105, maturity, option.Call)
	if err != nil {
		log.Fatal(err)
	}
	opt, err := instrument.NewEquityOption(econ)
	if err != nil {
		log.Fatal(err)
	}
	opt.SetMarket(instrument.EquityMarket{
		Spot:      100,
		Discount:  discount,
		Dividend:  dividend,
		Vol:       flatVol,
		Reference: reference,
		DayCount:  utils.Act365F,
	})

	price, err := opt.Price()
	if err != nil {
		log.Fatal(err)
	}
	greeks, err := opt.Greeks()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("   Price:", utils.RoundTo(price, 4))
	fmt.Println("   Delta:", utils.RoundTo(greeks.Delta, 4), "| Gamma:", utils.RoundTo(greeks.Gamma, 4), "| Vega:", utils.RoundTo(greeks.Vega, 4))
	fmt.Println("   Theta:", utils.RoundTo(greeks.Theta, 4), "| Rho:", utils.RoundTo(greeks.Rho, 4))
}

func priceFXCall(reference time.Time) {
	maturity := reference.AddDate(1, 0, 0)
	domestic, err := curve.NewFlat(reference, 0.04, utils.Act365F)
	if err != nil {
		log.Fatal(err)
	}
	foreign, err := curve.NewFlat(reference, 0.01, utils.Act365F)
	if err != nil {
		log.Fatal(err)
	}
	flatVol, err := vol.NewFlat(0.10, reference)
	if err != nil {
		log.Fatal(err)
	}

	m, err := model.NewFXAnalytic(1.10, domestic, foreign, flatVol, reference, utils.Act365F)
	if err != nil {
		log.Fatal(err)
	}
	econ, err := option.NewVanilla(1.10, maturity, option.Call)
	if err != nil {
		log.Fatal(err)
	}
	price, err := m.Price(econ)
	if err != nil {
		log.Fatal(err)
	}
	delta, err := m.Delta(econ)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("   Price: %.6f | Delta: %.4f\n", price, delta)
}

func impliedVolRoundTrip(reference time.Time) {
	maturity := reference.AddDate(0, 6, 0)
	discount, err := curve.NewFlat(reference, 0.03, utils.Act365F)
	if err != nil {
		log.Fatal(err)
	}
	dividend, err := curve.NewFlat(reference, 0.00, utils.Act365F)
	if err != nil {
		log.Fatal(err)
	}
	flatVol, err := vol.NewFlat(0.22, reference)
	if err != nil {
		log.Fatal(err)
	}
	m, err := model.NewEquityAnalytic(100, discount, dividend, flatVol, reference, utils.Act365F)
	if err != nil {
		log.Fatal(err)
	}
	econ, err := option.NewVanilla(100, maturity, option.Call)
	if err != nil {
		log.Fatal(err)
	}
	target, err := m.Price(econ)
	if err != nil {
		log.Fatal(err)
	}
	iv, err := model.ImpliedVol(m, econ, target, model.DefaultSolverConfig())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("   Model vol: 22.00%% | Target price: %v | Recovered vol: %v%%\n",
		utils.RoundTo(target, 4), utils.RoundTo(iv*100, 2))
}

func printCurveTable(reference time.Time) {
	quotes := map[string]float64{
		"1M": 0.0430,
		"3M": 0.0428,
		"6M": 0.0421,
		"1Y": 0.0405,
	}
	dep, err := curve.NewDeposit(reference, quotes, calendar.TARGET, utils.Act360, false)
	if err != nil {
		log.Fatal(err)
	}
	points, err := curve.Table(dep, calendar.TARGET, []string{"1M", "3M", "6M", "1Y"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("   Tenor | Maturity   | Discount | Zero")
	for _, p := range points {
		fmt.Printf("   %-5s | %s | %.6f | %.4f%%\n", p.Tenor, p.Date.Format("2006-01-02"), p.Discount, p.Zero*100)
	}
}
