package main

import (
	"fmt"
	"log"

	"github.com/lawson/optlib/curve"
	"github.com/lawson/optlib/marketdata"
	"github.com/lawson/optlib/model"
	"github.com/lawson/optlib/portfolio"
	"github.com/lawson/optlib/structure"
	"github.com/lawson/optlib/utils"
	"github.com/lawson/optlib/vol"
)

func main() {
	asOf := marketdata.FixtureDate()
	ch, err := marketdata.FixtureSource{}.ChainAsOf(nil, asOf)
	if err != nil {
		log.Fatal(err)
	}

	expiries := ch.Expiries()
	front := ch.ForExpiry(expiries[0])

	straddle, err := structure.Straddle(front, 1.0)
	if err != nil {
		log.Fatal(err)
	}
	cost, err := portfolio.CostMid(straddle)
	if err != nil {
		log.Fatal(err)
	}

	discount, err := curve.NewFlat(asOf, 0.04, utils.Act365F)
	if err != nil {
		log.Fatal(err)
	}
	dividend, err := curve.NewFlat(asOf, 0.01, utils.Act365F)
	if err != nil {
		log.Fatal(err)
	}
	flatVol, err := vol.NewFlat(0.22, asOf)
	if err != nil {
		log.Fatal(err)
	}
	m, err := model.NewEquityAnalytic(marketdata.FixtureSpot(), discount, dividend, flatVol, asOf, utils.Act365F)
	if err != nil {
		log.Fatal(err)
	}
	greeks, err := portfolio.NetGreeks(straddle, m)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Front expiry: %s\n", expiries[0].Format("2006-01-02"))
	fmt.Printf("Straddle cost (mid): %s\n", cost.StringFixed(2))
	fmt.Printf("Net delta: %.4f | Net gamma: %.4f | Net vega: %.4f\n", greeks.Delta, greeks.Gamma, greeks.Vega)
}
