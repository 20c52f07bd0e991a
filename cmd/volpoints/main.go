// Command volpoints solves implied-vol surface points from an option chain
// snapshot. With DATABASE_URL set it reads the chain from Postgres,
// otherwise it falls back to the bundled fixture chain.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/lawson/optlib/analytics"
	"github.com/lawson/optlib/chain"
	"github.com/lawson/optlib/curve"
	"github.com/lawson/optlib/marketdata"
	"github.com/lawson/optlib/utils"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file, using process environment")
	}

	asOf := marketdata.FixtureDate()
	if v := os.Getenv("AS_OF"); v != "" {
		parsed, err := utils.ParseDate(v)
		if err != nil {
			log.WithError(err).Fatal("bad AS_OF")
		}
		asOf = parsed
	}

	symbols := []string{"OPT"}
	if v := os.Getenv("SYMBOL"); v != "" {
		symbols = []string{v}
	}

	ch, err := loadChain(symbols, asOf, log)
	if err != nil {
		log.WithError(err).Fatal("load chain")
	}
	log.WithFields(logrus.Fields{"quotes": len(ch), "as_of": asOf.Format("2006-01-02")}).Info("chain loaded")

	discount, err := curve.NewFlat(asOf, 0.04, utils.Act365F)
	if err != nil {
		log.WithError(err).Fatal("discount curve")
	}
	dividend, err := curve.NewFlat(asOf, 0.01, utils.Act365F)
	if err != nil {
		log.WithError(err).Fatal("dividend curve")
	}

	points, err := analytics.BuildSurfacePoints(ch, analytics.MarketInputs{
		Spot:      marketdata.FixtureSpot(),
		Discount:  discount,
		Dividend:  dividend,
		Reference: asOf,
	}, 5, log)
	if err != nil {
		log.WithError(err).Fatal("build surface points")
	}

	for _, p := range points {
		log.WithFields(logrus.Fields{
			"expiry":    p.Expiry.Format("2006-01-02"),
			"right":     string(p.Right),
			"strike":    p.Strike,
			"moneyness": p.Moneyness,
			"mid":       p.Mid,
			"iv":        p.IV,
		}).Info("surface point")
	}
	log.WithField("points", len(points)).Info("done")
}

func loadChain(symbols []string, asOf time.Time, log *logrus.Logger) (chain.Chain, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Info("DATABASE_URL not set, using bundled fixture chain")
		return marketdata.FixtureSource{}.ChainAsOf(symbols, asOf)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := marketdata.OpenStore(ctx, dsn, log)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.ChainAsOfContext(ctx, symbols, asOf)
}
