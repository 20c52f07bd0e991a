// Package marketdata supplies option chain snapshots: bundled fixtures for
// development, a Postgres-backed store, and a synthetic source for
// backtests against model prices.
package marketdata

import (
	"time"

	"github.com/lawson/optlib/chain"
	"github.com/lawson/optlib/option"
)

// snapshotDate is the as-of date of the bundled fixture chain.
var snapshotDate = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

// fixtureSpot is the underlying spot the fixture mids were generated at.
const fixtureSpot = 100.0

// fixtureChain is a small SPX-like chain snapshot. Mids are roughly
// consistent with a 22 percent vol smile steepening into the wings.
var fixtureChain = chain.Chain{
	// one month
	{Symbol: "OPT", Right: option.Call, Strike: 90, Mid: 10.55, TTM: 0.0849, Moneyness: 0.90, Expiry: time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Call, Strike: 95, Mid: 6.10, TTM: 0.0849, Moneyness: 0.95, Expiry: time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Call, Strike: 100, Mid: 2.75, TTM: 0.0849, Moneyness: 1.00, Expiry: time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Call, Strike: 105, Mid: 0.95, TTM: 0.0849, Moneyness: 1.05, Expiry: time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Call, Strike: 110, Mid: 0.30, TTM: 0.0849, Moneyness: 1.10, Expiry: time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Put, Strike: 90, Mid: 0.45, TTM: 0.0849, Moneyness: 0.90, Expiry: time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Put, Strike: 95, Mid: 1.05, TTM: 0.0849, Moneyness: 0.95, Expiry: time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Put, Strike: 100, Mid: 2.65, TTM: 0.0849, Moneyness: 1.00, Expiry: time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Put, Strike: 105, Mid: 5.80, TTM: 0.0849, Moneyness: 1.05, Expiry: time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Put, Strike: 110, Mid: 10.15, TTM: 0.0849, Moneyness: 1.10, Expiry: time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)},
	// three months
	{Symbol: "OPT", Right: option.Call, Strike: 90, Mid: 11.70, TTM: 0.2493, Moneyness: 0.90, Expiry: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Call, Strike: 100, Mid: 4.85, TTM: 0.2493, Moneyness: 1.00, Expiry: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Call, Strike: 110, Mid: 1.35, TTM: 0.2493, Moneyness: 1.10, Expiry: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Put, Strike: 90, Mid: 1.25, TTM: 0.2493, Moneyness: 0.90, Expiry: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Put, Strike: 100, Mid: 4.45, TTM: 0.2493, Moneyness: 1.00, Expiry: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Put, Strike: 110, Mid: 10.75, TTM: 0.2493, Moneyness: 1.10, Expiry: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)},
	// six months
	{Symbol: "OPT", Right: option.Call, Strike: 90, Mid: 13.20, TTM: 0.5014, Moneyness: 0.90, Expiry: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Call, Strike: 100, Mid: 7.00, TTM: 0.5014, Moneyness: 1.00, Expiry: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Call, Strike: 110, Mid: 3.15, TTM: 0.5014, Moneyness: 1.10, Expiry: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Put, Strike: 90, Mid: 2.30, TTM: 0.5014, Moneyness: 0.90, Expiry: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Put, Strike: 100, Mid: 5.95, TTM: 0.5014, Moneyness: 1.00, Expiry: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)},
	{Symbol: "OPT", Right: option.Put, Strike: 110, Mid: 11.95, TTM: 0.5014, Moneyness: 1.10, Expiry: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)},
}

// FixtureSource serves the bundled snapshot for every as-of date. It is a
// static stand-in for a real store in development and tests.
type FixtureSource struct{}

// FixtureDate returns the as-of date of the bundled snapshot.
func FixtureDate() time.Time { return snapshotDate }

// FixtureSpot returns the spot level the bundled mids imply.
func FixtureSpot() float64 { return fixtureSpot }

// FixtureChain returns a copy of the bundled snapshot.
func FixtureChain() chain.Chain {
	out := make(chain.Chain, len(fixtureChain))
	copy(out, fixtureChain)
	return out
}

// ChainAsOf returns the bundled chain filtered to the requested symbols.
// The as-of date is ignored, the snapshot is what it is.
func (FixtureSource) ChainAsOf(symbols []string, _ time.Time) (chain.Chain, error) {
	if len(symbols) == 0 {
		return FixtureChain(), nil
	}
	want := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		want[s] = struct{}{}
	}
	var out chain.Chain
	for _, q := range fixtureChain {
		if _, ok := want[q.Symbol]; ok {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return nil, chain.ErrNoQuotes
	}
	return out, nil
}
