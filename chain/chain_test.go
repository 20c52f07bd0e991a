package chain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/lawson/optlib/chain"
	"github.com/lawson/optlib/option"
)

var (
	frontExpiry = time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	backExpiry  = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
)

func sampleChain() chain.Chain {
	return chain.Chain{
		{Symbol: "OPT", Right: option.Call, Strike: 90, Mid: 10.5, TTM: 0.08, Moneyness: 0.90, Expiry: frontExpiry},
		{Symbol: "OPT", Right: option.Call, Strike: 100, Mid: 2.8, TTM: 0.08, Moneyness: 1.00, Expiry: frontExpiry},
		{Symbol: "OPT", Right: option.Call, Strike: 110, Mid: 0.3, TTM: 0.08, Moneyness: 1.10, Expiry: frontExpiry},
		{Symbol: "OPT", Right: option.Put, Strike: 90, Mid: 0.5, TTM: 0.08, Moneyness: 0.90, Expiry: frontExpiry},
		{Symbol: "OPT", Right: option.Put, Strike: 100, Mid: 2.6, TTM: 0.08, Moneyness: 1.00, Expiry: frontExpiry},
		{Symbol: "OPT", Right: option.Call, Strike: 100, Mid: 4.9, TTM: 0.25, Moneyness: 1.00, Expiry: backExpiry},
		// Unusable rows: no mid, and a zero strike.
		{Symbol: "OPT", Right: option.Put, Strike: 110, Mid: 0, TTM: 0.08, Moneyness: 1.10, Expiry: frontExpiry},
		{Symbol: "OPT", Right: option.Call, Strike: 0, Mid: 1.0, TTM: 0.08, Moneyness: 0, Expiry: frontExpiry},
	}
}

func TestChain_Usable(t *testing.T) {
	t.Parallel()

	usable := sampleChain().Usable()
	if len(usable) != 6 {
		t.Fatalf("expected 6 usable quotes, got %d", len(usable))
	}
	for _, q := range usable {
		if q.Mid <= 0 || q.Strike <= 0 {
			t.Fatalf("unusable quote survived the filter: %+v", q)
		}
	}
}

func TestChain_Expiries(t *testing.T) {
	t.Parallel()

	expiries := sampleChain().Expiries()
	if len(expiries) != 2 {
		t.Fatalf("expected 2 expiries, got %d", len(expiries))
	}
	if !expiries[0].Equal(frontExpiry) || !expiries[1].Equal(backExpiry) {
		t.Fatalf("expiries out of order: %v", expiries)
	}

	front := sampleChain().ForExpiry(frontExpiry)
	if len(front) != 7 {
		t.Fatalf("expected 7 front-expiry quotes, got %d", len(front))
	}
}

func TestChain_PickByMoneyness(t *testing.T) {
	t.Parallel()

	c := sampleChain()

	q, err := c.PickByMoneyness(option.Call, 1.02)
	if err != nil {
		t.Fatalf("PickByMoneyness error: %v", err)
	}
	if q.Strike != 100 {
		t.Fatalf("expected the 100 strike, got %v", q.Strike)
	}

	q, err = c.PickByMoneyness(option.Put, 0.80)
	if err != nil {
		t.Fatalf("PickByMoneyness error: %v", err)
	}
	if q.Strike != 90 {
		t.Fatalf("expected the 90 strike put, got %v", q.Strike)
	}

	if _, err := (chain.Chain{}).PickByMoneyness(option.Call, 1.0); !errors.Is(err, chain.ErrNoQuotes) {
		t.Fatalf("expected ErrNoQuotes, got %v", err)
	}
}

func TestChain_PickByStrike(t *testing.T) {
	t.Parallel()

	c := sampleChain()

	q, err := c.PickByStrike(option.Call, 108)
	if err != nil {
		t.Fatalf("PickByStrike error: %v", err)
	}
	if q.Strike != 110 {
		t.Fatalf("expected the 110 strike, got %v", q.Strike)
	}

	// The 110 put has no mid, so the nearest usable put is the 100 strike.
	q, err = c.PickByStrike(option.Put, 110)
	if err != nil {
		t.Fatalf("PickByStrike error: %v", err)
	}
	if q.Strike != 100 {
		t.Fatalf("expected the usable 100 strike put, got %v", q.Strike)
	}
}

func TestChain_ATMStrike(t *testing.T) {
	t.Parallel()

	k, err := sampleChain().ATMStrike(1.0)
	if err != nil {
		t.Fatalf("ATMStrike error: %v", err)
	}
	if k != 100 {
		t.Fatalf("ATM strike: got %v want 100", k)
	}
}

func TestChain_ATMSlice(t *testing.T) {
	t.Parallel()

	slice := sampleChain().ForExpiry(frontExpiry).ATMSlice(3)
	if len(slice) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(slice))
	}
	// The two at-the-money quotes come first.
	if slice[0].Moneyness != 1.0 || slice[1].Moneyness != 1.0 {
		t.Fatalf("ATM quotes should lead the slice: %v %v", slice[0].Moneyness, slice[1].Moneyness)
	}

	// n=0 keeps every usable quote.
	all := sampleChain().ATMSlice(0)
	if len(all) != 6 {
		t.Fatalf("expected 6 quotes with no cap, got %d", len(all))
	}
}
