package option_test

import (
	"errors"
	"testing"
	"time"

	"github.com/lawson/optlib/option"
)

func TestNewVanilla(t *testing.T) {
	t.Parallel()

	maturity := time.Date(2026, 12, 18, 0, 0, 0, 0, time.UTC)
	v, err := option.NewVanilla(105, maturity, option.Call)
	if err != nil {
		t.Fatalf("NewVanilla error: %v", err)
	}
	if v.Style != option.European {
		t.Fatalf("style: got %q", v.Style)
	}
	if v.Strike != 105 || !v.Maturity.Equal(maturity) || v.Type != option.Call {
		t.Fatalf("economics mismatch: %+v", v)
	}
}

func TestNewVanilla_Validation(t *testing.T) {
	t.Parallel()

	maturity := time.Date(2026, 12, 18, 0, 0, 0, 0, time.UTC)

	if _, err := option.NewVanilla(0, maturity, option.Call); !errors.Is(err, option.ErrInvalidStrike) {
		t.Fatalf("expected ErrInvalidStrike, got %v", err)
	}
	if _, err := option.NewVanilla(-10, maturity, option.Put); !errors.Is(err, option.ErrInvalidStrike) {
		t.Fatalf("expected ErrInvalidStrike, got %v", err)
	}
	if _, err := option.NewVanilla(100, time.Time{}, option.Call); !errors.Is(err, option.ErrInvalidMaturity) {
		t.Fatalf("expected ErrInvalidMaturity, got %v", err)
	}
	if _, err := option.NewVanilla(100, maturity, option.Type("straddle")); !errors.Is(err, option.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}
