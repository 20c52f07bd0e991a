package utils_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lawson/optlib/utils"
)

func TestYearFraction_Act360(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC) // 181 days

	got, err := utils.YearFraction(start, end, utils.Act360)
	if err != nil {
		t.Fatalf("YearFraction error: %v", err)
	}
	want := 181.0 / 360.0
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("ACT/360 mismatch: got %v want %v", got, want)
	}
}

func TestYearFraction_Act365F(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := utils.YearFraction(start, end, utils.Act365F)
	if err != nil {
		t.Fatalf("YearFraction error: %v", err)
	}
	if math.Abs(got-1.0) > 1e-12 {
		t.Fatalf("ACT/365F one year: got %v want 1.0", got)
	}

	// Leap year still divides by 365.
	leapStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	leapEnd := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err = utils.YearFraction(leapStart, leapEnd, utils.Act365F)
	if err != nil {
		t.Fatalf("YearFraction error: %v", err)
	}
	if math.Abs(got-366.0/365.0) > 1e-12 {
		t.Fatalf("ACT/365F leap year: got %v want %v", got, 366.0/365.0)
	}
}

func TestYearFraction_Thirty360(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  float64
	}{
		{
			name:  "regular half year",
			start: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
			want:  0.5,
		},
		{
			name:  "start on the 31st is treated as the 30th",
			start: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
			want:  0.5,
		},
		{
			name:  "end on the 31st stays when start is below the 30th",
			start: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
			want:  16.0 / 360.0,
		},
	}
	for _, tc := range cases {
		got, err := utils.YearFraction(tc.start, tc.end, utils.Thirty360)
		if err != nil {
			t.Fatalf("%s: YearFraction error: %v", tc.name, err)
		}
		if math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestYearFraction_ThirtyE360_CapsBothEnds(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	got, err := utils.YearFraction(start, end, utils.ThirtyE360)
	if err != nil {
		t.Fatalf("YearFraction error: %v", err)
	}
	want := 15.0 / 360.0
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("30E/360 end cap: got %v want %v", got, want)
	}
}

func TestYearFraction_NegativeSpanClampsToZero(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := utils.YearFraction(start, end, utils.Act365F)
	if err != nil {
		t.Fatalf("YearFraction error: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected zero for reversed dates, got %v", got)
	}
}

func TestYearFraction_UnknownConvention(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := utils.YearFraction(start, end, "ACT/252")
	if !errors.Is(err, utils.ErrUnknownDayCount) {
		t.Fatalf("expected ErrUnknownDayCount, got %v", err)
	}
	if err := utils.ValidateDayCount("BUS/252"); !errors.Is(err, utils.ErrUnknownDayCount) {
		t.Fatalf("ValidateDayCount: expected ErrUnknownDayCount, got %v", err)
	}
}
