package mnl

import (
	"math"
	"testing"
)

func TestSummarizeKnownChain(t *testing.T) {
	c := &Chain{
		Names:  []string{"x"},
		BurnIn: 2,
		Draws: [][]float64{
			{100}, {100}, // burn-in, must be ignored
			{1}, {2}, {3}, {4}, {5},
		},
	}
	sums, err := Summarize(c)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(sums) != 1 {
		t.Fatalf("got %d summaries, want 1", len(sums))
	}
	s := sums[0]
	if s.Mean != 3 {
		t.Fatalf("mean = %v, want 3", s.Mean)
	}
	if math.Abs(s.Std-math.Sqrt(2.5)) > 1e-12 {
		t.Fatalf("std = %v, want %v", s.Std, math.Sqrt(2.5))
	}
	if s.Lower < 1 || s.Lower > 2 {
		t.Fatalf("lower = %v, want within [1,2]", s.Lower)
	}
	if s.Upper < 4 || s.Upper > 5 {
		t.Fatalf("upper = %v, want within [4,5]", s.Upper)
	}
	if !s.ExcludesZero() {
		t.Fatalf("interval [%v,%v] should exclude zero", s.Lower, s.Upper)
	}
}

func TestSummarizeTooFewDraws(t *testing.T) {
	c := &Chain{Names: []string{"x"}, BurnIn: 4, Draws: [][]float64{{1}, {2}, {3}, {4}, {5}}}
	if _, err := Summarize(c); err == nil {
		t.Fatalf("expected error for fewer than 2 post-burn-in draws")
	}
}

func TestExcludesZero(t *testing.T) {
	tests := []struct {
		lower, upper float64
		want         bool
	}{
		{0.1, 0.5, true},
		{-0.5, -0.1, true},
		{-0.1, 0.1, false},
		{0, 0.5, false},
	}
	for _, tt := range tests {
		s := CoefSummary{Lower: tt.lower, Upper: tt.upper}
		if got := s.ExcludesZero(); got != tt.want {
			t.Errorf("ExcludesZero(%v, %v) = %v, want %v", tt.lower, tt.upper, got, tt.want)
		}
	}
}
