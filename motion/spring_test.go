package motion

import (
	"errors"
	"math"
	"testing"
)

func TestSpringBeforeStartReturnsFrom(t *testing.T) {
	got, err := EvaluateSpring(-5, 30, 100, 50, 0, 1)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}

	params := []struct{ damping, stiffness float64 }{
		{0, 1}, {18, 220}, {20, 110}, {2, 90}, {100, 50}, {1e-3, 1e4},
	}
	for _, p := range params {
		for _, f := range []int{-1, -30, -1 << 20} {
			v, err := EvaluateSpring(f, 30, p.damping, p.stiffness, 0.98, 1)
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if v != 0.98 {
				t.Fatalf("damping %v stiffness %v frame %d: expected 0.98, got %v", p.damping, p.stiffness, f, v)
			}
		}
	}
}

func TestSpringStartsAtFromExactly(t *testing.T) {
	s := Spring{Damping: 24, Stiffness: 120, From: 28, To: 0}
	if got := s.At(0, 30); got != 28 {
		t.Fatalf("expected 28, got %v", got)
	}
}

func TestSpringContinuousAfterStart(t *testing.T) {
	s := Spring{Damping: 18, Stiffness: 220, From: 0, To: 1}
	first := s.At(1, 30)
	// one frame of travel from rest is small relative to the span
	if first <= 0 || first > 0.25 {
		t.Fatalf("expected a small first step, got %v", first)
	}
}

func TestSpringConverges(t *testing.T) {
	cases := []Spring{
		{Damping: 18, Stiffness: 220, From: 0, To: 1},
		{Damping: 2 * math.Sqrt(90), Stiffness: 90, From: 5, To: -3},
		{Damping: 100, Stiffness: 50, From: 0, To: 1},
		{Damping: 16, Stiffness: 180, From: 0.9, To: 1},
	}
	for _, s := range cases {
		span := math.Abs(s.To - s.From)
		for _, f := range []int{3000, 10000, 100000} {
			v := s.At(f, 30)
			if math.Abs(v-s.To) > SettleTolerance*span {
				t.Fatalf("%+v frame %d: expected within tolerance of %v, got %v", s, f, s.To, v)
			}
		}
	}
}

func TestSpringSettleFrame(t *testing.T) {
	s := Spring{Damping: 20, Stiffness: 120, From: 0, To: 1, Delay: 140}
	f, ok := s.SettleFrame(30)
	if !ok {
		t.Fatalf("expected spring to settle")
	}
	if f <= 140 {
		t.Fatalf("expected settle after the delay, got %d", f)
	}
	if !s.Settled(f, 30) || s.Settled(f-1, 30) {
		t.Fatalf("expected %d to be the first settled frame", f)
	}
	for g := f; g < f+300; g++ {
		if math.Abs(s.At(g, 30)-1) > SettleTolerance {
			t.Fatalf("frame %d left the settle band: %v", g, s.At(g, 30))
		}
	}

	if _, ok := (Spring{Stiffness: 10, From: 0, To: 1}).SettleFrame(30); ok {
		t.Fatalf("expected undamped spring to never settle")
	}
}

func TestSpringOvershootClamping(t *testing.T) {
	s := Spring{Damping: 4, Stiffness: 200, From: 0, To: 1}
	clamped := s
	clamped.OvershootClamping = true

	overshot := false
	for f := 0; f < 120; f++ {
		if s.At(f, 30) > 1 {
			overshot = true
		}
		if clamped.At(f, 30) > 1 {
			t.Fatalf("frame %d: expected clamped spring to stay at or below 1", f)
		}
	}
	if !overshot {
		t.Fatalf("expected the unclamped spring to overshoot")
	}
}

func TestSpringInvalidParameters(t *testing.T) {
	cases := []struct {
		name      string
		fps       float64
		damping   float64
		stiffness float64
	}{
		{"zero stiffness", 30, 10, 0},
		{"negative stiffness", 30, 10, -1},
		{"negative damping", 30, -0.1, 100},
		{"zero fps", 0, 10, 100},
	}
	for _, c := range cases {
		_, err := EvaluateSpring(10, c.fps, c.damping, c.stiffness, 0, 1)
		var paramErr *InvalidParameterError
		if !errors.As(err, &paramErr) {
			t.Fatalf("%s: expected InvalidParameterError, got %v", c.name, err)
		}
	}
}
