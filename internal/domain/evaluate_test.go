package domain

import (
	"strings"
	"testing"
)

func fp(v float64) *float64 { return &v }
func bp(v bool) *bool       { return &v }

func TestEvaluateCenteredDropdownPasses(t *testing.T) {
	c := Case{
		Name:     "centered dropdown",
		Viewport: RectSpec{Width: 1024, Height: 768},
		Anchor:   &RectSpec{Top: 100, Left: 200, Width: 100, Height: 20},
		Content:  SizeSpec{Width: 60, Height: 40},
		Expect:   &Expectation{Top: fp(124), Left: fp(220), Side: "bottom"},
	}
	out := Evaluate(c)
	if !out.Pass() {
		t.Fatalf("expected pass, failures: %v", out.Failures)
	}
}

func TestEvaluateFlipNearViewportBottom(t *testing.T) {
	c := Case{
		Name:     "flip to top",
		Viewport: RectSpec{Width: 1024, Height: 768},
		Anchor:   &RectSpec{Top: 700, Left: 10, Width: 100, Height: 20},
		Content:  SizeSpec{Width: 200, Height: 150},
		Expect:   &Expectation{Side: "top", Top: fp(546), Left: fp(8)},
	}
	out := Evaluate(c)
	if !out.Pass() {
		t.Fatalf("expected pass, failures: %v", out.Failures)
	}
}

func TestEvaluateReportsEveryMismatch(t *testing.T) {
	c := Case{
		Viewport: RectSpec{Width: 1024, Height: 768},
		Anchor:   &RectSpec{Top: 100, Left: 200, Width: 100, Height: 20},
		Content:  SizeSpec{Width: 60, Height: 40},
		Expect:   &Expectation{Top: fp(999), Side: "left"},
	}
	out := Evaluate(c)
	if out.Pass() {
		t.Fatalf("expected failures")
	}
	if len(out.Failures) != 2 {
		t.Fatalf("expected two failures, got %v", out.Failures)
	}
	if !strings.HasPrefix(out.Failures[0], "top:") {
		t.Fatalf("unexpected failure text: %q", out.Failures[0])
	}
}

func TestEvaluatePointerAnchorNeverHidden(t *testing.T) {
	c := Case{
		Viewport: RectSpec{Width: 1024, Height: 768},
		Pointer:  &PointSpec{X: -10, Y: -10},
		Content:  SizeSpec{Width: 80, Height: 40},
		Expect:   &Expectation{Hidden: bp(false)},
	}
	out := Evaluate(c)
	if !out.Pass() {
		t.Fatalf("pointer case should never be hidden, failures: %v", out.Failures)
	}
}

func TestEvaluateMaxHeightExpectation(t *testing.T) {
	c := Case{
		Viewport: RectSpec{Width: 1024, Height: 768},
		Anchor:   &RectSpec{Top: 80, Left: 100, Width: 120, Height: 24},
		Content:  SizeSpec{Width: 150, Height: 300},
		Options:  OptionSpec{ConstrainSize: true},
		Expect:   &Expectation{MaxHeight: fp(652)},
	}
	out := Evaluate(c)
	if !out.Pass() {
		t.Fatalf("expected pass, failures: %v", out.Failures)
	}

	// the same expectation on width must fail: vertical sides emit height only
	c.Expect = &Expectation{MaxWidth: fp(652)}
	out = Evaluate(c)
	if out.Pass() || len(out.Failures) != 1 {
		t.Fatalf("expected single maxWidth failure, got %v", out.Failures)
	}
}

func TestEvaluateInvalidCaseFails(t *testing.T) {
	c := Case{
		Viewport: RectSpec{Width: 1024, Height: 768},
		Content:  SizeSpec{Width: 80, Height: 40},
	}
	out := Evaluate(c)
	if out.Pass() {
		t.Fatalf("invalid case must fail")
	}
}
