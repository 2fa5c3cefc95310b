/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "testing"

func TestRect_UnionAndInset(t *testing.T) {
	a := R(0, 0, 10, 10)
	b := R(5, 5, 20, 20)
	u := a.Union(b)
	if u != (Rect{X: 0, Y: 0, W: 25, H: 25}) {
		t.Fatalf("unexpected union: %+v", u)
	}
	in := u.Inset(5, 5)
	if in != (Rect{X: 5, Y: 5, W: 15, H: 15}) {
		t.Fatalf("unexpected inset: %+v", in)
	}
}

func TestRect_Intersection(t *testing.T) {
	a := R(0, 0, 100, 50)
	b := R(60, 20, 100, 100)
	got := a.Intersection(b)
	if got != (Rect{X: 60, Y: 20, W: 40, H: 30}) {
		t.Fatalf("unexpected intersection: %+v", got)
	}
	// Disjoint rects intersect to the zero rect.
	c := R(500, 500, 10, 10)
	if z := a.Intersection(c); z != R(0, 0, 0, 0) {
		t.Fatalf("expected zero rect for disjoint inputs, got %+v", z)
	}
	if a.Intersects(c) {
		t.Fatalf("expected Intersects=false for disjoint rects")
	}
}

func TestRect_ClampInto(t *testing.T) {
	bounds := R(0, 0, 200, 100)
	moved := R(180, 90, 40, 30).ClampInto(bounds)
	if moved != (Rect{X: 160, Y: 70, W: 40, H: 30}) {
		t.Fatalf("expected clamp to far edges, got %+v", moved)
	}
	// Oversized content pins to the top-left edge rather than overflowing up/left.
	big := R(10, 10, 400, 300).ClampInto(bounds)
	if big.X != 0 || big.Y != 0 {
		t.Fatalf("expected oversized rect pinned to origin, got %+v", big)
	}
}

func TestRect_ContainsAndCenter(t *testing.T) {
	r := R(10, 10, 20, 20)
	if !r.Contains(Pt{X: 10, Y: 10}) || !r.Contains(Pt{X: 30, Y: 30}) {
		t.Fatalf("expected edge points contained")
	}
	if r.Contains(Pt{X: 9.9, Y: 10}) {
		t.Fatalf("expected outside point rejected")
	}
	if c := r.Center(); c != (Pt{X: 20, Y: 20}) {
		t.Fatalf("unexpected center: %+v", c)
	}
}

func TestFloatRound(t *testing.T) {
	if got := FloatRound(1.23456, 3); got != 1.235 {
		t.Fatalf("expected 1.235, got %v", got)
	}
	if got := FloatRound(2.5, 0); got != 3 {
		t.Fatalf("expected round-half-away 3, got %v", got)
	}
	if got := FloatRound(7.25, -1); got != 7.25 {
		t.Fatalf("expected negative places to pass through, got %v", got)
	}
}
