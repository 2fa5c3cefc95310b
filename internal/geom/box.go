/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

// Box is the edge form of a rectangle: the offsets of its four edges from
// the coordinate origin. It converts losslessly to and from Rect; the two
// forms never mix implicitly, callers convert at the boundary they need.
type Box struct {
	Top, Right, Bottom, Left float32
}

// B builds a Box from the four edge offsets.
func B(top, right, bottom, left float32) Box {
	return Box{Top: top, Right: right, Bottom: bottom, Left: left}
}

// Box returns r in edge form.
func (r Rect) Box() Box {
	return Box{Top: r.Y, Right: r.X + r.W, Bottom: r.Y + r.H, Left: r.X}
}

// Rect returns b in min-corner/size form.
func (b Box) Rect() Rect {
	return Rect{X: b.Left, Y: b.Top, W: b.Right - b.Left, H: b.Bottom - b.Top}
}

func (b Box) Width() float32  { return b.Right - b.Left }
func (b Box) Height() float32 { return b.Bottom - b.Top }

// Intersect returns the shared region of b and o. The result always keeps
// Left <= Right and Top <= Bottom: a disjoint pair collapses to a zero-span
// box at the near edge instead of inverting.
func (b Box) Intersect(o Box) Box {
	out := Box{
		Top:    max(b.Top, o.Top),
		Right:  min(b.Right, o.Right),
		Bottom: min(b.Bottom, o.Bottom),
		Left:   max(b.Left, o.Left),
	}
	if out.Right < out.Left {
		out.Right = out.Left
	}
	if out.Bottom < out.Top {
		out.Bottom = out.Top
	}
	return out
}

// OverlapsX reports whether b and o share any horizontal span. Touching
// edges do not count as overlap.
func (b Box) OverlapsX(o Box) bool {
	return b.Left < o.Right && b.Right > o.Left
}

// OverlapsY reports whether b and o share any vertical span.
func (b Box) OverlapsY(o Box) bool {
	return b.Top < o.Bottom && b.Bottom > o.Top
}

// Insets is a per-edge thickness, e.g. clearance kept from boundary edges.
type Insets struct {
	Top, Right, Bottom, Left float32
}

// Uniform returns Insets with the same thickness on all four edges.
func Uniform(v float32) Insets {
	return Insets{Top: v, Right: v, Bottom: v, Left: v}
}
