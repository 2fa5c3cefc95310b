/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package snap aligns a dragged rect against nearby reference rects and
// produces guide lines for visual feedback. It is UI-agnostic and
// deterministic so the playground's drag behavior can be unit tested.
package snap

import (
	"math"

	"anchorkit/internal/geom"
)

// DefaultThreshold is the snap distance used when Options leaves it unset.
// It matches the playground's default snap threshold.
const DefaultThreshold = 6

// Options controls which alignment candidates are considered and how close
// a candidate must be before the dragged rect snaps to it.
type Options struct {
	// Threshold is the maximum distance, in region units, at which snapping
	// occurs. Zero or negative falls back to DefaultThreshold.
	Threshold float32
	// Align to edges (left, right, top, bottom), including abutting edges.
	Edges bool
	// Align to centers (cx, cy).
	Centers bool
}

// Target is a static rect the dragged element can align against: the
// clipping region, a boundary, or another element already placed.
// Weight biases selection when distances tie (higher wins); use 1 when
// uncertain.
type Target struct {
	Rect   geom.Rect
	Weight float32
}

// Guide is one alignment line produced by a snap.
// Orientation is "vertical" or "horizontal"; Kind is "edge" or "center".
// Position is the x (vertical) or y (horizontal) coordinate of the line,
// From and To its drawable extent. Coordinates are rounded to 3 decimal
// places for deterministic rendering.
type Guide struct {
	Orientation string
	Kind        string
	Position    float32
	From        geom.Pt
	To          geom.Pt
}

// axisBest tracks the winning candidate on one axis. Candidates compete on
// score = distance / max(1, weight), so heavier targets win ties.
type axisBest struct {
	hit   bool
	delta float32
	score float32
	guide Guide
}

func (b *axisBest) consider(delta, threshold, weight float32, g Guide) {
	dist := float32(math.Abs(float64(delta)))
	if dist > threshold {
		return
	}
	score := dist / max(1, weight)
	if !b.hit || score < b.score {
		b.hit = true
		b.delta = delta
		b.score = score
		b.guide = g
	}
}

// Align snaps a moving rect against a set of targets. It returns the
// snapped rect and any guide lines to render. The axes snap independently:
// an X match never prevents a Y match and vice versa.
func Align(moving geom.Rect, targets []Target, opts Options) (geom.Rect, []Guide) {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	var bx, by axisBest

	mLeft, mRight := moving.X, moving.X+moving.W
	mTop, mBottom := moving.Y, moving.Y+moving.H
	mCenter := moving.Center()

	for _, tg := range targets {
		r := tg.Rect
		tLeft, tRight := r.X, r.X+r.W
		tTop, tBottom := r.Y, r.Y+r.H
		tCenter := r.Center()

		if opts.Edges {
			// Same-edge pairs plus abutting pairs (left-to-right, right-to-left).
			for _, c := range [][2]float32{{mLeft, tLeft}, {mRight, tRight}, {mLeft, tRight}, {mRight, tLeft}} {
				bx.consider(c[0]-c[1], opts.Threshold, tg.Weight, verticalGuide(c[1], moving, r, "edge"))
			}
			for _, c := range [][2]float32{{mTop, tTop}, {mBottom, tBottom}, {mTop, tBottom}, {mBottom, tTop}} {
				by.consider(c[0]-c[1], opts.Threshold, tg.Weight, horizontalGuide(c[1], moving, r, "edge"))
			}
		}
		if opts.Centers {
			bx.consider(mCenter.X-tCenter.X, opts.Threshold, tg.Weight, verticalGuide(tCenter.X, moving, r, "center"))
			by.consider(mCenter.Y-tCenter.Y, opts.Threshold, tg.Weight, horizontalGuide(tCenter.Y, moving, r, "center"))
		}
	}

	snapped := moving
	var guides []Guide
	if bx.hit {
		snapped.X = geom.FloatRound(moving.X-bx.delta, 3)
		guides = append(guides, bx.guide)
	}
	if by.hit {
		snapped.Y = geom.FloatRound(moving.Y-by.delta, 3)
		guides = append(guides, by.guide)
	}
	return snapped, guides
}

func verticalGuide(x float32, a, b geom.Rect, kind string) Guide {
	x = geom.FloatRound(x, 3)
	top := min(a.Y, b.Y)
	bottom := max(a.Y+a.H, b.Y+b.H)
	return Guide{
		Orientation: "vertical",
		Kind:        kind,
		Position:    x,
		From:        geom.Pt{X: x, Y: top},
		To:          geom.Pt{X: x, Y: bottom},
	}
}

func horizontalGuide(y float32, a, b geom.Rect, kind string) Guide {
	y = geom.FloatRound(y, 3)
	left := min(a.X, b.X)
	right := max(a.X+a.W, b.X+b.W)
	return Guide{
		Orientation: "horizontal",
		Kind:        kind,
		Position:    y,
		From:        geom.Pt{X: left, Y: y},
		To:          geom.Pt{X: right, Y: y},
	}
}
