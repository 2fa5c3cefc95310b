/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package position

// Placement engine for floating surfaces (dropdowns, popovers, menus,
// tooltips) anchored to an element or a pointer location.
// The algorithm is deterministic for identical inputs.

import "anchorkit/internal/geom"

// Request is the raw input of one placement computation. No defaulting
// happens here; callers resolve measurements and option fallbacks first.
// All rects share one coordinate space (origin top-left, y growing down).
type Request struct {
	// Anchor is the rectangle the content attaches to. Pointer anchors pass
	// a zero-size rect at the event coordinates.
	Anchor geom.Rect
	// Content is the natural size of the floating content.
	Content geom.Size
	// Viewport is the visible canvas area.
	Viewport geom.Rect
	// Boundaries are additional clipping rects (already measured); the
	// clipping region is their intersection with the viewport.
	Boundaries []geom.Rect

	Side        Side
	Align       Align
	SideOffset  float32
	AlignOffset float32
	// Padding is the clearance kept from each clipping edge when testing
	// fit and when clamping.
	Padding geom.Insets

	// AvoidCollisions enables side flipping; when false the requested side
	// is kept even if the content does not fit.
	AvoidCollisions bool
	Sticky          Sticky
	// ConstrainSize enables the max-size output and the top-overflow
	// correction.
	ConstrainSize bool
	MinWidth      float32
	MinHeight     float32
}

// Result is one placement decision. Top/Left is the content's final corner;
// Side and Align echo what was actually used (Side may differ from the
// request after a flip, Align never changes).
type Result struct {
	Top  float32
	Left float32

	Side  Side
	Align Align

	// Max dimensions are only produced under ConstrainSize, and only for
	// the axis the chosen side constrains: height for top/bottom, width for
	// left/right. Never both.
	MaxWidth     float32
	MaxHeight    float32
	HasMaxWidth  bool
	HasMaxHeight bool

	// ReferenceHidden reports that the anchor has been scrolled or clipped
	// fully out of the clipping region.
	ReferenceHidden bool
}

// Compute resolves where floating content should be placed relative to its
// anchor. It is a pure function: same Request, same Result, no side
// effects. Degenerate inputs (zero-size anchor or content, collapsed
// clipping region) still produce a well-defined placement.
func Compute(req Request) Result {
	anchor := req.Anchor.Box()
	clip := clipRegion(req.Viewport, req.Boundaries)
	avail := availableSpace(anchor, clip, req.SideOffset, req.Padding)

	side := chooseSide(req.Side, req.Content, avail, req.AvoidCollisions)
	top, left := basePosition(side, anchor, req.Content, req.SideOffset)
	top, left = applyAlign(side, req.Align, anchor, req.Content, req.AlignOffset, top, left)
	top, left = clampToRegion(side, req.Sticky, anchor, clip, req.Content, req.Padding, top, left)

	// A size-constrained surface on top that still overflows upward is
	// pinned to the region's top edge so its visible start stays reachable.
	if side == SideTop && req.ConstrainSize && req.Content.H > avail[SideTop] {
		top = clip.Top + req.Padding.Top
	}

	res := Result{
		Top:   geom.FloatRound(top, 2),
		Left:  geom.FloatRound(left, 2),
		Side:  side,
		Align: req.Align,
	}
	if req.ConstrainSize {
		if side.IsVertical() {
			mh := avail[side]
			if mh < req.MinHeight {
				mh = req.MinHeight
			}
			res.MaxHeight = geom.FloatRound(mh, 2)
			res.HasMaxHeight = true
		} else {
			mw := avail[side]
			if mw < req.MinWidth {
				mw = req.MinWidth
			}
			res.MaxWidth = geom.FloatRound(mw, 2)
			res.HasMaxWidth = true
		}
	}
	res.ReferenceHidden = !anchor.OverlapsX(clip) || !anchor.OverlapsY(clip)
	return res
}

// clipRegion intersects the viewport with every boundary rect. Boundaries
// only ever shrink the region, and the result keeps Left <= Right and
// Top <= Bottom even for disjoint inputs.
func clipRegion(viewport geom.Rect, boundaries []geom.Rect) geom.Box {
	clip := viewport.Box()
	for _, b := range boundaries {
		clip = clip.Intersect(b.Box())
	}
	return clip
}

// availableSpace measures, for each side, the room between the anchor's
// edge and the clipping edge after subtracting the side offset and that
// edge's padding. Values can go negative when the anchor sits near or past
// an edge.
func availableSpace(anchor, clip geom.Box, offset float32, pad geom.Insets) [4]float32 {
	var avail [4]float32
	avail[SideTop] = anchor.Top - clip.Top - offset - pad.Top
	avail[SideBottom] = clip.Bottom - anchor.Bottom - offset - pad.Bottom
	avail[SideLeft] = anchor.Left - clip.Left - offset - pad.Left
	avail[SideRight] = clip.Right - anchor.Right - offset - pad.Right
	return avail
}

// chooseSide keeps the requested side when the content fits, flips to the
// opposite side when only that one fits, and otherwise takes whichever has
// more room (ties keep the request).
func chooseSide(requested Side, content geom.Size, avail [4]float32, avoid bool) Side {
	if !avoid {
		return requested
	}
	need := content.W
	if requested.IsVertical() {
		need = content.H
	}
	if avail[requested] >= need {
		return requested
	}
	opp := requested.Opposite()
	if avail[opp] >= need {
		return opp
	}
	if avail[opp] > avail[requested] {
		return opp
	}
	return requested
}

// basePosition puts the content flush against the anchor's chosen edge,
// pushed outward by the side offset, before alignment runs.
func basePosition(side Side, anchor geom.Box, content geom.Size, offset float32) (top, left float32) {
	switch side {
	case SideTop:
		return anchor.Top - content.H - offset, anchor.Left
	case SideBottom:
		return anchor.Bottom + offset, anchor.Left
	case SideLeft:
		return anchor.Top, anchor.Left - content.W - offset
	default: // SideRight
		return anchor.Top, anchor.Right + offset
	}
}

// applyAlign slides the content along the axis perpendicular to the side:
// start keeps leading edges flush, center balances the overhang, end keeps
// trailing edges flush. The align offset shifts all three.
func applyAlign(side Side, align Align, anchor geom.Box, content geom.Size, offset float32, top, left float32) (float32, float32) {
	if side.IsVertical() {
		switch align {
		case AlignStart:
			left = anchor.Left + offset
		case AlignCenter:
			left = anchor.Left + (anchor.Width()-content.W)/2 + offset
		case AlignEnd:
			left = anchor.Right - content.W + offset
		}
		return top, left
	}
	switch align {
	case AlignStart:
		top = anchor.Top + offset
	case AlignCenter:
		top = anchor.Top + (anchor.Height()-content.H)/2 + offset
	case AlignEnd:
		top = anchor.Bottom - content.H + offset
	}
	return top, left
}

// clampToRegion pulls the alignment-axis coordinate back inside the padded
// clipping region. Under StickyPartial the clamp is skipped once the anchor
// has no overlap with the region on that axis, so the content follows the
// anchor out instead of sticking to the edge.
func clampToRegion(side Side, sticky Sticky, anchor, clip geom.Box, content geom.Size, pad geom.Insets, top, left float32) (float32, float32) {
	if side.IsVertical() {
		if sticky == StickyPartial && !anchor.OverlapsX(clip) {
			return top, left
		}
		left = clampF(left, clip.Left+pad.Left, clip.Right-content.W-pad.Right)
		return top, left
	}
	if sticky == StickyPartial && !anchor.OverlapsY(clip) {
		return top, left
	}
	top = clampF(top, clip.Top+pad.Top, clip.Bottom-content.H-pad.Bottom)
	return top, left
}

// clampF clamps v into [lo,hi]. When the range inverts (content larger than
// the region) the low bound wins, pinning content flush to the near edge.
func clampF(v, lo, hi float32) float32 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
