/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package floating

import (
	"anchorkit/internal/geom"
	"anchorkit/internal/platform"
	"anchorkit/internal/position"
)

// Default gap and clearance applied when the caller leaves the matching
// option unset. Scenario files rely on the same values.
const (
	DefaultSideOffset = 4
	DefaultPadding    = 8
)

// Anchor is what floating content attaches to: a live element or a fixed
// point. Build one with AnchorTo or AnchorAt.
type Anchor interface{ anchor() }

type elementAnchor struct{ el platform.Element }

type pointerAnchor struct{ at geom.Pt }

func (elementAnchor) anchor() {}
func (pointerAnchor) anchor() {}

// AnchorTo anchors to a live element, re-measured on every update.
func AnchorTo(el platform.Element) Anchor { return elementAnchor{el: el} }

// AnchorAt anchors to a fixed point, e.g. the location of a context-menu
// event. Point anchors are never reported as detached.
func AnchorAt(at geom.Pt) Anchor { return pointerAnchor{at: at} }

// Padding is the clearance kept from the clipping-region edges. The zero
// value means "unset" and resolves to a uniform 8; PadAll(0) disables the
// clearance explicitly.
type Padding struct {
	insets geom.Insets
	set    bool
}

// PadAll keeps v clearance on all four edges.
func PadAll(v float32) Padding { return Padding{insets: geom.Uniform(v), set: true} }

// PadEach keeps a different clearance per edge.
func PadEach(in geom.Insets) Padding { return Padding{insets: in, set: true} }

func (p Padding) resolve() geom.Insets {
	if p.set {
		return p.insets
	}
	return geom.Uniform(DefaultPadding)
}

// Options steer one controller. The zero value is the configuration
// consumers default to: bottom side, center alignment, side offset 4,
// uniform padding 8, collision avoidance on, partial sticky.
type Options struct {
	Side  position.Side
	Align position.Align

	// SideOffset is the gap between the anchor edge and the content. Zero
	// resolves to the default 4; negative values pull the content over the
	// anchor and are used literally.
	SideOffset  float32
	AlignOffset float32

	// Padding keeps the content clear of the clipping-region edges during
	// fit checks and clamping.
	Padding Padding

	// Boundary lists elements whose bounds shrink the clipping region, on
	// top of the viewport. Unmeasurable entries are skipped.
	Boundary []platform.Element

	// DisableCollisionAvoidance keeps the requested side even when the
	// content does not fit there.
	DisableCollisionAvoidance bool

	Sticky position.Sticky

	// ConstrainSize emits a max dimension for the chosen side so scrollable
	// surfaces can shrink instead of overflowing.
	ConstrainSize bool
	MinWidth      float32
	MinHeight     float32

	// HideWhenDetached hides the surface while the anchor is scrolled or
	// clipped fully out of the clipping region.
	HideWhenDetached bool
}

func (o Options) sideOffset() float32 {
	if o.SideOffset == 0 {
		return DefaultSideOffset
	}
	return o.SideOffset
}

// State is the published view consumers render from. Result is only
// meaningful while Positioned is set.
type State struct {
	Result     position.Result
	Positioned bool
	Visible    bool
}
