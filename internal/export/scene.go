/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"strings"

	"anchorkit/internal/domain"
	"anchorkit/internal/geom"
	"anchorkit/internal/position"
)

// DefaultMargin is the blank border kept around the clipping region in every
// rendition, in region units. The margin keeps content visible when a result
// escapes the region (partial sticky, pointer anchors above the fold).
const DefaultMargin = 32

// scene is one case resolved through the placement engine, ready to draw.
// All coordinates stay in region units; renderers shift by the margin and
// the viewport origin themselves.
type scene struct {
	name string
	req  position.Request
	res  position.Result
}

func buildScene(c domain.Case) (scene, error) {
	req, err := domain.BuildRequest(c)
	if err != nil {
		return scene{}, fmt.Errorf("case %q: %w", c.Name, err)
	}
	return scene{name: c.Name, req: req, res: position.Compute(req)}, nil
}

// pointerAnchor reports whether the case anchors to an event coordinate
// instead of an element rect.
func (s scene) pointerAnchor() bool {
	return s.req.Anchor.W == 0 && s.req.Anchor.H == 0
}

// floatRect is the placed content rect with any max-size outputs applied.
// Max sizes only ever shrink; spare room never inflates the content.
func (s scene) floatRect() geom.Rect {
	w, h := s.req.Content.W, s.req.Content.H
	if s.res.HasMaxWidth && s.res.MaxWidth < w {
		w = s.res.MaxWidth
	}
	if s.res.HasMaxHeight && s.res.MaxHeight < h {
		h = s.res.MaxHeight
	}
	return geom.Rect{X: s.res.Left, Y: s.res.Top, W: w, H: h}
}

// mediaSize is the full page size: the clipping region plus the margin on
// all four edges.
func (s scene) mediaSize(margin float64) (w, h float64) {
	return float64(s.req.Viewport.W) + 2*margin, float64(s.req.Viewport.H) + 2*margin
}

// clipBox is the effective clipping region: viewport intersected with every
// boundary.
func (s scene) clipBox() geom.Box {
	clip := s.req.Viewport.Box()
	for _, b := range s.req.Boundaries {
		clip = clip.Intersect(b.Box())
	}
	return clip
}

// fitBox is the padded clipping box the engine tests fit against and clamps
// into. Drawn as a guide so misplaced expectations are easy to spot.
func (s scene) fitBox() geom.Box {
	c := s.clipBox()
	p := s.req.Padding
	return geom.B(c.Top+p.Top, c.Right-p.Right, c.Bottom-p.Bottom, c.Left+p.Left)
}

// label is the one-line summary drawn on labeled renditions.
func (s scene) label() string {
	parts := []string{s.name, s.res.Side.String() + "/" + s.res.Align.String()}
	if s.res.HasMaxWidth {
		parts = append(parts, fmt.Sprintf("max-w %.0f", s.res.MaxWidth))
	}
	if s.res.HasMaxHeight {
		parts = append(parts, fmt.Sprintf("max-h %.0f", s.res.MaxHeight))
	}
	if s.res.ReferenceHidden {
		parts = append(parts, "anchor out of view")
	}
	return strings.Join(parts, "  ")
}

// caseIndexes expands an optional selection into concrete indexes; an empty
// selection means every case.
func caseIndexes(total int, specific []int) []int {
	if len(specific) == 0 {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}
	return specific
}
