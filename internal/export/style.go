/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

// Color is an 8-bit RGBA tuple used for render styling.
type Color struct {
	R, G, B, A uint8
}

func (c Color) isZero() bool {
	return c.R == 0 && c.G == 0 && c.B == 0 && c.A == 0
}

// Stroke pairs a color with a line width in region units.
type Stroke struct {
	Color Color
	Width float64
}

// Style carries the colors shared by every renderer. Zero values resolve to
// the defaults: white page, red guides, gray anchor, blue float, light gray
// float when the anchor has left the region.
type Style struct {
	GuideColor     Color
	RegionStroke   Stroke
	BoundaryStroke Stroke
	AnchorFill     Color
	FloatStroke    Stroke
	FloatFill      Color
	HiddenStroke   Stroke
}

func (s Style) withDefaults() Style {
	if s.GuideColor.isZero() {
		s.GuideColor = Color{R: 255, A: 255}
	}
	if s.RegionStroke.Width == 0 {
		s.RegionStroke = Stroke{Color: Color{A: 255}, Width: 1}
	}
	if s.BoundaryStroke.Width == 0 {
		s.BoundaryStroke = Stroke{Color: Color{R: 230, G: 140, B: 0, A: 255}, Width: 1}
	}
	if s.AnchorFill.isZero() {
		s.AnchorFill = Color{R: 160, G: 160, B: 160, A: 255}
	}
	if s.FloatStroke.Width == 0 {
		s.FloatStroke = Stroke{Color: Color{R: 30, G: 80, B: 220, A: 255}, Width: 1}
	}
	if s.FloatFill.isZero() {
		s.FloatFill = Color{R: 225, G: 235, B: 255, A: 255}
	}
	if s.HiddenStroke.Width == 0 {
		s.HiddenStroke = Stroke{Color: Color{R: 180, G: 180, B: 180, A: 255}, Width: 1}
	}
	return s
}
