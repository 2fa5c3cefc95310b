/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textmeasure

// Deterministic text measurement for natural-size estimation.
// All font metrics sit behind one provider so headless runs and tests
// produce identical numbers on every platform.

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"anchorkit/internal/geom"
)

// Metrics provides face metrics in pixels.
type Metrics struct {
	Ascent, Descent, LineGap float32
}

// Provider resolves the face used for measurement.
type Provider interface {
	Face() (font.Face, Metrics)
}

// BasicProvider uses x/image basicfont Face7x13 for deterministic numbers.
type BasicProvider struct{}

func (BasicProvider) Face() (font.Face, Metrics) {
	f := basicfont.Face7x13
	m := f.Metrics()
	return f, Metrics{
		Ascent:  float32(m.Ascent.Round()),
		Descent: float32(m.Descent.Round()),
		LineGap: float32(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// Line measures a single line of text without wrapping.
func Line(p Provider, text string) geom.Size {
	if p == nil {
		p = BasicProvider{}
	}
	face, met := p.Face()
	d := &font.Drawer{Face: face}
	return geom.Size{W: advance(d, text), H: met.Ascent + met.Descent}
}

// Block measures text wrapped into maxWidth, breaking on spaces; newlines
// force breaks, maxWidth <= 0 disables wrapping. No shaping or hyphenation,
// exact enough for natural-size estimation.
func Block(p Provider, text string, maxWidth float32) geom.Size {
	if p == nil {
		p = BasicProvider{}
	}
	face, met := p.Face()
	d := &font.Drawer{Face: face}
	lineH := met.Ascent + met.Descent + met.LineGap

	var width, cur float32
	lines := 0
	flush := func() {
		if cur > width {
			width = cur
		}
		cur = 0
		lines++
	}
	start := 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != ' ' && text[i] != '\n' {
			continue
		}
		w := advance(d, text[start:i])
		// A word that would overflow the current line starts the next one.
		if cur > 0 && maxWidth > 0 && cur+w > maxWidth {
			flush()
		}
		cur += w
		if i < len(text) {
			if text[i] == ' ' {
				cur += advance(d, " ")
			} else {
				flush()
			}
		}
		start = i + 1
	}
	if cur > 0 || lines == 0 {
		flush()
	}
	return geom.Size{W: width, H: float32(lines) * lineH}
}

func advance(d *font.Drawer, s string) float32 {
	return float32(d.MeasureString(s) >> 6) // fixed.Int26_6 to px
}
