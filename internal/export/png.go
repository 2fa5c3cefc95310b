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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"anchorkit/internal/domain"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PNGOptions controls PNG export behavior.
// - Scale: device scale factor; 1 renders one region unit per pixel.
// - IncludeGuides: draw the fit-box hairlines like the PDF report.
// - Cases: if empty, export all.
//
//nolint:revive // clarity is preferred
type PNGOptions struct {
	IncludeGuides bool
	IncludeLabels bool
	Scale         float64
	Margin        float64
	Style         Style
	Cases         []int
}

// ExportCorpusPNG renders each selected case of a corpus as a separate PNG
// file named case-<n>.png under outDir.
func ExportCorpusPNG(doc domain.Document, outDir string, opt PNGOptions) error {
	if len(doc.Cases) == 0 {
		return fmt.Errorf("corpus has no cases")
	}
	style := opt.Style.withDefaults()
	margin := opt.Margin
	if margin <= 0 {
		margin = DefaultMargin
	}
	scale := opt.Scale
	if scale <= 0 {
		scale = 1
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}

	for _, ci := range caseIndexes(len(doc.Cases), opt.Cases) {
		if ci < 0 || ci >= len(doc.Cases) {
			continue
		}
		sc, err := buildScene(doc.Cases[ci])
		if err != nil {
			return err
		}
		img := renderCasePNG(sc, scale, margin, style, opt.IncludeGuides, opt.IncludeLabels)

		name := filepath.Join(outDir, fmt.Sprintf("case-%d.png", ci+1))
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("create png: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			return fmt.Errorf("encode png: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close png: %w", err)
		}
	}
	return nil
}

func renderCasePNG(sc scene, scale, margin float64, st Style, guides, labels bool) *image.RGBA {
	mediaW, mediaH := sc.mediaSize(margin)
	dx := margin - float64(sc.req.Viewport.X)
	dy := margin - float64(sc.req.Viewport.Y)
	px := func(v float64) int { return int(math.Round(v * scale)) }

	img := image.NewRGBA(image.Rect(0, 0, px(mediaW), px(mediaH)))
	// Background white
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	if guides {
		gc := toRGBA(st.GuideColor)
		strokeRect(img, 0, 0, px(mediaW)-1, px(mediaH)-1, gc)
		fb := sc.fitBox()
		strokeRect(img, px(float64(fb.Left)+dx), px(float64(fb.Top)+dy),
			px(float64(fb.Right)+dx)-1, px(float64(fb.Bottom)+dy)-1, gc)
	}

	// Clipping region border
	vp := sc.req.Viewport
	rc := toRGBA(st.RegionStroke.Color)
	strokeRect(img, px(float64(vp.X)+dx), px(float64(vp.Y)+dy),
		px(float64(vp.X)+dx+float64(vp.W))-1, px(float64(vp.Y)+dy+float64(vp.H))-1, rc)

	// Boundaries
	bc := toRGBA(st.BoundaryStroke.Color)
	for _, b := range sc.req.Boundaries {
		strokeRect(img, px(float64(b.X)+dx), px(float64(b.Y)+dy),
			px(float64(b.X)+dx+float64(b.W))-1, px(float64(b.Y)+dy+float64(b.H))-1, bc)
	}

	// Anchor rect, or a crosshair for pointer anchors
	ac := toRGBA(st.AnchorFill)
	if sc.pointerAnchor() {
		drawCross(img, px(float64(sc.req.Anchor.X)+dx), px(float64(sc.req.Anchor.Y)+dy), px(6), ac)
	} else {
		a := sc.req.Anchor
		fillRect(img, px(float64(a.X)+dx), px(float64(a.Y)+dy),
			px(float64(a.X)+dx+float64(a.W))-1, px(float64(a.Y)+dy+float64(a.H))-1, ac)
	}

	// Placed floating content
	fr := sc.floatRect()
	stroke := st.FloatStroke
	if sc.res.ReferenceHidden {
		stroke = st.HiddenStroke
	}
	fx0, fy0 := px(float64(fr.X)+dx), px(float64(fr.Y)+dy)
	fx1, fy1 := px(float64(fr.X)+dx+float64(fr.W))-1, px(float64(fr.Y)+dy+float64(fr.H))-1
	fillRect(img, fx0, fy0, fx1, fy1, toRGBA(st.FloatFill))
	strokeRect(img, fx0, fy0, fx1, fy1, toRGBA(stroke.Color))

	if labels {
		drawLabel(img, 6, 16, sc.label(), color.RGBA{A: 255})
	}
	return img
}

func toRGBA(c Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	// top and bottom
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	// left and right
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

// drawCross marks a pointer anchor position.
func drawCross(img *image.RGBA, cx, cy, arm int, col color.RGBA) {
	for x := cx - arm; x <= cx+arm; x++ {
		img.SetRGBA(x, cy, col)
	}
	for y := cy - arm; y <= cy+arm; y++ {
		img.SetRGBA(cx, y, col)
	}
}

// drawLabel renders a single line with the built-in bitmap face. Labels are
// drawn in device pixels, unaffected by the scale factor.
func drawLabel(img *image.RGBA, x, y int, s string, col color.RGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
