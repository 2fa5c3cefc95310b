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
	"os"
	"path/filepath"

	"anchorkit/internal/domain"
	"github.com/jung-kurt/gofpdf"
)

// PDFOptions controls PDF export behavior.
// Units are points (pt); region units map 1:1 onto the page.
//
// Each case gets its own page sized to its clipping region plus the margin,
// with hairline guides and a one-line label. Built-in Helvetica keeps text
// vector without embedding.
//
//nolint:revive // keep options grouped and explicit for clarity
type PDFOptions struct {
	IncludeGuides bool
	Margin        float64
	Style         Style
	Cases         []int
}

// ExportCorpusPDF renders the selected cases of a corpus into a single
// multi-page contact sheet placed at outPath.
func ExportCorpusPDF(doc domain.Document, outPath string, opt PDFOptions) error {
	if len(doc.Cases) == 0 {
		return fmt.Errorf("corpus has no cases")
	}
	style := opt.Style.withDefaults()
	margin := opt.Margin
	if margin <= 0 {
		margin = DefaultMargin
	}

	var scenes []scene
	for _, ci := range caseIndexes(len(doc.Cases), opt.Cases) {
		if ci < 0 || ci >= len(doc.Cases) {
			continue
		}
		sc, err := buildScene(doc.Cases[ci])
		if err != nil {
			return err
		}
		scenes = append(scenes, sc)
	}
	if len(scenes) == 0 {
		return fmt.Errorf("no cases selected")
	}

	w0, h0 := scenes[0].mediaSize(margin)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w0, Ht: h0},
		// Orientation follows the per-page size
		OrientationStr: "",
	})
	pdf.SetTitle(fmt.Sprintf("%s positioning report", doc.Name), false)
	pdf.SetAuthor("AnchorKit", false)
	pdf.SetFont("Helvetica", "", 11)

	for _, sc := range scenes {
		mediaW, mediaH := sc.mediaSize(margin)
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: mediaW, Ht: mediaH})
		dx := margin - float64(sc.req.Viewport.X)
		dy := margin - float64(sc.req.Viewport.Y)

		if opt.IncludeGuides {
			setDrawColor(pdf, style.GuideColor)
			pdf.SetLineWidth(0.2)
			// Page border
			pdf.Rect(0, 0, mediaW, mediaH, "D")
			// Padded fit box the engine clamps into
			fb := sc.fitBox()
			pdf.SetDashPattern([]float64{4, 3}, 0)
			pdf.Rect(float64(fb.Left)+dx, float64(fb.Top)+dy, float64(fb.Width()), float64(fb.Height()), "D")
			pdf.SetDashPattern([]float64{}, 0)
		}

		// Clipping region border
		vp := sc.req.Viewport
		setDrawColor(pdf, style.RegionStroke.Color)
		pdf.SetLineWidth(style.RegionStroke.Width)
		pdf.Rect(float64(vp.X)+dx, float64(vp.Y)+dy, float64(vp.W), float64(vp.H), "D")

		// Boundaries
		setDrawColor(pdf, style.BoundaryStroke.Color)
		pdf.SetLineWidth(style.BoundaryStroke.Width)
		pdf.SetDashPattern([]float64{6, 4}, 0)
		for _, b := range sc.req.Boundaries {
			pdf.Rect(float64(b.X)+dx, float64(b.Y)+dy, float64(b.W), float64(b.H), "D")
		}
		pdf.SetDashPattern([]float64{}, 0)

		// Anchor rect, or a crosshair for pointer anchors
		if sc.pointerAnchor() {
			px := float64(sc.req.Anchor.X) + dx
			py := float64(sc.req.Anchor.Y) + dy
			setDrawColor(pdf, style.AnchorFill)
			pdf.SetLineWidth(1)
			pdf.Line(px-6, py, px+6, py)
			pdf.Line(px, py-6, px, py+6)
		} else {
			a := sc.req.Anchor
			setFillColor(pdf, style.AnchorFill)
			pdf.Rect(float64(a.X)+dx, float64(a.Y)+dy, float64(a.W), float64(a.H), "F")
		}

		// Placed floating content
		fr := sc.floatRect()
		stroke := style.FloatStroke
		if sc.res.ReferenceHidden {
			stroke = style.HiddenStroke
		}
		setFillColor(pdf, style.FloatFill)
		setDrawColor(pdf, stroke.Color)
		pdf.SetLineWidth(stroke.Width)
		pdf.Rect(float64(fr.X)+dx, float64(fr.Y)+dy, float64(fr.W), float64(fr.H), "FD")

		pdf.SetTextColor(0, 0, 0)
		pdf.Text(6, 14, sc.label())
	}

	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func setDrawColor(pdf *gofpdf.Fpdf, c Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
