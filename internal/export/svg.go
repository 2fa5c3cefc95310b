/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"anchorkit/internal/domain"
)

// SVGOptions controls SVG export behavior.
// The coordinate system matches the placement model (region units); the
// width/height attributes use the same units as pixels.
//
//nolint:revive // clarity is preferred
type SVGOptions struct {
	IncludeGuides bool
	IncludeLabels bool
	Margin        float64
	Style         Style
	Cases         []int
}

// ExportCorpusSVG renders each selected case of a corpus as a separate SVG
// file named case-<n>.svg under outDir.
func ExportCorpusSVG(doc domain.Document, outDir string, opt SVGOptions) error {
	if len(doc.Cases) == 0 {
		return fmt.Errorf("corpus has no cases")
	}
	style := opt.Style.withDefaults()
	margin := opt.Margin
	if margin <= 0 {
		margin = DefaultMargin
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
		data, err := renderCaseSVG(sc, margin, style, opt.IncludeGuides, opt.IncludeLabels)
		if err != nil {
			return err
		}
		name := filepath.Join(outDir, fmt.Sprintf("case-%d.svg", ci+1))
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}
	return nil
}

func renderCaseSVG(sc scene, margin float64, st Style, guides, labels bool) ([]byte, error) {
	mediaW, mediaH := sc.mediaSize(margin)
	// Shift mapping region coordinates onto the page, viewport origin at
	// (margin, margin).
	dx := margin - float64(sc.req.Viewport.X)
	dy := margin - float64(sc.req.Viewport.Y)

	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%gpx\" height=\"%gpx\" viewBox=\"0 0 %g %g\">\n", mediaW, mediaH, mediaW, mediaH)
	// Background white
	wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"#ffffff\"/>\n", mediaW, mediaH)

	// Clipping region border
	vp := sc.req.Viewport
	wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"%s\" stroke-width=\"%g\"/>\n",
		float64(vp.X)+dx, float64(vp.Y)+dy, float64(vp.W), float64(vp.H), svgColor(st.RegionStroke.Color), st.RegionStroke.Width)

	if guides {
		gc := svgColor(st.GuideColor)
		// Page border hairline
		wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"%s\" stroke-width=\"0.2\"/>\n", mediaW, mediaH, gc)
		// Padded fit box the engine clamps into
		fb := sc.fitBox()
		wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"4 3\"/>\n",
			float64(fb.Left)+dx, float64(fb.Top)+dy, float64(fb.Width()), float64(fb.Height()), gc)
	}

	// Boundaries
	for _, b := range sc.req.Boundaries {
		wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"none\" stroke=\"%s\" stroke-width=\"%g\" stroke-dasharray=\"6 4\"/>\n",
			float64(b.X)+dx, float64(b.Y)+dy, float64(b.W), float64(b.H), svgColor(st.BoundaryStroke.Color), st.BoundaryStroke.Width)
	}

	// Anchor rect, or a crosshair for pointer anchors
	if sc.pointerAnchor() {
		px := float64(sc.req.Anchor.X) + dx
		py := float64(sc.req.Anchor.Y) + dy
		ac := svgColor(st.AnchorFill)
		wf("  <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"1\"/>\n", px-6, py, px+6, py, ac)
		wf("  <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"1\"/>\n", px, py-6, px, py+6, ac)
	} else {
		a := sc.req.Anchor
		wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n",
			float64(a.X)+dx, float64(a.Y)+dy, float64(a.W), float64(a.H), svgColor(st.AnchorFill))
	}

	// Placed floating content
	fr := sc.floatRect()
	stroke := st.FloatStroke
	if sc.res.ReferenceHidden {
		stroke = st.HiddenStroke
	}
	wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\" fill-opacity=\"0.85\" stroke=\"%s\" stroke-width=\"%g\"/>\n",
		float64(fr.X)+dx, float64(fr.Y)+dy, float64(fr.W), float64(fr.H), svgColor(st.FloatFill), svgColor(stroke.Color), stroke.Width)

	if labels {
		wf("  <text x=\"6\" y=\"16\" font-family=\"Helvetica, Arial, sans-serif\" font-size=\"11\" fill=\"#000\">%s</text>\n", escText(sc.label()))
	}

	wf("</svg>\n")

	if werr != nil {
		return nil, fmt.Errorf("build svg: %w", werr)
	}
	return buf.Bytes(), nil
}

func svgColor(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '>':
			out = append(out, '&', 'g', 't', ';')
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
