/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"anchorkit/internal/domain"
	"anchorkit/internal/version"
)

// BundleOptions controls report bundle export behavior.
// Cases are rendered as labeled PNGs, similar to PNGOptions.
//
//nolint:revive // clarity
type BundleOptions struct {
	IncludeGuides bool
	Scale         float64
	Margin        float64
	Style         Style
	Cases         []int
}

// bundleManifest is the report.json payload written into the archive, one
// entry per rendered case.
type bundleManifest struct {
	Corpus    string       `json:"corpus"`
	Generated string       `json:"generated"`
	Tool      string       `json:"tool"`
	CaseCount int          `json:"caseCount"`
	Cases     []bundleCase `json:"cases"`
}

type bundleCase struct {
	Name      string   `json:"name"`
	File      string   `json:"file"`
	Side      string   `json:"side"`
	Align     string   `json:"align"`
	Top       float64  `json:"top"`
	Left      float64  `json:"left"`
	MaxWidth  *float64 `json:"maxWidth,omitempty"`
	MaxHeight *float64 `json:"maxHeight,omitempty"`
	Hidden    bool     `json:"hidden"`
	// Pass is present only for cases that carry expectations.
	Pass *bool `json:"pass,omitempty"`
}

// ExportCorpusBundle packages rendered cases plus a report.json manifest
// into a single ZIP archive for sharing and review.
func ExportCorpusBundle(doc domain.Document, outPath string, opt BundleOptions) error {
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

	// Enforce .zip extension
	if !strings.HasSuffix(strings.ToLower(outPath), ".zip") {
		outPath = outPath + ".zip"
	}

	zw, f, err := createZip(outPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	indexes := caseIndexes(len(doc.Cases), opt.Cases)
	// Zero padding width based on count
	pad := 1
	switch n := len(indexes); {
	case n >= 1000:
		pad = 4
	case n >= 100:
		pad = 3
	case n >= 10:
		pad = 2
	}

	manifest := bundleManifest{
		Corpus:    doc.Name,
		Generated: time.Now().UTC().Format(time.RFC3339),
		Tool:      "anchorkit " + version.Version,
	}

	imgBuf := &bytes.Buffer{}
	for i, ci := range indexes {
		if ci < 0 || ci >= len(doc.Cases) {
			continue
		}
		c := doc.Cases[ci]
		sc, err := buildScene(c)
		if err != nil {
			return err
		}
		img := renderCasePNG(sc, scale, margin, style, opt.IncludeGuides, true)

		imgBuf.Reset()
		if err := png.Encode(imgBuf, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
		name := fmt.Sprintf("case-%0*d.png", pad, i+1)
		if err := addZipFile(zw, name, imgBuf.Bytes()); err != nil {
			return fmt.Errorf("zip add image: %w", err)
		}

		entry := bundleCase{
			Name:   c.Name,
			File:   name,
			Side:   sc.res.Side.String(),
			Align:  sc.res.Align.String(),
			Top:    float64(sc.res.Top),
			Left:   float64(sc.res.Left),
			Hidden: sc.res.ReferenceHidden,
		}
		if sc.res.HasMaxWidth {
			v := float64(sc.res.MaxWidth)
			entry.MaxWidth = &v
		}
		if sc.res.HasMaxHeight {
			v := float64(sc.res.MaxHeight)
			entry.MaxHeight = &v
		}
		if c.Expect != nil {
			pass := domain.Evaluate(c).Pass()
			entry.Pass = &pass
		}
		manifest.Cases = append(manifest.Cases, entry)
	}
	manifest.CaseCount = len(manifest.Cases)

	data, merr := json.MarshalIndent(manifest, "", "  ")
	if merr != nil {
		return fmt.Errorf("build manifest: %w", merr)
	}
	if err := addZipFile(zw, "report.json", append(data, '\n')); err != nil {
		return fmt.Errorf("zip add manifest: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	return nil
}

func createZip(outPath string) (*zip.Writer, *os.File, error) {
	// Ensure directory exists
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, fmt.Errorf("create zip: %w", err)
	}
	return zip.NewWriter(f), f, nil
}

func addZipFile(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
