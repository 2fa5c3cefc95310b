/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"anchorkit/internal/storage"
)

// PresetName represents a named render preset.
type PresetName string

const (
	// PresetDocs renders clean images for embedding in documentation.
	PresetDocs PresetName = "docs"
	// PresetReview renders labeled artifacts with guides for regression review.
	PresetReview PresetName = "review"
)

// BatchOptions controls batch rendering across multiple formats and cases.
//
// Path semantics:
//   - If OutDir is empty or relative, it is created under
//     <corpus>/renders/<preset>/.
//   - For PDF/bundle single-file outputs, names are cases.pdf / report.zip
//     in subfolders pdf/ or bundle/ inside OutDir.
//   - For PNG/SVG per-case outputs, files are case-<n>.(png|svg) in
//     subfolders png/ or svg/ inside OutDir.
//
//nolint:revive // keep fields explicit for clarity
type BatchOptions struct {
	Preset        PresetName
	Formats       []string // allowed: pdf, png, svg, bundle; empty means preset defaults
	Cases         []int    // zero-based indices; empty means all cases
	Scale         float64  // when > 0 overrides the raster scale factor
	IncludeGuides *bool    // when set, overrides preset's default for guides
	OutDir        string   // base directory for outputs (created per preset if relative)
}

// BatchExport renders a corpus according to the given preset.
func BatchExport(h *storage.CorpusHandle, opt BatchOptions) error {
	if h == nil {
		return fmt.Errorf("corpus handle is nil")
	}
	if len(h.Document.Cases) == 0 {
		return fmt.Errorf("corpus has no cases")
	}

	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	// normalize format strings
	for i := range formats {
		formats[i] = strings.ToLower(strings.TrimSpace(formats[i]))
	}

	// Resolve output base directory
	baseOut := opt.OutDir
	if baseOut == "" {
		baseOut = string(opt.Preset)
	}
	if !filepath.IsAbs(baseOut) {
		baseOut = filepath.Join(h.Root, storage.RendersDirName, baseOut)
	}

	guides := presetIncludeGuides(opt.Preset)
	if opt.IncludeGuides != nil {
		guides = *opt.IncludeGuides
	}
	labels := presetIncludeLabels(opt.Preset)

	for _, f := range formats {
		switch f {
		case "pdf":
			// Single contact sheet for the whole corpus
			out := filepath.Join(baseOut, "pdf", "cases.pdf")
			po := PDFOptions{IncludeGuides: guides, Cases: opt.Cases}
			if err := ExportCorpusPDF(h.Document, out, po); err != nil {
				return fmt.Errorf("pdf: %w", err)
			}
		case "bundle":
			out := filepath.Join(baseOut, "bundle", "report.zip")
			bo := BundleOptions{IncludeGuides: guides, Cases: opt.Cases}
			if opt.Scale > 0 {
				bo.Scale = opt.Scale
			}
			if err := ExportCorpusBundle(h.Document, out, bo); err != nil {
				return fmt.Errorf("bundle: %w", err)
			}
		case "png":
			outDir := filepath.Join(baseOut, "png")
			po := PNGOptions{IncludeGuides: guides, IncludeLabels: labels, Cases: opt.Cases}
			if opt.Scale > 0 {
				po.Scale = opt.Scale
			}
			if err := ExportCorpusPNG(h.Document, outDir, po); err != nil {
				return fmt.Errorf("png: %w", err)
			}
		case "svg":
			outDir := filepath.Join(baseOut, "svg")
			so := SVGOptions{IncludeGuides: guides, IncludeLabels: labels, Cases: opt.Cases}
			if err := ExportCorpusSVG(h.Document, outDir, so); err != nil {
				return fmt.Errorf("svg: %w", err)
			}
		default:
			return fmt.Errorf("unknown format: %s", f)
		}
	}
	return nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetDocs:
		return []string{"svg", "png"}
	case PresetReview:
		return []string{"pdf", "bundle"}
	default:
		return []string{"svg"}
	}
}

func presetIncludeGuides(p PresetName) bool {
	switch p {
	case PresetDocs:
		return false
	case PresetReview:
		return true
	default:
		return true
	}
}

func presetIncludeLabels(p PresetName) bool {
	return p != PresetDocs
}
