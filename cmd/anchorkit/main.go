/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"anchorkit/internal/crash"
	"anchorkit/internal/domain"
	"anchorkit/internal/export"
	applog "anchorkit/internal/log"
	"anchorkit/internal/storage"
	"anchorkit/internal/trace"
	"anchorkit/internal/ui"
	"anchorkit/internal/version"
)

func usage() {
	fmt.Println("AnchorKit — floating surface positioning toolkit")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  anchorkit version|-v|--version             Show version")
	fmt.Println("  anchorkit validate <corpus.json>            Check a scenario manifest against the schema")
	fmt.Println("  anchorkit run <corpus.json>                 Evaluate all cases; non-zero exit on failures")
	fmt.Println("  anchorkit render <corpus.json> <outdir> [svg|png|pdf|bundle|docs|review]")
	fmt.Println("                                              Render cases to <outdir> (default svg)")
	fmt.Println("  anchorkit trace summary <dir>               Summarize the flight recorder of a workspace")
	fmt.Println("  anchorkit ui [<dir>]                        Launch the playground (build with -tags fyne)")
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	var h *storage.CorpusHandle
	var rec *trace.Recorder
	defer func() { crash.Recover(h, rec) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("AnchorKit — floating surface positioning toolkit")
			fmt.Println(version.String())
			return
		case "validate":
			if len(args) < 3 {
				fmt.Println("validate requires <corpus.json>")
				usage()
				os.Exit(2)
			}
			path := args[2]
			data, err := os.ReadFile(path)
			if err != nil {
				l.Error("read manifest failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if err := storage.ValidateManifestBytes(data); err != nil {
				l.Error("validation failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			var doc domain.Document
			_ = json.Unmarshal(data, &doc)
			fmt.Printf("Valid: %d case(s), schema version %d\n", len(doc.Cases), doc.SchemaVersion)
			return
		case "run":
			if len(args) < 3 {
				fmt.Println("run requires <corpus.json>")
				usage()
				os.Exit(2)
			}
			path := args[2]
			doc, err := loadDocument(path)
			if err != nil {
				l.Error("load manifest failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			l.Info("run corpus", slog.String("manifest", path), slog.Int("cases", len(doc.Cases)))
			failures := 0
			for i, c := range doc.Cases {
				out := domain.Evaluate(c)
				name := c.Name
				if strings.TrimSpace(name) == "" {
					name = fmt.Sprintf("case %d", i+1)
				}
				if out.Pass() {
					fmt.Printf("ok   %s\n", name)
					continue
				}
				failures++
				fmt.Printf("FAIL %s\n", name)
				for _, f := range out.Failures {
					fmt.Printf("     %s\n", f)
				}
			}
			fmt.Printf("%d/%d cases pass\n", len(doc.Cases)-failures, len(doc.Cases))
			if failures > 0 {
				os.Exit(1)
			}
			return
		case "render":
			if len(args) < 4 {
				fmt.Println("render requires <corpus.json> and <outdir>")
				usage()
				os.Exit(2)
			}
			path := args[2]
			outDir, _ := filepath.Abs(args[3])
			format := "svg"
			if len(args) >= 5 {
				format = args[4]
			}
			doc, err := loadDocument(path)
			if err != nil {
				l.Error("load manifest failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			l.Info("render corpus", slog.String("manifest", path), slog.String("out", outDir), slog.String("format", format))
			switch format {
			case "svg":
				err = export.ExportCorpusSVG(doc, outDir, export.SVGOptions{IncludeGuides: true, IncludeLabels: true})
			case "png":
				err = export.ExportCorpusPNG(doc, outDir, export.PNGOptions{IncludeGuides: true, IncludeLabels: true})
			case "pdf":
				err = export.ExportCorpusPDF(doc, filepath.Join(outDir, "cases.pdf"), export.PDFOptions{IncludeGuides: true})
			case "bundle":
				err = export.ExportCorpusBundle(doc, filepath.Join(outDir, "report.zip"), export.BundleOptions{IncludeGuides: true})
			case "docs", "review":
				abs, _ := filepath.Abs(path)
				h = &storage.CorpusHandle{Root: filepath.Dir(abs), ManifestPath: abs, Document: doc}
				err = export.BatchExport(h, export.BatchOptions{Preset: export.PresetName(format), OutDir: outDir})
			default:
				fmt.Println("unknown format:", format)
				usage()
				os.Exit(2)
			}
			if err != nil {
				l.Error("render failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Printf("Rendered %d case(s) to %s\n", len(doc.Cases), outDir)
			return
		case "trace":
			if len(args) < 4 || args[2] != "summary" {
				fmt.Println("trace requires: summary <dir>")
				usage()
				os.Exit(2)
			}
			dir, _ := filepath.Abs(args[3])
			if _, err := os.Stat(trace.Path(dir)); err != nil {
				fmt.Println("Error: no trace found at", trace.Path(dir))
				os.Exit(1)
			}
			r, err := trace.Open(dir)
			if err != nil {
				l.Error("trace open failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			rec = r
			defer func() { _ = r.Close() }()
			s, err := r.Summary(context.Background())
			if err != nil {
				l.Error("trace summary failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			printSummary(dir, s)
			return
		case "ui":
			var dir string
			if len(args) >= 3 {
				dir = args[2]
			}
			if err := ui.Run(dir); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}

func loadDocument(path string) (domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, err
	}
	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Document{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

func printSummary(root string, s trace.Summary) {
	fmt.Println("Trace:", trace.Path(root))
	fmt.Printf("Ticks: %d (%d hidden)\n", s.Total, s.Hidden)
	fmt.Println("By trigger:")
	for _, k := range sortedKeys(s.ByTrigger) {
		fmt.Printf("  %-8s %d\n", k, s.ByTrigger[k])
	}
	fmt.Println("By side:")
	for _, k := range sortedKeys(s.BySide) {
		fmt.Printf("  %-8s %d\n", k, s.BySide[k])
	}
	fmt.Println("Avg duration:", s.AvgDuration)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
