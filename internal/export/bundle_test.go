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
	"encoding/json"
	"io"
	"path/filepath"
	"testing"
)

func TestExportCorpusBundle(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report") // extension enforced
	doc := sampleCorpus()
	if err := ExportCorpusBundle(doc, out, BundleOptions{IncludeGuides: true}); err != nil {
		t.Fatalf("export bundle: %v", err)
	}

	rd, err := zip.OpenReader(out + ".zip")
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer func() { _ = rd.Close() }()

	var manifestData []byte
	var pngCount int
	for _, f := range rd.File {
		switch {
		case f.Name == "report.json":
			r, err := f.Open()
			if err != nil {
				t.Fatalf("open manifest: %v", err)
			}
			manifestData, err = io.ReadAll(r)
			_ = r.Close()
			if err != nil {
				t.Fatalf("read manifest: %v", err)
			}
		case filepath.Ext(f.Name) == ".png":
			pngCount++
		}
	}
	if pngCount != len(doc.Cases) {
		t.Fatalf("expected %d renders, found %d", len(doc.Cases), pngCount)
	}
	if manifestData == nil {
		t.Fatalf("report.json not found in zip")
	}

	var m bundleManifest
	if err := json.Unmarshal(manifestData, &m); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	if m.Corpus != "render test" || m.CaseCount != 2 {
		t.Fatalf("manifest header mismatch: %+v", m)
	}
	first := m.Cases[0]
	if first.Name != "dropdown fits below" || first.File != "case-1.png" {
		t.Fatalf("first entry mismatch: %+v", first)
	}
	if first.Side != "bottom" || first.Top != 136 || first.Left != 170 {
		t.Fatalf("first entry result mismatch: %+v", first)
	}
	if first.Pass == nil || !*first.Pass {
		t.Fatalf("expected first case to carry a passing verdict: %+v", first)
	}
	// the pointer case has no expectations, so no verdict
	if m.Cases[1].Pass != nil {
		t.Fatalf("verdict present without expectations: %+v", m.Cases[1])
	}
	if m.Cases[1].Side != "right" || m.Cases[1].Left != 324 {
		t.Fatalf("pointer entry result mismatch: %+v", m.Cases[1])
	}
}
