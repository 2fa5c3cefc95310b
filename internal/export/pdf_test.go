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
	"os"
	"path/filepath"
	"testing"

	"anchorkit/internal/domain"
)

func TestExportCorpusPDF_CreatesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cases.pdf")
	if err := ExportCorpusPDF(sampleCorpus(), out, PDFOptions{IncludeGuides: true}); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("pdf file empty")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("not a pdf: %q", data[:8])
	}
}

func TestExportCorpusPDF_SingleCaseSelection(t *testing.T) {
	out := filepath.Join(t.TempDir(), "one.pdf")
	if err := ExportCorpusPDF(sampleCorpus(), out, PDFOptions{Cases: []int{1}}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if st, err := os.Stat(out); err != nil || st.Size() == 0 {
		t.Fatalf("stat: %v", err)
	}
}

func TestExportCorpusPDF_BadCaseFails(t *testing.T) {
	doc := sampleCorpus()
	// both anchor kinds set is a contract violation
	doc.Cases[0].Pointer = &domain.PointSpec{X: 1, Y: 1}
	err := ExportCorpusPDF(doc, filepath.Join(t.TempDir(), "bad.pdf"), PDFOptions{})
	if err == nil {
		t.Fatalf("expected error for invalid case")
	}
}
