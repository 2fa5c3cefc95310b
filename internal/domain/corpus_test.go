/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// The shipped corpus is the executable form of the worked examples; every
// case in it must evaluate clean.
func TestShippedCorpusPasses(t *testing.T) {
	b, err := os.ReadFile(filepath.Join("..", "..", "testdata", "corpus.json"))
	if err != nil {
		t.Fatalf("read shipped corpus: %v", err)
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("parse shipped corpus: %v", err)
	}
	if doc.SchemaVersion != CurrentSchemaVersion {
		t.Fatalf("unexpected schema version %d", doc.SchemaVersion)
	}
	if len(doc.Cases) < 10 {
		t.Fatalf("corpus suspiciously small: %d cases", len(doc.Cases))
	}
	for _, c := range doc.Cases {
		out := Evaluate(c)
		if !out.Pass() {
			t.Errorf("case %q: %v", c.Name, out.Failures)
		}
	}
}
