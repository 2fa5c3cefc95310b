/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"anchorkit/internal/domain"
	gojsonschema "github.com/xeipuuv/gojsonschema"
)

// The schema is embedded so validation works regardless of the working
// directory. docs/scenario.schema.json is the published copy of the same
// contract; a test keeps the two in sync.
//
//go:embed scenario.schema.json
var scenarioSchema []byte

// ScenarioSchema returns the JSON schema a corpus manifest must satisfy.
func ScenarioSchema() []byte { return append([]byte(nil), scenarioSchema...) }

// ValidateManifestBytes checks raw manifest bytes against the scenario
// schema. The returned error lists every violation.
func ValidateManifestBytes(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(scenarioSchema)
	docLoader := gojsonschema.NewBytesLoader(data)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("manifest does not conform to schema: %s", strings.Join(msgs, "; "))
}

// ValidateDocument serializes the document and validates it against the
// scenario schema. Save paths call this before writing so a manifest that
// violates the published contract never reaches disk.
func ValidateDocument(doc domain.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	return ValidateManifestBytes(data)
}
