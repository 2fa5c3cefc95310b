/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"anchorkit/internal/domain"
)

const (
	ManifestFileName = "scenarios.json"
	RendersDirName   = "renders"
	BackupsDirName   = "backups"
)

// Standard subfolders of a corpus directory.
var standardSubDirs = []string{
	RendersDirName,
	BackupsDirName,
}

// CorpusHandle keeps track of the corpus state loaded/saved from disk.
// Root is the corpus directory containing scenarios.json and subfolders.
// Document holds the in-memory representation of the manifest.
type CorpusHandle struct {
	Root         string
	ManifestPath string
	Document     domain.Document
}

// InitCorpus creates a new corpus directory at root (creating it if it doesn't
// exist), scaffolds the standard subfolders, and writes the given manifest
// transactionally.
func InitCorpus(root string, doc domain.Document) (*CorpusHandle, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("root path is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create corpus root: %w", err)
	}
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			return nil, fmt.Errorf("create subdir %s: %w", d, err)
		}
	}

	h := &CorpusHandle{
		Root:         root,
		ManifestPath: filepath.Join(root, ManifestFileName),
		Document:     doc,
	}
	if err := Save(h); err != nil {
		return nil, err
	}
	return h, nil
}

// Open loads an existing corpus from the given root directory.
// If the current manifest cannot be read or parsed, it will attempt the last backup.
func Open(root string) (*CorpusHandle, error) {
	mpath := filepath.Join(root, ManifestFileName)
	b, err := os.ReadFile(mpath)
	if err != nil {
		doc, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("open manifest: %w; backup attempt: %v", err, berr)
		}
		return &CorpusHandle{Root: root, ManifestPath: mpath, Document: *doc}, nil
	}
	var d domain.Document
	if uerr := json.Unmarshal(b, &d); uerr != nil {
		doc, berr := openFromLatestBackup(root)
		if berr != nil {
			return nil, fmt.Errorf("parse manifest: %w; backup attempt: %v", uerr, berr)
		}
		return &CorpusHandle{Root: root, ManifestPath: mpath, Document: *doc}, nil
	}
	return &CorpusHandle{Root: root, ManifestPath: mpath, Document: d}, nil
}

// Save writes the current CorpusHandle.Document to disk with transactional
// semantics and a timestamped backup of the previous manifest (if present).
func Save(h *CorpusHandle) error {
	if h == nil {
		return errors.New("nil CorpusHandle")
	}
	if h.Root == "" || h.ManifestPath == "" {
		return errors.New("invalid CorpusHandle: missing paths")
	}
	if h.Document.Cases == nil {
		h.Document.Cases = []domain.Case{}
	}
	// A manifest that violates the published contract never reaches disk.
	if err := ValidateDocument(h.Document); err != nil {
		return err
	}
	// Marshal in human-readable form
	data, err := json.MarshalIndent(h.Document, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	data = append(data, '\n')

	bdir := filepath.Join(h.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return fmt.Errorf("ensure backups dir: %w", err)
	}

	// If a current manifest exists, copy it to a timestamped backup before replacing
	if _, statErr := os.Stat(h.ManifestPath); statErr == nil {
		stamp := time.Now().Format("20060102-150405")
		bname := fmt.Sprintf("%s.%s.bak", ManifestFileName, stamp)
		bpath := filepath.Join(bdir, bname)
		if cerr := copyFile(h.ManifestPath, bpath); cerr != nil {
			return fmt.Errorf("backup current manifest: %w", cerr)
		}
	}

	// Transactional write: to temp file in same directory, then rename over target
	dir := filepath.Dir(h.ManifestPath)
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", ManifestFileName, os.Getpid(), rand.Int()))
	if werr := writeFileSync(temp, data); werr != nil {
		return fmt.Errorf("write temp manifest: %w", werr)
	}
	// On Windows, replace by removing destination first if needed
	if _, err := os.Stat(h.ManifestPath); err == nil {
		_ = os.Remove(h.ManifestPath)
	}
	if rerr := os.Rename(temp, h.ManifestPath); rerr != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace manifest: %w", rerr)
	}
	return nil
}

// SaveAs writes the manifest to a new root folder, scaffolding structure if
// needed, and updates the handle.
func SaveAs(h *CorpusHandle, newRoot string) error {
	if h == nil {
		return errors.New("nil CorpusHandle")
	}
	if newRoot == "" {
		return errors.New("new root is empty")
	}
	if err := os.MkdirAll(newRoot, 0o755); err != nil {
		return fmt.Errorf("create new root: %w", err)
	}
	for _, d := range standardSubDirs {
		if err := os.MkdirAll(filepath.Join(newRoot, d), 0o755); err != nil {
			return fmt.Errorf("create subdir %s: %w", d, err)
		}
	}
	h.Root = newRoot
	h.ManifestPath = filepath.Join(newRoot, ManifestFileName)
	return Save(h)
}

// AutosaveCrashSnapshot writes the in-memory document to a timestamped file
// under the backups folder without touching the manifest itself. It is used
// by crash recovery, where the manifest on disk must stay untouched.
func AutosaveCrashSnapshot(h *CorpusHandle) (string, error) {
	if h == nil {
		return "", errors.New("nil CorpusHandle")
	}
	if h.Root == "" {
		return "", errors.New("invalid CorpusHandle: missing root")
	}
	data, err := json.MarshalIndent(h.Document, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	data = append(data, '\n')

	bdir := filepath.Join(h.Root, BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return "", fmt.Errorf("ensure backups dir: %w", err)
	}
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(bdir, fmt.Sprintf("autosave-%s.json", stamp))
	if err := writeFileSync(path, data); err != nil {
		return path, fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// writeFileSync writes data to a file, ensures it is flushed to disk.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	return nil
}

// copyFile copies a file from src to dst (overwrites dst if exists).
func copyFile(src, dst string) (err error) {
	sf, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sf.Close(); err == nil {
			err = cerr
		}
	}()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	df, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := df.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := io.Copy(df, sf); err != nil {
		return err
	}
	if err := df.Sync(); err != nil {
		return err
	}
	return nil
}

// openFromLatestBackup tries to open the latest timestamped backup.
func openFromLatestBackup(root string) (*domain.Document, error) {
	bdir := filepath.Join(root, BackupsDirName)
	ents, err := os.ReadDir(bdir)
	if err != nil {
		return nil, fmt.Errorf("read backups dir: %w", err)
	}
	var candidates []string
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, ManifestFileName+".") && strings.HasSuffix(name, ".bak") {
			candidates = append(candidates, filepath.Join(bdir, name))
		}
	}
	if len(candidates) == 0 {
		return nil, errors.New("no backups found")
	}
	sort.Strings(candidates) // timestamp in name yields lexicographic order
	latest := candidates[len(candidates)-1]
	b, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("read latest backup: %w", err)
	}
	var d domain.Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse latest backup: %w", err)
	}
	return &d, nil
}
