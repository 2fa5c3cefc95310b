package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"anchorkit/internal/domain"
)

func TestInitCorpusCreatesStructureAndManifest(t *testing.T) {
	root := t.TempDir()
	doc := domain.Document{SchemaVersion: domain.CurrentSchemaVersion, Name: "Test Corpus", Cases: []domain.Case{}}

	h, err := InitCorpus(root, doc)
	if err != nil {
		t.Fatalf("InitCorpus error: %v", err)
	}
	if h == nil {
		t.Fatalf("InitCorpus returned nil handle")
	}

	// Check manifest exists
	if h.ManifestPath == "" {
		t.Fatalf("ManifestPath not set")
	}
	// Load manifest and compare
	b, err := os.ReadFile(h.ManifestPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var got domain.Document
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}
	if got.Name != doc.Name {
		t.Fatalf("manifest name mismatch: got %q want %q", got.Name, doc.Name)
	}

	// Standard subdirs should exist
	wantDirs := []string{"renders", BackupsDirName}
	for _, d := range wantDirs {
		p := filepath.Join(root, d)
		if fi, err := os.Stat(p); err != nil || !fi.IsDir() {
			t.Fatalf("expected directory %s to exist", p)
		}
	}
}

func TestSaveCreatesTimestampedBackup(t *testing.T) {
	root := t.TempDir()
	doc := domain.Document{SchemaVersion: domain.CurrentSchemaVersion, Name: "Backup Test", Cases: []domain.Case{}}
	h, err := InitCorpus(root, doc)
	if err != nil {
		t.Fatalf("InitCorpus error: %v", err)
	}

	// Change something and save again to force a backup
	h.Document.Name = "Backup Test (changed)"
	if err := Save(h); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	// Expect at least one .bak file under backups
	ents, err := os.ReadDir(filepath.Join(root, BackupsDirName))
	if err != nil {
		t.Fatalf("read backups dir: %v", err)
	}
	var bakCount int
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, ManifestFileName+".") && strings.HasSuffix(name, ".bak") {
			bakCount++
		}
	}
	if bakCount == 0 {
		t.Fatalf("expected at least one backup file, found 0")
	}
}

func TestOpenFallsBackToLatestBackupOnCorruption(t *testing.T) {
	root := t.TempDir()
	doc := domain.Document{SchemaVersion: domain.CurrentSchemaVersion, Name: "Open From Backup", Cases: []domain.Case{}}
	h, err := InitCorpus(root, doc)
	if err != nil {
		t.Fatalf("InitCorpus error: %v", err)
	}

	// Force a backup to exist by saving
	h.Document.Name = "Open From Backup" // unchanged content still backs up
	if err := Save(h); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	// Corrupt the manifest
	if err := os.WriteFile(h.ManifestPath, []byte("{ this is not json"), 0o644); err != nil {
		t.Fatalf("corrupt manifest: %v", err)
	}

	// Now opening should succeed via latest backup
	opened, err := Open(root)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if opened.Document.Name != doc.Name {
		t.Fatalf("opened corpus name mismatch: got %q want %q", opened.Document.Name, doc.Name)
	}
}

func TestSaveRejectsContractViolations(t *testing.T) {
	root := t.TempDir()
	doc := domain.Document{SchemaVersion: domain.CurrentSchemaVersion, Name: "Reject Test", Cases: []domain.Case{}}
	h, err := InitCorpus(root, doc)
	if err != nil {
		t.Fatalf("InitCorpus error: %v", err)
	}

	// Both anchor and pointer set violates the schema; Save must refuse.
	h.Document.Cases = []domain.Case{{
		Name:     "broken",
		Viewport: domain.RectSpec{Width: 100, Height: 100},
		Anchor:   &domain.RectSpec{Width: 10, Height: 10},
		Pointer:  &domain.PointSpec{X: 1, Y: 1},
		Content:  domain.SizeSpec{Width: 10, Height: 10},
	}}
	if err := Save(h); err == nil {
		t.Fatalf("expected Save to reject an invalid document")
	}
}

func TestAutosaveCrashSnapshotWritesFile(t *testing.T) {
	root := t.TempDir()
	doc := domain.Document{SchemaVersion: domain.CurrentSchemaVersion, Name: "Crash Snapshot", Cases: []domain.Case{}}
	h, err := InitCorpus(root, doc)
	if err != nil {
		t.Fatalf("InitCorpus error: %v", err)
	}

	path, err := AutosaveCrashSnapshot(h)
	if err != nil {
		t.Fatalf("AutosaveCrashSnapshot error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("snapshot file does not exist: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var got domain.Document
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if got.Name != doc.Name {
		t.Fatalf("snapshot content mismatch: got %q want %q", got.Name, doc.Name)
	}
}
