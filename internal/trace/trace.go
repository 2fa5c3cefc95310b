/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package trace is an embedded flight recorder for placement ticks. Every
// recomputation of a floating surface can be written as one row into a small
// SQLite database next to the workspace, which makes "why did the popover
// jump" questions answerable after the fact. The database is derived data:
// deleting the file is always safe, the recorder recreates it on next open.
package trace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "anchorkit/internal/log"
	"anchorkit/internal/position"
	"anchorkit/internal/version"
	"log/slog"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// TraceDirName stores all per-workspace derived data under the root.
	TraceDirName  = ".anchorkit"
	TraceFileName = "trace.sqlite"

	// schemaVersion tracks the local SQLite schema for the recorder.
	// Bump this when you perform breaking schema changes and add migrations.
	schemaVersion = 2
)

// Trigger names for the events that cause a placement tick. Record accepts
// arbitrary strings; these cover the triggers the controller and the demo
// playground produce.
const (
	TriggerMount  = "mount"
	TriggerScroll = "scroll"
	TriggerResize = "resize"
	TriggerDrag   = "drag"
	TriggerManual = "manual"
)

// Path returns the full path to the workspace's trace database file.
func Path(root string) string {
	return filepath.Join(root, TraceDirName, TraceFileName)
}

// Tick is one recorded placement: which surface was positioned, what
// triggered the recomputation, the outcome the kernel produced, and how long
// the computation took.
type Tick struct {
	At       time.Time
	Surface  string
	Trigger  string
	Result   position.Result
	Duration time.Duration
}

// Summary aggregates the recorded ticks for reporting.
type Summary struct {
	Total       int
	Hidden      int
	ByTrigger   map[string]int
	BySide      map[string]int
	AvgDuration time.Duration
}

// Recorder owns the open database. It is safe for concurrent use; writes are
// serialized over a single connection.
type Recorder struct {
	root string
	db   *sql.DB
	log  *slog.Logger
}

// Open ensures the trace database exists at <root>/.anchorkit/trace.sqlite,
// enables WAL mode, and brings the schema up to date. A database that fails
// to open or verify is backed up and recreated empty; ticks are not worth a
// recovery procedure.
func Open(root string) (*Recorder, error) {
	l := applog.WithOperation(applog.WithComponent("trace"), "open").With(
		slog.String("root", root),
	)
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("workspace root is required")
	}
	if err := os.MkdirAll(filepath.Join(root, TraceDirName), 0o755); err != nil {
		l.Error("create .anchorkit dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create .anchorkit dir: %w", err)
	}

	path := Path(root)
	db, err := openAndVerify(path)
	if err != nil {
		// Derived data: back the broken file up and start over once.
		l.Warn("trace db unusable, recreating", slog.Any("err", err))
		backupTraceFile(path)
		_ = os.Remove(path)
		db, err = openAndVerify(path)
		if err != nil {
			l.Error("trace db recreate failed", slog.Any("err", err))
			return nil, err
		}
	}

	l.Info("trace recorder ready", slog.String("path", path))
	return &Recorder{root: root, db: db, log: applog.WithComponent("trace")}, nil
}

// openAndVerify opens the database file, applies pragmas, ensures the schema
// and runs migrations. Any failure closes the handle again.
func openAndVerify(path string) (*sql.DB, error) {
	// Use a URI with shared cache and set busy timeout. Convert to forward slashes for SQLite URI.
	uriPath := filepath.ToSlash(path)
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", uriPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Single connection: embedded usage, writes must serialize.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	var chk string
	if err := db.QueryRowContext(ctx, "PRAGMA quick_check;").Scan(&chk); err != nil || !strings.Contains(strings.ToLower(chk), "ok") {
		_ = db.Close()
		return nil, fmt.Errorf("quick_check failed: %v (%s)", err, chk)
	}
	if err := ensureMetaAndVersion(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureTraceSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func ensureMetaAndVersion(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	// Seed or update single-row version info
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var curSchema int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&curSchema)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`, schemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		// Update app and timestamp only; keep existing schema for migrations
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

// ensureTraceSchema creates the tick table if it does not exist.
func ensureTraceSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS ticks (
			id          INTEGER PRIMARY KEY,
			at          TEXT    NOT NULL,
			surface     TEXT    NOT NULL,
			cause       TEXT    NOT NULL,
			side        TEXT    NOT NULL,
			alignment   TEXT    NOT NULL,
			pos_top     REAL    NOT NULL,
			pos_left    REAL    NOT NULL,
			max_w       REAL,
			max_h       REAL,
			ref_hidden  INTEGER NOT NULL DEFAULT 0,
			duration_us INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_ticks_at ON ticks(at);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure trace schema: %w", err)
		}
	}
	return nil
}

// runMigrations applies incremental schema migrations up to schemaVersion.
func runMigrations(ctx context.Context, db *sql.DB) error {
	var cur int
	if err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if cur > schemaVersion {
		// Do not downgrade; just continue on the newer schema
		return nil
	}
	for cur < schemaVersion {
		next := cur + 1
		switch next {
		case 2:
			// Per-surface lookups for Summary and the UI inspector
			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				return fmt.Errorf("begin migration %d: %w", next, err)
			}
			stmts := []string{
				`CREATE INDEX IF NOT EXISTS idx_ticks_surface ON ticks(surface, at);`,
				`CREATE INDEX IF NOT EXISTS idx_ticks_cause ON ticks(cause);`,
			}
			for _, q := range stmts {
				if _, err := tx.ExecContext(ctx, q); err != nil {
					_ = tx.Rollback()
					return fmt.Errorf("migration %d stmt failed: %w", next, err)
				}
			}
			if _, err := tx.ExecContext(ctx, `UPDATE version SET schema=?, updated_at=? WHERE id=1`, next, time.Now().UTC().Format(time.RFC3339)); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d update version: %w", next, err)
			}
			if err := tx.Commit(); err != nil {
				return fmt.Errorf("migration %d commit: %w", next, err)
			}
		default:
			// Unknown future step; break
		}
		cur = next
	}
	return nil
}

// backupTraceFile copies the current database into a timestamped backup in
// .anchorkit/backups before it is recreated.
func backupTraceFile(path string) {
	bdir := filepath.Join(filepath.Dir(path), "backups")
	_ = os.MkdirAll(bdir, 0o755)
	stamp := time.Now().Format("20060102-150405")
	bak := filepath.Join(bdir, fmt.Sprintf("%s.%s.bak", filepath.Base(path), stamp))
	if data, err := os.ReadFile(path); err == nil {
		_ = os.WriteFile(bak, data, 0o644)
	}
}

// Close releases the database handle.
func (r *Recorder) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Root returns the workspace root the recorder was opened on.
func (r *Recorder) Root() string { return r.root }

// Record inserts one placement tick. A zero At is stamped with the current
// time.
func (r *Recorder) Record(ctx context.Context, t Tick) error {
	if r == nil || r.db == nil {
		return errors.New("recorder is closed")
	}
	at := t.At
	if at.IsZero() {
		at = time.Now()
	}
	var maxW, maxH sql.NullFloat64
	if t.Result.HasMaxWidth {
		maxW = sql.NullFloat64{Float64: float64(t.Result.MaxWidth), Valid: true}
	}
	if t.Result.HasMaxHeight {
		maxH = sql.NullFloat64{Float64: float64(t.Result.MaxHeight), Valid: true}
	}
	hidden := 0
	if t.Result.ReferenceHidden {
		hidden = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ticks (at, surface, cause, side, alignment, pos_top, pos_left, max_w, max_h, ref_hidden, duration_us)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		at.UTC().Format(time.RFC3339Nano),
		t.Surface,
		t.Trigger,
		t.Result.Side.String(),
		t.Result.Align.String(),
		float64(t.Result.Top),
		float64(t.Result.Left),
		maxW,
		maxH,
		hidden,
		t.Duration.Microseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert tick: %w", err)
	}
	return nil
}

// Count returns the number of recorded ticks.
func (r *Recorder) Count(ctx context.Context) (int, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("recorder is closed")
	}
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ticks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count ticks: %w", err)
	}
	return n, nil
}

// Summary aggregates all recorded ticks by trigger and by chosen side.
func (r *Recorder) Summary(ctx context.Context) (Summary, error) {
	s := Summary{ByTrigger: map[string]int{}, BySide: map[string]int{}}
	if r == nil || r.db == nil {
		return s, errors.New("recorder is closed")
	}
	var avgUS sql.NullFloat64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(ref_hidden),0), AVG(duration_us) FROM ticks`,
	).Scan(&s.Total, &s.Hidden, &avgUS)
	if err != nil {
		return s, fmt.Errorf("aggregate ticks: %w", err)
	}
	if avgUS.Valid {
		s.AvgDuration = time.Duration(avgUS.Float64 * float64(time.Microsecond))
	}
	rows, err := r.db.QueryContext(ctx, `SELECT cause, COUNT(*) FROM ticks GROUP BY cause`)
	if err != nil {
		return s, fmt.Errorf("group by cause: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var k string
		var n int
		if err := rows.Scan(&k, &n); err != nil {
			return s, fmt.Errorf("scan cause row: %w", err)
		}
		s.ByTrigger[k] = n
	}
	if err := rows.Err(); err != nil {
		return s, fmt.Errorf("cause rows: %w", err)
	}
	srows, err := r.db.QueryContext(ctx, `SELECT side, COUNT(*) FROM ticks GROUP BY side`)
	if err != nil {
		return s, fmt.Errorf("group by side: %w", err)
	}
	defer srows.Close()
	for srows.Next() {
		var k string
		var n int
		if err := srows.Scan(&k, &n); err != nil {
			return s, fmt.Errorf("scan side row: %w", err)
		}
		s.BySide[k] = n
	}
	if err := srows.Err(); err != nil {
		return s, fmt.Errorf("side rows: %w", err)
	}
	return s, nil
}

// Prune deletes all but the newest keep ticks and reports how many rows were
// removed. keep <= 0 clears the table.
func (r *Recorder) Prune(ctx context.Context, keep int) (int64, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("recorder is closed")
	}
	if keep < 0 {
		keep = 0
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM ticks WHERE id NOT IN (SELECT id FROM ticks ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune ticks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune rows affected: %w", err)
	}
	return n, nil
}

// Flush forces a WAL checkpoint so the main database file is current. Crash
// recovery calls this before the process exits.
func (r *Recorder) Flush(ctx context.Context) error {
	if r == nil || r.db == nil {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
		return fmt.Errorf("wal checkpoint: %w", err)
	}
	return nil
}
