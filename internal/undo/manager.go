/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import (
	"sync"
	"time"
)

// Snapshot represents a reversible arrangement blob for one surface of the
// playground (the dragged anchor, its options, the boundary layout).
// Blob content is opaque to the manager; size is estimated as len(Blob).
// At is when the snapshot was captured.
type Snapshot struct {
	Surface string
	Blob    []byte
	At      time.Time
}

// Config controls memory and depth caps and coalescing behavior.
type Config struct {
	// MaxBytes is a soft cap; older entries are pruned when exceeded.
	MaxBytes int
	// MaxPerSurface limits snapshots kept per surface (0 means unlimited).
	MaxPerSurface int
	// MinInterval coalesces snapshots captured within the interval for the
	// same surface, replacing the previous one instead of pushing a new
	// entry. Drag streams collapse into one step this way.
	MinInterval time.Duration
}

// Manager provides an in-memory undo/redo stack per surface with
// performance safeguards. It is safe for concurrent use.
type Manager struct {
	cfg Config
	mu  sync.Mutex
	// per-surface stacks
	undo map[string][]Snapshot
	redo map[string][]Snapshot
	// accounting
	totalBytes int
}

func NewManager(cfg Config) *Manager {
	// Set conservative defaults if not provided
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 16 * 1024 * 1024 // 16 MiB
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 250 * time.Millisecond
	}
	return &Manager{cfg: cfg, undo: make(map[string][]Snapshot), redo: make(map[string][]Snapshot)}
}

// Push records a snapshot for a surface. If within MinInterval from the
// last snapshot on the same surface, it replaces the last one. Clears the
// redo stack for that surface.
func (m *Manager) Push(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[s.Surface]
	if n := len(stack); n > 0 {
		last := stack[n-1]
		if s.At.Sub(last.At) < m.cfg.MinInterval {
			// Coalesce: adjust accounting and replace
			m.totalBytes -= len(last.Blob)
			m.totalBytes += len(s.Blob)
			stack[n-1] = s
			m.undo[s.Surface] = stack
			m.redo[s.Surface] = nil
			m.enforceCapsLocked(s.Surface)
			return
		}
	}
	// Push new
	stack = append(stack, s)
	m.undo[s.Surface] = stack
	m.totalBytes += len(s.Blob)
	// Any new change invalidates redo for the surface
	m.redo[s.Surface] = nil
	m.enforceCapsLocked(s.Surface)
}

// Undo pops from the surface's undo stack and pushes to its redo stack,
// returning the snapshot.
func (m *Manager) Undo(surface string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stack := m.undo[surface]
	if len(stack) == 0 {
		return Snapshot{}, false
	}
	s := stack[len(stack)-1]
	m.undo[surface] = stack[:len(stack)-1]
	m.totalBytes -= len(s.Blob)
	m.redo[surface] = append(m.redo[surface], s)
	return s, true
}

// Redo pops from redo and pushes back to undo.
func (m *Manager) Redo(surface string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.redo[surface]
	if len(r) == 0 {
		return Snapshot{}, false
	}
	s := r[len(r)-1]
	m.redo[surface] = r[:len(r)-1]
	m.undo[surface] = append(m.undo[surface], s)
	m.totalBytes += len(s.Blob)
	m.enforceCapsLocked(surface)
	return s, true
}

// Clear drops the undo/redo stacks for a surface to free memory.
func (m *Manager) Clear(surface string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.undo[surface] {
		m.totalBytes -= len(s.Blob)
	}
	delete(m.undo, surface)
	delete(m.redo, surface)
	if m.totalBytes < 0 {
		m.totalBytes = 0
	}
}

// Stats returns current sizes for diagnostics.
func (m *Manager) Stats() (totalBytes int, surfaces int, totalSnapshots int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	surfaces = len(m.undo)
	for _, v := range m.undo {
		totalSnapshots += len(v)
	}
	return m.totalBytes, surfaces, totalSnapshots
}

func (m *Manager) enforceCapsLocked(surface string) {
	// Per-surface depth cap
	if m.cfg.MaxPerSurface > 0 {
		stack := m.undo[surface]
		if len(stack) > m.cfg.MaxPerSurface {
			// drop the oldest extras
			toDrop := len(stack) - m.cfg.MaxPerSurface
			for i := 0; i < toDrop; i++ {
				m.totalBytes -= len(stack[i].Blob)
			}
			m.undo[surface] = append([]Snapshot{}, stack[toDrop:]...)
		}
	}
	// Global memory cap: prune oldest across all surfaces
	for m.cfg.MaxBytes > 0 && m.totalBytes > m.cfg.MaxBytes {
		oldestSurface := ""
		oldestIdx := -1
		var oldestAt time.Time
		for sf, stack := range m.undo {
			if len(stack) == 0 {
				continue
			}
			if oldestIdx == -1 || stack[0].At.Before(oldestAt) {
				oldestSurface = sf
				oldestIdx = 0
				oldestAt = stack[0].At
			}
		}
		if oldestIdx == -1 {
			break
		}
		stack := m.undo[oldestSurface]
		m.totalBytes -= len(stack[0].Blob)
		m.undo[oldestSurface] = stack[1:]
		if len(m.undo[oldestSurface]) == 0 {
			delete(m.undo, oldestSurface)
		}
	}
}
