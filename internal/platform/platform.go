/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package platform

// Host abstraction for placement. Everything the positioning layer needs
// from a component tree goes through Platform, so the same controller runs
// against a live canvas, the headless double, and the scenario runner.

import "anchorkit/internal/geom"

// Element identifies a node in the host component tree. Platforms treat it
// as an opaque tag and answer ok=false for values they do not recognize.
type Element = any

// EventKind selects which host notifications a subscription receives.
type EventKind int

const (
	// EventScroll fires when any scroll container in the tree scrolls.
	EventScroll EventKind = iota
	// EventResize fires when the viewport changes size.
	EventResize
)

func (k EventKind) String() string {
	switch k {
	case EventScroll:
		return "scroll"
	case EventResize:
		return "resize"
	}
	return "event"
}

// Platform supplies measurements and change notifications from the host
// tree. Implementations deliver subscribed events synchronously on the UI
// flow; nothing here is safe for concurrent mutation from other goroutines.
type Platform interface {
	// Viewport returns the visible canvas area in canvas coordinates.
	Viewport() geom.Rect
	// Measure returns el's bounds in canvas coordinates. ok is false when
	// el is unknown to this platform or not currently laid out.
	Measure(el Element) (geom.Rect, bool)
	// NaturalSize returns el's preferred size, free of imposed constraints.
	NaturalSize(el Element) (geom.Size, bool)
	// Subscribe registers fn for kind and returns the cancel that removes
	// the registration. Cancel is idempotent.
	Subscribe(kind EventKind, fn func()) (cancel func())
}
