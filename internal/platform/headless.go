/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package platform

import (
	"anchorkit/internal/geom"
	"anchorkit/internal/textmeasure"
)

// Node is a stand-in component managed by a Headless platform; the *Node
// pointer itself is the Element handle. Fields are plain data: mutate them
// directly, then fire the matching event.
type Node struct {
	Bounds geom.Rect
	// Natural overrides the measured natural size when HasNatural is set;
	// otherwise Text (wrapped at Wrap) is measured.
	Natural    geom.Size
	HasNatural bool
	Text       string
	Wrap       float32
	// Detached marks the node as removed from layout: measurements fail
	// until it is cleared.
	Detached bool
}

// Headless is the deterministic Platform used by tests and the scenario
// runner. Events fire only when the caller fires them, in subscription
// order.
type Headless struct {
	viewport geom.Rect
	// Fonts measures node text; nil falls back to the basicfont provider.
	Fonts textmeasure.Provider

	subs   []headlessSub
	nextID int
}

type headlessSub struct {
	id   int
	kind EventKind
	fn   func()
}

// NewHeadless returns a platform with the given viewport and no nodes.
func NewHeadless(viewport geom.Rect) *Headless {
	return &Headless{viewport: viewport}
}

// NewNode registers a component stand-in at the given bounds.
func (h *Headless) NewNode(bounds geom.Rect) *Node {
	return &Node{Bounds: bounds}
}

func (h *Headless) Viewport() geom.Rect { return h.viewport }

func (h *Headless) Measure(el Element) (geom.Rect, bool) {
	n, ok := el.(*Node)
	if !ok || n.Detached {
		return geom.Rect{}, false
	}
	return n.Bounds, true
}

func (h *Headless) NaturalSize(el Element) (geom.Size, bool) {
	n, ok := el.(*Node)
	if !ok || n.Detached {
		return geom.Size{}, false
	}
	if n.HasNatural {
		return n.Natural, true
	}
	if n.Text != "" {
		return textmeasure.Block(h.Fonts, n.Text, n.Wrap), true
	}
	return geom.Size{}, false
}

func (h *Headless) Subscribe(kind EventKind, fn func()) func() {
	id := h.nextID
	h.nextID++
	h.subs = append(h.subs, headlessSub{id: id, kind: kind, fn: fn})
	return func() {
		for i, s := range h.subs {
			if s.id == id {
				h.subs = append(h.subs[:i], h.subs[i+1:]...)
				return
			}
		}
	}
}

// SubscriberCount reports live subscriptions for kind.
func (h *Headless) SubscriberCount(kind EventKind) int {
	c := 0
	for _, s := range h.subs {
		if s.kind == kind {
			c++
		}
	}
	return c
}

// FireScroll delivers a scroll notification to every scroll subscriber.
func (h *Headless) FireScroll() { h.fire(EventScroll) }

// FireResize sets the viewport and delivers a resize notification.
func (h *Headless) FireResize(viewport geom.Rect) {
	h.viewport = viewport
	h.fire(EventResize)
}

func (h *Headless) fire(kind EventKind) {
	// Copy first: handlers may subscribe or cancel while running.
	snapshot := make([]headlessSub, len(h.subs))
	copy(snapshot, h.subs)
	for _, s := range snapshot {
		if s.kind == kind && h.stillSubscribed(s.id) {
			s.fn()
		}
	}
}

func (h *Headless) stillSubscribed(id int) bool {
	for _, s := range h.subs {
		if s.id == id {
			return true
		}
	}
	return false
}
