/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package floating

import (
	"testing"

	"anchorkit/internal/geom"
	"anchorkit/internal/position"
)

func TestController_FailedMeasurementKeepsPreviousState(t *testing.T) {
	h := newHarness()
	c := h.controller(Options{})
	c.SetRendered(true)

	before := c.State()
	published := len(h.states)

	h.anchor.Detached = true
	h.host.FireScroll()

	if len(h.states) != published {
		t.Fatalf("expected no publish while the anchor is unmeasurable")
	}
	if got := c.State(); got != before {
		t.Fatalf("expected previous state to stand, got %+v", got)
	}

	h.anchor.Detached = false
	h.host.FireScroll()
	if len(h.states) != published+1 {
		t.Fatalf("expected updates to resume, got %d publishes", len(h.states))
	}
}

func TestController_HideWhenDetached(t *testing.T) {
	h := newHarness()
	c := h.controller(Options{HideWhenDetached: true})
	c.SetRendered(true)

	if !c.State().Visible {
		t.Fatalf("expected visible while anchor is in view")
	}

	// Anchor fully above the viewport: hidden, but still positioned so the
	// surface can come straight back.
	h.anchor.Bounds = geom.R(100, -50, 80, 20)
	h.host.FireScroll()
	st := c.State()
	if !st.Result.ReferenceHidden {
		t.Fatalf("expected reference reported hidden")
	}
	if st.Visible || !st.Positioned {
		t.Fatalf("expected hidden but positioned, got %+v", st)
	}

	h.anchor.Bounds = geom.R(100, 100, 80, 20)
	h.host.FireScroll()
	if !c.State().Visible {
		t.Fatalf("expected visible again after scroll back")
	}
}

func TestController_PointerAnchorNeverDetached(t *testing.T) {
	h := newHarness()
	c := h.controller(Options{HideWhenDetached: true})
	c.SetRendered(true)

	// Re-target to a fixed point outside the viewport, as a context menu
	// opened at the edge would.
	c.SetAnchor(AnchorAt(geom.Pt{X: -40, Y: -40}))
	c.Update(false)

	st := c.State()
	if st.Result.ReferenceHidden {
		t.Fatalf("pointer anchors must not report detachment")
	}
	if !st.Visible {
		t.Fatalf("expected pointer-anchored surface to stay visible")
	}
}

func TestController_PointerAnchorPlacement(t *testing.T) {
	h := newHarness()
	c := h.controller(Options{Align: position.AlignStart})
	c.SetRendered(true)

	c.SetAnchor(AnchorAt(geom.Pt{X: 300, Y: 200}))
	c.Update(false)

	res := c.State().Result
	if res.Top != 204 || res.Left != 300 {
		t.Fatalf("unexpected pointer placement: %+v", res)
	}
}

func TestController_BoundaryElementsClip(t *testing.T) {
	h := newHarness()
	panel := h.host.NewNode(geom.R(0, 0, 800, 300))
	c := h.controller(Options{Boundary: []any{panel}})

	h.anchor.Bounds = geom.R(100, 250, 80, 20)
	c.SetRendered(true)

	res := c.State().Result
	if res.Side != position.SideTop {
		t.Fatalf("expected boundary to force top, got %v", res.Side)
	}
	if res.Top != 186 { // 250 - 60 - 4
		t.Fatalf("expected top 186, got %v", res.Top)
	}

	// An unmeasurable boundary falls back to the viewport alone.
	panel.Detached = true
	h.host.FireScroll()
	if got := c.State().Result.Side; got != position.SideBottom {
		t.Fatalf("expected viewport-only clipping, got %v", got)
	}
}

func TestController_SetOptionsAppliesNextUpdate(t *testing.T) {
	h := newHarness()
	c := h.controller(Options{})
	c.SetRendered(true)

	c.SetOptions(Options{Side: position.SideRight, Align: position.AlignStart})
	if got := c.State().Result.Side; got != position.SideBottom {
		t.Fatalf("expected options to wait for the next update, got %v", got)
	}
	c.Update(false)
	res := c.State().Result
	if res.Side != position.SideRight {
		t.Fatalf("expected right side, got %v", res.Side)
	}
	if res.Left != 184 || res.Top != 100 { // anchor right 180 + 4, start-aligned
		t.Fatalf("unexpected placement: %+v", res)
	}
}

func TestController_NaturalSizeFromTextContent(t *testing.T) {
	h := newHarness()
	h.surface.HasNatural = false
	h.surface.Text = "hello" // 35x13 under the basic face
	c := h.controller(Options{Align: position.AlignStart})
	c.SetRendered(true)

	res := c.State().Result
	if res.Top != 124 || res.Left != 100 {
		t.Fatalf("unexpected placement: %+v", res)
	}

	// Missing content measurement is a silent no-op.
	h.surface.Text = ""
	h.host.FireResize(geom.R(0, 0, 800, 600))
	if got := c.State().Result; got != res {
		t.Fatalf("expected previous placement kept, got %+v", got)
	}
}
