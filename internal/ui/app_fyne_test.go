//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests validate the Fyne-based UI components. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
//
// Ensure you have the Fyne dependencies installed and a working OS driver.
package ui

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"

	"anchorkit/internal/floating"
	"anchorkit/internal/geom"
	"anchorkit/internal/platform"
	"anchorkit/internal/position"
)

func TestPlaygroundCanvas_Defaults(t *testing.T) {
	pg := NewPlaygroundCanvas(geom.Size{W: 900, H: 700})
	if got := pg.AnchorRect(); got != geom.R(96, 140, 120, 36) {
		t.Fatalf("unexpected default anchor: %+v", got)
	}
	if sz := pg.CreateRenderer().MinSize(); sz.Width != 900 || sz.Height != 700 {
		t.Fatalf("unexpected MinSize: %v", sz)
	}
}

func TestPlaygroundCanvas_LayoutGeometry(t *testing.T) {
	test.NewApp()
	pg := NewPlaygroundCanvas(geom.Size{W: 600, H: 400})
	r, ok := pg.CreateRenderer().(*playgroundRenderer)
	if !ok {
		t.Fatalf("expected playgroundRenderer, got %T", pg.CreateRenderer())
	}
	r.Layout(fyne.NewSize(600, 400))

	obj := pg.AnchorObject()
	if pos := obj.Position(); pos.X != 96 || pos.Y != 140 {
		t.Fatalf("unexpected anchor position: %v", pos)
	}
	if sz := obj.Size(); sz.Width != 120 || sz.Height != 36 {
		t.Fatalf("unexpected anchor size: %v", sz)
	}

	// Restoring an out-of-region rect clamps it back inside.
	pg.SetAnchorRect(geom.R(700, 500, 120, 36))
	if got := pg.AnchorRect(); got.X != 480 || got.Y != 364 {
		t.Fatalf("expected clamped anchor, got %+v", got)
	}
	r.Layout(fyne.NewSize(600, 400))
	if pos := obj.Position(); pos.X != 480 || pos.Y != 364 {
		t.Fatalf("anchor object did not follow the rect: %v", pos)
	}
}

func TestPlaygroundCanvas_DragSnapsToRegionEdge(t *testing.T) {
	test.NewApp()
	pg := NewPlaygroundCanvas(geom.Size{W: 600, H: 400})
	pg.SetSnap(true, 6)

	var lastRect geom.Rect
	var doneSeen bool
	pg.OnAnchorMoved = func(r geom.Rect, done bool) {
		lastRect = r
		if done {
			doneSeen = true
		}
	}

	// Grab inside the anchor, then drag until its left edge lands at x=4,
	// inside the snap threshold of the region edge.
	start := pg.AnchorRect()
	grab := fyne.NewPos(start.X+10, start.Y+10)
	pg.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: grab}})
	pg.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(14, grab.Y)}})
	if lastRect.X != 0 {
		t.Fatalf("expected snap to x=0, got %+v", lastRect)
	}
	if len(pg.guides) == 0 {
		t.Fatal("expected a snap guide while dragging")
	}

	pg.DragEnd()
	if !doneSeen {
		t.Fatal("expected a final OnAnchorMoved with done=true")
	}
	if pg.guides != nil {
		t.Fatal("guides should clear at drag end")
	}
}

func TestPlaygroundCanvas_DragOutsideAnchorIsIgnored(t *testing.T) {
	test.NewApp()
	pg := NewPlaygroundCanvas(geom.Size{W: 600, H: 400})
	moves := 0
	pg.OnAnchorMoved = func(geom.Rect, bool) { moves++ }
	pg.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(500, 10)}})
	pg.DragEnd()
	if moves != 0 {
		t.Fatalf("drag outside the anchor should not move it, got %d callbacks", moves)
	}
}

func TestCanvasPlatform_SubscribeAndNotify(t *testing.T) {
	p := NewCanvasPlatform(nil)
	scrolls, resizes := 0, 0
	cancel := p.Subscribe(platform.EventScroll, func() { scrolls++ })
	p.Subscribe(platform.EventResize, func() { resizes++ })

	p.NotifyScroll()
	p.NotifyResize()
	p.NotifyScroll()
	if scrolls != 2 || resizes != 1 {
		t.Fatalf("expected 2 scrolls and 1 resize, got %d and %d", scrolls, resizes)
	}

	cancel()
	p.NotifyScroll()
	if scrolls != 2 {
		t.Fatalf("cancelled subscriber still fired: %d", scrolls)
	}
}

func TestCanvasPlatform_Measure(t *testing.T) {
	test.NewApp()
	rect := canvas.NewRectangle(color.White)
	w := test.NewWindow(container.NewWithoutLayout(rect))
	defer w.Close()
	w.Resize(fyne.NewSize(300, 200))
	rect.Resize(fyne.NewSize(50, 20))
	rect.Move(fyne.NewPos(30, 40))

	p := NewCanvasPlatform(w.Canvas())
	got, ok := p.Measure(rect)
	if !ok {
		t.Fatal("expected rect to be measurable")
	}
	if got.W != 50 || got.H != 20 {
		t.Fatalf("unexpected measured size: %+v", got)
	}

	// Movement shows up as the same delta in canvas coordinates.
	base := got
	rect.Move(fyne.NewPos(60, 90))
	got, _ = p.Measure(rect)
	if got.X-base.X != 30 || got.Y-base.Y != 50 {
		t.Fatalf("expected measure to track movement, got %+v from %+v", got, base)
	}

	rect.Hide()
	if _, ok := p.Measure(rect); ok {
		t.Fatal("hidden object should not measure")
	}
	if _, ok := p.Measure(42); ok {
		t.Fatal("foreign element should not measure")
	}

	if vp := p.Viewport(); vp.W <= 0 || vp.H <= 0 {
		t.Fatalf("expected positive viewport, got %+v", vp)
	}
}

func TestCanvasPlatform_NaturalSize(t *testing.T) {
	p := NewCanvasPlatform(nil)
	rect := canvas.NewRectangle(color.White)
	rect.SetMinSize(fyne.NewSize(80, 30))
	sz, ok := p.NaturalSize(rect)
	if !ok || sz.W != 80 || sz.H != 30 {
		t.Fatalf("unexpected natural size: %+v ok=%v", sz, ok)
	}
	if _, ok := p.NaturalSize("nope"); ok {
		t.Fatal("foreign element should have no natural size")
	}
}

func TestSurfaceSize_Clamps(t *testing.T) {
	natural := fyne.NewSize(200, 150)

	w, h := surfaceSize(natural, position.Result{})
	if w != 200 || h != 150 {
		t.Fatalf("unconstrained surface should keep its natural size, got %v x %v", w, h)
	}
	w, h = surfaceSize(natural, position.Result{HasMaxHeight: true, MaxHeight: 90})
	if w != 200 || h != 90 {
		t.Fatalf("expected height clamp, got %v x %v", w, h)
	}
	w, h = surfaceSize(natural, position.Result{HasMaxWidth: true, MaxWidth: 120})
	if w != 120 || h != 150 {
		t.Fatalf("expected width clamp, got %v x %v", w, h)
	}
	// A roomier max never grows the surface.
	if _, h = surfaceSize(natural, position.Result{HasMaxHeight: true, MaxHeight: 400}); h != 150 {
		t.Fatalf("max above natural should not grow the surface, got height %v", h)
	}
}

func TestFloatLayer_Apply(t *testing.T) {
	test.NewApp()
	layer := NewFloatLayer()
	obj := canvas.NewRectangle(color.White)
	obj.SetMinSize(fyne.NewSize(80, 40))
	layer.Attach(obj)
	if obj.Visible() {
		t.Fatal("attached surface should start hidden")
	}

	layer.Apply(obj, floating.State{
		Positioned: true,
		Visible:    true,
		Result:     position.Result{Top: 25, Left: 60},
	})
	if !obj.Visible() {
		t.Fatal("surface should show after a visible placement")
	}
	if pos := obj.Position(); pos.X != 60 || pos.Y != 25 {
		t.Fatalf("unexpected surface position: %v", pos)
	}
	if sz := obj.Size(); sz.Width != 80 || sz.Height != 40 {
		t.Fatalf("unexpected surface size: %v", sz)
	}

	layer.Apply(obj, floating.State{})
	if obj.Visible() {
		t.Fatal("surface should hide when the placement is not visible")
	}
}
