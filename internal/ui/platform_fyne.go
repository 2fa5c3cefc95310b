//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"anchorkit/internal/floating"
	"anchorkit/internal/geom"
	"anchorkit/internal/platform"
	"anchorkit/internal/position"
)

// CanvasPlatform adapts a Fyne canvas to the measurement contract the
// positioning controller runs against. Elements are fyne.CanvasObject
// values; anything else is unmeasurable. The canvas delivers no scroll or
// resize callbacks of its own, so the shell forwards them through
// NotifyScroll/NotifyResize from its container hooks.
type CanvasPlatform struct {
	canvas fyne.Canvas

	subs   []canvasSub
	nextID int
}

type canvasSub struct {
	id   int
	kind platform.EventKind
	fn   func()
}

func NewCanvasPlatform(c fyne.Canvas) *CanvasPlatform {
	return &CanvasPlatform{canvas: c}
}

func (p *CanvasPlatform) Viewport() geom.Rect {
	sz := p.canvas.Size()
	return geom.R(0, 0, sz.Width, sz.Height)
}

// Measure returns the element's bounds in canvas coordinates. Hidden
// objects and objects not (yet) attached to a canvas report ok=false.
func (p *CanvasPlatform) Measure(el platform.Element) (geom.Rect, bool) {
	obj, ok := el.(fyne.CanvasObject)
	if !ok || !obj.Visible() {
		return geom.Rect{}, false
	}
	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(obj)
	sz := obj.Size()
	return geom.R(pos.X, pos.Y, sz.Width, sz.Height), true
}

func (p *CanvasPlatform) NaturalSize(el platform.Element) (geom.Size, bool) {
	obj, ok := el.(fyne.CanvasObject)
	if !ok {
		return geom.Size{}, false
	}
	sz := obj.MinSize()
	return geom.Size{W: sz.Width, H: sz.Height}, true
}

func (p *CanvasPlatform) Subscribe(kind platform.EventKind, fn func()) func() {
	id := p.nextID
	p.nextID++
	p.subs = append(p.subs, canvasSub{id: id, kind: kind, fn: fn})
	return func() {
		for i, s := range p.subs {
			if s.id == id {
				p.subs = append(p.subs[:i], p.subs[i+1:]...)
				return
			}
		}
	}
}

// NotifyScroll delivers a scroll notification to every scroll subscriber.
// Call it from the scroll container's OnScrolled hook.
func (p *CanvasPlatform) NotifyScroll() { p.fire(platform.EventScroll) }

// NotifyResize delivers a resize notification to every resize subscriber.
// Call it when the window content changes size.
func (p *CanvasPlatform) NotifyResize() { p.fire(platform.EventResize) }

func (p *CanvasPlatform) fire(kind platform.EventKind) {
	// Copy first: handlers may subscribe or cancel while running.
	snapshot := make([]canvasSub, len(p.subs))
	copy(snapshot, p.subs)
	for _, s := range snapshot {
		if s.kind == kind && p.stillSubscribed(s.id) {
			s.fn()
		}
	}
}

func (p *CanvasPlatform) stillSubscribed(id int) bool {
	for _, s := range p.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

// FloatLayer hosts floating surfaces in a layout-free container stacked over
// the window content. Apply moves, sizes, and shows or hides one attached
// surface from a published placement.
type FloatLayer struct {
	Container *fyne.Container
}

func NewFloatLayer() *FloatLayer {
	return &FloatLayer{Container: container.NewWithoutLayout()}
}

// Attach adds a surface to the layer, hidden until a placement shows it.
func (fl *FloatLayer) Attach(obj fyne.CanvasObject) {
	obj.Hide()
	fl.Container.Add(obj)
}

// Detach removes a surface from the layer.
func (fl *FloatLayer) Detach(obj fyne.CanvasObject) {
	fl.Container.Remove(obj)
}

// Apply positions obj from the published state. Placements are in canvas
// coordinates; the layer's own origin is subtracted so the stack may sit
// inside a padded window.
func (fl *FloatLayer) Apply(obj fyne.CanvasObject, st floating.State) {
	if !st.Visible {
		obj.Hide()
		return
	}
	w, h := surfaceSize(obj.MinSize(), st.Result)
	origin := fyne.CurrentApp().Driver().AbsolutePositionForObject(fl.Container)
	obj.Resize(fyne.NewSize(w, h))
	obj.Move(fyne.NewPos(st.Result.Left-origin.X, st.Result.Top-origin.Y))
	obj.Show()
	obj.Refresh()
}

// surfaceSize clamps a surface's natural size to the constrained maximums
// of a placement.
func surfaceSize(natural fyne.Size, res position.Result) (float32, float32) {
	w, h := natural.Width, natural.Height
	if res.HasMaxWidth && res.MaxWidth < w {
		w = res.MaxWidth
	}
	if res.HasMaxHeight && res.MaxHeight < h {
		h = res.MaxHeight
	}
	return w, h
}
