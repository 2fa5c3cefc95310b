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
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"anchorkit/internal/geom"
	"anchorkit/internal/snap"
)

// PlaygroundCanvas is the arrangement surface of the demo: a fixed-size
// region holding a draggable anchor and a few obstacle blocks that act as
// snap targets. Dragging the anchor reports every step through
// OnAnchorMoved; a secondary tap reports its location through OnContextTap.
// Both coordinates are widget-relative.
type PlaygroundCanvas struct {
	widget.BaseWidget

	region    geom.Size
	anchor    geom.Rect
	obstacles []geom.Rect

	snapEnabled   bool
	snapThreshold float32
	showGuides    bool
	guides        []snap.Guide

	dragging bool
	grabDX   float32
	grabDY   float32

	// anchorObj is created up front so the shell can hand it to the
	// controller before the first frame.
	anchorObj *canvas.Rectangle

	// OnAnchorMoved fires on every drag step; done marks the final one.
	OnAnchorMoved func(r geom.Rect, done bool)
	// OnContextTap fires on a secondary tap anywhere on the region.
	OnContextTap func(at geom.Pt)
	// OnTap fires on a primary tap that does not start a drag.
	OnTap func()
}

func NewPlaygroundCanvas(region geom.Size) *PlaygroundCanvas {
	pc := &PlaygroundCanvas{
		region: region,
		anchor: geom.R(96, 140, 120, 36),
		obstacles: []geom.Rect{
			geom.R(40, 40, 170, 64),
			geom.R(region.W-260, region.H-150, 200, 90),
		},
		snapEnabled:   true,
		snapThreshold: snap.DefaultThreshold,
		showGuides:    true,
	}
	pc.anchorObj = canvas.NewRectangle(color.RGBA{R: 30, G: 80, B: 220, A: 255})
	pc.anchorObj.CornerRadius = 4
	pc.ExtendBaseWidget(pc)
	return pc
}

// AnchorObject exposes the anchor's canvas object for measurement.
func (p *PlaygroundCanvas) AnchorObject() fyne.CanvasObject { return p.anchorObj }

// AnchorRect returns the anchor in region coordinates.
func (p *PlaygroundCanvas) AnchorRect() geom.Rect { return p.anchor }

// SetAnchorRect moves the anchor, clamped into the region. Used when an
// undo snapshot is restored.
func (p *PlaygroundCanvas) SetAnchorRect(r geom.Rect) {
	p.anchor = r.ClampInto(geom.R(0, 0, p.region.W, p.region.H))
	p.Refresh()
}

func (p *PlaygroundCanvas) SetSnap(enabled bool, threshold float32) {
	p.snapEnabled = enabled
	if threshold > 0 {
		p.snapThreshold = threshold
	}
}

func (p *PlaygroundCanvas) SetShowGuides(v bool) {
	p.showGuides = v
	p.Refresh()
}

func (p *PlaygroundCanvas) Tapped(_ *fyne.PointEvent) {
	if p.OnTap != nil {
		p.OnTap()
	}
}

func (p *PlaygroundCanvas) TappedSecondary(e *fyne.PointEvent) {
	if p.OnContextTap != nil {
		p.OnContextTap(geom.Pt{X: e.Position.X, Y: e.Position.Y})
	}
}

func (p *PlaygroundCanvas) Dragged(e *fyne.DragEvent) {
	pt := geom.Pt{X: e.Position.X, Y: e.Position.Y}
	if !p.dragging {
		if !p.anchor.Contains(pt) {
			return
		}
		p.dragging = true
		p.grabDX = pt.X - p.anchor.X
		p.grabDY = pt.Y - p.anchor.Y
	}
	moved := geom.R(pt.X-p.grabDX, pt.Y-p.grabDY, p.anchor.W, p.anchor.H)
	moved = moved.ClampInto(geom.R(0, 0, p.region.W, p.region.H))
	if p.snapEnabled {
		moved, p.guides = snap.Align(moved, p.snapTargets(), snap.Options{
			Threshold: p.snapThreshold,
			Edges:     true,
			Centers:   true,
		})
	} else {
		p.guides = nil
	}
	p.anchor = moved
	p.Refresh()
	if p.OnAnchorMoved != nil {
		p.OnAnchorMoved(p.anchor, false)
	}
}

func (p *PlaygroundCanvas) DragEnd() {
	if !p.dragging {
		return
	}
	p.dragging = false
	p.guides = nil
	p.Refresh()
	if p.OnAnchorMoved != nil {
		p.OnAnchorMoved(p.anchor, true)
	}
}

// snapTargets lists what the anchor aligns against: the region itself,
// weighted so its edges win ties, and every obstacle.
func (p *PlaygroundCanvas) snapTargets() []snap.Target {
	ts := []snap.Target{{Rect: geom.R(0, 0, p.region.W, p.region.H), Weight: 2}}
	for _, o := range p.obstacles {
		ts = append(ts, snap.Target{Rect: o, Weight: 1})
	}
	return ts
}

func (p *PlaygroundCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.RGBA{R: 250, G: 250, B: 252, A: 255})
	bg.StrokeColor = color.RGBA{R: 60, G: 60, B: 66, A: 255}
	bg.StrokeWidth = 1

	var blocks []*canvas.Rectangle
	for range p.obstacles {
		b := canvas.NewRectangle(color.RGBA{R: 226, G: 230, B: 238, A: 255})
		b.StrokeColor = color.RGBA{R: 120, G: 128, B: 140, A: 255}
		b.StrokeWidth = 1
		blocks = append(blocks, b)
	}

	label := canvas.NewText("anchor", color.White)
	label.TextSize = 11

	vGuide := canvas.NewLine(color.RGBA{R: 235, G: 61, B: 52, A: 255})
	hGuide := canvas.NewLine(color.RGBA{R: 235, G: 61, B: 52, A: 255})
	vGuide.Hide()
	hGuide.Hide()

	objs := []fyne.CanvasObject{bg}
	for _, b := range blocks {
		objs = append(objs, b)
	}
	objs = append(objs, p.anchorObj, label, vGuide, hGuide)

	return &playgroundRenderer{pc: p, objects: objs, bg: bg, blocks: blocks, label: label, vGuide: vGuide, hGuide: hGuide}
}

type playgroundRenderer struct {
	pc      *PlaygroundCanvas
	objects []fyne.CanvasObject
	bg      *canvas.Rectangle
	blocks  []*canvas.Rectangle
	label   *canvas.Text
	vGuide  *canvas.Line
	hGuide  *canvas.Line
}

func (r *playgroundRenderer) Destroy()                     {}
func (r *playgroundRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *playgroundRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.pc.region.W, r.pc.region.H)
}
func (r *playgroundRenderer) Refresh() {
	r.Layout(r.pc.Size())
	canvas.Refresh(r.pc)
}

func (r *playgroundRenderer) Layout(_ fyne.Size) {
	p := r.pc
	r.bg.Move(fyne.NewPos(0, 0))
	r.bg.Resize(fyne.NewSize(p.region.W, p.region.H))
	for i, b := range r.blocks {
		o := p.obstacles[i]
		b.Move(fyne.NewPos(o.X, o.Y))
		b.Resize(fyne.NewSize(o.W, o.H))
	}
	p.anchorObj.Move(fyne.NewPos(p.anchor.X, p.anchor.Y))
	p.anchorObj.Resize(fyne.NewSize(p.anchor.W, p.anchor.H))
	r.label.Move(fyne.NewPos(p.anchor.X+8, p.anchor.Y+p.anchor.H/2-8))

	r.vGuide.Hide()
	r.hGuide.Hide()
	if !p.showGuides {
		return
	}
	for _, g := range p.guides {
		ln := r.hGuide
		if g.Orientation == "vertical" {
			ln = r.vGuide
		}
		ln.Position1 = fyne.NewPos(g.From.X, g.From.Y)
		ln.Position2 = fyne.NewPos(g.To.X, g.To.Y)
		ln.Show()
	}
}
