/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package floating

// Controller drives placement for one floating surface over its lifetime:
// it measures through the platform, runs the placement engine, caches the
// content's natural size, and republishes on scroll and resize. All calls
// belong to the single UI flow; nothing here spawns goroutines.

import (
	"anchorkit/internal/geom"
	"anchorkit/internal/log"
	"anchorkit/internal/platform"
	"anchorkit/internal/position"
)

// Controller owns the positioning state of one floating surface.
type Controller struct {
	host    platform.Platform
	anchor  Anchor
	content platform.Element
	opts    Options

	onState func(State)

	rendered   bool
	positioned bool
	last       position.Result

	natural    geom.Size
	hasNatural bool

	cancels []func()
}

// NewController wires content to anchor on the given host platform.
// onState receives every published placement and may be nil. The controller
// stays idle until SetRendered(true).
func NewController(host platform.Platform, anchor Anchor, content platform.Element, opts Options, onState func(State)) *Controller {
	return &Controller{
		host:    host,
		anchor:  anchor,
		content: content,
		opts:    opts,
		onState: onState,
	}
}

// SetAnchor swaps the anchor, e.g. re-targeting a shared context menu. The
// new anchor is used from the next update on.
func (c *Controller) SetAnchor(a Anchor) { c.anchor = a }

// SetOptions replaces the options. They apply from the next update on.
func (c *Controller) SetOptions(opts Options) { c.opts = opts }

// SetRendered starts or ends a rendered cycle. Entering a cycle positions
// synchronously (so the first paint already has coordinates) and then
// subscribes to scroll and resize; leaving cancels the subscriptions and
// discards the placement and the cached natural size.
func (c *Controller) SetRendered(rendered bool) {
	if rendered == c.rendered {
		return
	}
	if rendered {
		c.rendered = true
		c.hasNatural = false
		c.Update(true)
		c.cancels = append(c.cancels,
			c.host.Subscribe(platform.EventScroll, func() { c.Update(false) }),
			c.host.Subscribe(platform.EventResize, func() { c.Update(true) }),
		)
		log.WithComponent("floating").Debug("controller attached")
		return
	}
	c.rendered = false
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = nil
	c.positioned = false
	c.hasNatural = false
	c.publish()
	log.WithComponent("floating").Debug("controller detached")
}

// Update recomputes the placement and publishes the new state. force
// remeasures the content's natural size; without it the cached size is
// reused, which keeps scroll ticks cheap. Any measurement that cannot be
// resolved leaves the previous state standing. No-op outside a rendered
// cycle.
func (c *Controller) Update(force bool) {
	if !c.rendered {
		return
	}
	anchorRect, ok := c.resolveAnchor()
	if !ok {
		return
	}
	if force || !c.hasNatural {
		size, ok := c.host.NaturalSize(c.content)
		if !ok {
			return
		}
		c.natural = size
		c.hasNatural = true
	}

	res := position.Compute(position.Request{
		Anchor:     anchorRect,
		Content:    c.natural,
		Viewport:   c.host.Viewport(),
		Boundaries: c.resolveBoundaries(),

		Side:        c.opts.Side,
		Align:       c.opts.Align,
		SideOffset:  c.opts.sideOffset(),
		AlignOffset: c.opts.AlignOffset,
		Padding:     c.opts.Padding.resolve(),

		AvoidCollisions: !c.opts.DisableCollisionAvoidance,
		Sticky:          c.opts.Sticky,
		ConstrainSize:   c.opts.ConstrainSize,
		MinWidth:        c.opts.MinWidth,
		MinHeight:       c.opts.MinHeight,
	})
	if _, isPointer := c.anchor.(pointerAnchor); isPointer {
		// A fixed point cannot scroll out of view with the content it
		// spawned from.
		res.ReferenceHidden = false
	}
	c.last = res
	c.positioned = true
	c.publish()
}

// State returns the current published view.
func (c *Controller) State() State {
	return State{
		Result:     c.last,
		Positioned: c.positioned,
		Visible:    c.rendered && c.positioned && !(c.opts.HideWhenDetached && c.last.ReferenceHidden),
	}
}

// Positioned reports whether a placement from the current rendered cycle
// exists.
func (c *Controller) Positioned() bool { return c.positioned }

func (c *Controller) publish() {
	if c.onState != nil {
		c.onState(c.State())
	}
}

func (c *Controller) resolveAnchor() (geom.Rect, bool) {
	switch a := c.anchor.(type) {
	case elementAnchor:
		return c.host.Measure(a.el)
	case pointerAnchor:
		return geom.Rect{X: a.at.X, Y: a.at.Y}, true
	}
	return geom.Rect{}, false
}

func (c *Controller) resolveBoundaries() []geom.Rect {
	var rects []geom.Rect
	for _, el := range c.opts.Boundary {
		if r, ok := c.host.Measure(el); ok {
			rects = append(rects, r)
		}
	}
	return rects
}
