/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the scenario corpus data model: a serializable set of
// named placement cases used for regression runs, documentation renders
// and the CLI. It is intended to serialize to a human-readable JSON
// manifest (scenarios.json).

import (
	"errors"

	"anchorkit/internal/floating"
	"anchorkit/internal/geom"
	"anchorkit/internal/position"
)

// Document is the root of a scenario corpus.
type Document struct {
	SchemaVersion int    `json:"schemaVersion"`
	Name          string `json:"name"`
	Cases         []Case `json:"cases"`
}

// CurrentSchemaVersion is written into new documents.
const CurrentSchemaVersion = 1

// Case describes a single placement situation. Exactly one of Anchor and
// Pointer must be set; Expect is optional and only its set fields are
// checked during evaluation.
type Case struct {
	Name       string       `json:"name"`
	Viewport   RectSpec     `json:"viewport"`
	Anchor     *RectSpec    `json:"anchor,omitempty"`
	Pointer    *PointSpec   `json:"pointer,omitempty"`
	Content    SizeSpec     `json:"content"`
	Boundaries []RectSpec   `json:"boundaries,omitempty"`
	Options    OptionSpec   `json:"options,omitempty"`
	Expect     *Expectation `json:"expect,omitempty"`
	Notes      string       `json:"notes,omitempty"`
}

// RectSpec is a rectangle in top/left/width/height form, the shape used
// throughout scenario files.
type RectSpec struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect converts the spec into the engine's geometry form.
func (r RectSpec) Rect() geom.Rect {
	return geom.Rect{X: float32(r.Left), Y: float32(r.Top), W: float32(r.Width), H: float32(r.Height)}
}

// PointSpec is a fixed coordinate, used by pointer-anchored cases such as
// context menus.
type PointSpec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SizeSpec is a width/height pair.
type SizeSpec struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size converts the spec into the engine's geometry form.
func (s SizeSpec) Size() geom.Size {
	return geom.Size{W: float32(s.Width), H: float32(s.Height)}
}

// OptionSpec mirrors the widget-level options in serializable form. Unset
// fields resolve to the widget defaults: side bottom, align center, side
// offset 4, uniform padding 8, collision avoidance on, partial sticky.
// Pointer fields distinguish "unset" from an explicit zero.
type OptionSpec struct {
	Side        string   `json:"side,omitempty"`
	Align       string   `json:"align,omitempty"`
	SideOffset  *float64 `json:"sideOffset,omitempty"`
	AlignOffset float64  `json:"alignOffset,omitempty"`
	Padding     *float64 `json:"padding,omitempty"`

	AvoidCollisions *bool  `json:"avoidCollisions,omitempty"`
	Sticky          string `json:"sticky,omitempty"`

	ConstrainSize bool    `json:"constrainSize,omitempty"`
	MinWidth      float64 `json:"minWidth,omitempty"`
	MinHeight     float64 `json:"minHeight,omitempty"`
}

// Expectation lists the outputs a case must produce. Numeric fields
// compare with the Epsilon tolerance.
type Expectation struct {
	Top       *float64 `json:"top,omitempty"`
	Left      *float64 `json:"left,omitempty"`
	Side      string   `json:"side,omitempty"`
	Align     string   `json:"align,omitempty"`
	MaxWidth  *float64 `json:"maxWidth,omitempty"`
	MaxHeight *float64 `json:"maxHeight,omitempty"`
	Hidden    *bool    `json:"hidden,omitempty"`
}

// BuildRequest resolves a case into an engine request, applying the widget
// defaults for every unset option.
func BuildRequest(c Case) (position.Request, error) {
	var req position.Request
	if (c.Anchor == nil) == (c.Pointer == nil) {
		return req, errors.New("exactly one of anchor and pointer is required")
	}

	req.Viewport = c.Viewport.Rect()
	if c.Anchor != nil {
		req.Anchor = c.Anchor.Rect()
	} else {
		// pointer anchors become a zero-size rect at the event coordinates
		req.Anchor = geom.Rect{X: float32(c.Pointer.X), Y: float32(c.Pointer.Y)}
	}
	req.Content = c.Content.Size()
	for _, b := range c.Boundaries {
		req.Boundaries = append(req.Boundaries, b.Rect())
	}

	o := c.Options
	if o.Side != "" {
		s, err := position.ParseSide(o.Side)
		if err != nil {
			return req, err
		}
		req.Side = s
	}
	if o.Align != "" {
		a, err := position.ParseAlign(o.Align)
		if err != nil {
			return req, err
		}
		req.Align = a
	}
	if o.Sticky != "" {
		st, err := position.ParseSticky(o.Sticky)
		if err != nil {
			return req, err
		}
		req.Sticky = st
	}

	req.SideOffset = floating.DefaultSideOffset
	if o.SideOffset != nil {
		req.SideOffset = float32(*o.SideOffset)
	}
	req.AlignOffset = float32(o.AlignOffset)

	pad := float32(floating.DefaultPadding)
	if o.Padding != nil {
		pad = float32(*o.Padding)
	}
	req.Padding = geom.Uniform(pad)

	req.AvoidCollisions = true
	if o.AvoidCollisions != nil {
		req.AvoidCollisions = *o.AvoidCollisions
	}
	req.ConstrainSize = o.ConstrainSize
	req.MinWidth = float32(o.MinWidth)
	req.MinHeight = float32(o.MinHeight)
	return req, nil
}
