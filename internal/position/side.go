/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package position

import "fmt"

// Side is the edge of the anchor the floating content is placed against.
// The zero value is SideBottom, the side consumers default to.
type Side int

const (
	SideBottom Side = iota
	SideTop
	SideRight
	SideLeft
)

// Opposite returns the side across the anchor.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	default:
		return SideLeft
	}
}

// IsVertical reports whether s places content above or below the anchor,
// making the horizontal axis the alignment axis.
func (s Side) IsVertical() bool { return s == SideTop || s == SideBottom }

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	}
	return fmt.Sprintf("side(%d)", int(s))
}

// ParseSide maps the serialized form back to a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "top":
		return SideTop, nil
	case "right":
		return SideRight, nil
	case "bottom":
		return SideBottom, nil
	case "left":
		return SideLeft, nil
	}
	return SideBottom, fmt.Errorf("unknown side %q", s)
}

// Align positions the content along the axis perpendicular to the side.
// The zero value is AlignCenter, the alignment consumers default to.
type Align int

const (
	AlignCenter Align = iota
	AlignStart
	AlignEnd
)

func (a Align) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	}
	return fmt.Sprintf("align(%d)", int(a))
}

// ParseAlign maps the serialized form back to an Align.
func ParseAlign(s string) (Align, error) {
	switch s {
	case "start":
		return AlignStart, nil
	case "center":
		return AlignCenter, nil
	case "end":
		return AlignEnd, nil
	}
	return AlignCenter, fmt.Errorf("unknown align %q", s)
}

// Sticky controls whether boundary clamping keeps applying once the anchor
// has left the clipping region on the alignment axis.
type Sticky int

const (
	// StickyPartial stops clamping when the anchor no longer overlaps the
	// clipping region on the alignment axis, letting the content follow the
	// anchor out of view.
	StickyPartial Sticky = iota
	// StickyAlways clamps unconditionally.
	StickyAlways
)

func (st Sticky) String() string {
	switch st {
	case StickyPartial:
		return "partial"
	case StickyAlways:
		return "always"
	}
	return fmt.Sprintf("sticky(%d)", int(st))
}

// ParseSticky maps the serialized form back to a Sticky.
func ParseSticky(s string) (Sticky, error) {
	switch s {
	case "partial":
		return StickyPartial, nil
	case "always":
		return StickyAlways, nil
	}
	return StickyPartial, fmt.Errorf("unknown sticky mode %q", s)
}
