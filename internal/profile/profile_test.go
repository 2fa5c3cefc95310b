/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package profile

import (
	"path/filepath"
	"testing"

	"anchorkit/internal/position"
)

func TestBuiltinsResolve(t *testing.T) {
	for name, p := range Builtins() {
		if _, err := p.Options(); err != nil {
			t.Fatalf("builtin %q does not resolve: %v", name, err)
		}
	}

	o, err := Builtins()["dropdown"].Options()
	if err != nil {
		t.Fatalf("dropdown: %v", err)
	}
	if o.Side != position.SideBottom || o.Align != position.AlignStart {
		t.Fatalf("dropdown side/align mismatch: %v/%v", o.Side, o.Align)
	}
	if !o.ConstrainSize || o.MinHeight != 96 {
		t.Fatalf("dropdown size constraint mismatch: %+v", o)
	}

	o, err = Builtins()["tooltip"].Options()
	if err != nil {
		t.Fatalf("tooltip: %v", err)
	}
	if o.Side != position.SideTop || !o.HideWhenDetached || o.SideOffset != 6 {
		t.Fatalf("tooltip options mismatch: %+v", o)
	}

	o, err = Builtins()["context-menu"].Options()
	if err != nil {
		t.Fatalf("context-menu: %v", err)
	}
	if o.Sticky != position.StickyAlways {
		t.Fatalf("context-menu should clamp unconditionally, got %v", o.Sticky)
	}
}

func TestResolveUnknownFallsBackToDefaults(t *testing.T) {
	o := Resolve("no-such-profile")
	if o.Side != position.SideBottom || o.Align != position.AlignCenter {
		t.Fatalf("expected zero-value defaults, got %+v", o)
	}
	if o.ConstrainSize || o.DisableCollisionAvoidance {
		t.Fatalf("expected zero-value defaults, got %+v", o)
	}
}

func TestProfileOptionsRejectsBadEnums(t *testing.T) {
	if _, err := (Profile{Side: "diagonal"}).Options(); err == nil {
		t.Fatalf("expected bad side to error")
	}
	if _, err := (Profile{Align: "middle"}).Options(); err == nil {
		t.Fatalf("expected bad align to error")
	}
	if _, err := (Profile{Sticky: "sometimes"}).Options(); err == nil {
		t.Fatalf("expected bad sticky to error")
	}
}

func TestBundleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	off := 12.0
	pad := 16.0
	in := Bundle{Profiles: map[string]Profile{
		"sidebar-popover": {
			Side:       "right",
			Align:      "start",
			SideOffset: &off,
			Padding:    &pad,
			Sticky:     "always",
		},
	}}
	if err := SaveBundleFile(path, in); err != nil {
		t.Fatalf("SaveBundleFile: %v", err)
	}
	out, err := LoadBundleFile(path)
	if err != nil {
		t.Fatalf("LoadBundleFile: %v", err)
	}
	p, ok := out.Profiles["sidebar-popover"]
	if !ok {
		t.Fatalf("profile missing after round trip: %+v", out)
	}
	if p.Side != "right" || p.Sticky != "always" {
		t.Fatalf("profile fields lost: %+v", p)
	}
	if p.SideOffset == nil || *p.SideOffset != 12 {
		t.Fatalf("sideOffset lost: %+v", p)
	}
	o, err := p.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if o.Side != position.SideRight || o.SideOffset != 12 || o.Sticky != position.StickyAlways {
		t.Fatalf("resolved options mismatch: %+v", o)
	}
}

func TestLoadBundleFileMissingIsEmpty(t *testing.T) {
	b, err := LoadBundleFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing bundle should not error: %v", err)
	}
	if len(b.Profiles) != 0 {
		t.Fatalf("expected empty bundle, got %+v", b)
	}
}
