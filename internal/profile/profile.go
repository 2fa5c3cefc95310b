/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package profile provides named placement presets. A profile is the
// serializable form of floating.Options; the built-ins cover the common
// surface kinds and users can ship their own as a YAML bundle next to the
// config file.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"anchorkit/internal/config"
	"anchorkit/internal/floating"
	applog "anchorkit/internal/log"
	"anchorkit/internal/position"
	"log/slog"

	yaml "gopkg.in/yaml.v3"
)

// DefaultName is applied when no profile is configured.
const DefaultName = "dropdown"

// BundleFileName is the user bundle, stored next to config.yaml.
const BundleFileName = "profiles.yaml"

// Profile is one named preset in serializable form. Unset fields resolve
// to the controller defaults (bottom/center, side offset 4, padding 8,
// collision avoidance on, partial sticky). Pointer fields distinguish
// "unset" from an explicit zero.
type Profile struct {
	Side        string   `yaml:"side,omitempty"`
	Align       string   `yaml:"align,omitempty"`
	SideOffset  *float64 `yaml:"sideOffset,omitempty"`
	AlignOffset float64  `yaml:"alignOffset,omitempty"`
	Padding     *float64 `yaml:"padding,omitempty"`

	AvoidCollisions *bool  `yaml:"avoidCollisions,omitempty"`
	Sticky          string `yaml:"sticky,omitempty"`

	ConstrainSize bool    `yaml:"constrainSize,omitempty"`
	MinWidth      float64 `yaml:"minWidth,omitempty"`
	MinHeight     float64 `yaml:"minHeight,omitempty"`

	HideWhenDetached bool `yaml:"hideWhenDetached,omitempty"`
}

// Bundle is a set of user profiles serialized as one YAML file.
type Bundle struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Builtins returns the presets that ship with the toolkit.
func Builtins() map[string]Profile {
	minH96 := 96.0
	minH128 := 128.0
	off6 := 6.0
	return map[string]Profile{
		"dropdown": {
			Side:          "bottom",
			Align:         "start",
			ConstrainSize: true,
			MinHeight:     minH96,
		},
		"tooltip": {
			Side:             "top",
			Align:            "center",
			SideOffset:       &off6,
			HideWhenDetached: true,
		},
		"context-menu": {
			Side:          "bottom",
			Align:         "start",
			Sticky:        "always",
			ConstrainSize: true,
		},
		"select": {
			Side:          "bottom",
			Align:         "center",
			Sticky:        "always",
			ConstrainSize: true,
			MinHeight:     minH128,
		},
	}
}

// Options resolves the profile into controller options. Bad enum strings
// surface as errors so a broken user bundle is noticed, not silently
// misplaced.
func (p Profile) Options() (floating.Options, error) {
	var o floating.Options
	if p.Side != "" {
		s, err := position.ParseSide(p.Side)
		if err != nil {
			return o, err
		}
		o.Side = s
	}
	if p.Align != "" {
		a, err := position.ParseAlign(p.Align)
		if err != nil {
			return o, err
		}
		o.Align = a
	}
	if p.Sticky != "" {
		st, err := position.ParseSticky(p.Sticky)
		if err != nil {
			return o, err
		}
		o.Sticky = st
	}
	if p.SideOffset != nil {
		o.SideOffset = float32(*p.SideOffset)
	}
	o.AlignOffset = float32(p.AlignOffset)
	if p.Padding != nil {
		o.Padding = floating.PadAll(float32(*p.Padding))
	}
	if p.AvoidCollisions != nil {
		o.DisableCollisionAvoidance = !*p.AvoidCollisions
	}
	o.ConstrainSize = p.ConstrainSize
	o.MinWidth = float32(p.MinWidth)
	o.MinHeight = float32(p.MinHeight)
	o.HideWhenDetached = p.HideWhenDetached
	return o, nil
}

// BundlePath returns the per-user profile bundle path, in the same
// directory as the config file.
func BundlePath() (string, error) {
	cpath, err := config.ConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(cpath), BundleFileName), nil
}

// LoadBundle reads the user bundle. A missing file yields an empty bundle,
// not an error.
func LoadBundle() (Bundle, error) {
	path, err := BundlePath()
	if err != nil {
		return Bundle{}, err
	}
	return LoadBundleFile(path)
}

// LoadBundleFile reads a bundle from an explicit path.
func LoadBundleFile(path string) (Bundle, error) {
	var b Bundle
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Bundle{}, nil
		}
		return Bundle{}, fmt.Errorf("read bundle: %w", err)
	}
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Bundle{}, fmt.Errorf("parse bundle: %w", err)
	}
	return b, nil
}

// SaveBundle writes the user bundle to the default location.
func SaveBundle(b Bundle) error {
	path, err := BundlePath()
	if err != nil {
		return err
	}
	return SaveBundleFile(path, b)
}

// SaveBundleFile writes a bundle to an explicit path.
func SaveBundleFile(path string, b Bundle) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("bundle path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure bundle dir: %w", err)
	}
	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Lookup finds a profile by name: user bundle first, then built-ins.
func Lookup(name string) (Profile, bool) {
	name = strings.TrimSpace(name)
	if b, err := LoadBundle(); err == nil {
		if p, ok := b.Profiles[name]; ok {
			return p, true
		}
	}
	p, ok := Builtins()[name]
	return p, ok
}

// Resolve returns the controller options for a named profile. Unknown names
// and broken profiles fall back to the zero defaults with a warning.
func Resolve(name string) floating.Options {
	l := applog.WithComponent("profile")
	p, ok := Lookup(name)
	if !ok {
		l.Warn("unknown profile, using defaults", slog.String("name", name))
		return floating.Options{}
	}
	o, err := p.Options()
	if err != nil {
		l.Warn("invalid profile, using defaults", slog.String("name", name), slog.Any("err", err))
		return floating.Options{}
	}
	return o
}

// Names lists the available profile names, built-ins and user profiles
// combined, sorted for stable menus.
func Names() []string {
	seen := map[string]bool{}
	for n := range Builtins() {
		seen[n] = true
	}
	if b, err := LoadBundle(); err == nil {
		for n := range b.Profiles {
			seen[n] = true
		}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
