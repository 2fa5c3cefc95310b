/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"testing"
)

func TestEnvOverridesProfile(t *testing.T) {
	old := os.Getenv(EnvProfile)
	_ = os.Setenv(EnvProfile, "tooltip")
	t.Cleanup(func() { _ = os.Setenv(EnvProfile, old) })
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got, want := cfg.Position.Profile, "tooltip"; got != want {
		t.Fatalf("Position.Profile = %q, want %q", got, want)
	}
	if name, ok := EnvOverrideFor("position.profile"); !ok || name != EnvProfile {
		t.Fatalf("EnvOverrideFor mismatch: %q %v", name, ok)
	}
}

func TestEnvOverridesTelemetry(t *testing.T) {
	old := os.Getenv(EnvTelemetryOptIn)
	_ = os.Setenv(EnvTelemetryOptIn, "true")
	t.Cleanup(func() { _ = os.Setenv(EnvTelemetryOptIn, old) })
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.General.TelemetryOptIn {
		t.Fatalf("General.TelemetryOptIn expected true from env override")
	}
}

func TestEnvOverridesTrace(t *testing.T) {
	oldEnabled := os.Getenv(EnvTraceEnabled)
	oldKeep := os.Getenv(EnvTraceKeepTicks)
	_ = os.Setenv(EnvTraceEnabled, "yes")
	_ = os.Setenv(EnvTraceKeepTicks, "250")
	t.Cleanup(func() {
		_ = os.Setenv(EnvTraceEnabled, oldEnabled)
		_ = os.Setenv(EnvTraceKeepTicks, oldKeep)
	})
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Trace.Enabled || cfg.Trace.KeepTicks != 250 {
		t.Fatalf("trace overrides not applied: %#v", cfg.Trace)
	}
}

func TestMergeIncludesPosition(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Position.Profile = "context-menu"
	src.Position.SnapThreshold = 10
	src.Position.ShowGuides = false
	mergeInto(&dst, &src)
	if dst.Position.Profile != "context-menu" || dst.Position.SnapThreshold != 10 || dst.Position.ShowGuides {
		t.Fatalf("position fields not merged correctly: %#v", dst.Position)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "C:/tmp/ak.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "C:/tmp/ak.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	oldLevel := os.Getenv(EnvLogLevel)
	oldFmt := os.Getenv(EnvLogFormat)
	oldSrc := os.Getenv(EnvLogSource)
	oldFile := os.Getenv(EnvLogFile)
	_ = os.Setenv(EnvLogLevel, "error")
	_ = os.Setenv(EnvLogFormat, "json")
	_ = os.Setenv(EnvLogSource, "1")
	_ = os.Setenv(EnvLogFile, "X:/ak.log")
	t.Cleanup(func() {
		_ = os.Setenv(EnvLogLevel, oldLevel)
		_ = os.Setenv(EnvLogFormat, oldFmt)
		_ = os.Setenv(EnvLogSource, oldSrc)
		_ = os.Setenv(EnvLogFile, oldFile)
	})
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "X:/ak.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}

func TestEffectiveKeepTicks(t *testing.T) {
	if got := (TraceConfig{KeepTicks: -5}).EffectiveKeepTicks(); got != Defaults().Trace.KeepTicks {
		t.Fatalf("expected default for negative cap, got %d", got)
	}
	if got := (TraceConfig{KeepTicks: 42}).EffectiveKeepTicks(); got != 42 {
		t.Fatalf("expected explicit cap kept, got %d", got)
	}
}
