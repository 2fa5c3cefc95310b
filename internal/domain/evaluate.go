/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"fmt"

	"anchorkit/internal/position"
)

// Epsilon is the tolerance applied when comparing expected coordinates and
// max dimensions. Outputs are rounded to two decimals, so a hundredth
// absorbs representation noise without hiding real drift.
const Epsilon = 0.01

// Outcome is the result of evaluating one case: the placement the engine
// produced and every expectation it missed.
type Outcome struct {
	Result   position.Result
	Failures []string
}

// Pass reports whether the case met all of its expectations.
func (o Outcome) Pass() bool { return len(o.Failures) == 0 }

// Evaluate runs the placement engine on a case and checks the outcome
// against the case's expectations. It is pure: no I/O, no shared state.
// Cases without expectations always pass; an invalid case fails with the
// build error as its only failure.
func Evaluate(c Case) Outcome {
	req, err := BuildRequest(c)
	if err != nil {
		return Outcome{Failures: []string{err.Error()}}
	}
	res := position.Compute(req)
	if c.Pointer != nil {
		// pointer anchors are never reported detached
		res.ReferenceHidden = false
	}

	out := Outcome{Result: res}
	e := c.Expect
	if e == nil {
		return out
	}
	if e.Top != nil && !approx(res.Top, *e.Top) {
		out.Failures = append(out.Failures, fmt.Sprintf("top: got %.2f want %.2f", res.Top, *e.Top))
	}
	if e.Left != nil && !approx(res.Left, *e.Left) {
		out.Failures = append(out.Failures, fmt.Sprintf("left: got %.2f want %.2f", res.Left, *e.Left))
	}
	if e.Side != "" {
		if s, perr := position.ParseSide(e.Side); perr != nil {
			out.Failures = append(out.Failures, fmt.Sprintf("expect.side: %v", perr))
		} else if res.Side != s {
			out.Failures = append(out.Failures, fmt.Sprintf("side: got %s want %s", res.Side, s))
		}
	}
	if e.Align != "" {
		if a, perr := position.ParseAlign(e.Align); perr != nil {
			out.Failures = append(out.Failures, fmt.Sprintf("expect.align: %v", perr))
		} else if res.Align != a {
			out.Failures = append(out.Failures, fmt.Sprintf("align: got %s want %s", res.Align, a))
		}
	}
	if e.MaxWidth != nil {
		if !res.HasMaxWidth {
			out.Failures = append(out.Failures, "maxWidth: not produced")
		} else if !approx(res.MaxWidth, *e.MaxWidth) {
			out.Failures = append(out.Failures, fmt.Sprintf("maxWidth: got %.2f want %.2f", res.MaxWidth, *e.MaxWidth))
		}
	}
	if e.MaxHeight != nil {
		if !res.HasMaxHeight {
			out.Failures = append(out.Failures, "maxHeight: not produced")
		} else if !approx(res.MaxHeight, *e.MaxHeight) {
			out.Failures = append(out.Failures, fmt.Sprintf("maxHeight: got %.2f want %.2f", res.MaxHeight, *e.MaxHeight))
		}
	}
	if e.Hidden != nil && res.ReferenceHidden != *e.Hidden {
		out.Failures = append(out.Failures, fmt.Sprintf("hidden: got %v want %v", res.ReferenceHidden, *e.Hidden))
	}
	return out
}

func approx(got float32, want float64) bool {
	d := float64(got) - want
	return d <= Epsilon && d >= -Epsilon
}
