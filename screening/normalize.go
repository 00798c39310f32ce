// Copyright 2021-2025
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package screening

// normalizeResult carries the normalized values plus whether the
// signal's range across the candidate set was degenerate (max == min).
type normalizeResult struct {
	values        []float64
	wasDegenerate bool
}

// minMaxNormalize performs standard min-max normalization over values,
// or inverted min-max when invert is true (so the candidate with the
// smallest raw value gets 1.0 instead of 0.0). When the range across
// the set is degenerate (max == min), every candidate receives 0.5 and
// wasDegenerate is reported true so the caller can record the event —
// spec.md §4.2 diverges here from the distilled service's 0.0 fallback,
// and spec.md governs.
func minMaxNormalize(values []float64, invert bool) normalizeResult {
	if len(values) == 0 {
		return normalizeResult{}
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	out := make([]float64, len(values))
	if max == min {
		for i := range out {
			out[i] = 0.5
		}
		return normalizeResult{values: out, wasDegenerate: true}
	}

	for i, v := range values {
		n := (v - min) / (max - min)
		if invert {
			n = 1 - n
		}
		out[i] = n
	}
	return normalizeResult{values: out, wasDegenerate: false}
}
