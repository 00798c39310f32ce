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

package optimization

import "fmt"

// resolveBounds builds per-column (lo,hi) arrays from the constraint
// bundle: a uniform default resolved from LongOnly/MinWeight/MaxWeight,
// overridden per asset by Constraints.PerAsset (spec.md §9 "Identifier
// resolution"). Asset keys in PerAsset that are not in assetKeys are a
// warning, not an error; keys named by PerAsset but absent from
// assetKeys have no column to resolve to, so they are reported as
// warnings and skipped rather than failing the whole run.
func resolveBounds(assetKeys []string, c Constraints) (lo, hi []float64, warnings []string, err error) {
	n := len(assetKeys)
	lo = make([]float64, n)
	hi = make([]float64, n)

	defaultLo, defaultHi := 0.0, 1.0
	if !c.LongOnly {
		defaultLo, defaultHi = -1.0, 1.0
	}
	if c.MinWeight != nil {
		defaultLo = *c.MinWeight
	}
	if c.MaxWeight != nil {
		defaultHi = *c.MaxWeight
	}
	if defaultLo > defaultHi {
		return nil, nil, nil, fmt.Errorf("%w: uniform bound %.6f > %.6f", ErrIncoherentBounds, defaultLo, defaultHi)
	}
	for i := 0; i < n; i++ {
		lo[i] = defaultLo
		hi[i] = defaultHi
	}

	index := make(map[string]int, n)
	for i, k := range assetKeys {
		index[k] = i
	}

	for key, bound := range c.PerAsset {
		if bound.Min > bound.Max {
			return nil, nil, nil, fmt.Errorf("%w: %s has min %.6f > max %.6f", ErrIncoherentBounds, key, bound.Min, bound.Max)
		}
		idx, ok := index[key]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("per-asset bound for unknown key %q ignored", key))
			continue
		}
		lo[idx] = bound.Min
		hi[idx] = bound.Max
	}

	return lo, hi, warnings, nil
}

// projectToBounds clips w into [lo,hi] elementwise, mirroring the
// projection helper in the teacher's mv_optimizer.go.
func projectToBounds(w, lo, hi []float64) []float64 {
	out := make([]float64, len(w))
	for i, v := range w {
		if v < lo[i] {
			v = lo[i]
		} else if v > hi[i] {
			v = hi[i]
		}
		out[i] = v
	}
	return out
}

// renormalize rescales w so it sums to 1, leaving it untouched when the
// sum is exactly zero — callers should not call this on an all-zero
// vector.
func renormalize(w []float64) []float64 {
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	if sum == 0 {
		return w
	}
	out := make([]float64, len(w))
	for i, v := range w {
		out[i] = v / sum
	}
	return out
}
