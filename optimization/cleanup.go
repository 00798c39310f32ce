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

import "math"

const cleanTolerance = 1e-6

// cleanWeights implements spec.md §4.3's post-solve clean_weights: zero
// out anything below tolerance in magnitude, then renormalize to sum to
// 1.
func cleanWeights(w []float64) []float64 {
	cleaned := make([]float64, len(w))
	for i, v := range w {
		if math.Abs(v) < cleanTolerance {
			cleaned[i] = 0
		} else {
			cleaned[i] = v
		}
	}
	return renormalize(cleaned)
}
