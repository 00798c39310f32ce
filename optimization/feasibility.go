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

import (
	"fmt"

	"github.com/penny-vault/portfolio-core/estimator"
)

// checkFeasibility runs the spec.md §4.3 precheck diagnostics before
// the solver is ever invoked. It returns a non-empty reason when the
// run is infeasible on its face; the wording intentionally matches the
// distilled service's messages verbatim since those strings are
// contractual (spec.md §8 seed scenarios assert on substrings of them).
func checkFeasibility(a *estimator.AssumptionSet, runType RunType, targetReturn float64, hasTarget bool, lo, hi []float64, longOnly bool) string {
	switch runType {
	case Tangency:
		maxMu := a.Mu[0]
		for _, m := range a.Mu[1:] {
			if m > maxMu {
				maxMu = m
			}
		}
		if maxMu <= a.RiskFree {
			return "No asset has expected return exceeding the risk-free rate; tangency portfolio undefined."
		}

	case FrontierPoint:
		if !hasTarget {
			return ""
		}
		maxMu, minMu := a.Mu[0], a.Mu[0]
		for _, m := range a.Mu[1:] {
			if m > maxMu {
				maxMu = m
			}
			if m < minMu {
				minMu = m
			}
		}
		if longOnly && targetReturn > maxMu {
			return fmt.Sprintf(
				"Target return of %.2f%% exceeds the maximum achievable return of %.2f%% under long-only constraints.",
				targetReturn*100, maxMu*100,
			)
		}
		if targetReturn < minMu {
			return fmt.Sprintf(
				"Target return of %.2f%% is below the minimum achievable return of %.2f%% under the supplied constraints.",
				targetReturn*100, minMu*100,
			)
		}
	}

	totalMin, totalMax := 0.0, 0.0
	for i := range lo {
		totalMin += lo[i]
		totalMax += hi[i]
	}
	if totalMin > 1.0+1e-9 {
		return fmt.Sprintf(
			"Sum of minimum asset bounds (%.4f) exceeds 1.0; full investment constraint cannot be satisfied.",
			totalMin,
		)
	}
	if totalMax < 1.0-1e-9 {
		return fmt.Sprintf(
			"Sum of maximum asset bounds (%.4f) is below 1.0; full investment constraint cannot be satisfied.",
			totalMax,
		)
	}

	return ""
}
