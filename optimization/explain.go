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
	"math"
)

// violation names one constraint and how far w breaches it.
type violation struct {
	name   string
	amount float64
}

// worstViolation inspects the cleaned weight vector against every
// declared constraint and returns the single most-violated one, for
// the heuristic post-solve infeasibility explanation named in
// spec.md §4.3. Returns ok=false when nothing exceeds tolerance.
func worstViolation(w, lo, hi []float64, mu []float64, targetReturn float64, hasTarget bool, c Constraints) (violation, bool) {
	const tol = 1e-6
	var worst violation
	found := false

	consider := func(v violation) {
		if v.amount > tol && (!found || v.amount > worst.amount) {
			worst = v
			found = true
		}
	}

	sum := 0.0
	for _, wi := range w {
		sum += wi
	}
	consider(violation{name: "full-investment (sum of weights = 1)", amount: math.Abs(sum - 1)})

	for i := range w {
		if w[i] < lo[i] {
			consider(violation{name: fmt.Sprintf("lower bound on asset index %d", i), amount: lo[i] - w[i]})
		}
		if w[i] > hi[i] {
			consider(violation{name: fmt.Sprintf("upper bound on asset index %d", i), amount: w[i] - hi[i]})
		}
	}

	if hasTarget {
		wMu := 0.0
		for i, wi := range w {
			wMu += wi * mu[i]
		}
		consider(violation{name: "target return", amount: math.Abs(wMu - targetReturn)})
	}

	if c.LeverageCap != nil {
		lev := 0.0
		for _, wi := range w {
			lev += math.Abs(wi)
		}
		consider(violation{name: "leverage cap", amount: lev - *c.LeverageCap})
	}
	if c.ConcentrationCap != nil {
		for i, wi := range w {
			consider(violation{name: fmt.Sprintf("concentration cap on asset index %d", i), amount: math.Abs(wi) - *c.ConcentrationCap})
		}
	}
	if c.TurnoverCap != nil && c.PrevWeights != nil {
		turnover := 0.0
		for i, wi := range w {
			turnover += math.Abs(wi - c.PrevWeights[i])
		}
		consider(violation{name: "turnover cap", amount: turnover - *c.TurnoverCap})
	}

	return worst, found
}

func heuristicInfeasibilityReason(v violation) string {
	return fmt.Sprintf("solver produced a result violating the %s constraint by %.6g, beyond tolerance.", v.name, v.amount)
}
