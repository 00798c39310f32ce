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

import "fmt"

// explanation builds the templated English sentence for one of the
// top-K candidates, quoting the current and pro-forma average pairwise
// correlation, the effective-N change, and any sector/class gap filled.
func explanation(candidateKey string, ctx *referenceContext, c candidateComputation) string {
	effectiveNBefore := safeEffectiveN(ctx.hhiR)
	effectiveNAfter := safeEffectiveN(c.hhiPro)

	sentence := fmt.Sprintf(
		"%s would change the reference portfolio's average pairwise correlation from %.3f to %.3f and effective N from %.2f to %.2f.",
		candidateKey, c.currentAvgCorr, c.proFormaAvgCorr, effectiveNBefore, effectiveNAfter,
	)
	if gap := sectorGapClause(c.signals.gap); gap != "" {
		sentence += " " + gap
	}
	return sentence
}

func safeEffectiveN(hhi float64) float64 {
	if hhi <= 0 {
		return 0
	}
	return 1.0 / hhi
}

func sectorGapClause(gap float64) string {
	switch gap {
	case 1.0:
		return "It also introduces an asset class not currently held in the reference portfolio."
	case 0.5:
		return "It also introduces a sector not currently held within its asset class in the reference portfolio."
	default:
		return ""
	}
}
