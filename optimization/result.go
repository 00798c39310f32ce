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
	"github.com/penny-vault/portfolio-core/estimator"
	"github.com/penny-vault/portfolio-core/risk"
)

const sharpeVolFloor = 1e-12

// sharpeRatio returns (mu_p - rf)/sigma_p and whether it is defined
// (sigma_p above the floor).
func sharpeRatio(a *estimator.AssumptionSet, w []float64) (float64, bool) {
	muP := 0.0
	for i, wi := range w {
		muP += wi * a.Mu[i]
	}
	sigmaP := risk.PortfolioVol(w, a.Sigma)
	if sigmaP <= sharpeVolFloor {
		return 0, false
	}
	return (muP - a.RiskFree) / sigmaP, true
}

// buildResult computes every derived statistic in spec.md's
// SolverResult/RiskDecomposition from the final cleaned weight vector.
func buildResult(a *estimator.AssumptionSet, w []float64, targetReturn float64, hasTarget bool, solverMsg string, warnings []string) *Result {
	muP := 0.0
	for i, wi := range w {
		muP += wi * a.Mu[i]
	}
	variance := risk.PortfolioVariance(w, a.Sigma)
	sigmaP := risk.PortfolioVol(w, a.Sigma)
	hhi := risk.HHI(w)
	effN := risk.EffectiveN(w)
	decomposition := risk.RiskDecomposition(w, a.Sigma, sigmaP)

	sharpe, sharpeValid := sharpeRatio(a, w)

	return &Result{
		Status:       StatusSuccess,
		AssetKeys:    a.AssetKeys,
		Weights:      w,
		ExpReturn:    muP,
		Variance:     variance,
		Vol:          sigmaP,
		Sharpe:       sharpe,
		SharpeValid:  sharpeValid,
		HHI:          hhi,
		EffectiveN:   effN,
		Risk:         decomposition,
		TargetReturn: targetReturn,
		HasTarget:    hasTarget,

		SolverMessage: solverMsg,
		Warnings:      warnings,
	}
}
