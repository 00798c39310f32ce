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
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/penny-vault/portfolio-core/estimator"
)

const penaltyWeight = 1000.0

// acceptableStatus reports whether a gonum/optimize termination status
// represents a usable (if not textbook-perfect) solution, following the
// status whitelist in mv_optimizer.go.
func acceptableStatus(s optimize.Status) bool {
	switch s {
	case optimize.Success, optimize.GradientThreshold, optimize.FunctionConvergence, optimize.StepConvergence:
		return true
	default:
		return false
	}
}

// sign returns the subgradient of |x| at x, using 0 at the kink.
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// constrainedObjective builds the penalty-augmented objective/gradient
// pair shared by every run type. base supplies the unconstrained
// objective and its gradient (variance, or negative Sharpe); the
// returned closures add sum-to-1, optional target-return, bounds,
// leverage, concentration, and turnover penalties on top.
func constrainedObjective(
	n int,
	baseFunc func(w []float64) float64,
	baseGrad func(w, grad []float64),
	lo, hi []float64,
	targetReturn float64,
	hasTarget bool,
	mu []float64,
	c Constraints,
) optimize.Problem {
	return optimize.Problem{
		Func: func(w []float64) float64 {
			total := baseFunc(w)

			sum := 0.0
			for _, wi := range w {
				sum += wi
			}
			total += penaltyWeight * (sum - 1) * (sum - 1)

			if hasTarget {
				wMu := 0.0
				for i, wi := range w {
					wMu += wi * mu[i]
				}
				d := wMu - targetReturn
				total += penaltyWeight * d * d
			}

			for i := 0; i < n; i++ {
				if w[i] < lo[i] {
					d := lo[i] - w[i]
					total += penaltyWeight * d * d
				} else if w[i] > hi[i] {
					d := w[i] - hi[i]
					total += penaltyWeight * d * d
				}
			}

			if c.LeverageCap != nil {
				lev := 0.0
				for _, wi := range w {
					lev += math.Abs(wi)
				}
				if v := lev - *c.LeverageCap; v > 0 {
					total += penaltyWeight * v * v
				}
			}
			if c.ConcentrationCap != nil {
				for _, wi := range w {
					if v := math.Abs(wi) - *c.ConcentrationCap; v > 0 {
						total += penaltyWeight * v * v
					}
				}
			}
			if c.TurnoverCap != nil && c.PrevWeights != nil {
				turnover := 0.0
				for i, wi := range w {
					turnover += math.Abs(wi - c.PrevWeights[i])
				}
				if v := turnover - *c.TurnoverCap; v > 0 {
					total += penaltyWeight * v * v
				}
			}

			return total
		},
		Grad: func(grad, w []float64) {
			baseGrad(w, grad)

			sum := 0.0
			for _, wi := range w {
				sum += wi
			}
			for i := range grad {
				grad[i] += 2 * penaltyWeight * (sum - 1)
			}

			if hasTarget {
				wMu := 0.0
				for i, wi := range w {
					wMu += wi * mu[i]
				}
				d := wMu - targetReturn
				for i := range grad {
					grad[i] += 2 * penaltyWeight * d * mu[i]
				}
			}

			for i := 0; i < n; i++ {
				if w[i] < lo[i] {
					d := lo[i] - w[i]
					grad[i] += -2 * penaltyWeight * d
				} else if w[i] > hi[i] {
					d := w[i] - hi[i]
					grad[i] += 2 * penaltyWeight * d
				}
			}

			if c.LeverageCap != nil {
				lev := 0.0
				for _, wi := range w {
					lev += math.Abs(wi)
				}
				if v := lev - *c.LeverageCap; v > 0 {
					for i, wi := range w {
						grad[i] += 2 * penaltyWeight * v * sign(wi)
					}
				}
			}
			if c.ConcentrationCap != nil {
				for i, wi := range w {
					if v := math.Abs(wi) - *c.ConcentrationCap; v > 0 {
						grad[i] += 2 * penaltyWeight * v * sign(wi)
					}
				}
			}
			if c.TurnoverCap != nil && c.PrevWeights != nil {
				turnover := 0.0
				for i, wi := range w {
					turnover += math.Abs(wi - c.PrevWeights[i])
				}
				if v := turnover - *c.TurnoverCap; v > 0 {
					for i, wi := range w {
						grad[i] += 2 * penaltyWeight * v * sign(wi-c.PrevWeights[i])
					}
				}
			}
		},
	}
}

func varianceObjective(sigma *mat.SymDense) (func([]float64) float64, func(w, grad []float64)) {
	n := sigma.SymmetricDim()
	f := func(w []float64) float64 {
		wVec := mat.NewVecDense(n, w)
		var sw mat.VecDense
		sw.MulVec(sigma, wVec)
		return mat.Dot(wVec, &sw)
	}
	g := func(w, grad []float64) {
		wVec := mat.NewVecDense(n, w)
		var sw mat.VecDense
		sw.MulVec(sigma, wVec)
		for i := 0; i < n; i++ {
			grad[i] = 2 * sw.AtVec(i)
		}
	}
	return f, g
}

func negSharpeObjective(mu []float64, sigma *mat.SymDense, rf float64) (func([]float64) float64, func(w, grad []float64)) {
	n := sigma.SymmetricDim()
	const varFloor = 1e-12

	excessReturn := func(w []float64) float64 {
		r := 0.0
		for i, wi := range w {
			r += wi * mu[i]
		}
		return r - rf
	}
	variance := func(w []float64) float64 {
		wVec := mat.NewVecDense(n, w)
		var sw mat.VecDense
		sw.MulVec(sigma, wVec)
		v := mat.Dot(wVec, &sw)
		if v < varFloor {
			v = varFloor
		}
		return v
	}

	f := func(w []float64) float64 {
		excess := excessReturn(w)
		vol := math.Sqrt(variance(w))
		return -excess / vol
	}
	g := func(w, grad []float64) {
		excess := excessReturn(w)
		v := variance(w)
		vol := math.Sqrt(v)

		wVec := mat.NewVecDense(n, w)
		var sw mat.VecDense
		sw.MulVec(sigma, wVec)

		// d/dw [-(excess)/vol] = -mu/vol + excess*(Sigma w)/vol^3
		for i := 0; i < n; i++ {
			grad[i] = -mu[i]/vol + excess*sw.AtVec(i)/(v*vol)
		}
	}
	return f, g
}

// startingPoints returns the deterministic restart set described in
// spec.md §4.3: 1/n uniform, mu-weighted, and inverse-variance-weighted.
func startingPoints(a *estimator.AssumptionSet) [][]float64 {
	n := a.N()
	uniform := make([]float64, n)
	for i := range uniform {
		uniform[i] = 1.0 / float64(n)
	}

	minMu := a.Mu[0]
	for _, m := range a.Mu[1:] {
		if m < minMu {
			minMu = m
		}
	}
	muShifted := make([]float64, n)
	muSum := 0.0
	for i, m := range a.Mu {
		muShifted[i] = m - minMu + 1e-6
		muSum += muShifted[i]
	}
	muWeighted := make([]float64, n)
	for i := range muWeighted {
		muWeighted[i] = muShifted[i] / muSum
	}

	invVar := make([]float64, n)
	invVarSum := 0.0
	for i := 0; i < n; i++ {
		v := a.Sigma.At(i, i)
		if v <= 0 {
			v = 1e-9
		}
		invVar[i] = 1.0 / v
		invVarSum += invVar[i]
	}
	invVarWeighted := make([]float64, n)
	for i := range invVarWeighted {
		invVarWeighted[i] = invVar[i] / invVarSum
	}

	return [][]float64{uniform, muWeighted, invVarWeighted}
}

// runSolve tries BFGS first, falling back to Nelder-Mead when BFGS
// fails to reach an acceptable status, mirroring mv_optimizer.go's
// solver fallback chain.
func runSolve(problem optimize.Problem, initial []float64) (w []float64, message string, ok bool) {
	// Zero-value Settings, matching the teacher's own
	// mv_optimizer.go calls: gonum's default convergence criteria
	// (1e-6 gradient threshold, no iteration cap) are adequate for the
	// problem sizes this core targets.
	settings := &optimize.Settings{}

	result, err := optimize.Minimize(problem, initial, settings, &optimize.BFGS{})
	if err == nil && result != nil && acceptableStatus(result.Status) {
		return result.X, result.Status.String(), true
	}

	result, err = optimize.Minimize(problem, initial, settings, &optimize.NelderMead{})
	if err == nil && result != nil && acceptableStatus(result.Status) {
		return result.X, result.Status.String(), true
	}
	msg := "solver did not converge"
	if err != nil {
		msg = err.Error()
	} else if result != nil {
		msg = result.Status.String()
	}
	return nil, msg, false
}
