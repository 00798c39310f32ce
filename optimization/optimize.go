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

	"gonum.org/v1/gonum/optimize"

	"github.com/penny-vault/portfolio-core/estimator"
)

// Optimize is the optimizer's single entry point (spec.md §6
// `optimize`), walking the NEW -> VALIDATING -> PRECHECK -> SOLVING ->
// CLEANING -> DECOMPOSING -> DONE state machine. Invalid input (nil
// assumptions, a FRONTIER_SERIES run type, a missing target, incoherent
// bounds, mismatched prev_weights) returns a nil Result and an error;
// every other run returns a terminal Result (SUCCESS, INFEASIBLE or
// ERROR).
func Optimize(input Input) (*Result, error) {
	state := stateNew
	a := input.Assumptions
	if a == nil {
		return nil, ErrNilAssumptions
	}

	state = stateValidating
	if input.RunType == FrontierSeriesType {
		return nil, fmt.Errorf("%w: FRONTIER_SERIES must be driven through FrontierSeries()", ErrUnknownRunType)
	}
	if input.RunType == FrontierPoint && !input.HasTarget {
		return nil, ErrMissingTargetReturn
	}
	hasTarget := input.RunType == FrontierPoint && input.HasTarget

	lo, hi, warnings, err := resolveBounds(a.AssetKeys, input.Constraints)
	if err != nil {
		return nil, err
	}
	if input.Constraints.PrevWeights != nil && len(input.Constraints.PrevWeights) != a.N() {
		return nil, ErrPrevWeightsLength
	}

	constraints := input.Constraints
	if constraints.TurnoverCap != nil && constraints.PrevWeights == nil {
		warnings = append(warnings, "turnover cap supplied without prev_weights; turnover constraint dropped")
		constraints = withoutTurnover(constraints)
	}

	state = statePrecheck
	if reason := checkFeasibility(a, input.RunType, input.TargetReturn, hasTarget, lo, hi, input.Constraints.LongOnly); reason != "" {
		return &Result{
			Status:              StatusInfeasible,
			AssetKeys:           a.AssetKeys,
			InfeasibilityReason: reason,
			Warnings:            warnings,
			SeriesID:            input.SeriesID,
			State:               string(stateInfeasible),
		}, nil
	}

	state = stateSolving
	w, solverMsg, ok := solveByRunType(a, input.RunType, input.TargetReturn, hasTarget, lo, hi, constraints)
	if !ok {
		return &Result{
			Status:        StatusError,
			AssetKeys:     a.AssetKeys,
			SolverMessage: solverMsg,
			Warnings:      warnings,
			SeriesID:      input.SeriesID,
			State:         string(stateError),
		}, nil
	}
	w = projectToBounds(w, lo, hi)

	state = stateCleaning
	cleaned := cleanWeights(w)

	if v, found := worstViolation(cleaned, lo, hi, a.Mu, input.TargetReturn, hasTarget, constraints); found {
		return &Result{
			Status:              StatusInfeasible,
			AssetKeys:           a.AssetKeys,
			InfeasibilityReason: heuristicInfeasibilityReason(v),
			SolverMessage:       solverMsg,
			Warnings:            warnings,
			SeriesID:            input.SeriesID,
			State:               string(stateInfeasible),
		}, nil
	}

	state = stateDecomposing
	result := buildResult(a, cleaned, input.TargetReturn, hasTarget, solverMsg, warnings)
	result.SeriesID = input.SeriesID

	state = stateDone
	result.State = string(state)
	return result, nil
}

func withoutTurnover(c Constraints) Constraints {
	c.TurnoverCap = nil
	return c
}

// solveByRunType picks the objective for runType and runs the solver
// from the appropriate deterministic starting point(s).
func solveByRunType(a *estimator.AssumptionSet, runType RunType, targetReturn float64, hasTarget bool, lo, hi []float64, c Constraints) (w []float64, message string, ok bool) {
	n := a.N()

	switch runType {
	case MVP, FrontierPoint:
		base, baseGrad := varianceObjective(a.Sigma)
		problem := constrainedObjective(n, base, baseGrad, lo, hi, targetReturn, hasTarget, a.Mu, c)
		starts := startingPoints(a)
		return runSolve(problem, starts[0])
	case Tangency:
		base, baseGrad := negSharpeObjective(a.Mu, a.Sigma, a.RiskFree)
		problem := constrainedObjective(n, base, baseGrad, lo, hi, 0, false, a.Mu, c)
		return bestOfRestarts(problem, startingPoints(a), a, lo, hi)
	default:
		return nil, fmt.Sprintf("%v: %q", ErrUnknownRunType, runType), false
	}
}

// bestOfRestarts runs problem from every deterministic starting point
// and keeps the highest-Sharpe feasible result, following spec.md
// §4.3's three-restart discipline for the non-convex max-Sharpe
// problem.
func bestOfRestarts(problem optimize.Problem, starts [][]float64, a *estimator.AssumptionSet, lo, hi []float64) ([]float64, string, bool) {
	var best []float64
	var bestSharpe float64
	found := false
	var lastMessage string

	for _, start := range starts {
		w, message, ok := runSolve(problem, start)
		if !ok {
			lastMessage = message
			continue
		}
		w = projectToBounds(w, lo, hi)
		cleaned := cleanWeights(w)

		sharpe, valid := sharpeRatio(a, cleaned)
		if !valid {
			continue
		}
		if !found || sharpe > bestSharpe {
			best = cleaned
			bestSharpe = sharpe
			found = true
		}
	}

	if !found {
		if lastMessage == "" {
			lastMessage = "no restart produced a feasible tangency solution"
		}
		return nil, lastMessage, false
	}
	return best, "", true
}
