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

// Package optimization solves constrained mean-variance portfolio
// problems — minimum variance, a frontier point at a target return, a
// frontier series, and tangency (maximum Sharpe) — against a shared
// constraint bundle, returning either weights and a risk decomposition
// or a plain-language infeasibility diagnosis. Grounded on the
// penalty-augmented gonum/optimize technique in
// aristath-sentinel/trader/internal/modules/optimization/mv_optimizer.go,
// since gonum has no native SQP solver to mirror the distilled
// service's scipy.optimize.minimize(method="SLSQP") call directly.
package optimization

import (
	"github.com/penny-vault/portfolio-core/estimator"
	"github.com/penny-vault/portfolio-core/risk"
)

// RunType selects one of the four problem forms in spec.md §4.3.
type RunType string

const (
	MVP                RunType = "MVP"
	FrontierPoint      RunType = "FRONTIER_POINT"
	FrontierSeriesType RunType = "FRONTIER_SERIES"
	Tangency           RunType = "TANGENCY"
)

// Status is the terminal outcome of a run.
type Status string

const (
	StatusSuccess    Status = "SUCCESS"
	StatusInfeasible Status = "INFEASIBLE"
	StatusError      Status = "ERROR"
)

// runState names the current node of the NEW -> ... -> DONE state
// machine (spec.md §4.3); it travels only for logging/diagnostics, the
// control flow itself is ordinary sequential Go.
type runState string

const (
	stateNew         runState = "NEW"
	stateValidating  runState = "VALIDATING"
	statePrecheck    runState = "PRECHECK"
	stateSolving     runState = "SOLVING"
	stateCleaning    runState = "CLEANING"
	stateDecomposing runState = "DECOMPOSING"
	stateDone        runState = "DONE"
	stateInfeasible  runState = "INFEASIBLE"
	stateError       runState = "ERROR"
)

// AssetBound is a per-asset (min,max) weight override.
type AssetBound struct {
	Min float64
	Max float64
}

// Constraints bundles every optimization constraint named in spec.md
// §3's OptimizationConstraints entity. Pointer fields are optional;
// nil means "no cap"/"not supplied".
type Constraints struct {
	LongOnly bool

	// Uniform per-asset bound pair, used when PerAsset does not name an
	// asset. Both nil means (0,1) under LongOnly, (-1,1) otherwise.
	MinWeight *float64
	MaxWeight *float64

	// PerAsset overrides MinWeight/MaxWeight for named assets.
	PerAsset map[string]AssetBound

	LeverageCap      *float64 // L >= 1
	ConcentrationCap *float64 // c in (0,1]
	TurnoverCap      *float64 // T >= 0

	// PrevWeights, aligned to the assumption set's asset key order, is
	// the turnover reference. Nil drops the turnover constraint with a
	// warning rather than failing (spec.md §4.3).
	PrevWeights []float64
}

// LongOnlyUnconstrained is the degenerate constraint bundle with
// long-only off, no explicit MinWeight/MaxWeight and no caps; the
// uniform (-1,1) default bound still applies to every asset.
func LongOnlyUnconstrained() Constraints {
	return Constraints{LongOnly: false}
}

// Result is the spec's SolverResult + RiskDecomposition, merged into
// one record since every caller consumes them together.
type Result struct {
	Status    Status
	AssetKeys []string

	Weights      []float64 // populated only when Status == StatusSuccess
	ExpReturn    float64
	Variance     float64
	Vol          float64
	Sharpe       float64
	SharpeValid  bool
	HHI          float64
	EffectiveN   float64
	Risk         risk.Decomposition
	TargetReturn float64
	HasTarget    bool

	InfeasibilityReason string
	SolverMessage       string
	Warnings            []string

	SeriesID string
	State    string
}

// Input bundles everything Optimize needs for a single run.
type Input struct {
	Assumptions *estimator.AssumptionSet
	RunType     RunType
	Constraints Constraints

	// TargetReturn is the target R* for RunType == FrontierPoint. Since
	// it is a plain float64, HasTarget must be set to distinguish an
	// explicit 0% target from "not supplied" — Optimize rejects
	// FrontierPoint with HasTarget false rather than silently treating
	// the zero value as a real target.
	TargetReturn float64
	HasTarget    bool

	SeriesID string // carried through to Result.SeriesID, caller-supplied
}
