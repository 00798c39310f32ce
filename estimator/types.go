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

package estimator

import (
	"time"

	"gonum.org/v1/gonum/mat"
)

// Frequency is the sampling cadence of a ReturnPanel's observations.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// AnnualizationFactor returns the m used to scale per-period μ/Σ to
// annual terms, or 0 and false if f is not one of the known cadences.
func (f Frequency) AnnualizationFactor() (int, bool) {
	switch f {
	case Daily:
		return 252, true
	case Weekly:
		return 52, true
	case Monthly:
		return 12, true
	default:
		return 0, false
	}
}

// ReturnKind distinguishes simple from log returns. Estimation itself is
// agnostic to which kind was supplied; the tag travels through to the
// AssumptionSet for downstream callers that care (e.g. the drift
// analyzer always recompounds with simple returns regardless of this
// tag, per its own contract).
type ReturnKind string

const (
	Simple ReturnKind = "simple"
	Log    ReturnKind = "log"
)

// MuMethod selects the expected-return estimator.
type MuMethod string

const (
	Historical MuMethod = "historical"
	EWMA       MuMethod = "ewma"
	Shrinkage  MuMethod = "shrinkage"
)

// CovMethod selects the covariance estimator.
type CovMethod string

const (
	Sample     CovMethod = "sample"
	LedoitWolf CovMethod = "ledoit_wolf"
)

// ReturnPanel is a caller-aligned matrix of per-period returns: m
// observation dates by n assets. The core never aligns or fills gaps;
// callers hand it a panel with no missing cells.
type ReturnPanel struct {
	AssetKeys []string
	Dates     []time.Time
	Data      *mat.Dense // m x n
	Frequency Frequency
	Kind      ReturnKind
}

func (p *ReturnPanel) numObs() int {
	if p.Data == nil {
		return 0
	}
	r, _ := p.Data.Dims()
	return r
}

func (p *ReturnPanel) numAssets() int {
	if p.Data == nil {
		return 0
	}
	_, c := p.Data.Dims()
	return c
}

// MuParams carries the tunable knobs for the non-default μ estimators.
// Zero values select the spec defaults (half-life = m/2 periods for
// EWMA, α = 0.1 for shrinkage).
type MuParams struct {
	EWMAHalfLife float64
	ShrinkageAlpha float64
}

// AssumptionSet is the Estimator's sole output: an immutable, annualized
// bundle of expected returns, covariance, correlation, and the metadata
// needed to reproduce or audit the estimation.
type AssumptionSet struct {
	AssetKeys           []string
	Mu                  []float64     // annualized, length n
	Sigma               *mat.SymDense // annualized, n x n
	Vol                 []float64     // sqrt(diag(Sigma)), length n
	Corr                *mat.SymDense // n x n, diag exactly 1
	AnnualizationFactor int
	RiskFree            float64
	MuMethod            MuMethod
	CovMethod           CovMethod
	PSDRepairApplied    bool
	PSDRepairNote       string
}

// N returns the number of assets in the assumption set.
func (a *AssumptionSet) N() int {
	return len(a.AssetKeys)
}
