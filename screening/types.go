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

// Package screening ranks candidate assets by how much they would
// improve the diversification of a reference portfolio, combining four
// normalized signals into a deterministic composite score. Grounded on
// src/domain/services/screening.py from the original implementation,
// expressed with the teacher's gonum/mat and zerolog idioms.
package screening

import "github.com/penny-vault/portfolio-core/estimator"

// AssetMeta is the class/sector metadata a caller supplies per asset
// key for gap-score classification. Sector may be empty for
// non-equities; that is not an error.
type AssetMeta struct {
	Class  string
	Sector string
}

// SignalWeights are the lambda coefficients of the composite score.
// They must be non-negative and sum to 1; DefaultSignalWeights returns the spec's
// default allocation (0.40, 0.30, 0.15, 0.15).
type SignalWeights struct {
	AvgCorr float64
	MVR     float64
	Gap     float64
	HHIRed  float64
}

// DefaultSignalWeights returns the spec.md §4.2 default composite
// weighting.
func DefaultSignalWeights() SignalWeights {
	return SignalWeights{AvgCorr: 0.40, MVR: 0.30, Gap: 0.15, HHIRed: 0.15}
}

func (w SignalWeights) sum() float64 {
	return w.AvgCorr + w.MVR + w.Gap + w.HHIRed
}

// Input bundles everything a single screening run needs.
type Input struct {
	Assumptions      *estimator.AssumptionSet
	ReferenceWeights map[string]float64 // over reference asset keys, must sum to 1
	CandidateKeys    []string
	Delta            float64 // nominal add-weight, in (0,1)
	Weights          SignalWeights
	Metadata         map[string]AssetMeta
	TopK             int // default 10 when 0
}

// GapScoreThreshold is theta in spec.md §4.2: the minimum aggregate
// reference weight below which an asset class counts as "absent".
const GapScoreThreshold = 0.02

// rawSignals holds a candidate's four signals before normalization.
type rawSignals struct {
	avgCorr float64
	mvr     float64
	gap     float64
	hhiRed  float64
}

// ScoreRow is one candidate's ranked, explained composite score
// (spec.md's ScreeningScoreRow entity).
type ScoreRow struct {
	CandidateKey string

	AvgCorr float64
	MVR     float64
	Gap     float64
	HHIRed  float64

	AvgCorrNorm float64
	MVRNorm     float64
	GapNorm     float64
	HHIRedNorm  float64

	Composite   float64
	Rank        int
	Explanation string

	// DegenerateSignals names the normalized signals (by raw-signal key:
	// "avg_corr", "mvr", "hhi_red") whose range collapsed across the
	// candidate set for this run (max == min), in which case every
	// candidate received 0.5 for that signal instead of a min-max value
	// (spec.md §4.2). Identical across every row of a single Screen run.
	DegenerateSignals []string
}
