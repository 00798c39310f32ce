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

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/penny-vault/portfolio-core/estimator"
	"github.com/penny-vault/portfolio-core/risk"
)

// referenceContext is everything derived once from the reference
// portfolio and reused across every candidate's signal computation.
type referenceContext struct {
	keys    []string // reference asset keys, sorted for determinism
	weights []float64
	indices []int // column index into the assumption set, aligned with keys
	sigmaR  float64
	hhiR    float64
}

func buildReferenceContext(a *estimator.AssumptionSet, refWeights map[string]float64) (*referenceContext, error) {
	keyIndex := make(map[string]int, a.N())
	for i, k := range a.AssetKeys {
		keyIndex[k] = i
	}

	keys := make([]string, 0, len(refWeights))
	for k := range refWeights {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	weights := make([]float64, len(keys))
	indices := make([]int, len(keys))
	for i, k := range keys {
		idx, ok := keyIndex[k]
		if !ok {
			return nil, errUnknownKey(k)
		}
		indices[i] = idx
		weights[i] = refWeights[k]
	}

	sigmaRR := submatrix(a.Sigma, indices, indices)
	sigmaR := risk.PortfolioVol(weights, sigmaRR)
	hhiR := risk.HHI(weights)

	return &referenceContext{keys: keys, weights: weights, indices: indices, sigmaR: sigmaR, hhiR: hhiR}, nil
}

func errUnknownKey(k string) error {
	return &unknownKeyError{key: k}
}

type unknownKeyError struct{ key string }

func (e *unknownKeyError) Error() string {
	return "screening: " + ErrUnknownAssetKey.Error() + ": " + e.key
}

func (e *unknownKeyError) Unwrap() error { return ErrUnknownAssetKey }

// submatrix extracts sigma[rows, cols] into a fresh n x n symmetric
// matrix built from the upper triangle. Every caller passes the same
// index list for rows and cols; the result is always a SymDense.
func submatrix(sigma *mat.SymDense, rows, cols []int) *mat.SymDense {
	n := len(rows)
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, sigma.At(rows[i], cols[j]))
		}
	}
	return out
}

// candidateComputation is the full intermediate state for one
// candidate: the four raw signals plus the extra figures the
// explanation template (explain.go) quotes.
type candidateComputation struct {
	signals          rawSignals
	hhiPro           float64
	currentAvgCorr   float64 // mean pairwise correlation within the reference set alone
	proFormaAvgCorr  float64 // mean pairwise correlation of reference+candidate
}

// computeRawSignals derives the four raw signals for one candidate
// against a pre-built reference context.
func computeRawSignals(a *estimator.AssumptionSet, ctx *referenceContext, candidateKey string, candidateIdx int, delta float64, meta map[string]AssetMeta) candidateComputation {
	avgCorr := avgCorrelation(a, ctx, candidateIdx)

	augIndices := append(append([]int(nil), ctx.indices...), candidateIdx)
	proWeights := make([]float64, len(ctx.weights)+1)
	for i, w := range ctx.weights {
		proWeights[i] = (1 - delta) * w
	}
	proWeights[len(proWeights)-1] = delta

	sigmaAug := submatrix(a.Sigma, augIndices, augIndices)
	sigmaPro := risk.PortfolioVol(proWeights, sigmaAug)
	mvr := ctx.sigmaR - sigmaPro

	hhiPro := risk.HHI(proWeights)
	hhiRed := ctx.hhiR - hhiPro

	gap := gapScore(ctx, candidateKey, meta)

	return candidateComputation{
		signals:         rawSignals{avgCorr: avgCorr, mvr: mvr, gap: gap, hhiRed: hhiRed},
		hhiPro:          hhiPro,
		currentAvgCorr:  avgPairwiseCorrelation(a, ctx.indices),
		proFormaAvgCorr: avgPairwiseCorrelation(a, augIndices),
	}
}

// avgPairwiseCorrelation is the mean off-diagonal correlation among a
// set of assets, used only for the explanation template's narrative
// numbers (not one of the four ranking signals).
func avgPairwiseCorrelation(a *estimator.AssumptionSet, indices []int) float64 {
	n := len(indices)
	if n < 2 {
		return 0
	}
	sum := 0.0
	count := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += a.Corr.At(indices[i], indices[j])
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func avgCorrelation(a *estimator.AssumptionSet, ctx *referenceContext, candidateIdx int) float64 {
	if len(ctx.indices) == 0 {
		return 0
	}
	sum := 0.0
	for _, refIdx := range ctx.indices {
		sum += a.Corr.At(candidateIdx, refIdx)
	}
	return sum / float64(len(ctx.indices))
}

func gapScore(ctx *referenceContext, candidateKey string, meta map[string]AssetMeta) float64 {
	candidateMeta := meta[candidateKey]

	classAggregate := 0.0
	sectorPresent := false
	for i, k := range ctx.keys {
		m := meta[k]
		if m.Class == candidateMeta.Class {
			classAggregate += ctx.weights[i]
			if candidateMeta.Sector != "" && m.Sector == candidateMeta.Sector {
				sectorPresent = true
			}
		}
	}

	if classAggregate < GapScoreThreshold {
		return 1.0
	}
	if !sectorPresent {
		return 0.5
	}
	return 0.0
}
