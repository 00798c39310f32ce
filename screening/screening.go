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
	"fmt"
	"math"
	"sort"
)

const defaultTopK = 10
const unitTolerance = 1e-6

// Screen ranks candidateKeys against the reference portfolio described
// by input, producing one ScoreRow per candidate with raw signals,
// normalized signals, composite score, dense rank, and (for the top-K)
// an explanation. Running Screen twice on identical inputs yields
// byte-identical output (spec.md §5).
func Screen(input Input) ([]ScoreRow, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	ctx, err := buildReferenceContext(input.Assumptions, input.ReferenceWeights)
	if err != nil {
		return nil, err
	}

	keyIndex := make(map[string]int, input.Assumptions.N())
	for i, k := range input.Assumptions.AssetKeys {
		keyIndex[k] = i
	}

	candidates := append([]string(nil), input.CandidateKeys...)
	computations := make([]candidateComputation, len(candidates))
	for i, key := range candidates {
		idx, ok := keyIndex[key]
		if !ok {
			return nil, errUnknownKey(key)
		}
		computations[i] = computeRawSignals(input.Assumptions, ctx, key, idx, input.Delta, input.Metadata)
	}

	avgCorrRaw := make([]float64, len(candidates))
	mvrRaw := make([]float64, len(candidates))
	gapRaw := make([]float64, len(candidates))
	hhiRedRaw := make([]float64, len(candidates))
	for i, c := range computations {
		avgCorrRaw[i] = c.signals.avgCorr
		mvrRaw[i] = c.signals.mvr
		gapRaw[i] = c.signals.gap
		hhiRedRaw[i] = c.signals.hhiRed
	}

	avgCorrNorm := minMaxNormalize(avgCorrRaw, true)
	mvrNorm := minMaxNormalize(mvrRaw, false)
	hhiRedNorm := minMaxNormalize(hhiRedRaw, false)
	// GapScore is already in [0,1]; no normalization is applied.

	var degenerateSignals []string
	if avgCorrNorm.wasDegenerate {
		degenerateSignals = append(degenerateSignals, "avg_corr")
	}
	if mvrNorm.wasDegenerate {
		degenerateSignals = append(degenerateSignals, "mvr")
	}
	if hhiRedNorm.wasDegenerate {
		degenerateSignals = append(degenerateSignals, "hhi_red")
	}

	weights := input.Weights
	if weights.sum() == 0 {
		weights = DefaultSignalWeights()
	}

	rows := make([]ScoreRow, len(candidates))
	for i, key := range candidates {
		composite := weights.AvgCorr*avgCorrNorm.values[i] +
			weights.MVR*mvrNorm.values[i] +
			weights.Gap*gapRaw[i] +
			weights.HHIRed*hhiRedNorm.values[i]

		rows[i] = ScoreRow{
			CandidateKey:      key,
			AvgCorr:           avgCorrRaw[i],
			MVR:               mvrRaw[i],
			Gap:               gapRaw[i],
			HHIRed:            hhiRedRaw[i],
			AvgCorrNorm:       avgCorrNorm.values[i],
			MVRNorm:           mvrNorm.values[i],
			GapNorm:           gapRaw[i],
			HHIRedNorm:        hhiRedNorm.values[i],
			Composite:         composite,
			DegenerateSignals: degenerateSignals,
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Composite != rows[j].Composite {
			return rows[i].Composite > rows[j].Composite
		}
		return rows[i].CandidateKey < rows[j].CandidateKey
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	topK := input.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	// Re-key computations by candidate key so the post-sort explanation
	// pass can look each one up.
	compByKey := make(map[string]candidateComputation, len(candidates))
	for i, key := range candidates {
		compByKey[key] = computations[i]
	}
	for i := range rows {
		if i >= topK {
			break
		}
		rows[i].Explanation = explanation(rows[i].CandidateKey, ctx, compByKey[rows[i].CandidateKey])
	}

	return rows, nil
}

func validateInput(input Input) error {
	if input.Assumptions == nil {
		return fmt.Errorf("%w: assumption set is nil", ErrUnknownAssetKey)
	}
	if len(input.CandidateKeys) == 0 {
		return ErrNoCandidates
	}
	if len(input.ReferenceWeights) == 0 {
		return ErrNoReferenceWeights
	}
	refSum := 0.0
	for _, w := range input.ReferenceWeights {
		refSum += w
	}
	if math.Abs(refSum-1.0) > unitTolerance {
		return fmt.Errorf("%w: sum=%.6f", ErrReferenceNotUnit, refSum)
	}
	if input.Delta <= 0 || input.Delta >= 1 {
		return fmt.Errorf("%w: delta=%.6f", ErrDeltaOutOfRange, input.Delta)
	}
	if w := input.Weights; w.sum() != 0 {
		if w.AvgCorr < 0 || w.MVR < 0 || w.Gap < 0 || w.HHIRed < 0 {
			return ErrNegativeSignalWeight
		}
		if math.Abs(w.sum()-1.0) > unitTolerance {
			return fmt.Errorf("%w: sum=%.6f", ErrSignalWeightsNotUnit, w.sum())
		}
	}
	return nil
}
