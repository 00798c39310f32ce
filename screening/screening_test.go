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

package screening_test

import (
	"gonum.org/v1/gonum/mat"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/portfolio-core/estimator"
	"github.com/penny-vault/portfolio-core/screening"
)

// buildAssumptions constructs an AssumptionSet directly from a
// correlation matrix and a common per-asset volatility, bypassing the
// Estimator (these tests exercise screening in isolation).
func buildAssumptions(keys []string, vol float64, corrEntries map[[2]int]float64) *estimator.AssumptionSet {
	n := len(keys)
	corr := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		corr.SetSym(i, i, 1.0)
	}
	for pair, v := range corrEntries {
		corr.SetSym(pair[0], pair[1], v)
	}

	vols := make([]float64, n)
	sigma := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		vols[i] = vol
		for j := i; j < n; j++ {
			sigma.SetSym(i, j, vol*vol*corr.At(i, j))
		}
	}

	return &estimator.AssumptionSet{
		AssetKeys: keys,
		Mu:        make([]float64, n),
		Sigma:     sigma,
		Vol:       vols,
		Corr:      corr,
	}
}

var _ = Describe("Screen", func() {
	Context("seed scenario 5: reference {A,B}, candidates {C,D}", func() {
		It("ranks the uncorrelated candidate D first with AvgCorrNorm 1.0 and C at 0.0", func() {
			keys := []string{"A", "B", "C", "D"}
			// A=0 B=1 C=2 D=3
			corrEntries := map[[2]int]float64{
				{0, 1}: 0.30,
				{0, 2}: 0.90,
				{1, 2}: 0.85,
				{0, 3}: 0.00,
				{1, 3}: 0.00,
				{2, 3}: 0.10,
			}
			assumptions := buildAssumptions(keys, 0.20, corrEntries)

			input := screening.Input{
				Assumptions:      assumptions,
				ReferenceWeights: map[string]float64{"A": 0.5, "B": 0.5},
				CandidateKeys:    []string{"C", "D"},
				Delta:            0.05,
				Weights:          screening.DefaultSignalWeights(),
			}

			rows, err := screening.Screen(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))

			byKey := map[string]screening.ScoreRow{}
			for _, r := range rows {
				byKey[r.CandidateKey] = r
			}

			Expect(byKey["D"].AvgCorrNorm).To(BeNumerically("~", 1.0, 1e-9))
			Expect(byKey["C"].AvgCorrNorm).To(BeNumerically("~", 0.0, 1e-9))
			Expect(byKey["D"].Rank).To(Equal(1))
		})
	})

	Context("determinism", func() {
		It("produces byte-identical composite scores across repeated runs", func() {
			keys := []string{"A", "B", "C", "D"}
			corrEntries := map[[2]int]float64{
				{0, 1}: 0.20, {0, 2}: 0.60, {1, 2}: 0.40,
				{0, 3}: 0.10, {1, 3}: 0.50, {2, 3}: 0.30,
			}
			assumptions := buildAssumptions(keys, 0.15, corrEntries)
			input := screening.Input{
				Assumptions:      assumptions,
				ReferenceWeights: map[string]float64{"A": 0.6, "B": 0.4},
				CandidateKeys:    []string{"C", "D"},
				Delta:            0.1,
				Weights:          screening.DefaultSignalWeights(),
			}

			first, err := screening.Screen(input)
			Expect(err).NotTo(HaveOccurred())
			second, err := screening.Screen(input)
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(Equal(second))
		})
	})

	Context("degenerate signal range", func() {
		It("assigns 0.5 to every candidate when the signal range collapses", func() {
			keys := []string{"A", "B", "C", "D"}
			// C and D are symmetric with respect to the reference so
			// AvgCorr is identical for both, collapsing its range.
			corrEntries := map[[2]int]float64{
				{0, 1}: 0.20, {0, 2}: 0.50, {1, 2}: 0.50,
				{0, 3}: 0.50, {1, 3}: 0.50, {2, 3}: 0.30,
			}
			assumptions := buildAssumptions(keys, 0.15, corrEntries)
			input := screening.Input{
				Assumptions:      assumptions,
				ReferenceWeights: map[string]float64{"A": 0.5, "B": 0.5},
				CandidateKeys:    []string{"C", "D"},
				Delta:            0.1,
				Weights:          screening.DefaultSignalWeights(),
			}

			rows, err := screening.Screen(input)
			Expect(err).NotTo(HaveOccurred())
			for _, r := range rows {
				Expect(r.AvgCorrNorm).To(BeNumerically("~", 0.5, 1e-12))
				Expect(r.DegenerateSignals).To(ContainElement("avg_corr"))
			}
		})
	})
})
