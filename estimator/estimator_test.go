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

package estimator_test

import (
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/portfolio-core/estimator"
)

func datesFrom(n int) []time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[i] = base.AddDate(0, 0, i)
	}
	return out
}

var _ = Describe("Estimate", func() {
	Context("two-asset daily panel (seed scenario 1)", func() {
		It("produces finite mu, symmetric PSD Sigma, and no repair", func() {
			data := mat.NewDense(3, 2, []float64{
				0.01, -0.005,
				-0.02, 0.01,
				0.015, 0.02,
			})
			panel := &estimator.ReturnPanel{
				AssetKeys: []string{"A", "B"},
				Dates:     datesFrom(3),
				Data:      data,
				Frequency: estimator.Daily,
				Kind:      estimator.Simple,
			}

			out, err := estimator.Estimate(panel, 0.02, estimator.Historical, estimator.Sample, estimator.MuParams{})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Mu).To(HaveLen(2))
			for _, m := range out.Mu {
				Expect(math.IsNaN(m)).To(BeFalse())
				Expect(math.IsInf(m, 0)).To(BeFalse())
			}
			Expect(out.Sigma.At(0, 1)).To(BeNumerically("~", out.Sigma.At(1, 0), 1e-12))
			Expect(out.PSDRepairApplied).To(BeFalse())
			Expect(out.Corr.At(0, 0)).To(BeNumerically("~", 1.0, 1e-12))
			Expect(out.Corr.At(1, 1)).To(BeNumerically("~", 1.0, 1e-12))
		})
	})

	Context("validation", func() {
		It("rejects a panel with fewer than 2 observations", func() {
			data := mat.NewDense(1, 2, []float64{0.01, 0.02})
			panel := &estimator.ReturnPanel{
				AssetKeys: []string{"A", "B"},
				Dates:     datesFrom(1),
				Data:      data,
				Frequency: estimator.Daily,
				Kind:      estimator.Simple,
			}
			_, err := estimator.Estimate(panel, 0, estimator.Historical, estimator.Sample, estimator.MuParams{})
			Expect(err).To(MatchError(estimator.ErrTooFewObservations))
		})

		It("rejects a panel with fewer than 2 assets", func() {
			data := mat.NewDense(3, 1, []float64{0.01, 0.02, -0.01})
			panel := &estimator.ReturnPanel{
				AssetKeys: []string{"A"},
				Dates:     datesFrom(3),
				Data:      data,
				Frequency: estimator.Daily,
				Kind:      estimator.Simple,
			}
			_, err := estimator.Estimate(panel, 0, estimator.Historical, estimator.Sample, estimator.MuParams{})
			Expect(err).To(MatchError(estimator.ErrTooFewAssets))
		})

		It("rejects non-finite observations", func() {
			data := mat.NewDense(3, 2, []float64{
				0.01, math.NaN(),
				-0.02, 0.01,
				0.015, 0.02,
			})
			panel := &estimator.ReturnPanel{
				AssetKeys: []string{"A", "B"},
				Dates:     datesFrom(3),
				Data:      data,
				Frequency: estimator.Daily,
				Kind:      estimator.Simple,
			}
			_, err := estimator.Estimate(panel, 0, estimator.Historical, estimator.Sample, estimator.MuParams{})
			Expect(err).To(MatchError(estimator.ErrNonFiniteInput))
		})

		It("rejects non-ascending dates", func() {
			data := mat.NewDense(3, 2, []float64{
				0.01, -0.005,
				-0.02, 0.01,
				0.015, 0.02,
			})
			dates := datesFrom(3)
			dates[2] = dates[0]
			panel := &estimator.ReturnPanel{
				AssetKeys: []string{"A", "B"},
				Dates:     dates,
				Data:      data,
				Frequency: estimator.Daily,
				Kind:      estimator.Simple,
			}
			_, err := estimator.Estimate(panel, 0, estimator.Historical, estimator.Sample, estimator.MuParams{})
			Expect(err).To(MatchError(estimator.ErrDatesNotAscending))
		})

		It("rejects a zero-variance asset as DEGENERATE_ASSET", func() {
			data := mat.NewDense(4, 2, []float64{
				0.01, 0.0,
				-0.02, 0.0,
				0.015, 0.0,
				0.005, 0.0,
			})
			panel := &estimator.ReturnPanel{
				AssetKeys: []string{"A", "FLAT"},
				Dates:     datesFrom(4),
				Data:      data,
				Frequency: estimator.Daily,
				Kind:      estimator.Simple,
			}
			_, err := estimator.Estimate(panel, 0, estimator.Historical, estimator.Sample, estimator.MuParams{})
			Expect(err).To(MatchError(estimator.ErrDegenerateAsset))
			Expect(err.Error()).To(ContainSubstring("FLAT"))
		})
	})

	Context("round-trip identity", func() {
		It("reconstructs Sigma from sigma outer-product and rho within 1e-12", func() {
			data := mat.NewDense(6, 3, []float64{
				0.010, -0.004, 0.003,
				-0.020, 0.010, 0.012,
				0.015, 0.020, -0.006,
				0.002, -0.008, 0.011,
				-0.011, 0.006, 0.004,
				0.009, 0.001, -0.002,
			})
			panel := &estimator.ReturnPanel{
				AssetKeys: []string{"A", "B", "C"},
				Dates:     datesFrom(6),
				Data:      data,
				Frequency: estimator.Daily,
				Kind:      estimator.Simple,
			}
			out, err := estimator.Estimate(panel, 0.0, estimator.Historical, estimator.Sample, estimator.MuParams{})
			Expect(err).NotTo(HaveOccurred())

			n := out.N()
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					reconstructed := out.Vol[i] * out.Vol[j] * out.Corr.At(i, j)
					Expect(reconstructed).To(BeNumerically("~", out.Sigma.At(i, j), 1e-12))
				}
			}
		})
	})

	Context("mu estimators", func() {
		makePanel := func() *estimator.ReturnPanel {
			data := mat.NewDense(4, 2, []float64{
				0.01, 0.02,
				0.02, -0.01,
				-0.01, 0.03,
				0.03, 0.00,
			})
			return &estimator.ReturnPanel{
				AssetKeys: []string{"A", "B"},
				Dates:     datesFrom(4),
				Data:      data,
				Frequency: estimator.Monthly,
				Kind:      estimator.Simple,
			}
		}

		It("shrinkage blends historical mean toward the grand mean", func() {
			panel := makePanel()
			hist, err := estimator.Estimate(panel, 0, estimator.Historical, estimator.Sample, estimator.MuParams{})
			Expect(err).NotTo(HaveOccurred())

			shrunk, err := estimator.Estimate(panel, 0, estimator.Shrinkage, estimator.Sample, estimator.MuParams{ShrinkageAlpha: 1.0})
			Expect(err).NotTo(HaveOccurred())

			grandMean := (hist.Mu[0] + hist.Mu[1]) / 2
			Expect(shrunk.Mu[0]).To(BeNumerically("~", grandMean, 1e-9))
			Expect(shrunk.Mu[1]).To(BeNumerically("~", grandMean, 1e-9))
		})
	})
})
