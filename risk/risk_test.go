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

package risk_test

import (
	"gonum.org/v1/gonum/mat"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/portfolio-core/risk"
)

var _ = Describe("PortfolioVariance and PortfolioVol", func() {
	It("matches the two-asset MVP closed form (seed scenario 2)", func() {
		sigma := mat.NewSymDense(2, []float64{0.04, 0, 0, 0.09})
		w := []float64{9.0 / 13.0, 4.0 / 13.0}
		variance := risk.PortfolioVariance(w, sigma)
		Expect(variance).To(BeNumerically("~", (81*0.04+16*0.09)/169, 1e-10))
	})
})

var _ = Describe("RiskDecomposition", func() {
	It("satisfies sum(CRC)=sigma_p and sum(PRC)=1 within 1e-8", func() {
		sigma := mat.NewSymDense(3, []float64{
			0.04, 0.01, 0.00,
			0.01, 0.09, 0.02,
			0.00, 0.02, 0.06,
		})
		w := []float64{0.5, 0.3, 0.2}
		sigmaP := risk.PortfolioVol(w, sigma)

		d := risk.RiskDecomposition(w, sigma, sigmaP)
		sumCRC := 0.0
		sumPRC := 0.0
		for i := range d.CRC {
			sumCRC += d.CRC[i]
			sumPRC += d.PRC[i]
		}
		Expect(sumCRC).To(BeNumerically("~", sigmaP, 1e-8))
		Expect(sumPRC).To(BeNumerically("~", 1.0, 1e-8))
	})

	It("returns all zeros for a degenerate (near-zero-vol) portfolio", func() {
		sigma := mat.NewSymDense(2, []float64{0, 0, 0, 0})
		w := []float64{0.5, 0.5}
		d := risk.RiskDecomposition(w, sigma, 0)
		Expect(d.MCR).To(Equal([]float64{0, 0}))
		Expect(d.CRC).To(Equal([]float64{0, 0}))
		Expect(d.PRC).To(Equal([]float64{0, 0}))
	})
})

var _ = Describe("HHI and EffectiveN", func() {
	It("is 1/n for equal weights", func() {
		w := []float64{0.25, 0.25, 0.25, 0.25}
		Expect(risk.HHI(w)).To(BeNumerically("~", 0.25, 1e-12))
		Expect(risk.EffectiveN(w)).To(BeNumerically("~", 4.0, 1e-12))
	})
})

var _ = Describe("WealthIndex and Drawdown", func() {
	It("keeps drawdown non-positive, with max_drawdown the minimum", func() {
		returns := []float64{0.05, -0.10, 0.02, -0.20, 0.15}
		wealth := risk.WealthIndex(returns)
		Expect(wealth).To(HaveLen(len(returns) + 1))
		Expect(wealth[0]).To(BeNumerically("~", 1.0, 1e-12))

		dd := risk.Drawdown(wealth)
		for _, d := range dd {
			Expect(d).To(BeNumerically("<=", 0))
		}
		maxDD := risk.MaxDrawdown(dd)
		min := dd[0]
		for _, d := range dd[1:] {
			if d < min {
				min = d
			}
		}
		Expect(maxDD).To(BeNumerically("~", min, 1e-12))
	})
})

var _ = Describe("HistoricalVaR and CVaR", func() {
	It("reports a CVaR loss magnitude at least as large as VaR at the same alpha", func() {
		returns := []float64{-0.08, -0.05, -0.03, -0.01, 0.0, 0.01, 0.02, 0.04, 0.06, 0.10}
		v := risk.HistoricalVaR(returns, 0.05)
		c := risk.CVaR(returns, 0.05)
		Expect(c).To(BeNumerically(">=", v))
	})
})
