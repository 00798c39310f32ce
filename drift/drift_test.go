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

package drift_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/portfolio-core/drift"
)

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
var t1 = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

func buildPanel(pricesAtT0, pricesAtT1 map[string]float64) *drift.PricePanel {
	byAsset := make(map[string]map[time.Time]float64)
	for k, p := range pricesAtT0 {
		if byAsset[k] == nil {
			byAsset[k] = make(map[time.Time]float64)
		}
		byAsset[k][t0] = p
	}
	for k, p := range pricesAtT1 {
		if byAsset[k] == nil {
			byAsset[k] = make(map[time.Time]float64)
		}
		byAsset[k][t1] = p
	}
	return drift.NewPricePanel(byAsset)
}

var _ = Describe("CheckDrift", func() {
	target := map[string]float64{"A": 0.5, "B": 0.5}

	Context("seed scenario 6, no breach", func() {
		It("computes implied weights (0.545, 0.455) with no breach", func() {
			panel := buildPanel(map[string]float64{"A": 100, "B": 100}, map[string]float64{"A": 120, "B": 100})
			report, err := drift.CheckDrift(target, panel, t0, t1, 0.05)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.AnyBreach).To(BeFalse())

			byKey := map[string]drift.Position{}
			for _, p := range report.Positions {
				byKey[p.AssetKey] = p
			}
			Expect(byKey["A"].Current).To(BeNumerically("~", 0.5454545, 1e-6))
			Expect(byKey["B"].Current).To(BeNumerically("~", 0.4545455, 1e-6))
			Expect(byKey["A"].DriftAbs).To(BeNumerically("~", 0.0454545, 1e-6))
		})
	})

	Context("seed scenario 6, breach", func() {
		It("computes implied weights (0.6, 0.4) with a breach and +10.0 pp explanation", func() {
			panel := buildPanel(map[string]float64{"A": 100, "B": 100}, map[string]float64{"A": 150, "B": 100})
			report, err := drift.CheckDrift(target, panel, t0, t1, 0.05)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.AnyBreach).To(BeTrue())

			byKey := map[string]drift.Position{}
			for _, p := range report.Positions {
				byKey[p.AssetKey] = p
			}
			Expect(byKey["A"].Current).To(BeNumerically("~", 0.6, 1e-9))
			Expect(byKey["B"].Current).To(BeNumerically("~", 0.4, 1e-9))
			Expect(byKey["A"].Breached).To(BeTrue())
			Expect(byKey["A"].Explanation).To(ContainSubstring("+10.0 pp"))
		})
	})

	Context("conservation", func() {
		It("implied current weights sum to 1 within 1e-10", func() {
			panel := buildPanel(map[string]float64{"A": 100, "B": 100}, map[string]float64{"A": 133, "B": 87})
			report, err := drift.CheckDrift(target, panel, t0, t1, 0.05)
			Expect(err).NotTo(HaveOccurred())
			sum := 0.0
			for _, p := range report.Positions {
				sum += p.Current
				Expect(p.DriftAbs).To(BeNumerically(">=", 0))
			}
			Expect(sum).To(BeNumerically("~", 1.0, 1e-10))
		})
	})

	Context("failure modes", func() {
		It("errors when a price is missing at t0", func() {
			panel := buildPanel(map[string]float64{"A": 100}, map[string]float64{"A": 120, "B": 100})
			_, err := drift.CheckDrift(target, panel, t0, t1, 0.05)
			Expect(err).To(MatchError(drift.ErrMissingPrice))
		})

		It("errors on a non-positive price", func() {
			panel := buildPanel(map[string]float64{"A": 100, "B": 0}, map[string]float64{"A": 120, "B": 100})
			_, err := drift.CheckDrift(target, panel, t0, t1, 0.05)
			Expect(err).To(MatchError(drift.ErrNonPositivePrice))
		})
	})
})
