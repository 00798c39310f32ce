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

package risk

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

func sortedCopy(x []float64) []float64 {
	out := append([]float64(nil), x...)
	sort.Float64s(out)
	return out
}

// HistoricalVaR returns -quantile(r, alpha): the loss magnitude such
// that a fraction alpha of historical returns fell below -VaR.
func HistoricalVaR(returns []float64, alpha float64) float64 {
	sorted := sortedCopy(returns)
	q := stat.Quantile(alpha, stat.Empirical, sorted, nil)
	return -q
}

// CVaR returns -mean(r | r <= quantile(r, alpha)): the expected loss in
// the tail beyond the VaR threshold.
func CVaR(returns []float64, alpha float64) float64 {
	sorted := sortedCopy(returns)
	q := stat.Quantile(alpha, stat.Empirical, sorted, nil)

	var tail []float64
	for _, r := range sorted {
		if r <= q {
			tail = append(tail, r)
		}
	}
	if len(tail) == 0 {
		return -q
	}
	return -stat.Mean(tail, nil)
}
