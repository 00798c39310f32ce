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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// estimateMu dispatches to the requested per-period mean estimator and
// returns a length-n vector of per-period (not yet annualized) means.
func estimateMu(data *mat.Dense, method MuMethod, params MuParams) ([]float64, error) {
	m, n := data.Dims()
	col := make([]float64, m)
	mu := make([]float64, n)

	switch method {
	case Historical, "":
		for j := 0; j < n; j++ {
			mat.Col(col, j, data)
			mu[j] = stat.Mean(col, nil)
		}
	case EWMA:
		halfLife := params.EWMAHalfLife
		if halfLife <= 0 {
			halfLife = float64(m) / 2.0
		}
		weights := ewmaWeights(m, halfLife)
		for j := 0; j < n; j++ {
			mat.Col(col, j, data)
			mu[j] = stat.Mean(col, weights)
		}
	case Shrinkage:
		alpha := params.ShrinkageAlpha
		if alpha == 0 {
			alpha = 0.1
		}
		historical := make([]float64, n)
		grandSum := 0.0
		for j := 0; j < n; j++ {
			mat.Col(col, j, data)
			historical[j] = stat.Mean(col, nil)
			grandSum += historical[j]
		}
		grandMean := grandSum / float64(n)
		for j := 0; j < n; j++ {
			mu[j] = (1-alpha)*historical[j] + alpha*grandMean
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEstimator, method)
	}
	return mu, nil
}

// ewmaWeights builds the (1/2)^((m-1-t)/h) weight series used by the
// EWMA mean, normalized to sum to 1 so stat.Mean's weighted form
// reduces to the usual exponential moving average with the most recent
// observation (index m-1) carrying the largest weight.
func ewmaWeights(m int, halfLife float64) []float64 {
	w := make([]float64, m)
	sum := 0.0
	for t := 0; t < m; t++ {
		w[t] = math.Pow(0.5, float64(m-1-t)/halfLife)
		sum += w[t]
	}
	for t := range w {
		w[t] /= sum
	}
	return w
}
