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

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// estimateSigma dispatches to the requested per-period covariance
// estimator and returns a symmetric n x n matrix, not yet annualized.
func estimateSigma(data *mat.Dense, method CovMethod) (*mat.SymDense, error) {
	switch method {
	case Sample, "":
		return sampleCovariance(data), nil
	case LedoitWolf:
		return ledoitWolfCovariance(data), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCovMethod, method)
	}
}

// sampleCovariance computes the m-1 denominator sample covariance
// column-by-column via stat.Covariance, mirroring the teacher's
// portfolio/metrics.go use of the gonum/stat covariance primitives.
func sampleCovariance(data *mat.Dense) *mat.SymDense {
	m, n := data.Dims()
	colI := make([]float64, m)
	colJ := make([]float64, m)
	sigma := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		mat.Col(colI, i, data)
		for j := i; j < n; j++ {
			mat.Col(colJ, j, data)
			sigma.SetSym(i, j, stat.Covariance(colI, colJ, nil))
		}
	}
	return sigma
}

// ledoitWolfCovariance shrinks the sample covariance toward a scaled
// identity target F = (trace(S)/n)*I using the analytic shrinkage
// intensity of Ledoit & Wolf (2004). Grounded on the simplified,
// single-target analytic shrinkage used by
// aristath-sentinel/trader/internal/modules/optimization/risk.go's
// applyLedoitWolfShrinkage, adapted here to the identity target the
// spec calls for rather than that file's constant-correlation target.
func ledoitWolfCovariance(data *mat.Dense) *mat.SymDense {
	m, n := data.Dims()
	s := sampleCovariance(data)

	trace := 0.0
	for i := 0; i < n; i++ {
		trace += s.At(i, i)
	}
	mu := trace / float64(n)

	// delta2 = ||S - F||_F^2
	delta2 := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			target := 0.0
			if i == j {
				target = mu
			}
			d := s.At(i, j) - target
			delta2 += d * d
		}
	}

	// demean columns to build per-observation outer products x_t x_t'
	means := make([]float64, n)
	col := make([]float64, m)
	for j := 0; j < n; j++ {
		mat.Col(col, j, data)
		means[j] = stat.Mean(col, nil)
	}

	betaBar2 := 0.0
	row := make([]float64, n)
	for t := 0; t < m; t++ {
		for j := 0; j < n; j++ {
			row[j] = data.At(t, j) - means[j]
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				outer := row[i] * row[j]
				d := outer - s.At(i, j)
				betaBar2 += d * d
			}
		}
	}
	betaBar2 /= float64(m) * float64(m)

	beta2 := betaBar2
	if beta2 > delta2 {
		beta2 = delta2
	}
	alpha2 := delta2 - beta2

	shrunk := mat.NewSymDense(n, nil)
	if delta2 <= 0 {
		// Sample covariance already equals the target; no shrinkage needed.
		return s
	}
	shrinkage := beta2 / delta2
	keep := alpha2 / delta2
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			target := 0.0
			if i == j {
				target = mu
			}
			shrunk.SetSym(i, j, shrinkage*target+keep*s.At(i, j))
		}
	}
	return shrunk
}
