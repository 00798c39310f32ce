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

// Package risk is a pure, stateless library of portfolio risk
// primitives shared by the screener, optimizer, and drift analyzer:
// variance/vol, marginal/component/percent risk contributions,
// concentration measures, and wealth/drawdown/VaR series. Grounded on
// the computation style of portfolio/metrics.go in the teacher
// repository (stat.Mean/stat.Variance/stat.StdDev idioms), adapted
// from per-strategy backtest metrics to matrix-algebra portfolio risk.
package risk

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// PortfolioVariance computes w'Sigma*w.
func PortfolioVariance(w []float64, sigma *mat.SymDense) float64 {
	n := len(w)
	wVec := mat.NewVecDense(n, w)
	var sw mat.VecDense
	sw.MulVec(sigma, wVec)
	return mat.Dot(wVec, &sw)
}

// PortfolioVol is sqrt(PortfolioVariance(w, sigma)).
func PortfolioVol(w []float64, sigma *mat.SymDense) float64 {
	v := PortfolioVariance(w, sigma)
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}

// Decomposition holds the marginal, component, and percent contribution
// to risk for every asset in a portfolio (spec.md §4.4).
type Decomposition struct {
	MCR []float64
	CRC []float64
	PRC []float64
}

// RiskDecomposition computes MCR = (Sigma*w)/sigma_p, CRC = w ⊙ MCR,
// PRC = CRC/sigma_p. When sigma_p is at or below tol (a degenerate,
// effectively riskless portfolio), all three arrays are returned as
// zero rather than dividing by a near-zero volatility.
func RiskDecomposition(w []float64, sigma *mat.SymDense, sigmaP float64) Decomposition {
	n := len(w)
	mcr := make([]float64, n)
	crc := make([]float64, n)
	prc := make([]float64, n)

	const tol = 1e-12
	if sigmaP <= tol {
		return Decomposition{MCR: mcr, CRC: crc, PRC: prc}
	}

	wVec := mat.NewVecDense(n, w)
	var sw mat.VecDense
	sw.MulVec(sigma, wVec)

	for i := 0; i < n; i++ {
		mcr[i] = sw.AtVec(i) / sigmaP
		crc[i] = w[i] * mcr[i]
		prc[i] = crc[i] / sigmaP
	}
	return Decomposition{MCR: mcr, CRC: crc, PRC: prc}
}

// HHI is the Herfindahl-Hirschman concentration index Σwᵢ².
func HHI(w []float64) float64 {
	sum := 0.0
	for _, wi := range w {
		sum += wi * wi
	}
	return sum
}

// EffectiveN is 1/HHI(w). Returns +Inf when hhi is exactly zero (an
// all-zero weight vector), which callers should treat as undefined.
func EffectiveN(w []float64) float64 {
	h := HHI(w)
	if h == 0 {
		return math.Inf(1)
	}
	return 1.0 / h
}

// WealthIndex compounds a series of simple per-period returns starting
// from V0=1: Vt = Vt-1 * (1+rt).
func WealthIndex(simpleReturns []float64) []float64 {
	v := make([]float64, len(simpleReturns)+1)
	v[0] = 1.0
	for t, r := range simpleReturns {
		v[t+1] = v[t] * (1 + r)
	}
	return v
}

// Drawdown returns V/cummax(V) - 1 for every point in the wealth series.
func Drawdown(wealth []float64) []float64 {
	dd := make([]float64, len(wealth))
	if len(wealth) == 0 {
		return dd
	}
	runningMax := wealth[0]
	for t, v := range wealth {
		if v > runningMax {
			runningMax = v
		}
		dd[t] = v/runningMax - 1
	}
	return dd
}

// MaxDrawdown is the most negative value in a drawdown series.
func MaxDrawdown(drawdown []float64) float64 {
	if len(drawdown) == 0 {
		return 0
	}
	min := drawdown[0]
	for _, d := range drawdown[1:] {
		if d < min {
			min = d
		}
	}
	return min
}
