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
)

const psdEpsilon = 1e-10

// symmetrize returns (Sigma + Sigma') / 2 as a fresh symmetric matrix,
// step 1 of the validation pipeline (spec.md §4.1).
func symmetrize(sigma *mat.SymDense) *mat.SymDense {
	n := sigma.SymmetricDim()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, sigma.At(i, j))
		}
	}
	return out
}

// minEigenvalue eigendecomposes sigma and returns its smallest
// eigenvalue along with the full eigendecomposition for reuse by the
// repair step.
func minEigenvalue(sigma *mat.SymDense) (min float64, eig *mat.EigenSym, ok bool) {
	var es mat.EigenSym
	ok = es.Factorize(sigma, true)
	if !ok {
		return 0, nil, false
	}
	values := es.Values(nil)
	min = values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min, &es, true
}

// frobeniusNorm computes the Frobenius norm of a symmetric matrix,
// used to scale the PSD eigenvalue tolerance per spec.md §4.1 step 2.
func frobeniusNorm(sigma *mat.SymDense) float64 {
	n := sigma.SymmetricDim()
	sum := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := sigma.At(i, j)
			sum += v * v
		}
	}
	return math.Sqrt(sum)
}

// repairPSD clips negative eigenvalues of sigma to zero and
// reconstructs Sigma' = Q diag(max(lambda,0)) Q', re-symmetrized, and
// returns the repaired matrix. The original minimum eigenvalue for the
// AssumptionSet note is reported by validateAndRepairPSD.
func repairPSD(sigma *mat.SymDense, eig *mat.EigenSym) *mat.SymDense {
	n := sigma.SymmetricDim()
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	clipped := make([]float64, n)
	for i, v := range values {
		if v < 0 {
			clipped[i] = 0
		} else {
			clipped[i] = v
		}
	}

	// Sigma' = Q * diag(clipped) * Q'
	var qDiag mat.Dense
	qDiag.Apply(func(_, j int, v float64) float64 {
		return v * clipped[j]
	}, &vectors)

	var reconstructed mat.Dense
	reconstructed.Mul(&qDiag, vectors.T())

	repaired := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			repaired.SetSym(i, j, (reconstructed.At(i, j)+reconstructed.At(j, i))/2)
		}
	}
	return repaired
}

// validateAndRepairPSD runs the full step-2/3 validation pipeline:
// symmetrize (already done by caller), eigen-check, and repair-if-needed.
// It returns the (possibly repaired) matrix, whether repair was applied,
// and an explanatory note when it was.
func validateAndRepairPSD(sigma *mat.SymDense) (*mat.SymDense, bool, string, error) {
	norm := frobeniusNorm(sigma)
	tol := -psdEpsilon * norm

	lambdaMin, eig, ok := minEigenvalue(sigma)
	if !ok {
		return nil, false, "", fmt.Errorf("%w: eigendecomposition did not converge", ErrNonFiniteInput)
	}
	if lambdaMin >= tol {
		return sigma, false, "", nil
	}

	repaired := repairPSD(sigma, eig)
	note := fmt.Sprintf("nearest-PSD repair applied: original minimum eigenvalue %.10g was below tolerance %.3g", lambdaMin, tol)
	return repaired, true, note, nil
}

// sigmaToCorrelation derives sigma's standard deviations and
// correlation matrix, forcing diag(rho)=1 exactly and clipping
// |rho_ij| <= 1 per spec.md §4.1 step 4.
func sigmaToCorrelation(sigma *mat.SymDense) (vol []float64, corr *mat.SymDense, err error) {
	n := sigma.SymmetricDim()
	vol = make([]float64, n)
	for i := 0; i < n; i++ {
		d := sigma.At(i, i)
		if d < 0 {
			return nil, nil, fmt.Errorf("%w: negative variance after repair", ErrNonFiniteInput)
		}
		vol[i] = math.Sqrt(d)
	}

	corr = mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		corr.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			if vol[i] <= 0 || vol[j] <= 0 {
				corr.SetSym(i, j, 0)
				continue
			}
			r := sigma.At(i, j) / (vol[i] * vol[j])
			if r > 1 {
				r = 1
			} else if r < -1 {
				r = -1
			}
			corr.SetSym(i, j, r)
		}
	}
	return vol, corr, nil
}
