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

// Package estimator turns an aligned panel of per-period asset returns
// into an annualized, validated, PSD-repaired assumption set (mu, Sigma,
// rho) that the rest of the core consumes read-only.
package estimator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Estimate validates panel, derives per-period mu/Sigma with the
// requested methods, annualizes them, and runs the PSD validation
// pipeline. It is the Estimator's sole entry point (spec.md §6
// `estimate`).
func Estimate(panel *ReturnPanel, rf float64, muMethod MuMethod, covMethod CovMethod, params MuParams) (*AssumptionSet, error) {
	if err := validatePanel(panel); err != nil {
		return nil, err
	}

	annualFactor, ok := panel.Frequency.AnnualizationFactor()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFrequency, panel.Frequency)
	}

	mu, err := estimateMu(panel.Data, muMethod, params)
	if err != nil {
		return nil, err
	}
	for i := range mu {
		mu[i] *= float64(annualFactor)
	}

	sigmaPeriod, err := estimateSigma(panel.Data, covMethod)
	if err != nil {
		return nil, err
	}
	if err := checkDegenerateAssets(sigmaPeriod, panel.AssetKeys); err != nil {
		return nil, err
	}

	n := sigmaPeriod.SymmetricDim()
	sigmaAnnual := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sigmaAnnual.SetSym(i, j, sigmaPeriod.At(i, j)*float64(annualFactor))
		}
	}

	symmetric := symmetrize(sigmaAnnual)
	repaired, psdApplied, psdNote, err := validateAndRepairPSD(symmetric)
	if err != nil {
		return nil, err
	}

	vol, corr, err := sigmaToCorrelation(repaired)
	if err != nil {
		return nil, err
	}

	return &AssumptionSet{
		AssetKeys:           append([]string(nil), panel.AssetKeys...),
		Mu:                  mu,
		Sigma:               repaired,
		Vol:                 vol,
		Corr:                corr,
		AnnualizationFactor: annualFactor,
		RiskFree:            rf,
		MuMethod:            muMethod,
		CovMethod:           covMethod,
		PSDRepairApplied:    psdApplied,
		PSDRepairNote:       psdNote,
	}, nil
}

// validatePanel enforces the INVALID_INPUT failure class named in
// spec.md §4.1: empty panel, too few observations/assets, non-finite
// values, or non-ascending dates.
func validatePanel(panel *ReturnPanel) error {
	if panel == nil || panel.Data == nil {
		return ErrEmptyPanel
	}
	m := panel.numObs()
	n := panel.numAssets()
	if m == 0 || n == 0 {
		return ErrEmptyPanel
	}
	if m < 2 {
		return ErrTooFewObservations
	}
	if n < 2 {
		return ErrTooFewAssets
	}
	if len(panel.AssetKeys) != n {
		return fmt.Errorf("%w: %d asset keys for %d columns", ErrTooFewAssets, len(panel.AssetKeys), n)
	}
	if len(panel.Dates) != m {
		return fmt.Errorf("%w: %d dates for %d observations", ErrDatesNotAscending, len(panel.Dates), m)
	}
	for t := 1; t < m; t++ {
		if !panel.Dates[t].After(panel.Dates[t-1]) {
			return fmt.Errorf("%w: date[%d]=%s does not follow date[%d]=%s", ErrDatesNotAscending, t, panel.Dates[t], t-1, panel.Dates[t-1])
		}
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			v := panel.Data.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: at observation %d, asset %q", ErrNonFiniteInput, i, panel.AssetKeys[j])
			}
		}
	}
	return nil
}

// checkDegenerateAssets fails with DEGENERATE_ASSET naming the first
// zero-variance column, per spec.md §4.1's "all-zero variance column"
// failure mode.
func checkDegenerateAssets(sigma *mat.SymDense, assetKeys []string) error {
	n := sigma.SymmetricDim()
	for i := 0; i < n; i++ {
		if sigma.At(i, i) <= 0 {
			key := fmt.Sprintf("column %d", i)
			if i < len(assetKeys) {
				key = assetKeys[i]
			}
			return fmt.Errorf("%w: %s", ErrDegenerateAsset, key)
		}
	}
	return nil
}
