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

import "errors"

// Sentinel errors for the INVALID_INPUT failure class (DATA-MODEL §4.1).
// Wrap with fmt.Errorf("...: %w", ErrX) when a field name or value needs
// to travel with the error.
var (
	ErrEmptyPanel        = errors.New("return panel has no observations")
	ErrTooFewObservations = errors.New("fewer than 2 observations")
	ErrTooFewAssets      = errors.New("fewer than 2 assets")
	ErrNonFiniteInput    = errors.New("return panel contains NaN or Inf")
	ErrDatesNotAscending = errors.New("observation dates are not strictly ascending")
	ErrUnknownEstimator  = errors.New("unknown mu estimator tag")
	ErrUnknownCovMethod  = errors.New("unknown covariance method tag")
	ErrUnknownFrequency  = errors.New("unknown return frequency")

	// ErrDegenerateAsset is the DEGENERATE_ASSET failure class: an asset
	// column with zero variance cannot be annualized into a meaningful Σ
	// row/column. Wrapped with the offending asset key.
	ErrDegenerateAsset = errors.New("degenerate asset: zero variance")
)
