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

package screening

import "errors"

var (
	ErrNoCandidates         = errors.New("no candidate keys supplied")
	ErrNoReferenceWeights   = errors.New("no reference weights supplied")
	ErrReferenceNotUnit     = errors.New("reference weights do not sum to 1")
	ErrSignalWeightsNotUnit = errors.New("signal weights do not sum to 1")
	ErrNegativeSignalWeight = errors.New("signal weight is negative")
	ErrDeltaOutOfRange      = errors.New("delta must be in (0,1)")
	ErrUnknownAssetKey      = errors.New("asset key not present in assumption set")
)
