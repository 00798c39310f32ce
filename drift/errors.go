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

package drift

import "errors"

var (
	ErrNoTargetWeights   = errors.New("no target weights supplied")
	ErrTargetsNotUnit    = errors.New("target weights do not sum to 1")
	ErrMissingPrice      = errors.New("missing price for asset at t0 or t1")
	ErrNonPositivePrice  = errors.New("non-positive price")
	ErrThresholdOutOfRange = errors.New("threshold must be in (0,1)")
)
