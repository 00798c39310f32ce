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

package optimization

import "errors"

var (
	ErrNilAssumptions      = errors.New("assumption set is nil")
	ErrMissingTargetReturn = errors.New("target return required for FRONTIER_POINT")
	ErrUnknownRunType      = errors.New("unknown run type")
	ErrIncoherentBounds    = errors.New("asset bound min exceeds max")
	ErrUnknownAssetKey     = errors.New("asset key in bounds map not present in assumption set")
	ErrPrevWeightsLength   = errors.New("prev_weights length does not match asset key count")
)
