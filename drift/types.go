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

// Package drift measures how far a portfolio's implied current weights
// have wandered from their targets since the last rebalance, using
// wealth-growth renormalization over a caller-supplied price panel.
// Grounded on src/domain/models/drift.py from the original
// implementation, expressed in the teacher's record-and-log idiom.
package drift

import "time"

// Position is one asset's drift row within a Report.
type Position struct {
	AssetKey    string
	Target      float64
	Current     float64
	DriftAbs    float64
	Breached    bool
	Explanation string // non-empty only when Breached
}

// Report is the spec's DriftReport entity: a full drift check against
// a set of target weights as of a given check date.
type Report struct {
	CheckDate  time.Time
	Threshold  float64
	Positions  []Position
	AnyBreach  bool
}

// DefaultThreshold is the spec.md §4.5 default breach threshold.
const DefaultThreshold = 0.05
