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

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// PricePanel is a caller-supplied dense price lookup by asset key and
// date, spanning at least t0 and t1 for every target asset.
type PricePanel struct {
	prices map[string]map[time.Time]float64
}

// NewPricePanel builds a PricePanel from a nested map of asset key ->
// date -> adjusted close.
func NewPricePanel(prices map[string]map[time.Time]float64) *PricePanel {
	return &PricePanel{prices: prices}
}

// At returns the price for assetKey on date t, or false if absent.
func (p *PricePanel) At(assetKey string, t time.Time) (float64, bool) {
	byDate, ok := p.prices[assetKey]
	if !ok {
		return 0, false
	}
	price, ok := byDate[t]
	return price, ok
}

// CheckDrift computes implied current weights from targetWeights via
// wealth-growth renormalization using simple returns between t0 and
// t1, and flags per-asset breaches against threshold (spec.md §4.5,
// §6 `check_drift`).
func CheckDrift(targetWeights map[string]float64, panel *PricePanel, t0, t1 time.Time, threshold float64) (*Report, error) {
	if len(targetWeights) == 0 {
		return nil, ErrNoTargetWeights
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("%w: %.6f", ErrThresholdOutOfRange, threshold)
	}

	sum := 0.0
	for _, w := range targetWeights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return nil, fmt.Errorf("%w: sum=%.6f", ErrTargetsNotUnit, sum)
	}

	keys := make([]string, 0, len(targetWeights))
	for k := range targetWeights {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	growth := make(map[string]float64, len(keys))
	for _, key := range keys {
		p0, ok := panel.At(key, t0)
		if !ok {
			return nil, fmt.Errorf("%w: %s at t0", ErrMissingPrice, key)
		}
		p1, ok := panel.At(key, t1)
		if !ok {
			return nil, fmt.Errorf("%w: %s at t1", ErrMissingPrice, key)
		}
		if p0 <= 0 || p1 <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrNonPositivePrice, key)
		}
		growth[key] = p1 / p0
	}

	denom := 0.0
	for _, key := range keys {
		denom += targetWeights[key] * growth[key]
	}

	positions := make([]Position, len(keys))
	anyBreach := false
	for i, key := range keys {
		target := targetWeights[key]
		current := (target * growth[key]) / denom
		driftAbs := math.Abs(current - target)
		breached := driftAbs > threshold

		pos := Position{
			AssetKey: key,
			Target:   target,
			Current:  current,
			DriftAbs: driftAbs,
			Breached: breached,
		}
		if breached {
			pos.Explanation = explainDrift(key, target, current)
			anyBreach = true
		}
		positions[i] = pos
	}

	return &Report{
		CheckDate: t1,
		Threshold: threshold,
		Positions: positions,
		AnyBreach: anyBreach,
	}, nil
}

// explainDrift produces the spec.md §4.5 sentence template, e.g.
// "X has drifted from 40.0% to 51.2% (+11.2 pp) due to price
// appreciation since last rebalance."
func explainDrift(assetKey string, target, current float64) string {
	ppChange := (current - target) * 100
	direction := "appreciation"
	if current < target {
		direction = "depreciation"
	}
	return fmt.Sprintf(
		"%s has drifted from %.1f%% to %.1f%% (%+.1f pp) due to price %s since last rebalance.",
		assetKey, target*100, current*100, ppChange, direction,
	)
}
