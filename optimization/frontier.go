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

import "github.com/penny-vault/portfolio-core/estimator"

const defaultFrontierPoints = 20
const frontierDegenerateTol = 1e-8

// FrontierSeries solves FRONTIER_POINT at K evenly spaced target
// returns across [min(mu), max(mu)] (spec.md §4.3), returning one
// Result per grid point carrying the common seriesID. Individual
// points may come back INFEASIBLE or ERROR without aborting the rest
// of the series.
//
// When every asset shares the same expected return (max(mu) <= min(mu)
// + tolerance), the grid degenerates to a single point; rather than
// building a NaN-spaced linspace, this mirrors the original's
// compute_efficient_frontier and returns a single MVP result.
func FrontierSeries(a *estimator.AssumptionSet, constraints Constraints, k int, seriesID string) ([]*Result, error) {
	if a == nil {
		return nil, ErrNilAssumptions
	}
	if k <= 0 {
		k = defaultFrontierPoints
	}

	minMu, maxMu := a.Mu[0], a.Mu[0]
	for _, m := range a.Mu[1:] {
		if m < minMu {
			minMu = m
		}
		if m > maxMu {
			maxMu = m
		}
	}

	if maxMu <= minMu+frontierDegenerateTol {
		mvp, err := Optimize(Input{
			Assumptions: a,
			RunType:     MVP,
			Constraints: constraints,
			SeriesID:    seriesID,
		})
		if err != nil {
			return nil, err
		}
		return []*Result{mvp}, nil
	}

	results := make([]*Result, 0, k)
	for i := 0; i < k; i++ {
		var target float64
		if k == 1 {
			target = minMu
		} else {
			target = minMu + (maxMu-minMu)*float64(i)/float64(k-1)
		}

		result, err := Optimize(Input{
			Assumptions:  a,
			RunType:      FrontierPoint,
			Constraints:  constraints,
			TargetReturn: target,
			HasTarget:    true,
			SeriesID:     seriesID,
		})
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}
