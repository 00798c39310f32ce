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

import "github.com/rs/zerolog"

// MarshalZerologObject follows the teacher's portfolio/log.go
// convention for domain records.
func (r *Result) MarshalZerologObject(e *zerolog.Event) {
	e.Str("status", string(r.Status)).
		Str("state", r.State)
	if r.Status == StatusSuccess {
		e.Float64("expReturn", r.ExpReturn).
			Float64("vol", r.Vol).
			Float64("hhi", r.HHI).
			Float64("effectiveN", r.EffectiveN)
		if r.SharpeValid {
			e.Float64("sharpe", r.Sharpe)
		}
	}
	if r.InfeasibilityReason != "" {
		e.Str("infeasibilityReason", r.InfeasibilityReason)
	}
	if len(r.Warnings) > 0 {
		e.Strs("warnings", r.Warnings)
	}
}
