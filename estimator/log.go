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

import "github.com/rs/zerolog"

// MarshalZerologObject lets an AssumptionSet be passed directly to
// zerolog's Object()/Interface() sinks, following the pattern used by
// portfolio/log.go in the teacher repository for its own domain
// records (TaxLot, DrawDown, Metrics).
func (a *AssumptionSet) MarshalZerologObject(e *zerolog.Event) {
	e.Int("numAssets", a.N()).
		Int("annualizationFactor", a.AnnualizationFactor).
		Float64("riskFree", a.RiskFree).
		Str("muMethod", string(a.MuMethod)).
		Str("covMethod", string(a.CovMethod)).
		Bool("psdRepairApplied", a.PSDRepairApplied)
	if a.PSDRepairApplied {
		e.Str("psdRepairNote", a.PSDRepairNote)
	}
}
