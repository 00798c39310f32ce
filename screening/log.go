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

import "github.com/rs/zerolog"

// MarshalZerologObject lets a ScoreRow be passed directly to zerolog's
// Object() sink, following the teacher's portfolio/log.go convention.
func (s *ScoreRow) MarshalZerologObject(e *zerolog.Event) {
	e.Str("candidateKey", s.CandidateKey).
		Int("rank", s.Rank).
		Float64("composite", s.Composite).
		Float64("avgCorrNorm", s.AvgCorrNorm).
		Float64("mvrNorm", s.MVRNorm).
		Float64("gap", s.Gap).
		Float64("hhiRedNorm", s.HHIRedNorm)
	if len(s.DegenerateSignals) > 0 {
		e.Strs("degenerateSignals", s.DegenerateSignals)
	}
}
