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

import "github.com/rs/zerolog"

// MarshalZerologObject follows the teacher's portfolio/log.go
// convention for domain records.
func (r *Report) MarshalZerologObject(e *zerolog.Event) {
	e.Time("checkDate", r.CheckDate).
		Float64("threshold", r.Threshold).
		Bool("anyBreach", r.AnyBreach).
		Int("positions", len(r.Positions))
}
