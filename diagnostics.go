// Copyright 2026 The Denseset Authors
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

package denseset

import "fmt"

// debug and invariants gate the same kind of verbose, compile-time-free
// tracing and self-checking the container's origin toggles with build
// flags. They are ordinary package-level vars here (rather than build
// tags or untoggleable consts) so a test can flip invariants to true for
// the duration of a single case and exercise checkBucket/LastDiagnostic
// without a separate build configuration, matching how the teacher
// keeps its own `debug` const readily flippable during development.
var (
	debug      = false
	invariants = false
)

func trace(format string, args ...any) {
	if debug {
		fmt.Printf(format, args...)
	}
}

// recordDiagnostic stores the most recent placement inconsistency,
// replacing the origin's thread_local has_problem boolean with a
// structured, per-Set inspection point (LastDiagnostic). The offending
// operation continues best-effort; a diagnostic is not itself fatal.
func (s *Set[T]) recordDiagnostic(d Diagnostic) {
	s.lastDiag = &d
	trace("denseset: diagnostic during %s: expected bucket %d, actual %d\n",
		d.During, d.ExpectedBucket, d.ActualBucket)
}

// LastDiagnostic returns the most recently recorded placement
// inconsistency, if any, and clears it. Tests and operators can poll
// this to observe "something went wrong but the set is still usable"
// without a global flag shared across sets or goroutines.
func (s *Set[T]) LastDiagnostic() (Diagnostic, bool) {
	if s.lastDiag == nil {
		return Diagnostic{}, false
	}
	d := *s.lastDiag
	s.lastDiag = nil
	return d, true
}

func (s *Set[T]) checkBucket(during string, obj T, expected int) {
	if !invariants {
		return
	}
	actual := s.bucketID(s.policy.Hash(obj, defaultCookie))
	if actual != expected {
		s.recordDiagnostic(Diagnostic{
			Kind:           DiagWrongBucket,
			ExpectedBucket: expected,
			ActualBucket:   actual,
			During:         during,
		})
	}
}
