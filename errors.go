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

import "errors"

// ErrNotEmpty is returned by Close when the set still holds live
// objects. The container's origin makes this a hard destructor
// precondition ("the subclass that knows how to destroy objects must
// clear first"); Close reports it as an error instead of panicking so a
// caller can decide whether to Clear first or treat it as a bug.
var ErrNotEmpty = errors.New("denseset: close called on a non-empty set")

// DiagnosticKind classifies a placement inconsistency detected during
// insertion or grow.
type DiagnosticKind uint8

const (
	// DiagWrongBucket records that an object's home bucket, recomputed
	// from its Hash, differs from the bucket the set placed or found it
	// under (for Clear: differs by more than its displacement flags
	// allow). This almost always indicates a non-deterministic or buggy
	// Hash implementation.
	DiagWrongBucket DiagnosticKind = iota
)

// Diagnostic is a structured report of a placement inconsistency,
// replacing the container origin's thread-local "has_problem" flag
// (spec's own design notes ask for exactly this trade). The set remains
// usable after a Diagnostic is recorded; the operation that triggered it
// proceeds best-effort.
type Diagnostic struct {
	Kind           DiagnosticKind
	ExpectedBucket int
	ActualBucket   int
	During         string // e.g. "addUnique", "grow"
}
