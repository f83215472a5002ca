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

// Package denseset implements an open-addressed, chained hash set with
// bounded ±1 displacement and lazy TTL expiration — the data-structure
// primitive behind a Redis-compatible in-memory key/value engine's
// object table. A Set stores payloads of a single opaque type T
// (typically small strings) and supports insertion, lookup, replace,
// deletion, pop, a rehash-stable cursor scan, and growth by doubling.
//
// Each bucket may hold an inline object, a short singly-linked chain of
// overflow entries, or an object displaced from a neighboring bucket. A
// per-entry TTL flag lets any traversal opportunistically reap expired
// entries. A Set is not safe for concurrent use: every method must run
// to completion on a single goroutine before another begins.
package denseset

// Set is an unordered collection of T with Add/Find/Delete/Pop/Scan
// operations, inspired by DragonflyDB's DenseSet. A Set is NOT
// goroutine-safe; callers operating one from multiple goroutines must
// serialize externally.
type Set[T any] struct {
	buckets     []slot[T]
	capacityLog uint // 0 iff buckets is empty

	size         int
	usedBuckets  int
	chainEntries int
	memUsed      uint64
	timeNow      uint32

	policy    Policy[T]
	allocator LinkAllocator[T]

	lastDiag *Diagnostic
}

const (
	minSizeShift = 2
	minSize      = 1 << minSizeShift
)

// New constructs an empty Set backed by policy. The zero value of Set is
// not usable; always construct through New.
func New[T any](policy Policy[T], opts ...Option[T]) *Set[T] {
	s := &Set[T]{
		policy:    policy,
		allocator: defaultLinkAllocator[T]{},
	}
	for _, op := range opts {
		op.apply(s)
	}
	return s
}

// Size returns the number of live objects in the set.
func (s *Set[T]) Size() int { return s.size }

// MemUsed returns the sum of Policy.AllocSize over every live object.
func (s *Set[T]) MemUsed() uint64 { return s.memUsed }

// BucketCount returns the current length of the bucket vector (always a
// power of two, or zero for a never-grown set).
func (s *Set[T]) BucketCount() int { return len(s.buckets) }

// SetTime sets the monotonic reference TTL sweeps compare object
// expiries against. The set never reads a wall clock itself; the
// embedder is responsible for advancing it.
func (s *Set[T]) SetTime(now uint32) { s.timeNow = now }

// Clear empties the set, calling Policy.Destroy on every live object and
// returning every link node to the allocator.
func (s *Set[T]) Clear() {
	for i := range s.buckets {
		head := &s.buckets[i]
		for !head.isEmpty() {
			hadTTL := head.hasTTL()
			isDispl := head.isDisplaced()
			obj := s.popFront(head)
			if invariants {
				home := s.bucketID(s.policy.Hash(obj, defaultCookie))
				delta := home - i
				if isDispl {
					if delta < -1 || delta > 1 {
						s.recordDiagnostic(Diagnostic{Kind: DiagWrongBucket, ExpectedBucket: home, ActualBucket: i, During: "clear"})
					}
				} else if delta != 0 {
					s.recordDiagnostic(Diagnostic{Kind: DiagWrongBucket, ExpectedBucket: home, ActualBucket: i, During: "clear"})
				}
			}
			s.policy.Destroy(obj, hadTTL)
		}
	}
	s.buckets = nil
	s.capacityLog = 0
	s.usedBuckets = 0
	s.chainEntries = 0
	s.size = 0
	s.memUsed = 0
}

// Close reports ErrNotEmpty if the set still holds live objects,
// mirroring the container origin's hard destructor precondition. A
// caller must Clear (or drain via Pop/Erase) before Close. Close on an
// already-empty set is a no-op and always safe to call more than once.
func (s *Set[T]) Close() error {
	if s.size != 0 {
		return ErrNotEmpty
	}
	s.buckets = nil
	s.allocator = nil
	return nil
}

// newLink allocates a link node from the configured LinkAllocator,
// populating its payload with obj and its next field with next. Callers
// own chainEntries accounting: they already know, from deciding whether
// the destination bucket was previously empty, whether this allocation
// represents a net-new chain entry.
func (s *Set[T]) newLink(obj T, next slot[T]) *linkNode[T] {
	ln := s.allocator.AllocLink()
	ln.next = next
	ln.payload.setObject(obj)
	return ln
}

func (s *Set[T]) freeLink(ln *linkNode[T]) {
	s.allocator.FreeLink(ln)
}

// popFront unlinks and returns the object at the head of the chain
// rooted at head, promoting the next link (if any) into its place. It
// is the sole decrementer of usedBuckets/chainEntries for a pop:
// exactly one of the two counters drops, matching PopInternal's
// single-decrement contract in the container's origin. Callers (Pop,
// Clear) must not also adjust either counter per removed head.
func (s *Set[T]) popFront(head *slot[T]) T {
	var zero T
	if head.isEmpty() {
		return zero
	}
	if head.isObject() {
		obj := head.obj
		head.reset()
		s.usedBuckets--
		return obj
	}
	ln := head.link
	obj := ln.payload.obj
	if ln.next.isEmpty() {
		head.reset()
	} else {
		*head = ln.next
	}
	s.freeLink(ln)
	s.chainEntries--
	return obj
}
