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

// Reserve grows the set, if necessary, so it can hold at least n
// entries without an intervening grow. Shrinking is not supported: a
// smaller n than the current capacity is a no-op, matching spec's
// "no re-hashing on shrink" non-goal.
func (s *Set[T]) Reserve(n int) {
	if n < minSize {
		n = minSize
	}
	target := nextPowerOfTwo(n)
	if target <= len(s.buckets) {
		return
	}

	prevSize := len(s.buckets)
	if prevSize == 0 {
		s.buckets = make([]slot[T], target)
		s.capacityLog = log2(target)
		return
	}

	grown := make([]slot[T], target)
	copy(grown, s.buckets)
	s.buckets = grown
	s.capacityLog = log2(target)
	s.relocate(prevSize)
}

// grow doubles the bucket vector in place and relocates every entry to
// its new home. Used by the insert path when it hits capacity.
func (s *Set[T]) grow() {
	prevSize := len(s.buckets)
	s.buckets = append(s.buckets, make([]slot[T], prevSize)...)
	s.capacityLog++
	s.relocate(prevSize)
}

// relocate re-homes every entry currently below index prevSize (i.e.
// every entry that existed before the vector was widened) into its
// correct bucket under the new, larger capacity. Iteration proceeds
// from the highest old index down to zero: a descending sweep
// guarantees an entry migrating to a higher-numbered new bucket never
// collides with an old entry that has not been processed yet.
func (s *Set[T]) relocate(prevSize int) {
	for i := prevSize - 1; i >= 0; i-- {
		s.growBucket(i)
	}
}

func (s *Set[T]) growBucket(i int) {
	var prev *slot[T]
	curr := &s.buckets[i]

	for {
		if s.expireIfNeeded(prev, curr) {
			if prev != nil && !prev.isLink() {
				return
			}
		}
		if curr.isEmpty() {
			return
		}

		obj := curr.object()
		bid := s.bucketID(s.policy.Hash(obj, defaultCookie))

		if bid == i {
			curr.clearDisplaced()
			prev = curr
			nxt := curr.next()
			if nxt == nil {
				return
			}
			curr = nxt
			continue
		}

		moved := *curr
		if curr.isObject() {
			curr.reset()
			if prev != nil {
				// prev is necessarily a link head whose payload stays
				// put; promote it to inline and free the vacated node.
				ln := prev.link
				*prev = fromLink(ln)
				s.freeLink(ln)
				s.chainEntries--
			} else {
				// curr was bucket i's whole occupant; the bucket is now
				// fully vacated.
				s.usedBuckets--
			}
			s.checkBucket("grow", moved.object(), bid)
			dest := &s.buckets[bid]
			hadHead := !dest.isEmpty()
			pushFrontMoved(s, dest, moved)
			dest.clearDisplaced()
			if !hadHead {
				s.usedBuckets++
			} else {
				s.chainEntries++
			}
			return
		}

		// curr is a link head: splice it out of the chain in place. curr's
		// memory now holds what used to be its next entry, so the loop
		// continues from the same position with prev unchanged, matching
		// dense_set.cc's Grow (`*curr = *dptr.Next()` falls through with
		// curr/prev untouched) instead of re-walking bucket i from its head.
		*curr = moved.link.next
		s.chainEntries--

		s.checkBucket("grow", moved.object(), bid)
		dest := &s.buckets[bid]
		hadHead := !dest.isEmpty()
		pushFrontMoved(s, dest, moved)
		dest.clearDisplaced()
		if !hadHead {
			s.usedBuckets++
		} else {
			s.chainEntries++
		}
	}
}

func nextPowerOfTwo(n int) int {
	p := minSize
	for p < n {
		p <<= 1
	}
	return p
}

func log2(n int) uint {
	var l uint
	for n > 1 {
		n >>= 1
		l++
	}
	return l
}
