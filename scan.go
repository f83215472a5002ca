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

// Scan visits one home bucket's worth of entries (that bucket, its
// chain, and any neighbor displaced from it) and returns the cursor to
// resume from, or 0 once the scan has covered every bucket. Passing 0
// starts a new scan. The cursor packs the next bucket index into the
// high bits of a 32-bit word, matching the width Redis-style SCAN
// cursors use; bucketID's own hash-to-bucket mapping is independent of
// this packing width and always taken from the top capacityLog bits of
// the full 64-bit hash (see placement.go), so cursor stability under
// Grow only depends on that mapping being high-bit derived, not on
// cursor and hash sharing a width.
//
// Each call advances by one home bucket, not the whole table, so
// callers drive the scan to completion with a loop:
//
//	var cursor uint32
//	for {
//	    cursor = s.Scan(cursor, func(obj T) { ... })
//	    if cursor == 0 {
//	        break
//	    }
//	}
func (s *Set[T]) Scan(cursor uint32, cb func(obj T)) (next uint32) {
	if s.capacityLog == 0 {
		return 0
	}

	shift := uint(32) - s.capacityLog
	idx := int(cursor >> shift)

	for idx < len(s.buckets) && s.noItemBelongsBucket(idx) {
		idx++
	}
	if idx == len(s.buckets) {
		return 0
	}

	curr := &s.buckets[idx]
	if !curr.isEmpty() && !curr.isDisplaced() {
		for {
			cb(curr.object())
			if !curr.isLink() {
				break
			}
			ln := curr.link
			if s.expireIfNeeded(curr, &ln.next) && !curr.isLink() {
				break
			}
			curr = &ln.next
		}
	}

	if idx > 0 {
		left := &s.buckets[idx-1]
		s.expireIfNeeded(nil, left)
		if left.isDisplaced() && left.displaceDirection() == -1 {
			cb(left.object())
		}
	}

	idx++
	if idx >= len(s.buckets) {
		return 0
	}

	right := &s.buckets[idx]
	s.expireIfNeeded(nil, right)
	if right.isDisplaced() && right.displaceDirection() == 1 {
		cb(right.object())
	}

	return uint32(idx) << shift
}

// noItemBelongsBucket reports whether bid's home bucket has no live
// entry anywhere it could be: not inline, not chained, and not sitting
// displaced in either neighbor.
func (s *Set[T]) noItemBelongsBucket(bid int) bool {
	curr := &s.buckets[bid]
	s.expireIfNeeded(nil, curr)
	if !curr.isEmpty() && !curr.isDisplaced() {
		return false
	}

	if bid+1 < len(s.buckets) {
		right := &s.buckets[bid+1]
		s.expireIfNeeded(nil, right)
		if !right.isEmpty() && right.isDisplaced() && right.displaceDirection() == 1 {
			return false
		}
	}

	if bid > 0 {
		left := &s.buckets[bid-1]
		s.expireIfNeeded(nil, left)
		if !left.isEmpty() && left.isDisplaced() && left.displaceDirection() == -1 {
			return false
		}
	}

	return true
}
