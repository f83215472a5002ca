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

// findInternal searches for an object equal to obj starting from home
// bucket bid, in the order the placement engine promises: the home
// bucket itself, its left neighbor, its right neighbor, then the home
// bucket's chain. Every visited slot is TTL-swept first. prev is nil
// when the match is a bucket head (including a displaced neighbor
// head); otherwise it is the link-head slot that owns the matching
// chain node, which callers use to unlink in O(1).
func (s *Set[T]) findInternal(obj T, bid int, cookie uint32) (prev, found *slot[T]) {
	cur := &s.buckets[bid]
	s.expireIfNeeded(nil, cur)
	if s.equalSlot(cur, obj, cookie) {
		return nil, cur
	}

	if bid > 0 {
		cur = &s.buckets[bid-1]
		s.expireIfNeeded(nil, cur)
		if s.equalSlot(cur, obj, cookie) {
			return nil, cur
		}
	}

	if bid+1 < len(s.buckets) {
		cur = &s.buckets[bid+1]
		s.expireIfNeeded(nil, cur)
		if s.equalSlot(cur, obj, cookie) {
			return nil, cur
		}
	}

	prev = &s.buckets[bid]
	cur = prev.next()
	for cur != nil {
		s.expireIfNeeded(prev, cur)
		if s.equalSlot(cur, obj, cookie) {
			return prev, cur
		}
		prev = cur
		cur = cur.next()
	}

	return nil, nil
}

func (s *Set[T]) equalSlot(sl *slot[T], obj T, cookie uint32) bool {
	if sl.isEmpty() {
		return false
	}
	return s.policy.Equal(sl.object(), obj, cookie)
}

// Contains reports whether an object equal to obj (as compared under
// cookie) is present in the set.
func (s *Set[T]) Contains(obj T, cookie uint32) bool {
	if len(s.buckets) == 0 {
		return false
	}
	bid := s.bucketID(s.policy.Hash(obj, cookie))
	_, found := s.findInternal(obj, bid, cookie)
	return found != nil
}

// Erase removes an object equal to obj (as compared under cookie) if
// present, reporting whether it was found. Object-not-found is not an
// error: it is signaled solely by the returned bool.
func (s *Set[T]) Erase(obj T, cookie uint32) bool {
	if len(s.buckets) == 0 {
		return false
	}
	bid := s.bucketID(s.policy.Hash(obj, cookie))
	prev, found := s.findInternal(obj, bid, cookie)
	if found == nil {
		return false
	}
	s.deleteAt(prev, found)
	return true
}

// deleteAt removes the object at found, splicing out link nodes as
// needed so that a bucket's chain remains intact and reclaiming the
// unlinked node via the configured allocator. It always reports
// hadTTL=false to Policy.Destroy: erase and TTL-sweep expiry share this
// path, and the container's origin hardcodes false at this exact call
// site (its ClearInternal is the only caller that passes the real
// flag, mirrored by this package's own Clear).
func (s *Set[T]) deleteAt(prev, found *slot[T]) {
	var obj T

	if found.isObject() {
		obj = found.obj
		found.reset()
		if prev == nil {
			s.usedBuckets--
		} else {
			// prev is necessarily a link head and found aliases
			// prev.link.next; promote prev.link's own payload into an
			// inline slot and reclaim the now-unnecessary link node.
			ln := prev.link
			s.chainEntries--
			*prev = fromLink(ln)
			s.freeLink(ln)
		}
	} else {
		ln := found.link
		obj = ln.payload.obj
		*found = ln.next
		s.chainEntries--
		s.freeLink(ln)
	}

	s.memUsed -= uint64(s.policy.AllocSize(obj))
	s.size--
	s.policy.Destroy(obj, false)
}

// Pop removes and returns an arbitrary live object, or ok=false if the
// set is empty. Repeated calls drain the set in bucket order.
func (s *Set[T]) Pop() (obj T, ok bool) {
	var zero T
	for i := range s.buckets {
		head := &s.buckets[i]
		if head.isEmpty() {
			continue
		}
		s.expireIfNeeded(nil, head)
		if head.isEmpty() {
			continue
		}

		obj = s.popFront(head)
		s.memUsed -= uint64(s.policy.AllocSize(obj))
		s.size--
		return obj, true
	}
	return zero, false
}
