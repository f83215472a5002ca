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

// slot is the tagged-variant word described by the container's slot
// contract: empty, an inline object, or the head of a link chain. Unlike
// the C++ original this package ports (which packs the tag, the TTL bit,
// and the displacement direction into the low bits of the object
// pointer itself), a Go type parameter T is not guaranteed to be
// pointer-shaped, so slot is the "fat struct" alternative the container
// contract explicitly allows: a small side-band of flags next to the
// payload rather than bits stolen from it.
type slot[T any] struct {
	obj  T
	link *linkNode[T]

	kind        slotKind
	ttl         bool
	displaced   bool
	displaceDir int8 // -1 or +1, meaningful only when displaced
}

type slotKind uint8

const (
	slotEmpty slotKind = iota
	slotObject
	slotLink
)

// linkNode is a heap-allocated overflow cell: one inline payload plus the
// continuation of the chain. It is allocated from the set's configured
// LinkAllocator and always holds an object-kind payload.
type linkNode[T any] struct {
	payload slot[T]
	next    slot[T]
}

func (s *slot[T]) isEmpty() bool  { return s.kind == slotEmpty }
func (s *slot[T]) isObject() bool { return s.kind == slotObject }
func (s *slot[T]) isLink() bool   { return s.kind == slotLink }

// object returns the payload pointer ignoring flags; valid iff !isEmpty().
func (s *slot[T]) object() T {
	if s.kind == slotLink {
		return s.link.payload.obj
	}
	return s.obj
}

// setObject makes s an inline-object slot, clearing every flag.
func (s *slot[T]) setObject(obj T) {
	s.obj = obj
	s.link = nil
	s.kind = slotObject
	s.ttl = false
	s.displaced = false
	s.displaceDir = 0
}

// setLink makes s a link-head slot pointing at ln.
func (s *slot[T]) setLink(ln *linkNode[T]) {
	var zero T
	s.obj = zero
	s.link = ln
	s.kind = slotLink
	s.ttl = false
	s.displaced = false
	s.displaceDir = 0
}

// next returns the address of the continuation slot when s is a link
// head, or nil otherwise.
func (s *slot[T]) next() *slot[T] {
	if s.kind != slotLink {
		return nil
	}
	return &s.link.next
}

// setTTL and hasTTL always act on the flag word attached to the object
// itself. For a link head that means the payload embedded in the link
// node, not the head's own word: the head's word is a pointer, not the
// object, and the object can be relinked under a different head (grow,
// cascade, TTL collapse) without losing its flag.
func (s *slot[T]) setTTL(v bool) {
	if s.kind == slotLink {
		s.link.payload.ttl = v
		return
	}
	s.ttl = v
}

func (s *slot[T]) hasTTL() bool {
	if s.kind == slotLink {
		return s.link.payload.ttl
	}
	return s.ttl
}

func (s *slot[T]) isDisplaced() bool { return s.displaced }

func (s *slot[T]) setDisplaced(dir int8) {
	s.displaced = true
	s.displaceDir = dir
}

func (s *slot[T]) clearDisplaced() {
	s.displaced = false
	s.displaceDir = 0
}

func (s *slot[T]) displaceDirection() int8 { return s.displaceDir }

// reset makes s empty, dropping every flag.
func (s *slot[T]) reset() {
	var zero T
	*s = slot[T]{obj: zero}
}

// fromLink builds a slot that owns ln's payload as an inline object,
// carrying over its TTL flag. Used when the inline entry after ln is
// removed, so ln is reclaimed and its own payload becomes the inline
// slot in its place (delete, grow, TTL collapse).
func fromLink[T any](ln *linkNode[T]) slot[T] {
	s := ln.payload
	s.link = nil
	return s
}

// pushFront installs a brand-new payload at the front of the chain
// rooted at head. If head was empty the payload becomes the inline
// object; otherwise a link node is allocated to hold the former head.
func pushFront[T any](s *Set[T], head *slot[T], obj T, hasTTL bool) uintptr {
	if head.isEmpty() {
		head.setObject(obj)
	} else {
		head.setLink(s.newLink(obj, *head))
		s.chainEntries++
	}
	if hasTTL {
		head.setTTL(true)
	}
	return s.policy.AllocSize(obj)
}

// pushFrontMoved relocates an already-tagged slot (object or link head)
// to the front of the chain rooted at head. Used by the displacement
// cascade and by grow when an entry must move to a different bucket
// without re-allocating a link node unnecessarily.
func pushFrontMoved[T any](s *Set[T], head *slot[T], moved slot[T]) {
	switch {
	case head.isEmpty():
		obj := moved.object()
		hadTTL := moved.hasTTL()
		if moved.isLink() {
			s.freeLink(moved.link)
		}
		head.setObject(obj)
		head.setTTL(hadTTL)
	case moved.isLink():
		// No allocation needed: splice the existing link node in front
		// of the current head.
		moved.link.next = *head
		*head = moved
	default:
		ln := s.newLink(moved.object(), *head)
		ln.payload.setTTL(moved.hasTTL())
		head.setLink(ln)
	}
}
