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

// Policy supplies the five environment callbacks a Set needs to treat T
// as an opaque payload: how to hash it, how to compare two instances,
// how large it is (for MemUsed accounting), when it expires, and how to
// release it. This mirrors the callback set the container's C++ origin
// takes as virtual methods on its base class, and the cookie parameter
// those methods forward untouched so one Policy can back multiple
// logical views of the same underlying object (e.g. a primary index and
// a secondary expiry index over the same key).
type Policy[T any] interface {
	// Hash returns a 64-bit digest of obj. It must be deterministic for
	// the lifetime of any Set built on this Policy; a non-deterministic
	// hash function corrupts placement invariants (see Diagnostic).
	Hash(obj T, cookie uint32) uint64

	// Equal reports whether a and b denote the same logical entry.
	Equal(a, b T, cookie uint32) bool

	// AllocSize reports the accounting size of obj, summed into
	// Set.MemUsed.
	AllocSize(obj T) uintptr

	// ExpireTime reports obj's expiry in the set's time unit. Only
	// consulted for slots inserted with hasTTL=true.
	ExpireTime(obj T) uint32

	// Destroy releases obj. Called by Erase, TTL sweep, and Clear; not
	// called for Pop or the replaced value in AddOrReplace, since both
	// hand the object back to the caller instead of discarding it.
	// hadTTL reports whether the object was tracked with an expiry, but
	// only Clear passes the real value: Erase and TTL sweep always pass
	// false, matching the container's origin.
	Destroy(obj T, hadTTL bool)
}

// defaultCookie is used by every insertion path; only Contains/Erase let
// a caller supply an explicit cookie, matching the container's own
// AddOrFindDense/AddUnique which always hash and compare with cookie 0.
const defaultCookie uint32 = 0
