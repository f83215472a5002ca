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

// stubPolicy is a test-only Policy[string] with an injectable hash
// function, mirroring how the teacher's own tests inject a degenerate
// hash via WithHash to exercise collision-heavy paths deterministically
// (map_test.go's TestBasic/TestRandom "degenerate" subtests).
type stubPolicy struct {
	hash         func(obj string) uint64
	expire       map[string]uint32
	destroyed    []string
	destroyedTTL map[string]bool
}

func newStubPolicy() *stubPolicy {
	return &stubPolicy{expire: make(map[string]uint32), destroyedTTL: make(map[string]bool)}
}

// defaultHash is a small, deterministic string hash (not
// cryptographic, not maphash-seeded) so scenario tests can compute
// expected bucket placement by hand when they don't inject an explicit
// hash function.
func defaultHash(s string) uint64 {
	var h uint64 = 1469598103934665603
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

func (p *stubPolicy) Hash(obj string, cookie uint32) uint64 {
	if p.hash != nil {
		return p.hash(obj)
	}
	return defaultHash(obj)
}

func (p *stubPolicy) Equal(a, b string, cookie uint32) bool { return a == b }

func (p *stubPolicy) AllocSize(obj string) uintptr { return uintptr(len(obj)) }

func (p *stubPolicy) ExpireTime(obj string) uint32 { return p.expire[obj] }

func (p *stubPolicy) Destroy(obj string, hadTTL bool) {
	p.destroyed = append(p.destroyed, obj)
	p.destroyedTTL[obj] = hadTTL
}

// hashForBucket returns a hash value whose top capacityLog bits equal
// bucket, letting scenario tests pin an object's home bucket exactly
// (spec.md §8's "hash = identity on a test stub" concrete scenarios).
func hashForBucket(bucket int, capacityLog uint) uint64 {
	return uint64(bucket) << (64 - capacityLog)
}
