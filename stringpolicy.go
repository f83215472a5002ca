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

import "hash/maphash"

// StringPolicy is a ready-to-use Policy[string] for the small,
// frequently-churned strings a key/value engine's object table holds
// (e.g. Redis-style keys). None of this project's retrieved dependency
// surface ships a standalone string-hashing library, so the hash here
// is built on the standard library's hash/maphash rather than an
// unsafe linkname trick into the runtime's internal hasher — the
// teacher's own getRuntimeHasher helper is exactly such a trick, but
// its definition was not part of what got carried into this package,
// and reproducing it here would mean pinning to undocumented runtime
// internals with no corpus grounding for the exact call signature.
//
// A StringPolicy carries no TTL of its own; wrap it or hold expiries
// out of band and answer ExpireTime accordingly, or use
// NewTTLStringPolicy and record each expiry with SetExpiry.
type StringPolicy struct {
	seed maphash.Seed
}

// NewStringPolicy returns a StringPolicy seeded once at construction
// time. All Sets sharing a StringPolicy share its seed, so hashes are
// only comparable across sets that were built with the same instance.
func NewStringPolicy() *StringPolicy {
	return &StringPolicy{seed: maphash.MakeSeed()}
}

func (p *StringPolicy) Hash(s string, cookie uint32) uint64 {
	var h maphash.Hash
	h.SetSeed(p.seed)
	if cookie != 0 {
		var b [4]byte
		b[0] = byte(cookie)
		b[1] = byte(cookie >> 8)
		b[2] = byte(cookie >> 16)
		b[3] = byte(cookie >> 24)
		h.Write(b[:])
	}
	h.WriteString(s)
	return h.Sum64()
}

func (p *StringPolicy) Equal(a, b string, cookie uint32) bool { return a == b }

// AllocSize approximates the runtime footprint of a string: sixteen
// bytes for the header plus its byte content, matching how the
// container's origin sizes small dynamic strings.
func (p *StringPolicy) AllocSize(s string) uintptr { return uintptr(16 + len(s)) }

func (p *StringPolicy) ExpireTime(s string) uint32 { return 0 }

func (p *StringPolicy) Destroy(s string, hadTTL bool) {}

// TTLStringPolicy is a StringPolicy variant that tracks a per-object
// absolute expiry, for callers that use AddOrFind/AddOrReplace's
// hasTTL flag and want ExpireTime to reflect a real value instead of
// the always-live zero StringPolicy reports.
type TTLStringPolicy struct {
	StringPolicy
	expiry map[string]uint32
}

// NewTTLStringPolicy returns a TTLStringPolicy with its own hash seed
// and an empty expiry table.
func NewTTLStringPolicy() *TTLStringPolicy {
	return &TTLStringPolicy{
		StringPolicy: StringPolicy{seed: maphash.MakeSeed()},
		expiry:       make(map[string]uint32),
	}
}

// SetExpiry records s's absolute expiry time for future ExpireTime
// lookups. Call this before inserting s with hasTTL=true.
func (p *TTLStringPolicy) SetExpiry(s string, at uint32) {
	p.expiry[s] = at
}

func (p *TTLStringPolicy) ExpireTime(s string) uint32 { return p.expiry[s] }

// Destroy always clears s's expiry entry, ignoring hadTTL: Set.Erase and
// its TTL-sweep both report hadTTL=false at this call (matching the
// container's origin), so a policy that only cleaned up when hadTTL is
// true would leak an expiry entry for every object it ever set one on.
func (p *TTLStringPolicy) Destroy(s string, hadTTL bool) {
	delete(p.expiry, s)
}
