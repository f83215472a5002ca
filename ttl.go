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

// expireIfNeeded checks node for expiry and, if it has passed, deletes
// it in place via deleteAt. It is called from every path that
// dereferences a slot (find, findEmptyAround, scan, grow, pop) so that
// expiry is swept opportunistically rather than by a background
// process. Expiry can cascade: if the slot that gets promoted into
// node's place (from a chain collapse) is itself expired, it is reaped
// too. Returns true iff at least one deletion happened; callers that
// hold prev must re-examine node afterwards since its variant may have
// changed (e.g. promoted from link to inline).
func (s *Set[T]) expireIfNeeded(prev, node *slot[T]) bool {
	deleted := false
	for !node.isEmpty() && node.hasTTL() {
		if s.policy.ExpireTime(node.object()) > s.timeNow {
			break
		}
		s.deleteAt(prev, node)
		deleted = true
	}
	return deleted
}
