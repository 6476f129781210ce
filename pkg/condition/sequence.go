// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package condition

// Sequence accumulates strings, dropping exact duplicates and keeping
// first-seen order. The zero value is not usable; call NewSequence.
type Sequence struct {
	seen  map[string]struct{}
	items []string
}

// NewSequence returns an empty Sequence.
func NewSequence() *Sequence {
	return &Sequence{
		seen:  make(map[string]struct{}),
		items: make([]string, 0),
	}
}

// Add appends v unless it was added before. It reports whether v was new.
func (q *Sequence) Add(v string) bool {
	if _, ok := q.seen[v]; ok {
		return false
	}
	q.seen[v] = struct{}{}
	q.items = append(q.items, v)
	return true
}

// Values returns a copy of the items in first-seen order. Never nil.
func (q *Sequence) Values() []string {
	out := make([]string, len(q.items))
	copy(out, q.items)
	return out
}
