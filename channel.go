// Copyright 2026 SEQSENSE, Inc.
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

package xef

import (
	"sort"

	"github.com/google/uuid"
)

// Channel describes one stream of events in a container.
type Channel struct {
	Index      int
	Flags      uint32
	Compressed bool
	// TagSize is the number of per-event metadata bytes in front of each
	// payload on this channel.
	TagSize    int
	Name       string
	TypeID     uuid.UUID
	SemanticID uuid.UUID
	// EventCount is the number of events decoded so far on this channel.
	EventCount int
	// Extra keeps the reserved bytes of the description as read.
	Extra []byte
}

func (c Channel) String() string {
	if c.Name != "" {
		return c.Name
	}
	return TypeName(c.TypeID)
}

// channelTable is an index-addressed arena of channels. Entries are only
// added.
type channelTable struct {
	entries     []Channel
	slots       map[int]int
	descriptors map[int64]struct{}
}

func newChannelTable() *channelTable {
	return &channelTable{
		slots:       make(map[int]int),
		descriptors: make(map[int64]struct{}),
	}
}

func (t *channelTable) has(index int) bool {
	_, ok := t.slots[index]
	return ok
}

// lookup returns a pointer into the arena. It is valid until the next add.
func (t *channelTable) lookup(index int) (*Channel, bool) {
	i, ok := t.slots[index]
	if !ok {
		return nil, false
	}
	return &t.entries[i], true
}

// add registers a channel. It reports false if the index is already taken,
// in which case the table is left unchanged.
func (t *channelTable) add(c Channel) bool {
	if _, ok := t.slots[c.Index]; ok {
		return false
	}
	t.slots[c.Index] = len(t.entries)
	t.entries = append(t.entries, c)
	return true
}

// markDescriptor remembers the offset of a description record so that it is
// recognized again after a rewind.
func (t *channelTable) markDescriptor(pos int64) {
	t.descriptors[pos] = struct{}{}
}

func (t *channelTable) isDescriptor(pos int64) bool {
	_, ok := t.descriptors[pos]
	return ok
}

func (t *channelTable) len() int {
	return len(t.entries)
}

func (t *channelTable) list() []Channel {
	out := make([]Channel, len(t.entries))
	copy(out, t.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

func (t *channelTable) resetCounts() {
	for i := range t.entries {
		t.entries[i].EventCount = 0
	}
}
