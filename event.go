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
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Event is one decoded data record.
type Event struct {
	// ChannelIndex is the index of the channel the event belongs to. The
	// channel may be unregistered, in which case TypeID is zero.
	ChannelIndex int
	TypeID       uuid.UUID
	// Index is the zero-based ordinal of the event within its channel.
	Index int
	// FrameIndex is the producer's frame counter, read from a 4-byte tag.
	FrameIndex int32
	Ticks      int64
	// DataSize is the size of the payload after decompression.
	DataSize   int
	Unknown    uint32
	Compressed bool
	Tag        []byte
	// Data is the payload as stored in the container.
	Data []byte

	once    sync.Once
	cached  atomic.Bool
	payload []byte
	err     error
}

// RelativeTime returns the event time as a duration from the start of the
// recording.
func (e *Event) RelativeTime() time.Duration {
	return TicksToDuration(e.Ticks)
}

// Payload returns the decompressed payload. The result of the first call is
// cached; uncompressed payloads are returned as stored.
func (e *Event) Payload() ([]byte, error) {
	e.once.Do(func() {
		if !e.Compressed {
			e.payload = e.Data
		} else if b, err := inflate(e.Data, e.DataSize); err != nil {
			e.err = &DecodeError{ChannelIndex: e.ChannelIndex, EventIndex: e.Index, Err: err}
		} else {
			e.payload = b
		}
		e.cached.Store(true)
	})
	return e.payload, e.err
}

// PayloadCached reports whether Payload has already been resolved.
func (e *Event) PayloadCached() bool {
	return e.cached.Load()
}
