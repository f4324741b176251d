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

package xefmkv

import (
	"fmt"
	"io"
	"time"

	"github.com/at-wat/ebml-go"
)

type BlockWithBaseTimecode struct {
	Timecode uint64
	Block    ebml.Block
}

func (bt *BlockWithBaseTimecode) AbsTimecode() int64 {
	return int64(bt.Timecode) + int64(bt.Block.Timecode)
}

// Time returns the block time relative to the start of the recording.
func (bt *BlockWithBaseTimecode) Time() time.Duration {
	return time.Duration(bt.AbsTimecode()) * TimecodeScale
}

// Blocks returns every block of the container in order with the timecode of
// its cluster.
func (c *Container) Blocks() []*BlockWithBaseTimecode {
	var blocks []*BlockWithBaseTimecode
	for _, cl := range c.Segment.Cluster {
		for _, b := range cl.SimpleBlock {
			blocks = append(blocks, &BlockWithBaseTimecode{Timecode: cl.Timecode, Block: b})
		}
	}
	return blocks
}

// Track returns the track entry with the given number.
func (c *Container) Track(n uint64) (TrackEntry, bool) {
	for _, t := range c.Segment.Tracks.TrackEntry {
		if t.TrackNumber == n {
			return t, true
		}
	}
	return TrackEntry{}, false
}

// TrackTags returns the simple tags targeting the given track as a map.
func (c *Container) TrackTags(n uint64) map[string]string {
	tags := make(map[string]string)
	for _, t := range c.Segment.Tags.Tag {
		if t.Targets.TagTrackUID != n {
			continue
		}
		for _, st := range t.SimpleTag {
			tags[st.TagName] = st.TagString
		}
	}
	return tags
}

// Read parses a file written by Export.
func Read(r io.Reader) (*Container, error) {
	c := &Container{}
	if err := ebml.Unmarshal(r, c); err != nil {
		return nil, fmt.Errorf("ebml unmarshalling: %w", err)
	}
	return c, nil
}
