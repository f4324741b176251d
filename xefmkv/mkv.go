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
	"github.com/at-wat/ebml-go"
)

// Tag names written for each exported channel.
const (
	TagNameChannelIndex = "XEF_CHANNEL_INDEX"
	TagNameTypeID       = "XEF_TYPE_ID"
	TagNameSemanticID   = "XEF_SEMANTIC_ID"
	TagNameTagSize      = "XEF_TAG_SIZE"
	TagNameCompressed   = "XEF_COMPRESSED"
	TagNameEventCount   = "XEF_EVENT_COUNT"
)

type EBMLHeader struct {
	EBMLVersion            uint64
	EBMLReadVersion        uint64
	EBMLMaxIDLength        uint64
	EBMLMaxSizeLength      uint64
	EBMLDocType            string
	EBMLDocTypeVersion     uint64
	EBMLDocTypeReadVersion uint64
}
type Info struct {
	TimecodeScale   uint64
	SegmentUID      []byte
	SegmentFilename string `ebml:",omitempty"`
	Title           string `ebml:",omitempty"`
	MuxingApp       string
	WritingApp      string
}
type TrackEntry struct {
	Name        string
	TrackNumber uint64
	TrackUID    uint64
	CodecID     string
	TrackType   uint64
}
type Tracks struct {
	TrackEntry []TrackEntry
}
type Cluster struct {
	Timecode    uint64
	SimpleBlock []ebml.Block
}
type SimpleTag struct {
	TagName   string
	TagString string `ebml:",omitempty"`
	TagBinary string `ebml:",omitempty"`
}
type Targets struct {
	TagTrackUID uint64
}
type Tag struct {
	Targets   Targets
	SimpleTag []SimpleTag
}
type Tags struct {
	Tag []Tag
}
type Segment struct {
	Info    Info
	Tracks  Tracks
	Tags    Tags
	Cluster []Cluster
}
type SegmentWrite struct {
	Info    Info
	Tracks  Tracks
	Tags    Tags
	Cluster chan *Cluster
}
type Container struct {
	Header  EBMLHeader `ebml:"EBML"`
	Segment Segment    `ebml:",size=unknown"`
}
type ContainerWrite struct {
	Header  EBMLHeader   `ebml:"EBML"`
	Segment SegmentWrite `ebml:",size=unknown"`
}
