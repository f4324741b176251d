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

// Package xefmkv exports decoded events to Matroska.
package xefmkv

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/at-wat/ebml-go"
	"github.com/google/uuid"

	"github.com/seqsense/xef"
)

// TimecodeScale is the Matroska timecode unit in nanoseconds.
const TimecodeScale = 1000000

const (
	// DefaultClusterDuration is the longest block offset from its cluster
	// timecode, in milliseconds.
	DefaultClusterDuration = 9000
	// MaxClusterDuration is the largest cluster window representable by a
	// block's signed 16-bit relative timecode.
	MaxClusterDuration = math.MaxInt16
	// DefaultMaxClusterSize is the payload size after which a new cluster is
	// started.
	DefaultMaxClusterSize = 8 << 20

	trackTypeMetadata = 0x21
	ticksPerTimecode  = TimecodeScale / 100
	muxingApp         = "xefmkv.Export"
)

// ExportOptions stores Export options.
type ExportOptions struct {
	segmentUID      []byte
	title           string
	inflate         bool
	typeIDs         []uuid.UUID
	clusterDuration int64
	maxClusterSize  int
}

// ExportOption is functional option type of Export.
type ExportOption func(*ExportOptions)

func WithSegmentUID(segmentUID []byte) ExportOption {
	return func(p *ExportOptions) {
		p.segmentUID = segmentUID
	}
}

func WithTitle(title string) ExportOption {
	return func(p *ExportOptions) {
		p.title = title
	}
}

// WithInflate writes decompressed payloads instead of stored data.
func WithInflate(inflate bool) ExportOption {
	return func(p *ExportOptions) {
		p.inflate = inflate
	}
}

// WithTypes exports only channels of the given types.
func WithTypes(typeIDs ...uuid.UUID) ExportOption {
	return func(p *ExportOptions) {
		p.typeIDs = typeIDs
	}
}

// WithClusterDuration sets the cluster window in milliseconds. Values above
// MaxClusterDuration are clamped.
func WithClusterDuration(ms int64) ExportOption {
	return func(p *ExportOptions) {
		p.clusterDuration = ms
	}
}

func WithMaxClusterSize(n int) ExportOption {
	return func(p *ExportOptions) {
		p.maxClusterSize = n
	}
}

// Export writes every event of r as a Matroska block, one metadata track
// per channel. The reader must be seekable; channels are discovered by a
// first pass over the container.
func Export(w io.Writer, r *xef.Reader, opts ...ExportOption) error {
	options := &ExportOptions{
		title:           r.FilePath(),
		clusterDuration: DefaultClusterDuration,
		maxClusterSize:  DefaultMaxClusterSize,
	}
	for _, o := range opts {
		o(options)
	}
	if options.clusterDuration > MaxClusterDuration {
		options.clusterDuration = MaxClusterDuration
	}
	if options.segmentUID == nil {
		var err error
		options.segmentUID, err = generateRandomUUID()
		if err != nil {
			return err
		}
	}

	channels, err := r.ScanChannels()
	if err != nil {
		return fmt.Errorf("scanning channels: %w", err)
	}
	var tracks []TrackEntry
	var tags []Tag
	trackNumbers := make(map[int]uint64)
	for _, ch := range channels {
		if !selected(options.typeIDs, ch.TypeID) {
			continue
		}
		n := uint64(len(tracks) + 1)
		trackNumbers[ch.Index] = n
		tracks = append(tracks, TrackEntry{
			Name:        ch.String(),
			TrackNumber: n,
			TrackUID:    n,
			CodecID:     "M_XEF/" + xef.TypeName(ch.TypeID),
			TrackType:   trackTypeMetadata,
		})
		tags = append(tags, channelTag(n, ch))
	}

	chCluster := make(chan *Cluster)
	data := &ContainerWrite{
		Header: EBMLHeader{
			EBMLVersion:            1,
			EBMLReadVersion:        1,
			EBMLMaxIDLength:        4,
			EBMLMaxSizeLength:      8,
			EBMLDocType:            "matroska",
			EBMLDocTypeVersion:     2,
			EBMLDocTypeReadVersion: 2,
		},
		Segment: SegmentWrite{
			Info: Info{
				SegmentUID:    options.segmentUID,
				TimecodeScale: TimecodeScale,
				Title:         options.title,
				MuxingApp:     muxingApp,
				WritingApp:    muxingApp,
			},
			Tracks:  Tracks{TrackEntry: tracks},
			Tags:    Tags{Tag: tags},
			Cluster: chCluster,
		},
	}

	var errPayload error
	go func() {
		defer close(chCluster)
		errPayload = clusterize(r, chCluster, trackNumbers, options)
	}()

	iw := &ignoreErrWriter{Writer: w}
	buf := bufio.NewWriter(iw)
	errMarshal := ebml.Marshal(data, buf)
	for range chCluster {
	}
	if errMarshal != nil {
		return fmt.Errorf("ebml marshalling: %w", errMarshal)
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("buffer flushing: %w", err)
	}
	if err := iw.Err(); err != nil {
		return fmt.Errorf("writing: %w", err)
	}
	if r.StreamError() {
		return fmt.Errorf("reading events: %w", r.Err())
	}
	return errPayload
}

// clusterize groups events into clusters. A new cluster starts when a block
// would fall outside the cluster window or the cluster has grown too large.
func clusterize(r *xef.Reader, ch chan<- *Cluster, tracks map[int]uint64, opts *ExportOptions) error {
	var errPayload error
	var cur *Cluster
	var size int
	for {
		e, err := r.NextEvent()
		if err != nil {
			break
		}
		track, ok := tracks[e.ChannelIndex]
		if !ok {
			continue
		}
		payload := e.Data
		if opts.inflate {
			if payload, err = e.Payload(); err != nil {
				xef.Logger().Warnf("Skipping event (file:%s): %v", r.FilePath(), err)
				if errPayload == nil {
					errPayload = err
				}
				continue
			}
		}
		tc := ticksToTimecode(e.Ticks)
		if cur != nil {
			rel := tc - int64(cur.Timecode)
			if rel < 0 || rel > opts.clusterDuration || size >= opts.maxClusterSize {
				ch <- cur
				cur = nil
			}
		}
		if cur == nil {
			cur = &Cluster{Timecode: uint64(tc)}
			size = 0
		}
		cur.SimpleBlock = append(cur.SimpleBlock, ebml.Block{
			TrackNumber: track,
			Timecode:    int16(tc - int64(cur.Timecode)),
			Keyframe:    true,
			Data:        [][]byte{payload},
		})
		size += len(payload)
	}
	if cur != nil {
		ch <- cur
	}
	return errPayload
}

func ticksToTimecode(ticks int64) int64 {
	if ticks < 0 {
		return 0
	}
	return ticks / ticksPerTimecode
}

func channelTag(track uint64, ch xef.Channel) Tag {
	return Tag{
		Targets: Targets{TagTrackUID: track},
		SimpleTag: []SimpleTag{
			{TagName: TagNameChannelIndex, TagString: strconv.Itoa(ch.Index)},
			{TagName: TagNameTypeID, TagString: ch.TypeID.String()},
			{TagName: TagNameSemanticID, TagString: ch.SemanticID.String()},
			{TagName: TagNameTagSize, TagString: strconv.Itoa(ch.TagSize)},
			{TagName: TagNameCompressed, TagString: strconv.FormatBool(ch.Compressed)},
			{TagName: TagNameEventCount, TagString: strconv.Itoa(ch.EventCount)},
		},
	}
}

func selected(ids []uuid.UUID, id uuid.UUID) bool {
	if len(ids) == 0 {
		return true
	}
	for _, t := range ids {
		if t == id {
			return true
		}
	}
	return false
}

func generateRandomUUID() ([]byte, error) {
	return uuid.New().MarshalBinary()
}
