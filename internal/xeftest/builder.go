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

// Package xeftest builds containers in memory for tests.
package xeftest

import (
	"bytes"
	"encoding/binary"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zlib"
	"golang.org/x/text/encoding/unicode"
)

const (
	HeaderSize         = 0x124
	ArchivedEventStart = 0x2008
	RecordHeaderSize   = 20
	UnknownHeaderSize  = 20
	NameRecordSize     = 258

	CompressedFlag         = 0x0001
	ArchivedCompressedFlag = 0x0100

	archivedSlots    = 16
	archivedSlotSize = 494
	countOffset      = 0x118
	filler           = 0xEE
)

// Layout selects the container variant to build.
type Layout int

const (
	Current Layout = iota
	Archived
)

// Channel is a channel description to write.
type Channel struct {
	Index      int
	Flags      uint32
	TagSize    int
	Name       string
	TypeID     uuid.UUID
	SemanticID uuid.UUID
	Extra      []byte
}

// Builder appends records to an in-memory container.
type Builder struct {
	layout   Layout
	count    int32
	dataSize int64
	preamble []byte
	channels []Channel
	body     bytes.Buffer
}

// BuilderOption is functional option type of Builder.
type BuilderOption func(*Builder)

// WithDataSize sets the total data size written to the header.
func WithDataSize(n int64) BuilderOption {
	return func(b *Builder) {
		b.dataSize = n
	}
}

// WithPreamble sets the leading header bytes.
func WithPreamble(p []byte) BuilderOption {
	return func(b *Builder) {
		b.preamble = p
	}
}

// NewBuilder starts a container with inline descriptions. reportedCount is
// written to the header as is.
func NewBuilder(reportedCount int32, opts ...BuilderOption) *Builder {
	b := &Builder{layout: Current, count: reportedCount, dataSize: -1}
	for _, o := range opts {
		o(b)
	}
	return b
}

// NewArchivedBuilder starts a container with a description table.
func NewArchivedBuilder(channels []Channel, opts ...BuilderOption) *Builder {
	b := &Builder{layout: Archived, channels: channels, dataSize: -1}
	for _, o := range opts {
		o(b)
	}
	return b
}

// KeySize returns the size of a record key.
func (b *Builder) KeySize() int {
	if b.layout == Archived {
		return 8
	}
	return 4
}

// Offset returns the absolute offset the next record is written at.
func (b *Builder) Offset() int64 {
	if b.layout == Archived {
		return ArchivedEventStart + int64(b.body.Len())
	}
	return HeaderSize + int64(b.body.Len())
}

// Description writes an inline channel description keyed by its own index.
func (b *Builder) Description(ch Channel) *Builder {
	return b.DescriptionWithKey(ch.Index, ch)
}

// DescriptionWithKey writes an inline channel description under the given
// record key.
func (b *Builder) DescriptionWithKey(key int, ch Channel) *Builder {
	tag := make([]byte, 20)
	binary.LittleEndian.PutUint16(tag[0:], uint16(int16(ch.Index)))
	binary.LittleEndian.PutUint16(tag[2:], uint16(ch.Flags))
	g := GUIDBytes(ch.TypeID)
	copy(tag[4:], g[:])

	name := make([]byte, NameRecordSize)
	copy(name[:256], EncodeName(ch.Name))
	binary.LittleEndian.PutUint16(name[256:], uint16(int16(ch.TagSize)))
	b.Event(key, 0, tag, name)

	if ch.Flags&CompressedFlag != 0 {
		extra := make([]byte, 12)
		copy(extra, ch.Extra)
		b.body.Write(extra)
	}
	s := GUIDBytes(ch.SemanticID)
	return b.Event(0, 0, make([]byte, 20), s[:])
}

// Event writes a data record whose stored and inflated sizes are len(data).
func (b *Builder) Event(index int, ticks int64, tag, data []byte) *Builder {
	return b.Record(index, ticks, uint32(len(data)), uint32(len(data)), tag, data)
}

// CompressedEvent writes a data record holding plain compressed.
func (b *Builder) CompressedEvent(index int, ticks int64, tag, plain []byte) *Builder {
	z := Compress(plain)
	return b.Record(index, ticks, uint32(len(z)), uint32(len(plain)), tag, z)
}

// Record writes a record with explicit header sizes. data is written as
// given regardless of size.
func (b *Builder) Record(index int, ticks int64, size, fullSize uint32, tag, data []byte) *Builder {
	b.key(index)
	var h [RecordHeaderSize]byte
	binary.LittleEndian.PutUint32(h[0:], size)
	binary.LittleEndian.PutUint64(h[4:], uint64(ticks))
	binary.LittleEndian.PutUint32(h[16:], fullSize)
	b.body.Write(h[:])
	b.body.Write(tag)
	b.body.Write(data)
	return b
}

// Unknown writes an unknown record followed by bodySize filler bytes.
func (b *Builder) Unknown(bodySize int) *Builder {
	b.key(-1)
	b.body.Write(make([]byte, UnknownHeaderSize))
	b.body.Write(bytes.Repeat([]byte{filler}, bodySize))
	return b
}

// Footer writes a footer record key.
func (b *Builder) Footer(index int) *Builder {
	b.key(index)
	b.body.Write(make([]byte, RecordHeaderSize))
	return b
}

// Raw appends p as is.
func (b *Builder) Raw(p []byte) *Builder {
	b.body.Write(p)
	return b
}

func (b *Builder) key(index int) {
	if b.layout == Archived {
		var k [8]byte
		binary.LittleEndian.PutUint32(k[0:], uint32(int32(index)))
		b.body.Write(k[:])
		return
	}
	var k [4]byte
	binary.LittleEndian.PutUint16(k[0:], uint16(int16(index)))
	b.body.Write(k[:])
}

// Bytes returns the complete container.
func (b *Builder) Bytes() []byte {
	var out bytes.Buffer
	pre := make([]byte, countOffset)
	copy(pre, b.preamble)
	out.Write(pre)

	dataSize := b.dataSize
	if dataSize < 0 {
		dataSize = int64(b.body.Len())
	}
	var h [12]byte
	binary.LittleEndian.PutUint32(h[0:], uint32(b.count))
	binary.LittleEndian.PutUint64(h[4:], uint64(dataSize))
	out.Write(h[:])

	if b.layout == Archived {
		var m [4]byte
		binary.LittleEndian.PutUint16(m[0:], uint16(0xFFFE))
		binary.LittleEndian.PutUint16(m[2:], uint16(len(b.channels)))
		out.Write(m[:])
		table := make([]byte, archivedSlots*archivedSlotSize)
		for i, ch := range b.channels {
			if i == archivedSlots {
				break
			}
			putArchivedSlot(table[i*archivedSlotSize:(i+1)*archivedSlotSize], ch)
		}
		out.Write(table)
	}
	out.Write(b.body.Bytes())
	return out.Bytes()
}

func putArchivedSlot(s []byte, ch Channel) {
	binary.LittleEndian.PutUint32(s[0:], uint32(int32(ch.Index)))
	binary.LittleEndian.PutUint32(s[4:], ch.Flags)
	g := GUIDBytes(ch.TypeID)
	copy(s[8:24], g[:])
	copy(s[24:280], EncodeName(ch.Name))
	binary.LittleEndian.PutUint16(s[280:], uint16(int16(ch.TagSize)))
	sem := GUIDBytes(ch.SemanticID)
	copy(s[282:298], sem[:])
	copy(s[298:], ch.Extra)
}

// EncodeName encodes a channel name as UTF-16LE.
func EncodeName(name string) []byte {
	b, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(name))
	if err != nil {
		panic(err)
	}
	return b
}

// GUIDBytes encodes u in the Windows mixed-endian layout.
func GUIDBytes(u uuid.UUID) [16]byte {
	var b [16]byte
	b[0], b[1], b[2], b[3] = u[3], u[2], u[1], u[0]
	b[4], b[5] = u[5], u[4]
	b[6], b[7] = u[7], u[6]
	copy(b[8:], u[8:])
	return b
}

// Compress returns plain as a compressed payload: a 2-byte stream header
// followed by deflate data.
func Compress(plain []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(plain); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
