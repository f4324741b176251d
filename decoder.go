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
	"encoding/binary"
	"fmt"
	"io"
)

type record struct {
	key      recordKey
	size     uint32
	ticks    int64
	unknown  uint32
	fullSize uint32
	tag      []byte
	data     []byte
}

// decodeNext consumes description and unknown records until a data record
// is decoded.
func (r *Reader) decodeNext() (*Event, error) {
	for {
		pos := r.cur.position()
		key, err := r.peekKey()
		if err != nil {
			return nil, err
		}
		switch {
		case key.index == unknownIndex:
			if err := r.resync(); err != nil {
				return nil, err
			}
		case r.isFooter(key.index):
			Logger().Debugf("Footer record at 0x%x (file:%s)", pos, r.options.path)
			return nil, io.EOF
		case r.layout.inlineDescriptions &&
			(!r.channels.has(key.index) || r.channels.isDescriptor(pos)):
			if err := r.readDescription(); err != nil {
				return nil, err
			}
		default:
			return r.readData(key)
		}
	}
}

func (r *Reader) peekKey() (recordKey, error) {
	b, err := r.cur.peek(r.layout.keySize)
	if err == io.EOF {
		return recordKey{}, io.EOF
	}
	if err != nil {
		return recordKey{}, fmt.Errorf("%w: record key at 0x%x: %w", ErrCorruptRecord, r.cur.position(), err)
	}
	return r.layout.parseKey(b), nil
}

func (r *Reader) isFooter(index int) bool {
	return index == r.declared+1
}

func (r *Reader) readRecord(tagSize int) (*record, error) {
	pos := r.cur.position()
	b, err := r.cur.read(r.layout.keySize + recordHeaderSize)
	if err != nil {
		return nil, fmt.Errorf("%w: record header at 0x%x: %w", ErrCorruptRecord, pos, err)
	}
	h := b[r.layout.keySize:]
	rec := &record{
		key:      r.layout.parseKey(b),
		size:     binary.LittleEndian.Uint32(h[0:4]),
		ticks:    int64(binary.LittleEndian.Uint64(h[4:12])),
		unknown:  binary.LittleEndian.Uint32(h[12:16]),
		fullSize: binary.LittleEndian.Uint32(h[16:20]),
	}
	if int64(rec.size) > r.options.maxRecordSize {
		return nil, fmt.Errorf("%w: %d byte payload at 0x%x exceeds limit of %d",
			ErrCorruptRecord, rec.size, pos, r.options.maxRecordSize,
		)
	}
	if tagSize > 0 {
		if rec.tag, err = r.cur.read(tagSize); err != nil {
			return nil, fmt.Errorf("%w: record tag at 0x%x: %w", ErrCorruptRecord, pos, err)
		}
	}
	if rec.data, err = r.cur.read(int(rec.size)); err != nil {
		return nil, fmt.Errorf("%w: record payload at 0x%x: %w", ErrCorruptRecord, pos, err)
	}
	return rec, nil
}

func (r *Reader) readData(key recordKey) (*Event, error) {
	ch, ok := r.channels.lookup(key.index)
	tagSize := r.layout.defaultTagSize
	if ok {
		tagSize = ch.TagSize
	}
	rec, err := r.readRecord(tagSize)
	if err != nil {
		return nil, err
	}
	e := &Event{
		ChannelIndex: key.index,
		Ticks:        rec.ticks,
		DataSize:     int(rec.fullSize),
		Unknown:      rec.unknown,
		Tag:          rec.tag,
		Data:         rec.data,
	}
	if !ok {
		return e, nil
	}
	if ch.Compressed && int64(rec.fullSize) > r.options.maxRecordSize {
		return nil, fmt.Errorf("%w: %d byte inflated size of event %d on channel %d exceeds limit of %d",
			ErrCorruptRecord, rec.fullSize, ch.EventCount, ch.Index, r.options.maxRecordSize,
		)
	}
	if len(rec.tag) == 4 {
		e.FrameIndex = int32(binary.LittleEndian.Uint32(rec.tag))
	}
	if ch.Compressed && rec.fullSize == rec.size {
		if r.options.strict {
			return nil, fmt.Errorf("%w: compressed event %d on channel %d has equal stored and inflated size",
				ErrCorruptRecord, ch.EventCount, ch.Index,
			)
		}
		Logger().Warnf("Compressed event has equal stored and inflated size (channel:%d event:%d size:%d)",
			ch.Index, ch.EventCount, rec.size,
		)
	}
	e.TypeID = ch.TypeID
	e.Compressed = ch.Compressed
	e.Index = ch.EventCount
	ch.EventCount++
	return e, nil
}

// readDescription consumes a channel description: a name record, reserved
// bytes for compressed channels and a semantic identifier record.
func (r *Reader) readDescription() error {
	pos := r.cur.position()
	name, err := r.readRecord(descTagSize)
	if err != nil {
		return err
	}
	if len(name.data) < namePayloadMinSize {
		return fmt.Errorf("%w: %d byte channel description at 0x%x", ErrCorruptRecord, len(name.data), pos)
	}
	chName, err := decodeName(name.data[:nameFieldSize])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}
	flags := uint32(binary.LittleEndian.Uint16(name.tag[2:4]))
	ch := Channel{
		Index:      int(int16(binary.LittleEndian.Uint16(name.tag[0:2]))),
		Flags:      flags,
		Compressed: flags&r.layout.compressedFlag != 0,
		TagSize:    int(int16(binary.LittleEndian.Uint16(name.data[nameTagSizeOffset:]))),
		Name:       chName,
		TypeID:     GUIDFromBytes(name.tag[descTagTypeIDOffset:descTagSize]),
	}
	if ch.TagSize < 0 {
		return fmt.Errorf("%w: negative tag size %d on channel %d", ErrCorruptRecord, ch.TagSize, ch.Index)
	}
	if ch.Compressed {
		if ch.Extra, err = r.cur.read(compressedDescExtra); err != nil {
			return fmt.Errorf("%w: channel description at 0x%x: %w", ErrCorruptRecord, pos, err)
		}
	}
	sem, err := r.readRecord(descTagSize)
	if err != nil {
		return err
	}
	if len(sem.data) < guidSize {
		return fmt.Errorf("%w: %d byte semantic identifier at 0x%x", ErrCorruptRecord, len(sem.data), pos)
	}
	ch.SemanticID = GUIDFromBytes(sem.data[:guidSize])

	r.channels.markDescriptor(pos)
	if !r.channels.add(ch) {
		Logger().Debugf("Channel %d already registered, description at 0x%x ignored", ch.Index, pos)
		return nil
	}
	Logger().Debugf("Registered channel %d %q (type:%s tag:%d compressed:%v)",
		ch.Index, ch.Name, TypeName(ch.TypeID), ch.TagSize, ch.Compressed,
	)
	return nil
}

func (r *Reader) readDescriptionTable() error {
	marker, err := r.cur.read(archivedMarkerSize)
	if err != nil {
		return fmt.Errorf("%w: description table: %w", ErrCorruptHeader, err)
	}
	count := int(binary.LittleEndian.Uint16(marker[2:4]))
	if count > archivedDescSlots {
		return fmt.Errorf("%w: %d channel descriptions, at most %d fit",
			ErrCorruptHeader, count, archivedDescSlots,
		)
	}
	for i := 0; i < count; i++ {
		b, err := r.cur.read(archivedDescSize)
		if err != nil {
			return fmt.Errorf("%w: channel description %d: %w", ErrCorruptHeader, i, err)
		}
		ch, err := r.layout.parseArchivedDescription(b)
		if err != nil {
			return err
		}
		if !r.channels.add(ch) {
			Logger().Debugf("Channel %d already registered, description %d ignored", ch.Index, i)
			continue
		}
		Logger().Debugf("Registered channel %d %q (type:%s tag:%d compressed:%v)",
			ch.Index, ch.Name, TypeName(ch.TypeID), ch.TagSize, ch.Compressed,
		)
	}
	r.declared = count
	r.countKnown = true
	return nil
}
