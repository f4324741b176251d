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
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Variant is the on-disk layout of a container.
type Variant int

const (
	// VariantAuto selects the layout from the header bytes.
	VariantAuto Variant = iota
	// VariantCurrent has channel descriptions inline in the event region.
	VariantCurrent
	// VariantArchived has a fixed table of channel descriptions in front of
	// the event region.
	VariantArchived
)

func (v Variant) String() string {
	switch v {
	case VariantAuto:
		return "auto"
	case VariantCurrent:
		return "current"
	case VariantArchived:
		return "archived"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// Header layout shared by both variants.
const (
	countOffset = 0x118
	// HeaderSize is the size of the fixed file header. The first record key
	// (current) or the description table marker (archived) follows it.
	HeaderSize = 0x124

	recordHeaderSize  = 20 // size, ticks, unknown, uncompressed size
	unknownHeaderSize = 20 // id, ticks, 2 reserved
	unknownIndex      = -1
)

// Current layout.
const (
	descTagSize         = 20
	descTagTypeIDOffset = 4
	nameFieldSize       = 256
	nameTagSizeOffset   = nameFieldSize
	namePayloadMinSize  = nameFieldSize + 2
	compressedDescExtra = 12
	guidSize            = 16
)

// Archived layout.
const (
	archivedSignature   = -2
	archivedMarkerSize  = 4
	archivedDescOffset  = HeaderSize + archivedMarkerSize
	archivedDescSlots   = 16
	archivedDescSize    = 494
	archivedEventStart  = archivedDescOffset + archivedDescSlots*archivedDescSize
	archivedTypeOffset  = 8
	archivedNameOffset  = 24
	archivedTagOffset   = archivedNameOffset + nameFieldSize
	archivedSemOffset   = archivedTagOffset + 2
	archivedExtraOffset = archivedSemOffset + guidSize
)

// layout holds everything that differs between variants. The decode loop
// itself is shared.
type layout struct {
	variant            Variant
	keySize            int
	compressedFlag     uint32
	eventStart         int64
	defaultTagSize     int
	inlineDescriptions bool
}

var layouts = map[Variant]*layout{
	VariantCurrent: {
		variant:            VariantCurrent,
		keySize:            4,
		compressedFlag:     0x0001,
		eventStart:         HeaderSize,
		defaultTagSize:     descTagSize,
		inlineDescriptions: true,
	},
	VariantArchived: {
		variant:        VariantArchived,
		keySize:        8,
		compressedFlag: 0x0100,
		eventStart:     archivedEventStart,
		defaultTagSize: 0,
	},
}

type recordKey struct {
	index int
	flags uint32
}

func (l *layout) parseKey(b []byte) recordKey {
	if l.keySize == 4 {
		return recordKey{
			index: int(int16(binary.LittleEndian.Uint16(b[0:2]))),
			flags: uint32(binary.LittleEndian.Uint16(b[2:4])),
		}
	}
	return recordKey{
		index: int(int32(binary.LittleEndian.Uint32(b[0:4]))),
		flags: binary.LittleEndian.Uint32(b[4:8]),
	}
}

// DetectVariant inspects the fixed header and the two bytes following it.
func DetectVariant(header []byte) (Variant, error) {
	if len(header) < HeaderSize+2 {
		return VariantAuto, fmt.Errorf("%w: header is %d bytes", ErrCorruptHeader, len(header))
	}
	if int16(binary.LittleEndian.Uint16(header[HeaderSize:])) == archivedSignature {
		return VariantArchived, nil
	}
	return VariantCurrent, nil
}

// parseArchivedDescription decodes one slot of the archived description table.
func (l *layout) parseArchivedDescription(b []byte) (Channel, error) {
	name, err := decodeName(b[archivedNameOffset:archivedTagOffset])
	if err != nil {
		return Channel{}, err
	}
	flags := binary.LittleEndian.Uint32(b[4:8])
	ch := Channel{
		Index:      int(int32(binary.LittleEndian.Uint32(b[0:4]))),
		Flags:      flags,
		Compressed: flags&l.compressedFlag != 0,
		TagSize:    int(int16(binary.LittleEndian.Uint16(b[archivedTagOffset:]))),
		Name:       name,
		TypeID:     GUIDFromBytes(b[archivedTypeOffset:archivedNameOffset]),
		SemanticID: GUIDFromBytes(b[archivedSemOffset:archivedExtraOffset]),
		Extra:      append([]byte(nil), b[archivedExtraOffset:archivedDescSize]...),
	}
	if ch.TagSize < 0 {
		return Channel{}, fmt.Errorf("%w: negative tag size %d on channel %d", ErrCorruptHeader, ch.TagSize, ch.Index)
	}
	return ch, nil
}

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func decodeName(b []byte) (string, error) {
	s, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decoding channel name: %w", err)
	}
	return strings.TrimRight(string(s), "\x00"), nil
}
