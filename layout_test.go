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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDetectVariant(t *testing.T) {
	header := func(b0, b1 byte) []byte {
		h := make([]byte, HeaderSize+2)
		h[HeaderSize], h[HeaderSize+1] = b0, b1
		return h
	}
	testCases := map[string]struct {
		header   []byte
		expected Variant
		err      error
	}{
		"Current":  {header: header(0x01, 0x00), expected: VariantCurrent},
		"Unknown":  {header: header(0xFF, 0xFF), expected: VariantCurrent},
		"Archived": {header: header(0xFE, 0xFF), expected: VariantArchived},
		"Short":    {header: make([]byte, HeaderSize), expected: VariantAuto, err: ErrCorruptHeader},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			v, err := DetectVariant(tt.header)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Expected error '%v', got '%v'", tt.err, err)
			}
			if v != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, v)
			}
		})
	}
}

func TestLayout_ParseKey(t *testing.T) {
	testCases := map[string]struct {
		variant  Variant
		key      []byte
		expected recordKey
	}{
		"Current": {
			variant:  VariantCurrent,
			key:      []byte{0x02, 0x00, 0x01, 0x00},
			expected: recordKey{index: 2, flags: 1},
		},
		"CurrentUnknown": {
			variant:  VariantCurrent,
			key:      []byte{0xFF, 0xFF, 0x00, 0x00},
			expected: recordKey{index: -1},
		},
		"Archived": {
			variant:  VariantArchived,
			key:      []byte{0x10, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00},
			expected: recordKey{index: 16, flags: 0x100},
		},
		"ArchivedUnknown": {
			variant:  VariantArchived,
			key:      []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00},
			expected: recordKey{index: -1},
		},
	}
	for name, tt := range testCases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			k := layouts[tt.variant].parseKey(tt.key)
			if diff := cmp.Diff(tt.expected, k, cmp.AllowUnexported(recordKey{})); diff != "" {
				t.Errorf("Unexpected key (-want +got):\n%s", diff)
			}
		})
	}
}

func TestArchivedEventStart(t *testing.T) {
	if archivedEventStart != 0x2008 {
		t.Errorf("Expected archived events at 0x2008, got 0x%x", archivedEventStart)
	}
}

func TestDecodeName(t *testing.T) {
	b := make([]byte, 256)
	copy(b, []byte{'N', 0, 'u', 0, 'i', 0, ' ', 0, 0xB3, 0x30})
	name, err := decodeName(b)
	if err != nil {
		t.Fatal(err)
	}
	if name != "Nui コ" {
		t.Errorf("Unexpected name %q", name)
	}
}
