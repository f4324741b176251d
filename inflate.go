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
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// Compressed payloads carry a 2-byte stream header in front of the raw
// deflate data.
const compressedHeaderSize = 2

func inflate(raw []byte, size int) ([]byte, error) {
	if len(raw) < compressedHeaderSize {
		return nil, fmt.Errorf("%w: %d byte compressed payload", ErrCorruptRecord, len(raw))
	}
	fr := flate.NewReader(bytes.NewReader(raw[compressedHeaderSize:]))
	defer fr.Close()

	out := make([]byte, size)
	n, err := io.ReadFull(fr, out)
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return nil, fmt.Errorf("%w: inflated %d of %d bytes", ErrPayloadSize, n, size)
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}
	return out, nil
}
