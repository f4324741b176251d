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
	"fmt"
	"io"
)

// Skip lengths tried in turn after an unknown record, each measured from
// the position the previous attempt reached.
var resyncSkips = []int64{0x6000, 0x1000, 0x5000}

// resync consumes an unknown record and skips its opaque body. The body
// length is not recorded, so fixed lengths are tried until a plausible
// record key follows. If none does, decoding continues after the last one.
func (r *Reader) resync() error {
	start := r.cur.position()
	if _, err := r.cur.read(r.layout.keySize + unknownHeaderSize); err != nil {
		return fmt.Errorf("%w: unknown record at 0x%x: %w", ErrCorruptRecord, start, err)
	}
	for i, n := range resyncSkips {
		if err := r.cur.skip(n); err != nil {
			return fmt.Errorf("%w: unknown record at 0x%x: %w", ErrCorruptRecord, start, err)
		}
		key, err := r.peekKey()
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return fmt.Errorf("%w: unknown record at 0x%x: %w", ErrCorruptRecord, start, err)
		}
		if r.validIndex(key.index) {
			Logger().Debugf("Skipped unknown record at 0x%x (attempt:%d next:0x%x)", start, i+1, r.cur.position())
			return nil
		}
	}
	Logger().Warnf("Unknown record at 0x%x not followed by a valid record, continuing at 0x%x (file:%s)",
		start, r.cur.position(), r.options.path,
	)
	return nil
}

func (r *Reader) validIndex(index int) bool {
	switch {
	case index == unknownIndex, r.isFooter(index), r.channels.has(index):
		return true
	}
	return index > 0 && index <= r.declared
}
