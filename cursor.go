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
	"bufio"
	"errors"
	"fmt"
	"io"
)

const defaultBufferSize = 64 * 1024

// cursor tracks the logical position over a buffered source. Seekable
// sources jump directly; forward-only sources discard.
type cursor struct {
	br  *bufio.Reader
	rs  io.ReadSeeker
	end int64
	pos int64
}

func newCursor(r io.Reader, size int) *cursor {
	c := &cursor{}
	if rs, ok := r.(io.ReadSeeker); ok {
		if end, err := rs.Seek(0, io.SeekEnd); err == nil {
			if _, err := rs.Seek(0, io.SeekStart); err == nil {
				c.rs = rs
				c.end = end
			}
		}
	}
	c.br = bufio.NewReaderSize(r, size)
	return c
}

func (c *cursor) seekable() bool {
	return c.rs != nil
}

func (c *cursor) position() int64 {
	return c.pos
}

// peek returns the next n bytes without consuming them. io.EOF is returned
// only when the source is exhausted exactly at the current position.
func (c *cursor) peek(n int) ([]byte, error) {
	b, err := c.br.Peek(n)
	switch {
	case err == nil:
		return b, nil
	case errors.Is(err, io.EOF) && len(b) == 0:
		return nil, io.EOF
	case errors.Is(err, io.EOF):
		return nil, io.ErrUnexpectedEOF
	}
	return nil, err
}

// read consumes exactly n bytes into a new slice.
func (c *cursor) read(n int) ([]byte, error) {
	b := make([]byte, n)
	k, err := io.ReadFull(c.br, b)
	c.pos += int64(k)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// skip advances n bytes from the current position.
func (c *cursor) skip(n int64) error {
	if n < 0 {
		return c.seekTo(c.pos + n)
	}
	if c.rs != nil && n > int64(c.br.Buffered()) {
		return c.jump(c.pos + n)
	}
	for n > 0 {
		k := n
		if k > 1<<30 {
			k = 1 << 30
		}
		d, err := c.br.Discard(int(k))
		c.pos += int64(d)
		n -= int64(d)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return io.ErrUnexpectedEOF
			}
			return err
		}
	}
	return nil
}

// seekTo moves to an absolute position.
func (c *cursor) seekTo(pos int64) error {
	switch {
	case pos == c.pos:
		return nil
	case pos > c.pos:
		return c.skip(pos - c.pos)
	case c.rs == nil:
		return fmt.Errorf("%w: seek from 0x%x back to 0x%x on forward-only source",
			ErrInvalidOperation, c.pos, pos,
		)
	}
	return c.jump(pos)
}

// jump seeks the source. Seeking beyond the end fails like a discard
// running out of data would.
func (c *cursor) jump(pos int64) error {
	if pos > c.end {
		return io.ErrUnexpectedEOF
	}
	if _, err := c.rs.Seek(pos, io.SeekStart); err != nil {
		return err
	}
	c.br.Reset(c.rs)
	c.pos = pos
	return nil
}
