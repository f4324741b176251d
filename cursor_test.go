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
	"io"
	"testing"
)

func testSource() []byte {
	b := make([]byte, 256)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestCursor(t *testing.T) {
	t.Run("Stream", func(t *testing.T) {
		c := newCursor(struct{ io.Reader }{bytes.NewReader(testSource())}, 16)
		if c.seekable() {
			t.Fatal("Cursor must not be seekable")
		}
		b, err := c.peek(4)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal([]byte{0, 1, 2, 3}, b) || c.position() != 0 {
			t.Errorf("Unexpected peek %v at %d", b, c.position())
		}
		if b, err = c.read(4); err != nil || !bytes.Equal([]byte{0, 1, 2, 3}, b) {
			t.Errorf("Unexpected read %v, %v", b, err)
		}
		if err := c.skip(100); err != nil {
			t.Fatal(err)
		}
		if b, err = c.peek(1); err != nil || b[0] != 104 || c.position() != 104 {
			t.Errorf("Unexpected peek %v at %d", b, c.position())
		}
		if err := c.seekTo(10); !errors.Is(err, ErrInvalidOperation) {
			t.Errorf("Expected ErrInvalidOperation, got %v", err)
		}
		if err := c.seekTo(200); err != nil {
			t.Fatal(err)
		}
		if err := c.skip(100); err != io.ErrUnexpectedEOF {
			t.Errorf("Expected io.ErrUnexpectedEOF, got %v", err)
		}
		if _, err := c.peek(1); err != io.EOF {
			t.Errorf("Expected io.EOF, got %v", err)
		}
	})
	t.Run("Seekable", func(t *testing.T) {
		c := newCursor(bytes.NewReader(testSource()), 16)
		if !c.seekable() {
			t.Fatal("Cursor must be seekable")
		}
		if err := c.skip(100); err != nil {
			t.Fatal(err)
		}
		if b, err := c.read(1); err != nil || b[0] != 100 {
			t.Errorf("Unexpected read %v, %v", b, err)
		}
		if err := c.seekTo(5); err != nil {
			t.Fatal(err)
		}
		if b, err := c.read(2); err != nil || !bytes.Equal([]byte{5, 6}, b) {
			t.Errorf("Unexpected read %v, %v", b, err)
		}
		if err := c.seekTo(254); err != nil {
			t.Fatal(err)
		}
		if _, err := c.peek(4); err != io.ErrUnexpectedEOF {
			t.Errorf("Expected io.ErrUnexpectedEOF, got %v", err)
		}
		if _, err := c.read(4); err != io.ErrUnexpectedEOF {
			t.Errorf("Expected io.ErrUnexpectedEOF, got %v", err)
		}
		if c.position() != 256 {
			t.Errorf("Expected position 256, got %d", c.position())
		}
		if _, err := c.peek(1); err != io.EOF {
			t.Errorf("Expected io.EOF, got %v", err)
		}
		if err := c.seekTo(300); err != io.ErrUnexpectedEOF {
			t.Errorf("Expected io.ErrUnexpectedEOF, got %v", err)
		}
	})
}
