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
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when the container is not of the
	// requested (or any known) layout variant.
	ErrUnsupportedFormat = errors.New("unsupported xef format")
	// ErrCorruptHeader is returned when the fixed header or description
	// table cannot be read.
	ErrCorruptHeader = errors.New("corrupt xef header")
	// ErrCorruptRecord marks a record that cannot be framed.
	ErrCorruptRecord = errors.New("corrupt xef record")
	// ErrNotSupported is returned by operations that need to rewind a
	// non-seekable source.
	ErrNotSupported = errors.New("operation not supported on non-seekable source")
	// ErrInvalidOperation is returned when a forward-only cursor is asked to
	// move backward.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrPayloadSize is returned when an inflated payload does not fill the
	// declared uncompressed size.
	ErrPayloadSize = errors.New("inflated payload size mismatch")
	// ErrClosed is returned after the reader has been closed.
	ErrClosed = errors.New("reader closed")
)

// DecodeError describes a failure bound to a single event.
type DecodeError struct {
	ChannelIndex int
	EventIndex   int
	Err          error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("channel:%d event:%d: %v", e.ChannelIndex, e.EventIndex, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
