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
	"math"
	"os"

	"github.com/google/uuid"
)

// Reader decodes events from a container in file order.
//
// Decoding stops at the footer record or at the end of the source. A record
// that cannot be framed stops decoding softly: StreamError is set, Err holds
// the cause and NextEvent returns io.EOF. Reader is not safe for concurrent
// use.
type Reader struct {
	options ReaderOptions
	closer  io.Closer
	cur     *cursor
	layout  *layout

	preamble   []byte
	declared   int
	countKnown bool
	dataSize   int64

	channels  *channelTable
	current   *Event
	eos       bool
	streamErr bool
	err       error
	closed    bool
}

// Open opens the container at path.
func Open(path string, opts ...ReaderOption) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewReader(f, append([]ReaderOption{WithFilePath(path)}, opts...)...)
}

// NewReader reads the container header from r. If r implements io.Seeker
// and the seek succeeds, the reader can rewind. If r implements io.Closer,
// it is closed by Close, or immediately if the header cannot be read.
func NewReader(r io.Reader, opts ...ReaderOption) (*Reader, error) {
	options := ReaderOptions{
		variant:       VariantAuto,
		maxRecordSize: DefaultMaxRecordSize,
		bufferSize:    defaultBufferSize,
	}
	for _, o := range opts {
		o(&options)
	}

	rd := &Reader{
		options:  options,
		channels: newChannelTable(),
	}
	if c, ok := r.(io.Closer); ok {
		rd.closer = c
	}
	if options.forwardOnly {
		r = struct{ io.Reader }{r}
	}
	rd.cur = newCursor(r, options.bufferSize)

	if err := rd.open(); err != nil {
		if rd.closer != nil {
			rd.closer.Close()
		}
		return nil, err
	}
	return rd, nil
}

// NewStreamReader reads the container from a forward-only source.
func NewStreamReader(r io.Reader, opts ...ReaderOption) (*Reader, error) {
	return NewReader(r, append(opts, WithForwardOnly())...)
}

func (r *Reader) open() error {
	hdr, err := r.cur.read(HeaderSize)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptHeader, err)
	}
	next, err := r.cur.peek(2)
	if err != nil {
		return fmt.Errorf("%w: no records after header: %w", ErrCorruptHeader, err)
	}
	variant, err := DetectVariant(append(hdr[:HeaderSize:HeaderSize], next...))
	if err != nil {
		return err
	}
	if r.options.variant != VariantAuto && r.options.variant != variant {
		return fmt.Errorf("%w: expected %s layout, found %s",
			ErrUnsupportedFormat, r.options.variant, variant,
		)
	}
	r.layout = layouts[variant]
	r.preamble = hdr[:countOffset]
	r.dataSize = int64(binary.LittleEndian.Uint64(hdr[countOffset+4:]))

	switch variant {
	case VariantCurrent:
		// The header count is one more than the number of channel slots.
		// Zero means the writer did not know it.
		if reported := int32(binary.LittleEndian.Uint32(hdr[countOffset:])); reported > 0 {
			r.declared = int(reported) - 1
			r.countKnown = true
		} else {
			r.declared = math.MaxInt32 - 1
		}
	case VariantArchived:
		if err := r.readDescriptionTable(); err != nil {
			return err
		}
	}
	Logger().Debugf("Opened %s container (file:%s channels:%d)",
		variant, r.options.path, r.declared,
	)
	if err := r.cur.seekTo(r.layout.eventStart); err != nil {
		return fmt.Errorf("%w: event region: %w", ErrCorruptHeader, err)
	}
	return nil
}

// FilePath returns the path the reader was opened with, if any.
func (r *Reader) FilePath() string {
	return r.options.path
}

// Variant returns the detected layout.
func (r *Reader) Variant() Variant {
	return r.layout.variant
}

// Preamble returns the opaque leading bytes of the header.
func (r *Reader) Preamble() []byte {
	return r.preamble
}

// DataSize returns the total data size recorded in the header.
func (r *Reader) DataSize() int64 {
	return r.dataSize
}

// Seekable reports whether the reader can rewind.
func (r *Reader) Seekable() bool {
	return r.cur.seekable()
}

// EndOfStream reports whether decoding has stopped.
func (r *Reader) EndOfStream() bool {
	return r.eos
}

// StreamError reports whether decoding stopped on a record that could not
// be framed.
func (r *Reader) StreamError() bool {
	return r.streamErr
}

// Err returns the cause of the stream error, if any.
func (r *Reader) Err() error {
	return r.err
}

// CurrentEvent returns the event most recently returned by NextEvent.
func (r *Reader) CurrentEvent() *Event {
	return r.current
}

// ChannelCount returns the number of channels, counting slots announced by
// the header that have not been described yet.
func (r *Reader) ChannelCount() int {
	n := r.channels.len()
	if r.countKnown && r.declared > n {
		return r.declared
	}
	return n
}

// Channels returns copies of the registered channels ordered by index.
func (r *Reader) Channels() []Channel {
	return r.channels.list()
}

// Channel returns a copy of the channel registered at index.
func (r *Reader) Channel(index int) (Channel, bool) {
	c, ok := r.channels.lookup(index)
	if !ok {
		return Channel{}, false
	}
	return *c, true
}

// NextEvent returns the next data event. It returns io.EOF once decoding
// has stopped.
func (r *Reader) NextEvent() (*Event, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if r.eos {
		return nil, io.EOF
	}
	e, err := r.decodeNext()
	// A bare io.EOF is only returned at a record boundary. Truncation
	// inside a record is always wrapped.
	if err == io.EOF {
		r.eos = true
		return nil, io.EOF
	}
	if err != nil {
		r.fail(err)
		return nil, io.EOF
	}
	r.current = e
	return e, nil
}

// NextEventOf returns the next data event whose type is one of typeIDs.
// Without typeIDs it behaves like NextEvent.
func (r *Reader) NextEventOf(typeIDs ...uuid.UUID) (*Event, error) {
	for {
		e, err := r.NextEvent()
		if err != nil || len(typeIDs) == 0 || containsType(typeIDs, e.TypeID) {
			return e, err
		}
	}
}

// AllEvents rewinds and returns every data event whose type is one of
// typeIDs, or every data event without typeIDs. A stream error ends the
// list early; check StreamError.
func (r *Reader) AllEvents(typeIDs ...uuid.UUID) ([]*Event, error) {
	if err := r.Rewind(); err != nil {
		return nil, err
	}
	var events []*Event
	for {
		e, err := r.NextEventOf(typeIDs...)
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, e)
	}
}

// Rewind moves back to the first event. Registered channels are kept and
// their event counts restart from zero.
func (r *Reader) Rewind() error {
	if r.closed {
		return ErrClosed
	}
	if !r.cur.seekable() {
		return fmt.Errorf("%w: rewind", ErrNotSupported)
	}
	if err := r.cur.seekTo(r.layout.eventStart); err != nil {
		return err
	}
	r.eos, r.streamErr, r.err, r.current = false, false, nil, nil
	r.channels.resetCounts()
	return nil
}

// ScanChannels decodes the whole container to discover every channel and
// rewinds. The returned channels carry the total event counts.
func (r *Reader) ScanChannels() ([]Channel, error) {
	if err := r.Rewind(); err != nil {
		return nil, err
	}
	for {
		if _, err := r.NextEvent(); err != nil {
			break
		}
	}
	channels := r.Channels()
	if r.streamErr {
		Logger().Warnf("Channel scan stopped early (file:%s): %v", r.options.path, r.err)
	}
	if err := r.Rewind(); err != nil {
		return nil, err
	}
	return channels, nil
}

// Close releases the source. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.eos = true
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

func (r *Reader) fail(err error) {
	r.eos = true
	r.streamErr = true
	r.err = err
	Logger().Warnf("Stream error (file:%s offset:0x%x): %v", r.options.path, r.cur.position(), err)
}

func containsType(ids []uuid.UUID, id uuid.UUID) bool {
	for _, t := range ids {
		if t == id {
			return true
		}
	}
	return false
}
