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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

type collectWriter struct {
	channels []string
	payloads [][]byte
	err      error
	closed   int
}

func (w *collectWriter) WriteEvent(ch Channel, e *Event) error {
	if w.err != nil {
		return w.err
	}
	p, err := e.Payload()
	if err != nil {
		return err
	}
	w.channels = append(w.channels, ch.Name)
	w.payloads = append(w.payloads, p)
	return nil
}

func (w *collectWriter) Close() error {
	w.closed++
	return nil
}

func TestDispatcher(t *testing.T) {
	t.Run("Route", func(t *testing.T) {
		r, err := NewReader(bytes.NewReader(basicContainer()))
		if err != nil {
			t.Fatal(err)
		}
		depth := &collectWriter{}
		color := &collectWriter{}
		d := NewDispatcher()
		d.Handle(depth, TypeDepth)
		d.Handle(color, TypeCompressedColor, TypeUncompressedColor)

		if diff := cmp.Diff(
			[]string{"Depth", "CompressedColor", "UncompressedColor"},
			typeNamesOf(d.TypeIDs()),
		); diff != "" {
			t.Errorf("Unexpected types (-want +got):\n%s", diff)
		}
		if err := d.Run(r); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([][]byte{{1, 2, 3}, {4, 5, 6}}, depth.payloads); diff != "" {
			t.Errorf("Unexpected depth payloads (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([][]byte{testPlain}, color.payloads); diff != "" {
			t.Errorf("Unexpected color payloads (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"Nui Color"}, color.channels); diff != "" {
			t.Errorf("Unexpected channels (-want +got):\n%s", diff)
		}
		if depth.closed != 1 || color.closed != 1 {
			t.Error("Writers must be closed once")
		}
	})
	t.Run("WriterError", func(t *testing.T) {
		r, err := NewReader(bytes.NewReader(basicContainer()))
		if err != nil {
			t.Fatal(err)
		}
		errDummy := errors.New("dummy")
		depth := &collectWriter{err: errDummy}
		color := &collectWriter{}
		d := NewDispatcher()
		d.Handle(depth, TypeDepth)
		d.Handle(color, TypeCompressedColor)

		err = d.Run(r)
		if !errors.Is(err, errDummy) {
			t.Errorf("Expected '%v', got '%v'", errDummy, err)
		}
		if me, ok := err.(multiError); !ok || len(me) != 2 {
			t.Errorf("Expected an error per failed event, got %v", err)
		}
		if len(color.payloads) != 1 {
			t.Error("Writer errors must not stop other writers")
		}
		if depth.closed != 1 || color.closed != 1 {
			t.Error("Writers must be closed once")
		}
	})
	t.Run("StreamError", func(t *testing.T) {
		data := basicContainer()
		r, err := NewReader(bytes.NewReader(data[:len(data)-150]))
		if err != nil {
			t.Fatal(err)
		}
		depth := &collectWriter{}
		d := NewDispatcher()
		d.Handle(depth, TypeDepth)
		if err := d.Run(r); !errors.Is(err, ErrCorruptRecord) {
			t.Errorf("Expected ErrCorruptRecord, got %v", err)
		}
		if depth.closed != 1 {
			t.Error("Writer must be closed")
		}
	})
	t.Run("Empty", func(t *testing.T) {
		r, err := NewReader(bytes.NewReader(basicContainer()))
		if err != nil {
			t.Fatal(err)
		}
		if err := NewDispatcher().Run(r); err != nil {
			t.Fatal(err)
		}
	})
}

func typeNamesOf(ids []uuid.UUID) []string {
	var names []string
	for _, id := range ids {
		names = append(names, TypeName(id))
	}
	return names
}
