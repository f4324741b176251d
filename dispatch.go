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

	"github.com/google/uuid"
)

// EventWriter consumes events of the types it is registered for.
type EventWriter interface {
	WriteEvent(ch Channel, e *Event) error
	Close() error
}

type handler struct {
	w       EventWriter
	typeIDs []uuid.UUID
}

// Dispatcher routes decoded events to writers by type.
type Dispatcher struct {
	handlers []handler
	byType   map[uuid.UUID]EventWriter
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		byType: make(map[uuid.UUID]EventWriter),
	}
}

// Handle registers w for the given event types. A type registered twice is
// routed to the last writer.
func (d *Dispatcher) Handle(w EventWriter, typeIDs ...uuid.UUID) {
	d.handlers = append(d.handlers, handler{w: w, typeIDs: typeIDs})
	for _, id := range typeIDs {
		d.byType[id] = w
	}
}

// TypeIDs returns the registered event types.
func (d *Dispatcher) TypeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(d.byType))
	for _, h := range d.handlers {
		for _, id := range h.typeIDs {
			if !containsType(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Run reads events from r until the end of the container and passes them to
// the registered writers. Writer errors do not stop the run. Every writer is
// closed before Run returns.
func (d *Dispatcher) Run(r *Reader) error {
	var errs multiError
	if ids := d.TypeIDs(); len(ids) > 0 {
		for {
			e, err := r.NextEventOf(ids...)
			if err == io.EOF {
				break
			}
			if err != nil {
				errs.Add(err)
				break
			}
			ch, _ := r.Channel(e.ChannelIndex)
			if err := d.byType[e.TypeID].WriteEvent(ch, e); err != nil {
				errs.Add(fmt.Errorf("writing %s event %d: %w", ch, e.Index, err))
			}
		}
		if r.StreamError() {
			errs.Add(r.Err())
		}
	}
	for _, h := range d.handlers {
		errs.Add(h.w.Close())
	}
	return errs.Err()
}
