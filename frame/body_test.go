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

package frame

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBodyFrameSize(t *testing.T) {
	if n := binary.Size(BodyFrame{}); n != BodyFrameSize {
		t.Errorf("Expected %d bytes, got %d", BodyFrameSize, n)
	}
	if n := binary.Size(Body{}); n != 1040 {
		t.Errorf("Expected 1040 byte body, got %d", n)
	}
}

func TestParseBodyFrame(t *testing.T) {
	const (
		bodyOffset = 32
		bodySize   = 1040
	)
	b := make([]byte, BodyFrameSize)
	putFloat := func(off int, v float32) {
		binary.LittleEndian.PutUint32(b[off:], math.Float32bits(v))
	}
	// Floor plane and up vector.
	putFloat(0, 1.5)
	putFloat(28, -1)

	body := bodyOffset + bodySize // second slot
	putFloat(body+int(Head)*16+4, 0.75)
	putFloat(body+400+int(Head)*16+12, 1)
	binary.LittleEndian.PutUint32(b[body+800+int(Head)*4:], uint32(Tracked))
	binary.LittleEndian.PutUint32(b[body+904:], uint32(ConfidenceHigh))
	binary.LittleEndian.PutUint32(b[body+980:], uint32(HandLasso))
	binary.LittleEndian.PutUint64(b[body+1008:], 0x1234567890)
	binary.LittleEndian.PutUint32(b[body+1016:], uint32(BodyTracked))
	putFloat(body+1020, -0.25)
	binary.LittleEndian.PutUint32(b[body+1032:], uint32(Inferred))
	binary.LittleEndian.PutUint32(b[bodyOffset+BodyCount*bodySize:], 7)

	f, err := ParseBodyFrame(b)
	if err != nil {
		t.Fatal(err)
	}
	if f.FloorClipPlane.X != 1.5 || f.Up.W != -1 {
		t.Errorf("Unexpected frame vectors: %+v %+v", f.FloorClipPlane, f.Up)
	}
	if f.QualityFlags != 7 {
		t.Errorf("Expected quality flags 7, got %d", f.QualityFlags)
	}
	bodies := f.TrackedBodies()
	if len(bodies) != 1 || bodies[0] != &f.Bodies[1] {
		t.Fatalf("Expected second slot tracked, got %d bodies", len(bodies))
	}
	expectedJoint := Joint{
		Type:        Head,
		Position:    Vector{Y: 0.75},
		Orientation: Vector{W: 1},
		State:       Tracked,
	}
	if diff := cmp.Diff(expectedJoint, bodies[0].Joint(Head)); diff != "" {
		t.Errorf("Unexpected joint (-want +got):\n%s", diff)
	}
	if bodies[0].Expressions.Happy != ConfidenceHigh {
		t.Errorf("Expected happy %d, got %d", ConfidenceHigh, bodies[0].Expressions.Happy)
	}
	if bodies[0].HandLeft.State != HandLasso {
		t.Errorf("Expected lasso, got %d", bodies[0].HandLeft.State)
	}
	if bodies[0].TrackingID != 0x1234567890 {
		t.Errorf("Unexpected tracking ID 0x%x", bodies[0].TrackingID)
	}
	if diff := cmp.Diff(Lean{X: -0.25, TrackingState: Inferred}, bodies[0].Lean); diff != "" {
		t.Errorf("Unexpected lean (-want +got):\n%s", diff)
	}

	if _, err := ParseBodyFrame(b[:100]); !errors.Is(err, ErrFrameSize) {
		t.Errorf("Expected ErrFrameSize, got %v", err)
	}
}

func TestJointType_String(t *testing.T) {
	testCases := map[JointType]string{
		SpineBase:  "SpineBase",
		ThumbRight: "ThumbRight",
		JointCount: "JointType(25)",
	}
	for j, expected := range testCases {
		if s := j.String(); s != expected {
			t.Errorf("Expected %s, got %s", expected, s)
		}
	}
}
