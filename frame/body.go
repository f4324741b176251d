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

// Package frame decodes body tracking and audio event payloads.
package frame

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrFrameSize is returned when a payload is too short for its frame layout.
var ErrFrameSize = errors.New("frame: unexpected payload size")

// TrackingState is the tracking state of a joint, hand or lean.
type TrackingState int32

const (
	NotTracked TrackingState = iota
	Inferred
	Tracked
)

func (s TrackingState) String() string {
	switch s {
	case NotTracked:
		return "NotTracked"
	case Inferred:
		return "Inferred"
	case Tracked:
		return "Tracked"
	}
	return fmt.Sprintf("TrackingState(%d)", int32(s))
}

// BodyTrackingState is the tracking state of a body slot.
type BodyTrackingState int32

const (
	BodyNotTracked BodyTrackingState = iota
	BodyTracked
)

// Confidence is the confidence level of a detected expression.
type Confidence int32

const (
	ConfidenceNone Confidence = iota
	ConfidenceLow
	ConfidenceHigh
	ConfidenceUnknown
)

// HandState is the detected pose of a hand.
type HandState int32

const (
	HandOpen HandState = iota
	HandClosed
	HandLasso
	HandUnknown
)

// JointType indexes the skeleton joints.
type JointType int

const (
	SpineBase JointType = iota
	SpineMid
	Neck
	Head
	ShoulderLeft
	ElbowLeft
	WristLeft
	HandLeft
	ShoulderRight
	ElbowRight
	WristRight
	HandRight
	HipLeft
	KneeLeft
	AnkleLeft
	FootLeft
	HipRight
	KneeRight
	AnkleRight
	FootRight
	SpineShoulder
	HandTipLeft
	ThumbLeft
	HandTipRight
	ThumbRight

	JointCount = iota
)

var jointNames = [JointCount]string{
	"SpineBase", "SpineMid", "Neck", "Head",
	"ShoulderLeft", "ElbowLeft", "WristLeft", "HandLeft",
	"ShoulderRight", "ElbowRight", "WristRight", "HandRight",
	"HipLeft", "KneeLeft", "AnkleLeft", "FootLeft",
	"HipRight", "KneeRight", "AnkleRight", "FootRight",
	"SpineShoulder", "HandTipLeft", "ThumbLeft", "HandTipRight", "ThumbRight",
}

func (j JointType) String() string {
	if j < 0 || j >= JointCount {
		return fmt.Sprintf("JointType(%d)", int(j))
	}
	return jointNames[j]
}

// BodyCount is the number of body slots in a frame.
const BodyCount = 6

// BodyFrameSize is the payload size of a body event.
const BodyFrameSize = 6288

// Vector is a position (W unused) or an orientation quaternion.
type Vector struct {
	X, Y, Z, W float32
}

// Expressions holds the expression detection results of a body.
type Expressions struct {
	Neutral        Confidence
	Happy          Confidence
	Talking        Confidence
	EyeLeftClosed  Confidence
	EyeRightClosed Confidence
	MouthOpen      Confidence
	MouthMoved     Confidence
	LookingAway    Confidence
	_              [4]int32
	Engaged        Confidence
	WearingGlasses Confidence
	_              [5]int32
	TrackingState  TrackingState
}

// Hand is the state of one hand.
type Hand struct {
	State         HandState
	TrackingState TrackingState
	Confidence    TrackingState
}

// Lean is the body lean.
type Lean struct {
	X, Y          float32
	Reserved      uint32
	TrackingState TrackingState
}

// Body is one body slot of a frame.
type Body struct {
	Positions     [JointCount]Vector
	Orientations  [JointCount]Vector
	JointStates   [JointCount]TrackingState
	Expressions   Expressions
	HandLeft      Hand
	HandRight     Hand
	_             int32
	TrackingID    uint64
	TrackingState BodyTrackingState
	Lean          Lean
	QualityFlags  uint32
}

// Tracked reports whether the slot holds a tracked body.
func (b *Body) Tracked() bool {
	return b.TrackingState == BodyTracked
}

// Joint is a joint position with its orientation and tracking state.
type Joint struct {
	Type        JointType
	Position    Vector
	Orientation Vector
	State       TrackingState
}

// Joint returns the joint of type j.
func (b *Body) Joint(j JointType) Joint {
	return Joint{
		Type:        j,
		Position:    b.Positions[j],
		Orientation: b.Orientations[j],
		State:       b.JointStates[j],
	}
}

// BodyFrame is the payload of a body event.
type BodyFrame struct {
	FloorClipPlane Vector
	Up             Vector
	Bodies         [BodyCount]Body
	QualityFlags   uint32
	_              [3]int32
}

// TrackedBodies returns the tracked body slots.
func (f *BodyFrame) TrackedBodies() []*Body {
	var bodies []*Body
	for i := range f.Bodies {
		if f.Bodies[i].Tracked() {
			bodies = append(bodies, &f.Bodies[i])
		}
	}
	return bodies
}

// ParseBodyFrame decodes a body event payload.
func ParseBodyFrame(b []byte) (*BodyFrame, error) {
	if len(b) < BodyFrameSize {
		return nil, fmt.Errorf("%w: %d byte body frame, expected %d", ErrFrameSize, len(b), BodyFrameSize)
	}
	f := &BodyFrame{}
	if err := binary.Read(bytes.NewReader(b[:BodyFrameSize]), binary.LittleEndian, f); err != nil {
		return nil, err
	}
	return f, nil
}
