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
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/seqsense/xef"
)

const (
	// AudioHeaderSize is the size of the audio frame header.
	AudioHeaderSize = 16
	// AudioSubFrameSize is the size of one audio sub-frame.
	AudioSubFrameSize = 14416
)

// AudioHeader leads every audio event payload.
type AudioHeader struct {
	Version            uint32
	SubFrameCount      uint32
	SubFramesAllocated uint32
	Reserved           uint32
}

// AudioSubFrame holds 16 ms of audio.
type AudioSubFrame struct {
	Number                 uint32
	EventBitField          uint32
	TimeCounter            uint64
	BeamMode               int32
	BeamAngle              float32
	BeamAngleConfidence    float32
	SpeakerTrackingIDCount uint32
	SpeakerTrackingIDs     [6]uint64
	// Out is the beamformed mono output.
	Out      [xef.AudioSamplesPerSubframe]float32
	Mic      [1024]float32
	Speaker  [2048]float32
	Reserved [1024]byte
}

// AudioFrame is the payload of an audio event.
type AudioFrame struct {
	AudioHeader
	SubFrames []AudioSubFrame
}

// ParseAudioFrame decodes an audio event payload.
func ParseAudioFrame(b []byte) (*AudioFrame, error) {
	if len(b) < AudioHeaderSize {
		return nil, fmt.Errorf("%w: %d byte audio frame", ErrFrameSize, len(b))
	}
	r := bytes.NewReader(b)
	f := &AudioFrame{}
	if err := binary.Read(r, binary.LittleEndian, &f.AudioHeader); err != nil {
		return nil, err
	}
	if f.SubFrameCount != f.SubFramesAllocated {
		xef.Logger().Warnf("Audio frame has %d sub-frames, %d allocated", f.SubFrameCount, f.SubFramesAllocated)
	}
	if need := AudioHeaderSize + int(f.SubFrameCount)*AudioSubFrameSize; len(b) < need {
		return nil, fmt.Errorf("%w: %d byte audio frame with %d sub-frames, expected %d",
			ErrFrameSize, len(b), f.SubFrameCount, need,
		)
	}
	f.SubFrames = make([]AudioSubFrame, f.SubFrameCount)
	if err := binary.Read(r, binary.LittleEndian, f.SubFrames); err != nil {
		return nil, err
	}
	return f, nil
}

// Samples returns the beamformed output of all sub-frames in order.
func (f *AudioFrame) Samples() []float32 {
	out := make([]float32, 0, len(f.SubFrames)*xef.AudioSamplesPerSubframe)
	for i := range f.SubFrames {
		out = append(out, f.SubFrames[i].Out[:]...)
	}
	return out
}
