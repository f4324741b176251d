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
	"github.com/google/uuid"
)

// Channel type identifiers observed in captures.
var (
	TypeUncompressedColor = uuid.MustParse("2ba0d67d-be11-4534-9444-3fb21ae0f08b")
	TypeLongExposureIr    = uuid.MustParse("7e06d98e-d271-4a1f-9bfd-6648a700db75")
	TypeCompressedColor   = uuid.MustParse("0a3914dc-3b16-11e1-aac3-001e4fd58c0f")
	TypeRawIr             = uuid.MustParse("0a3914e2-3b16-11e1-aac3-001e4fd58c0f")
	TypeBodyIndex         = uuid.MustParse("df82ffac-b533-4438-954a-686a1e20f4aa")
	TypeBody              = uuid.MustParse("a0c45179-5168-4875-a75c-f8f1760f637c")
	TypeDepth             = uuid.MustParse("0a3914d6-3b16-11e1-aac3-001e4fd58c0f")
	TypeIr                = uuid.MustParse("0a3914d7-3b16-11e1-aac3-001e4fd58c0f")
	TypeAudio             = uuid.MustParse("787c7abd-9f6e-4a85-8d67-6365ff80cc69")
)

var typeNames = map[uuid.UUID]string{
	TypeUncompressedColor: "UncompressedColor",
	TypeLongExposureIr:    "LongExposureIr",
	TypeCompressedColor:   "CompressedColor",
	TypeRawIr:             "RawIr",
	TypeBodyIndex:         "BodyIndex",
	TypeBody:              "Body",
	TypeDepth:             "Depth",
	TypeIr:                "Ir",
	TypeAudio:             "Audio",
}

// TypeName returns a short name of a well-known type identifier, or the
// identifier itself.
func TypeName(id uuid.UUID) string {
	if n, ok := typeNames[id]; ok {
		return n
	}
	return id.String()
}

// Sensor geometry of the capture device.
const (
	ColorWidth      = 1920
	ColorHeight     = 1080
	DepthWidth      = 512
	DepthHeight     = 424
	IrWidth         = 512
	IrHeight        = 424
	BodyIndexWidth  = 512
	BodyIndexHeight = 424

	// BodyIndexBackground marks body index pixels not belonging to a body.
	BodyIndexBackground = 255
	BodyCount           = 6

	AudioSampleRate         = 16000
	AudioSamplesPerSubframe = 256
	AudioMaxSubframes       = 8
)
