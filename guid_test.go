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
	"testing"

	"github.com/google/uuid"
)

func TestGUID(t *testing.T) {
	raw := []byte{
		0xd6, 0x14, 0x39, 0x0a, 0x16, 0x3b, 0xe1, 0x11,
		0xaa, 0xc3, 0x00, 0x1e, 0x4f, 0xd5, 0x8c, 0x0f,
	}
	if u := GUIDFromBytes(raw); u != TypeDepth {
		t.Errorf("Expected %s, got %s", TypeDepth, u)
	}
	if b := GUIDBytes(TypeDepth); string(b[:]) != string(raw) {
		t.Errorf("Expected %x, got %x", raw, b)
	}
	if u := GUIDFromBytes(raw[:8]); u != uuid.Nil {
		t.Errorf("Short input must give nil UUID, got %s", u)
	}
}
