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
	"strconv"
	"strings"
	"time"
)

// TickDuration is the resolution of event timestamps.
const TickDuration = 100 * time.Nanosecond

const ticksPerSecond = int64(time.Second / TickDuration)

func TicksToDuration(ticks int64) time.Duration {
	return time.Duration(ticks) * TickDuration
}

func DurationToTicks(d time.Duration) int64 {
	return int64(d / TickDuration)
}

// FormatTicks renders a relative timestamp as seconds with a millisecond
// fraction. The fraction is omitted when it is zero.
func FormatTicks(ticks int64) string {
	sign := ""
	if ticks < 0 {
		sign = "-"
		ticks = -ticks
	}
	sec := fmt.Sprintf("%s%d", sign, ticks/ticksPerSecond)
	if millis := (ticks % ticksPerSecond) / (ticksPerSecond / 1000); millis > 0 {
		return fmt.Sprintf("%s.%03d", sec, millis)
	}
	return sec
}

// ParseTicks parses "<seconds>[.<fraction>]" into ticks. Digits beyond the
// tick resolution are truncated.
func ParseTicks(s string) (int64, error) {
	secFrac := strings.Split(s, ".")
	if len(secFrac) != 1 && len(secFrac) != 2 {
		return 0, fmt.Errorf("failed to parse ticks: %s", s)
	}
	neg := strings.HasPrefix(secFrac[0], "-")
	seconds, err := strconv.ParseInt(strings.TrimPrefix(secFrac[0], "-"), 10, 64)
	if err != nil {
		return 0, err
	}
	ticks := seconds * ticksPerSecond
	if len(secFrac) == 2 {
		frac, err := strconv.ParseInt((secFrac[1] + "0000000")[:7], 10, 64)
		if err != nil {
			return 0, err
		}
		ticks += frac
	}
	if neg {
		ticks = -ticks
	}
	return ticks, nil
}
