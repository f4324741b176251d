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
	"log"
	"os"
)

func init() {
	SetLogger(&testLogger{l: log.New(os.Stderr, "xef: ", log.Lmicroseconds)})
}

type testLogger struct {
	l *log.Logger
}

func (n *testLogger) Debug(args ...interface{}) {
	n.l.Print(append([]interface{}{"DEBUG "}, args...)...)
}

func (n *testLogger) Debugf(format string, args ...interface{}) {
	n.l.Printf("DEBUG "+format, args...)
}

func (n *testLogger) Info(args ...interface{}) {
	n.l.Print(append([]interface{}{"INFO "}, args...)...)
}

func (n *testLogger) Infof(format string, args ...interface{}) {
	n.l.Printf("INFO "+format, args...)
}

func (n *testLogger) Warn(args ...interface{}) {
	n.l.Print(append([]interface{}{"WARN "}, args...)...)
}

func (n *testLogger) Warnf(format string, args ...interface{}) {
	n.l.Printf("WARN "+format, args...)
}

func (n *testLogger) Error(args ...interface{}) {
	n.l.Print(append([]interface{}{"ERROR "}, args...)...)
}

func (n *testLogger) Errorf(format string, args ...interface{}) {
	n.l.Printf("ERROR "+format, args...)
}
