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

// DefaultMaxRecordSize is the largest record payload accepted by default.
const DefaultMaxRecordSize = 256 << 20

// ReaderOptions stores Reader options.
type ReaderOptions struct {
	variant       Variant
	strict        bool
	maxRecordSize int64
	path          string
	bufferSize    int
	forwardOnly   bool
}

// ReaderOption is functional option type of Reader.
type ReaderOption func(*ReaderOptions)

// WithVariant forces the layout variant. Opening a container of another
// variant fails with ErrUnsupportedFormat.
func WithVariant(v Variant) ReaderOption {
	return func(p *ReaderOptions) {
		p.variant = v
	}
}

// WithStrictChecks stops decoding on sanity check failures which are
// otherwise only logged.
func WithStrictChecks(strict bool) ReaderOption {
	return func(p *ReaderOptions) {
		p.strict = strict
	}
}

// WithMaxRecordSize sets the largest record payload the reader allocates.
// It also bounds the inflated size declared by compressed events.
func WithMaxRecordSize(n int64) ReaderOption {
	return func(p *ReaderOptions) {
		p.maxRecordSize = n
	}
}

// WithFilePath sets the path reported by Reader.FilePath.
func WithFilePath(path string) ReaderOption {
	return func(p *ReaderOptions) {
		p.path = path
	}
}

// WithBufferSize sets the read buffer size.
func WithBufferSize(n int) ReaderOption {
	return func(p *ReaderOptions) {
		p.bufferSize = n
	}
}

// WithForwardOnly treats the source as non-seekable even if it implements
// io.Seeker.
func WithForwardOnly() ReaderOption {
	return func(p *ReaderOptions) {
		p.forwardOnly = true
	}
}
