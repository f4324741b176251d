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

package xeftest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// S3Server serves registered objects for path-style GetObject requests.
type S3Server struct {
	*httptest.Server
	objects   map[string][]byte
	blockTime time.Duration
	requests  []string
	mu        sync.Mutex

	getObjectHook func(key string, w http.ResponseWriter) bool
}

type S3ServerOption func(*S3Server)

// WithBlockTime delays every response.
func WithBlockTime(blockTime time.Duration) S3ServerOption {
	return func(s *S3Server) {
		s.blockTime = blockTime
	}
}

// WithGetObjectHook calls h before serving an object. The object is served
// only if h returns true.
func WithGetObjectHook(h func(key string, w http.ResponseWriter) bool) S3ServerOption {
	return func(s *S3Server) {
		s.getObjectHook = h
	}
}

func NewS3Server(opts ...S3ServerOption) *S3Server {
	s := &S3Server{
		objects: make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.getObject))
	return s
}

// RegisterObject stores data at bucket/key.
func (s *S3Server) RegisterObject(bucket, key string, data []byte) {
	s.mu.Lock()
	s.objects[bucket+"/"+key] = data
	s.mu.Unlock()
}

// Requests returns the object paths requested so far.
func (s *S3Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *S3Server) getObject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	key := strings.TrimPrefix(r.URL.Path, "/")

	s.mu.Lock()
	s.requests = append(s.requests, key)
	data, ok := s.objects[key]
	s.mu.Unlock()

	time.Sleep(s.blockTime)
	if s.getObjectHook != nil {
		if !s.getObjectHook(key, w) {
			return
		}
	}
	if !ok {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w,
			`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message><Key>%s</Key></Error>`,
			key,
		)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.Write(data)
}
