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

// Package s3source reads containers stored in S3.
package s3source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/seqsense/xef"
)

// GetObjectAPI is the part of the S3 client used to fetch objects.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// ClientOptions stores NewClient options.
type ClientOptions struct {
	credentials aws.CredentialsProvider
	endpoint    string
	httpClient  aws.HTTPClient
}

// ClientOption is functional option type of NewClient.
type ClientOption func(*ClientOptions)

func WithStaticCredentials(key, secret, session string) ClientOption {
	return func(p *ClientOptions) {
		p.credentials = credentials.NewStaticCredentialsProvider(key, secret, session)
	}
}

func WithCredentials(c aws.CredentialsProvider) ClientOption {
	return func(p *ClientOptions) {
		p.credentials = c
	}
}

// WithEndpoint sends path-style requests to the given endpoint.
func WithEndpoint(endpoint string) ClientOption {
	return func(p *ClientOptions) {
		p.endpoint = endpoint
	}
}

func WithHTTPClient(c aws.HTTPClient) ClientOption {
	return func(p *ClientOptions) {
		p.httpClient = c
	}
}

// NewClient creates an S3 client for region.
func NewClient(region string, opts ...ClientOption) *s3.Client {
	options := &ClientOptions{}
	for _, o := range opts {
		o(options)
	}
	cfg := aws.Config{
		Region:      region,
		Credentials: options.credentials,
		HTTPClient:  options.httpClient,
	}
	return NewClientFromConfig(cfg, opts...)
}

// NewClientFromConfig creates an S3 client from a loaded configuration.
func NewClientFromConfig(cfg aws.Config, opts ...ClientOption) *s3.Client {
	options := &ClientOptions{}
	for _, o := range opts {
		o(options)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if options.endpoint != "" {
			o.BaseEndpoint = aws.String(options.endpoint)
			o.UsePathStyle = true
		}
	})
}

// Open fetches bucket/key and returns a forward-only reader over the object
// body. The body is closed by Reader.Close.
func Open(ctx context.Context, api GetObjectAPI, bucket, key string, opts ...xef.ReaderOption) (*xef.Reader, error) {
	out, err := api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", URL(bucket, key), err)
	}
	xef.Logger().Debugf("Opened %s (size:%d)", URL(bucket, key), aws.ToInt64(out.ContentLength))

	opts = append([]xef.ReaderOption{xef.WithFilePath(URL(bucket, key))}, opts...)
	return xef.NewStreamReader(out.Body, opts...)
}

// URL formats an object location as s3://bucket/key.
func URL(bucket, key string) string {
	return "s3://" + bucket + "/" + key
}

// ParseURL splits an s3://bucket/key location.
func ParseURL(s string) (bucket, key string, err error) {
	u, err := url.Parse(s)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("invalid s3 url: %s", s)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("no object key in s3 url: %s", s)
	}
	return u.Host, key, nil
}
