// Package s3 provides an S3-backed artifact store. Write-once semantics are
// enforced server side through conditional writes (If-None-Match: *), so
// concurrent coordinators never overwrite each other's artifacts.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/hupe1980/elicitmesh/artifact"
)

// s3API is the minimal S3 interface required by Store. Defined here for
// testability.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Options configures the Store.
type Options struct {
	// Prefix is prepended to every key, e.g. "elicitmesh/".
	Prefix string
}

// Store persists artifacts as objects in an S3 bucket.
type Store struct {
	api    s3API
	bucket string
	opts   Options
}

// New creates a Store on top of an existing S3 client.
func New(api s3API, bucket string, optFns ...func(o *Options)) (*Store, error) {
	if api == nil {
		return nil, errors.New("s3: api must not be nil")
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("s3: bucket must not be empty")
	}
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Store{api: api, bucket: bucket, opts: opts}, nil
}

// NewFromConfig creates a Store using the default AWS configuration chain.
func NewFromConfig(ctx context.Context, bucket string, optFns ...func(o *Options)) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}
	return New(s3.NewFromConfig(cfg), bucket, optFns...)
}

// Put writes the artifact bytes under key. The conditional write fails with
// artifact.ErrAlreadyExists when the object is already present.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.opts.Prefix + key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/plain; charset=utf-8"),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
			return artifact.ErrAlreadyExists
		}
		return fmt.Errorf("s3: put %s: %w", key, err)
	}
	return nil
}

// Get returns the artifact bytes for key or artifact.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.opts.Prefix + key),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, artifact.ErrNotFound
		}
		return nil, fmt.Errorf("s3: get %s: %w", key, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3: read %s: %w", key, err)
	}
	return data, nil
}
