// Copyright (c) 2025 Steve Taranto staranto@gmail.com.
// SPDX-License-Identifier: Apache-2.0

package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	awsx "github.com/staranto/fragnav/internal/aws"
)

// ObjectGetter is the slice of the S3 API the retriever needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 retrieves fragments stored as objects beneath a key prefix.
type S3 struct {
	client ObjectGetter
	bucket string
	prefix string
}

// NewS3 builds an S3 Retriever using the shell's AWS setup plus opts.
func NewS3(ctx context.Context, bucket string, prefix string, opts ...awsx.Option) (*S3, error) {
	client, err := awsx.NewS3Client(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3WithClient(client, bucket, prefix), nil
}

// NewS3WithClient builds an S3 Retriever over an existing client.
func NewS3WithClient(client ObjectGetter, bucket string, prefix string) *S3 {
	return &S3{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Retrieve gets the object for path. Service errors that carry an HTTP
// status are reported as that status.
func (s *S3) Retrieve(ctx context.Context, p string) (Response, error) {
	key := s.key(p)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awsv2.String(s.bucket),
		Key:    awsv2.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return Response{Status: http.StatusNotFound}, nil
		}
		var re *awshttp.ResponseError
		if errors.As(err, &re) {
			return Response{Status: re.HTTPStatusCode()}, nil
		}
		return Response{}, fmt.Errorf("failed to get S3 object %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read S3 object body: %w", err)
	}
	log.Debugf("fetch: s3://%s/%s (%d bytes)", s.bucket, key, len(data))

	return Response{Status: http.StatusOK, Body: string(data)}, nil
}

func (s *S3) key(p string) string {
	name := fsName(p)
	if name == "." || strings.HasSuffix(p, "/") {
		name = path.Join(strings.TrimPrefix(name, "."), "index.html")
	}
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}
