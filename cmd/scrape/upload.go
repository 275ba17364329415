package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// objectPutter is the subset of the S3 client used for uploads.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// newObjectPutter is replaced in tests.
var newObjectPutter = func(ctx context.Context, region string) (objectPutter, error) {
	client, err := newS3Client(ctx, region)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newS3Client(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func uploadArtifact(ctx context.Context, api objectPutter, bucket, key, contentType string, data []byte) (uploadResult, error) {
	ctx, span := tracer().Start(ctx, "uploadArtifact")
	defer span.End()
	span.SetAttributes(
		attribute.String("bucket", bucket),
		attribute.String("key", key),
		attribute.Int("bytes", len(data)),
	)

	_, err := api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "put object failed")
		return uploadResult{}, fmt.Errorf("upload s3://%s/%s: %w", bucket, key, err)
	}
	return uploadResult{OK: true, Bucket: bucket, Key: key}, nil
}
