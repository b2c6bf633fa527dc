package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Medium stores each collection as one object in an S3-compatible bucket
// (AWS S3 or MinIO). Minimal surface area: single bucket, collection name
// maps to the object key directly.
type S3Medium struct {
	client *s3.Client
	bucket string
	prefix string
}

var _ Medium = (*S3Medium)(nil)

// S3Config holds explicit construction parameters (mostly for tests). For
// prod we rely primarily on environment variables.
type S3Config struct {
	Region          string
	Bucket          string
	Prefix          string // optional key prefix, e.g. "fleet/"
	Endpoint        string // optional; if set enables custom endpoint (e.g. MinIO)
	AccessKeyID     string // optional (falls back to default credentials chain)
	SecretAccessKey string // optional
	SessionToken    string // optional
	PathStyle       bool
}

// NewS3Medium creates an S3-backed medium from S3Config.
func NewS3Medium(ctx context.Context, cfg S3Config) (*S3Medium, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3Medium{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (m *S3Medium) Driver() Driver { return DriverS3 }

func (m *S3Medium) keyFor(name string) string { return m.prefix + name + ".json" }

func (m *S3Medium) LoadCollection(ctx context.Context, name string) ([]byte, bool, error) {
	key := m.keyFor(name)
	out, err := m.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &m.bucket, Key: &key})
	if err != nil {
		if isMissingObject(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %s: %w", name, err)
	}
	defer func() { _ = out.Body.Close() }()
	payload, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", name, err)
	}
	return payload, true, nil
}

func (m *S3Medium) SaveCollection(ctx context.Context, name string, payload []byte) error {
	key := m.keyFor(name)
	contentType := "application/json"
	input := &s3.PutObjectInput{
		Bucket:      &m.bucket,
		Key:         &key,
		Body:        bytes.NewReader(payload),
		ContentType: &contentType,
	}
	if _, err := m.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	return nil
}

func (m *S3Medium) Close() error { return nil }

// isMissingObject reports whether err means the object does not exist. Real
// S3 returns NoSuchKey; stripped-down emulators may answer a bare 404.
func isMissingObject(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return true
	}
	return strings.Contains(err.Error(), "NoSuchKey")
}
