package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Config holds the Cloudflare R2 bucket settings
type R2Config struct {
	Endpoint  string
	AccountID string
	AccessKey string
	SecretKey string
	Bucket    string
}

// Enabled reports whether enough settings are present to reach a bucket.
func (c R2Config) Enabled() bool {
	return c.AccessKey != "" && c.SecretKey != "" && c.Bucket != "" && (c.Endpoint != "" || c.AccountID != "")
}

// R2Mirror copies reports into an R2 (S3-compatible) bucket.
type R2Mirror struct {
	client *s3.Client
	bucket string
}

var _ Mirror = (*R2Mirror)(nil)

func NewR2Mirror(ctx context.Context, cfg R2Config) (*R2Mirror, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &R2Mirror{client: client, bucket: cfg.Bucket}, nil
}

func (m *R2Mirror) Put(ctx context.Context, key string, data []byte) error {
	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}
