package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"icc-dashboard/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReportArchive keeps a copy of every exported report in an S3-compatible
// bucket (AWS, R2, MinIO).
type ReportArchive struct {
	client *s3.Client
	bucket string
	prefix string
	log    *logrus.Logger
}

// NewReportArchive returns nil when storage is disabled.
func NewReportArchive(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*ReportArchive, error) {
	if !cfg.Storage.Enabled || cfg.Storage.Bucket == "" {
		return nil, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Storage.Region),
	}
	if cfg.Storage.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &ReportArchive{client: client, bucket: cfg.Storage.Bucket, prefix: "reports", log: log}, nil
}

// Key builds the object key for a report generated at t. The random suffix
// keeps two exports in the same second apart.
func Key(prefix, kind, ext string, t time.Time) string {
	name := fmt.Sprintf("%s_%s_%s.%s", kind, t.Format("20060102_150405"), uuid.NewString()[:8], ext)
	return path.Join(prefix, kind, t.Format("2006/01"), name)
}

// Archive uploads data and returns the object key.
func (a *ReportArchive) Archive(ctx context.Context, kind, ext, contentType string, data []byte) (string, error) {
	key := Key(a.prefix, kind, ext, time.Now().UTC())
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload report: %w", err)
	}
	a.log.WithFields(logrus.Fields{"bucket": a.bucket, "key": key, "bytes": len(data)}).Info("report archived")
	return key, nil
}

// Ping checks the bucket is reachable.
func (a *ReportArchive) Ping(ctx context.Context) error {
	_, err := a.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(a.bucket)})
	return err
}
