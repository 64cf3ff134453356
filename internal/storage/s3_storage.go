package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appconfig "github.com/ikkim/jewel-storefront/config"
	"github.com/ikkim/jewel-storefront/pkg/logger"
)

// DownloadURLExpiry bounds how long a presigned report link stays valid
const DownloadURLExpiry = 15 * time.Minute

// Uploaded describes an object written to the bucket
type Uploaded struct {
	Key         string    `json:"key"`
	FileURL     string    `json:"file_url"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ObjectStorage stores generated files and hands out download links
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (*Uploaded, error)
}

type S3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	baseURL string
}

func NewS3Storage(ctx context.Context, cfg appconfig.S3Config) *S3Storage {
	var awsCfg aws.Config
	var err error

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg = aws.Config{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		}
	} else {
		// environment, shared config or instance role
		awsCfg, err = config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
		if err != nil {
			logger.Warn("Failed to load default AWS config, using region only", map[string]interface{}{
				"error": err.Error(),
			})
			awsCfg = aws.Config{Region: cfg.Region}
		}
	}

	client := s3.NewFromConfig(awsCfg)

	return &S3Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		baseURL: cfg.BaseURL,
	}
}

func (s *S3Storage) Upload(ctx context.Context, key string, body []byte, contentType string) (*Uploaded, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		logger.Error("Failed to upload object", err, map[string]interface{}{
			"bucket": s.bucket,
			"key":    key,
		})
		return nil, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	presigned, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(DownloadURLExpiry))
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	logger.Info("Object uploaded", map[string]interface{}{
		"bucket": s.bucket,
		"key":    key,
		"size":   len(body),
	})

	return &Uploaded{
		Key:         key,
		FileURL:     FileURL(s.baseURL, s.bucket, s.client.Options().Region, key),
		DownloadURL: presigned.URL,
		ExpiresAt:   time.Now().Add(DownloadURLExpiry),
	}, nil
}

// FileURL is the public location of key: under baseURL when a CDN or custom
// domain is configured, the bucket's S3 endpoint otherwise
func FileURL(baseURL, bucket, region, key string) string {
	if baseURL != "" {
		return fmt.Sprintf("%s/%s", baseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}

// ReportKey names an orders export for a session
func ReportKey(sessionID string, at time.Time) string {
	return fmt.Sprintf("reports/%s/orders-%s.xlsx", sessionID, at.UTC().Format("20060102-150405"))
}
