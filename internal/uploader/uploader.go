package uploader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog"

	"github.com/john/ytchat/internal/config"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader uploads finished JSONL files to S3
type Uploader struct {
	client      putObjectAPI
	bucket      string
	deleteAfter bool
	maxRetries  int
	backoff     func(attempt int) time.Duration
	log         zerolog.Logger
}

// New creates an S3 uploader. Static credentials are used when an access key
// is configured, an assumed role when a role ARN is, the default AWS
// credential chain otherwise.
func New(ctx context.Context, s3cfg config.S3Config, upcfg config.UploaderConfig, log zerolog.Logger) (*Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(s3cfg.Region)}
	if s3cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s3cfg.AccessKeyID, s3cfg.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	if s3cfg.AccessKeyID == "" && s3cfg.RoleARN != "" {
		provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(cfg), s3cfg.RoleARN)
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s3cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newUploader(client, s3cfg.Bucket, upcfg, log), nil
}

func newUploader(client putObjectAPI, bucket string, upcfg config.UploaderConfig, log zerolog.Logger) *Uploader {
	return &Uploader{
		client:      client,
		bucket:      bucket,
		deleteAfter: upcfg.DeleteAfterUpload,
		maxRetries:  upcfg.MaxRetries,
		backoff: func(attempt int) time.Duration {
			return time.Duration(1<<uint(attempt)) * time.Second
		},
		log: log.With().Str("component", "uploader").Logger(),
	}
}

// Upload uploads every file in order and returns the first failure after
// trying them all.
func (u *Uploader) Upload(ctx context.Context, paths []string) error {
	var firstErr error
	for _, path := range paths {
		if err := u.uploadWithRetry(ctx, path); err != nil {
			u.log.Error().Err(err).Str("file", path).Msg("Upload failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (u *Uploader) uploadWithRetry(ctx context.Context, localPath string) error {
	filename := filepath.Base(localPath)

	key, err := generateS3Key(filename)
	if err != nil {
		return fmt.Errorf("generate S3 key for %s: %w", filename, err)
	}

	var lastErr error
	for attempt := 0; attempt <= u.maxRetries; attempt++ {
		lastErr = u.uploadFile(ctx, localPath, key)
		if lastErr == nil {
			u.log.Info().Str("file", filename).Str("bucket", u.bucket).Str("key", key).Msg("Uploaded file")
			if u.deleteAfter {
				if err := os.Remove(localPath); err != nil {
					u.log.Warn().Err(err).Str("file", localPath).Msg("Failed to delete local file")
				}
			}
			return nil
		}

		if attempt < u.maxRetries {
			backoff := u.backoff(attempt)
			u.log.Warn().Err(lastErr).
				Int("attempt", attempt+1).
				Int("max_retries", u.maxRetries).
				Dur("backoff", backoff).
				Str("file", filename).
				Msg("Upload attempt failed")

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	return fmt.Errorf("upload %s after %d attempts: %w", filename, u.maxRetries+1, lastErr)
}

func (u *Uploader) uploadFile(ctx context.Context, localPath, key string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

// generateS3Key generates an S3 key from a recorder filename
// Input: youtube_some_channel_20240301_1230_001.jsonl
// Output: 2024/03/01/youtube/some_channel/youtube_some_channel_20240301_1230_001.jsonl
func generateS3Key(filename string) (string, error) {
	nameWithoutExt := strings.TrimSuffix(filename, ".jsonl")

	// Channel names may contain underscores, so parse from the end
	parts := strings.Split(nameWithoutExt, "_")
	if len(parts) < 5 {
		return "", fmt.Errorf("invalid filename format: %s", filename)
	}

	platform := parts[0]
	dateStr := parts[len(parts)-3]
	timeStr := parts[len(parts)-2]
	channel := strings.Join(parts[1:len(parts)-3], "_")

	t, err := time.Parse("20060102_1504", dateStr+"_"+timeStr)
	if err != nil {
		return "", fmt.Errorf("parse timestamp: %w", err)
	}

	return fmt.Sprintf("%04d/%02d/%02d/%s/%s/%s",
		t.Year(), t.Month(), t.Day(), platform, channel, filename), nil
}
