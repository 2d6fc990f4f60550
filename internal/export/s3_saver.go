package export

import (
	"bytes"
	"context"
	"fmt"

	"order-dashboard/internal/orders"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// PutObjectAPI is the subset of the S3 client used by the saver.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Saver uploads exports to an S3 bucket.
type s3Saver struct {
	client PutObjectAPI
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Saver creates an S3 saver using the default AWS credential chain.
func NewS3Saver(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Saver, error) {
	logger = logger.With().Str("component", "export-s3-saver").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("prefix", prefix).
		Msg("S3 saver initialised")

	return NewS3SaverWithClient(s3.NewFromConfig(cfg), bucket, prefix, logger), nil
}

// NewS3SaverWithClient creates an S3 saver around an existing client.
func NewS3SaverWithClient(client PutObjectAPI, bucket, prefix string, logger zerolog.Logger) Saver {
	return &s3Saver{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

func (s *s3Saver) Destination() string {
	return "s3"
}

// Save uploads data to prefix+name and returns its s3:// URI.
func (s *s3Saver) Save(ctx context.Context, name string, data []byte) (string, error) {
	key := s.prefix + name

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(orders.CSVContentType),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	location := fmt.Sprintf("s3://%s/%s", s.bucket, key)
	s.logger.Info().
		Str("location", location).
		Int("bytes", len(data)).
		Msg("export uploaded")

	return location, nil
}

// fallbackSaver tries S3 first and writes locally when the upload fails.
type fallbackSaver struct {
	s3Saver   Saver
	fileSaver Saver
	s3Enabled bool
	logger    zerolog.Logger
}

// NewFallbackSaver creates a saver that prefers S3 and falls back to the
// local directory. If s3Saver is nil only the file saver is used.
func NewFallbackSaver(s3Saver, fileSaver Saver, s3Enabled bool, logger zerolog.Logger) Saver {
	return &fallbackSaver{
		s3Saver:   s3Saver,
		fileSaver: fileSaver,
		s3Enabled: s3Enabled,
		logger:    logger.With().Str("component", "export-fallback-saver").Logger(),
	}
}

func (s *fallbackSaver) Destination() string {
	if s.s3Enabled && s.s3Saver != nil {
		return "s3"
	}
	return "file"
}

func (s *fallbackSaver) Save(ctx context.Context, name string, data []byte) (string, error) {
	if s.s3Enabled && s.s3Saver != nil {
		location, err := s.s3Saver.Save(ctx, name, data)
		if err == nil {
			return location, nil
		}

		s.logger.Warn().
			Err(err).
			Str("name", name).
			Msg("failed to upload export to S3, falling back to local file system")
	} else {
		s.logger.Debug().
			Bool("s3_enabled", s.s3Enabled).
			Bool("has_s3_saver", s.s3Saver != nil).
			Msg("S3 disabled or not configured, using local file system")
	}

	return s.fileSaver.Save(ctx, name, data)
}
