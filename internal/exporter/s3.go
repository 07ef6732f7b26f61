// Package exporter uploads encoded risk reports to S3-compatible storage.
package exporter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aristath/riskdesk/internal/config"
	"github.com/aristath/riskdesk/internal/metrics"
	"github.com/aristath/riskdesk/internal/modules/risk"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// ErrNilReport is returned when there is no report to export.
var ErrNilReport = errors.New("no report to export")

// Uploader is the part of manager.Uploader the exporter uses.
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Exporter writes reports somewhere durable.
type Exporter interface {
	Export(ctx context.Context, report *risk.RiskReport) (string, error)
}

// S3Exporter uploads report snapshots under <prefix>/<yyyy>/<mm>/<dd>/<run-id>.<ext>.
type S3Exporter struct {
	uploader Uploader
	bucket   string
	prefix   string
	format   risk.Format
	log      zerolog.Logger
}

// NewS3Exporter builds an exporter backed by the AWS SDK. Static credentials
// are used when configured, otherwise the default credential chain.
func NewS3Exporter(ctx context.Context, cfg config.ExportConfig, log zerolog.Logger) (*S3Exporter, error) {
	if !cfg.Enabled() {
		return nil, errors.New("export bucket is not configured")
	}
	format, err := risk.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return New(manager.NewUploader(client), cfg.Bucket, cfg.Prefix, format, log), nil
}

// New creates an exporter around any Uploader.
func New(uploader Uploader, bucket, prefix string, format risk.Format, log zerolog.Logger) *S3Exporter {
	return &S3Exporter{
		uploader: uploader,
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
		format:   format,
		log:      log.With().Str("component", "s3_exporter").Logger(),
	}
}

// ObjectKey returns the key a report is stored under.
func ObjectKey(prefix, runID string, generatedAt time.Time, format risk.Format) string {
	t := generatedAt.UTC()
	name := fmt.Sprintf("%s.%s", runID, format.Extension())
	return path.Join(prefix, t.Format("2006"), t.Format("01"), t.Format("02"), name)
}

// Export encodes the report snapshot and uploads it. It returns the object key.
func (e *S3Exporter) Export(ctx context.Context, report *risk.RiskReport) (key string, err error) {
	defer func() { metrics.ObserveExport(err) }()

	if report == nil {
		return "", ErrNilReport
	}

	var buf bytes.Buffer
	if err := risk.Encode(&buf, report.Snapshot(), e.format); err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	key = ObjectKey(e.prefix, report.RunID, report.GeneratedAt, e.format)
	_, err = e.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(e.format.ContentType()),
		Metadata: map[string]string{
			"run-id":    report.RunID,
			"benchmark": report.Config.Benchmark,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report to s3://%s/%s: %w", e.bucket, key, err)
	}

	e.log.Info().
		Str("bucket", e.bucket).
		Str("key", key).
		Int("bytes", buf.Len()).
		Msg("Exported risk report")

	return key, nil
}
