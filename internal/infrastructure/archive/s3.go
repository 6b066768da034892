package archive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/DanielPopoola/donation-gateway/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the slice of the S3 API the archive needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archive stores raw callback bodies under {prefix}/{orderID}/{unixnano}.{ext}.
type S3Archive struct {
	client ObjectPutter
	bucket string
	prefix string
	now    func() time.Time
	logger *slog.Logger
}

func NewS3Archive(client ObjectPutter, bucket, prefix string, logger *slog.Logger) *S3Archive {
	return &S3Archive{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
		logger: logger,
	}
}

// NewFromConfig builds an S3 client from the default AWS credential chain.
func NewFromConfig(ctx context.Context, cfg config.ArchiveConfig, logger *slog.Logger) (*S3Archive, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewS3Archive(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Prefix, logger), nil
}

func (a *S3Archive) Archive(ctx context.Context, orderID, contentType string, body []byte) error {
	key := a.key(orderID, contentType)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentTypeOrDefault(contentType)),
	})
	if err != nil {
		return fmt.Errorf("archive callback %s: %w", key, err)
	}

	a.logger.Debug("callback archived", "bucket", a.bucket, "key", key, "bytes", len(body))
	return nil
}

func (a *S3Archive) key(orderID, contentType string) string {
	ext := "txt"
	if strings.Contains(contentType, "json") {
		ext = "json"
	}
	name := fmt.Sprintf("%d.%s", a.now().UnixNano(), ext)
	return path.Join(a.prefix, sanitize(orderID), name)
}

func contentTypeOrDefault(ct string) string {
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}

// sanitize keeps order ids from escaping their key prefix.
func sanitize(orderID string) string {
	if orderID == "" {
		return "unknown"
	}
	return strings.NewReplacer("/", "_", "..", "_").Replace(orderID)
}

// Nop discards callback bodies. Used when no bucket is configured.
type Nop struct{}

func (Nop) Archive(context.Context, string, string, []byte) error { return nil }
