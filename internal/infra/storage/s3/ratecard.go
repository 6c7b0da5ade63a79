package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// maxRateCardBytes bounds the rate card download.
const maxRateCardBytes = 1 << 20

var ErrRateCardTooLarge = errors.New("s3: rate card exceeds size limit")

// objectGetter is the slice of the minio client the rate card source uses.
type objectGetter interface {
	GetObject(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (*minio.Object, error)
}

// RateCardSource reads the pricing rate card JSON from an S3-compatible bucket.
type RateCardSource struct {
	bucket string
	key    string
	client objectGetter
	logger *slog.Logger
}

// NewRateCardSource configures a source for bucket/key on the given endpoint.
func NewRateCardSource(endpoint string, useSSL bool, accessKey, secretKey, bucket, key string, logger *slog.Logger) (*RateCardSource, error) {
	cleanEndpoint := strings.TrimSpace(endpoint)
	if cleanEndpoint == "" {
		return nil, errors.New("s3: endpoint is required")
	}
	if bucket = strings.TrimSpace(bucket); bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}
	if key = strings.Trim(strings.TrimSpace(key), "/"); key == "" {
		return nil, errors.New("s3: object key is required")
	}
	client, err := minio.New(parseEndpoint(cleanEndpoint), &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(accessKey), strings.TrimSpace(secretKey), ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("s3: create client: %w", err)
	}
	return &RateCardSource{bucket: bucket, key: key, client: client, logger: logger}, nil
}

func (s *RateCardSource) Fetch(ctx context.Context) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("s3: get object: %w", err)
	}
	defer obj.Close()

	raw, err := io.ReadAll(io.LimitReader(obj, maxRateCardBytes+1))
	if err != nil {
		return nil, fmt.Errorf("s3: read rate card: %w", err)
	}
	if len(raw) > maxRateCardBytes {
		return nil, ErrRateCardTooLarge
	}
	if s.logger != nil {
		s.logger.Info("rate card fetched", "bucket", s.bucket, "key", s.key, "bytes", len(raw))
	}
	return raw, nil
}

func parseEndpoint(endpoint string) string {
	if parsed, err := url.Parse(endpoint); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	return endpoint
}
