package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const DefaultBucket = "captain-scorecards"

// ErrNotConfigured is returned by NewFromEnv when MINIO_ENDPOINT is unset
var ErrNotConfigured = errors.New("MINIO_ENDPOINT environment variable not set")

// Config holds S3-compatible storage settings
type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// ConfigFromEnv reads MINIO_* variables
func ConfigFromEnv() Config {
	cfg := Config{
		Endpoint:  os.Getenv("MINIO_ENDPOINT"),
		Region:    os.Getenv("MINIO_REGION"),
		Bucket:    os.Getenv("MINIO_BUCKET"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
	}
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	switch strings.ToLower(os.Getenv("MINIO_USE_SSL")) {
	case "1", "true", "yes":
		cfg.UseSSL = true
	}
	return cfg
}

type Store struct {
	client *minio.Client
	bucket string
}

// New connects to the endpoint and creates the bucket if it does not exist
func New(ctx context.Context, cfg Config) (*Store, error) {
	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		slog.Info("Created bucket", "bucket", cfg.Bucket)
	}

	return &Store{client: cli, bucket: cfg.Bucket}, nil
}

// NewFromEnv builds a Store from MINIO_* variables
func NewFromEnv(ctx context.Context) (*Store, error) {
	cfg := ConfigFromEnv()
	if cfg.Endpoint == "" {
		return nil, ErrNotConfigured
	}
	return New(ctx, cfg)
}

// Upload puts a local file under key and returns its object URL
func (s *Store) Upload(ctx context.Context, localPath, key string) (string, error) {
	_, err := s.client.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: ContentType(localPath),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", localPath, err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, key)
	return url, nil
}

// ObjectKey places a scorecard file under its batch prefix
func ObjectKey(batchID, localPath string) string {
	if batchID == "" {
		batchID = "legacy"
	}
	return path.Join("scorecards", batchID, filepath.Base(localPath))
}

func ContentType(localPath string) string {
	switch strings.ToLower(filepath.Ext(localPath)) {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".parquet":
		return "application/vnd.apache.parquet"
	default:
		return "application/octet-stream"
	}
}
