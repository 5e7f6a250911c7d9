package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const scheme = "s3://"

// Config addresses an S3-compatible endpoint.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// Location is an object in a bucket.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return scheme + l.Bucket + "/" + l.Key
}

// IsRemote reports whether path names an object storage location.
func IsRemote(path string) bool {
	return strings.HasPrefix(path, scheme)
}

// ParseURI splits s3://bucket/key.
func ParseURI(uri string) (Location, error) {
	if !IsRemote(uri) {
		return Location{}, fmt.Errorf("%q is not an %s location", uri, scheme)
	}
	bucket, key, _ := strings.Cut(strings.TrimPrefix(uri, scheme), "/")
	key = strings.TrimLeft(key, "/")
	if bucket == "" || key == "" {
		return Location{}, fmt.Errorf("invalid location %q: expected %s<bucket>/<key>", uri, scheme)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

// Validate checks that cfg carries everything a client needs.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return errors.New("s3 endpoint is required")
	}
	if strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "" {
		return errors.New("s3 access key and secret key are required")
	}
	return nil
}

// Store writes objects through a minio client.
type Store struct {
	client *minio.Client
}

// NewStore creates a client for cfg. No request is made until Put.
func NewStore(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(strings.TrimSpace(cfg.Endpoint), &minio.Options{
		Creds:  credentials.NewStaticV4(strings.TrimSpace(cfg.AccessKey), strings.TrimSpace(cfg.SecretKey), ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &Store{client: client}, nil
}

// Put uploads data to loc, replacing any existing object.
func (s *Store) Put(ctx context.Context, loc Location, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, loc.Bucket, loc.Key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", loc, err)
	}
	return nil
}
