package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/todoweb/internal/logging"
	sc "github.com/dmitrijs2005/todoweb/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// DefaultPresignExpiry is the lifetime of URLs from PresignedGetURL when the
// caller passes zero.
const DefaultPresignExpiry = time.Hour

// ErrBucketNotConfigured is returned by NewAssetService when no bucket is set.
var ErrBucketNotConfigured = errors.New("s3 bucket is not configured")

// s3API is the subset of *s3.Client used by AssetService.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

var contentTypes = map[string]string{
	".html":  "text/html",
	".css":   "text/css",
	".js":    "application/javascript",
	".json":  "application/json",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".eot":   "application/vnd.ms-fontobject",
}

// ContentTypeFor returns the MIME type for name's extension, or
// application/octet-stream for unknown extensions.
func ContentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// AssetService publishes the frontend's static assets to an S3-compatible
// bucket.
type AssetService struct {
	bucket  string
	client  s3API
	presign *s3.PresignClient
	logger  logging.Logger
}

// NewAssetService builds the S3 client from cfg. Static credentials are used
// when S3RootUser is set, the default AWS chain otherwise. A custom
// S3BaseEndpoint (e.g. MinIO) switches to path-style addressing.
func NewAssetService(ctx context.Context, cfg *sc.Config, logger logging.Logger) (*AssetService, error) {
	if cfg.S3Bucket == "" {
		return nil, ErrBucketNotConfigured
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.S3Region)}
	if cfg.S3RootUser != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &AssetService{
		bucket:  cfg.S3Bucket,
		client:  client,
		presign: newS3PresignClient(client),
		logger:  logger.With("module", "assets"),
	}, nil
}

// UploadFile uploads the local file at filePath under key. An empty
// contentType is derived from the file extension.
func (s *AssetService) UploadFile(ctx context.Context, filePath, key, contentType string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	if contentType == "" {
		contentType = ContentTypeFor(filePath)
	}

	return s.Upload(ctx, f, key, contentType)
}

// Upload stores the contents of r under key.
func (s *AssetService) Upload(ctx context.Context, r io.Reader, key, contentType string) error {
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		s.logger.Error(ctx, "upload failed", "bucket", s.bucket, "key", key, "error", err)
		return fmt.Errorf("upload %s: %w", key, err)
	}

	s.logger.Info(ctx, "uploaded", "bucket", s.bucket, "key", key)
	return nil
}

func (s *AssetService) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}

	s.logger.Info(ctx, "deleted", "bucket", s.bucket, "key", key)
	return nil
}

// List returns every key under prefix, following continuation tokens.
func (s *AssetService) List(ctx context.Context, prefix string) ([]string, error) {
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	keys := make([]string, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}

	return keys, nil
}

// PresignedGetURL returns a time-limited download URL for key.
func (s *AssetService) PresignedGetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = DefaultPresignExpiry
	}

	req, err := presignGetObject(s.presign, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}

	return req.URL, nil
}

// SyncResult summarizes a SyncDirectory run.
type SyncResult struct {
	Uploaded int
	Total    int
}

// SyncDirectory uploads every regular file below dir to prefix/<relative
// path>. Individual failures do not stop the walk; they are joined into the
// returned error.
func (s *AssetService) SyncDirectory(ctx context.Context, dir, prefix string) (SyncResult, error) {
	var res SyncResult

	info, err := os.Stat(dir)
	if err != nil {
		return res, err
	}
	if !info.IsDir() {
		return res, fmt.Errorf("%s is not a directory", dir)
	}

	var failures []error
	walkErr := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}

		res.Total++
		key := path.Join(prefix, filepath.ToSlash(rel))
		if err := s.UploadFile(ctx, p, key, ""); err != nil {
			failures = append(failures, err)
			return nil
		}
		res.Uploaded++
		return nil
	})
	if walkErr != nil {
		failures = append(failures, walkErr)
	}

	s.logger.Info(ctx, "sync finished", "dir", dir, "uploaded", res.Uploaded, "total", res.Total)
	return res, errors.Join(failures...)
}
