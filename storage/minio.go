package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"EchoFM/config"
	"EchoFM/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Object key namespaces inside the bucket.
const (
	SongPrefix  = "songs/"
	ImagePrefix = "images/"
)

// ErrObjectExists is returned when an upload key collides with an existing object.
var ErrObjectExists = errors.New("object already exists")

var minioClient *minio.Client

// InitMinio 初始化 MinIO 客户端并确保存储桶存在
func InitMinio(cfg *config.Config) error {
	logger.Info("正在连接 MinIO 服务器...",
		logger.String("endpoint", cfg.MinioEndpoint),
		logger.String("bucket", cfg.MinioBucket),
	)

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return fmt.Errorf("创建 MinIO 客户端失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return fmt.Errorf("检查存储桶失败: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{
			Region: cfg.MinioRegion,
		})
		if err != nil {
			return fmt.Errorf("创建存储桶失败: %w", err)
		}
		logger.Info("成功创建存储桶", logger.String("bucket", cfg.MinioBucket))
	}

	minioClient = client
	logger.Info("MinIO 客户端初始化成功")
	return nil
}

// GetMinioClient 获取 MinIO 客户端实例
func GetMinioClient() *minio.Client {
	return minioClient
}

// Store wraps the MinIO client with the bucket and locator configuration.
type Store struct {
	client    *minio.Client
	bucket    string
	publicURL string
	useSSL    bool
	endpoint  string
}

// NewStore creates a Store from the already initialized global client.
func NewStore(cfg *config.Config) *Store {
	return &Store{
		client:    minioClient,
		bucket:    cfg.MinioBucket,
		publicURL: cfg.MinioPublicURL,
		useSSL:    cfg.MinioUseSSL,
		endpoint:  cfg.MinioEndpoint,
	}
}

// Upload stores an object under key, rejecting key collisions with
// ErrObjectExists. The caller owns the reader.
func (s *Store) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if s.client == nil {
		return fmt.Errorf("minio client not initialized")
	}

	// PutObject overwrites silently, so probe for the key first.
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return fmt.Errorf("upload %s: %w", key, ErrObjectExists)
	}
	if resp := minio.ToErrorResponse(err); resp.Code != "NoSuchKey" {
		return fmt.Errorf("failed to stat object %s: %w", key, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=3600",
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return nil
}

// Remove deletes an object. Used to roll back half-finished uploads.
func (s *Store) Remove(ctx context.Context, key string) error {
	if s.client == nil {
		return fmt.Errorf("minio client not initialized")
	}
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// PublicURL derives the externally reachable locator for an object key.
// Purely string assembly: the bucket is served with public read access, so
// no signing round trip is needed. Empty key yields an empty locator.
func (s *Store) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key)
	}
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key)
}
