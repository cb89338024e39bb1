// Package storage 提供文件模块的对象存储后端（S3 兼容）
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/ambalavanan01/self-study-hub/config"
)

// ObjectStorage 对象存储接口，文件服务依赖此抽象
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, data io.Reader) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// S3Storage ObjectStorage 的 S3 实现
type S3Storage struct {
	client        *s3.S3
	bucket        string
	publicBaseURL string
}

// NewS3Storage 创建 S3 存储客户端。
// Endpoint 为空时使用 AWS 默认端点，非空时兼容 MinIO 等自建服务
func NewS3Storage(cfg *config.StorageConfig) (*S3Storage, error) {
	s3Config := &aws.Config{
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:      aws.String(cfg.Region),
	}
	if cfg.Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.Endpoint)
		s3Config.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("初始化 S3 会话失败: %w", err)
	}

	return &S3Storage{
		client:        s3.New(sess),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, key, contentType string, data io.Reader) error {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        aws.ReadSeekCloser(data),
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// PublicURL 拼接对象的公开访问地址
func (s *S3Storage) PublicURL(key string) string {
	return s.publicBaseURL + "/" + key
}
