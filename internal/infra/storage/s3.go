package storage

import (
	"context"
	"fmt"
	"io"

	domainrepo "github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// テストで差し替える
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3に保存する
type S3FileStore struct {
	client objectAPI
	bucket string
	prefix string
}

var _ domainrepo.FileStore = (*S3FileStore)(nil)

// NewS3Client はAWSの設定を読んでS3クライアントを作る
// endpointがあればLocalStack向けにパス形式で接続する
func NewS3Client(ctx context.Context, endpoint string) (*s3.Client, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.UsePathStyle = true
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// DI
func NewS3FileStore(client objectAPI, bucket string, prefix string) *S3FileStore {
	return &S3FileStore{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3FileStore) Save(ctx context.Context, key string, contentType string, body io.Reader, size int64) error {
	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.prefix + key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size >= 0 {
		in.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("put proof object: %w", err)
	}
	return nil
}

// S3は無いキーの削除も成功扱い
func (s *S3FileStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + key),
	})
	if err != nil {
		return fmt.Errorf("delete proof object: %w", err)
	}
	return nil
}
