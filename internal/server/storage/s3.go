package storage

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	serverconfig "github.com/Ruthu543/Pneumonia-Prediction/internal/server/config"
)

// S3Store — хранилище в S3-совместимом bucket.
//
// Ключи объектов складываются под префиксом (uploads/ или reports/),
// браузерные ссылки выдаются presigned GET с ограниченным сроком жизни.
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	prefix  string
	ttl     awsPresignTTL
}

type awsPresignTTL = func(*s3.PresignOptions)

// NewS3Store создаёт S3-клиент по конфигу сервера.
//
// endpoint непустой — кастомный (MinIO и т.п.), включается path-style.
func NewS3Store(ctx context.Context, cfg serverconfig.S3Config, prefix string) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		prefix:  prefix,
		ttl:     s3.WithPresignExpires(cfg.PresignTTL),
	}, nil
}

func (s *S3Store) key(name string) string {
	return s.prefix + "/" + name
}

// Save кладёт объект в bucket, затирая существующий ключ.
func (s *S3Store) Save(ctx context.Context, name string, r io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   r,
	})
	return err
}

// Open скачивает объект из bucket.
func (s *S3Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// URL возвращает presigned GET ссылку на объект.
func (s *S3Store) URL(ctx context.Context, name string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	}, s.ttl)
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
