// Package secrets resolves the key material used to sign session tokens,
// either from configuration or from an object in S3-compatible storage.
package secrets

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/inkwell/internal/common"
	sc "github.com/dmitrijs2005/inkwell/internal/server/config"
)

// maxSecretSize bounds the object read from storage.
const maxSecretSize = 64 * 1024

type Provider interface {
	Secret(ctx context.Context) ([]byte, error)
}

// Static serves a secret held in memory.
type Static []byte

func (s Static) Secret(context.Context) ([]byte, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("secret is empty: %w", common.ErrValidation)
	}
	return bytes.Clone(s), nil
}

// ObjectGetter is the subset of *s3.Client used here.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 reads the secret from an object. Surrounding whitespace is trimmed so a
// file uploaded with a trailing newline works.
type S3 struct {
	client ObjectGetter
	bucket string
	key    string
}

func NewS3(client ObjectGetter, bucket, key string) *S3 {
	return &S3{client: client, bucket: bucket, key: key}
}

func (s *S3) Secret(ctx context.Context) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("get secret s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(io.LimitReader(out.Body, maxSecretSize+1))
	if err != nil {
		return nil, fmt.Errorf("read secret s3://%s/%s: %w", s.bucket, s.key, err)
	}
	if len(b) > maxSecretSize {
		return nil, fmt.Errorf("secret s3://%s/%s exceeds %d bytes: %w", s.bucket, s.key, maxSecretSize, common.ErrValidation)
	}

	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("secret s3://%s/%s is empty: %w", s.bucket, s.key, common.ErrValidation)
	}
	return b, nil
}

// Seams for tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig
	newS3Client          = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectGetter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// FromConfig picks the secret source: the S3 object named by SecretS3Key when
// set, otherwise the inline SecretKey.
func FromConfig(ctx context.Context, cfg *sc.Config) (Provider, error) {
	if cfg.SecretS3Key == "" {
		return Static(cfg.SecretKey), nil
	}

	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3Client(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3(client, cfg.S3Bucket, cfg.SecretS3Key), nil
}
