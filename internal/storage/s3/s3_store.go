package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"

	"docket/internal/config"
	"docket/internal/domain"
	"docket/internal/port"
)

// API is the subset of the S3 client used by the store.
type API interface {
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

type s3Store struct {
	client API
	bucket string
}

// NewS3Store creates an S3-backed FileStore. Object keys are the resolver's
// paths, so the storage root acts as a key prefix.
func NewS3Store(ctx context.Context, cfg *config.S3Config) (port.FileStore, error) {
	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	return NewS3StoreWithClient(s3.NewFromConfig(awsCfg, s3Opts...), cfg.Bucket), nil
}

// NewS3StoreWithClient creates a FileStore over an existing client.
func NewS3StoreWithClient(client API, bucket string) port.FileStore {
	return &s3Store{client: client, bucket: bucket}
}

// EnsureDirectory is a no-op: S3 prefixes exist implicitly.
func (c *s3Store) EnsureDirectory(ctx context.Context, _ uuid.UUID) error {
	return ctx.Err()
}

func (c *s3Store) Move(ctx context.Context, src, dst string) error {
	if err := c.Copy(ctx, src, dst); err != nil {
		return fmt.Errorf("s3 move: %w", err)
	}
	if err := c.Remove(ctx, src); err != nil {
		return fmt.Errorf("s3 move: %w", err)
	}
	return nil
}

func (c *s3Store) Copy(ctx context.Context, src, dst string) error {
	exists, err := c.Exists(ctx, dst)
	if err != nil {
		return fmt.Errorf("s3 copy: %w", err)
	}
	if exists {
		return fmt.Errorf("s3 copy: %w: %s", domain.ErrDestinationExists, dst)
	}
	_, err = c.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(c.bucket),
		CopySource: aws.String(c.bucket + "/" + src),
		Key:        aws.String(dst),
	})
	if err != nil {
		return fmt.Errorf("s3 copy: %w", err)
	}
	return nil
}

func (c *s3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.head(ctx, key)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *s3Store) Size(ctx context.Context, key string) (int64, error) {
	out, err := c.head(ctx, key)
	if err != nil {
		return 0, err
	}
	return aws.ToInt64(out.ContentLength), nil
}

func (c *s3Store) head(ctx context.Context, key string) (*s3.HeadObjectOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 head: %w", err)
	}
	return out, nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchKey")
}

func (c *s3Store) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete: %w", err)
	}
	return nil
}
