package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/VSP7988/ISD/internal/config"
	"github.com/VSP7988/ISD/internal/domain"
)

// deleteBatch is the S3 limit of keys per DeleteObjects call.
const deleteBatch = 1000

// S3Service is the object store of uploaded images. It talks to AWS S3 or
// any S3-compatible endpoint.
type S3Service struct {
	Client        *s3.Client
	publicBaseURL string
}

var _ domain.ObjectStore = (*S3Service)(nil)

// NewS3Service initializes the S3 client from the server configuration.
// Static keys are used when set, otherwise the default AWS chain applies.
func NewS3Service(ctx context.Context, cfg *config.Config) (*S3Service, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return NewS3ServiceFromConfig(awsCfg, cfg.S3Endpoint, cfg.S3PublicBaseURL), nil
}

// NewS3ServiceFromConfig builds the service from a ready AWS config. A
// non-empty endpoint switches to path-style addressing.
func NewS3ServiceFromConfig(awsCfg aws.Config, endpoint, publicBaseURL string) *S3Service {
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Service{
		Client:        client,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// PutObject uploads body under key.
func (s *S3Service) PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		CacheControl:  aws.String("public, max-age=3600"),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

// PublicURL returns the address a browser uses to fetch key.
func (s *S3Service) PublicURL(bucket, key string) string {
	if s.publicBaseURL == "" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, key)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, bucket, key)
}

// RemoveObjects deletes keys in batches. Missing keys are not an error.
func (s *S3Service) RemoveObjects(ctx context.Context, bucket string, keys []string) error {
	for start := 0; start < len(keys); start += deleteBatch {
		end := min(start+deleteBatch, len(keys))

		ids := make([]types.ObjectIdentifier, 0, end-start)
		for _, k := range keys[start:end] {
			ids = append(ids, types.ObjectIdentifier{Key: aws.String(k)})
		}

		out, err := s.Client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &types.Delete{Objects: ids, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return fmt.Errorf("failed to delete objects from %s: %w", bucket, err)
		}
		if len(out.Errors) > 0 {
			e := out.Errors[0]
			return fmt.Errorf("failed to delete %s/%s: %s", bucket, aws.ToString(e.Key), aws.ToString(e.Message))
		}
	}
	return nil
}

// ListObjects returns every object of bucket.
func (s *S3Service) ListObjects(ctx context.Context, bucket string) ([]domain.StoredObject, error) {
	var objects []domain.StoredObject
	p := s3.NewListObjectsV2Paginator(s.Client, &s3.ListObjectsV2Input{Bucket: aws.String(bucket)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", bucket, err)
		}
		for _, o := range page.Contents {
			objects = append(objects, domain.StoredObject{
				Key:          aws.ToString(o.Key),
				Size:         aws.ToInt64(o.Size),
				LastModified: aws.ToTime(o.LastModified),
			})
		}
	}
	return objects, nil
}
