package storage

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Credentials carries optional overrides for the S3 backend. When AccessKey
// and SecretKey are empty the SDK's default chain (env, shared config, IMDS)
// applies. Endpoint supports S3-compatible stores such as MinIO.
type S3Credentials struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewS3Client builds an S3 client, failing fast on unusable configuration.
func NewS3Client(ctx context.Context, creds S3Credentials) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if creds.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(creds.Region))
	}
	if creds.AccessKey != "" && creds.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(creds.AccessKey, creds.SecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if creds.Endpoint != "" {
			o.BaseEndpoint = aws.String(creds.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// s3API is the slice of the S3 client the bucket adapter uses.
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// s3Bucket adapts an S3 client to blobAPI for one bucket.
type s3Bucket struct {
	client s3API
	bucket string
}

var _ blobAPI = (*s3Bucket)(nil)

func newS3Bucket(client s3API, bucket string) *s3Bucket {
	return &s3Bucket{client: client, bucket: bucket}
}

func (b *s3Bucket) Download(ctx context.Context, key string, dst *os.File) error {
	resp, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("get object %q: %w", key, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return fmt.Errorf("download object %q: %w", key, err)
	}
	return nil
}

func (b *s3Bucket) Upload(ctx context.Context, key, srcPath, contentType string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open upload source: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat upload source: %w", err)
	}

	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}

func (b *s3Bucket) Stat(ctx context.Context, key string) error {
	_, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (b *s3Bucket) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(b.bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}
	for {
		page, err := b.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			keys = append(keys, *obj.Key)
		}
		if page.IsTruncated == nil || !*page.IsTruncated {
			break
		}
		input.ContinuationToken = page.NextContinuationToken
	}
	return keys, nil
}

func (b *s3Bucket) Delete(ctx context.Context, key string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	return err
}
