package aws

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	aws_s3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/code-payments/flipchat-moderation/s3"
)

type Config struct {
	// Endpoint overrides the S3 endpoint, e.g. "http://127.0.0.1:9000" for
	// MinIO or LocalStack. Path-style addressing is used when set.
	Endpoint string

	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// AWSStore is the AWS S3 implementation of the s3.Store interface.
type AWSStore struct {
	client *aws_s3.Client
	bucket string
}

func NewAWSStore(cfg Config) (*AWSStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket cannot be empty")
	}

	client := aws_s3.NewFromConfig(aws.Config{Region: cfg.Region}, func(o *aws_s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
		if cfg.AccessKey != "" {
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
	})

	return &AWSStore{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Upload uploads the data to S3 at the specified key.
func (a *AWSStore) Upload(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if data == nil {
		return fmt.Errorf("data cannot be nil")
	}

	input := &aws_s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}

	_, err := a.client.PutObject(ctx, input)
	if err != nil {
		return errors.Wrap(err, "failed to upload object to S3")
	}

	log.Infof("Uploaded data to s3://%s/%s", a.bucket, key)
	return nil
}

// Download retrieves the data from S3 at the specified key.
func (a *AWSStore) Download(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}

	input := &aws_s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}

	output, err := a.client.GetObject(ctx, input)
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, s3.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to download object from S3")
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read object data")
	}

	log.Infof("Downloaded data from s3://%s/%s", a.bucket, key)
	return data, nil
}
