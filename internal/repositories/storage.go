package repositories

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rahulm-dev/inkwell/internal/config"
)

var (
	StorageClient *s3.Client
	StorageBucket string
)

// InitStorage builds the S3 client for document uploads from static
// credentials. A custom endpoint switches it to an S3-compatible store.
func InitStorage(cfg config.StorageConfig) error {
	StorageBucket = cfg.BucketName

	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Region:      cfg.Region,
	}

	StorageClient = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	log.Println("Successfully initialized document storage client")

	return nil
}

// PresignDocumentUpload creates a presigned URL for uploading a document.
func PresignDocumentUpload(ctx context.Context, key string, expires time.Duration) (string, error) {
	presigner := s3.NewPresignClient(StorageClient)
	req, err := presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(StorageBucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// PresignDocumentDownload creates a presigned URL for fetching a document.
func PresignDocumentDownload(ctx context.Context, key string, expires time.Duration) (string, error) {
	presigner := s3.NewPresignClient(StorageClient)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(StorageBucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// DocumentExists checks whether a document key is present in the bucket.
func DocumentExists(ctx context.Context, key string) (bool, error) {
	_, err := StorageClient.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(StorageBucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *s3types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
