package utils

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Uploader archives meal photos to a bucket. Archiving is best-effort;
// the caller decides whether a failed upload matters.
type S3Uploader struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Uploader(ctx context.Context, region, bucket string) (*S3Uploader, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config for s3: %w", err)
	}
	return &S3Uploader{client: s3.NewFromConfig(cfg), bucket: bucket, region: region}, nil
}

// UploadFile stores the file under keyPrefix with a fresh UUID name and
// returns the public object URL.
func (u *S3Uploader) UploadFile(ctx context.Context, path, keyPrefix string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	ext := filepath.Ext(path)
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := fmt.Sprintf("%s/%s%s", keyPrefix, uuid.NewString(), ext)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}
