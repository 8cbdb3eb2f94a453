package s3

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Service struct {
	client PutObjectAPI
}

func NewS3Service(client PutObjectAPI) *S3Service {
	return &S3Service{client: client}
}

func (s *S3Service) ParseS3URI(s3Uri string) (string, string, error) {
	if !strings.HasPrefix(s3Uri, "s3://") {
		return "", "", fmt.Errorf("invalid S3 URI: must start with 's3://'")
	}

	uriPath := strings.TrimPrefix(s3Uri, "s3://")

	parts := strings.SplitN(uriPath, "/", 2)
	if len(parts) < 1 || parts[0] == "" {
		return "", "", fmt.Errorf("invalid S3 URI: missing bucket name")
	}

	bucket := parts[0]
	prefix := ""
	if len(parts) > 1 {
		prefix = parts[1]
	}

	return bucket, prefix, nil
}

// UploadTemplate stores body under the URI's prefix and returns the object's s3:// location.
func (s *S3Service) UploadTemplate(ctx context.Context, s3Uri, fileName, contentType string, body []byte) (string, error) {
	bucket, prefix, err := s.ParseS3URI(s3Uri)
	if err != nil {
		return "", err
	}

	key := path.Join(prefix, fileName)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", key, bucket, err)
	}

	location := fmt.Sprintf("s3://%s/%s", bucket, key)
	slog.Info("☁️ uploaded template", "location", location)
	return location, nil
}
