package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockPutObjectClient struct {
	PutObjectFunc func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

func (m *MockPutObjectClient) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return m.PutObjectFunc(ctx, params, optFns...)
}

func TestS3Service_ParseS3URI(t *testing.T) {
	tests := []struct {
		name       string
		uri        string
		wantBucket string
		wantPrefix string
		wantErr    bool
	}{
		{name: "bucket_only", uri: "s3://templates", wantBucket: "templates"},
		{name: "bucket_and_prefix", uri: "s3://templates/api/prod", wantBucket: "templates", wantPrefix: "api/prod"},
		{name: "missing_scheme", uri: "templates/api", wantErr: true},
		{name: "missing_bucket", uri: "s3:///api", wantErr: true},
	}

	service := NewS3Service(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, prefix, err := service.ParseS3URI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantPrefix, prefix)
		})
	}
}

func TestS3Service_UploadTemplate(t *testing.T) {
	var captured *s3.PutObjectInput
	var body []byte

	client := &MockPutObjectClient{
		PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			captured = params
			var err error
			body, err = io.ReadAll(params.Body)
			return &s3.PutObjectOutput{}, err
		},
	}

	location, err := NewS3Service(client).UploadTemplate(context.Background(), "s3://templates/api/", "template.json", "application/json", []byte(`{"a":1}`))
	require.NoError(t, err)

	assert.Equal(t, "s3://templates/api/template.json", location)
	assert.Equal(t, "templates", aws.ToString(captured.Bucket))
	assert.Equal(t, "api/template.json", aws.ToString(captured.Key))
	assert.Equal(t, "application/json", aws.ToString(captured.ContentType))
	assert.Equal(t, `{"a":1}`, string(body))
}

func TestS3Service_UploadTemplate_Error(t *testing.T) {
	client := &MockPutObjectClient{
		PutObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			return nil, errors.New("NoSuchBucket")
		},
	}

	_, err := NewS3Service(client).UploadTemplate(context.Background(), "s3://missing", "template.json", "application/json", []byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoSuchBucket")
}
