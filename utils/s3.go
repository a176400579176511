package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Uploader stores meal photos submitted for analysis.
type S3Uploader struct {
	client *s3.Client
	bucket string
}

func NewS3Uploader(cfg aws.Config, bucket string) *S3Uploader {
	return &S3Uploader{client: s3.NewFromConfig(cfg), bucket: bucket}
}

// DecodeDataURI splits a "data:<mime>;base64,<data>" payload into raw bytes
// and the declared content type.
func DecodeDataURI(dataURI string) ([]byte, string, error) {
	parts := strings.SplitN(dataURI, ",", 2)
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "data:") {
		return nil, "", fmt.Errorf("invalid base64 image")
	}
	mediaType := strings.TrimPrefix(parts[0], "data:")
	contentType := strings.SplitN(mediaType, ";", 2)[0]

	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return data, contentType, nil
}

// UploadMealPhoto writes the image to the bucket and returns the object key.
func (u *S3Uploader) UploadMealPhoto(ctx context.Context, data []byte, contentType string) (string, error) {
	ext := ".jpg"
	if sub := strings.SplitN(contentType, "/", 2); len(sub) == 2 && sub[1] != "jpeg" {
		ext = "." + sub[1]
	}
	key := fmt.Sprintf("meal-photos/%s%s", uuid.NewString(), ext)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return key, nil
}
