package utils

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Uploader stores files in an S3-compatible bucket.
type S3Uploader struct {
	client *s3.S3
	bucket string
}

// NewS3Uploader builds a client for an S3-compatible endpoint.
func NewS3Uploader(accessKey, secretKey, bucket, region, endpoint string) *S3Uploader {
	sess := session.Must(session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Endpoint:    aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	}))
	return &S3Uploader{client: s3.New(sess), bucket: bucket}
}

// Upload writes the file under folder/fileName and returns the object key.
func (u *S3Uploader) Upload(ctx context.Context, file []byte, fileName, folder, contentType string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}
	return filePath, nil
}
