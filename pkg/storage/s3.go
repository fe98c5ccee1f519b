package storage

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/spf13/viper"
)

// ErrNotConfigured is returned when the media store is used without AWS
// credentials configured.
var ErrNotConfigured = errors.New("media storage is not configured")

// Object describes a stored media asset.
type Object struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	URL          string    `json:"url"`
}

var s3Client *s3.S3

// Init builds the shared S3 client. Media endpoints stay registered but fail
// with ErrNotConfigured when the AWS settings are absent.
func Init() error {
	if viper.GetString("AWS_ACCESS_KEY") == "" || viper.GetString("S3_BUCKET_NAME") == "" {
		return ErrNotConfigured
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(viper.GetString("AWS_REGION")),
		Credentials: credentials.NewStaticCredentials(viper.GetString("AWS_ACCESS_KEY"), viper.GetString("AWS_SECRET_KEY"), ""),
	})
	if err != nil {
		return fmt.Errorf("initializing AWS session: %w", err)
	}

	s3Client = s3.New(sess)
	return nil
}

// Upload stores a media asset under key and returns its public URL.
func Upload(key string, body []byte, contentType string) (string, error) {
	if s3Client == nil {
		return "", ErrNotConfigured
	}

	bucket := viper.GetString("S3_BUCKET_NAME")
	_, err := s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", key, err)
	}

	return ObjectURL(key), nil
}

// List returns every stored media asset under the uploads prefix.
func List() ([]Object, error) {
	if s3Client == nil {
		return nil, ErrNotConfigured
	}

	bucket := viper.GetString("S3_BUCKET_NAME")
	out, err := s3Client.ListObjectsV2(&s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String("uploads/"),
	})
	if err != nil {
		return nil, fmt.Errorf("listing media objects: %w", err)
	}

	objects := make([]Object, 0, len(out.Contents))
	for _, item := range out.Contents {
		objects = append(objects, Object{
			Key:          aws.StringValue(item.Key),
			Size:         aws.Int64Value(item.Size),
			LastModified: aws.TimeValue(item.LastModified),
			URL:          ObjectURL(aws.StringValue(item.Key)),
		})
	}

	return objects, nil
}

// Delete removes a stored media asset.
func Delete(key string) error {
	if s3Client == nil {
		return ErrNotConfigured
	}

	bucket := viper.GetString("S3_BUCKET_NAME")
	_, err := s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}

	return nil
}

// ObjectURL builds the public URL for a stored key.
func ObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		viper.GetString("S3_BUCKET_NAME"), viper.GetString("AWS_REGION"), key)
}
