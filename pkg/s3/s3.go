package s3

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/elnathantransportes-ai/troca/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type Client struct {
	s3Client *s3.S3
	bucket   string
}

func NewClient(cfg *config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// Support MinIO for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	client := &Client{
		s3Client: s3.New(sess),
		bucket:   cfg.S3BucketName,
	}

	_, err = client.s3Client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(cfg.S3BucketName),
	})
	if err != nil {
		// Try to create bucket if it doesn't exist (MinIO); ignore failures,
		// the first upload will report them anyway.
		client.s3Client.CreateBucket(&s3.CreateBucketInput{
			Bucket: aws.String(cfg.S3BucketName),
		})
	}

	return client, nil
}

// UploadFile stores the object and returns its public URL. The content type
// must be preserved so video payloads remain playable in the feed.
func (c *Client) UploadFile(key string, file io.Reader, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err := c.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return c.objectURL(key), nil
}

func (c *Client) DeleteFile(key string) error {
	_, err := c.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// DeleteFileByURL derives the object key from a URL previously returned by
// UploadFile and deletes the object. URLs that do not point at this bucket
// are ignored.
func (c *Client) DeleteFileByURL(url string) error {
	marker := "/" + c.bucket + "/"
	if idx := strings.Index(url, marker); idx >= 0 {
		return c.DeleteFile(url[idx+len(marker):])
	}
	if idx := strings.Index(url, ".amazonaws.com/"); idx >= 0 {
		return c.DeleteFile(url[idx+len(".amazonaws.com/"):])
	}
	return nil
}

func (c *Client) objectURL(key string) string {
	endpoint := aws.StringValue(c.s3Client.Config.Endpoint)
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		// MinIO URL format
		protocol := "https"
		if aws.BoolValue(c.s3Client.Config.DisableSSL) {
			protocol = "http"
		}
		endpoint = strings.TrimPrefix(strings.TrimPrefix(endpoint, "http://"), "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, c.bucket, key)
	}
	region := aws.StringValue(c.s3Client.Config.Region)
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, region, key)
}
