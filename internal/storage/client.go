// Package storage wraps the S3-compatible blob store holding raw
// uploads. Objects are addressed as "uploads/<fileName>".
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Client holds the configuration for the R2/S3 bucket of raw uploads.
type Client struct {
	s3Client   *s3.Client
	bucketName string
}

// NewClientFromEnv creates a blob store client from the R2 environment
// variables (CLOUDFLARE_ACCOUNT_ID, R2_BUCKET_NAME, R2_ACCESS_KEY_ID,
// R2_SECRET_ACCESS_KEY).
func NewClientFromEnv(ctx context.Context) (*Client, error) {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	bucketName := os.Getenv("R2_BUCKET_NAME")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	secretAccessKey := os.Getenv("R2_SECRET_ACCESS_KEY")

	if accountID == "" || bucketName == "" || accessKeyID == "" || secretAccessKey == "" {
		return nil, fmt.Errorf("blob store environment variables not fully configured (CLOUDFLARE_ACCOUNT_ID, R2_BUCKET_NAME, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY)")
	}

	// Custom endpoint resolver for Cloudflare R2.
	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithEndpointResolverWithOptions(r2Resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	log.Printf("INFO: Blob store client initialized for bucket '%s'", bucketName)
	return &Client{
		s3Client:   s3.NewFromConfig(cfg),
		bucketName: bucketName,
	}, nil
}

// objectKey returns the bucket key for an uploaded file name.
func objectKey(fileName string) string {
	return "uploads/" + fileName
}

// Upload stores the content at uploads/<fileName>, overwriting any
// existing object under that key.
func (c *Client) Upload(ctx context.Context, fileName, contentType string, content io.Reader) error {
	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(objectKey(fileName)),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %q: %w", fileName, err)
	}
	log.Printf("INFO: Uploaded %s to blob store", objectKey(fileName))
	return nil
}

// Download retrieves the raw bytes stored at uploads/<fileName>.
func (c *Client) Download(ctx context.Context, fileName string) ([]byte, error) {
	out, err := c.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objectKey(fileName)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %q: %w", fileName, err)
	}
	defer out.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", fileName, err)
	}
	return buf.Bytes(), nil
}

// Exists reports whether an object is already stored under the file
// name, used to ask for explicit confirmation before superseding it.
func (c *Client) Exists(ctx context.Context, fileName string) (bool, error) {
	_, err := c.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objectKey(fileName)),
	})
	if err != nil {
		var notFound *s3types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %q: %w", fileName, err)
	}
	return true, nil
}
