package r2

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Client uploads generated illustrations to a Cloudflare R2 bucket so
// question cards can carry a short public URL instead of an inline data
// URI.
type Client struct {
	s3Client   *s3.Client
	bucketName string
	publicURL  string // base public URL for the bucket
}

// NewClient configures an R2 client from the environment. It returns
// (nil, nil) when the R2 variables are not fully set, in which case
// illustrations stay inline.
func NewClient() (*Client, error) {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	bucketName := os.Getenv("R2_BUCKET_NAME")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	secretAccessKey := os.Getenv("R2_SECRET_ACCESS_KEY")
	publicURL := os.Getenv("R2_PUBLIC_URL")

	if accountID == "" || bucketName == "" || accessKeyID == "" || secretAccessKey == "" || publicURL == "" {
		log.Println("WARN: R2 environment not fully configured, illustrations will be served inline")
		return nil, nil
	}

	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(r2Resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config for R2: %w", err)
	}

	log.Printf("INFO: R2 client initialized for bucket %q", bucketName)
	return &Client{
		s3Client:   s3.NewFromConfig(cfg),
		bucketName: bucketName,
		publicURL:  publicURL,
	}, nil
}

// UploadIllustration stores one rendered illustration under
// illustrations/<key> and returns its public URL.
func (c *Client) UploadIllustration(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if c == nil || c.s3Client == nil {
		return "", fmt.Errorf("R2 client not initialized")
	}
	if contentType == "" {
		contentType = "image/png"
	}

	objectKey := path.Join("illustrations", key)
	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ACL:         types.ObjectCannedACLPublicRead,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload illustration (key: %s): %w", objectKey, err)
	}

	baseURL, err := url.Parse(c.publicURL)
	if err != nil {
		return "", fmt.Errorf("invalid R2 public base URL configured: %w", err)
	}
	baseURL.Path = path.Join(baseURL.Path, objectKey)

	publicFileURL := baseURL.String()
	log.Printf("INFO: uploaded illustration to R2: %s", publicFileURL)
	return publicFileURL, nil
}
