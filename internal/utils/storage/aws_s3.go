package storage

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"foodgram-backend/domain"
	"foodgram-backend/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
)

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, fileName string, image domain.ImageUpload, folder string, allowed ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client   *s3.Client
		bucket   string
		region   string
		endpoint string
	}
)

func NewAwsS3() AwsS3 {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	endpoint := strings.TrimRight(utils.GetConfig("AWS_S3_ENDPOINT"), "/")

	cfg, err := config.LoadDefaultConfig(
		context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Fatalf("failed to load aws config: %v", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &awsS3{
		client:   client,
		bucket:   bucket,
		region:   region,
		endpoint: endpoint,
	}
}

func (a *awsS3) UploadFile(ctx context.Context, fileName string, image domain.ImageUpload, folder string, allowed ...string) (string, error) {
	if len(allowed) > 0 && !slices.Contains(allowed, image.ContentType) {
		return "", domain.ErrInvalidImage
	}

	objectKey := ObjectKey(folder, fileName, image.Extension)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(image.Data),
		ContentType: aws.String(image.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectKey, err)
	}
	return objectKey, nil
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", objectKey, err)
	}
	return nil
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return PublicLink(a.baseURL(), objectKey)
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	return ObjectKeyFromLink(a.baseURL(), link)
}

func (a *awsS3) baseURL() string {
	if a.endpoint != "" {
		return fmt.Sprintf("%s/%s", a.endpoint, a.bucket)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", a.bucket, a.region)
}

func ObjectKey(folder, fileName, extension string) string {
	key := fileName
	if extension != "" {
		key = fileName + "." + extension
	}
	if folder == "" {
		return key
	}
	return folder + "/" + key
}

func PublicLink(baseURL, objectKey string) string {
	return baseURL + "/" + objectKey
}

// ObjectKeyFromLink returns "" when link was not produced for baseURL.
func ObjectKeyFromLink(baseURL, link string) string {
	prefix := baseURL + "/"
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}
