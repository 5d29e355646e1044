package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"Maqal-Backend/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var (
	AllowImage = []string{".jpg", ".jpeg", ".png", ".webp"}
	AllowAudio = []string{".mp3", ".m4a", ".aac", ".ogg", ".wav"}

	ErrFileTypeNotAllowed = errors.New("file type not allowed")
)

type (
	AwsS3 interface {
		UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedExt ...string) (string, error)
		UpdateFile(objectKey string, file *multipart.FileHeader, allowedExt ...string) (string, error)
		DeleteFile(objectKey string) error
		GetObjectKeyFromLink(link string) string
		GetPublicLinkKey(objectKey string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3() AwsS3 {
	region := utils.GetConfig("AWS_S3_REGION")
	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		fmt.Printf("Error loading AWS config: %v\n", err)
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: utils.GetConfig("AWS_S3_BUCKET"),
		region: region,
	}
}

func checkExtension(file *multipart.FileHeader, allowedExt []string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowed := range allowedExt {
		if ext == allowed {
			return ext, nil
		}
	}
	return "", ErrFileTypeNotAllowed
}

func (a *awsS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedExt ...string) (string, error) {
	ext, err := checkExtension(file, allowedExt)
	if err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("%s/%s%s", folder, fileName, ext)
	return a.putObject(objectKey, file)
}

func (a *awsS3) UpdateFile(objectKey string, file *multipart.FileHeader, allowedExt ...string) (string, error) {
	if _, err := checkExtension(file, allowedExt); err != nil {
		return "", err
	}
	return a.putObject(objectKey, file)
}

func (a *awsS3) putObject(objectKey string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	_, err = a.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
		Body:   src,
		ACL:    types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", err
	}

	return objectKey, nil
}

func (a *awsS3) DeleteFile(objectKey string) error {
	_, err := a.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", a.bucket, a.region)
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}
