package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Service is a client for S3-compatible storage.
type S3Service struct {
	client *minio.Client
}

// NewS3Service connects to the MinIO server using credentials from
// environment variables.
func NewS3Service() (*S3Service, error) {
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if minioEndpoint == "" || minioAccessKey == "" || minioSecretKey == "" {
		return nil, fmt.Errorf("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}

	minioClient, err := minio.New(minioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(minioAccessKey, minioSecretKey, ""),
		Secure: useSSL,
		Region: os.Getenv("MINIO_REGION"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	log.Println("Successfully connected to MinIO endpoint:", minioEndpoint)
	return &S3Service{client: minioClient}, nil
}

// GetObject reads a whole object into memory.
func (s *S3Service) GetObject(ctx context.Context, bucketName, objectKey string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("object %s/%s does not exist", bucketName, objectKey)
		}
		return nil, fmt.Errorf("failed to read object %s/%s: %w", bucketName, objectKey, err)
	}

	log.Printf("Retrieved %d bytes from bucket '%s' with key '%s'", len(data), bucketName, objectKey)
	return data, nil
}

// ObjectSource serves one fixed object, e.g. the landing page template.
type ObjectSource struct {
	Service *S3Service
	Bucket  string
	Key     string
}

func (o ObjectSource) FetchTemplate(ctx context.Context) ([]byte, error) {
	return o.Service.GetObject(ctx, o.Bucket, o.Key)
}
