package utils

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// LocalStorage writes image files under Dir and serves them from
// BaseURL (the /uploads/ file server mount).
type LocalStorage struct {
	Dir     string
	BaseURL string
}

func (l *LocalStorage) Save(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	dest := filepath.Join(l.Dir, objectName)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return strings.TrimSuffix(l.BaseURL, "/") + "/" + objectName, nil
}

func (l *LocalStorage) Remove(ctx context.Context, url string) error {
	// The URL was produced by Save, so its last segment is the object
	// name inside Dir.
	name := path.Base(url)
	if name == "." || name == "/" || name == "" {
		return fmt.Errorf("bad upload url %q", url)
	}
	if err := os.Remove(filepath.Join(l.Dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// S3Storage stores images in an S3-compatible bucket with public-read
// objects.
type S3Storage struct {
	Client    *s3.S3
	Bucket    string
	Folder    string
	PublicURL string
}

func NewS3Storage(endpoint, region, accessKey, secretKey, bucket, folder, publicURL string) (*S3Storage, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Endpoint:    aws.String(endpoint),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 session: %w", err)
	}
	return &S3Storage{
		Client:    s3.New(sess),
		Bucket:    bucket,
		Folder:    folder,
		PublicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

func (s *S3Storage) Save(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	key := s.Folder + "/" + objectName
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}
	return s.PublicURL + "/" + key, nil
}

func (s *S3Storage) Remove(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.PublicURL+"/")
	if !ok {
		return fmt.Errorf("url %q is not under %q", url, s.PublicURL)
	}
	_, err := s.Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete from s3: %w", err)
	}
	return nil
}
