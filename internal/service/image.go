package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/AVKharkova/foodgram/config"
)

// ImageService turns base64 image payloads into stored URLs. It uploads
// to S3 when a bucket is configured and falls back to a local media
// directory served under /media/ otherwise.
type ImageService struct {
	s3Client *s3.Client
	bucket   string
	mediaDir string
	baseURL  string
}

func NewImageService(cfg *config.Config) (*ImageService, error) {
	svc := &ImageService{
		bucket:   cfg.S3Bucket,
		mediaDir: cfg.MediaDir,
		baseURL:  strings.TrimRight(cfg.PublicBaseURL, "/"),
	}

	if cfg.S3Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.S3Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		svc.s3Client = s3.NewFromConfig(awsCfg)
		return svc, nil
	}

	if err := os.MkdirAll(filepath.Join(cfg.MediaDir, "recipes"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return svc, nil
}

// NewLocalImageService stores images under dir only. Used by the tests
// and by deployments without S3 credentials.
func NewLocalImageService(dir string) (*ImageService, error) {
	if err := os.MkdirAll(filepath.Join(dir, "recipes"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &ImageService{mediaDir: dir}, nil
}

// Store persists an image payload and returns its URL. Payloads that are
// not data URIs are treated as already-stored references and passed
// through untouched.
func (s *ImageService) Store(ctx context.Context, payload string) (string, error) {
	if !strings.HasPrefix(payload, "data:") {
		return payload, nil
	}

	data, ext, err := decodeDataURI(payload)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("recipes/%s.%s", uuid.New().String(), ext)

	if s.s3Client != nil {
		_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(name),
			Body:        bytes.NewReader(data),
			ContentType: aws.String("image/" + ext),
		})
		if err != nil {
			return "", fmt.Errorf("failed to upload to S3: %w", err)
		}
		url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, name)
		log.Printf("Uploaded image to S3: %s", url)
		return url, nil
	}

	path := filepath.Join(s.mediaDir, filepath.FromSlash(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return s.baseURL + "/media/" + name, nil
}

// decodeDataURI splits a "data:image/<type>;base64,<data>" payload into
// raw bytes and a file extension.
func decodeDataURI(payload string) ([]byte, string, error) {
	header, encoded, ok := strings.Cut(payload, ";base64,")
	if !ok {
		return nil, "", fmt.Errorf("image payload is not a base64 data URI")
	}

	ext := "png"
	if mediaType, found := strings.CutPrefix(header, "data:image/"); found && mediaType != "" {
		ext = mediaType
		if ext == "jpeg" {
			ext = "jpg"
		}
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image payload: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("image payload is empty")
	}
	return data, ext, nil
}
