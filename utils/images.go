package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
)

var ErrInvalidImage = errors.New("unsupported or corrupt image")

// StoredImage points at an uploaded image. Key is what Delete expects.
type StoredImage struct {
	URL string
	Key string
}

type ImageStore interface {
	Save(ctx context.Context, r io.Reader) (StoredImage, error)
	Delete(ctx context.Context, key string) error
}

// OptimizeImage decodes a png, jpeg or gif, shrinks it to at most 800px wide
// and re-encodes it as jpeg.
func OptimizeImage(r io.Reader) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if img.Bounds().Dx() > maxImageWidth {
		img = resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newImageKey() string {
	return fmt.Sprintf("products/%s.jpg", uuid.NewString())
}

// LocalImageStore writes images below Dir and serves them under URLPrefix.
type LocalImageStore struct {
	Dir       string
	URLPrefix string
}

func NewLocalImageStore(dir, urlPrefix string) (*LocalImageStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "products"), 0o755); err != nil {
		return nil, err
	}
	return &LocalImageStore{Dir: dir, URLPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

func (s *LocalImageStore) Save(_ context.Context, r io.Reader) (StoredImage, error) {
	data, err := OptimizeImage(r)
	if err != nil {
		return StoredImage{}, err
	}

	key := newImageKey()
	if err := os.WriteFile(filepath.Join(s.Dir, filepath.FromSlash(key)), data, 0o644); err != nil {
		return StoredImage{}, err
	}
	return StoredImage{URL: path.Join(s.URLPrefix, key), Key: key}, nil
}

func (s *LocalImageStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid image key %q", key)
	}
	err := os.Remove(filepath.Join(s.Dir, clean))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

type S3ImageStore struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
}

// NewS3ImageStore loads credentials from the default AWS chain.
func NewS3ImageStore(ctx context.Context, bucket string) (*S3ImageStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3ImageStore{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
	}, nil
}

func (s *S3ImageStore) Save(ctx context.Context, r io.Reader) (StoredImage, error) {
	data, err := OptimizeImage(r)
	if err != nil {
		return StoredImage{}, err
	}

	key := newImageKey()
	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ACL:         "public-read",
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return StoredImage{}, fmt.Errorf("upload %s: %w", key, err)
	}
	return StoredImage{URL: result.Location, Key: key}, nil
}

func (s *S3ImageStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
