package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

var ErrValidation = errors.New("validation error")

const (
	signedURLTTL  = 5 * time.Minute
	maxUploadSize = 10 << 20
)

type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// Upload is a stored photo: the object key for later reference and a
// short-lived URL the client can render immediately.
type Upload struct {
	Key string
	URL string
}

type Service struct {
	storage ObjectStorage
	now     func() time.Time
}

func NewService(storage ObjectStorage) *Service {
	return &Service{
		storage: storage,
		now:     time.Now,
	}
}

// UploadPhoto stores an image for a moment or profile and returns a
// presigned URL for it.
func (s *Service) UploadPhoto(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (Upload, error) {
	if body == nil || size <= 0 || size > maxUploadSize {
		return Upload{}, ErrValidation
	}
	if s.storage == nil {
		return Upload{}, fmt.Errorf("object storage is not configured")
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return Upload{}, fmt.Errorf("ensure bucket: %w", err)
	}

	key, err := s.buildObjectKey(fileName)
	if err != nil {
		return Upload{}, fmt.Errorf("build object key: %w", err)
	}

	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}

	if err := s.storage.Put(ctx, key, body, size, contentType); err != nil {
		return Upload{}, fmt.Errorf("put object: %w", err)
	}

	url, err := s.storage.PresignGet(ctx, key, signedURLTTL)
	if err != nil {
		_ = s.storage.Delete(ctx, key)
		return Upload{}, fmt.Errorf("presign photo url: %w", err)
	}

	return Upload{Key: key, URL: url}, nil
}

// PhotoURL re-signs an existing object key.
func (s *Service) PhotoURL(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", ErrValidation
	}
	if s.storage == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	url, err := s.storage.PresignGet(ctx, key, signedURLTTL)
	if err != nil {
		return "", fmt.Errorf("presign photo url: %w", err)
	}
	return url, nil
}

func (s *Service) buildObjectKey(fileName string) (string, error) {
	rnd := make([]byte, 8)
	if _, err := rand.Read(rnd); err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(strings.TrimSpace(fileName)))
	if ext == "" {
		ext = ".bin"
	}

	stamp := s.now().UTC().Format("20060102T150405")
	return fmt.Sprintf("photos/%s_%s%s", stamp, hex.EncodeToString(rnd), ext), nil
}
