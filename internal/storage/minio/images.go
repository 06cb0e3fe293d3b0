package minio

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/skrmarket/listings-service/internal/models"
	"github.com/skrmarket/listings-service/internal/storage"
)

// keyPrefix — корень всех объектов сервиса в бакете.
const keyPrefix = "listing-images"

// UploadImage загружает один файл объявления и возвращает публичный URL.
// Валидирует contentType и размер согласно конфигу, формирует ключ вида
// "listing-images/<ownerID>/<listingID>/<uuid><ext>".
func (s *ImagesStorage) UploadImage(ctx context.Context, ownerID, listingID string, file models.ImageFile) (string, error) {
	const op = "storage/minio/images/UploadImage"

	size := int64(len(file.Data))
	if size <= 0 || size > s.cfg.Images.MaxSizeBytes {
		return "", fmt.Errorf("%s: size %d: %w", op, size, storage.ErrInvalidImage)
	}

	if !isAllowedContentType(s.cfg.Images.AllowedContentTypes, file.ContentType) {
		return "", fmt.Errorf("%s: content type %q: %w", op, file.ContentType, storage.ErrInvalidImage)
	}

	var ext string
	switch file.ContentType {
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	case "image/webp":
		ext = ".webp"
	default:
		ext = ""
	}

	key := path.Join(keyPrefix, ownerID, listingID, uuid.NewString()+ext)

	_, err := s.client.PutObject(ctx, s.cfg.S3.Bucket, key, bytes.NewReader(file.Data), size, mclient.PutObjectOptions{
		ContentType: file.ContentType,
	})

	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return s.publicURL(key), nil
}

// RemoveImage удаляет объект по его публичному URL.
// URL, не разрешающийся в ключ нашего бакета, и отсутствующий объект
// трактуются одинаково: ErrImageNotFound.
func (s *ImagesStorage) RemoveImage(ctx context.Context, rawURL string) error {
	const op = "storage/minio/images/RemoveImage"

	key, ok := s.keyFromURL(rawURL)
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrImageNotFound)
	}

	// RemoveObject на отсутствующем ключе молчит; наличие проверяется явно,
	// чтобы вызывающий мог отличить «уже удалено» от реального удаления.
	if _, err := s.client.StatObject(ctx, s.cfg.S3.Bucket, key, mclient.StatObjectOptions{}); err != nil {
		errResp := mclient.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.StatusCode == 404 {
			return fmt.Errorf("%s: %w", op, storage.ErrImageNotFound)
		}

		return fmt.Errorf("%s: stat: %w", op, err)
	}

	if err := s.client.RemoveObject(ctx, s.cfg.S3.Bucket, key, mclient.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%s: remove: %w", op, err)
	}

	return nil
}

// publicURL строит внешний URL объекта: через PublicBaseURL (CDN/прокси),
// иначе напрямую по endpoint и бакету.
func (s *ImagesStorage) publicURL(key string) string {
	if base := strings.TrimRight(s.cfg.S3.PublicBaseURL, "/"); base != "" {
		return base + "/" + key
	}

	scheme := "http"
	if s.secure {
		scheme = "https"
	}

	return scheme + "://" + s.endpoint + "/" + s.cfg.S3.Bucket + "/" + key
}

// keyFromURL разрешает публичный URL обратно в ключ бакета.
// Принимаются только URL нашей зоны: под PublicBaseURL либо под
// endpoint/bucket, и только с префиксом keyPrefix.
func (s *ImagesStorage) keyFromURL(rawURL string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}

	var key string

	if base := strings.TrimRight(s.cfg.S3.PublicBaseURL, "/"); base != "" && strings.HasPrefix(rawURL, base+"/") {
		key = strings.TrimPrefix(rawURL, base+"/")
	} else {
		u, err := url.Parse(rawURL)
		if err != nil || u.Host != s.endpoint {
			return "", false
		}

		bucketPrefix := "/" + s.cfg.S3.Bucket + "/"
		if !strings.HasPrefix(u.Path, bucketPrefix) {
			return "", false
		}

		key = strings.TrimPrefix(u.Path, bucketPrefix)
	}

	if !strings.HasPrefix(key, keyPrefix+"/") {
		return "", false
	}

	return key, true
}

// isAllowedContentType проверяет, что тип содержимого входит в allow-list.
func isAllowedContentType(allow []string, contentType string) bool {
	for _, a := range allow {
		if a == contentType {
			return true
		}
	}

	return false
}
