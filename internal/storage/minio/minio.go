// minio предоставляет реализацию storage.Images на базе MinIO/S3.
// minio.go - конструктор клиента MinIO: нормализует endpoint,
// настраивает Secure/creds и проверяет наличие целевого бакета.
// images.go — реализация методов Images поверх клиента MinIO:
//   - серверная загрузка файла объявления с валидацией типа/размера;
//   - удаление объекта по его публичному URL.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/skrmarket/listings-service/internal/config"
	"github.com/skrmarket/listings-service/internal/storage"
)

// ImagesStorage — адаптер MinIO для операций с изображениями объявлений.
type ImagesStorage struct {
	cfg      *config.Config
	client   *mclient.Client
	endpoint string
	secure   bool
}

// New создает и инициализирует клиент MinIO.
// Делает endpoint-перенастройку (убирает схему), подбирает Secure по схеме
// и выполняет fail-fast-проверку доступности бакета.
func New(ctx context.Context, cfg *config.Config) (*ImagesStorage, error) {
	const op = "storage/minio/New"

	endpoint := cfg.S3.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.S3.RootUser, cfg.S3.RootPassword, ""),
		Secure: secure,
	})

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.S3.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.S3.Bucket)
	}

	return &ImagesStorage{cfg: cfg, client: client, endpoint: endpoint, secure: secure}, nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.Images = (*ImagesStorage)(nil)
