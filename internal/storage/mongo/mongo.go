// Package mongo — реализация storage.Listings и storage.CleanupQueue на MongoDB.
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/skrmarket/listings-service/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	listingsCollection = "listings"
	cleanupCollection  = "image_cleanup"
	defaultDBName      = "listings"
)

// Mongo — тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	cfg      *config.Config
	client   *mongodriver.Client
	db       *mongodriver.Database
	listings *mongodriver.Collection
	cleanup  *mongodriver.Collection
}

// New подключается к MongoDB, проверяет соединение, подготавливает коллекции
// и обеспечивает индексацию.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.DB.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	dbName := databaseFromURI(cfg.DB.URL)
	db := cli.Database(dbName)

	m := &Mongo{
		cfg:      cfg,
		client:   cli,
		db:       db,
		listings: db.Collection(listingsCollection),
		cleanup:  db.Collection(cleanupCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes создает индексы, необходимые сервису объявлений:
//   - публичная лента и модерационная очередь: status + created_at(desc);
//   - объявления продавца: seller_id + created_at(desc);
//   - журнал очистки: уникальность по url, выборка старых первыми.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	listingModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("status_created_desc"),
		},
		{
			Keys:    bson.D{{Key: "seller_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("seller_created_desc"),
		},
	}

	if _, err := m.listings.Indexes().CreateMany(ctx, listingModels); err != nil {
		return fmt.Errorf("mongo ensure listing indexes: %w", err)
	}

	cleanupModels := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "url", Value: 1}},
			Options: options.Index().SetName("url_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "enqueued_at", Value: 1}},
			Options: options.Index().SetName("enqueued_asc"),
		},
	}

	if _, err := m.cleanup.Indexes().CreateMany(ctx, cleanupModels); err != nil {
		return fmt.Errorf("mongo ensure cleanup indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддается расшифровке, возвращает разумное значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return defaultDBName
}
