package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/skrmarket/listings-service/internal/models"
	"github.com/skrmarket/listings-service/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// cleanupDoc — схема документа коллекции image_cleanup.
type cleanupDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	URL        string             `bson:"url"`
	Cause      string             `bson:"cause"`
	Attempts   int32              `bson:"attempts"`
	LastError  string             `bson:"last_error"`
	EnqueuedAt time.Time          `bson:"enqueued_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func fromCleanupDoc(d cleanupDoc) models.ImageCleanupEntry {
	return models.ImageCleanupEntry{
		ID:         d.ID.Hex(),
		URL:        d.URL,
		Cause:      d.Cause,
		Attempts:   d.Attempts,
		LastError:  d.LastError,
		EnqueuedAt: d.EnqueuedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

// EnqueueOrphans добавляет URL-ы в журнал очистки.
// Повторная постановка того же URL не создает дубликата: upsert по url
// сохраняет исходные enqueued_at/attempts и обновляет только cause.
func (m *Mongo) EnqueueOrphans(ctx context.Context, urls []string, cause string) error {
	const op = "storage/mongo/EnqueueOrphans"

	now := toMS(time.Now())

	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}

		filter := bson.D{{Key: "url", Value: u}}
		update := bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "cause", Value: cause},
				{Key: "updated_at", Value: now},
			}},
			{Key: "$setOnInsert", Value: bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "attempts", Value: int32(0)},
				{Key: "last_error", Value: ""},
				{Key: "enqueued_at", Value: now},
			}},
		}

		_, err := m.cleanup.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		if err != nil {
			// Гонка двух upsert-ов по одному url упирается в уникальный индекс;
			// запись уже существует, значит URL в журнале.
			if mongodriver.IsDuplicateKeyError(err) {
				continue
			}

			return fmt.Errorf("%s: upsert %q: %w", op, u, err)
		}
	}

	return nil
}

// OrphanBatch возвращает до limit записей журнала, старые первыми.
func (m *Mongo) OrphanBatch(ctx context.Context, limit int64) ([]models.ImageCleanupEntry, error) {
	const op = "storage/mongo/OrphanBatch"

	opts := options.Find().
		SetSort(bson.D{{Key: "enqueued_at", Value: 1}}).
		SetLimit(limit)

	cur, err := m.cleanup.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var items []models.ImageCleanupEntry
	for cur.Next(ctx) {
		var doc cleanupDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		items = append(items, fromCleanupDoc(doc))
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return items, nil
}

// ResolveOrphan снимает запись журнала после успешного удаления блоба.
func (m *Mongo) ResolveOrphan(ctx context.Context, id string) error {
	const op = "storage/mongo/ResolveOrphan"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.cleanup.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// MarkOrphanAttempt фиксирует неудачную попытку удаления блоба.
func (m *Mongo) MarkOrphanAttempt(ctx context.Context, id string, lastErr string) error {
	const op = "storage/mongo/MarkOrphanAttempt"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "attempts", Value: 1}}},
		{Key: "$set", Value: bson.D{
			{Key: "last_error", Value: lastErr},
			{Key: "updated_at", Value: toMS(time.Now())},
		}},
	}

	res, err := m.cleanup.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, update)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

var _ storage.CleanupQueue = (*Mongo)(nil)
