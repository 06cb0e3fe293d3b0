package mongo

import (
	"context"
	"errors"
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

// refDoc — денормализованная копия категории/подкатегории в документе.
type refDoc struct {
	ID   string `bson:"id"`
	Name string `bson:"name"`
}

// listingDoc — схема документа коллекции listings.
// Отдельная от доменной модели структура с bson-тегами, чтобы схема
// хранения не зависела от имён полей доменного слоя.
type listingDoc struct {
	ID             primitive.ObjectID `bson:"_id"`
	Title          string             `bson:"title"`
	Description    string             `bson:"description"`
	Price          float64            `bson:"price"`
	Condition      string             `bson:"condition"`
	Category       refDoc             `bson:"category"`
	Subcategory    refDoc             `bson:"subcategory"`
	City           string             `bson:"city"`
	Images         []string           `bson:"images"`
	SellerContact  string             `bson:"seller_contact"`
	SellerID       string             `bson:"seller_id"`
	SellerUsername string             `bson:"seller_username"`
	Status         string             `bson:"status"`
	Version        int64              `bson:"version"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

// toMS — MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

func toDoc(l models.Listing, oid primitive.ObjectID) listingDoc {
	return listingDoc{
		ID:             oid,
		Title:          l.Title,
		Description:    l.Description,
		Price:          l.Price,
		Condition:      string(l.Condition),
		Category:       refDoc{ID: l.Category.ID, Name: l.Category.Name},
		Subcategory:    refDoc{ID: l.Subcategory.ID, Name: l.Subcategory.Name},
		City:           l.City,
		Images:         l.Images,
		SellerContact:  l.SellerContact,
		SellerID:       l.SellerID,
		SellerUsername: l.SellerUsername,
		Status:         string(l.Status),
		Version:        l.Version,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func fromDoc(d listingDoc) models.Listing {
	return models.Listing{
		ID:             d.ID.Hex(),
		Title:          d.Title,
		Description:    d.Description,
		Price:          d.Price,
		Condition:      models.Condition(d.Condition),
		Category:       models.CategoryRef{ID: d.Category.ID, Name: d.Category.Name},
		Subcategory:    models.SubcategoryRef{ID: d.Subcategory.ID, Name: d.Subcategory.Name},
		City:           d.City,
		Images:         d.Images,
		SellerContact:  d.SellerContact,
		SellerID:       d.SellerID,
		SellerUsername: d.SellerUsername,
		Status:         models.ListingStatus(d.Status),
		Version:        d.Version,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
}

// NewListingID выдаёт новый ObjectID в hex.
func (m *Mongo) NewListingID() string {
	return primitive.NewObjectID().Hex()
}

// CreateListing вставляет документ объявления.
// CreatedAt/UpdatedAt/Version проставляются здесь: Version стартует с 1.
func (m *Mongo) CreateListing(ctx context.Context, listing models.Listing) (*models.Listing, error) {
	const op = "storage/mongo/CreateListing"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(listing.ID))
	if err != nil {
		return nil, fmt.Errorf("%s: bad id: %w", op, err)
	}

	now := toMS(time.Now())
	listing.CreatedAt = now
	listing.UpdatedAt = now
	listing.Version = 1

	if _, err := m.listings.InsertOne(ctx, toDoc(listing, oid)); err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	return &listing, nil
}

// ListingByID возвращает объявление по идентификатору.
// Некорректный формат id трактуется как «нет такой записи».
func (m *Mongo) ListingByID(ctx context.Context, id string) (*models.Listing, error) {
	const op = "storage/mongo/ListingByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var doc listingDoc
	if err := m.listings.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := fromDoc(doc)
	return &out, nil
}

// UpdateListing перезаписывает содержательные поля при совпадении версии.
// seller_id/created_at не трогаются никогда; version инкрементируется атомарно.
func (m *Mongo) UpdateListing(ctx context.Context, listing models.Listing, expectedVersion int64) (*models.Listing, error) {
	const op = "storage/mongo/UpdateListing"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(listing.ID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	filter := bson.D{
		{Key: "_id", Value: oid},
		{Key: "version", Value: expectedVersion},
	}

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "title", Value: listing.Title},
			{Key: "description", Value: listing.Description},
			{Key: "price", Value: listing.Price},
			{Key: "condition", Value: string(listing.Condition)},
			{Key: "category", Value: refDoc{ID: listing.Category.ID, Name: listing.Category.Name}},
			{Key: "subcategory", Value: refDoc{ID: listing.Subcategory.ID, Name: listing.Subcategory.Name}},
			{Key: "city", Value: listing.City},
			{Key: "images", Value: listing.Images},
			{Key: "seller_contact", Value: listing.SellerContact},
			{Key: "status", Value: string(listing.Status)},
			{Key: "updated_at", Value: toMS(time.Now())},
		}},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc listingDoc
	err = m.listings.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		out := fromDoc(doc)
		return &out, nil
	}

	if !errors.Is(err, mongodriver.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Либо документа нет, либо версия ушла вперёд — различаем по наличию.
	n, cntErr := m.listings.CountDocuments(ctx, bson.D{{Key: "_id", Value: oid}})
	if cntErr != nil {
		return nil, fmt.Errorf("%s: %w", op, cntErr)
	}

	if n == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil, fmt.Errorf("%s: %w", op, storage.ErrVersionConflict)
}

// UpdateStatus — compare-and-set статуса (from -> to).
func (m *Mongo) UpdateStatus(ctx context.Context, id string, from, to models.ListingStatus) (*models.Listing, error) {
	const op = "storage/mongo/UpdateStatus"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	filter := bson.D{
		{Key: "_id", Value: oid},
		{Key: "status", Value: string(from)},
	}

	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "status", Value: string(to)},
			{Key: "updated_at", Value: toMS(time.Now())},
		}},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc listingDoc
	err = m.listings.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		out := fromDoc(doc)
		return &out, nil
	}

	if !errors.Is(err, mongodriver.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	n, cntErr := m.listings.CountDocuments(ctx, bson.D{{Key: "_id", Value: oid}})
	if cntErr != nil {
		return nil, fmt.Errorf("%s: %w", op, cntErr)
	}

	if n == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil, fmt.Errorf("%s: %w", op, storage.ErrStatusConflict)
}

// DeleteListing удаляет документ навсегда.
func (m *Mongo) DeleteListing(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteListing"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.listings.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ListAll возвращает полный срез объявлений, created_at DESC, _id DESC.
func (m *Mongo) ListAll(ctx context.Context) ([]models.Listing, error) {
	const op = "storage/mongo/ListAll"

	return m.list(ctx, bson.D{}, op)
}

// ListBySeller возвращает объявления продавца, created_at DESC, _id DESC.
func (m *Mongo) ListBySeller(ctx context.Context, sellerID string) ([]models.Listing, error) {
	const op = "storage/mongo/ListBySeller"

	return m.list(ctx, bson.D{{Key: "seller_id", Value: strings.TrimSpace(sellerID)}}, op)
}

func (m *Mongo) list(ctx context.Context, filter bson.D, op string) ([]models.Listing, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := m.listings.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var items []models.Listing
	for cur.Next(ctx) {
		var doc listingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		items = append(items, fromDoc(doc))
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return items, nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.Listings = (*Mongo)(nil)
