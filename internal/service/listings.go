package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/skrmarket/listings-service/internal/models"
	"github.com/skrmarket/listings-service/internal/pkg/log"
	"github.com/skrmarket/listings-service/internal/storage"
	"github.com/skrmarket/listings-service/internal/taxonomy"
)

// maxImagesPerListing — верхняя граница числа изображений одного объявления.
const maxImagesPerListing = 5

// Входные структуры сервисного слоя.

// CreateListingInput — создание объявления.
// Продавец берётся из Identity вызывающего, не из полей ввода.
type CreateListingInput struct {
	Title         string
	Description   string
	Price         float64
	Condition     models.Condition
	CategoryID    string
	SubcategoryID string
	City          string
	SellerContact string
	Images        []models.ImageFile
}

// UpdateListingInput — правка объявления владельцем.
// nil-поле означает «не менять». KeepImageURLs — какие из текущих URL
// оставить; NewImages — файлы для дозагрузки. Version — версия документа,
// которую видел клиент (оптимистичная блокировка).
type UpdateListingInput struct {
	Title         *string
	Description   *string
	Price         *float64
	Condition     *models.Condition
	CategoryID    *string
	SubcategoryID *string
	City          *string
	SellerContact *string
	KeepImageURLs []string
	NewImages     []models.ImageFile
	Version       int64
}

// CreateListing — бизнес-операция публикации объявления.
//
// Валидация:
//   - Title, Description, City, SellerContact нормализуются (TrimSpace) и не должны быть пустыми;
//   - Price >= 0, конечное число (проверяется на транспортном слое при разборе);
//   - Condition — из фиксированного перечня; City — из справочника городов;
//   - пара (CategoryID, SubcategoryID) должна существовать в справочнике;
//   - хотя бы одно изображение; свыше пяти — лишние молча отбрасываются.
//
// Поведение/ошибки:
//   - статус нового объявления всегда pending_moderation;
//   - изображения загружаются до вставки документа; при сбое загрузки
//     уже загруженные блобы ставятся в журнал очистки;
//   - ErrInvalidArgument, ErrInternal.
func (s *Service) CreateListing(ctx context.Context, caller models.Identity, in CreateListingInput) (*models.Listing, error) {
	const op = "service/listings/CreateListing"

	lg := log.From(ctx).With("op", op, "seller_id", caller.ID)

	if caller.ID == "" {
		lg.Warn("invalid argument: empty caller id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.City = strings.TrimSpace(in.City)
	in.SellerContact = strings.TrimSpace(in.SellerContact)

	if in.Title == "" || in.Description == "" || in.SellerContact == "" {
		lg.Warn("invalid argument: empty required field")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if in.Price < 0 {
		lg.Warn("invalid argument: negative price")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if !taxonomy.ValidCondition(in.Condition) {
		lg.Warn("invalid argument: unknown condition", "condition", string(in.Condition))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if !taxonomy.ValidCity(in.City) {
		lg.Warn("invalid argument: unknown city", "city", in.City)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	category, subcategory, ok := taxonomy.Resolve(in.CategoryID, in.SubcategoryID)
	if !ok {
		lg.Warn("invalid argument: unknown category pair",
			"category_id", in.CategoryID, "subcategory_id", in.SubcategoryID)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if len(in.Images) == 0 {
		lg.Warn("invalid argument: no images")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if len(in.Images) > maxImagesPerListing {
		lg.Warn("too many images, truncating", "got", len(in.Images), "max", maxImagesPerListing)
		in.Images = in.Images[:maxImagesPerListing]
	}

	listingID := s.listings.NewListingID()

	urls, err := s.uploadAll(ctx, caller.ID, listingID, in.Images)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			lg.Warn("invalid image", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		lg.Error("image upload failed", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	listing := models.Listing{
		ID:             listingID,
		Title:          in.Title,
		Description:    in.Description,
		Price:          in.Price,
		Condition:      in.Condition,
		Category:       category,
		Subcategory:    subcategory,
		City:           in.City,
		Images:         urls,
		SellerContact:  in.SellerContact,
		SellerID:       caller.ID,
		SellerUsername: caller.Username,
		Status:         models.StatusPendingModeration,
	}

	result, err := s.listings.CreateListing(ctx, listing)
	if err != nil {
		// Документ не создан, блобы уже в бакете.
		s.deleteAll(ctx, urls, "create_listing_failed")
		lg.Error("storage error on CreateListing", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return result, nil
}

// UpdateListing — правка объявления владельцем (или администратором).
//
// Валидация:
//   - id не пустой; объявление существует;
//   - вызывающий — владелец либо администратор;
//   - непустые значения для переданных текстовых полей, известные
//     condition/city, существующая пара категорий;
//   - KeepImageURLs — подмножество текущих Images;
//   - итоговое число изображений 1..5.
//
// Поведение/ошибки:
//   - любая правка содержимого возвращает объявление в pending_moderation;
//   - сперва CAS-запись документа, затем удаление отцеплённых блобов
//     (сбои удаления ставятся в журнал очистки);
//   - ErrNotFound, ErrPermissionDenied, ErrConflict (устаревшая версия),
//     ErrInvalidArgument, ErrInternal.
func (s *Service) UpdateListing(ctx context.Context, caller models.Identity, id string, in UpdateListingInput) (*models.Listing, error) {
	const op = "service/listings/UpdateListing"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "listing_id", id, "caller_id", caller.ID)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	current, err := s.listings.ListingByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("listing not found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on ListingByID", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if current.SellerID != caller.ID && !caller.IsAdmin {
		lg.Warn("permission denied", "owner_id", current.SellerID)
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	if in.Version != current.Version {
		lg.Warn("version conflict", "expected", in.Version, "actual", current.Version)
		return nil, fmt.Errorf("%s: %w", op, ErrConflict)
	}

	patched := *current

	if in.Title != nil {
		patched.Title = strings.TrimSpace(*in.Title)
		if patched.Title == "" {
			lg.Warn("invalid argument: empty title")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
	}

	if in.Description != nil {
		patched.Description = strings.TrimSpace(*in.Description)
		if patched.Description == "" {
			lg.Warn("invalid argument: empty description")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
	}

	if in.Price != nil {
		if *in.Price < 0 {
			lg.Warn("invalid argument: negative price")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		patched.Price = *in.Price
	}

	if in.Condition != nil {
		if !taxonomy.ValidCondition(*in.Condition) {
			lg.Warn("invalid argument: unknown condition", "condition", string(*in.Condition))
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		patched.Condition = *in.Condition
	}

	if in.City != nil {
		city := strings.TrimSpace(*in.City)
		if !taxonomy.ValidCity(city) {
			lg.Warn("invalid argument: unknown city", "city", city)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		patched.City = city
	}

	if in.SellerContact != nil {
		patched.SellerContact = strings.TrimSpace(*in.SellerContact)
		if patched.SellerContact == "" {
			lg.Warn("invalid argument: empty seller contact")
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
	}

	// Категория и подкатегория меняются только парой.
	if in.CategoryID != nil || in.SubcategoryID != nil {
		catID := patched.Category.ID
		subID := patched.Subcategory.ID
		if in.CategoryID != nil {
			catID = *in.CategoryID
		}
		if in.SubcategoryID != nil {
			subID = *in.SubcategoryID
		}

		category, subcategory, ok := taxonomy.Resolve(catID, subID)
		if !ok {
			lg.Warn("invalid argument: unknown category pair", "category_id", catID, "subcategory_id", subID)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		patched.Category = category
		patched.Subcategory = subcategory
	}

	keep, removed, err := reconcileImages(current.Images, in.KeepImageURLs)
	if err != nil {
		lg.Warn("invalid argument: keep list is not a subset of current images")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if len(keep)+len(in.NewImages) == 0 {
		lg.Warn("invalid argument: listing would have no images")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if len(keep)+len(in.NewImages) > maxImagesPerListing {
		lg.Warn("invalid argument: too many images",
			"keep", len(keep), "new", len(in.NewImages), "max", maxImagesPerListing)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	uploaded, err := s.uploadAll(ctx, current.SellerID, current.ID, in.NewImages)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			lg.Warn("invalid image", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		lg.Error("image upload failed", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	patched.Images = append(keep, uploaded...)
	// Любая правка владельцем возвращает объявление на модерацию.
	patched.Status = models.StatusPendingModeration

	result, err := s.listings.UpdateListing(ctx, patched, in.Version)
	if err != nil {
		// Документ не записан: дозагруженные блобы осиротели.
		s.deleteAll(ctx, uploaded, "update_listing_failed")

		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("listing disappeared during update")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, storage.ErrVersionConflict):
			lg.Warn("version conflict on write")
			return nil, fmt.Errorf("%s: %w", op, ErrConflict)
		default:
			lg.Error("storage error on UpdateListing", "err", err)
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	// Документ записан: отцеплённые старые блобы больше не нужны.
	s.deleteAll(ctx, removed, "update_listing")

	return result, nil
}

// DeleteListing — удаление объявления владельцем (или администратором).
//
// Поведение/ошибки:
//   - сперва best-effort удаление всех блобов (сбои — в журнал очистки),
//     затем удаление документа;
//   - ErrNotFound, ErrPermissionDenied, ErrInternal.
func (s *Service) DeleteListing(ctx context.Context, caller models.Identity, id string) error {
	const op = "service/listings/DeleteListing"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "listing_id", id, "caller_id", caller.ID)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	current, err := s.listings.ListingByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("listing not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on ListingByID", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if current.SellerID != caller.ID && !caller.IsAdmin {
		lg.Warn("permission denied", "owner_id", current.SellerID)
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	s.deleteAll(ctx, current.Images, "delete_listing")

	if err := s.listings.DeleteListing(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Конкурентное удаление: цель достигнута.
			return nil
		}

		lg.Error("storage error on DeleteListing", "err", err)
		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return nil
}

// ListingByID возвращает объявление по идентификатору.
func (s *Service) ListingByID(ctx context.Context, id string) (*models.Listing, error) {
	const op = "service/listings/ListingByID"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "listing_id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.listings.ListingByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("storage error on ListingByID", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return result, nil
}

// Listings возвращает полный срез объявлений (новые первыми).
// Видимость по статусам решают вызывающие: публичная лента дополнительно
// фильтруется ApplyFilters, модерация — PendingOnly.
func (s *Service) Listings(ctx context.Context) ([]models.Listing, error) {
	const op = "service/listings/Listings"

	result, err := s.listings.ListAll(ctx)
	if err != nil {
		log.From(ctx).Error("storage error on ListAll", "op", op, "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return result, nil
}

// ListingsBySeller возвращает объявления продавца во всех статусах.
func (s *Service) ListingsBySeller(ctx context.Context, sellerID string) ([]models.Listing, error) {
	const op = "service/listings/ListingsBySeller"

	sellerID = strings.TrimSpace(sellerID)
	lg := log.From(ctx).With("op", op, "seller_id", sellerID)

	if sellerID == "" {
		lg.Warn("invalid argument: empty seller id")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	result, err := s.listings.ListBySeller(ctx, sellerID)
	if err != nil {
		lg.Error("storage error on ListBySeller", "err", err)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return result, nil
}
