package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/skrmarket/listings-service/internal/models"
	"github.com/skrmarket/listings-service/internal/service"
	"github.com/skrmarket/listings-service/internal/transport/http/httperr"
	"github.com/skrmarket/listings-service/internal/transport/http/middleware"
)

// maxMultipartMemory — буфер разбора multipart-форм; остальное уходит во временные файлы.
const maxMultipartMemory = 32 << 20

// Handlers агрегирует зависимости HTTP-слоя.
type Handlers struct {
	svc *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через httperr.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// errInvalidArgument — локальная ошибка разбора запроса в терминах сервисного слоя.
func errInvalidArgument() error {
	return fmt.Errorf("bad request: %w", service.ErrInvalidArgument)
}

// requireIdentity достаёт вызывающего из контекста либо отвечает 401.
func requireIdentity(w http.ResponseWriter, r *http.Request) (*models.Identity, bool) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		httperr.WriteError(w, r, httperr.ErrUnauthenticated)
		return nil, false
	}

	return identity, true
}

// readImageFiles вычитывает файлы из multipart-поля field.
// Содержимое читается целиком в память; лимиты размера применяет блоб-хранилище.
func readImageFiles(form *multipart.Form, field string) ([]models.ImageFile, error) {
	if form == nil {
		return nil, nil
	}

	headers := form.File[field]
	files := make([]models.ImageFile, 0, len(headers))

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %q: %w", fh.Filename, err)
		}

		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", fh.Filename, err)
		}

		files = append(files, models.ImageFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	return files, nil
}

// Внешние DTO HTTP-слоя.

type categoryRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type listingResponse struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Price          float64             `json:"price"`
	Condition      string              `json:"condition"`
	Category       categoryRefResponse `json:"category"`
	Subcategory    categoryRefResponse `json:"subcategory"`
	City           string              `json:"city"`
	Images         []string            `json:"images"`
	SellerContact  string              `json:"seller_contact"`
	SellerID       string              `json:"seller_id"`
	SellerUsername string              `json:"seller_username"`
	Status         string              `json:"status"`
	Version        int64               `json:"version"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type listingsResponse struct {
	Listings []listingResponse `json:"listings"`
}

func toListingResponse(l models.Listing) listingResponse {
	return listingResponse{
		ID:             l.ID,
		Title:          l.Title,
		Description:    l.Description,
		Price:          l.Price,
		Condition:      string(l.Condition),
		Category:       categoryRefResponse{ID: l.Category.ID, Name: l.Category.Name},
		Subcategory:    categoryRefResponse{ID: l.Subcategory.ID, Name: l.Subcategory.Name},
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

func toListingsResponse(listings []models.Listing) listingsResponse {
	out := listingsResponse{Listings: make([]listingResponse, 0, len(listings))}
	for _, l := range listings {
		out.Listings = append(out.Listings, toListingResponse(l))
	}

	return out
}
