package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/skrmarket/listings-service/internal/models"
	"github.com/skrmarket/listings-service/internal/service"
	"github.com/skrmarket/listings-service/internal/transport/http/httperr"
)

// ListFeed — публичная лента: только активные объявления, фильтры из query.
//
// Параметры: q, price_min, price_max, city, condition, category.
// Пустой параметр — отсутствие ограничения.
func (h *Handlers) ListFeed(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	listings, err := h.svc.Listings(r.Context())
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingsResponse(service.ApplyFilters(listings, filter)))
}

// GetListing — объявление по id, в любом статусе.
func (h *Handlers) GetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	listing, err := h.svc.ListingByID(r.Context(), id)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingResponse(*listing))
}

// CreateListing — публикация объявления (multipart/form-data).
//
// Поля формы: title, description, price, condition, category_id,
// subcategory_id, city, seller_contact; файлы — в поле images.
func (h *Handlers) CreateListing(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		httperr.WriteError(w, r, errInvalidArgument())
		return
	}

	price, err := parsePrice(r.FormValue("price"))
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	images, err := readImageFiles(r.MultipartForm, "images")
	if err != nil {
		httperr.WriteError(w, r, errInvalidArgument())
		return
	}

	in := service.CreateListingInput{
		Title:         r.FormValue("title"),
		Description:   r.FormValue("description"),
		Price:         price,
		Condition:     models.Condition(r.FormValue("condition")),
		CategoryID:    r.FormValue("category_id"),
		SubcategoryID: r.FormValue("subcategory_id"),
		City:          r.FormValue("city"),
		SellerContact: r.FormValue("seller_contact"),
		Images:        images,
	}

	listing, err := h.svc.CreateListing(r.Context(), *identity, in)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toListingResponse(*listing))
}

// UpdateListing — правка объявления владельцем (multipart/form-data).
//
// Отсутствующее поле формы означает «не менять». Обязательное поле version —
// версия документа, которую видел клиент. keep_images перечисляет
// сохраняемые URL (повторяемое поле); новые файлы — в поле images.
func (h *Handlers) UpdateListing(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		httperr.WriteError(w, r, errInvalidArgument())
		return
	}

	version, err := strconv.ParseInt(r.FormValue("version"), 10, 64)
	if err != nil || version < 1 {
		httperr.WriteError(w, r, errInvalidArgument())
		return
	}

	in := service.UpdateListingInput{Version: version}

	if v, ok := formValue(r, "title"); ok {
		in.Title = &v
	}
	if v, ok := formValue(r, "description"); ok {
		in.Description = &v
	}
	if v, ok := formValue(r, "price"); ok {
		price, err := parsePrice(v)
		if err != nil {
			httperr.WriteError(w, r, err)
			return
		}
		in.Price = &price
	}
	if v, ok := formValue(r, "condition"); ok {
		cond := models.Condition(v)
		in.Condition = &cond
	}
	if v, ok := formValue(r, "category_id"); ok {
		in.CategoryID = &v
	}
	if v, ok := formValue(r, "subcategory_id"); ok {
		in.SubcategoryID = &v
	}
	if v, ok := formValue(r, "city"); ok {
		in.City = &v
	}
	if v, ok := formValue(r, "seller_contact"); ok {
		in.SellerContact = &v
	}

	if r.MultipartForm != nil {
		in.KeepImageURLs = r.MultipartForm.Value["keep_images"]
	}

	in.NewImages, err = readImageFiles(r.MultipartForm, "images")
	if err != nil {
		httperr.WriteError(w, r, errInvalidArgument())
		return
	}

	listing, err := h.svc.UpdateListing(r.Context(), *identity, id, in)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingResponse(*listing))
}

// DeleteListing — удаление объявления владельцем или администратором.
func (h *Handlers) DeleteListing(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteListing(r.Context(), *identity, chi.URLParam(r, "id")); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MyListings — объявления вызывающего во всех статусах.
func (h *Handlers) MyListings(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	listings, err := h.svc.ListingsBySeller(r.Context(), identity.ID)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingsResponse(listings))
}

// formValue различает отсутствующее и пустое поле multipart-формы.
func formValue(r *http.Request, key string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}

	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return "", false
	}

	return vals[0], true
}

// parsePrice разбирает цену: конечное неотрицательное число.
func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, errInvalidArgument()
	}

	return price, nil
}

// filterFromQuery собирает FilterState из query-параметров ленты.
func filterFromQuery(r *http.Request) (models.FilterState, error) {
	q := r.URL.Query()

	filter := models.FilterState{
		SearchTerm: q.Get("q"),
		City:       q.Get("city"),
		Condition:  models.Condition(q.Get("condition")),
		CategoryID: q.Get("category"),
	}

	if v := q.Get("price_min"); v != "" {
		p, err := parsePrice(v)
		if err != nil {
			return models.FilterState{}, err
		}
		filter.PriceMin = &p
	}

	if v := q.Get("price_max"); v != "" {
		p, err := parsePrice(v)
		if err != nil {
			return models.FilterState{}, err
		}
		filter.PriceMax = &p
	}

	return filter, nil
}
