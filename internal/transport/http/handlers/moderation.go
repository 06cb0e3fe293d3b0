package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skrmarket/listings-service/internal/models"
	"github.com/skrmarket/listings-service/internal/transport/http/httperr"
)

// ApproveListing — одобрение объявления модератором (pending -> active).
func (h *Handlers) ApproveListing(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	listing, err := h.svc.ApproveListing(r.Context(), *identity, chi.URLParam(r, "id"))
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingResponse(*listing))
}

// RejectListing — отклонение объявления модератором (pending -> rejected).
func (h *Handlers) RejectListing(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	listing, err := h.svc.RejectListing(r.Context(), *identity, chi.URLParam(r, "id"))
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingResponse(*listing))
}

// MarkSold — пометка проданного товара владельцем или администратором
// (active -> sold).
func (h *Handlers) MarkSold(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	listing, err := h.svc.MarkSold(r.Context(), *identity, chi.URLParam(r, "id"))
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingResponse(*listing))
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus — явный административный перевод статуса.
func (h *Handlers) SetStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var in setStatusRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, errInvalidArgument())
		return
	}

	listing, err := h.svc.SetStatus(r.Context(), *identity, chi.URLParam(r, "id"), models.ListingStatus(in.Status))
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingResponse(*listing))
}
