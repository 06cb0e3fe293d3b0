package handlers

import (
	"net/http"

	"github.com/skrmarket/listings-service/internal/transport/http/httperr"
)

type dashboardResponse struct {
	PendingListings []listingResponse `json:"pending_listings"`
	PendingCount    int               `json:"pending_count"`
	ActiveCount     int               `json:"active_count"`
	TotalUsers      int64             `json:"total_users"`
	NewUsersLast24h int64             `json:"new_users_last_24h"`
}

// Dashboard — сводка для панели администратора.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	stats, err := h.svc.Dashboard(r.Context(), *identity)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	out := dashboardResponse{
		PendingListings: make([]listingResponse, 0, len(stats.PendingListings)),
		PendingCount:    stats.PendingCount,
		ActiveCount:     stats.ActiveCount,
		TotalUsers:      stats.TotalUsers,
		NewUsersLast24h: stats.NewUsersLast24h,
	}
	for _, l := range stats.PendingListings {
		out.PendingListings = append(out.PendingListings, toListingResponse(l))
	}

	writeJSON(w, http.StatusOK, out)
}
