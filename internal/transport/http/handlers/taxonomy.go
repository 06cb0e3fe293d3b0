package handlers

import (
	"net/http"

	"github.com/skrmarket/listings-service/internal/taxonomy"
)

type subcategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type categoryResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Subcategories []subcategoryResponse `json:"subcategories"`
}

type taxonomyResponse struct {
	Categories []categoryResponse `json:"categories"`
	Conditions []string           `json:"conditions"`
	Cities     []string           `json:"cities"`
}

// Taxonomy — статический справочник: категории, состояния, города.
func (h *Handlers) Taxonomy(w http.ResponseWriter, r *http.Request) {
	out := taxonomyResponse{
		Categories: make([]categoryResponse, 0, len(taxonomy.Categories)),
		Conditions: make([]string, 0, len(taxonomy.Conditions)),
		Cities:     taxonomy.Cities,
	}

	for _, c := range taxonomy.Categories {
		cat := categoryResponse{
			ID:            c.ID,
			Name:          c.Name,
			Subcategories: make([]subcategoryResponse, 0, len(c.Subcategories)),
		}
		for _, sub := range c.Subcategories {
			cat.Subcategories = append(cat.Subcategories, subcategoryResponse{ID: sub.ID, Name: sub.Name})
		}
		out.Categories = append(out.Categories, cat)
	}

	for _, cond := range taxonomy.Conditions {
		out.Conditions = append(out.Conditions, string(cond))
	}

	writeJSON(w, http.StatusOK, out)
}
