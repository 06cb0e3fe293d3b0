package service

import (
	"strings"

	"github.com/skrmarket/listings-service/internal/models"
)

// Фильтрация работает над переданным срезом и не держит состояния:
// вызывающий отдаёт снимок ленты и критерии, получает новый срез.
// Исходный порядок элементов сохраняется.

// ApplyFilters возвращает объявления публичной ленты, подходящие под критерии.
// В ленту попадают только активные объявления; остальные условия соединяются
// по И. Пустое строковое поле и nil-граница цены означают «без ограничения».
//
// Поиск по тексту — регистронезависимое вхождение подстроки в заголовок
// либо описание. Границы цен включительные. Город, состояние и категория
// сравниваются точно.
func ApplyFilters(listings []models.Listing, f models.FilterState) []models.Listing {
	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))

	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Status != models.StatusActive {
			continue
		}

		if term != "" &&
			!strings.Contains(strings.ToLower(l.Title), term) &&
			!strings.Contains(strings.ToLower(l.Description), term) {
			continue
		}

		if f.PriceMin != nil && l.Price < *f.PriceMin {
			continue
		}

		if f.PriceMax != nil && l.Price > *f.PriceMax {
			continue
		}

		if f.City != "" && l.City != f.City {
			continue
		}

		if f.Condition != "" && l.Condition != f.Condition {
			continue
		}

		if f.CategoryID != "" && l.Category.ID != f.CategoryID {
			continue
		}

		out = append(out, l)
	}

	return out
}

// PendingOnly возвращает объявления, ожидающие модерации.
func PendingOnly(listings []models.Listing) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Status == models.StatusPendingModeration {
			out = append(out, l)
		}
	}

	return out
}

// ResetFilters сбрасывает структурированные критерии, сохраняя поисковую строку.
func ResetFilters(f models.FilterState) models.FilterState {
	return models.FilterState{SearchTerm: f.SearchTerm}
}
