package models

// FilterState — пользовательские фильтры публичной ленты.
// Пустая строка означает «без ограничения», а не «пустое значение»;
// nil-границы цены — неограниченный диапазон с соответствующей стороны.
type FilterState struct {
	// SearchTerm — регистронезависимый поиск подстроки по title ИЛИ description.
	SearchTerm string
	// PriceMin/PriceMax — включительные границы цены.
	PriceMin *float64
	PriceMax *float64
	City     string
	// Condition — точное совпадение; "" — любое состояние.
	Condition Condition
	// CategoryID — точное совпадение по id категории; "" — любая.
	CategoryID string
}
