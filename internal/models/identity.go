package models

// Identity — срез данных внешнего identity-провайдера о вызывающем.
// Сервис только читает эти поля; он никогда не создаёт пользователей
// и не выставляет IsAdmin — признак приходит извне как есть.
type Identity struct {
	ID       string
	Email    string
	Username string
	City     string
	Telegram string
	IsAdmin  bool
}
