package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/skrmarket/listings-service/internal/config"
	"github.com/skrmarket/listings-service/internal/service"
	"github.com/skrmarket/listings-service/internal/transport/http/handlers"
	"github.com/skrmarket/listings-service/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, auth config.AuthConfig, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(),            // счётчики и латентность
		middleware.Authenticate(auth),   // разбираем Bearer-токен в Identity
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	// Зависимости хендлеров.
	h := handlers.New(svc)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// публичная лента и карточки
	r.Get("/listings", h.ListFeed)
	r.Get("/listings/{id}", h.GetListing)
	r.Get("/taxonomy", h.Taxonomy)

	// операции продавца
	r.Post("/listings", h.CreateListing)
	r.Patch("/listings/{id}", h.UpdateListing)
	r.Delete("/listings/{id}", h.DeleteListing)
	r.Post("/listings/{id}/sold", h.MarkSold)
	r.Get("/my/listings", h.MyListings)

	// администрирование
	r.Post("/admin/listings/{id}/approve", h.ApproveListing)
	r.Post("/admin/listings/{id}/reject", h.RejectListing)
	r.Patch("/admin/listings/{id}/status", h.SetStatus)
	r.Get("/admin/dashboard", h.Dashboard)
}
