package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/skrmarket/listings-service/internal/config"
	"github.com/skrmarket/listings-service/internal/models"
	logctx "github.com/skrmarket/listings-service/internal/pkg/log"
	"github.com/skrmarket/listings-service/internal/transport/http/httperr"
)

type identityCtxKey struct{}

// identityClaims — клеймы access-токена identity-провайдера.
// Сервис токены не выпускает, только читает.
type identityClaims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	City     string `json:"city,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	IsAdmin  bool   `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

// Authenticate разбирает Bearer-токен и кладёт models.Identity в контекст.
// Запрос без заголовка Authorization проходит дальше анонимно (публичные
// маршруты); предъявленный, но невалидный токен — немедленный 401.
func Authenticate(cfg config.AuthConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r)
				return
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) || len(auth) == len(prefix) {
				httperr.WriteError(w, r, httperr.ErrUnauthenticated)
				return
			}

			identity, err := parseToken(strings.TrimSpace(auth[len(prefix):]), cfg)
			if err != nil {
				logctx.From(r.Context()).Warn("token rejected", "err", err)
				httperr.WriteError(w, r, httperr.ErrUnauthenticated)
				return
			}

			ctx := context.WithValue(r.Context(), identityCtxKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFrom достаёт вызывающего из контекста запроса.
func IdentityFrom(ctx context.Context) (*models.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(*models.Identity)
	return identity, ok && identity != nil
}

// parseToken валидирует подпись/срок/issuer и собирает Identity из клеймов.
func parseToken(tokenStr string, cfg config.AuthConfig) (*models.Identity, error) {
	const op = "transport/http/middleware/parseToken"

	token, err := jwt.ParseWithClaims(tokenStr, &identityClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("%s: unexpected signing method", op)
			}

			return []byte(cfg.JWTSecret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(cfg.Issuer),
	)

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	claims, ok := token.Claims.(*identityClaims)
	if !ok || claims.Subject == "" {
		return nil, fmt.Errorf("%s: malformed claims", op)
	}

	return &models.Identity{
		ID:       claims.Subject,
		Email:    claims.Email,
		Username: claims.Username,
		City:     claims.City,
		Telegram: claims.Telegram,
		IsAdmin:  claims.IsAdmin,
	}, nil
}
