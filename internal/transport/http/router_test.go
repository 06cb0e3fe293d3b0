package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/skrmarket/listings-service/internal/config"
	"github.com/skrmarket/listings-service/internal/models"
	"github.com/skrmarket/listings-service/internal/service"
	"github.com/skrmarket/listings-service/internal/storage"
	"github.com/skrmarket/listings-service/mocks"
)

const testSecret = "router-test-secret"

type routerEnv struct {
	handler  http.Handler
	listings *mocks.MockListings
	cleanup  *mocks.MockCleanupQueue
	images   *mocks.MockImages
	identity *mocks.MockIdentityCounts
}

func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	ml := mocks.NewMockListings(ctrl)
	mc := mocks.NewMockCleanupQueue(ctrl)
	mi := mocks.NewMockImages(ctrl)
	mid := mocks.NewMockIdentityCounts(ctrl)

	cfg := config.Config{
		Cleanup: config.CleanupConfig{Interval: time.Minute, BatchSize: 10},
	}
	svc := service.New(ml, mc, mi, mid, cfg)

	auth := config.AuthConfig{JWTSecret: testSecret, Issuer: "skr-identity"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &routerEnv{
		handler:  NewRouter(svc, auth, Options{Logger: logger, Timeout: 5 * time.Second}),
		listings: ml,
		cleanup:  mc,
		images:   mi,
		identity: mid,
	}
}

func token(t *testing.T, sub string, isAdmin bool) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":      sub,
		"iss":      "skr-identity",
		"exp":      time.Now().Add(time.Hour).Unix(),
		"username": "seller-" + sub,
	}
	if isAdmin {
		claims["is_admin"] = true
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	return signed
}

func doReq(t *testing.T, h http.Handler, method, target, bearer string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func storedListing(id, sellerID string, status models.ListingStatus) models.Listing {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return models.Listing{
		ID:             id,
		Title:          "Кроссовки Nike",
		Description:    "Почти новые",
		Price:          1200,
		Condition:      models.ConditionUsedGood,
		Category:       models.CategoryRef{ID: "clothing", Name: "Одежда"},
		Subcategory:    models.SubcategoryRef{ID: "outerwear", Name: "Верхняя одежда"},
		City:           "Киев",
		Images:         []string{"http://cdn.local/a.png"},
		SellerContact:  "@seller",
		SellerID:       sellerID,
		SellerUsername: "seller-" + sellerID,
		Status:         status,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

type errEnvelope struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func decodeErr(t *testing.T, rr *httptest.ResponseRecorder) errEnvelope {
	t.Helper()

	var env errEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

func multipartBody(t *testing.T, fields map[string]string, images int) (io.Reader, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	for i := 0; i < images; i++ {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="img-%d.png"`, i))
		hdr.Set("Content-Type", "image/png")

		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestRouter_PublicFeed_OnlyActive(t *testing.T) {
	env := newRouterEnv(t)

	env.listings.EXPECT().ListAll(gomock.Any()).Return([]models.Listing{
		storedListing("lst-1", "user-1", models.StatusActive),
		storedListing("lst-2", "user-1", models.StatusPendingModeration),
		storedListing("lst-3", "user-2", models.StatusSold),
	}, nil)

	rr := doReq(t, env.handler, http.MethodGet, "/listings", "", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Listings []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"listings"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Listings, 1)
	require.Equal(t, "lst-1", resp.Listings[0].ID)
	require.Equal(t, "active", resp.Listings[0].Status)
}

func TestRouter_PublicFeed_QueryFilters(t *testing.T) {
	env := newRouterEnv(t)

	cheap := storedListing("lst-1", "user-1", models.StatusActive)
	cheap.Price = 100
	pricey := storedListing("lst-2", "user-1", models.StatusActive)
	pricey.Price = 5000

	env.listings.EXPECT().ListAll(gomock.Any()).Return([]models.Listing{cheap, pricey}, nil)

	rr := doReq(t, env.handler, http.MethodGet, "/listings?price_max=1000", "", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Listings []struct {
			ID string `json:"id"`
		} `json:"listings"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Listings, 1)
	require.Equal(t, "lst-1", resp.Listings[0].ID)
}

func TestRouter_PublicFeed_BadPriceParam(t *testing.T) {
	env := newRouterEnv(t)

	rr := doReq(t, env.handler, http.MethodGet, "/listings?price_min=abc", "", nil, "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "invalid_argument", decodeErr(t, rr).Error.Code)
}

func TestRouter_GetListing_NotFound(t *testing.T) {
	env := newRouterEnv(t)

	env.listings.EXPECT().ListingByID(gomock.Any(), "missing").
		Return(nil, fmt.Errorf("storage/mongo/ListingByID: %w", storage.ErrNotFound))

	rr := doReq(t, env.handler, http.MethodGet, "/listings/missing", "", nil, "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "not_found", decodeErr(t, rr).Error.Code)
}

func TestRouter_CreateListing_RequiresAuth(t *testing.T) {
	env := newRouterEnv(t)

	body, ct := multipartBody(t, map[string]string{"title": "x"}, 1)
	rr := doReq(t, env.handler, http.MethodPost, "/listings", "", body, ct)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "unauthenticated", decodeErr(t, rr).Error.Code)
}

func TestRouter_CreateListing_InvalidToken(t *testing.T) {
	env := newRouterEnv(t)

	body, ct := multipartBody(t, map[string]string{"title": "x"}, 1)
	rr := doReq(t, env.handler, http.MethodPost, "/listings", "not-a-jwt", body, ct)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRouter_CreateListing_OK(t *testing.T) {
	env := newRouterEnv(t)

	fields := map[string]string{
		"title":          "Кроссовки Nike",
		"description":    "Почти новые",
		"price":          "1200",
		"condition":      "used-good",
		"category_id":    "clothing",
		"subcategory_id": "outerwear",
		"city":           "Киев",
		"seller_contact": "@seller",
	}
	body, ct := multipartBody(t, fields, 2)

	env.listings.EXPECT().NewListingID().Return("lst-new")
	env.images.EXPECT().UploadImage(gomock.Any(), "user-1", "lst-new", gomock.Any()).
		Return("http://cdn.local/a.png", nil)
	env.images.EXPECT().UploadImage(gomock.Any(), "user-1", "lst-new", gomock.Any()).
		Return("http://cdn.local/b.png", nil)
	env.listings.EXPECT().CreateListing(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, l models.Listing) (*models.Listing, error) {
			require.Equal(t, models.StatusPendingModeration, l.Status)
			require.Equal(t, "user-1", l.SellerID)

			stored := l
			stored.Version = 1
			stored.CreatedAt = time.Now().UTC()
			stored.UpdatedAt = stored.CreatedAt
			return &stored, nil
		})

	rr := doReq(t, env.handler, http.MethodPost, "/listings", token(t, "user-1", false), body, ct)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		ID      string   `json:"id"`
		Status  string   `json:"status"`
		Version int64    `json:"version"`
		Images  []string `json:"images"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "lst-new", resp.ID)
	require.Equal(t, "pending_moderation", resp.Status)
	require.EqualValues(t, 1, resp.Version)
	require.Equal(t, []string{"http://cdn.local/a.png", "http://cdn.local/b.png"}, resp.Images)
}

func TestRouter_CreateListing_ValidationError(t *testing.T) {
	env := newRouterEnv(t)

	// Нет ни одного изображения.
	fields := map[string]string{
		"title":          "Кроссовки",
		"description":    "desc",
		"price":          "10",
		"condition":      "new",
		"category_id":    "clothing",
		"subcategory_id": "outerwear",
		"city":           "Киев",
		"seller_contact": "@s",
	}
	body, ct := multipartBody(t, fields, 0)

	rr := doReq(t, env.handler, http.MethodPost, "/listings", token(t, "user-1", false), body, ct)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "invalid_argument", decodeErr(t, rr).Error.Code)
}

func TestRouter_Approve_Admin(t *testing.T) {
	env := newRouterEnv(t)

	pending := storedListing("lst-1", "user-1", models.StatusPendingModeration)
	approved := pending
	approved.Status = models.StatusActive

	env.listings.EXPECT().ListingByID(gomock.Any(), "lst-1").Return(&pending, nil)
	env.listings.EXPECT().UpdateStatus(gomock.Any(), "lst-1", models.StatusPendingModeration, models.StatusActive).
		Return(&approved, nil)

	rr := doReq(t, env.handler, http.MethodPost, "/admin/listings/lst-1/approve", token(t, "admin-1", true), nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "active", resp.Status)
}

func TestRouter_Approve_NonAdminForbidden(t *testing.T) {
	env := newRouterEnv(t)

	pending := storedListing("lst-1", "user-1", models.StatusPendingModeration)
	env.listings.EXPECT().ListingByID(gomock.Any(), "lst-1").Return(&pending, nil)

	// Даже владелец не может одобрить своё объявление.
	rr := doReq(t, env.handler, http.MethodPost, "/admin/listings/lst-1/approve", token(t, "user-1", false), nil, "")
	require.Equal(t, http.StatusForbidden, rr.Code)
	require.Equal(t, "permission_denied", decodeErr(t, rr).Error.Code)
}

func TestRouter_SetStatus_StrictBody(t *testing.T) {
	env := newRouterEnv(t)

	body := strings.NewReader(`{"status": "active", "extra": true}`)
	rr := doReq(t, env.handler, http.MethodPatch, "/admin/listings/lst-1/status", token(t, "admin-1", true), body, "application/json")

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "invalid_argument", decodeErr(t, rr).Error.Code)
}

func TestRouter_SetStatus_IllegalTransition(t *testing.T) {
	env := newRouterEnv(t)

	rejected := storedListing("lst-1", "user-1", models.StatusRejected)
	env.listings.EXPECT().ListingByID(gomock.Any(), "lst-1").Return(&rejected, nil)

	body := strings.NewReader(`{"status": "active"}`)
	rr := doReq(t, env.handler, http.MethodPatch, "/admin/listings/lst-1/status", token(t, "admin-1", true), body, "application/json")

	require.Equal(t, http.StatusPreconditionFailed, rr.Code)
	require.Equal(t, "failed_precondition", decodeErr(t, rr).Error.Code)
}

func TestRouter_MarkSold_Owner(t *testing.T) {
	env := newRouterEnv(t)

	active := storedListing("lst-1", "user-1", models.StatusActive)
	sold := active
	sold.Status = models.StatusSold

	env.listings.EXPECT().ListingByID(gomock.Any(), "lst-1").Return(&active, nil)
	env.listings.EXPECT().UpdateStatus(gomock.Any(), "lst-1", models.StatusActive, models.StatusSold).
		Return(&sold, nil)

	rr := doReq(t, env.handler, http.MethodPost, "/listings/lst-1/sold", token(t, "user-1", false), nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "sold", resp.Status)
}

func TestRouter_Delete_NoContent(t *testing.T) {
	env := newRouterEnv(t)

	owned := storedListing("lst-1", "user-1", models.StatusActive)
	env.listings.EXPECT().ListingByID(gomock.Any(), "lst-1").Return(&owned, nil)
	env.images.EXPECT().RemoveImage(gomock.Any(), "http://cdn.local/a.png").Return(nil)
	env.listings.EXPECT().DeleteListing(gomock.Any(), "lst-1").Return(nil)

	rr := doReq(t, env.handler, http.MethodDelete, "/listings/lst-1", token(t, "user-1", false), nil, "")
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Empty(t, rr.Body.Bytes())
}

func TestRouter_MyListings(t *testing.T) {
	env := newRouterEnv(t)

	env.listings.EXPECT().ListBySeller(gomock.Any(), "user-1").Return([]models.Listing{
		storedListing("lst-1", "user-1", models.StatusPendingModeration),
		storedListing("lst-2", "user-1", models.StatusRejected),
	}, nil)

	rr := doReq(t, env.handler, http.MethodGet, "/my/listings", token(t, "user-1", false), nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Listings []struct {
			ID string `json:"id"`
		} `json:"listings"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Listings, 2)
}

func TestRouter_Dashboard_Admin(t *testing.T) {
	env := newRouterEnv(t)

	env.listings.EXPECT().ListAll(gomock.Any()).Return([]models.Listing{
		storedListing("lst-1", "user-1", models.StatusPendingModeration),
		storedListing("lst-2", "user-2", models.StatusActive),
		storedListing("lst-3", "user-2", models.StatusActive),
	}, nil)
	env.identity.EXPECT().CountUsers(gomock.Any()).Return(int64(42), nil)
	env.identity.EXPECT().CountUsersCreatedSince(gomock.Any(), gomock.Any()).Return(int64(5), nil)

	rr := doReq(t, env.handler, http.MethodGet, "/admin/dashboard", token(t, "admin-1", true), nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		PendingCount    int   `json:"pending_count"`
		ActiveCount     int   `json:"active_count"`
		TotalUsers      int64 `json:"total_users"`
		NewUsersLast24h int64 `json:"new_users_last_24h"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.PendingCount)
	require.Equal(t, 2, resp.ActiveCount)
	require.EqualValues(t, 42, resp.TotalUsers)
	require.EqualValues(t, 5, resp.NewUsersLast24h)
}

func TestRouter_Dashboard_NonAdminForbidden(t *testing.T) {
	env := newRouterEnv(t)

	rr := doReq(t, env.handler, http.MethodGet, "/admin/dashboard", token(t, "user-1", false), nil, "")
	require.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRouter_Taxonomy_Public(t *testing.T) {
	env := newRouterEnv(t)

	rr := doReq(t, env.handler, http.MethodGet, "/taxonomy", "", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Categories []struct {
			ID string `json:"id"`
		} `json:"categories"`
		Conditions []string `json:"conditions"`
		Cities     []string `json:"cities"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Categories)
	require.Contains(t, resp.Conditions, "new")
	require.Contains(t, resp.Cities, "Киев")
}

func TestRouter_BasePathMount(t *testing.T) {
	env := newRouterEnv(t)

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	ml := mocks.NewMockListings(ctrl)
	ml.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

	svc := service.New(ml, env.cleanup, env.images, env.identity, config.Config{
		Cleanup: config.CleanupConfig{Interval: time.Minute, BatchSize: 10},
	})

	h := NewRouter(svc, config.AuthConfig{JWTSecret: testSecret, Issuer: "skr-identity"}, Options{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		BasePath: "/api",
	})

	rr := doReq(t, h, http.MethodGet, "/api/listings", "", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doReq(t, h, http.MethodGet, "/listings", "", nil, "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}
