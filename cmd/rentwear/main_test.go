package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gin "github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwear/internal/app/dto"
	domaincatalog "rentwear/internal/domain/catalog"
	domainpricing "rentwear/internal/domain/pricing"
	"rentwear/internal/infra/config"
	ginserver "rentwear/internal/infra/http/gin"
	"rentwear/internal/infra/obs"
	"rentwear/internal/infra/storage/memory"
)

const fixtureJSON = `[
	{"id":"saree-1","title":"Kanjivaram saree","category":"Ethnic Wear","brand":"Nalli","original_price":2999,"city":"Mumbai","seasonality":"medium"},
	{"id":"broken","title":"","category":"Ethnic Wear","original_price":100}
]`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(t *testing.T) (*gin.Engine, storage) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := discardLogger()
	ctx := context.Background()

	store, err := openStorage(ctx, config.Config{StorageMode: config.StorageMemory}, logger)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(fixtureJSON), 0o600))
	require.NoError(t, loadItemFixtures(ctx, store.items, path, logger))

	handlers := buildApplication(store, domainpricing.NewEngine(domainpricing.DefaultTables()), logger)
	return ginserver.NewRouter(obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: store.ready}, handlers), store
}

func do(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestFixturesSkipInvalidItems(t *testing.T) {
	_, store := newTestApp(t)
	repo, ok := store.items.(*memory.ItemRepository)
	require.True(t, ok)
	_, err := repo.ByID(context.Background(), "saree-1")
	require.NoError(t, err)
	_, err = repo.ByID(context.Background(), "broken")
	assert.ErrorIs(t, err, domaincatalog.ErrItemNotFound)

	assert.NoError(t, loadItemFixtures(context.Background(), repo, filepath.Join(t.TempDir(), "missing.json"), discardLogger()))
}

func TestReservationLifecycleOverHTTP(t *testing.T) {
	router, store := newTestApp(t)
	booking := `{"item_id":"saree-1","renter_id":"asha","start":"2024-01-08","end":"2024-01-11"}`

	rec := do(router, http.MethodGet, "/api/v1/items/saree-1/quote?start=2024-01-08&end=2024-01-11", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var quote dto.RentalQuote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	assert.True(t, quote.Available)
	assert.Equal(t, 3, quote.Quote.Days)

	rec = do(router, http.MethodPost, "/api/v1/reservations", booking, map[string]string{"Idempotency-Key": "book-1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var first dto.ReservationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))
	assert.Equal(t, "CONFIRMED", first.Status)
	assert.Equal(t, 5, first.NextTierAt)

	rec = do(router, http.MethodPost, "/api/v1/reservations", booking, map[string]string{"Idempotency-Key": "book-1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var replay dto.ReservationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &replay))
	assert.Equal(t, first.ReservationID, replay.ReservationID)

	clash := `{"item_id":"saree-1","renter_id":"ravi","start":"2024-01-10","end":"2024-01-12"}`
	rec = do(router, http.MethodPost, "/api/v1/reservations", clash, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(router, http.MethodGet, "/api/v1/items/saree-1/calendar?month=2024-01", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var calendar dto.ItemCalendar
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &calendar))
	assert.Len(t, calendar.FreeDays, 27)
	assert.InDelta(t, 4.0/31*100, calendar.OccupancyPercent, 1e-9)
	require.Len(t, calendar.Reservations, 1)

	rec = do(router, http.MethodPost, "/api/v1/reservations/"+first.ReservationID+"/cancel", `{"reason":"wedding postponed"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(router, http.MethodPost, "/api/v1/reservations", clash, nil)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	queue, ok := store.outbox.(*memory.OutboxQueue)
	require.True(t, ok)
	var names []string
	for _, r := range queue.Snapshot() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"reservation.confirmed", "reservation.cancelled", "reservation.confirmed"}, names)
}

func TestUnknownItemIsNotFound(t *testing.T) {
	router, _ := newTestApp(t)
	rec := do(router, http.MethodGet, "/api/v1/items/ghost/advice", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoadTablesPrefersInlineDocument(t *testing.T) {
	cfg := config.Config{PricingTables: `{"default_cleaning_fee": 99}`}
	tables := loadTables(context.Background(), cfg, discardLogger())
	assert.Equal(t, int64(99), tables.CleaningFee("unknown"))

	assert.Equal(t, domainpricing.DefaultTables(), loadTables(context.Background(), config.Config{}, discardLogger()))
}
