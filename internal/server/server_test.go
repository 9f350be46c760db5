package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chibox/chibox-server/internal/caseopen"
	"github.com/chibox/chibox-server/internal/claimlock"
	"github.com/chibox/chibox-server/internal/domain"
	"github.com/chibox/chibox-server/internal/drophistory"
	"github.com/chibox/chibox-server/internal/event"
	"github.com/chibox/chibox-server/internal/eventlog"
	"github.com/chibox/chibox-server/internal/handler"
	"github.com/chibox/chibox-server/internal/minigame"
	"github.com/chibox/chibox-server/internal/repository"
	"github.com/chibox/chibox-server/internal/repository/memory"
	"github.com/chibox/chibox-server/internal/session"
	"github.com/chibox/chibox-server/internal/subscription"
	"github.com/chibox/chibox-server/internal/upgrade"
	"github.com/chibox/chibox-server/internal/user"
)

const testSecret = "router-test-secret-0123456789"

func newTestRouter(t *testing.T, opts Options) (http.Handler, *memory.Store) {
	t.Helper()

	store := memory.New()
	store.AddItem(
		domain.Item{ID: "p250", Name: "P250 | Sand Dune", Price: decimal.NewFromInt(5), Rarity: "common", DropWeight: 1},
		domain.Item{ID: "ak", Name: "AK-47 | Redline", Price: decimal.NewFromInt(40), Rarity: "rare", DropWeight: 1},
	)
	store.AddCase(
		domain.Case{ID: "starter", Name: "Starter", Price: decimal.NewFromInt(10), Active: true},
		repository.CaseEntry{ItemID: "p250"}, repository.CaseEntry{ItemID: "ak"},
	)

	sessions, err := session.NewManager(session.NewMemoryStore(), testSecret, time.Hour)
	require.NoError(t, err)

	bus := event.NewMemoryBus()
	locker := claimlock.NewMemoryLocker()
	table := subscription.DefaultTable()
	subs := subscription.NewService(store, table, time.Minute)
	activity := eventlog.NewService(eventlog.NewMemoryRepository())
	require.NoError(t, activity.Subscribe(bus))

	deps := Deps{
		Users:         user.NewService(store, decimal.NewFromInt(100)),
		Sessions:      sessions,
		Subscriptions: subs,
		Cases: caseopen.NewService(caseopen.Deps{
			Economy:   store,
			Catalog:   store,
			Inventory: store,
			Bonuses:   subs,
			History:   drophistory.NewMemoryStore(drophistory.DefaultLimit),
			Locker:    locker,
			Bus:       bus,
		}, 3),
		Upgrades: upgrade.NewService(store, locker, bus, upgrade.DefaultCalculator()),
		Games: minigame.NewService(store, store, store, store, locker, bus, table,
			minigame.DefaultConfig(), minigame.NewResetClock("UTC", 0)),
		History: activity,
		Checks:  map[string]handler.HealthChecker{},
	}
	return NewRouter(opts, deps), store
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, h http.Handler, username string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/v1/users/register", "",
		map[string]string{"username": username, "password": "correct-horse"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp handler.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Token)
	return resp.Token.Token
}

func TestRouter_AccountFlow(t *testing.T) {
	h, _ := newTestRouter(t, Options{})
	token := register(t, h, "alice")

	rec := do(t, h, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile handler.ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "alice", profile.Username)
	assert.True(t, decimal.NewFromInt(100).Equal(profile.Balance))

	rec = do(t, h, http.MethodPost, "/api/v1/users/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/users/login", "",
		map[string]string{"username": "alice", "password": "correct-horse"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/users/login", "",
		map[string]string{"username": "alice", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_OpenAndSell(t *testing.T) {
	h, _ := newTestRouter(t, Options{})
	token := register(t, h, "bob")

	rec := do(t, h, http.MethodGet, "/api/v1/cases/starter", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var details caseopen.CaseDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &details))
	assert.Len(t, details.Items, 2)

	rec = do(t, h, http.MethodPost, "/api/v1/cases/starter/open", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var opening domain.CaseOpening
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opening))
	assert.True(t, decimal.NewFromInt(90).Equal(opening.Balance))

	rec = do(t, h, http.MethodPost, "/api/v1/inventory/"+opening.InventoryItem.ID+"/sell", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/v1/inventory/"+opening.InventoryItem.ID+"/sell", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/cases/missing/open", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_AuthRequired(t *testing.T) {
	h, _ := newTestRouter(t, Options{})

	paths := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/v1/me"},
		{http.MethodGet, "/api/v1/inventory"},
		{http.MethodPost, "/api/v1/cases/starter/open"},
		{http.MethodPost, "/api/v1/upgrade"},
		{http.MethodGet, "/api/v1/games/slot/status"},
		{http.MethodPost, "/api/v1/games/slot/play"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			rec := do(t, h, p.method, p.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRouter_PublicEndpoints(t *testing.T) {
	h, _ := newTestRouter(t, Options{Version: "1.2.3"})

	rec := do(t, h, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/version", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1.2.3")

	rec = do(t, h, http.MethodGet, "/api/v1/upgrade/chance?source_total=10&target_price=20", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Headers(t *testing.T) {
	h, _ := newTestRouter(t, Options{})

	t.Run("security headers on every response", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/healthz", "", nil)
		assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
		assert.Equal(t, HeaderValueDeny, rec.Header().Get(HeaderFrameOptions))
		assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get(HeaderReferrerPolicy))
	})

	t.Run("request id is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cases/starter", nil)
		req.Header.Set(HeaderRequestID, "req-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "req-123", rec.Header().Get(HeaderRequestID))
	})

	t.Run("request id is generated", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/v1/cases/starter", "", nil)
		assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
	})
}

func TestRouter_BodyLimit(t *testing.T) {
	h, _ := newTestRouter(t, Options{MaxBodyBytes: 32})

	rec := do(t, h, http.MethodPost, "/api/v1/users/register", "",
		map[string]string{"username": "carol", "password": "a-very-long-password-that-overflows"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_RateLimit(t *testing.T) {
	h, _ := newTestRouter(t, Options{RateLimit: 2, RateWindow: time.Hour})

	for i := 0; i < 2; i++ {
		rec := do(t, h, http.MethodGet, "/healthz", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := do(t, h, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRouter_History(t *testing.T) {
	h, _ := newTestRouter(t, Options{})
	token := register(t, h, "dana")

	rec := do(t, h, http.MethodPost, "/api/v1/cases/starter/open", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/history", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, string(event.CaseOpened), resp.Events[0].EventType)
	assert.Equal(t, "starter", resp.Events[0].Payload["case_id"])

	rec = do(t, h, http.MethodGet, "/api/v1/history", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
