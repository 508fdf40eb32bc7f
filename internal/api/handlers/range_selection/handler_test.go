package range_selection

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/selection"
	"github.com/m04kA/SMC-CharterService/pkg/logger"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// spanResolver отдает весь пул на диапазоны до трех дней и ничего на более длинные
type spanResolver struct{}

func (spanResolver) ResolveRange(_ context.Context, pool domain.AssetPool, start, end types.Date, _ domain.DayPart) ([]int64, error) {
	start, end = types.OrderDates(start, end)
	if start.DaysUntil(end) >= 3 {
		return []int64{}, nil
	}
	if !pool.Restricted {
		return []int64{1, 2}, nil
	}
	return pool.IDs, nil
}

func newRouter() http.Handler {
	log := logger.NewNop()
	store := selection.NewStore(spanResolver{}, selection.Config{MaxRangeDays: 6, SessionTTL: time.Minute}, nil, log)
	h := NewHandler(store, log)

	r := mux.NewRouter()
	r.HandleFunc("/selections", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/selections/{sessionId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/selections/{sessionId}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/selections/{sessionId}/clicks", h.Click).Methods(http.MethodPost)
	r.HandleFunc("/selections/{sessionId}/end-dates/{date}", h.CheckEndDate).Methods(http.MethodGet)
	r.HandleFunc("/selections/{sessionId}/reset", h.Reset).Methods(http.MethodPost)
	return r
}

func do(t *testing.T, h http.Handler, method, url, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, url, nil)
	} else {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) SessionResponse {
	t.Helper()
	var s SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	return s
}

func TestSelectionFlow(t *testing.T) {
	r := newRouter()

	rec := do(t, r, http.MethodPost, "/selections", `{"assetIds":[2,1]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	s := decodeSession(t, rec)
	assert.Equal(t, string(selection.StateIdle), s.State)
	base := "/selections/" + s.ID

	rec = do(t, r, http.MethodPost, base+"/clicks", `{"date":"2025-06-10","part":"full"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	s = decodeSession(t, rec)
	assert.Equal(t, string(selection.StateAnchorSet), s.State)
	assert.Equal(t, []int64{1, 2}, s.AnchorPool)

	rec = do(t, r, http.MethodGet, base+"/end-dates/2025-06-12", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2025-06-12","feasible":true}`, rec.Body.String())

	rec = do(t, r, http.MethodGet, base+"/end-dates/2025-06-14", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2025-06-14","feasible":false}`, rec.Body.String())

	// диапазон без свободных судов отклоняется, начальная дата сохраняется
	rec = do(t, r, http.MethodPost, base+"/clicks", `{"date":"2025-06-14"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, r, http.MethodPost, base+"/clicks", `{"date":"2025-06-20"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, r, http.MethodPost, base+"/clicks", `{"date":"2025-06-08"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	s = decodeSession(t, rec)
	assert.Equal(t, string(selection.StateRangeFixed), s.State)
	assert.Equal(t, "2025-06-08", s.Start.String())
	assert.Equal(t, "2025-06-10", s.End.String())
	assert.Equal(t, []int64{1, 2}, s.AssetIDs)

	rec = do(t, r, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(selection.StateRangeFixed), decodeSession(t, rec).State)

	rec = do(t, r, http.MethodPost, base+"/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(selection.StateIdle), decodeSession(t, rec).State)

	rec = do(t, r, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, r, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSelectionErrors(t *testing.T) {
	r := newRouter()

	rec := do(t, r, http.MethodPost, "/selections", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	base := "/selections/" + decodeSession(t, rec).ID

	tests := []struct {
		name   string
		method string
		url    string
		body   string
		status int
	}{
		{"unknown session", http.MethodGet, "/selections/nope", "", http.StatusNotFound},
		{"bad body", http.MethodPost, base + "/clicks", `{"date":`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, base + "/clicks", `{"day":"2025-06-01"}`, http.StatusBadRequest},
		{"bad date", http.MethodPost, base + "/clicks", `{"date":"01.06.2025","part":"full"}`, http.StatusBadRequest},
		{"bad part", http.MethodPost, base + "/clicks", `{"date":"2025-06-01","part":"night"}`, http.StatusBadRequest},
		{"end date without anchor", http.MethodGet, base + "/end-dates/2025-06-01", "", http.StatusConflict},
		{"bad end date", http.MethodGet, base + "/end-dates/june", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, tt.method, tt.url, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
