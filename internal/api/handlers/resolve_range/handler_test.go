package resolve_range

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/service/availability"
	"github.com/m04kA/SMC-CharterService/pkg/logger"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

type fakeResolver struct {
	calls int
	pool  domain.AssetPool
	part  domain.DayPart
	ids   []int64
	err   error
}

func (f *fakeResolver) ResolveRange(_ context.Context, pool domain.AssetPool, _, _ types.Date, part domain.DayPart) ([]int64, error) {
	f.calls++
	f.pool = pool
	f.part = part
	return f.ids, f.err
}

func serve(t *testing.T, res *fakeResolver, url string) *httptest.ResponseRecorder {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/availability/range", NewHandler(res, 6, logger.NewNop()).Handle).Methods(http.MethodGet)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	res := &fakeResolver{ids: []int64{3, 7}}
	rec := serve(t, res, "/availability/range?start=2025-06-03&end=2025-06-01&part=full&assetIds=7,3")

	require.Equal(t, http.StatusOK, rec.Code)
	var body RangeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []int64{3, 7}, body.AssetIDs)
	assert.Equal(t, "2025-06-01", body.Start.String())
	assert.Equal(t, "2025-06-03", body.End.String())
	assert.Equal(t, domain.PoolOf(3, 7), res.pool)
	assert.Equal(t, domain.PartFull, res.part)
}

func TestHandle_WholeFleetAndEmptyPool(t *testing.T) {
	res := &fakeResolver{}
	rec := serve(t, res, "/availability/range?start=2025-06-01&end=2025-06-01&part=half")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, res.pool.Restricted)
	assert.JSONEq(t, `{"start":"2025-06-01","end":"2025-06-01","part":"half","assetIds":[]}`, rec.Body.String())

	rec = serve(t, res, "/availability/range?start=2025-06-01&end=2025-06-01&part=am&assetIds=")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, res.pool.IsEmpty())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
		calls  int
	}{
		{"missing start", "end=2025-06-01&part=full", nil, http.StatusBadRequest, 0},
		{"bad end", "start=2025-06-01&end=06/02/2025&part=full", nil, http.StatusBadRequest, 0},
		{"bad part", "start=2025-06-01&end=2025-06-01&part=night", nil, http.StatusBadRequest, 0},
		{"bad ids", "start=2025-06-01&end=2025-06-01&part=full&assetIds=1,x", nil, http.StatusBadRequest, 0},
		{"seven days", "start=2025-06-01&end=2025-06-07&part=full", nil, http.StatusUnprocessableEntity, 0},
		{"am over two days", "start=2025-06-01&end=2025-06-02&part=am", nil, http.StatusUnprocessableEntity, 0},
		{"store down", "start=2025-06-01&end=2025-06-02&part=full",
			fmt.Errorf("%w: slots", availability.ErrStoreUnavailable), http.StatusServiceUnavailable, 1},
		{"unexpected", "start=2025-06-01&end=2025-06-02&part=full", fmt.Errorf("boom"), http.StatusInternalServerError, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &fakeResolver{err: tt.err}
			rec := serve(t, res, "/availability/range?"+tt.query)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.calls, res.calls)
		})
	}
}
