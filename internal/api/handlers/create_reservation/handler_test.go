package create_reservation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/internal/api/middleware"
	"github.com/m04kA/SMC-CharterService/internal/domain"
	createReservation "github.com/m04kA/SMC-CharterService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-CharterService/pkg/logger"
)

type fakeUseCase struct {
	got *createReservation.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &createReservation.Response{
		ID:           11,
		AssetID:      req.AssetID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Part:         domain.PartAM,
		Status:       string(domain.ReservationConfirmed),
		CustomerName: req.CustomerName,
	}, nil
}

func post(uc *fakeUseCase, body string, withUser bool) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
	if withUser {
		req = req.WithContext(middleware.WithUserID(req.Context(), 5))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	rec := post(uc, `{"assetId":3,"startDate":"2025-06-05","part":"HALF","customerName":"Ann"}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(11), body.ID)
	assert.Equal(t, "am", body.Part)
	assert.Equal(t, "2025-06-05", body.EndDate)
	assert.Equal(t, "09:00", body.DepartsAt)
	assert.Equal(t, "13:00", body.ReturnsAt)

	assert.Equal(t, int64(5), uc.got.UserID)
	assert.Equal(t, domain.PartHalf, uc.got.Part)
	assert.Equal(t, uc.got.StartDate, uc.got.EndDate)
}

func TestHandle_Errors(t *testing.T) {
	valid := `{"assetId":3,"startDate":"2025-06-01","endDate":"2025-06-03","part":"full","customerName":"Ann"}`
	tests := []struct {
		name   string
		body   string
		user   bool
		err    error
		status int
	}{
		{"no user", valid, false, nil, http.StatusUnauthorized},
		{"bad json", `{`, true, nil, http.StatusBadRequest},
		{"bad date", `{"assetId":3,"startDate":"June 1","part":"full","customerName":"Ann"}`, true, nil, http.StatusBadRequest},
		{"bad part", `{"assetId":3,"startDate":"2025-06-01","part":"night","customerName":"Ann"}`, true, nil, http.StatusBadRequest},
		{"unavailable", valid, true, createReservation.ErrAssetUnavailable, http.StatusConflict},
		{"not found", valid, true, createReservation.ErrAssetNotFound, http.StatusNotFound},
		{"inactive", valid, true, createReservation.ErrAssetInactive, http.StatusUnprocessableEntity},
		{"too long", valid, true, fmt.Errorf("%w: 9 days", createReservation.ErrRangeTooLong), http.StatusUnprocessableEntity},
		{"invalid", valid, true, createReservation.ErrInvalidInput, http.StatusBadRequest},
		{"internal", valid, true, createReservation.ErrInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(&fakeUseCase{err: tt.err}, tt.body, tt.user)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
