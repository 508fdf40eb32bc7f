package list_asset_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/service/reservations"
	"github.com/m04kA/SMC-CharterService/internal/service/reservations/models"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

const (
	msgInvalidAssetID  = "некорректный ID судна"
	msgInvalidFrom     = "некорректная дата from, ожидается YYYY-MM-DD"
	msgInvalidTo       = "некорректная дата to, ожидается YYYY-MM-DD"
	msgInvalidInactive = "некорректное значение includeInactive"
	msgInvalidInput    = "некорректные параметры запроса"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/assets/{assetId}/reservations
// Query params: from, to (required, YYYY-MM-DD), includeInactive (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	assetID, err := strconv.ParseInt(mux.Vars(r)["assetId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /admin/assets/{id}/reservations - Invalid asset ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAssetID)
		return
	}

	q := r.URL.Query()
	from, err := types.ParseDate(q.Get("from"))
	if err != nil {
		h.logger.Warn("GET /admin/assets/{id}/reservations - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFrom)
		return
	}
	to, err := types.ParseDate(q.Get("to"))
	if err != nil {
		h.logger.Warn("GET /admin/assets/{id}/reservations - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTo)
		return
	}

	includeInactive := false
	if raw := q.Get("includeInactive"); raw != "" {
		includeInactive, err = strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /admin/assets/{id}/reservations - Invalid includeInactive: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidInactive)
			return
		}
	}

	result, err := h.service.ListByAsset(r.Context(), &models.ListReservationsRequest{
		AssetID:         assetID,
		From:            from,
		To:              to,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		if errors.Is(err, reservations.ErrInvalidInput) {
			h.logger.Warn("GET /admin/assets/{id}/reservations - Invalid input: asset_id=%d, error=%v", assetID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("GET /admin/assets/{id}/reservations - Failed to list reservations: asset_id=%d, error=%v", assetID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/assets/{id}/reservations - Reservations retrieved: asset_id=%d, count=%d",
		assetID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
