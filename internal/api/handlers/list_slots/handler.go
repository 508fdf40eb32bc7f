package list_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/service/slots"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

const (
	msgInvalidAssetID = "некорректный ID судна"
	msgInvalidFrom    = "некорректная дата from, ожидается YYYY-MM-DD"
	msgInvalidTo      = "некорректная дата to, ожидается YYYY-MM-DD"
	msgInvalidInput   = "некорректные параметры запроса"
	msgRangeTooLong   = "слишком длинный период"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/assets/{assetId}/slots
// Query params: from, to (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	assetID, err := strconv.ParseInt(mux.Vars(r)["assetId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /admin/assets/{id}/slots - Invalid asset ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAssetID)
		return
	}

	q := r.URL.Query()
	from, err := types.ParseDate(q.Get("from"))
	if err != nil {
		h.logger.Warn("GET /admin/assets/{id}/slots - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFrom)
		return
	}
	to, err := types.ParseDate(q.Get("to"))
	if err != nil {
		h.logger.Warn("GET /admin/assets/{id}/slots - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTo)
		return
	}

	result, err := h.service.ListSlots(r.Context(), assetID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /admin/assets/{id}/slots - Invalid input: asset_id=%d, error=%v", assetID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, slots.ErrRangeTooLong):
			h.logger.Warn("GET /admin/assets/{id}/slots - Range too long: asset_id=%d", assetID)
			handlers.RespondUnprocessable(w, msgRangeTooLong)

		default:
			h.logger.Error("GET /admin/assets/{id}/slots - Failed to list slots: asset_id=%d, error=%v", assetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/assets/{id}/slots - Slots retrieved: asset_id=%d, count=%d", assetID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
