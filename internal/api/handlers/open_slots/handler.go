package open_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/api/middleware"
	"github.com/m04kA/SMC-CharterService/internal/service/slots"
)

const (
	msgInvalidAssetID     = "некорректный ID судна"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgAssetNotFound      = "судно не найдено"
	msgInvalidInput       = "некорректные параметры слотов"
	msgRangeTooLong       = "слишком длинный период"
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

// Handle PUT /api/v1/admin/assets/{assetId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	assetID, err := strconv.ParseInt(mux.Vars(r)["assetId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/assets/{id}/slots - Invalid asset ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAssetID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /admin/assets/{id}/slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req OpenSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/assets/{id}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID, assetID)
	if err != nil {
		h.logger.Warn("PUT /admin/assets/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.OpenSlots(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrAssetNotFound):
			h.logger.Warn("PUT /admin/assets/{id}/slots - Asset not found: asset_id=%d", assetID)
			handlers.RespondNotFound(w, msgAssetNotFound)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PUT /admin/assets/{id}/slots - Invalid input: asset_id=%d, error=%v", assetID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, slots.ErrRangeTooLong):
			h.logger.Warn("PUT /admin/assets/{id}/slots - Range too long: asset_id=%d", assetID)
			handlers.RespondUnprocessable(w, msgRangeTooLong)

		default:
			h.logger.Error("PUT /admin/assets/{id}/slots - Failed to open slots: asset_id=%d, user_id=%d, error=%v",
				assetID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/assets/{id}/slots - Slots written: asset_id=%d, user_id=%d, count=%d",
		assetID, userID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
