package get_month_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/service/availability"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

const (
	msgMissingMonth        = "месяц обязателен"
	msgInvalidMonth        = "некорректный формат месяца, ожидается YYYY-MM"
	msgInvalidAssetID      = "некорректный ID судна"
	msgInvalidExperienceID = "некорректный ID программы"
	msgInvalidRequest      = "некорректные параметры запроса"
	msgRangeTooLong        = "слишком длинный период"
	msgStoreUnavailable    = "данные о доступности временно недоступны"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/month
// Query params: month (required, YYYY-MM), assetId (optional), experienceId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	monthStr := q.Get("month")
	if monthStr == "" {
		h.logger.Warn("GET /availability/month - Missing month")
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}
	month, err := types.ParseYearMonth(monthStr)
	if err != nil {
		h.logger.Warn("GET /availability/month - Invalid month: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	var scope domain.AssetScope
	if raw := q.Get("assetId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /availability/month - Invalid asset ID: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidAssetID)
			return
		}
		scope.AssetID = &id
	}
	if raw := q.Get("experienceId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			h.logger.Warn("GET /availability/month - Invalid experience ID: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidExperienceID)
			return
		}
		scope.ExperienceID = &id
	}

	days, err := h.service.AggregateMonth(r.Context(), scope, month)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /availability/month - Invalid request: month=%s, error=%v", month, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, availability.ErrRangeTooLong):
			h.logger.Warn("GET /availability/month - Range too long: month=%s", month)
			handlers.RespondUnprocessable(w, msgRangeTooLong)

		case errors.Is(err, availability.ErrStoreUnavailable):
			h.logger.Error("GET /availability/month - Store unavailable: month=%s, error=%v", month, err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("GET /availability/month - Failed to aggregate: month=%s, error=%v", month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/month - Month aggregated: month=%s, days=%d", month, len(days))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(month, days))
}
