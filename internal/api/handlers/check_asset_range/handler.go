package check_asset_range

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/service/availability"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

const (
	msgInvalidAssetID   = "некорректный ID судна"
	msgInvalidStart     = "некорректная дата начала, ожидается YYYY-MM-DD"
	msgInvalidEnd       = "некорректная дата окончания, ожидается YYYY-MM-DD"
	msgInvalidPart      = "некорректная часть дня, ожидается full, am, pm, sunset или half"
	msgInvalidRequest   = "некорректные параметры запроса"
	msgRangeTooLong     = "выбранный диапазон слишком длинный"
	msgStoreUnavailable = "данные о доступности временно недоступны"
)

type Handler struct {
	checker      AssetRangeChecker
	maxRangeDays int
	logger       Logger
}

func NewHandler(checker AssetRangeChecker, maxRangeDays int, logger Logger) *Handler {
	return &Handler{
		checker:      checker,
		maxRangeDays: maxRangeDays,
		logger:       logger,
	}
}

// Handle GET /api/v1/assets/{assetId}/availability
// Query params: start, end (required, YYYY-MM-DD), part (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	assetID, err := strconv.ParseInt(mux.Vars(r)["assetId"], 10, 64)
	if err != nil || assetID <= 0 {
		h.logger.Warn("GET /assets/{id}/availability - Invalid asset ID: %q", mux.Vars(r)["assetId"])
		handlers.RespondBadRequest(w, msgInvalidAssetID)
		return
	}

	q := r.URL.Query()
	start, err := types.ParseDate(q.Get("start"))
	if err != nil {
		h.logger.Warn("GET /assets/{id}/availability - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}
	end, err := types.ParseDate(q.Get("end"))
	if err != nil {
		h.logger.Warn("GET /assets/{id}/availability - Invalid end: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEnd)
		return
	}
	part, err := domain.ParseDayPart(q.Get("part"))
	if err != nil {
		h.logger.Warn("GET /assets/{id}/availability - Invalid part: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPart)
		return
	}

	if err := availability.ValidateSpan(start, end, part, h.maxRangeDays); err != nil {
		h.logger.Warn("GET /assets/{id}/availability - Range too long: asset_id=%d, %s..%s part=%s", assetID, start, end, part)
		handlers.RespondUnprocessable(w, msgRangeTooLong)
		return
	}

	ok, err := h.checker.CheckAssetRange(r.Context(), assetID, start, end, part)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /assets/{id}/availability - Invalid request: asset_id=%d, error=%v", assetID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, availability.ErrStoreUnavailable):
			h.logger.Error("GET /assets/{id}/availability - Store unavailable: asset_id=%d, error=%v", assetID, err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("GET /assets/{id}/availability - Failed to check: asset_id=%d, error=%v", assetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	start, end = types.OrderDates(start, end)
	h.logger.Info("GET /assets/{id}/availability - Checked: asset_id=%d, %s..%s part=%s, available=%t",
		assetID, start, end, part, ok)
	handlers.RespondJSON(w, http.StatusOK, &AvailabilityResponse{
		AssetID:   assetID,
		Start:     start,
		End:       end,
		Part:      string(part),
		Available: ok,
	})
}
