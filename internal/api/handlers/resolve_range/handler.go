package resolve_range

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/service/availability"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

const (
	msgInvalidStart     = "некорректная дата начала, ожидается YYYY-MM-DD"
	msgInvalidEnd       = "некорректная дата окончания, ожидается YYYY-MM-DD"
	msgInvalidPart      = "некорректная часть дня, ожидается full, am, pm, sunset или half"
	msgInvalidAssetIDs  = "некорректный список ID судов"
	msgInvalidRequest   = "некорректные параметры запроса"
	msgRangeTooLong     = "выбранный диапазон слишком длинный"
	msgStoreUnavailable = "данные о доступности временно недоступны"
)

type Handler struct {
	resolver     RangeResolver
	maxRangeDays int
	logger       Logger
}

func NewHandler(resolver RangeResolver, maxRangeDays int, logger Logger) *Handler {
	return &Handler{
		resolver:     resolver,
		maxRangeDays: maxRangeDays,
		logger:       logger,
	}
}

// Handle GET /api/v1/availability/range
// Query params: start, end (required, YYYY-MM-DD), part (required), assetIds (optional, "1,2")
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := types.ParseDate(q.Get("start"))
	if err != nil {
		h.logger.Warn("GET /availability/range - Invalid start: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}
	end, err := types.ParseDate(q.Get("end"))
	if err != nil {
		h.logger.Warn("GET /availability/range - Invalid end: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEnd)
		return
	}
	part, err := domain.ParseDayPart(q.Get("part"))
	if err != nil {
		h.logger.Warn("GET /availability/range - Invalid part: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPart)
		return
	}

	// Без assetIds проверяется весь флот; пустой assetIds - пустой пул
	pool := domain.AllAssets()
	if q.Has("assetIds") {
		ids, err := handlers.ParseIDList(q.Get("assetIds"))
		if err != nil {
			h.logger.Warn("GET /availability/range - Invalid asset IDs: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAssetIDs)
			return
		}
		pool = domain.PoolOf(ids...)
	}

	if err := availability.ValidateSpan(start, end, part, h.maxRangeDays); err != nil {
		h.logger.Warn("GET /availability/range - Range too long: %s..%s part=%s", start, end, part)
		handlers.RespondUnprocessable(w, msgRangeTooLong)
		return
	}

	ids, err := h.resolver.ResolveRange(r.Context(), pool, start, end, part)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /availability/range - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		case errors.Is(err, availability.ErrStoreUnavailable):
			h.logger.Error("GET /availability/range - Store unavailable: %s..%s part=%s, error=%v", start, end, part, err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("GET /availability/range - Failed to resolve: %s..%s part=%s, error=%v", start, end, part, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/range - Range resolved: %s..%s part=%s, assets=%d", start, end, part, len(ids))
	handlers.RespondJSON(w, http.StatusOK, NewRangeResponse(start, end, part, ids))
}
