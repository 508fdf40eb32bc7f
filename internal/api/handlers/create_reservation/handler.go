package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/api/middleware"
	"github.com/m04kA/SMC-CharterService/internal/domain"
	createReservation "github.com/m04kA/SMC-CharterService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPart        = "некорректная часть дня, ожидается full, am, pm, sunset или half"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgAssetNotFound      = "судно не найдено"
	msgAssetInactive      = "судно недоступно для бронирования"
	msgAssetUnavailable   = "судно занято на выбранные даты"
	msgRangeTooLong       = "выбранный диапазон слишком длинный"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		if errors.Is(err, domain.ErrUnknownDayPart) {
			handlers.RespondBadRequest(w, msgInvalidPart)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrAssetUnavailable):
			h.logger.Warn("POST /reservations - Asset unavailable: asset_id=%d, %s..%s", req.AssetID, req.StartDate, req.EndDate)
			handlers.RespondConflict(w, msgAssetUnavailable)

		case errors.Is(err, createReservation.ErrAssetNotFound):
			h.logger.Warn("POST /reservations - Asset not found: asset_id=%d", req.AssetID)
			handlers.RespondNotFound(w, msgAssetNotFound)

		case errors.Is(err, createReservation.ErrAssetInactive):
			h.logger.Warn("POST /reservations - Asset inactive: asset_id=%d", req.AssetID)
			handlers.RespondUnprocessable(w, msgAssetInactive)

		case errors.Is(err, createReservation.ErrRangeTooLong):
			h.logger.Warn("POST /reservations - Range too long: asset_id=%d, %s..%s", req.AssetID, req.StartDate, req.EndDate)
			handlers.RespondUnprocessable(w, msgRangeTooLong)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, asset_id=%d, error=%v",
				userID, req.AssetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, asset_id=%d, user_id=%d",
		result.ID, result.AssetID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
