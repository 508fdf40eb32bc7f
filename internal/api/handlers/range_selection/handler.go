package range_selection

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/selection"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPart        = "некорректная часть дня, ожидается full, am, pm, sunset или half"
	msgInvalidInput       = "некорректные параметры выбора"
	msgSessionNotFound    = "сессия выбора не найдена или истекла"
	msgNoAssetAvailable   = "на выбранные даты нет свободных судов"
	msgRangeTooLong       = "выбранный диапазон слишком длинный"
	msgSuperseded         = "запрос устарел: выбор уже изменился"
	msgNotAnchored        = "сначала выберите дату начала"
)

// Handler HTTP обертка над сессиями выбора диапазона
type Handler struct {
	store  SessionStore
	logger Logger
}

func NewHandler(store SessionStore, logger Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// Create POST /api/v1/selections
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /selections - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	pool := domain.AllAssets()
	if req.AssetIDs != nil {
		pool = domain.PoolOf(*req.AssetIDs...)
	}

	session := h.store.Create(pool)
	h.logger.Info("POST /selections - Session created: session_id=%s", session.ID())
	handlers.RespondJSON(w, http.StatusCreated, FromSnapshot(session.Snapshot()))
}

// Get GET /api/v1/selections/{sessionId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r, "GET /selections/{id}")
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(session.Snapshot()))
}

// Click POST /api/v1/selections/{sessionId}/clicks
func (h *Handler) Click(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r, "POST /selections/{id}/clicks")
	if !ok {
		return
	}

	var req ClickRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /selections/{id}/clicks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	date, err := types.ParseDate(req.Date)
	if err != nil {
		h.logger.Warn("POST /selections/{id}/clicks - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var part domain.DayPart
	if req.Part != "" {
		if part, err = domain.ParseDayPart(req.Part); err != nil {
			h.logger.Warn("POST /selections/{id}/clicks - Invalid part: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPart)
			return
		}
	}

	snap, err := session.Click(r.Context(), date, part)
	if err != nil {
		h.respondSelectionError(w, "POST /selections/{id}/clicks", session.ID(), err)
		return
	}

	h.logger.Info("POST /selections/{id}/clicks - Click applied: session_id=%s, date=%s, state=%s",
		session.ID(), date, snap.State)
	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(snap))
}

// CheckEndDate GET /api/v1/selections/{sessionId}/end-dates/{date}
func (h *Handler) CheckEndDate(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r, "GET /selections/{id}/end-dates/{date}")
	if !ok {
		return
	}

	date, err := types.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("GET /selections/{id}/end-dates/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	feasible, err := session.CheckEndDate(r.Context(), date)
	if err != nil {
		h.respondSelectionError(w, "GET /selections/{id}/end-dates/{date}", session.ID(), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &EndDateResponse{Date: date, Feasible: feasible})
}

// Reset POST /api/v1/selections/{sessionId}/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r, "POST /selections/{id}/reset")
	if !ok {
		return
	}
	snap := session.Reset()
	h.logger.Info("POST /selections/{id}/reset - Session reset: session_id=%s", session.ID())
	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(snap))
}

// Delete DELETE /api/v1/selections/{sessionId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]
	h.store.Delete(id)
	h.logger.Info("DELETE /selections/{id} - Session closed: session_id=%s", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request, route string) (*selection.Session, bool) {
	id := mux.Vars(r)["sessionId"]
	session, err := h.store.Get(id)
	if err != nil {
		h.logger.Warn("%s - Session not found: session_id=%s", route, id)
		handlers.RespondNotFound(w, msgSessionNotFound)
		return nil, false
	}
	return session, true
}

func (h *Handler) respondSelectionError(w http.ResponseWriter, route, sessionID string, err error) {
	switch {
	case errors.Is(err, selection.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: session_id=%s, error=%v", route, sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, selection.ErrNoAssetAvailable):
		h.logger.Info("%s - No asset available: session_id=%s", route, sessionID)
		handlers.RespondConflict(w, msgNoAssetAvailable)

	case errors.Is(err, selection.ErrRangeTooLong):
		h.logger.Info("%s - Range too long: session_id=%s", route, sessionID)
		handlers.RespondUnprocessable(w, msgRangeTooLong)

	case errors.Is(err, selection.ErrNotAnchored):
		h.logger.Warn("%s - Not anchored: session_id=%s", route, sessionID)
		handlers.RespondConflict(w, msgNotAnchored)

	case errors.Is(err, selection.ErrSuperseded):
		h.logger.Info("%s - Superseded: session_id=%s", route, sessionID)
		handlers.RespondConflict(w, msgSuperseded)

	default:
		h.logger.Error("%s - Selection failed: session_id=%s, error=%v", route, sessionID, err)
		handlers.RespondInternalError(w)
	}
}
