package selection

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/service/availability"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// State состояние интерактивного выбора диапазона
type State string

const (
	StateIdle       State = "idle"
	StateAnchorSet  State = "anchor_set"
	StateRangeFixed State = "range_fixed"
)

// endKey ключ запроса проверки даты окончания
type endKey struct {
	start types.Date
	end   types.Date
	part  domain.DayPart
}

// Snapshot копия состояния сессии для отдачи наружу
type Snapshot struct {
	ID         string
	State      State
	Part       domain.DayPart
	Anchor     *types.Date
	Start      *types.Date
	End        *types.Date
	AnchorPool []int64
	Assets     []int64
	// Candidate последняя проверенная дата окончания и её результат
	Candidate         *types.Date
	CandidateFeasible bool
}

// Session машина состояний выбора диапазона: Idle -> AnchorSet -> RangeFixed.
// Каждое действие увеличивает поколение; ответы движка, пришедшие для старого
// поколения или для устаревшего ключа даты окончания, отбрасываются
type Session struct {
	id           string
	resolver     Resolver
	basePool     domain.AssetPool
	maxRangeDays int
	metrics      Metrics
	logger       Logger

	mu          sync.Mutex
	state       State
	part        domain.DayPart
	anchor      types.Date
	start       types.Date
	end         types.Date
	anchorPool  []int64
	assets      []int64
	feasibility map[types.Date]bool
	candidate   *types.Date
	feasible    bool

	generation   uint64
	cancelAction context.CancelFunc
	pendingEnd   *endKey
	cancelEnd    context.CancelFunc
}

// NewSession создает сессию в состоянии Idle.
// basePool ограничивает суда, из которых выбирается пул на начальную дату
func NewSession(id string, resolver Resolver, basePool domain.AssetPool, maxRangeDays int, metrics Metrics, logger Logger) *Session {
	if maxRangeDays <= 0 {
		maxRangeDays = domain.DefaultMaxRangeDays
	}
	return &Session{
		id:           id,
		resolver:     resolver,
		basePool:     basePool,
		maxRangeDays: maxRangeDays,
		metrics:      metrics,
		logger:       logger,
		state:        StateIdle,
		feasibility:  make(map[types.Date]bool),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Click обрабатывает клик по дате календаря.
// Idle: FULL/SUNSET фиксируют начальную дату, AM/PM/HALF сразу фиксируют однодневный диапазон.
// AnchorSet: повторный клик по начальной дате фиксирует один день, другая дата проверяет
// весь диапазон по пулу начальной даты. RangeFixed: клик по началу диапазона сбрасывает
// выбор, любой другой начинает новый выбор.
// part учитывается только при выборе начальной даты
func (s *Session) Click(ctx context.Context, date types.Date, part domain.DayPart) (*Snapshot, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	s.mu.Lock()
	if s.state != StateAnchorSet && !part.IsValid() {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: unknown day part %q", ErrInvalidInput, part)
	}
	gen, actx := s.beginActionLocked(ctx)

	switch s.state {
	case StateAnchorSet:
		anchor, anchorPool, anchorPart := s.anchor, s.anchorPool, s.part
		if date == anchor {
			s.finishActionLocked()
			s.fixLocked(anchor, anchor, anchorPool)
			s.logger.Info("Click: session=%s single day %s fixed with %d assets", s.id, anchor, len(anchorPool))
			snap := s.snapshotLocked()
			s.mu.Unlock()
			return snap, nil
		}
		s.mu.Unlock()
		return s.extend(actx, gen, anchor, date, anchorPart, anchorPool)

	case StateRangeFixed:
		if date == s.start {
			s.finishActionLocked()
			s.resetLocked()
			s.logger.Info("Click: session=%s selection cleared", s.id)
			snap := s.snapshotLocked()
			s.mu.Unlock()
			return snap, nil
		}
		s.resetLocked()
	}
	s.mu.Unlock()

	return s.anchorAt(actx, gen, date, part)
}

// anchorAt выбирает начальную дату: разрешает пул судов на один день
func (s *Session) anchorAt(ctx context.Context, gen uint64, date types.Date, part domain.DayPart) (*Snapshot, error) {
	ids, err := s.resolver.ResolveRange(ctx, s.basePool, date, date, part)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.superseded("anchor", date)
		return nil, ErrSuperseded
	}
	s.finishActionLocked()
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		s.logger.Error("Click: session=%s anchor %s part=%s resolution failed: %v", s.id, date, part, err)
		return nil, fmt.Errorf("%w: %v", ErrNoAssetAvailable, err)
	}
	if len(ids) == 0 {
		s.logger.Info("Click: session=%s no assets on %s part=%s", s.id, date, part)
		return nil, ErrNoAssetAvailable
	}

	s.part = part
	if part.IsSingleDay() {
		s.fixLocked(date, date, ids)
		s.logger.Info("Click: session=%s single-day part %s fixed on %s with %d assets", s.id, part, date, len(ids))
		return s.snapshotLocked(), nil
	}

	s.state = StateAnchorSet
	s.anchor = date
	s.anchorPool = ids
	s.logger.Info("Click: session=%s anchor %s part=%s pool=%v", s.id, date, part, ids)
	return s.snapshotLocked(), nil
}

// extend проверяет диапазон между начальной датой и второй датой.
// Пустой результат отклоняет переход, диапазон никогда не обрезается
func (s *Session) extend(ctx context.Context, gen uint64, anchor, date types.Date, part domain.DayPart, pool []int64) (*Snapshot, error) {
	start, end := types.OrderDates(anchor, date)

	if err := availability.ValidateSpan(start, end, part, s.maxRangeDays); err != nil {
		s.logger.Warn("Click: session=%s range %s..%s rejected: %v", s.id, start, end, err)
		s.mu.Lock()
		if gen == s.generation {
			s.finishActionLocked()
		}
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrRangeTooLong, err)
	}

	ids, err := s.resolver.ResolveRange(ctx, domain.PoolOf(pool...), start, end, part)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.superseded("range", date)
		return nil, ErrSuperseded
	}
	s.finishActionLocked()
	if err != nil {
		s.logger.Error("Click: session=%s range %s..%s resolution failed: %v", s.id, start, end, err)
		return nil, fmt.Errorf("%w: %v", ErrNoAssetAvailable, err)
	}
	if len(ids) == 0 {
		s.logger.Info("Click: session=%s no asset available for %s..%s", s.id, start, end)
		return nil, ErrNoAssetAvailable
	}

	s.fixLocked(start, end, ids)
	s.logger.Info("Click: session=%s range %s..%s fixed with assets=%v", s.id, start, end, ids)
	return s.snapshotLocked(), nil
}

// CheckEndDate проверяет, можно ли завершить диапазон датой date.
// Результаты кэшируются по дате до смены начальной даты. Новый запрос для другой
// даты отменяет предыдущий; ответ на устаревший запрос отбрасывается с ErrSuperseded.
// Ошибка движка означает "недоступно" и не кэшируется
func (s *Session) CheckEndDate(ctx context.Context, date types.Date) (bool, error) {
	if date.IsZero() {
		return false, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	s.mu.Lock()
	if s.state != StateAnchorSet {
		s.mu.Unlock()
		return false, ErrNotAnchored
	}

	gen := s.generation
	anchor, part, pool := s.anchor, s.part, s.anchorPool
	start, end := types.OrderDates(anchor, date)
	key := endKey{start: start, end: end, part: part}

	if ok, cached := s.feasibility[date]; cached {
		s.applyCandidateLocked(date, ok)
		s.mu.Unlock()
		return ok, nil
	}

	if date == anchor {
		s.feasibility[date] = true
		s.applyCandidateLocked(date, true)
		s.mu.Unlock()
		return true, nil
	}

	if err := availability.ValidateSpan(start, end, part, s.maxRangeDays); err != nil {
		s.feasibility[date] = false
		s.applyCandidateLocked(date, false)
		s.mu.Unlock()
		return false, nil
	}

	if s.cancelEnd != nil && (s.pendingEnd == nil || *s.pendingEnd != key) {
		s.cancelEnd()
	}
	qctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.pendingEnd = &key
	s.cancelEnd = cancel
	s.mu.Unlock()

	ids, err := s.resolver.ResolveRange(qctx, domain.PoolOf(pool...), start, end, part)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.superseded("end date", date)
		return false, ErrSuperseded
	}
	if s.pendingEnd == nil || *s.pendingEnd != key {
		// Параллельный запрос с тем же ключом уже записал результат
		if ok, cached := s.feasibility[date]; cached && s.pendingEnd == nil {
			return ok, nil
		}
		s.superseded("end date", date)
		return false, ErrSuperseded
	}
	s.pendingEnd = nil
	s.cancelEnd = nil

	if err != nil {
		s.logger.Warn("CheckEndDate: session=%s %s..%s treated as unavailable: %v", s.id, start, end, err)
		s.applyCandidateLocked(date, false)
		return false, nil
	}

	ok := len(ids) > 0
	s.feasibility[date] = ok
	s.applyCandidateLocked(date, ok)
	return ok, nil
}

// Reset возвращает сессию в Idle из любого состояния и отменяет запросы в полёте
func (s *Session) Reset() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.cancelPendingLocked()
	s.resetLocked()
	return s.snapshotLocked()
}

// Snapshot возвращает текущее состояние сессии
func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close отменяет запросы в полёте
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.cancelPendingLocked()
}

func (s *Session) beginActionLocked(ctx context.Context) (uint64, context.Context) {
	s.generation++
	s.cancelPendingLocked()
	actx, cancel := context.WithCancel(ctx)
	s.cancelAction = cancel
	return s.generation, actx
}

func (s *Session) finishActionLocked() {
	if s.cancelAction != nil {
		s.cancelAction()
		s.cancelAction = nil
	}
}

func (s *Session) cancelPendingLocked() {
	if s.cancelAction != nil {
		s.cancelAction()
		s.cancelAction = nil
	}
	if s.cancelEnd != nil {
		s.cancelEnd()
		s.cancelEnd = nil
	}
	s.pendingEnd = nil
}

func (s *Session) fixLocked(start, end types.Date, assets []int64) {
	s.state = StateRangeFixed
	s.start = start
	s.end = end
	s.assets = assets
	s.anchor = types.Date{}
	s.anchorPool = nil
	s.feasibility = make(map[types.Date]bool)
	s.candidate = nil
	s.feasible = false
}

func (s *Session) resetLocked() {
	s.state = StateIdle
	s.part = ""
	s.anchor = types.Date{}
	s.start = types.Date{}
	s.end = types.Date{}
	s.anchorPool = nil
	s.assets = nil
	s.feasibility = make(map[types.Date]bool)
	s.candidate = nil
	s.feasible = false
}

func (s *Session) applyCandidateLocked(date types.Date, ok bool) {
	s.candidate = &date
	s.feasible = ok
}

func (s *Session) superseded(what string, date types.Date) {
	s.logger.Info("session=%s stale %s response for %s discarded", s.id, what, date)
	if s.metrics != nil {
		s.metrics.IncSelectionSuperseded()
	}
}

func (s *Session) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		ID:                s.id,
		State:             s.state,
		Part:              s.part,
		AnchorPool:        append([]int64(nil), s.anchorPool...),
		Assets:            append([]int64(nil), s.assets...),
		CandidateFeasible: s.feasible,
	}
	if !s.anchor.IsZero() {
		anchor := s.anchor
		snap.Anchor = &anchor
	}
	if s.state == StateRangeFixed {
		start, end := s.start, s.end
		snap.Start = &start
		snap.End = &end
	}
	if s.candidate != nil {
		candidate := *s.candidate
		snap.Candidate = &candidate
	}
	return snap
}
