package availability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

const tracerName = "github.com/m04kA/SMC-CharterService/internal/service/availability"

// Config параметры движка доступности
type Config struct {
	// SynthesizeFullFromHalves разрешает считать день FULL, если открыты и AM, и PM
	SynthesizeFullFromHalves bool
	// MaxAggregateDays ограничивает длину окна агрегации
	MaxAggregateDays int
}

// Service движок доступности: агрегация по дням и разрешение диапазонов.
// Не хранит состояния между вызовами
type Service struct {
	slots        SlotStore
	reservations ReservationStore
	catalog      CatalogClient
	cache        AggregateCache
	metrics      Metrics
	logger       Logger
	cfg          Config
	tracer       trace.Tracer
}

// NewService создает новый экземпляр движка доступности.
// cache и metrics опциональны (nil)
func NewService(
	slots SlotStore,
	reservations ReservationStore,
	catalog CatalogClient,
	cache AggregateCache,
	metrics Metrics,
	logger Logger,
	cfg Config,
) *Service {
	if cfg.MaxAggregateDays <= 0 {
		cfg.MaxAggregateDays = domain.DefaultMaxAggregateDays
	}
	return &Service{
		slots:        slots,
		reservations: reservations,
		catalog:      catalog,
		cache:        cache,
		metrics:      metrics,
		logger:       logger,
		cfg:          cfg,
		tracer:       otel.Tracer(tracerName),
	}
}

// snapshot один проход по хранилищам: ровно один запрос слотов и один запрос бронирований
type snapshot struct {
	slots        []domain.Slot
	reservations []domain.Reservation
}

func (s *Service) fetch(ctx context.Context, assetIDs []int64, from, to types.Date) (*snapshot, error) {
	snap := &snapshot{}

	// Внутри транзакции соединение одно, запросы выполняем последовательно
	if dbmetrics.IsInTransaction(ctx) {
		slots, err := s.slots.ListSlots(ctx, assetIDs, from, to)
		if err != nil {
			return nil, fmt.Errorf("%w: list slots: %v", ErrStoreUnavailable, err)
		}
		reservations, err := s.reservations.ListReservations(ctx, assetIDs, from, to)
		if err != nil {
			return nil, fmt.Errorf("%w: list reservations: %v", ErrStoreUnavailable, err)
		}
		snap.slots, snap.reservations = slots, reservations
		return snap, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slots, err := s.slots.ListSlots(gctx, assetIDs, from, to)
		if err != nil {
			return fmt.Errorf("%w: list slots: %v", ErrStoreUnavailable, err)
		}
		snap.slots = slots
		return nil
	})
	g.Go(func() error {
		reservations, err := s.reservations.ListReservations(gctx, assetIDs, from, to)
		if err != nil {
			return fmt.Errorf("%w: list reservations: %v", ErrStoreUnavailable, err)
		}
		snap.reservations = reservations
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Service) observe(operation string, part domain.DayPart, outcome string, started time.Time) {
	if s.metrics == nil {
		return
	}
	label := string(part)
	if label == "" {
		label = "all"
	}
	s.metrics.ObserveResolution(operation, label, outcome, time.Since(started))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
