package reservations

import (
	"context"
	"errors"
	"fmt"

	reservationRepo "github.com/m04kA/SMC-CharterService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-CharterService/internal/service/reservations/models"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	cache           CacheInvalidator
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований. cache опционален (nil)
func NewService(
	reservationRepo ReservationRepository,
	cache CacheInvalidator,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		cache:           cache,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(res), nil
}

// ListByAsset возвращает бронирования судна, пересекающиеся с окном [from, to].
// По умолчанию отменённые бронирования отфильтровываются
func (s *Service) ListByAsset(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByAsset: asset=%d %s..%s includeInactive=%t", req.AssetID, req.From, req.To, req.IncludeInactive)

	if req.AssetID <= 0 || req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: asset id, from and to are required", ErrInvalidInput)
	}
	from, to := types.OrderDates(req.From, req.To)

	list, err := s.reservationRepo.ListReservations(ctx, []int64{req.AssetID}, from, to)
	if err != nil {
		s.logger.Error("ListByAsset: repository error for asset=%d: %v", req.AssetID, err)
		return nil, fmt.Errorf("%w: ListByAsset - repository error: %v", ErrInternal, err)
	}

	if !req.IncludeInactive {
		active := list[:0]
		for _, r := range list {
			if !r.Status.IsCancelled() {
				active = append(active, r)
			}
		}
		list = active
	}

	return models.FromDomainReservationList(list), nil
}

// Cancel отменяет бронирование. Отменённое бронирование перестаёт занимать судно,
// поэтому кэш агрегатов сбрасывается
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, req.UserID)

	// Получаем бронирование
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронирование
	if !res.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", id, res.Status)
		return ErrCannotCancel
	}

	if err := s.reservationRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found during cancellation", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("Cancel: failed to invalidate aggregate cache: %v", err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", id)
	return nil
}
