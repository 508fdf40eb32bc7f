package list_asset_reservations

import (
	"context"

	"github.com/m04kA/SMC-CharterService/internal/service/reservations/models"
)

type ReservationService interface {
	ListByAsset(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
