package open_slots

import (
	"context"

	"github.com/m04kA/SMC-CharterService/internal/service/slots/models"
)

type SlotService interface {
	OpenSlots(ctx context.Context, req *models.OpenSlotsRequest) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
