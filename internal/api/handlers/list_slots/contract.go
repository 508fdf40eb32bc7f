package list_slots

import (
	"context"

	"github.com/m04kA/SMC-CharterService/internal/service/slots/models"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

type SlotService interface {
	ListSlots(ctx context.Context, assetID int64, from, to types.Date) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
