package get_month_availability

import (
	"context"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

type AvailabilityService interface {
	AggregateMonth(ctx context.Context, scope domain.AssetScope, month types.YearMonth) ([]domain.DayAggregate, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
