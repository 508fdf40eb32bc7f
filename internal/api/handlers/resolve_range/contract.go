package resolve_range

import (
	"context"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

type RangeResolver interface {
	ResolveRange(ctx context.Context, pool domain.AssetPool, start, end types.Date, part domain.DayPart) ([]int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
