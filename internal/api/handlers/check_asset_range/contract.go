package check_asset_range

import (
	"context"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

type AssetRangeChecker interface {
	CheckAssetRange(ctx context.Context, assetID int64, start, end types.Date, part domain.DayPart) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
