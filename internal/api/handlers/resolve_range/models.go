package resolve_range

import (
	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// RangeResponse HTTP response model
type RangeResponse struct {
	Start    types.Date `json:"start"`
	End      types.Date `json:"end"`
	Part     string     `json:"part"`
	AssetIDs []int64    `json:"assetIds"`
}

func NewRangeResponse(start, end types.Date, part domain.DayPart, ids []int64) *RangeResponse {
	if ids == nil {
		ids = []int64{}
	}
	start, end = types.OrderDates(start, end)
	return &RangeResponse{Start: start, End: end, Part: string(part), AssetIDs: ids}
}
