package check_asset_range

import "github.com/m04kA/SMC-CharterService/pkg/types"

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	AssetID   int64      `json:"assetId"`
	Start     types.Date `json:"start"`
	End       types.Date `json:"end"`
	Part      string     `json:"part"`
	Available bool       `json:"available"`
}
