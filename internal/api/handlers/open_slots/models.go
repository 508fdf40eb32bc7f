package open_slots

import (
	"github.com/m04kA/SMC-CharterService/internal/service/slots/models"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// OpenSlotsRequest HTTP request model
type OpenSlotsRequest struct {
	From   string   `json:"from"` // "2025-06-01"
	To     string   `json:"to"`   // "2025-06-30"
	Parts  []string `json:"parts"`
	Status string   `json:"status,omitempty"`
	Note   *string  `json:"note,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *OpenSlotsRequest) ToServiceRequest(userID, assetID int64) (*models.OpenSlotsRequest, error) {
	from, err := types.ParseDate(r.From)
	if err != nil {
		return nil, err
	}
	to, err := types.ParseDate(r.To)
	if err != nil {
		return nil, err
	}
	return &models.OpenSlotsRequest{
		UserID:  userID,
		AssetID: assetID,
		From:    from,
		To:      to,
		Parts:   r.Parts,
		Status:  r.Status,
		Note:    r.Note,
	}, nil
}
