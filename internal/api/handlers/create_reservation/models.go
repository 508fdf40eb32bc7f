package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	createReservation "github.com/m04kA/SMC-CharterService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	AssetID      int64   `json:"assetId"`
	StartDate    string  `json:"startDate"` // "2025-06-01"
	EndDate      string  `json:"endDate"`   // "2025-06-03"
	Part         string  `json:"part"`      // full | am | pm | sunset | half
	CustomerName string  `json:"customerName"`
	Notes        *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID           int64   `json:"id"`
	AssetID      int64   `json:"assetId"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Part         string  `json:"part"`
	DepartsAt    string  `json:"departsAt"` // HH:MM
	ReturnsAt    string  `json:"returnsAt"` // HH:MM
	Status       string  `json:"status"`
	CustomerName string  `json:"customerName"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом дат)
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	start, err := types.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}

	// Без endDate бронируется один день
	end := start
	if r.EndDate != "" {
		end, err = types.ParseDate(r.EndDate)
		if err != nil {
			return nil, err
		}
	}

	part, err := domain.ParseDayPart(r.Part)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:       userID,
		AssetID:      r.AssetID,
		StartDate:    start,
		EndDate:      end,
		Part:         part,
		CustomerName: r.CustomerName,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	departs, returns := resp.Part.Window()
	return &ReservationResponse{
		ID:           resp.ID,
		AssetID:      resp.AssetID,
		StartDate:    resp.StartDate.String(),
		EndDate:      resp.EndDate.String(),
		Part:         string(resp.Part),
		DepartsAt:    departs.String(),
		ReturnsAt:    returns.String(),
		Status:       resp.Status,
		CustomerName: resp.CustomerName,
		Notes:        resp.Notes,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    resp.UpdatedAt.Format(time.RFC3339),
	}
}
