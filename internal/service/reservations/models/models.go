package models

import (
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	UserID             int64  `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// ListReservationsRequest запрос на список бронирований судна в окне дат
type ListReservationsRequest struct {
	AssetID         int64
	From            types.Date
	To              types.Date
	IncludeInactive bool // включить отменённые
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID           int64      `json:"id"`
	AssetID      *int64     `json:"assetId"`
	StartDate    types.Date `json:"startDate"`
	EndDate      types.Date `json:"endDate"`
	Part         string     `json:"part"`
	DepartsAt    string     `json:"departsAt"` // HH:MM
	ReturnsAt    string     `json:"returnsAt"` // HH:MM
	Status       string     `json:"status"`
	CustomerName string     `json:"customerName"`
	Notes        *string    `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                 r.ID,
		AssetID:            r.AssetID,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		Part:               string(r.Part),
		Status:             string(r.Status),
		CustomerName:       r.CustomerName,
		Notes:              r.Notes,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	departs, returns := r.Part.Window()
	resp.DepartsAt, resp.ReturnsAt = departs.String(), returns.String()

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(list []domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
	}
	for i := range list {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(&list[i]))
	}
	return resp
}
