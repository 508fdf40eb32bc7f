package models

import (
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// Request модели

// OpenSlotsRequest запрос на открытие (или блокировку) слотов судна на диапазон дат.
// На каждую дату и каждую часть дня создаётся или обновляется один слот
type OpenSlotsRequest struct {
	UserID  int64      `json:"-"`
	AssetID int64      `json:"-"`
	From    types.Date `json:"from"`
	To      types.Date `json:"to"`
	Parts   []string   `json:"parts"`
	Status  string     `json:"status"` // available | blocked, по умолчанию available
	Note    *string    `json:"note,omitempty"`
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID        int64      `json:"id"`
	AssetID   int64      `json:"assetId"`
	Date      types.Date `json:"date"`
	Part      string     `json:"part"`
	Status    string     `json:"status"`
	Note      *string    `json:"note,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) SlotResponse {
	return SlotResponse{
		ID:        s.ID,
		AssetID:   s.AssetID,
		Date:      s.Date,
		Part:      string(s.Part),
		Status:    string(s.Status),
		Note:      s.Note,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{Slots: make([]SlotResponse, 0, len(slots))}
	for i := range slots {
		resp.Slots = append(resp.Slots, FromDomainSlot(&slots[i]))
	}
	return resp
}
