package domain

import (
	"time"

	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// SlotStatus is the operator-set state of a slot.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBlocked   SlotStatus = "blocked"
)

func (s SlotStatus) IsValid() bool {
	return s == SlotAvailable || s == SlotBlocked
}

// Slot is availability explicitly opened (or blocked) by an operator for
// one asset, date and part. Its absence carries no meaning.
type Slot struct {
	ID        int64
	AssetID   int64
	Date      types.Date
	Part      DayPart
	Status    SlotStatus
	Note      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAvailable returns true if the slot is a positive availability signal
func (s *Slot) IsAvailable() bool {
	return s.Status == SlotAvailable
}
