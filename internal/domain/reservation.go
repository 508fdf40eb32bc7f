package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
	// ReservationCanceled is the alternate spelling found in imported data.
	ReservationCanceled ReservationStatus = "canceled"
)

// IsCancelled returns true for both spellings of the cancelled status
func (s ReservationStatus) IsCancelled() bool {
	switch ReservationStatus(strings.ToLower(string(s))) {
	case ReservationCancelled, ReservationCanceled:
		return true
	}
	return false
}

// Reservation is a booking that occupies an asset for every date of
// [StartDate, EndDate] regardless of its part.
type Reservation struct {
	ID           int64
	AssetID      *int64 // nil = not yet assigned to an asset
	StartDate    types.Date
	EndDate      types.Date
	Part         DayPart
	Status       ReservationStatus
	CustomerName string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOccupying returns true if the reservation blocks its asset.
// Cancelled and unassigned reservations block nothing.
func (r *Reservation) IsOccupying() bool {
	return r.AssetID != nil && !r.Status.IsCancelled()
}

// Covers reports whether d falls inside the reservation's dates.
// Start and end are tolerated in either order.
func (r *Reservation) Covers(d types.Date) bool {
	from, to := types.OrderDates(r.StartDate, r.EndDate)
	return d.Between(from, to)
}

// CanBeCancelled returns true if the reservation is still active
func (r *Reservation) CanBeCancelled() bool {
	return !r.Status.IsCancelled()
}
