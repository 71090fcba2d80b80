// model/rental.go
package model

import "time"

type RentalStatus string

const (
	RentalActive    RentalStatus = "ACTIVE"
	RentalReturned  RentalStatus = "RETURNED"
	RentalLate      RentalStatus = "LATE"
	RentalCancelled RentalStatus = "CANCELLED"
)

func ParseRentalStatus(s string) (RentalStatus, bool) {
	switch RentalStatus(s) {
	case RentalActive, RentalReturned, RentalLate, RentalCancelled:
		return RentalStatus(s), true
	}
	return "", false
}

// Closed reports whether the rental reached a terminal state.
// LATE is not terminal: the copy is still out, so it can be
// returned or cancelled.
func (s RentalStatus) Closed() bool {
	return s == RentalReturned || s == RentalCancelled
}

const (
	// RentalTermDays is the standard rental period.
	RentalTermDays = 15
	// RenewalDays is added to the end date on each renewal.
	RenewalDays = 7
)

type Rental struct {
	ID         int64        `json:"id"`
	GameID     int64        `json:"game_id"`
	UserID     int64        `json:"user_id"`
	RentalDate time.Time    `json:"rental_date"`
	EndDate    time.Time    `json:"end_date"`
	Status     RentalStatus `json:"status"`
}
