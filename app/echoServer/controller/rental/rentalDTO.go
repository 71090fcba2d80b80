package rental

import (
	"time"

	"gamerental/model"
)

type CreateRentalReq struct {
	GameID int64 `json:"game_id" validate:"required,gt=0"`
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

type UpdateRentalReq struct {
	GameID *int64 `json:"game_id" validate:"omitempty,gt=0"`
	UserID *int64 `json:"user_id" validate:"omitempty,gt=0"`
}

// RentalResp carries dates as plain yyyy-mm-dd strings.
type RentalResp struct {
	ID         int64              `json:"id"`
	GameID     int64              `json:"game_id"`
	UserID     int64              `json:"user_id"`
	RentalDate string             `json:"rental_date"`
	EndDate    string             `json:"end_date"`
	Status     model.RentalStatus `json:"status"`
}

func toResp(r *model.Rental) RentalResp {
	return RentalResp{
		ID:         r.ID,
		GameID:     r.GameID,
		UserID:     r.UserID,
		RentalDate: r.RentalDate.Format(time.DateOnly),
		EndDate:    r.EndDate.Format(time.DateOnly),
		Status:     r.Status,
	}
}

func toRespList(rs []model.Rental) []RentalResp {
	out := make([]RentalResp, len(rs))
	for i := range rs {
		out[i] = toResp(&rs[i])
	}
	return out
}
