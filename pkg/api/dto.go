package api

import (
	"time"

	"github.com/rfogaca/vigia/pkg/db"
)

// ShiftDTO is the wire form of a shift.
type ShiftDTO struct {
	ID      string    `json:"id"`
	PostID  string    `json:"postId"`
	GuardID string    `json:"guardId,omitempty"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Status  string    `json:"status"`
}

// SwapRequestDTO is the wire form of a swap request, display fields included.
type SwapRequestDTO struct {
	ID            string    `json:"id"`
	ShiftAID      string    `json:"shiftAId"`
	GuardAID      string    `json:"guardAId"`
	ShiftBID      string    `json:"shiftBId"`
	GuardBID      string    `json:"guardBId"`
	RequesterName string    `json:"requesterName"`
	RequestedName string    `json:"requestedName"`
	PostName      string    `json:"postName"`
	ShiftStart    time.Time `json:"shiftStart"`
	Status        string    `json:"status"`
	RequestedAt   time.Time `json:"requestedAt"`
}

// ErrorResponse is the body of a failed read request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func toShiftDTO(s db.Shift) ShiftDTO {
	return ShiftDTO{
		ID:      s.ID,
		PostID:  s.PostID,
		GuardID: s.GuardID,
		StartAt: s.StartAt,
		EndAt:   s.EndAt,
		Status:  s.Status,
	}
}

func toShiftDTOs(shifts []db.Shift) []ShiftDTO {
	dtos := make([]ShiftDTO, len(shifts))
	for i, s := range shifts {
		dtos[i] = toShiftDTO(s)
	}
	return dtos
}

func toSwapRequestDTOs(requests []db.SwapRequest) []SwapRequestDTO {
	dtos := make([]SwapRequestDTO, len(requests))
	for i, r := range requests {
		dtos[i] = SwapRequestDTO{
			ID:            r.ID,
			ShiftAID:      r.ShiftAID,
			GuardAID:      r.GuardAID,
			ShiftBID:      r.ShiftBID,
			GuardBID:      r.GuardBID,
			RequesterName: r.RequesterName,
			RequestedName: r.RequestedName,
			PostName:      r.PostName,
			ShiftStart:    r.ShiftStart,
			Status:        r.Status,
			RequestedAt:   r.RequestedAt,
		}
	}
	return dtos
}
