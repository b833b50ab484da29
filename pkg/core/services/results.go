package services

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rfogaca/vigia/pkg/core/schedule"
	"github.com/rfogaca/vigia/pkg/db"
)

// Result is the discriminated outcome every mutating operation returns to its
// caller. Operations never surface raw errors: store failures are logged and
// collapsed into a generic failure message, validation and conflict problems
// carry a user-facing message of their own.
type Result struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ConflictCount int    `json:"conflictCount,omitempty"`
	ShiftID       string `json:"shiftId,omitempty"`
	SwapRequestID string `json:"swapRequestId,omitempty"`
}

// User-facing operation messages.
const (
	MsgInvalidInput     = "Invalid input data."
	MsgStartAfterEnd    = "The start date may not be after the end date."
	MsgTemplateNotFound = "Template not found."
	MsgShiftNotFound    = "Shift not found."
	MsgGuardNotFound    = "Guard not found."
	MsgGuardBusy        = "This guard is already scheduled on that day."
	MsgInternalError    = "An internal server error occurred."
	MsgShiftsGenerated  = "Shifts generated successfully!"
	MsgScheduleFilled   = "Schedule filled successfully!"
	MsgGuardAllocated   = "Guard allocated successfully!"
	MsgGuardDeallocated = "Guard deallocated successfully!"
	MsgShiftPlaced      = "Shift created and allocated successfully."
	MsgSwapRequested    = "Swap request submitted successfully!"
	MsgSwapInvalid      = "Invalid swap request data."
	MsgSwapNotFound     = "Swap request not found."
	MsgSwapResolved     = "This swap request has already been resolved."
)

// Default wall-clock times for shifts placed directly on the grid, where no
// template is selected.
const (
	DefaultShiftStart = "07:00"
	DefaultShiftEnd   = "19:00"
)

const dayFormat = "2006-01-02"

var validate = validator.New()

func failure(message string) Result {
	return Result{Success: false, Message: message}
}

func success(message string) Result {
	return Result{Success: true, Message: message}
}

// parseDay parses an ISO date (no time component) as midnight UTC.
func parseDay(s string) (time.Time, error) {
	day, err := time.Parse(dayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return day, nil
}

// templatePattern builds the expander template from a stored template record,
// dispatching on the record's kind tag.
func templatePattern(record *db.ShiftTemplate) (*schedule.Template, error) {
	switch record.Kind {
	case string(schedule.KindCycle):
		return schedule.NewCycleTemplate(record.StartTime, record.EndTime, record.WorkDays, record.RestDays)
	case string(schedule.KindFixed):
		return schedule.NewFixedTemplate(record.StartTime, record.EndTime, record.Weekdays)
	default:
		return nil, fmt.Errorf("unknown template kind %q", record.Kind)
	}
}
