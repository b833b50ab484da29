package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rfogaca/vigia/pkg/core/schedule"
	"github.com/rfogaca/vigia/pkg/core/services"
	"github.com/rfogaca/vigia/pkg/db"
)

// Handler holds the dependencies shared by all HTTP handlers.
// DefaultShiftStart and DefaultShiftEnd, when set, fill in direct placement
// requests that carry no times of their own.
type Handler struct {
	Database          db.Database
	Logger            *zap.Logger
	DefaultShiftStart string
	DefaultShiftEnd   string
}

// NewHandler creates a handler backed by the given store
func NewHandler(database db.Database, logger *zap.Logger) *Handler {
	return &Handler{Database: database, Logger: logger}
}

// GenerateShifts handles POST /api/shifts/generate
func (h *Handler) GenerateShifts(w http.ResponseWriter, r *http.Request) {
	var input services.GenerateShiftsInput
	if !decodeBody(w, r, &input) {
		return
	}
	writeResult(w, services.GenerateShifts(r.Context(), h.Database, h.Logger, input))
}

// AutoFill handles POST /api/shifts/autofill
func (h *Handler) AutoFill(w http.ResponseWriter, r *http.Request) {
	var input services.AutoFillInput
	if !decodeBody(w, r, &input) {
		return
	}
	writeResult(w, services.AutoFillSchedule(r.Context(), h.Database, h.Logger, input))
}

// Allocate handles POST /api/shifts/{id}/allocate
func (h *Handler) Allocate(w http.ResponseWriter, r *http.Request) {
	var input services.AllocateInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.ShiftID = chi.URLParam(r, "id")
	writeResult(w, services.AllocateGuard(r.Context(), h.Database, h.Logger, input))
}

// Deallocate handles POST /api/shifts/{id}/deallocate
func (h *Handler) Deallocate(w http.ResponseWriter, r *http.Request) {
	input := services.DeallocateInput{ShiftID: chi.URLParam(r, "id")}
	writeResult(w, services.DeallocateGuard(r.Context(), h.Database, h.Logger, input))
}

// PlaceShift handles POST /api/shifts/place
func (h *Handler) PlaceShift(w http.ResponseWriter, r *http.Request) {
	var input services.PlaceShiftInput
	if !decodeBody(w, r, &input) {
		return
	}
	if input.StartTime == "" {
		input.StartTime = h.DefaultShiftStart
	}
	if input.EndTime == "" {
		input.EndTime = h.DefaultShiftEnd
	}
	writeResult(w, services.PlaceShift(r.Context(), h.Database, h.Logger, input))
}

// ListShifts handles GET /api/shifts?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	shifts, err := services.ListShiftsInRange(r.Context(), h.Database, h.Logger, from, to)
	if err != nil {
		writeReadError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTOs(shifts))
}

// GuardShifts handles GET /api/guards/{id}/shifts
func (h *Handler) GuardShifts(w http.ResponseWriter, r *http.Request) {
	guardID := chi.URLParam(r, "id")

	shifts, err := services.GuardSchedule(r.Context(), h.Database, h.Logger, guardID)
	if err != nil {
		writeReadError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toShiftDTOs(shifts))
}

// RequestSwap handles POST /api/swaps
func (h *Handler) RequestSwap(w http.ResponseWriter, r *http.Request) {
	var input services.SwapRequestInput
	if !decodeBody(w, r, &input) {
		return
	}
	writeResult(w, services.RequestSwap(r.Context(), h.Database, h.Logger, input))
}

// RespondSwap handles POST /api/swaps/{id}/respond
func (h *Handler) RespondSwap(w http.ResponseWriter, r *http.Request) {
	var input services.SwapResponseInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.RequestID = chi.URLParam(r, "id")
	writeResult(w, services.RespondSwap(r.Context(), h.Database, h.Logger, input))
}

// ListSwaps handles GET /api/swaps
func (h *Handler) ListSwaps(w http.ResponseWriter, r *http.Request) {
	requests, err := services.ListSwapRequests(r.Context(), h.Database, h.Logger)
	if err != nil {
		writeReadError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toSwapRequestDTOs(requests))
}

// Summary handles GET /api/summary?day=YYYY-MM-DD and, when from/to are
// given instead, the per-guard workload variant.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if from := q.Get("from"); from != "" {
		workloads, err := services.WorkloadSummary(r.Context(), h.Database, h.Logger, from, q.Get("to"))
		if err != nil {
			writeReadError(w, h.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, workloads)
		return
	}

	summary, err := services.ScheduleSummary(r.Context(), h.Database, h.Logger, q.Get("day"))
	if err != nil {
		writeReadError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// RecordTimeBank handles POST /api/timebank
func (h *Handler) RecordTimeBank(w http.ResponseWriter, r *http.Request) {
	var input services.TimeBankInput
	if !decodeBody(w, r, &input) {
		return
	}
	writeResult(w, services.RecordTimeBankEntry(r.Context(), h.Database, h.Logger, input))
}

// TimeBankBalance handles GET /api/timebank/{guardId}
func (h *Handler) TimeBankBalance(w http.ResponseWriter, r *http.Request) {
	guardID := chi.URLParam(r, "guardId")

	balance, err := services.GetTimeBankBalance(r.Context(), h.Database, h.Logger, guardID)
	if err != nil {
		writeReadError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: services.MsgInvalidInput})
		return false
	}
	return true
}

// writeResult maps an operation result onto an HTTP status. The body is the
// result itself; the status is advisory for HTTP clients.
func writeResult(w http.ResponseWriter, result services.Result) {
	status := http.StatusOK
	if !result.Success {
		switch result.Message {
		case services.MsgInternalError:
			status = http.StatusInternalServerError
		case services.MsgTemplateNotFound, services.MsgShiftNotFound,
			services.MsgGuardNotFound, services.MsgSwapNotFound:
			status = http.StatusNotFound
		case services.MsgGuardBusy, services.MsgSwapResolved:
			status = http.StatusConflict
		default:
			status = http.StatusBadRequest
		}
	}
	writeJSON(w, status, result)
}

// writeReadError maps a read-path error onto an HTTP status. Range and date
// parse problems are the caller's fault, anything else is ours.
func writeReadError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if errors.Is(err, schedule.ErrInvalidRange) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: services.MsgStartAfterEnd})
		return
	}
	var parseErr *time.ParseError
	if errors.As(err, &parseErr) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: services.MsgInvalidInput})
		return
	}
	logger.Error("Request failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: services.MsgInternalError})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
