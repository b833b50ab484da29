package db

import (
	"context"
	"time"
)

// ShiftStore defines shift read and write operations.
//
// InsertShifts is an atomic batch: either every shift in the slice is
// persisted or none are. GetShiftsByGuardAndDay matches on the shift *start*
// falling within the given calendar day, which is the conflict-detection
// query; an overnight shift only occupies the day it starts on.
type ShiftStore interface {
	GetShift(ctx context.Context, id string) (*Shift, error)
	GetShiftsInRange(ctx context.Context, start, end time.Time) ([]Shift, error)
	GetShiftsByGuard(ctx context.Context, guardID string) ([]Shift, error)
	GetShiftsByGuardAndDay(ctx context.Context, guardID string, day time.Time) ([]Shift, error)
	InsertShift(ctx context.Context, shift Shift) error
	InsertShifts(ctx context.Context, shifts []Shift) error
	UpdateShiftGuard(ctx context.Context, shiftID, guardID, status string) error
}

// ReferenceStore resolves reference data owned by the admin CRUD modules.
// A missing record is reported as ErrNotFound.
type ReferenceStore interface {
	GetTemplate(ctx context.Context, id string) (*ShiftTemplate, error)
	GetGuard(ctx context.Context, id string) (*Guard, error)
	GetPost(ctx context.Context, id string) (*Post, error)
}

// SwapStore defines swap request operations.
//
// ExchangeGuards performs the approval inside a single transaction: re-read
// both shifts, swap their guard assignments, and mark the request approved.
// All three writes succeed or none do. RejectSwap only flips the request
// status. Both fail with ErrSwapResolved if the request is no longer pending.
type SwapStore interface {
	InsertSwapRequest(ctx context.Context, request SwapRequest) error
	GetSwapRequest(ctx context.Context, id string) (*SwapRequest, error)
	ListSwapRequests(ctx context.Context) ([]SwapRequest, error)
	ExchangeGuards(ctx context.Context, requestID string) error
	RejectSwap(ctx context.Context, requestID string) error
}

// TimeBankStore defines time-bank ledger operations. Entries are append-only;
// corrections are made with a compensating entry.
type TimeBankStore interface {
	InsertTimeBankEntry(ctx context.Context, entry TimeBankEntry) error
	GetTimeBankEntries(ctx context.Context, guardID string) ([]TimeBankEntry, error)
}

// Database is the full store contract. Both the Postgres implementation and
// the in-memory implementation satisfy it.
type Database interface {
	ShiftStore
	ReferenceStore
	SwapStore
	TimeBankStore
}
