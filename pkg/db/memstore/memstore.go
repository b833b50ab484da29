// Package memstore provides an in-memory db.Database implementation for
// tests and development. A single mutex guards all state, so batch inserts
// and the swap exchange are atomic with respect to concurrent readers.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rfogaca/vigia/pkg/core/schedule"
	"github.com/rfogaca/vigia/pkg/db"
)

type Memory struct {
	mu        sync.RWMutex
	shifts    map[string]db.Shift
	templates map[string]db.ShiftTemplate
	guards    map[string]db.Guard
	posts     map[string]db.Post
	swaps     map[string]db.SwapRequest
	timebank  []db.TimeBankEntry
}

func New() *Memory {
	return &Memory{
		shifts:    make(map[string]db.Shift),
		templates: make(map[string]db.ShiftTemplate),
		guards:    make(map[string]db.Guard),
		posts:     make(map[string]db.Post),
		swaps:     make(map[string]db.SwapRequest),
	}
}

// SeedTemplate, SeedGuard and SeedPost load reference data, which the
// scheduling core treats as read-only.

func (m *Memory) SeedTemplate(tpl db.ShiftTemplate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[tpl.ID] = tpl
}

func (m *Memory) SeedGuard(guard db.Guard) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guards[guard.ID] = guard
}

func (m *Memory) SeedPost(post db.Post) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts[post.ID] = post
}

func (m *Memory) GetShift(_ context.Context, id string) (*db.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	shift, ok := m.shifts[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &shift, nil
}

func (m *Memory) GetShiftsInRange(_ context.Context, start, end time.Time) ([]db.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []db.Shift
	for _, s := range m.shifts {
		if !s.StartAt.Before(start) && !s.StartAt.After(end) {
			out = append(out, s)
		}
	}
	sortByStart(out)
	return out, nil
}

func (m *Memory) GetShiftsByGuard(_ context.Context, guardID string) ([]db.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []db.Shift
	for _, s := range m.shifts {
		if s.GuardID == guardID {
			out = append(out, s)
		}
	}
	sortByStart(out)
	return out, nil
}

func (m *Memory) GetShiftsByGuardAndDay(_ context.Context, guardID string, day time.Time) ([]db.Shift, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []db.Shift
	for _, s := range m.shifts {
		if s.GuardID == guardID && schedule.SameCalendarDay(s.StartAt, day) {
			out = append(out, s)
		}
	}
	sortByStart(out)
	return out, nil
}

func (m *Memory) InsertShift(_ context.Context, shift db.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts[shift.ID] = shift
	return nil
}

// InsertShifts writes the whole batch under one lock acquisition, so a
// concurrent reader sees either none or all of it.
func (m *Memory) InsertShifts(_ context.Context, shifts []db.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range shifts {
		m.shifts[s.ID] = s
	}
	return nil
}

func (m *Memory) UpdateShiftGuard(_ context.Context, shiftID, guardID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	shift, ok := m.shifts[shiftID]
	if !ok {
		return db.ErrNotFound
	}
	shift.GuardID = guardID
	shift.Status = status
	m.shifts[shiftID] = shift
	return nil
}

func (m *Memory) GetTemplate(_ context.Context, id string) (*db.ShiftTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tpl, ok := m.templates[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &tpl, nil
}

func (m *Memory) GetGuard(_ context.Context, id string) (*db.Guard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	guard, ok := m.guards[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &guard, nil
}

func (m *Memory) GetPost(_ context.Context, id string) (*db.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	post, ok := m.posts[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &post, nil
}

func (m *Memory) InsertSwapRequest(_ context.Context, request db.SwapRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.swaps[request.ID] = request
	return nil
}

func (m *Memory) GetSwapRequest(_ context.Context, id string) (*db.SwapRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	request, ok := m.swaps[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &request, nil
}

func (m *Memory) ListSwapRequests(_ context.Context) ([]db.SwapRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]db.SwapRequest, 0, len(m.swaps))
	for _, r := range m.swaps {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.After(out[j].RequestedAt) })
	return out, nil
}

// ExchangeGuards applies the three swap-approval writes under one lock
// acquisition: no reader ever observes a half-swapped state.
func (m *Memory) ExchangeGuards(_ context.Context, requestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	request, ok := m.swaps[requestID]
	if !ok {
		return db.ErrNotFound
	}
	if request.Status != db.SwapPending {
		return db.ErrSwapResolved
	}

	shiftA, okA := m.shifts[request.ShiftAID]
	shiftB, okB := m.shifts[request.ShiftBID]
	if !okA || !okB {
		return db.ErrNotFound
	}

	shiftA.GuardID = request.GuardBID
	shiftA.Status = db.ShiftStatus(shiftA.GuardID)
	shiftB.GuardID = request.GuardAID
	shiftB.Status = db.ShiftStatus(shiftB.GuardID)
	request.Status = db.SwapApproved

	m.shifts[request.ShiftAID] = shiftA
	m.shifts[request.ShiftBID] = shiftB
	m.swaps[requestID] = request
	return nil
}

func (m *Memory) RejectSwap(_ context.Context, requestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	request, ok := m.swaps[requestID]
	if !ok {
		return db.ErrNotFound
	}
	if request.Status != db.SwapPending {
		return db.ErrSwapResolved
	}
	request.Status = db.SwapRejected
	m.swaps[requestID] = request
	return nil
}

func (m *Memory) InsertTimeBankEntry(_ context.Context, entry db.TimeBankEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timebank = append(m.timebank, entry)
	return nil
}

func (m *Memory) GetTimeBankEntries(_ context.Context, guardID string) ([]db.TimeBankEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []db.TimeBankEntry
	for _, e := range m.timebank {
		if e.GuardID == guardID {
			out = append(out, e)
		}
	}
	return out, nil
}

func sortByStart(shifts []db.Shift) {
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].StartAt.Before(shifts[j].StartAt) })
}
