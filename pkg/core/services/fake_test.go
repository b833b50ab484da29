package services

import (
	"context"
	"sort"
	"time"

	"github.com/rfogaca/vigia/pkg/core/schedule"
	"github.com/rfogaca/vigia/pkg/db"
)

// fakeDB implements db.Database as a test double: in-memory maps with
// injectable read and write errors.
type fakeDB struct {
	templates map[string]db.ShiftTemplate
	guards    map[string]db.Guard
	posts     map[string]db.Post
	shifts    map[string]db.Shift
	swaps     map[string]db.SwapRequest
	timebank  []db.TimeBankEntry

	insertedBatches [][]db.Shift

	queryErr  error
	insertErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		templates: make(map[string]db.ShiftTemplate),
		guards:    make(map[string]db.Guard),
		posts:     make(map[string]db.Post),
		shifts:    make(map[string]db.Shift),
		swaps:     make(map[string]db.SwapRequest),
	}
}

func (f *fakeDB) GetShift(_ context.Context, id string) (*db.Shift, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	shift, ok := f.shifts[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &shift, nil
}

func (f *fakeDB) GetShiftsInRange(_ context.Context, start, end time.Time) ([]db.Shift, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []db.Shift
	for _, s := range f.shifts {
		if !s.StartAt.Before(start) && !s.StartAt.After(end) {
			out = append(out, s)
		}
	}
	sortShifts(out)
	return out, nil
}

func (f *fakeDB) GetShiftsByGuard(_ context.Context, guardID string) ([]db.Shift, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []db.Shift
	for _, s := range f.shifts {
		if s.GuardID == guardID {
			out = append(out, s)
		}
	}
	sortShifts(out)
	return out, nil
}

func (f *fakeDB) GetShiftsByGuardAndDay(_ context.Context, guardID string, day time.Time) ([]db.Shift, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []db.Shift
	for _, s := range f.shifts {
		if s.GuardID == guardID && schedule.SameCalendarDay(s.StartAt, day) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeDB) InsertShift(_ context.Context, shift db.Shift) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.shifts[shift.ID] = shift
	return nil
}

func (f *fakeDB) InsertShifts(_ context.Context, shifts []db.Shift) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.insertedBatches = append(f.insertedBatches, shifts)
	for _, s := range shifts {
		f.shifts[s.ID] = s
	}
	return nil
}

func (f *fakeDB) UpdateShiftGuard(_ context.Context, shiftID, guardID, status string) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	shift, ok := f.shifts[shiftID]
	if !ok {
		return db.ErrNotFound
	}
	shift.GuardID = guardID
	shift.Status = status
	f.shifts[shiftID] = shift
	return nil
}

func (f *fakeDB) GetTemplate(_ context.Context, id string) (*db.ShiftTemplate, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	tpl, ok := f.templates[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &tpl, nil
}

func (f *fakeDB) GetGuard(_ context.Context, id string) (*db.Guard, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	guard, ok := f.guards[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &guard, nil
}

func (f *fakeDB) GetPost(_ context.Context, id string) (*db.Post, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	post, ok := f.posts[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &post, nil
}

func (f *fakeDB) InsertSwapRequest(_ context.Context, request db.SwapRequest) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.swaps[request.ID] = request
	return nil
}

func (f *fakeDB) GetSwapRequest(_ context.Context, id string) (*db.SwapRequest, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	request, ok := f.swaps[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &request, nil
}

func (f *fakeDB) ListSwapRequests(_ context.Context) ([]db.SwapRequest, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	out := make([]db.SwapRequest, 0, len(f.swaps))
	for _, r := range f.swaps {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.After(out[j].RequestedAt) })
	return out, nil
}

func (f *fakeDB) ExchangeGuards(_ context.Context, requestID string) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	request, ok := f.swaps[requestID]
	if !ok {
		return db.ErrNotFound
	}
	if request.Status != db.SwapPending {
		return db.ErrSwapResolved
	}

	shiftA, okA := f.shifts[request.ShiftAID]
	shiftB, okB := f.shifts[request.ShiftBID]
	if !okA || !okB {
		return db.ErrNotFound
	}

	shiftA.GuardID = request.GuardBID
	shiftB.GuardID = request.GuardAID
	request.Status = db.SwapApproved
	f.shifts[request.ShiftAID] = shiftA
	f.shifts[request.ShiftBID] = shiftB
	f.swaps[requestID] = request
	return nil
}

func (f *fakeDB) RejectSwap(_ context.Context, requestID string) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	request, ok := f.swaps[requestID]
	if !ok {
		return db.ErrNotFound
	}
	if request.Status != db.SwapPending {
		return db.ErrSwapResolved
	}
	request.Status = db.SwapRejected
	f.swaps[requestID] = request
	return nil
}

func (f *fakeDB) InsertTimeBankEntry(_ context.Context, entry db.TimeBankEntry) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.timebank = append(f.timebank, entry)
	return nil
}

func (f *fakeDB) GetTimeBankEntries(_ context.Context, guardID string) ([]db.TimeBankEntry, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []db.TimeBankEntry
	for _, e := range f.timebank {
		if e.GuardID == guardID {
			out = append(out, e)
		}
	}
	return out, nil
}

func sortShifts(shifts []db.Shift) {
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].StartAt.Before(shifts[j].StartAt) })
}

// guardShiftsOnDay counts a guard's shifts starting on the given day.
func (f *fakeDB) guardShiftsOnDay(guardID string, day time.Time) int {
	count := 0
	for _, s := range f.shifts {
		if s.GuardID == guardID && schedule.SameCalendarDay(s.StartAt, day) {
			count++
		}
	}
	return count
}
