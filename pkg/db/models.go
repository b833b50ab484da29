package db

import "time"

// Shift statuses derived from the guard reference
const (
	ShiftVacant = "vacant"
	ShiftFilled = "filled"
)

// Swap request statuses
const (
	SwapPending  = "pending"
	SwapApproved = "approved"
	SwapRejected = "rejected"
)

// Time-bank entry kinds
const (
	TimeBankCredit = "credit"
	TimeBankDebit  = "debit"
)

// Guard represents a schedulable security worker. Reference data: the
// scheduling core only reads guards, it never mutates them.
type Guard struct {
	ID     string
	Name   string
	Badge  string
	Status string
}

// Post represents a location requiring coverage. Reference data.
type Post struct {
	ID        string
	Name      string
	Headcount int
	Active    bool
}

// ShiftTemplate is the stored form of a recurring pattern definition.
// Kind is either "cycle" (WorkDays/RestDays run lengths) or "fixed"
// (Weekdays tags, dom/seg/ter/qua/qui/sex/sab).
type ShiftTemplate struct {
	ID        string
	Name      string
	Kind      string
	StartTime string
	EndTime   string
	WorkDays  int
	RestDays  int
	Weekdays  []string
}

// Shift is one concrete scheduled coverage instance at a post.
// An empty GuardID means the shift is vacant.
type Shift struct {
	ID      string
	PostID  string
	GuardID string
	StartAt time.Time
	EndAt   time.Time
	Status  string
}

// ShiftStatus derives the status of a shift from its guard reference.
func ShiftStatus(guardID string) string {
	if guardID == "" {
		return ShiftVacant
	}
	return ShiftFilled
}

// SwapRequest is a proposal to exchange the guard assignments of two shifts.
// The name, post and time fields are denormalized for display in the swap
// request list and are frozen at request time.
type SwapRequest struct {
	ID            string
	ShiftAID      string
	GuardAID      string
	ShiftBID      string
	GuardBID      string
	RequesterName string
	RequestedName string
	PostName      string
	ShiftStart    time.Time
	Status        string
	RequestedAt   time.Time
}

// TimeBankEntry is one signed ledger entry in a guard's time bank.
// Minutes is stored positive for credits and negative for debits.
type TimeBankEntry struct {
	ID         string
	GuardID    string
	GuardName  string
	Kind       string
	Minutes    int
	Reason     string
	RecordedAt time.Time
}
