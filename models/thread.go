package models

import (
	"time"
)

// ThreadStatus is derived from the pledge total, deadline, and commit marker.
// It is never stored.
type ThreadStatus string

const (
	// StatusOpen accepts new pledges.
	StatusOpen ThreadStatus = "open"
	// StatusFunded means the pledge total reached the target.
	StatusFunded ThreadStatus = "funded"
	// StatusCommittedCurrent means the creator locked in the raised total
	// before the target was met.
	StatusCommittedCurrent ThreadStatus = "committed_current"
	// StatusExpired means the deadline passed without funding or a commit.
	StatusExpired ThreadStatus = "expired"
)

// Settled reports whether pledges on a thread with this status have become
// obligations.
func (s ThreadStatus) Settled() bool {
	return s == StatusFunded || s == StatusCommittedCurrent
}

// Thread is a funding mission: a goal with a monetary target and a deadline,
// funded by pledges.
type Thread struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatorID    uint      `json:"creator_id"`
	Creator      User      `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	TargetAmount float64   `gorm:"not null" json:"target_amount"`
	Deadline     time.Time `gorm:"not null" json:"deadline"`
	Audience
	// CommittedAt and CommittedAmount are set together by commit-current and
	// freeze the raised total for settlement.
	CommittedAt     *time.Time `json:"committed_at,omitempty"`
	CommittedAmount *float64   `json:"committed_amount,omitempty"`
	Pledges         []Pledge   `gorm:"foreignKey:ThreadID" json:"pledges,omitempty"`
	Comments        []Comment  `gorm:"foreignKey:ThreadID" json:"comments,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Pledge is a supporter's non-binding monetary commitment toward a thread or
// reverse request. Immutable once created.
type Pledge struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ThreadID    *uint     `json:"thread_id,omitempty"`
	ReverseID   *uint     `json:"reverse_id,omitempty"`
	SupporterID uint      `json:"supporter_id"`
	Supporter   User      `gorm:"foreignKey:SupporterID" json:"supporter,omitempty"`
	Amount      float64   `gorm:"not null" json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// ResolveStatus derives a thread's lifecycle state. The commit marker wins
// over everything else: a commit is only recorded while the thread is open,
// so once set no later pledge or deadline can move the status again. Funded
// is checked before expired so a mission that reached its target stays funded
// after the deadline.
func ResolveStatus(target, pledgedTotal float64, deadline time.Time, committed bool, now time.Time) ThreadStatus {
	if committed {
		return StatusCommittedCurrent
	}
	if pledgedTotal >= target {
		return StatusFunded
	}
	if now.After(deadline) {
		return StatusExpired
	}
	return StatusOpen
}

// PledgedTotal is always the sum over the full pledge set, never an
// incrementally maintained counter.
func (t Thread) PledgedTotal() float64 {
	var total float64
	for _, p := range t.Pledges {
		total += p.Amount
	}
	return total
}

// Status derives the thread's current state. Pledges must be loaded.
func (t Thread) Status(now time.Time) ThreadStatus {
	return ResolveStatus(t.TargetAmount, t.PledgedTotal(), t.Deadline, t.CommittedAt != nil, now)
}

// SettledTotal is the amount the creator is owed once the thread settles:
// the frozen amount for committed_current, the full pledge total for funded.
func (t Thread) SettledTotal() float64 {
	if t.CommittedAmount != nil {
		return *t.CommittedAmount
	}
	return t.PledgedTotal()
}

// EndOfDay converts a YYYY-MM-DD deadline date to its last second, matching
// how deadlines are compared everywhere.
func EndOfDay(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, date.Location())
}
