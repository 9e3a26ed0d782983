package models

import (
	"fmt"
	"time"
)

type EntryStatus string

const (
	EntryPending  EntryStatus = "pending"
	EntryReceived EntryStatus = "received"
)

// Deal types on a balance entry.
const (
	DealMission   = "mission"
	DealChallenge = "challenge"
)

// BalanceEntry is a derived payer -> payee obligation. Entries are never
// stored; they are rebuilt from settled threads and accepted challenges on
// every read. The ID is deterministic so a receipt can address one.
type BalanceEntry struct {
	ID       string      `json:"id"`
	Payer    string      `json:"payer"`
	Payee    string      `json:"payee"`
	Amount   float64     `json:"amount"`
	DealType string      `json:"deal_type"`
	Title    string      `json:"title"`
	Status   EntryStatus `json:"status"`
}

// BalanceReceipt records a payee's confirmation that an entry was paid. It is
// the only persisted piece of the ledger: an entry with a receipt reads as
// received, everything else as pending.
type BalanceReceipt struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EntryID   string    `gorm:"size:64;not null;unique" json:"entry_id"`
	PayeeID   uint      `json:"payee_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Ledger is one viewer's slice of the balance graph.
type Ledger struct {
	Owes      float64        `json:"owes"`
	ToReceive float64        `json:"to_receive"`
	Entries   []BalanceEntry `json:"entries"`
}

// PledgeEntryID and ChallengeEntryID name derived entries.
func PledgeEntryID(pledgeID uint) string  { return fmt.Sprintf("pledge-%d", pledgeID) }
func ChallengeEntryID(chalID uint) string { return fmt.Sprintf("challenge-%d", chalID) }

// BuildLedger converts settled obligations into the viewer's ledger. An
// obligation is either a pledge on a thread that reached funded or
// committed_current (supporter owes the creator that pledge's amount), or an
// accepted challenge (challenger owes the challenged the settled amount).
// Pledges on open or expired threads are intent, not obligation, and are
// skipped. Threads need Creator and Pledges.Supporter loaded; challenges need
// both users loaded.
func BuildLedger(threads []Thread, challenges []Challenge, received map[string]bool, viewer string, now time.Time) Ledger {
	ledger := Ledger{Entries: []BalanceEntry{}}

	add := func(e BalanceEntry) {
		if e.Payer != viewer && e.Payee != viewer {
			return
		}
		if received[e.ID] {
			e.Status = EntryReceived
		} else {
			e.Status = EntryPending
		}
		ledger.Entries = append(ledger.Entries, e)
		if e.Status == EntryPending {
			if e.Payer == viewer {
				ledger.Owes += e.Amount
			}
			if e.Payee == viewer {
				ledger.ToReceive += e.Amount
			}
		}
	}

	for _, t := range threads {
		if !t.Status(now).Settled() {
			continue
		}
		for _, p := range t.Pledges {
			add(BalanceEntry{
				ID:       PledgeEntryID(p.ID),
				Payer:    p.Supporter.Username,
				Payee:    t.Creator.Username,
				Amount:   p.Amount,
				DealType: DealMission,
				Title:    t.Title,
			})
		}
	}

	for _, c := range challenges {
		if c.Status != ChallengeAccepted {
			continue
		}
		add(BalanceEntry{
			ID:       ChallengeEntryID(c.ID),
			Payer:    c.Challenger.Username,
			Payee:    c.Challenged.Username,
			Amount:   c.SettledAmount(),
			DealType: DealChallenge,
			Title:    c.Title,
		})
	}

	return ledger
}

// FindEntry locates one derived entry by ID in a freshly built ledger.
func (l Ledger) FindEntry(id string) (BalanceEntry, bool) {
	for _, e := range l.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return BalanceEntry{}, false
}
