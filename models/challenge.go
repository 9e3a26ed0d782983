package models

import (
	"fmt"
	"time"
)

type ChallengeStatus string

const (
	ChallengePending   ChallengeStatus = "pending"
	ChallengeAccepted  ChallengeStatus = "accepted"
	ChallengeRejected  ChallengeStatus = "rejected"
	ChallengeCountered ChallengeStatus = "countered"
)

// Terminal reports whether no further transition is possible.
func (s ChallengeStatus) Terminal() bool {
	return s == ChallengeAccepted || s == ChallengeRejected
}

// Challenge is a direct dare between two users with a negotiated amount.
// State machine: pending -> accepted | rejected | countered, then
// countered -> accepted | rejected. A counter may happen at most once.
type Challenge struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ChallengerID  uint            `json:"challenger_id"`
	Challenger    User            `gorm:"foreignKey:ChallengerID" json:"challenger,omitempty"`
	ChallengedID  uint            `json:"challenged_id"`
	Challenged    User            `gorm:"foreignKey:ChallengedID" json:"challenged,omitempty"`
	Title         string          `gorm:"size:255;not null" json:"title"`
	Description   string          `gorm:"type:text" json:"description"`
	OfferAmount   float64         `gorm:"not null" json:"offer_amount"`
	CounterAmount *float64        `json:"counter_amount,omitempty"`
	Status        ChallengeStatus `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Respond applies the challenged party's answer to a pending challenge, or
// the challenger's answer to a countered one. Countering is only open to the
// challenged party on a pending challenge; there is no second counter round.
func (c *Challenge) Respond(userID uint, action string, counter *float64) error {
	if c.Status.Terminal() {
		return fmt.Errorf("challenge already %s: %w", c.Status, ErrInvalidState)
	}

	// Whose move it is depends on the state: the challenged party answers a
	// pending challenge, the challenger answers a counter.
	switch c.Status {
	case ChallengePending:
		if userID != c.ChallengedID {
			return fmt.Errorf("only the challenged user may respond: %w", ErrNotAllowed)
		}
	case ChallengeCountered:
		if userID != c.ChallengerID {
			return fmt.Errorf("only the challenger may respond to a counter: %w", ErrNotAllowed)
		}
	}

	switch action {
	case "accept":
		c.Status = ChallengeAccepted
	case "reject":
		c.Status = ChallengeRejected
	case "counter":
		if c.Status != ChallengePending {
			return fmt.Errorf("counter already made: %w", ErrInvalidState)
		}
		if counter == nil || *counter < 1 {
			return fmt.Errorf("counter amount must be at least 1: %w", ErrValidation)
		}
		c.CounterAmount = counter
		c.Status = ChallengeCountered
	default:
		return fmt.Errorf("unknown action %q: %w", action, ErrValidation)
	}
	return nil
}

// AcceptCounter is the challenger accepting the challenged party's counter
// offer, committing the counter amount.
func (c *Challenge) AcceptCounter(userID uint) error {
	if c.Status != ChallengeCountered {
		return fmt.Errorf("challenge is %s, not countered: %w", c.Status, ErrInvalidState)
	}
	if userID != c.ChallengerID {
		return fmt.Errorf("only the challenger may accept a counter: %w", ErrNotAllowed)
	}
	c.Status = ChallengeAccepted
	return nil
}

// SettledAmount is the amount committed by acceptance: the counter amount if
// the counter path was taken, otherwise the original offer.
func (c Challenge) SettledAmount() float64 {
	if c.CounterAmount != nil {
		return *c.CounterAmount
	}
	return c.OfferAmount
}
