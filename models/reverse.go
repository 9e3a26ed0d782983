package models

import (
	"time"
)

// ReverseStatus is stored, unlike ThreadStatus: a request closes only when
// its creator closes it.
type ReverseStatus string

const (
	ReverseOpen   ReverseStatus = "open"
	ReverseClosed ReverseStatus = "closed"
)

// ReverseRequest is a reverse auction: the creator posts work with a seed
// amount and bidders compete on the lowest ask.
type ReverseRequest struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	CreatorID   uint    `json:"creator_id"`
	Creator     User    `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text;not null" json:"description"`
	SeedAmount  float64 `gorm:"not null" json:"seed_amount"`
	Audience
	Status    ReverseStatus `gorm:"size:20;default:'open'" json:"status"`
	Bids      []Bid         `gorm:"foreignKey:ReverseID" json:"bids,omitempty"`
	Pledges   []Pledge      `gorm:"foreignKey:ReverseID" json:"pledges,omitempty"`
	Comments  []Comment     `gorm:"foreignKey:ReverseID" json:"comments,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Bid is an offer to do the requested work for the asked amount.
type Bid struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReverseID uint      `json:"reverse_id"`
	BidderID  uint      `json:"bidder_id"`
	Bidder    User      `gorm:"foreignKey:BidderID" json:"bidder,omitempty"`
	Ask       float64   `gorm:"not null" json:"ask"`
	CreatedAt time.Time `json:"created_at"`
}

// LowestBid returns the bid with the minimal ask, or nil when there are no
// bids. Ties keep the earliest bid.
func (r ReverseRequest) LowestBid() *Bid {
	var lowest *Bid
	for i := range r.Bids {
		if lowest == nil || r.Bids[i].Ask < lowest.Ask {
			lowest = &r.Bids[i]
		}
	}
	return lowest
}

// PledgedTotal sums the request's pledges.
func (r ReverseRequest) PledgedTotal() float64 {
	var total float64
	for _, p := range r.Pledges {
		total += p.Amount
	}
	return total
}
