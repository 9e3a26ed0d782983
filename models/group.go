package models

import (
	"time"
)

// Group scopes audience visibility. Membership changes only through the
// invite + approve flow.
type Group struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Name      string        `gorm:"size:255;not null" json:"name"`
	OwnerID   uint          `json:"owner_id"`
	Owner     User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members   []User        `gorm:"many2many:group_members;" json:"members,omitempty"`
	Invites   []GroupInvite `gorm:"foreignKey:GroupID" json:"invites,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type GroupMember struct {
	GroupID   uint      `gorm:"primaryKey" json:"group_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
)

// GroupInvite is a pending invitation from the group owner to a user. The
// invited user approves it themselves, which makes them a member.
type GroupInvite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `json:"group_id"`
	Group     Group     `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	UserID    uint      `json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status    string    `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
