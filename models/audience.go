package models

import "github.com/lib/pq"

// AudienceMode scopes who can see and act on a mission or reverse request.
type AudienceMode string

const (
	// AudienceOpen items are visible to everyone, including anonymous
	// visitors; acting still requires a logged-in user.
	AudienceOpen AudienceMode = "open"
	// AudienceGroup items are visible to members of the bound group.
	AudienceGroup AudienceMode = "group"
	// AudienceSpecific items are visible only to the creator and the
	// explicitly listed usernames.
	AudienceSpecific AudienceMode = "specific"
)

// Audience is embedded in Thread and ReverseRequest.
type Audience struct {
	Mode    AudienceMode   `gorm:"column:audience;size:20;default:'open'" json:"audience"`
	GroupID *uint          `gorm:"column:audience_group_id" json:"group_id,omitempty"`
	Targets pq.StringArray `gorm:"column:audience_targets;type:text[]" json:"targets,omitempty"`
}

// Viewer is the resolved identity a request acts as. The zero value is an
// anonymous visitor.
type Viewer struct {
	ID       uint
	Username string
	IsAdmin  bool
	GroupIDs []uint
}

// Anonymous reports whether the viewer is not logged in.
func (v Viewer) Anonymous() bool {
	return v.Username == ""
}

// InGroup reports whether the viewer is a member of the given group.
func (v Viewer) InGroup(groupID uint) bool {
	for _, id := range v.GroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}

// CanView reports whether the viewer may see an item created by creator with
// this audience. The creator and platform admins always pass.
func (a Audience) CanView(creator string, v Viewer) bool {
	if v.IsAdmin || (!v.Anonymous() && v.Username == creator) {
		return true
	}
	switch a.Mode {
	case AudienceGroup:
		return a.GroupID != nil && v.InGroup(*a.GroupID)
	case AudienceSpecific:
		for _, target := range a.Targets {
			if !v.Anonymous() && v.Username == target {
				return true
			}
		}
		return false
	default: // AudienceOpen
		return true
	}
}

// CanAct reports whether the viewer may pledge, bid, or comment on the item.
// Same rules as CanView except anonymous visitors are never allowed.
func (a Audience) CanAct(creator string, v Viewer) bool {
	if v.Anonymous() {
		return false
	}
	return a.CanView(creator, v)
}
