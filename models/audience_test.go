package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	anonymous = Viewer{}
	ana       = Viewer{ID: 1, Username: "ana"}
	rafa      = Viewer{ID: 2, Username: "rafa", GroupIDs: []uint{7}}
	admin     = Viewer{ID: 3, Username: "mod", IsAdmin: true}
)

func TestOpenAudience(t *testing.T) {
	a := Audience{Mode: AudienceOpen}

	assert.True(t, a.CanView("lucas", anonymous))
	assert.True(t, a.CanView("lucas", ana))

	// Anonymous visitors can look but not touch.
	assert.False(t, a.CanAct("lucas", anonymous))
	assert.True(t, a.CanAct("lucas", ana))
}

func TestGroupAudience(t *testing.T) {
	groupID := uint(7)
	a := Audience{Mode: AudienceGroup, GroupID: &groupID}

	assert.True(t, a.CanView("lucas", rafa))
	assert.True(t, a.CanAct("lucas", rafa))
	assert.False(t, a.CanView("lucas", ana))
	assert.False(t, a.CanView("lucas", anonymous))

	// Creator and admin always pass.
	assert.True(t, a.CanView("ana", ana))
	assert.True(t, a.CanView("lucas", admin))

	// A group audience with no bound group is visible to nobody else.
	unbound := Audience{Mode: AudienceGroup}
	assert.False(t, unbound.CanView("lucas", rafa))
}

func TestSpecificAudience(t *testing.T) {
	a := Audience{Mode: AudienceSpecific, Targets: []string{"rafa", "pedro"}}

	assert.True(t, a.CanView("lucas", rafa))
	assert.True(t, a.CanAct("lucas", rafa))

	// Non-target, non-creator, non-admin always fails.
	assert.False(t, a.CanView("lucas", ana))
	assert.False(t, a.CanAct("lucas", ana))
	assert.False(t, a.CanView("lucas", anonymous))

	assert.True(t, a.CanView("ana", ana))
	assert.True(t, a.CanView("lucas", admin))
	assert.True(t, a.CanAct("lucas", admin))
}

func TestViewerHelpers(t *testing.T) {
	assert.True(t, anonymous.Anonymous())
	assert.False(t, rafa.Anonymous())
	assert.True(t, rafa.InGroup(7))
	assert.False(t, rafa.InGroup(8))
}
