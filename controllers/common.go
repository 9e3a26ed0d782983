package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pledgecity/backend/database"
	"github.com/pledgecity/backend/models"
)

// errHandled aborts a transaction after the handler already wrote the
// response. Callers must not write again when they see it.
var errHandled = errors.New("response already written")

// currentViewer resolves the request's identity. Requests that went through
// OptionalJWTAuth may have no userID, which yields the anonymous viewer.
func currentViewer(c *gin.Context) models.Viewer {
	userID, ok := c.Get("userID")
	if !ok {
		return models.Viewer{}
	}

	var user models.User
	if err := database.DB.First(&user, userID.(uint)).Error; err != nil {
		return models.Viewer{}
	}

	var memberships []models.GroupMember
	database.DB.Where("user_id = ?", user.ID).Find(&memberships)

	groupIDs := make([]uint, 0, len(memberships))
	for _, m := range memberships {
		groupIDs = append(groupIDs, m.GroupID)
	}

	return models.Viewer{
		ID:       user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
		GroupIDs: groupIDs,
	}
}

// AudienceInput is shared by thread and reverse request creation.
type AudienceInput struct {
	Audience string   `json:"audience" binding:"omitempty,oneof=open group specific" example:"open"`
	GroupID  *uint    `json:"group_id" example:"1"`
	Targets  []string `json:"targets"`
}

// buildAudience validates the audience block against the creating viewer:
// group mode needs a group the creator belongs to, specific mode needs at
// least one target username.
func buildAudience(input AudienceInput, v models.Viewer) (models.Audience, string) {
	mode := models.AudienceMode(input.Audience)
	if mode == "" {
		mode = models.AudienceOpen
	}

	switch mode {
	case models.AudienceGroup:
		if input.GroupID == nil {
			return models.Audience{}, "Group audience requires a group_id"
		}
		if !v.InGroup(*input.GroupID) {
			return models.Audience{}, "You are not a member of this group"
		}
		return models.Audience{Mode: mode, GroupID: input.GroupID}, ""
	case models.AudienceSpecific:
		if len(input.Targets) == 0 {
			return models.Audience{}, "Specific audience requires at least one target username"
		}
		return models.Audience{Mode: mode, Targets: input.Targets}, ""
	default:
		return models.Audience{Mode: models.AudienceOpen}, ""
	}
}

// domainError maps model-layer sentinel errors onto HTTP statuses.
func domainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
