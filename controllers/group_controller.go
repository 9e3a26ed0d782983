package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pledgecity/backend/database"
	"github.com/pledgecity/backend/models"
	"gorm.io/gorm"
)

type CreateGroupInput struct {
	Name string `json:"name" binding:"required" example:"Cycling buddies"`
}

type InviteInput struct {
	Username string `json:"username" binding:"required" example:"ana"`
}

// GetGroups godoc
// @Summary List groups for the authenticated user
// @Description Returns groups the user owns or belongs to, plus their pending invites
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Groups and pending invites"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/groups [get]
func GetGroups(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var memberships []models.GroupMember
	if err := database.DB.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group memberships"})
		return
	}

	groupIDs := make([]uint, 0, len(memberships))
	for _, m := range memberships {
		groupIDs = append(groupIDs, m.GroupID)
	}

	var groups []models.Group
	if err := database.DB.Preload("Members").Preload("Owner").
		Where("id IN ? OR owner_id = ?", groupIDs, userID).
		Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	var pendingInvites []models.GroupInvite
	if err := database.DB.Where("user_id = ? AND status = 'pending'", userID).
		Preload("Group").
		Find(&pendingInvites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"groups":  groups,
		"invites": pendingInvites,
	})
}

// CreateGroup godoc
// @Summary Create a group
// @Description Creates a group with the authenticated user as owner and first member
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param group body CreateGroupInput true "Group"
// @Success 201 {object} map[string]interface{} "Group created successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/groups [post]
func CreateGroup(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group := models.Group{
		Name:    input.Name,
		OwnerID: userID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		// Owner is always a member
		return tx.Create(&models.GroupMember{GroupID: group.ID, UserID: userID}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Group created successfully",
		"group":   group,
	})
}

// InviteToGroup godoc
// @Summary Invite a user to a group
// @Description Group owner invites a username; the user must approve to join
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Param invite body InviteInput true "Invite"
// @Success 201 {object} map[string]interface{} "Invitation sent successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Group or user not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/groups/{id}/invite [post]
func InviteToGroup(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var input InviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var group models.Group
	if err := database.DB.First(&group, groupID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	if group.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the group owner can invite"})
		return
	}

	var invitee models.User
	if err := database.DB.Where("username = ?", input.Username).First(&invitee).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Check if user is already a member
	var existingMember models.GroupMember
	if err := database.DB.Where("group_id = ? AND user_id = ?", group.ID, invitee.ID).
		First(&existingMember).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User is already a member of this group"})
		return
	}

	// Check if there's already a pending invite
	var existingInvite models.GroupInvite
	if err := database.DB.Where("group_id = ? AND user_id = ? AND status = 'pending'",
		group.ID, invitee.ID).First(&existingInvite).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An invitation has already been sent to this user"})
		return
	}

	invite := models.GroupInvite{
		GroupID: group.ID,
		UserID:  invitee.ID,
		Status:  models.InviteStatusPending,
	}

	if err := database.DB.Create(&invite).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Invitation sent successfully",
		"invite":  invite,
	})
}

// ApproveInvite godoc
// @Summary Approve a group invitation
// @Description The invited user accepts their own pending invite and becomes a member
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path int true "Group ID"
// @Success 200 {object} map[string]string "Invitation approved"
// @Failure 400 {object} map[string]string "Invalid group ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invitation not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/groups/{id}/approve [post]
func ApproveInvite(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	groupID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var invite models.GroupInvite
	if err := database.DB.Where("group_id = ? AND user_id = ? AND status = 'pending'",
		groupID, userID).First(&invite).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found or already processed"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		invite.Status = models.InviteStatusAccepted
		if err := tx.Save(&invite).Error; err != nil {
			return err
		}
		return tx.Create(&models.GroupMember{GroupID: invite.GroupID, UserID: userID}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve invitation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation approved"})
}
