package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pledgecity/backend/database"
	"github.com/pledgecity/backend/models"
	"gorm.io/gorm"
)

type CreateThreadInput struct {
	Title        string  `json:"title" binding:"required" example:"Bike ride to Santos"`
	Description  string  `json:"description" binding:"required"`
	TargetAmount float64 `json:"target_amount" binding:"required,min=1" example:"1000"`
	Deadline     string  `json:"deadline" binding:"required" example:"2026-09-30"`
	AudienceInput
}

type CreatePledgeInput struct {
	Amount float64 `json:"amount" binding:"required,min=1" example:"150"`
}

type CreateCommentInput struct {
	Body string `json:"body" binding:"required" example:"Count me in!"`
}

func threadResponse(t models.Thread, now time.Time) gin.H {
	return gin.H{
		"thread":        t,
		"status":        t.Status(now),
		"pledged_total": t.PledgedTotal(),
	}
}

// GetThreads godoc
// @Summary List visible missions
// @Description Returns missions the caller may see, with derived status and pledge totals. Anonymous callers see open-audience missions only.
// @Tags threads
// @Produce json
// @Param groupId query int false "Only missions scoped to this group"
// @Success 200 {object} map[string]interface{} "List of threads"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/threads [get]
func GetThreads(c *gin.Context) {
	viewer := currentViewer(c)

	query := database.DB.
		Preload("Creator").
		Preload("Pledges.Supporter").
		Preload("Comments.Author").
		Order("created_at DESC")

	if groupID := c.Query("groupId"); groupID != "" {
		id, err := strconv.ParseUint(groupID, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
			return
		}
		query = query.Where("audience = ? AND audience_group_id = ?", models.AudienceGroup, id)
	}

	var threads []models.Thread
	if err := query.Find(&threads).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch threads"})
		return
	}

	now := time.Now()
	response := []gin.H{}
	for _, t := range threads {
		if !t.CanView(t.Creator.Username, viewer) {
			continue
		}
		response = append(response, threadResponse(t, now))
	}

	c.JSON(http.StatusOK, gin.H{"threads": response})
}

// CreateThread godoc
// @Summary Create a mission
// @Description Creates a funding mission with a target amount and a YYYY-MM-DD deadline
// @Tags threads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param thread body CreateThreadInput true "Thread Creation"
// @Success 201 {object} map[string]interface{} "Thread created successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/threads [post]
func CreateThread(c *gin.Context) {
	viewer := currentViewer(c)

	var input CreateThreadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deadline, err := time.Parse("2006-01-02", input.Deadline)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deadline. Use YYYY-MM-DD format"})
		return
	}

	audience, msg := buildAudience(input.AudienceInput, viewer)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	thread := models.Thread{
		CreatorID:    viewer.ID,
		Title:        input.Title,
		Description:  input.Description,
		TargetAmount: input.TargetAmount,
		Deadline:     models.EndOfDay(deadline),
		Audience:     audience,
	}

	if err := database.DB.Create(&thread).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create thread"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Thread created successfully",
		"thread":  thread,
	})
}

// DeleteThread godoc
// @Summary Delete a mission
// @Description Deletes a mission with its pledges and comments. Creator or admin only.
// @Tags threads
// @Produce json
// @Security BearerAuth
// @Param id path int true "Thread ID"
// @Success 200 {object} map[string]string "Thread deleted successfully"
// @Failure 400 {object} map[string]string "Invalid thread ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Thread not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/threads/{id} [delete]
func DeleteThread(c *gin.Context) {
	viewer := currentViewer(c)
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid thread ID"})
		return
	}

	var thread models.Thread
	if err := database.DB.First(&thread, threadID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
		return
	}

	if thread.CreatorID != viewer.ID && !viewer.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the creator or an admin can delete a thread"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("thread_id = ?", thread.ID).Delete(&models.Pledge{}).Error; err != nil {
			return err
		}
		if err := tx.Where("thread_id = ?", thread.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&thread).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete thread"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Thread deleted successfully"})
}

// CreateThreadPledge godoc
// @Summary Pledge toward a mission
// @Description Adds a pledge while the mission is open. Status is re-derived inside the transaction, so a pledge that arrives after funding or expiry is rejected.
// @Tags threads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Thread ID"
// @Param pledge body CreatePledgeInput true "Pledge"
// @Success 201 {object} map[string]interface{} "Pledge created successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Thread not found"
// @Failure 409 {object} map[string]string "Thread no longer accepts pledges"
// @Router /api/threads/{id}/pledges [post]
func CreateThreadPledge(c *gin.Context) {
	viewer := currentViewer(c)
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid thread ID"})
		return
	}

	var input CreatePledgeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var pledge models.Pledge
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var thread models.Thread
		if err := tx.Preload("Creator").Preload("Pledges").First(&thread, threadID).Error; err != nil {
			return err
		}

		if !thread.CanAct(thread.Creator.Username, viewer) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this thread"})
			return errHandled
		}

		if thread.Status(time.Now()) != models.StatusOpen {
			c.JSON(http.StatusConflict, gin.H{"error": "This mission no longer accepts pledges"})
			return errHandled
		}

		id := uint(threadID)
		pledge = models.Pledge{
			ThreadID:    &id,
			SupporterID: viewer.ID,
			Amount:      input.Amount,
		}
		return tx.Create(&pledge).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
		} else if !errors.Is(err, errHandled) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pledge"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Pledge created successfully",
		"pledge":  pledge,
	})
}

// CommitCurrent godoc
// @Summary Commit to the currently raised total
// @Description The creator locks in the raised amount before the target is met, freezing it for settlement
// @Tags threads
// @Produce json
// @Security BearerAuth
// @Param id path int true "Thread ID"
// @Success 200 {object} map[string]interface{} "Committed to current total"
// @Failure 400 {object} map[string]string "Invalid thread ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Thread not found"
// @Failure 409 {object} map[string]string "Thread is not open"
// @Router /api/threads/{id}/commit-current [post]
func CommitCurrent(c *gin.Context) {
	viewer := currentViewer(c)
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid thread ID"})
		return
	}

	var thread models.Thread
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Pledges").First(&thread, threadID).Error; err != nil {
			return err
		}

		if thread.CreatorID != viewer.ID && !viewer.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the creator can commit"})
			return errHandled
		}

		// Commit wins over a same-instant expiry: if the status still reads
		// open when this check runs, the commit is recorded and the deadline
		// never applies.
		if thread.Status(time.Now()) != models.StatusOpen {
			c.JSON(http.StatusConflict, gin.H{"error": "Only an open mission can be committed"})
			return errHandled
		}

		now := time.Now()
		total := thread.PledgedTotal()
		thread.CommittedAt = &now
		thread.CommittedAmount = &total
		return tx.Save(&thread).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
		} else if !errors.Is(err, errHandled) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Committed to current total",
		"committed_amount": thread.CommittedAmount,
	})
}

// CreateThreadComment godoc
// @Summary Comment on a mission
// @Tags threads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Thread ID"
// @Param comment body CreateCommentInput true "Comment"
// @Success 201 {object} map[string]interface{} "Comment created successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Thread not found"
// @Router /api/threads/{id}/comments [post]
func CreateThreadComment(c *gin.Context) {
	viewer := currentViewer(c)
	threadID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid thread ID"})
		return
	}

	var input CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var thread models.Thread
	if err := database.DB.Preload("Creator").First(&thread, threadID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Thread not found"})
		return
	}

	if !thread.CanAct(thread.Creator.Username, viewer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this thread"})
		return
	}

	id := uint(threadID)
	comment := models.Comment{
		ThreadID: &id,
		AuthorID: viewer.ID,
		Body:     input.Body,
	}

	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment created successfully",
		"comment": comment,
	})
}
