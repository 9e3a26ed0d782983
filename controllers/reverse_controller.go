package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pledgecity/backend/database"
	"github.com/pledgecity/backend/models"
	"gorm.io/gorm"
)

type CreateReverseInput struct {
	Title       string  `json:"title" binding:"required" example:"Fix my fence"`
	Description string  `json:"description" binding:"required"`
	SeedAmount  float64 `json:"seed_amount" binding:"required,min=1" example:"200"`
	AudienceInput
}

type CreateBidInput struct {
	Ask float64 `json:"ask" binding:"required,min=1" example:"150"`
}

func reverseResponse(r models.ReverseRequest) gin.H {
	resp := gin.H{
		"request":       r,
		"pledged_total": r.PledgedTotal(),
	}
	if lowest := r.LowestBid(); lowest != nil {
		resp["lowest_bid"] = lowest
	}
	return resp
}

// loadOpenReverse fetches a request and rejects acting on closed ones or by
// viewers outside its audience. Returns false with the response written.
func loadOpenReverse(c *gin.Context, viewer models.Viewer, id uint64, request *models.ReverseRequest) bool {
	if err := database.DB.Preload("Creator").Preload("Bids").First(request, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return false
	}

	if !request.CanAct(request.Creator.Username, viewer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this request"})
		return false
	}

	if request.Status != models.ReverseOpen {
		c.JSON(http.StatusConflict, gin.H{"error": "This request is closed"})
		return false
	}

	return true
}

// GetReverseRequests godoc
// @Summary List visible reverse requests
// @Description Returns reverse auctions the caller may see, with bids, lowest bid, and pledge totals
// @Tags reverse
// @Produce json
// @Param groupId query int false "Only requests scoped to this group"
// @Success 200 {object} map[string]interface{} "List of requests"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/reverse [get]
func GetReverseRequests(c *gin.Context) {
	viewer := currentViewer(c)

	query := database.DB.
		Preload("Creator").
		Preload("Bids.Bidder").
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

	var requests []models.ReverseRequest
	if err := query.Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	response := []gin.H{}
	for _, r := range requests {
		if !r.CanView(r.Creator.Username, viewer) {
			continue
		}
		response = append(response, reverseResponse(r))
	}

	c.JSON(http.StatusOK, gin.H{"requests": response})
}

// CreateReverseRequest godoc
// @Summary Create a reverse request
// @Description Posts work for reverse auction with a seed amount
// @Tags reverse
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReverseInput true "Request Creation"
// @Success 201 {object} map[string]interface{} "Request created successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/reverse [post]
func CreateReverseRequest(c *gin.Context) {
	viewer := currentViewer(c)

	var input CreateReverseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	audience, msg := buildAudience(input.AudienceInput, viewer)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	request := models.ReverseRequest{
		CreatorID:   viewer.ID,
		Title:       input.Title,
		Description: input.Description,
		SeedAmount:  input.SeedAmount,
		Audience:    audience,
		Status:      models.ReverseOpen,
	}

	if err := database.DB.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Request created successfully",
		"request": request,
	})
}

// CreateBid godoc
// @Summary Bid on a reverse request
// @Description Offers to do the work for the asked amount. The creator cannot bid on their own request.
// @Tags reverse
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param bid body CreateBidInput true "Bid"
// @Success 201 {object} map[string]interface{} "Bid created successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Request is closed"
// @Router /api/reverse/{id}/bids [post]
func CreateBid(c *gin.Context) {
	viewer := currentViewer(c)
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var input CreateBidInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var request models.ReverseRequest
	if !loadOpenReverse(c, viewer, requestID, &request) {
		return
	}

	if request.CreatorID == viewer.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot bid on your own request"})
		return
	}

	bid := models.Bid{
		ReverseID: request.ID,
		BidderID:  viewer.ID,
		Ask:       input.Ask,
	}

	if err := database.DB.Create(&bid).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bid"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Bid created successfully",
		"bid":     bid,
	})
}

// CreateReversePledge godoc
// @Summary Pledge toward a reverse request
// @Description Adds funding toward the eventual bid award while the request is open
// @Tags reverse
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param pledge body CreatePledgeInput true "Pledge"
// @Success 201 {object} map[string]interface{} "Pledge created successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Request is closed"
// @Router /api/reverse/{id}/pledges [post]
func CreateReversePledge(c *gin.Context) {
	viewer := currentViewer(c)
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var input CreatePledgeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var request models.ReverseRequest
	if !loadOpenReverse(c, viewer, requestID, &request) {
		return
	}

	pledge := models.Pledge{
		ReverseID:   &request.ID,
		SupporterID: viewer.ID,
		Amount:      input.Amount,
	}

	if err := database.DB.Create(&pledge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pledge"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Pledge created successfully",
		"pledge":  pledge,
	})
}

// CreateReverseComment godoc
// @Summary Comment on a reverse request
// @Tags reverse
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param comment body CreateCommentInput true "Comment"
// @Success 201 {object} map[string]interface{} "Comment created successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request not found"
// @Router /api/reverse/{id}/comments [post]
func CreateReverseComment(c *gin.Context) {
	viewer := currentViewer(c)
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var input CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var request models.ReverseRequest
	if err := database.DB.Preload("Creator").First(&request, requestID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		return
	}

	if !request.CanAct(request.Creator.Username, viewer) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this request"})
		return
	}

	comment := models.Comment{
		ReverseID: &request.ID,
		AuthorID:  viewer.ID,
		Body:      input.Body,
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

// CloseReverseRequest godoc
// @Summary Close a reverse request
// @Description Creator or admin ends the auction; no further bids or pledges are accepted
// @Tags reverse
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} map[string]interface{} "Request closed"
// @Failure 400 {object} map[string]string "Invalid request ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Request already closed"
// @Router /api/reverse/{id}/close [post]
func CloseReverseRequest(c *gin.Context) {
	viewer := currentViewer(c)
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var request models.ReverseRequest
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Bids.Bidder").First(&request, requestID).Error; err != nil {
			return err
		}

		if request.CreatorID != viewer.ID && !viewer.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the creator or an admin can close a request"})
			return errHandled
		}

		if request.Status != models.ReverseOpen {
			c.JSON(http.StatusConflict, gin.H{"error": "Request already closed"})
			return errHandled
		}

		request.Status = models.ReverseClosed
		return tx.Save(&request).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		} else if !errors.Is(err, errHandled) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close request"})
		}
		return
	}

	resp := gin.H{"message": "Request closed"}
	if lowest := request.LowestBid(); lowest != nil {
		resp["lowest_bid"] = lowest
	}
	c.JSON(http.StatusOK, resp)
}
