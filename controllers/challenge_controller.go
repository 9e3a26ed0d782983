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

type CreateChallengeInput struct {
	Challenged  string  `json:"challenged" binding:"required" example:"rafa"`
	Title       string  `json:"title" binding:"required" example:"Run a half marathon"`
	Description string  `json:"description"`
	OfferAmount float64 `json:"offer_amount" binding:"required,min=1" example:"100"`
}

type RespondChallengeInput struct {
	Action        string   `json:"action" binding:"required,oneof=accept reject counter" example:"counter"`
	CounterAmount *float64 `json:"counter_amount" example:"80"`
}

// GetChallenges godoc
// @Summary List the caller's challenges
// @Description Returns challenges where the caller is challenger or challenged
// @Tags challenges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "List of challenges"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/challenges [get]
func GetChallenges(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var challenges []models.Challenge
	if err := database.DB.Where("challenger_id = ? OR challenged_id = ?", userID, userID).
		Preload("Challenger").Preload("Challenged").
		Order("created_at DESC").
		Find(&challenges).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch challenges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenges": challenges})
}

// CreateChallenge godoc
// @Summary Challenge another user
// @Description Dares a user by username with an offered amount
// @Tags challenges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param challenge body CreateChallengeInput true "Challenge"
// @Success 201 {object} map[string]interface{} "Challenge created successfully"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/challenges [post]
func CreateChallenge(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateChallengeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var challenged models.User
	if err := database.DB.Where("username = ?", input.Challenged).First(&challenged).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if challenged.ID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot challenge yourself"})
		return
	}

	challenge := models.Challenge{
		ChallengerID: userID,
		ChallengedID: challenged.ID,
		Title:        input.Title,
		Description:  input.Description,
		OfferAmount:  input.OfferAmount,
		Status:       models.ChallengePending,
	}

	if err := database.DB.Create(&challenge).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create challenge"})
		return
	}

	database.DB.Preload("Challenger").Preload("Challenged").First(&challenge, challenge.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Challenge created successfully",
		"challenge": challenge,
	})
}

// RespondToChallenge godoc
// @Summary Respond to a challenge
// @Description Accept, reject, or counter. The challenged party answers a pending challenge; the challenger answers a countered one.
// @Tags challenges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Challenge ID"
// @Param response body RespondChallengeInput true "Response"
// @Success 200 {object} map[string]interface{} "Response recorded"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not your move"
// @Failure 404 {object} map[string]string "Challenge not found"
// @Failure 409 {object} map[string]string "Challenge already settled"
// @Router /api/challenges/{id}/respond [post]
func RespondToChallenge(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	challengeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	var input RespondChallengeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var challenge models.Challenge
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Challenger").Preload("Challenged").
			First(&challenge, challengeID).Error; err != nil {
			return err
		}
		if err := challenge.Respond(userID, input.Action, input.CounterAmount); err != nil {
			domainError(c, err)
			return errHandled
		}
		return tx.Save(&challenge).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		} else if !errors.Is(err, errHandled) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update challenge"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Response recorded",
		"challenge": challenge,
	})
}

// AcceptCounter godoc
// @Summary Accept a counter offer
// @Description The original challenger accepts the challenged party's counter, committing the counter amount
// @Tags challenges
// @Produce json
// @Security BearerAuth
// @Param id path int true "Challenge ID"
// @Success 200 {object} map[string]interface{} "Counter accepted"
// @Failure 400 {object} map[string]string "Invalid challenge ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the challenger"
// @Failure 404 {object} map[string]string "Challenge not found"
// @Failure 409 {object} map[string]string "Challenge not countered"
// @Router /api/challenges/{id}/accept-counter [post]
func AcceptCounter(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	challengeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	var challenge models.Challenge
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Challenger").Preload("Challenged").
			First(&challenge, challengeID).Error; err != nil {
			return err
		}
		if err := challenge.AcceptCounter(userID); err != nil {
			domainError(c, err)
			return errHandled
		}
		return tx.Save(&challenge).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		} else if !errors.Is(err, errHandled) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update challenge"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Counter accepted",
		"challenge":      challenge,
		"settled_amount": challenge.SettledAmount(),
	})
}
