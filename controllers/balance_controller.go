package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pledgecity/backend/database"
	"github.com/pledgecity/backend/models"
)

// viewerLedger rebuilds the viewer's ledger from settled threads, accepted
// challenges, and recorded receipts.
func viewerLedger(viewer models.Viewer) (models.Ledger, error) {
	var threads []models.Thread
	if err := database.DB.
		Preload("Creator").
		Preload("Pledges.Supporter").
		Find(&threads).Error; err != nil {
		return models.Ledger{}, err
	}

	var challenges []models.Challenge
	if err := database.DB.
		Preload("Challenger").
		Preload("Challenged").
		Where("status = ?", models.ChallengeAccepted).
		Find(&challenges).Error; err != nil {
		return models.Ledger{}, err
	}

	var receipts []models.BalanceReceipt
	if err := database.DB.Find(&receipts).Error; err != nil {
		return models.Ledger{}, err
	}
	received := make(map[string]bool, len(receipts))
	for _, r := range receipts {
		received[r.EntryID] = true
	}

	return models.BuildLedger(threads, challenges, received, viewer.Username, time.Now()), nil
}

// GetBalance godoc
// @Summary Get the caller's balance ledger
// @Description Returns derived balance entries where the caller is payer or payee, with owes / to-receive totals over pending entries
// @Tags balance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Ledger"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/balance [get]
func GetBalance(c *gin.Context) {
	viewer := currentViewer(c)

	ledger, err := viewerLedger(viewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build ledger"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"owes":       ledger.Owes,
		"to_receive": ledger.ToReceive,
		"entries":    ledger.Entries,
	})
}

// DeclareReceived godoc
// @Summary Declare a balance entry received
// @Description The payee confirms payment for one derived entry. Declaring an already-received entry is a no-op success.
// @Tags balance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID (pledge-N or challenge-N)"
// @Success 200 {object} map[string]interface{} "Entry marked received"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Only the payee can declare"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/balance/{id}/declare-received [post]
func DeclareReceived(c *gin.Context) {
	viewer := currentViewer(c)
	entryID := c.Param("id")

	ledger, err := viewerLedger(viewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build ledger"})
		return
	}

	entry, ok := ledger.FindEntry(entryID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Balance entry not found"})
		return
	}

	if entry.Payee != viewer.Username {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the payee can declare an entry received"})
		return
	}

	// Idempotent: a second declare finds the receipt and changes nothing.
	if entry.Status != models.EntryReceived {
		receipt := models.BalanceReceipt{EntryID: entryID, PayeeID: viewer.ID}
		if err := database.DB.Where("entry_id = ?", entryID).
			FirstOrCreate(&receipt).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record receipt"})
			return
		}
		entry.Status = models.EntryReceived
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Entry marked received",
		"entry":   entry,
	})
}
