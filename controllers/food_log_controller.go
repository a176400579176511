package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nikgav1/calorie-tracking-app/services"
)

type FoodLogController struct {
	Ledger *services.LedgerService
	RT     *services.RealtimeHub
}

func NewFoodLogController(ledger *services.LedgerService, rt *services.RealtimeHub) *FoodLogController {
	return &FoodLogController{Ledger: ledger, RT: rt}
}

func ledgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidMeal):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal"})
	case errors.Is(err, services.ErrNameRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Log must include name"})
	case errors.Is(err, services.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Log was modified concurrently, retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}

type logFoodRequest struct {
	Meal string            `json:"meal"`
	Date string            `json:"date"`
	Log  services.LogInput `json:"log"`
}

// LogFood handles POST /log/foodLog.
func (fc *FoodLogController) LogFood(c *gin.Context) {
	userID := c.GetUint("userID")

	var req logFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	day, entry, err := fc.Ledger.LogFood(c.Request.Context(), userID, req.Meal, req.Log, req.Date)
	if err != nil {
		ledgerError(c, err)
		return
	}

	fc.RT.BroadcastDayUpdate(userID, day)
	c.JSON(http.StatusOK, gin.H{"success": true, "day": day, "logId": entry.ID})
}

// UpdateLog handles PUT /log/days/:date/:meal/:logId.
func (fc *FoodLogController) UpdateLog(c *gin.Context) {
	userID := c.GetUint("userID")

	var req services.LogUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	day, err := fc.Ledger.EditLog(c.Request.Context(), userID,
		c.Param("meal"), c.Param("logId"), c.Param("date"), req)
	if err != nil {
		ledgerError(c, err)
		return
	}

	fc.RT.BroadcastDayUpdate(userID, day)
	c.JSON(http.StatusOK, gin.H{"success": true, "day": day})
}

// DeleteLog handles DELETE /log/days/:date/:meal/:logId.
func (fc *FoodLogController) DeleteLog(c *gin.Context) {
	userID := c.GetUint("userID")

	day, err := fc.Ledger.DeleteLog(c.Request.Context(), userID,
		c.Param("meal"), c.Param("logId"), c.Param("date"))
	if err != nil {
		ledgerError(c, err)
		return
	}

	fc.RT.BroadcastDayUpdate(userID, day)
	c.JSON(http.StatusOK, gin.H{"success": true, "day": day})
}

// GetDay handles GET /log/days/:date. A day with no logs yet answers 204,
// which clients render as an empty ledger.
func (fc *FoodLogController) GetDay(c *gin.Context) {
	userID := c.GetUint("userID")

	day, err := fc.Ledger.GetDay(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		ledgerError(c, err)
		return
	}
	if day == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "day": day})
}

// ListDays handles GET /log/days?limit=N.
func (fc *FoodLogController) ListDays(c *gin.Context) {
	userID := c.GetUint("userID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	days, err := fc.Ledger.ListDays(c.Request.Context(), userID, limit)
	if err != nil {
		ledgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "days": days})
}
