package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nikgav1/calorie-tracking-app/services"
)

type AnalysisController struct {
	Vision *services.VisionService
}

func NewAnalysisController(vision *services.VisionService) *AnalysisController {
	return &AnalysisController{Vision: vision}
}

type analyzeRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// Analyze handles POST /api/analyze: meal photo in, nutrition estimate out.
func (ac *AnalysisController) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
		return
	}

	est, err := ac.Vision.AnalyzeMealPhoto(c.Request.Context(), req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image processing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"nutritionData": est})
}
