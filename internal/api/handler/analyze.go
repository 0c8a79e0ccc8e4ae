package handler

import (
	"net/http"

	"cleanspot/backend/internal/scorer"

	"github.com/gin-gonic/gin"
)

type analyzeRequest struct {
	ImageURL string `json:"imageUrl" binding:"required"`
}

// AnalyzeImage runs the cleanliness scorer against an arbitrary image URL
// without touching any complaint. Useful for spot checks.
func (h *Handler) AnalyzeImage(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "imageUrl is required"})
		return
	}

	outcome := h.Scorer.Analyze(c.Request.Context(), req.ImageURL)
	switch outcome.Kind {
	case scorer.Scored:
		c.JSON(http.StatusOK, gin.H{
			"message":          "Analysis complete.",
			"cleanlinessScore": outcome.Score,
		})
	case scorer.LaunchFailure:
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Image analysis is currently unavailable."})
	case scorer.ParseFailure:
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Image analysis produced no score.",
			"error":   outcome.RawOutput,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Image analysis failed."})
	}
}
