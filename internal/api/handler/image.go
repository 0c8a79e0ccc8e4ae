package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadImage stores a standalone image and returns its URL and storage id.
func (h *Handler) UploadImage(c *gin.Context) {
	img, err := openFormFile(c, "img")
	if err != nil || img == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image file is required", "success": false})
		return
	}
	defer img.Close()

	up, err := h.Images.Store(c.Request.Context(), img, "cleanspot/misc", "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Image upload failed", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Image uploaded successfully",
		"success":  true,
		"imageUrl": up.URL,
		"publicId": up.StorageID,
	})
}

type deleteImageRequest struct {
	PublicID string `json:"publicId" binding:"required"`
}

// DeleteImage removes a stored image by its storage id. Deleting an id that
// no longer exists succeeds.
func (h *Handler) DeleteImage(c *gin.Context) {
	var req deleteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "publicId is required", "success": false})
		return
	}

	if err := h.Images.Delete(c.Request.Context(), req.PublicID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Image deletion failed", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully", "success": true})
}
