package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"cleanspot/backend/internal/complaint"

	"github.com/gin-gonic/gin"
)

// writeServiceError translates a complaint.Error into an HTTP response. The
// Detail field, when present, is included so a failed analysis can be
// diagnosed straight from the response body.
func writeServiceError(c *gin.Context, err error) {
	var svcErr *complaint.Error
	if !errors.As(err, &svcErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch svcErr.Kind {
	case complaint.KindValidation:
		status = http.StatusBadRequest
	case complaint.KindNotOwner:
		status = http.StatusForbidden
	case complaint.KindNotFound:
		status = http.StatusNotFound
	case complaint.KindConflict:
		status = http.StatusConflict
	case complaint.KindScorerUnavailable:
		status = http.StatusServiceUnavailable
	}

	body := gin.H{"message": svcErr.Message}
	if svcErr.Detail != "" {
		body["error"] = svcErr.Detail
	}
	c.JSON(status, body)
}

// openFormFile returns the named multipart file, or (nil, nil) when the form
// has no such part.
func openFormFile(c *gin.Context, name string) (multipart.File, error) {
	fh, err := c.FormFile(name)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	return fh.Open()
}

// SubmitComplaint registers a student's complaint, with an optional "img"
// before-image part.
func (h *Handler) SubmitComplaint(c *gin.Context) {
	img, err := openFormFile(c, "img")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Malformed image upload"})
		return
	}

	sub := complaint.ComplaintSubmission{
		Area:        c.PostForm("area"),
		RollNumber:  c.PostForm("rollNumber"),
		Urgency:     c.PostForm("urgency"),
		Description: c.PostForm("description"),
	}
	if img != nil {
		defer img.Close()
		sub.BeforeImage = img
	}

	created, err := h.Complaints.SubmitComplaint(c.Request.Context(), sub)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Complaint registered successfully.",
		"complaint": created,
	})
}

// ReceiveComplaint hands the caller the next pending complaint in their area,
// marking it assigned.
func (h *Handler) ReceiveComplaint(c *gin.Context) {
	assigned, err := h.Complaints.ClaimComplaint(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if assigned == nil {
		c.JSON(http.StatusOK, gin.H{"message": "No pending complaints for your area."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Complaint assigned.",
		"complaint": assigned,
	})
}

// SubmitWork accepts a worker's after-image for an assigned complaint and
// runs the completion pipeline. The multipart form carries "complaintId",
// "description" and the mandatory "img" part.
func (h *Handler) SubmitWork(c *gin.Context) {
	img, err := openFormFile(c, "img")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Malformed image upload"})
		return
	}

	sub := complaint.WorkSubmission{
		ComplaintID: c.PostForm("complaintId"),
		Description: c.PostForm("description"),
	}
	if img != nil {
		defer img.Close()
		sub.Image = img
	}

	result, err := h.Complaints.SubmitWork(c.Request.Context(), c.GetString(ctxUserID), sub)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Work submitted and complaint resolved.",
		"complaintId":      result.ComplaintID,
		"cleanlinessScore": result.CleanlinessScore,
		"resolvedAt":       result.ResolvedAt,
	})
}
