package handler

import (
	"net/http"

	"cleanspot/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Profile returns the authenticated user's account plus the role profile
// attached to it.
func (h *Handler) Profile(c *gin.Context) {
	userID := c.GetString(ctxUserID)

	resp := gin.H{
		"id":       userID,
		"username": c.GetString(ctxUsername),
		"role":     c.GetString(ctxRole),
	}

	switch c.GetString(ctxRole) {
	case models.RoleStudent:
		student, err := h.Storage.FindStudentByUserID(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load profile"})
			return
		}
		resp["profile"] = student
	case models.RoleEmployee:
		worker, err := h.Storage.FindWorkerByUserID(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load profile"})
			return
		}
		resp["profile"] = worker
	}

	c.JSON(http.StatusOK, resp)
}

// StudentDashboard lists the complaints the student has filed, newest first.
func (h *Handler) StudentDashboard(c *gin.Context) {
	student, err := h.Storage.FindStudentByUserID(c.GetString(ctxUserID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load dashboard"})
		return
	}
	if student == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Student profile not found."})
		return
	}

	complaints, err := h.Storage.ListComplaintsByStudent(student.RollNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"student":    student,
		"complaints": complaints,
	})
}

// EmployeeDashboard shows a worker's open assignments and completed work log.
func (h *Handler) EmployeeDashboard(c *gin.Context) {
	worker, err := h.Storage.FindWorkerByUserID(c.GetString(ctxUserID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load dashboard"})
		return
	}
	if worker == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Employee profile not found."})
		return
	}

	complaints, err := h.Storage.ListComplaintsByWorker(worker.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load dashboard"})
		return
	}

	open := make([]models.Complaint, 0, len(complaints))
	for _, cm := range complaints {
		if cm.Status != models.StatusCompleted {
			open = append(open, cm)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"employee":        worker,
		"openAssignments": open,
		"workDone":        worker.WorkDone,
	})
}
