package handlers

import (
	"MediCoreHMS/services"

	"github.com/gin-gonic/gin"
)

type MergeHandler struct {
	service *services.MergeService
}

func NewMergeHandler(service *services.MergeService) *MergeHandler {
	return &MergeHandler{service: service}
}

type mergeRequest struct {
	PrimaryPatientID   string `json:"primary_patient_id"`
	DuplicatePatientID string `json:"duplicate_patient_id"`
}

// MergePatients consolidates a duplicate patient record into a primary one.
func (h *MergeHandler) MergePatients(c *gin.Context) {
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if req.PrimaryPatientID == "" || req.DuplicatePatientID == "" {
		c.JSON(400, gin.H{"error": "primary_patient_id and duplicate_patient_id are required"})
		return
	}

	result, err := h.service.MergePatientRecords(c, req.PrimaryPatientID, req.DuplicatePatientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, result)
}

// PreviewMerge reports what a merge would move without performing it.
func (h *MergeHandler) PreviewMerge(c *gin.Context) {
	var req mergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if req.PrimaryPatientID == "" || req.DuplicatePatientID == "" {
		c.JSON(400, gin.H{"error": "primary_patient_id and duplicate_patient_id are required"})
		return
	}

	preview, err := h.service.PreviewMerge(c, req.PrimaryPatientID, req.DuplicatePatientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, preview)
}
