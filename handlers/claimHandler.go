package handlers

import (
	"MediCoreHMS/services"

	"github.com/gin-gonic/gin"
)

type ClaimHandler struct {
	service *services.ClaimService
}

func NewClaimHandler(service *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{service: service}
}

type claimCheckRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CheckClaim reports whether the patient record can be claimed with the
// presented identity fields. Always 200; ineligibility is in the body.
func (h *ClaimHandler) CheckClaim(c *gin.Context) {
	var req claimCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	eligibility, err := h.service.CanClaimPatient(c, c.Param("patient_id"), req.Email, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, eligibility)
}

type linkRequest struct {
	UserID int64 `json:"user_id"`
}

// LinkPatient attaches a portal account to an unlinked patient record.
func (h *ClaimHandler) LinkPatient(c *gin.Context) {
	var req linkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if req.UserID == 0 {
		c.JSON(400, gin.H{"error": "user_id is required"})
		return
	}

	patient, err := h.service.LinkUserToPatient(c, c.Param("patient_id"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, patient)
}
