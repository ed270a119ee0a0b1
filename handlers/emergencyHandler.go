package handlers

import (
	"MediCoreHMS/models"
	"MediCoreHMS/services"
	"MediCoreHMS/utils"

	"github.com/gin-gonic/gin"
)

type EmergencyHandler struct {
	service *services.EmergencyService
}

func NewEmergencyHandler(service *services.EmergencyService) *EmergencyHandler {
	return &EmergencyHandler{service: service}
}

type emergencyIntakeRequest struct {
	patientRequest
	ChiefComplaint string        `json:"chief_complaint"`
	Vitals         *models.Vital `json:"vitals"`
}

// RegisterArrival registers an ED walk-in: resolves the patient identity,
// triages the chief complaint, and opens an admission.
func (h *EmergencyHandler) RegisterArrival(c *gin.Context) {
	hospitalID := c.Param("hospital_id")
	var req emergencyIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidatePatientIntake(req.FirstName, req.LastName, req.Email, req.Phone, req.Gender, req.DateOfBirth); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	dob, err := utils.ParseDateOfBirth(req.DateOfBirth)
	if err != nil {
		c.JSON(400, gin.H{"error": "date_of_birth must be YYYY-MM-DD"})
		return
	}

	intake := services.EmergencyIntake{
		Patient: services.PatientInput{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			Phone:       req.Phone,
			DateOfBirth: dob,
			Gender:      req.Gender,
			Address:     req.Address,
			City:        req.City,
			State:       req.State,
			ZipCode:     req.ZipCode,
		},
		ChiefComplaint: req.ChiefComplaint,
		Vitals:         req.Vitals,
	}
	registration, err := h.service.RegisterArrival(c, hospitalID, intake)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, registration)
}
