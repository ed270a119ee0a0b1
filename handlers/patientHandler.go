package handlers

import (
	"MediCoreHMS/models"
	"MediCoreHMS/services"
	"MediCoreHMS/utils"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// patientRequest is the wire form of patient identity and demographic fields.
type patientRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	Source      string `json:"source"`
}

// toInput validates the request and converts it to a service input.
func (r *patientRequest) toInput() (services.PatientInput, error) {
	if err := utils.ValidatePatientIntake(r.FirstName, r.LastName, r.Email, r.Phone, r.Gender, r.DateOfBirth); err != nil {
		return services.PatientInput{}, err
	}
	dob, err := utils.ParseDateOfBirth(r.DateOfBirth)
	if err != nil {
		return services.PatientInput{}, err
	}
	return services.PatientInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		DateOfBirth: dob,
		Gender:      r.Gender,
		Address:     r.Address,
		City:        r.City,
		State:       r.State,
		ZipCode:     r.ZipCode,
	}, nil
}

func (r *patientRequest) creationSource() string {
	switch strings.ToUpper(strings.TrimSpace(r.Source)) {
	case models.SourcePortal:
		return models.SourcePortal
	case models.SourceBooking:
		return models.SourceBooking
	default:
		return models.SourceStaff
	}
}

type PatientHandler struct {
	service *services.PatientService
	lookup  *services.PatientLookupService
}

func NewPatientHandler(service *services.PatientService, lookup *services.PatientLookupService) *PatientHandler {
	return &PatientHandler{service: service, lookup: lookup}
}

// ResolvePatient finds an existing patient matching the submitted identity
// fields or creates a new one. Returns 200 for a match, 201 for a creation.
func (h *PatientHandler) ResolvePatient(c *gin.Context) {
	hospitalID := c.Param("hospital_id")
	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	resolved, err := h.service.FindOrCreatePatient(c, hospitalID, input, req.creationSource())
	if err != nil {
		respondError(c, err)
		return
	}
	if resolved.IsExisting {
		c.JSON(200, resolved)
		return
	}
	c.JSON(201, resolved)
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patient, err := h.service.GetByID(c, c.Param("patient_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, patient)
}

func (h *PatientHandler) GetMedicalHistory(c *gin.Context) {
	history, err := h.service.GetMedicalHistory(c, c.Param("patient_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, history)
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	patient, err := h.service.UpdateDemographics(c, c.Param("patient_id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, patient)
}

// FindDuplicates scores active patients against the submitted identity fields
// and returns review candidates, best first.
func (h *PatientHandler) FindDuplicates(c *gin.Context) {
	hospitalID := c.Param("hospital_id")
	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	dob, err := utils.ParseDateOfBirth(req.DateOfBirth)
	if err != nil {
		c.JSON(400, gin.H{"error": "date_of_birth must be YYYY-MM-DD"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	criteria := services.LookupCriteria{
		Email:       req.Email,
		Phone:       req.Phone,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: dob,
	}
	duplicates, err := h.lookup.FindPotentialDuplicates(c, hospitalID, criteria, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"duplicates": duplicates, "count": len(duplicates)})
}
