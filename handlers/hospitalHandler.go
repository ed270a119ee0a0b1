package handlers

import (
	"MediCoreHMS/models"
	"MediCoreHMS/services"

	"github.com/gin-gonic/gin"
)

type HospitalHandler struct {
	service *services.HospitalService
}

func NewHospitalHandler(service *services.HospitalService) *HospitalHandler {
	return &HospitalHandler{service: service}
}

func (h *HospitalHandler) CreateHospital(c *gin.Context) {
	var hospital models.Hospital
	if err := c.ShouldBindJSON(&hospital); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c, &hospital); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, hospital)
}

func (h *HospitalHandler) GetHospitalByID(c *gin.Context) {
	hospital, err := h.service.GetByID(c, c.Param("hospital_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, hospital)
}

func (h *HospitalHandler) GetAllHospitals(c *gin.Context) {
	hospitals, err := h.service.GetAll(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, hospitals)
}
