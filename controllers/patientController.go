package controllers

import (
	"MediCoreHMS/handlers"
	"MediCoreHMS/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupPatientRoutes(router *gin.Engine, hospitalHandler *handlers.HospitalHandler, patientHandler *handlers.PatientHandler, mergeHandler *handlers.MergeHandler, claimHandler *handlers.ClaimHandler, emergencyHandler *handlers.EmergencyHandler) {
	// Tenant administration is admin-only.
	adminGroup := router.Group("/hospitals").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware("Admin"),
	)
	{
		adminGroup.POST("", hospitalHandler.CreateHospital)
		adminGroup.GET("", hospitalHandler.GetAllHospitals)
	}
	router.GET("/hospitals/:hospital_id", hospitalHandler.GetHospitalByID)

	// Identity resolution and duplicate review, scoped to a hospital.
	router.POST("/hospitals/:hospital_id/patients/resolve", patientHandler.ResolvePatient)
	router.POST("/hospitals/:hospital_id/patients/duplicates", patientHandler.FindDuplicates)
	router.POST("/hospitals/:hospital_id/emergency/arrivals", emergencyHandler.RegisterArrival)

	router.GET("/patients/:patient_id", patientHandler.GetPatientByID)
	router.PUT("/patients/:patient_id", patientHandler.UpdatePatient)
	router.GET("/patients/:patient_id/medical-history", patientHandler.GetMedicalHistory)

	// Merging is destructive for the duplicate record and is restricted to
	// staff roles that hold the merge permission.
	mergeGroup := router.Group("/patients").Use(
		middlewares.TokenAuthMiddleware(),
		middlewares.RoleAuthMiddleware("Admin", "Registrar"),
	)
	{
		mergeGroup.POST("/merge", mergeHandler.MergePatients)
		mergeGroup.POST("/merge/preview", mergeHandler.PreviewMerge)
	}

	// Portal claim flow.
	router.POST("/patients/:patient_id/claim/check", claimHandler.CheckClaim)
	claimGroup := router.Group("/patients").Use(middlewares.TokenAuthMiddleware())
	{
		claimGroup.POST("/:patient_id/claim", claimHandler.LinkPatient)
	}
}
