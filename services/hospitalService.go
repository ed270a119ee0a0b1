package services

import (
	"MediCoreHMS/models"
	"MediCoreHMS/utils"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// HospitalStore is the persistence surface for tenant administration.
type HospitalStore interface {
	HospitalByID(ctx context.Context, id string) (*models.Hospital, error)
	HospitalByCode(ctx context.Context, code string) (*models.Hospital, error)
	CreateHospital(ctx context.Context, hospital *models.Hospital) error
	GetAllHospitals(ctx context.Context) ([]models.Hospital, error)
}

// HospitalService manages tenants. Hospital codes prefix every MRN issued
// for the tenant, so they are short, uppercase, and unique.
type HospitalService struct {
	repo HospitalStore
}

func NewHospitalService(repo HospitalStore) *HospitalService {
	return &HospitalService{repo: repo}
}

func (s *HospitalService) Create(ctx context.Context, hospital *models.Hospital) error {
	hospital.Code = strings.ToUpper(strings.TrimSpace(hospital.Code))
	if hospital.Code == "" || len(hospital.Code) > 10 {
		return fmt.Errorf("%w: hospital code must be 1-10 characters", utils.ErrValidation)
	}
	if hospital.Name == "" {
		return fmt.Errorf("%w: hospital name is required", utils.ErrValidation)
	}

	existing, err := s.repo.HospitalByCode(ctx, hospital.Code)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: hospital code %s is already in use", utils.ErrConflict, hospital.Code)
	}

	if hospital.ID == "" {
		hospital.ID = uuid.New().String()
	}
	hospital.IsActive = true
	return s.repo.CreateHospital(ctx, hospital)
}

func (s *HospitalService) GetByID(ctx context.Context, id string) (*models.Hospital, error) {
	hospital, err := s.repo.HospitalByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hospital == nil {
		return nil, fmt.Errorf("%w: hospital %s", utils.ErrNotFound, id)
	}
	return hospital, nil
}

func (s *HospitalService) GetAll(ctx context.Context) ([]models.Hospital, error) {
	return s.repo.GetAllHospitals(ctx)
}
