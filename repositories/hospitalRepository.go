package repositories

import (
	"MediCoreHMS/models"
	"MediCoreHMS/services"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// HospitalRepository is the gorm-backed implementation of
// services.HospitalStore. Tenants are few and change rarely, so reads go
// straight to the database.
type HospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepository(db *gorm.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

var _ services.HospitalStore = (*HospitalRepository)(nil)

func (r *HospitalRepository) HospitalByID(ctx context.Context, id string) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.WithContext(ctx).First(&hospital, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}
	return &hospital, nil
}

func (r *HospitalRepository) HospitalByCode(ctx context.Context, code string) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.WithContext(ctx).First(&hospital, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get hospital by code: %w", err)
	}
	return &hospital, nil
}

func (r *HospitalRepository) CreateHospital(ctx context.Context, hospital *models.Hospital) error {
	if err := r.db.WithContext(ctx).Create(hospital).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("hospital code already exists: %w", err)
		}
		return fmt.Errorf("failed to create hospital: %w", err)
	}
	return nil
}

func (r *HospitalRepository) GetAllHospitals(ctx context.Context) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&hospitals).Error; err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return hospitals, nil
}
