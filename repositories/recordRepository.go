package repositories

import (
	"MediCoreHMS/models"
	"MediCoreHMS/services"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// RecordRepository persists clinical records created outside the patient
// identity flow: ED admissions and vitals.
type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

var _ services.RecordStore = (*RecordRepository)(nil)

func (r *RecordRepository) CreateAdmission(ctx context.Context, admission *models.Admission) error {
	if err := r.db.WithContext(ctx).Create(admission).Error; err != nil {
		return fmt.Errorf("failed to create admission: %w", err)
	}
	return nil
}

func (r *RecordRepository) CreateVital(ctx context.Context, vital *models.Vital) error {
	if err := r.db.WithContext(ctx).Create(vital).Error; err != nil {
		return fmt.Errorf("failed to create vital: %w", err)
	}
	return nil
}

// CountOwnedRecords reports how many rows of the given type a patient owns.
// Used by admin tooling to sanity-check a merge before committing to it.
func (r *RecordRepository) CountOwnedRecords(ctx context.Context, record models.OwnedRecord, patientID string) (int64, error) {
	model, ok := ownedRecordModels[record]
	if !ok {
		return 0, fmt.Errorf("unknown record type %q", record)
	}
	var count int64
	err := r.db.WithContext(ctx).Model(model).Where("patient_id = ?", patientID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", record, err)
	}
	return count, nil
}
