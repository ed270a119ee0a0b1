package repositories

import (
	"MediCoreHMS/cache"
	"MediCoreHMS/models"
	"MediCoreHMS/services"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PatientCacheExpiry = 7 * 24 * time.Hour
)

// ownedRecordModels maps reassignable record types to their gorm models.
var ownedRecordModels = map[models.OwnedRecord]interface{}{
	models.RecordAppointments:   &models.Appointment{},
	models.RecordPrescriptions:  &models.Prescription{},
	models.RecordLabOrders:      &models.LabOrder{},
	models.RecordImagingOrders:  &models.ImagingOrder{},
	models.RecordAdmissions:     &models.Admission{},
	models.RecordConsultations:  &models.Consultation{},
	models.RecordVitals:         &models.Vital{},
	models.RecordInvoices:       &models.Invoice{},
	models.RecordAllergies:      &models.Allergy{},
	models.RecordInsurances:     &models.PatientInsurance{},
	models.RecordAIPredictions:  &models.AIPrediction{},
	models.RecordAIDiagnoses:    &models.AIDiagnosis{},
	models.RecordSmartOrders:    &models.SmartOrder{},
	models.RecordClinicalNotes:  &models.ClinicalNote{},
	models.RecordScribeSessions: &models.ScribeSession{},
}

// PatientRepository is the gorm-backed implementation of
// services.PatientStore. Identity lookups always hit the database directly;
// only the by-id read path goes through the cache, and every write
// invalidates it.
type PatientRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPatientRepository(db *gorm.DB, cache *cache.Cache) *PatientRepository {
	return &PatientRepository{db: db, cache: cache}
}

var _ services.PatientStore = (*PatientRepository)(nil)

func (r *PatientRepository) HospitalByID(ctx context.Context, id string) (*models.Hospital, error) {
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

func (r *PatientRepository) PatientByID(ctx context.Context, id string) (*models.Patient, error) {
	cacheKey := r.getPatientCacheKey(id)
	cachedPatient, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedPatient != "" {
		var patient models.Patient
		if err := json.Unmarshal([]byte(cachedPatient), &patient); err == nil {
			return &patient, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get patient from cache: %v", err)
	}

	var patient models.Patient
	err = r.db.WithContext(ctx).First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	patientJSON, err := json.Marshal(patient)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patient: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, patientJSON, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patient in cache: %v", err)
	}

	return &patient, nil
}

func (r *PatientRepository) ActivePatientByEmail(ctx context.Context, hospitalID, email string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).
		Where("hospital_id = ? AND is_active = ? AND LOWER(email) = ?", hospitalID, true, email).
		Order("created_at ASC").
		First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up patient by email: %w", err)
	}
	return &patient, nil
}

func (r *PatientRepository) ActivePatientsWithPhone(ctx context.Context, hospitalID string) ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.WithContext(ctx).
		Where("hospital_id = ? AND is_active = ? AND phone <> ''", hospitalID, true).
		Order("created_at ASC").
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list patients with phone: %w", err)
	}
	return patients, nil
}

func (r *PatientRepository) ActivePatientByNameDOB(ctx context.Context, hospitalID, firstName, lastName string, dayStart, dayEnd time.Time) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).
		Where("hospital_id = ? AND is_active = ?", hospitalID, true).
		Where("LOWER(first_name) = LOWER(?) AND LOWER(last_name) = LOWER(?)", firstName, lastName).
		Where("date_of_birth BETWEEN ? AND ?", dayStart, dayEnd).
		Order("created_at ASC").
		First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up patient by name and date of birth: %w", err)
	}
	return &patient, nil
}

func (r *PatientRepository) SearchDuplicateCandidates(ctx context.Context, hospitalID string, q services.DuplicateQuery, limit int) ([]models.Patient, error) {
	if q.IsEmpty() {
		return []models.Patient{}, nil
	}

	db := r.db.WithContext(ctx)
	disjunction := db.Where("1 = 0")
	if q.Email != "" {
		disjunction = disjunction.Or("LOWER(email) = ?", q.Email)
	}
	if q.EmailLocalPart != "" {
		disjunction = disjunction.Or("LOWER(email) LIKE ?", q.EmailLocalPart+"@%")
	}
	if q.PhoneSuffix != "" {
		disjunction = disjunction.Or("phone LIKE ?", "%"+q.PhoneSuffix)
	}
	if q.FirstName != "" {
		disjunction = disjunction.Or("LOWER(first_name) = ?", q.FirstName)
	}
	if q.LastName != "" {
		disjunction = disjunction.Or("LOWER(last_name) = ?", q.LastName)
	}

	var patients []models.Patient
	err := db.
		Where("hospital_id = ? AND is_active = ?", hospitalID, true).
		Where(disjunction).
		Order("created_at DESC").
		Limit(limit).
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search duplicate candidates: %w", err)
	}
	return patients, nil
}

// CreatePatientWithHistory creates the patient row and its empty medical
// history as a unit; a failure of either write leaves no partial state.
func (r *PatientRepository) CreatePatientWithHistory(ctx context.Context, patient *models.Patient) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(patient).Error; err != nil {
			return err
		}
		history := &models.MedicalHistory{
			ID:        uuid.New().String(),
			PatientID: patient.ID,
		}
		return tx.Create(history).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("duplicate key creating patient: %w", err)
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return r.cache.Delete(ctx, r.getPatientCacheKey(patient.ID))
}

func (r *PatientRepository) UpdatePatient(ctx context.Context, patient *models.Patient) error {
	if err := r.db.WithContext(ctx).Save(patient).Error; err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return r.cache.Delete(ctx, r.getPatientCacheKey(patient.ID))
}

func (r *PatientRepository) DeleteMedicalHistory(ctx context.Context, patientID string) error {
	err := r.db.WithContext(ctx).Where("patient_id = ?", patientID).Delete(&models.MedicalHistory{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete medical history: %w", err)
	}
	return nil
}

func (r *PatientRepository) MedicalHistoryByPatientID(ctx context.Context, patientID string) (*models.MedicalHistory, error) {
	var history models.MedicalHistory
	err := r.db.WithContext(ctx).First(&history, "patient_id = ?", patientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get medical history: %w", err)
	}
	return &history, nil
}

// ReassignOwnedRecords moves every row of the given record type from one
// patient to another and reports the number of rows affected.
func (r *PatientRepository) ReassignOwnedRecords(ctx context.Context, record models.OwnedRecord, fromPatientID, toPatientID string) (int64, error) {
	model, ok := ownedRecordModels[record]
	if !ok {
		return 0, fmt.Errorf("unknown record type %q", record)
	}
	result := r.db.WithContext(ctx).Model(model).
		Where("patient_id = ?", fromPatientID).
		Update("patient_id", toPatientID)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to reassign %s: %w", record, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *PatientRepository) UserByID(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Select("id, username, email, role_id, created_at").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *PatientRepository) PatientByUserID(ctx context.Context, userID int64) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).First(&patient, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient by user: %w", err)
	}
	return &patient, nil
}

// Transaction runs fn against a repository bound to a database transaction.
// Any error from fn rolls the whole transaction back.
func (r *PatientRepository) Transaction(ctx context.Context, fn func(tx services.PatientStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(txdb *gorm.DB) error {
		return fn(&PatientRepository{db: txdb, cache: r.cache})
	})
}

func (r *PatientRepository) getPatientCacheKey(patientID string) string {
	return fmt.Sprintf("patient_cache:%s", patientID)
}
