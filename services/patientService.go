package services

import (
	"MediCoreHMS/models"
	"MediCoreHMS/utils"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	identityLockTTL     = 10 * time.Second
	identityLockRetries = 3
	mrnCreateAttempts   = 3
)

// PatientInput carries the identity and demographic fields of a registration
// or find-or-create request. Gender is expected to have passed boundary
// validation already; the service still coerces it defensively.
type PatientInput struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DateOfBirth *time.Time
	Gender      string
	Address     string
	City        string
	State       string
	ZipCode     string
}

// ResolvedPatient is the outcome of identity resolution: either an existing
// patient (with the channel that matched) or a freshly created one.
type ResolvedPatient struct {
	Patient    *models.Patient `json:"patient"`
	IsExisting bool            `json:"is_existing"`
	MatchedBy  string          `json:"matched_by,omitempty"`
}

// PatientService orchestrates identity resolution and patient CRUD.
type PatientService struct {
	store  PatientStore
	lookup *PatientLookupService
	locker Locker
}

func NewPatientService(store PatientStore, lookup *PatientLookupService, locker Locker) *PatientService {
	return &PatientService{store: store, lookup: lookup, locker: locker}
}

// FindOrCreatePatient resolves incoming patient data against existing records
// and creates a new patient only when no match exists. The source tag
// (PORTAL/BOOKING/STAFF) is recorded for audit purposes only.
//
// The match-then-create sequence runs under an advisory lock keyed on the
// normalized identity tuple, so two concurrent requests with the same
// identity fields cannot both miss the read and both create.
func (s *PatientService) FindOrCreatePatient(ctx context.Context, hospitalID string, input PatientInput, source string) (*ResolvedPatient, error) {
	hospital, err := s.store.HospitalByID(ctx, hospitalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load hospital: %w", err)
	}
	if hospital == nil {
		return nil, fmt.Errorf("%w: hospital %s", utils.ErrNotFound, hospitalID)
	}

	criteria := LookupCriteria{
		Email:       input.Email,
		Phone:       input.Phone,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DateOfBirth: input.DateOfBirth,
	}

	lockKey := identityLockKey(hospitalID, criteria)
	lockValue := uuid.New().String()
	locked := false
	for i := 0; i < identityLockRetries; i++ {
		locked, err = s.locker.Acquire(ctx, lockKey, lockValue, identityLockTTL)
		if err == nil && locked {
			break
		}
		if i < identityLockRetries-1 {
			time.Sleep(500 * time.Millisecond)
		}
	}
	if !locked {
		return nil, fmt.Errorf("failed to acquire identity lock: %w", err)
	}
	defer func() {
		if err := s.locker.Release(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release identity lock %s: %v", lockKey, err)
		}
	}()

	match, err := s.lookup.FindExistingPatient(ctx, hospitalID, criteria)
	if err != nil {
		return nil, fmt.Errorf("identity lookup failed: %w", err)
	}
	if match != nil {
		log.Printf("Patient %s matched by %s (source: %s)", match.Patient.ID, match.MatchedBy, source)
		return &ResolvedPatient{Patient: match.Patient, IsExisting: true, MatchedBy: match.MatchedBy}, nil
	}

	patient := &models.Patient{
		ID:             uuid.New().String(),
		HospitalID:     hospitalID,
		FirstName:      strings.TrimSpace(input.FirstName),
		LastName:       strings.TrimSpace(input.LastName),
		Email:          utils.NormalizeEmail(input.Email),
		Phone:          utils.NormalizePhone(input.Phone),
		DateOfBirth:    utils.NormalizeDate(input.DateOfBirth),
		Gender:         utils.CoerceGender(input.Gender),
		Address:        input.Address,
		City:           input.City,
		State:          input.State,
		ZipCode:        input.ZipCode,
		CreationSource: source,
		IsActive:       true,
	}

	// The MRN column is unique; regenerate and retry on a duplicate-key
	// conflict instead of assuming the timestamp+suffix scheme never collides.
	for attempt := 0; attempt < mrnCreateAttempts; attempt++ {
		patient.MRN = utils.GenerateMRN(hospital.Code)
		err = s.store.CreatePatientWithHistory(ctx, patient)
		if err == nil {
			log.Printf("Created patient %s with MRN %s (source: %s)", patient.ID, patient.MRN, source)
			return &ResolvedPatient{Patient: patient, IsExisting: false}, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		log.Printf("MRN %s already taken, regenerating (attempt %d)", patient.MRN, attempt+1)
	}
	return nil, fmt.Errorf("failed to create patient: %w", err)
}

// GetByID returns a patient or a NotFound error.
func (s *PatientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	patient, err := s.store.PatientByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, fmt.Errorf("%w: patient %s", utils.ErrNotFound, id)
	}
	return patient, nil
}

// GetMedicalHistory returns the patient's medical history record.
func (s *PatientService) GetMedicalHistory(ctx context.Context, patientID string) (*models.MedicalHistory, error) {
	history, err := s.store.MedicalHistoryByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if history == nil {
		return nil, fmt.Errorf("%w: medical history for patient %s", utils.ErrNotFound, patientID)
	}
	return history, nil
}

// UpdateDemographics applies demographic changes to an existing patient,
// re-normalizing contact fields.
func (s *PatientService) UpdateDemographics(ctx context.Context, id string, input PatientInput) (*models.Patient, error) {
	patient, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patient.FirstName = strings.TrimSpace(input.FirstName)
	patient.LastName = strings.TrimSpace(input.LastName)
	patient.Email = utils.NormalizeEmail(input.Email)
	patient.Phone = utils.NormalizePhone(input.Phone)
	patient.DateOfBirth = utils.NormalizeDate(input.DateOfBirth)
	patient.Gender = utils.CoerceGender(input.Gender)
	patient.Address = input.Address
	patient.City = input.City
	patient.State = input.State
	patient.ZipCode = input.ZipCode
	if err := s.store.UpdatePatient(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

// identityLockKey builds a lock key from the normalized identity tuple so
// concurrent find-or-create calls for the same person contend on one lock.
func identityLockKey(hospitalID string, c LookupCriteria) string {
	dob := ""
	if c.DateOfBirth != nil {
		dob = utils.NormalizeDate(c.DateOfBirth).Format("2006-01-02")
	}
	return fmt.Sprintf("patient_identity_lock:%s:%s|%s|%s_%s_%s",
		hospitalID,
		utils.NormalizeEmail(c.Email),
		utils.NormalizePhone(c.Phone),
		strings.ToLower(strings.TrimSpace(c.FirstName)),
		strings.ToLower(strings.TrimSpace(c.LastName)),
		dob,
	)
}
