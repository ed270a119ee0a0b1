package services

import (
	"MediCoreHMS/models"
	"context"
	"time"
)

// PatientStore is the persistence surface the identity services depend on.
// Implementations return (nil, nil) when a lookup finds nothing; absence is a
// normal outcome, not an error. Every method is tenant-filtered where a
// hospital id is supplied. The gorm-backed implementation lives in the
// repositories package; tests substitute an in-memory fake.
type PatientStore interface {
	HospitalByID(ctx context.Context, id string) (*models.Hospital, error)

	PatientByID(ctx context.Context, id string) (*models.Patient, error)
	ActivePatientByEmail(ctx context.Context, hospitalID, email string) (*models.Patient, error)
	ActivePatientsWithPhone(ctx context.Context, hospitalID string) ([]models.Patient, error)
	ActivePatientByNameDOB(ctx context.Context, hospitalID, firstName, lastName string, dayStart, dayEnd time.Time) (*models.Patient, error)
	SearchDuplicateCandidates(ctx context.Context, hospitalID string, q DuplicateQuery, limit int) ([]models.Patient, error)

	CreatePatientWithHistory(ctx context.Context, patient *models.Patient) error
	UpdatePatient(ctx context.Context, patient *models.Patient) error
	DeleteMedicalHistory(ctx context.Context, patientID string) error
	MedicalHistoryByPatientID(ctx context.Context, patientID string) (*models.MedicalHistory, error)
	ReassignOwnedRecords(ctx context.Context, record models.OwnedRecord, fromPatientID, toPatientID string) (int64, error)

	UserByID(ctx context.Context, userID int64) (*models.User, error)
	PatientByUserID(ctx context.Context, userID int64) (*models.Patient, error)

	// Transaction runs fn against a transactional view of the store. fn
	// returning an error rolls back every write made through tx.
	Transaction(ctx context.Context, fn func(tx PatientStore) error) error
}

// DuplicateQuery carries the pre-normalized disjunction terms for the loose
// candidate search backing duplicate review. Empty fields are skipped.
type DuplicateQuery struct {
	Email          string // normalized, exact
	EmailLocalPart string // local part before '@'
	PhoneSuffix    string // last 7 digits, only set when the phone has >= 7
	FirstName      string // lowercased
	LastName       string // lowercased
}

// IsEmpty reports whether no search term is present.
func (q DuplicateQuery) IsEmpty() bool {
	return q.Email == "" && q.EmailLocalPart == "" && q.PhoneSuffix == "" &&
		q.FirstName == "" && q.LastName == ""
}

// RecordStore covers the dependent clinical records the emergency intake flow
// writes directly.
type RecordStore interface {
	CreateAdmission(ctx context.Context, admission *models.Admission) error
	CreateVital(ctx context.Context, vital *models.Vital) error
	CountOwnedRecords(ctx context.Context, record models.OwnedRecord, patientID string) (int64, error)
}

// Locker is a distributed advisory lock, held for the duration of a
// read-then-write sequence. Backed by Redis SetNX in production.
type Locker interface {
	Acquire(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key, value string) error
}
