package services

import (
	"MediCoreHMS/models"
	"context"
	"fmt"
	"log"
	"strings"
)

// EmergencyIntake is what triage captures for a walk-in: whatever identity
// fields are available (often just a name) plus the chief complaint and an
// optional first set of vitals.
type EmergencyIntake struct {
	Patient        PatientInput
	ChiefComplaint string
	Vitals         *models.Vital
}

// EmergencyRegistration is the outcome of an ED arrival: the resolved (or
// newly created) patient and the opened admission.
type EmergencyRegistration struct {
	Patient     *models.Patient   `json:"patient"`
	IsExisting  bool              `json:"is_existing"`
	MatchedBy   string            `json:"matched_by,omitempty"`
	Admission   *models.Admission `json:"admission"`
	TriageLevel int               `json:"triage_level"`
}

// EmergencyService registers emergency-department arrivals: it resolves the
// patient identity with whatever fields triage captured, assigns an ESI level
// from the chief complaint, and opens an admission.
type EmergencyService struct {
	patients *PatientService
	records  RecordStore
}

func NewEmergencyService(patients *PatientService, records RecordStore) *EmergencyService {
	return &EmergencyService{patients: patients, records: records}
}

// triageKeywords maps chief-complaint keywords to ESI levels 1 (immediate)
// through 4 (less urgent). Unmatched complaints default to 3 until a nurse
// assessment overrides the level.
var triageKeywords = []struct {
	keyword string
	level   int
}{
	{"cardiac arrest", 1},
	{"not breathing", 1},
	{"unresponsive", 1},
	{"chest pain", 2},
	{"stroke", 2},
	{"severe bleeding", 2},
	{"difficulty breathing", 2},
	{"overdose", 2},
	{"fracture", 3},
	{"abdominal pain", 3},
	{"high fever", 3},
	{"laceration", 4},
	{"sprain", 4},
	{"rash", 4},
}

const defaultTriageLevel = 3

// TriageLevel derives an ESI level from the chief complaint text.
func TriageLevel(chiefComplaint string) int {
	complaint := strings.ToLower(chiefComplaint)
	for _, entry := range triageKeywords {
		if strings.Contains(complaint, entry.keyword) {
			return entry.level
		}
	}
	return defaultTriageLevel
}

// RegisterArrival resolves the patient identity and opens an ED admission
// with the triage level derived from the chief complaint. Initial vitals are
// recorded when triage captured them.
func (s *EmergencyService) RegisterArrival(ctx context.Context, hospitalID string, intake EmergencyIntake) (*EmergencyRegistration, error) {
	resolved, err := s.patients.FindOrCreatePatient(ctx, hospitalID, intake.Patient, models.SourceStaff)
	if err != nil {
		return nil, err
	}

	level := TriageLevel(intake.ChiefComplaint)
	admission := &models.Admission{
		PatientID:   resolved.Patient.ID,
		HospitalID:  hospitalID,
		Ward:        "ED",
		TriageLevel: level,
		Complaint:   intake.ChiefComplaint,
	}
	if err := s.records.CreateAdmission(ctx, admission); err != nil {
		return nil, fmt.Errorf("failed to open admission: %w", err)
	}

	if intake.Vitals != nil {
		intake.Vitals.PatientID = resolved.Patient.ID
		if err := s.records.CreateVital(ctx, intake.Vitals); err != nil {
			log.Printf("Failed to record initial vitals for patient %s: %v", resolved.Patient.ID, err)
		}
	}

	return &EmergencyRegistration{
		Patient:     resolved.Patient,
		IsExisting:  resolved.IsExisting,
		MatchedBy:   resolved.MatchedBy,
		Admission:   admission,
		TriageLevel: level,
	}, nil
}
