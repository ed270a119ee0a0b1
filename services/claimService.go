package services

import (
	"MediCoreHMS/models"
	"MediCoreHMS/utils"
	"context"
	"fmt"
	"log"
)

// ClaimEligibility is the always-returned answer of the claim gate.
// Ineligibility is reported through CanClaim/Reason, never as an error.
type ClaimEligibility struct {
	CanClaim bool            `json:"can_claim"`
	Reason   string          `json:"reason,omitempty"`
	Patient  *models.Patient `json:"patient,omitempty"`
}

// ClaimService lets a portal user attach their account to a pre-existing,
// unlinked patient record after identity-field verification.
type ClaimService struct {
	store PatientStore
}

func NewClaimService(store PatientStore) *ClaimService {
	return &ClaimService{store: store}
}

// CanClaimPatient checks whether the patient record may be claimed by someone
// presenting the given email and/or phone. Fails closed: no identifier, no
// patient, or an existing link all make the record unclaimable. Either a
// normalized-email or a normalized-phone match is sufficient.
func (s *ClaimService) CanClaimPatient(ctx context.Context, patientID, email, phone string) (*ClaimEligibility, error) {
	normalizedEmail := utils.NormalizeEmail(email)
	normalizedPhone := utils.NormalizePhone(phone)
	if normalizedEmail == "" && normalizedPhone == "" {
		return &ClaimEligibility{CanClaim: false, Reason: "email or phone is required to verify identity"}, nil
	}

	patient, err := s.store.PatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return &ClaimEligibility{CanClaim: false, Reason: "patient record not found"}, nil
	}
	if patient.UserID != nil {
		return &ClaimEligibility{CanClaim: false, Reason: "patient record is already linked to an account", Patient: patient}, nil
	}

	emailMatches := normalizedEmail != "" && utils.NormalizeEmail(patient.Email) == normalizedEmail
	phoneMatches := normalizedPhone != "" && utils.NormalizePhone(patient.Phone) == normalizedPhone
	if !emailMatches && !phoneMatches {
		return &ClaimEligibility{CanClaim: false, Reason: "identity fields do not match the patient record", Patient: patient}, nil
	}

	return &ClaimEligibility{CanClaim: true, Patient: patient}, nil
}

// LinkUserToPatient performs the actual link once eligibility has been
// confirmed, re-validating every precondition: the patient exists and is
// unlinked, the user exists, and the user is not linked to another patient.
func (s *ClaimService) LinkUserToPatient(ctx context.Context, patientID string, userID int64) (*models.Patient, error) {
	patient, err := s.store.PatientByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, fmt.Errorf("%w: patient %s", utils.ErrNotFound, patientID)
	}
	if patient.UserID != nil {
		return nil, fmt.Errorf("%w: patient %s is already linked to an account", utils.ErrConflict, patientID)
	}

	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", utils.ErrNotFound, userID)
	}

	existing, err := s.store.PatientByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user %d is already linked to patient %s", utils.ErrConflict, userID, existing.ID)
	}

	patient.UserID = &userID
	if err := s.store.UpdatePatient(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to link user to patient: %w", err)
	}
	log.Printf("Linked user %d to patient %s", userID, patientID)
	return patient, nil
}
