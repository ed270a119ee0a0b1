package services

import (
	"MediCoreHMS/models"
	"MediCoreHMS/utils"
	"context"
	"fmt"
	"log"
	"strings"
)

// MergeResult summarizes a completed merge: the surviving patient re-fetched
// after the transaction, plus row counts for the migrated clinical and
// financial record types.
type MergeResult struct {
	Success        bool             `json:"success"`
	PrimaryPatient *models.Patient  `json:"primary_patient"`
	MergedRecords  map[string]int64 `json:"merged_records"`
}

// MergePreview reports, without mutating anything, how many rows of each
// counted record type a merge would move off the duplicate.
type MergePreview struct {
	PrimaryPatient   *models.Patient  `json:"primary_patient"`
	DuplicatePatient *models.Patient  `json:"duplicate_patient"`
	RecordCounts     map[string]int64 `json:"record_counts"`
}

// MergeService consolidates two patient identities. It is the only component
// permitted to bulk-reassign ownership of dependent records.
type MergeService struct {
	store   PatientStore
	records RecordStore
}

func NewMergeService(store PatientStore, records RecordStore) *MergeService {
	return &MergeService{store: store, records: records}
}

// validateMergePair loads both patients and checks every merge precondition:
// distinct ids, both present, same tenant, duplicate still active.
func (s *MergeService) validateMergePair(ctx context.Context, primaryID, duplicateID string) (*models.Patient, *models.Patient, error) {
	if primaryID == duplicateID {
		return nil, nil, fmt.Errorf("%w: cannot merge a patient record into itself", utils.ErrValidation)
	}

	primary, err := s.store.PatientByID(ctx, primaryID)
	if err != nil {
		return nil, nil, err
	}
	if primary == nil {
		return nil, nil, fmt.Errorf("%w: primary patient %s", utils.ErrNotFound, primaryID)
	}

	duplicate, err := s.store.PatientByID(ctx, duplicateID)
	if err != nil {
		return nil, nil, err
	}
	if duplicate == nil {
		return nil, nil, fmt.Errorf("%w: duplicate patient %s", utils.ErrNotFound, duplicateID)
	}

	if primary.HospitalID != duplicate.HospitalID {
		return nil, nil, fmt.Errorf("%w: patients belong to different hospitals", utils.ErrValidation)
	}
	if !duplicate.IsActive {
		return nil, nil, fmt.Errorf("%w: duplicate patient %s is already inactive/merged", utils.ErrConflict, duplicateID)
	}
	return primary, duplicate, nil
}

// PreviewMerge runs the merge preconditions and counts the duplicate's rows
// per counted record type, so a reviewer can see what a merge would move
// before committing to it.
func (s *MergeService) PreviewMerge(ctx context.Context, primaryID, duplicateID string) (*MergePreview, error) {
	primary, duplicate, err := s.validateMergePair(ctx, primaryID, duplicateID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(models.CountedMergeRecords))
	for _, record := range models.CountedMergeRecords {
		n, err := s.records.CountOwnedRecords(ctx, record, duplicateID)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", record, err)
		}
		counts[string(record)] = n
	}
	return &MergePreview{PrimaryPatient: primary, DuplicatePatient: duplicate, RecordCounts: counts}, nil
}

// MergePatientRecords reassigns every dependent record from the duplicate to
// the primary, deletes the duplicate's medical history, and deactivates the
// duplicate, all inside a single transaction. A failure at any step rolls
// back every write: the duplicate must never end up deactivated with
// unmigrated records, or migrated with the deactivation lost.
func (s *MergeService) MergePatientRecords(ctx context.Context, primaryID, duplicateID string) (*MergeResult, error) {
	_, duplicate, err := s.validateMergePair(ctx, primaryID, duplicateID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(models.CountedMergeRecords))
	err = s.store.Transaction(ctx, func(tx PatientStore) error {
		for _, record := range models.CountedMergeRecords {
			n, err := tx.ReassignOwnedRecords(ctx, record, duplicateID, primaryID)
			if err != nil {
				return fmt.Errorf("failed to reassign %s: %w", record, err)
			}
			counts[string(record)] = n
		}
		for _, record := range models.UncountedMergeRecords {
			if _, err := tx.ReassignOwnedRecords(ctx, record, duplicateID, primaryID); err != nil {
				return fmt.Errorf("failed to reassign %s: %w", record, err)
			}
		}

		// The primary's history is authoritative; the duplicate's is discarded.
		if err := tx.DeleteMedicalHistory(ctx, duplicateID); err != nil {
			return fmt.Errorf("failed to delete duplicate medical history: %w", err)
		}

		duplicate.IsActive = false
		duplicate.EmergencyContact = appendMergeMarker(duplicate.EmergencyContact, primaryID)
		if err := tx.UpdatePatient(ctx, duplicate); err != nil {
			return fmt.Errorf("failed to deactivate duplicate: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	refreshed, err := s.store.PatientByID(ctx, primaryID)
	if err != nil {
		return nil, err
	}
	log.Printf("Merged patient %s into %s (%v)", duplicateID, primaryID, counts)
	return &MergeResult{Success: true, PrimaryPatient: refreshed, MergedRecords: counts}, nil
}

// appendMergeMarker leaves a lightweight audit breadcrumb on the deactivated
// record's emergency-contact free-text field.
func appendMergeMarker(existing, primaryID string) string {
	marker := fmt.Sprintf("[MERGED INTO %s]", primaryID)
	if strings.TrimSpace(existing) == "" {
		return marker
	}
	return existing + " " + marker
}
