package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"MediCoreHMS/models"
	"MediCoreHMS/utils"
)

func seedMergeStore() *fakeStore {
	store := newFakeStore()
	store.addHospital("h1", "H1")
	store.addHospital("h2", "H2")
	store.addPatient(&models.Patient{
		ID: "primary", HospitalID: "h1", MRN: "H1-P1",
		FirstName: "Ana", LastName: "Silva", IsActive: true,
	})
	store.addPatient(&models.Patient{
		ID: "duplicate", HospitalID: "h1", MRN: "H1-P2",
		FirstName: "Anna", LastName: "Silva", IsActive: true,
		EmergencyContact: "sister: 555-0100",
	})
	store.addPatient(&models.Patient{
		ID: "other-tenant", HospitalID: "h2", MRN: "H2-P1",
		FirstName: "Ana", LastName: "Silva", IsActive: true,
	})
	store.addPatient(&models.Patient{
		ID: "already-merged", HospitalID: "h1", MRN: "H1-P3",
		FirstName: "Ana", LastName: "Silva", IsActive: false,
	})
	store.addOwned(models.RecordAppointments, "duplicate", 3)
	store.addOwned(models.RecordInvoices, "duplicate", 2)
	store.addOwned(models.RecordAllergies, "duplicate", 1)
	return store
}

func newMergeService(store *fakeStore) *MergeService {
	return NewMergeService(store, &fakeRecordStore{backing: store})
}

func TestMergePatientRecords(t *testing.T) {
	store := seedMergeStore()
	svc := newMergeService(store)

	result, err := svc.MergePatientRecords(context.Background(), "primary", "duplicate")
	if err != nil {
		t.Fatalf("MergePatientRecords: %v", err)
	}
	if !result.Success {
		t.Error("result not marked successful")
	}
	if result.PrimaryPatient == nil || result.PrimaryPatient.ID != "primary" {
		t.Fatal("primary patient not returned")
	}

	if got := result.MergedRecords["appointments"]; got != 3 {
		t.Errorf("appointments count = %d, want 3", got)
	}
	if got := result.MergedRecords["invoices"]; got != 2 {
		t.Errorf("invoices count = %d, want 2", got)
	}
	if len(result.MergedRecords) != len(models.CountedMergeRecords) {
		t.Errorf("summary has %d entries, want one per counted type (%d)",
			len(result.MergedRecords), len(models.CountedMergeRecords))
	}
	if _, ok := result.MergedRecords["allergies"]; ok {
		t.Error("uncounted record types must not appear in the summary")
	}

	// Uncounted types still move.
	if n := store.owned[models.RecordAllergies]["primary"]; n != 1 {
		t.Errorf("allergies on primary = %d, want 1", n)
	}

	duplicate := store.patientByID("duplicate")
	if duplicate.IsActive {
		t.Error("duplicate still active after merge")
	}
	if !strings.Contains(duplicate.EmergencyContact, "[MERGED INTO primary]") {
		t.Errorf("merge marker missing: %q", duplicate.EmergencyContact)
	}
	if !strings.HasPrefix(duplicate.EmergencyContact, "sister: 555-0100") {
		t.Errorf("existing emergency contact text lost: %q", duplicate.EmergencyContact)
	}

	if history, _ := store.MedicalHistoryByPatientID(context.Background(), "duplicate"); history != nil {
		t.Error("duplicate medical history not deleted")
	}
	if history, _ := store.MedicalHistoryByPatientID(context.Background(), "primary"); history == nil {
		t.Error("primary medical history must survive")
	}
}

func TestPreviewMerge(t *testing.T) {
	store := seedMergeStore()
	svc := newMergeService(store)

	preview, err := svc.PreviewMerge(context.Background(), "primary", "duplicate")
	if err != nil {
		t.Fatalf("PreviewMerge: %v", err)
	}
	if preview.RecordCounts["appointments"] != 3 || preview.RecordCounts["invoices"] != 2 {
		t.Errorf("counts = %v, want appointments=3 invoices=2", preview.RecordCounts)
	}

	// Preview must not mutate anything.
	if n := store.owned[models.RecordAppointments]["duplicate"]; n != 3 {
		t.Error("preview moved records")
	}
	if duplicate := store.patientByID("duplicate"); !duplicate.IsActive {
		t.Error("preview deactivated the duplicate")
	}

	if _, err := svc.PreviewMerge(context.Background(), "primary", "already-merged"); !errors.Is(err, utils.ErrConflict) {
		t.Errorf("preview of merged duplicate: err = %v, want ErrConflict", err)
	}
}

func TestMergePatientRecordsPreconditions(t *testing.T) {
	tests := []struct {
		name      string
		primary   string
		duplicate string
		wantKind  error
	}{
		{"self merge", "primary", "primary", utils.ErrValidation},
		{"primary missing", "ghost", "duplicate", utils.ErrNotFound},
		{"duplicate missing", "primary", "ghost", utils.ErrNotFound},
		{"cross tenant", "primary", "other-tenant", utils.ErrValidation},
		{"duplicate already merged", "primary", "already-merged", utils.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMergeService(seedMergeStore())
			_, err := svc.MergePatientRecords(context.Background(), tt.primary, tt.duplicate)
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("err = %v, want kind %v", err, tt.wantKind)
			}
		})
	}
}

func TestMergePatientRecordsRollsBackOnFailure(t *testing.T) {
	store := seedMergeStore()
	store.failReassign = models.RecordInvoices
	svc := newMergeService(store)

	_, err := svc.MergePatientRecords(context.Background(), "primary", "duplicate")
	if err == nil {
		t.Fatal("expected merge to fail")
	}

	// Nothing may have moved and the duplicate must remain active.
	if n := store.owned[models.RecordAppointments]["duplicate"]; n != 3 {
		t.Errorf("appointments on duplicate = %d after rollback, want 3", n)
	}
	if duplicate := store.patientByID("duplicate"); !duplicate.IsActive {
		t.Error("duplicate deactivated despite rollback")
	}
	if history, _ := store.MedicalHistoryByPatientID(context.Background(), "duplicate"); history == nil {
		t.Error("duplicate medical history deleted despite rollback")
	}
}

func TestMergeIsIdempotentOnSecondAttempt(t *testing.T) {
	store := seedMergeStore()
	svc := newMergeService(store)
	ctx := context.Background()

	if _, err := svc.MergePatientRecords(ctx, "primary", "duplicate"); err != nil {
		t.Fatalf("first merge: %v", err)
	}
	_, err := svc.MergePatientRecords(ctx, "primary", "duplicate")
	if !errors.Is(err, utils.ErrConflict) {
		t.Fatalf("second merge err = %v, want ErrConflict", err)
	}
}

func TestAppendMergeMarker(t *testing.T) {
	if got := appendMergeMarker("", "p1"); got != "[MERGED INTO p1]" {
		t.Errorf("empty contact: %q", got)
	}
	if got := appendMergeMarker("mom 555", "p1"); got != "mom 555 [MERGED INTO p1]" {
		t.Errorf("existing contact: %q", got)
	}
}
