package services

import (
	"context"
	"errors"
	"testing"

	"MediCoreHMS/models"
	"MediCoreHMS/utils"
)

func seedClaimStore() *fakeStore {
	store := newFakeStore()
	store.addHospital("h1", "H1")
	linkedUser := int64(7)
	store.addPatient(&models.Patient{
		ID: "open", HospitalID: "h1", MRN: "H1-C1",
		FirstName: "Rita", LastName: "Khan",
		Email: "rita.khan@example.com", Phone: "2025550147", IsActive: true,
	})
	store.addPatient(&models.Patient{
		ID: "linked", HospitalID: "h1", MRN: "H1-C2",
		FirstName: "Tom", LastName: "Bell",
		Email: "tom.bell@example.com", IsActive: true, UserID: &linkedUser,
	})
	store.users[7] = &models.User{ID: 7, Username: "tomb", Email: "tom.bell@example.com"}
	store.users[9] = &models.User{ID: 9, Username: "ritak", Email: "rita.khan@example.com"}
	return store
}

func TestCanClaimPatient(t *testing.T) {
	svc := NewClaimService(seedClaimStore())
	ctx := context.Background()

	tests := []struct {
		name      string
		patientID string
		email     string
		phone     string
		canClaim  bool
	}{
		{"email matches", "open", "Rita.Khan@Example.com", "", true},
		{"phone matches with formatting", "open", "", "(202) 555-0147", true},
		{"either identifier suffices", "open", "wrong@example.com", "2025550147", true},
		{"no identifiers", "open", "", "", false},
		{"neither matches", "open", "other@example.com", "9995550000", false},
		{"unknown patient", "ghost", "rita.khan@example.com", "", false},
		{"already linked", "linked", "tom.bell@example.com", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligibility, err := svc.CanClaimPatient(ctx, tt.patientID, tt.email, tt.phone)
			if err != nil {
				t.Fatalf("CanClaimPatient must not error on ineligibility: %v", err)
			}
			if eligibility.CanClaim != tt.canClaim {
				t.Errorf("CanClaim = %v (reason %q), want %v", eligibility.CanClaim, eligibility.Reason, tt.canClaim)
			}
			if !eligibility.CanClaim && eligibility.Reason == "" {
				t.Error("ineligible result must carry a reason")
			}
		})
	}
}

func TestLinkUserToPatient(t *testing.T) {
	store := seedClaimStore()
	svc := NewClaimService(store)
	ctx := context.Background()

	patient, err := svc.LinkUserToPatient(ctx, "open", 9)
	if err != nil {
		t.Fatalf("LinkUserToPatient: %v", err)
	}
	if patient.UserID == nil || *patient.UserID != 9 {
		t.Fatal("patient not linked to user 9")
	}

	stored := store.patientByID("open")
	if stored.UserID == nil || *stored.UserID != 9 {
		t.Fatal("link not persisted")
	}
}

func TestLinkUserToPatientErrors(t *testing.T) {
	tests := []struct {
		name      string
		patientID string
		userID    int64
		wantKind  error
	}{
		{"patient missing", "ghost", 9, utils.ErrNotFound},
		{"patient already linked", "linked", 9, utils.ErrConflict},
		{"user missing", "open", 42, utils.ErrNotFound},
		{"user already linked to another patient", "open", 7, utils.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewClaimService(seedClaimStore())
			_, err := svc.LinkUserToPatient(context.Background(), tt.patientID, tt.userID)
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("err = %v, want kind %v", err, tt.wantKind)
			}
		})
	}
}
