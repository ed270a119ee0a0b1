package services

import (
	"context"
	"testing"
	"time"

	"MediCoreHMS/models"
)

func seedLookupStore() *fakeStore {
	store := newFakeStore()
	store.addHospital("h1", "H1")
	store.addHospital("h2", "H2")
	store.addPatient(&models.Patient{
		ID: "p-email", HospitalID: "h1", MRN: "H1-A1",
		FirstName: "Jane", LastName: "Doe",
		Email: "jane.doe@example.com", Phone: "5551234567",
		DateOfBirth: datePtr(1985, time.March, 12), IsActive: true,
	})
	store.addPatient(&models.Patient{
		ID: "p-phone", HospitalID: "h1", MRN: "H1-A2",
		FirstName: "John", LastName: "Smith",
		Phone: "4155559876", IsActive: true,
	})
	store.addPatient(&models.Patient{
		ID: "p-namedob", HospitalID: "h1", MRN: "H1-A3",
		FirstName: "Maria", LastName: "Garcia",
		DateOfBirth: datePtr(1970, time.July, 4), IsActive: true,
	})
	store.addPatient(&models.Patient{
		ID: "p-inactive", HospitalID: "h1", MRN: "H1-A4",
		FirstName: "Jane", LastName: "Doe",
		Email: "merged@example.com", IsActive: false,
	})
	return store
}

func TestFindExistingPatientCascade(t *testing.T) {
	svc := NewPatientLookupService(seedLookupStore())
	ctx := context.Background()

	tests := []struct {
		name      string
		criteria  LookupCriteria
		wantID    string
		matchedBy string
	}{
		{
			name:      "email match with different casing and whitespace",
			criteria:  LookupCriteria{Email: "  Jane.Doe@Example.COM "},
			wantID:    "p-email",
			matchedBy: MatchedByEmail,
		},
		{
			name: "email outranks phone when both would match",
			criteria: LookupCriteria{
				Email: "jane.doe@example.com",
				Phone: "(415) 555-9876",
			},
			wantID:    "p-email",
			matchedBy: MatchedByEmail,
		},
		{
			name:      "phone match with formatting characters",
			criteria:  LookupCriteria{Phone: "+1 (415) 555-9876"},
			wantID:    "p-phone",
			matchedBy: MatchedByPhone,
		},
		{
			name: "name plus date of birth at a different time of day",
			criteria: LookupCriteria{
				FirstName:   "Maria",
				LastName:    "Garcia",
				DateOfBirth: timePtr(time.Date(1970, time.July, 4, 18, 30, 0, 0, time.UTC)),
			},
			wantID:    "p-namedob",
			matchedBy: MatchedByNameDOB,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.FindExistingPatient(ctx, "h1", tt.criteria)
			if err != nil {
				t.Fatalf("FindExistingPatient: %v", err)
			}
			if result == nil {
				t.Fatal("expected a match, got nil")
			}
			if result.Patient.ID != tt.wantID {
				t.Errorf("matched %s, want %s", result.Patient.ID, tt.wantID)
			}
			if result.MatchedBy != tt.matchedBy {
				t.Errorf("matched by %s, want %s", result.MatchedBy, tt.matchedBy)
			}
		})
	}
}

func TestFindExistingPatientMisses(t *testing.T) {
	svc := NewPatientLookupService(seedLookupStore())
	ctx := context.Background()

	tests := []struct {
		name     string
		hospital string
		criteria LookupCriteria
	}{
		{"no identity fields at all", "h1", LookupCriteria{}},
		{"unknown email", "h1", LookupCriteria{Email: "nobody@example.com"}},
		{"inactive patients are invisible", "h1", LookupCriteria{Email: "merged@example.com"}},
		{"other tenant", "h2", LookupCriteria{Email: "jane.doe@example.com"}},
		{
			"name without date of birth skips the third stage",
			"h1",
			LookupCriteria{FirstName: "Maria", LastName: "Garcia"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.FindExistingPatient(ctx, tt.hospital, tt.criteria)
			if err != nil {
				t.Fatalf("FindExistingPatient: %v", err)
			}
			if result != nil {
				t.Fatalf("expected no match, got %s", result.Patient.ID)
			}
		})
	}
}

func TestCalculateMatchScore(t *testing.T) {
	criteria := LookupCriteria{
		Email:       "jane.doe@example.com",
		Phone:       "4155551234",
		FirstName:   "Jane",
		LastName:    "Doe",
		DateOfBirth: datePtr(1985, time.March, 12),
	}

	tests := []struct {
		name      string
		candidate models.Patient
		want      int
	}{
		{
			name: "everything matches",
			candidate: models.Patient{
				Email: "jane.doe@example.com", Phone: "4155551234",
				FirstName: "Jane", LastName: "Doe",
				DateOfBirth: datePtr(1985, time.March, 12),
			},
			want: 40 + 35 + 15 + 15 + 20,
		},
		{
			name:      "same local part on a different domain",
			candidate: models.Patient{Email: "jane.doe@other.org"},
			want:      20,
		},
		{
			name:      "partial local part only",
			candidate: models.Patient{Email: "jane@other.org"},
			want:      10,
		},
		{
			name:      "last seven phone digits",
			candidate: models.Patient{Phone: "15105551234"},
			want:      20,
		},
		{
			name:      "partial first name and exact last name",
			candidate: models.Patient{FirstName: "Janet", LastName: "Doe"},
			want:      8 + 15,
		},
		{
			name:      "date of birth alone",
			candidate: models.Patient{DateOfBirth: datePtr(1985, time.March, 12)},
			want:      20,
		},
		{
			name:      "nothing in common",
			candidate: models.Patient{FirstName: "Bob", LastName: "Klein"},
			want:      0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, fields := calculateMatchScore(&tt.candidate, criteria)
			if score != tt.want {
				t.Errorf("score = %d, want %d (fields: %v)", score, tt.want, fields)
			}
			if score > 0 && len(fields) == 0 {
				t.Error("positive score must report matched fields")
			}
		})
	}
}

func TestFindPotentialDuplicates(t *testing.T) {
	store := newFakeStore()
	store.addHospital("h1", "H1")
	store.addPatient(&models.Patient{
		ID: "weak", HospitalID: "h1", MRN: "H1-B1",
		FirstName: "Jane", LastName: "Miller", IsActive: true,
	})
	store.addPatient(&models.Patient{
		ID: "strong", HospitalID: "h1", MRN: "H1-B2",
		FirstName: "Jane", LastName: "Doe",
		Email: "jane.doe@example.com", IsActive: true,
	})
	store.addPatient(&models.Patient{
		ID: "unrelated", HospitalID: "h1", MRN: "H1-B3",
		FirstName: "Carlos", LastName: "Ruiz", IsActive: true,
	})
	svc := NewPatientLookupService(store)

	criteria := LookupCriteria{Email: "jane.doe@example.com", FirstName: "Jane", LastName: "Doe"}
	duplicates, err := svc.FindPotentialDuplicates(context.Background(), "h1", criteria, 10)
	if err != nil {
		t.Fatalf("FindPotentialDuplicates: %v", err)
	}
	if len(duplicates) != 2 {
		t.Fatalf("got %d duplicates, want 2", len(duplicates))
	}
	if duplicates[0].Patient.ID != "strong" {
		t.Errorf("best candidate is %s, want strong", duplicates[0].Patient.ID)
	}
	for i := 1; i < len(duplicates); i++ {
		if duplicates[i].MatchScore > duplicates[i-1].MatchScore {
			t.Error("duplicates are not sorted by descending score")
		}
	}
}

func TestFindPotentialDuplicatesEmptyCriteria(t *testing.T) {
	svc := NewPatientLookupService(seedLookupStore())
	duplicates, err := svc.FindPotentialDuplicates(context.Background(), "h1", LookupCriteria{}, 10)
	if err != nil {
		t.Fatalf("FindPotentialDuplicates: %v", err)
	}
	if len(duplicates) != 0 {
		t.Fatalf("got %d duplicates for empty criteria, want 0", len(duplicates))
	}
}

func TestFindPotentialDuplicatesTruncates(t *testing.T) {
	store := newFakeStore()
	store.addHospital("h1", "H1")
	for i := 0; i < 6; i++ {
		store.addPatient(&models.Patient{
			ID: string(rune('a' + i)), HospitalID: "h1",
			MRN:       "H1-C" + string(rune('0'+i)),
			FirstName: "Sam", LastName: "Lee", IsActive: true,
		})
	}
	svc := NewPatientLookupService(store)

	duplicates, err := svc.FindPotentialDuplicates(context.Background(), "h1",
		LookupCriteria{FirstName: "Sam", LastName: "Lee"}, 3)
	if err != nil {
		t.Fatalf("FindPotentialDuplicates: %v", err)
	}
	if len(duplicates) != 3 {
		t.Fatalf("got %d duplicates, want limit 3", len(duplicates))
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
