package utils

import (
	"testing"
	"time"

	"MediCoreHMS/models"
)

func TestValidatePatientIntake(t *testing.T) {
	tests := []struct {
		name        string
		firstName   string
		lastName    string
		email       string
		phone       string
		gender      string
		dateOfBirth string
		wantErr     bool
	}{
		{"names only", "Jane", "Doe", "", "", "", "", false},
		{"all fields valid", "Jane", "Doe", "jane@example.com", "555-123-4567", "female", "1985-03-12", false},
		{"short gender forms accepted", "Jane", "Doe", "", "", "m", "", false},
		{"missing first name", "", "Doe", "", "", "", "", true},
		{"missing last name", "Jane", "", "", "", "", "", true},
		{"malformed email", "Jane", "Doe", "not-an-email", "", "", "", true},
		{"unknown gender rejected", "Jane", "Doe", "", "", "attack-helicopter", "", true},
		{"malformed date of birth", "Jane", "Doe", "", "", "", "12/03/1985", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePatientIntake(tt.firstName, tt.lastName, tt.email, tt.phone, tt.gender, tt.dateOfBirth)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCoerceGender(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"male", models.GenderMale},
		{"M", models.GenderMale},
		{" Female ", models.GenderFemale},
		{"f", models.GenderFemale},
		{"other", models.GenderOther},
		{"", models.GenderOther},
		{"unknown", models.GenderOther},
	}
	for _, tt := range tests {
		if got := CoerceGender(tt.in); got != tt.want {
			t.Errorf("CoerceGender(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDateOfBirth(t *testing.T) {
	got, err := ParseDateOfBirth("1985-03-12")
	if err != nil {
		t.Fatalf("ParseDateOfBirth: %v", err)
	}
	want := time.Date(1985, time.March, 12, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parsed %v, want %v", got, want)
	}

	if got, err := ParseDateOfBirth("  "); err != nil || got != nil {
		t.Errorf("blank input: got (%v, %v), want (nil, nil)", got, err)
	}

	if _, err := ParseDateOfBirth("03/12/1985"); err == nil {
		t.Error("expected error for wrong layout")
	}
}
