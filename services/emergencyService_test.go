package services

import (
	"context"
	"errors"
	"testing"

	"MediCoreHMS/models"
)

func TestTriageLevel(t *testing.T) {
	tests := []struct {
		complaint string
		want      int
	}{
		{"found unresponsive at home", 1},
		{"CARDIAC ARREST", 1},
		{"crushing chest pain radiating to arm", 2},
		{"possible stroke, slurred speech", 2},
		{"suspected wrist fracture", 3},
		{"deep laceration on forearm", 4},
		{"feeling generally unwell", 3},
		{"", 3},
	}
	for _, tt := range tests {
		if got := TriageLevel(tt.complaint); got != tt.want {
			t.Errorf("TriageLevel(%q) = %d, want %d", tt.complaint, got, tt.want)
		}
	}
}

func TestRegisterArrival(t *testing.T) {
	store := newFakeStore()
	store.addHospital("h1", "GH")
	records := &fakeRecordStore{}
	svc := NewEmergencyService(newPatientService(store), records)

	registration, err := svc.RegisterArrival(context.Background(), "h1", EmergencyIntake{
		Patient:        PatientInput{FirstName: "Walkin", LastName: "Jones"},
		ChiefComplaint: "severe bleeding from leg wound",
		Vitals:         &models.Vital{HeartRate: 122, Systolic: 90, Diastolic: 60},
	})
	if err != nil {
		t.Fatalf("RegisterArrival: %v", err)
	}

	if registration.TriageLevel != 2 {
		t.Errorf("triage level = %d, want 2", registration.TriageLevel)
	}
	if registration.IsExisting {
		t.Error("walk-in with no prior record must be created")
	}
	if len(records.admissions) != 1 {
		t.Fatalf("got %d admissions, want 1", len(records.admissions))
	}
	admission := records.admissions[0]
	if admission.Ward != "ED" {
		t.Errorf("ward = %q, want ED", admission.Ward)
	}
	if admission.PatientID != registration.Patient.ID {
		t.Error("admission not attached to the resolved patient")
	}
	if len(records.vitals) != 1 || records.vitals[0].PatientID != registration.Patient.ID {
		t.Error("initial vitals not recorded against the patient")
	}
}

func TestRegisterArrivalMatchesReturningPatient(t *testing.T) {
	store := newFakeStore()
	store.addHospital("h1", "GH")
	store.addPatient(&models.Patient{
		ID: "known", HospitalID: "h1", MRN: "GH-K1",
		FirstName: "Nora", LastName: "Pratt",
		Phone: "6175550123", IsActive: true,
	})
	records := &fakeRecordStore{}
	svc := NewEmergencyService(newPatientService(store), records)

	registration, err := svc.RegisterArrival(context.Background(), "h1", EmergencyIntake{
		Patient:        PatientInput{FirstName: "Nora", LastName: "Pratt", Phone: "(617) 555-0123"},
		ChiefComplaint: "abdominal pain",
	})
	if err != nil {
		t.Fatalf("RegisterArrival: %v", err)
	}
	if !registration.IsExisting || registration.Patient.ID != "known" {
		t.Error("returning patient not matched")
	}
	if registration.MatchedBy != MatchedByPhone {
		t.Errorf("matched by %q, want phone", registration.MatchedBy)
	}
}

func TestRegisterArrivalVitalFailureIsNonFatal(t *testing.T) {
	store := newFakeStore()
	store.addHospital("h1", "GH")
	records := &fakeRecordStore{vitalErr: errors.New("vitals store down")}
	svc := NewEmergencyService(newPatientService(store), records)

	registration, err := svc.RegisterArrival(context.Background(), "h1", EmergencyIntake{
		Patient:        PatientInput{FirstName: "Omar", LastName: "Diaz"},
		ChiefComplaint: "sprain",
		Vitals:         &models.Vital{HeartRate: 80},
	})
	if err != nil {
		t.Fatalf("vital failure must not fail registration: %v", err)
	}
	if len(records.admissions) != 1 {
		t.Error("admission missing")
	}
	if registration.TriageLevel != 4 {
		t.Errorf("triage level = %d, want 4", registration.TriageLevel)
	}
}
