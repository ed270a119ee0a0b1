package models

import (
	"time"
)

// Gender values accepted by the patient table check constraint.
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

// Creation-source tags record where a patient row originated. Carried for
// audit logging only; the source never changes matching or creation behavior.
const (
	SourcePortal  = "PORTAL"
	SourceBooking = "BOOKING"
	SourceStaff   = "STAFF"
)

// Patient is the tenant-scoped identity record. Email and Phone are stored
// already normalized (lowercase/trimmed and digits-only respectively).
// IsActive=false marks a record merged away; inactive patients are excluded
// from matching and duplicate search. UserID links at most one portal account
// and is unique in both directions.
type Patient struct {
	ID               string     `gorm:"primaryKey;column:id" json:"id"`
	HospitalID       string     `gorm:"column:hospital_id;not null;index" json:"hospital_id"`
	MRN              string     `gorm:"column:mrn;not null;uniqueIndex" json:"mrn"`
	FirstName        string     `gorm:"column:first_name;not null" json:"first_name"`
	LastName         string     `gorm:"column:last_name;not null;index" json:"last_name"`
	Email            string     `gorm:"column:email;index" json:"email"`
	Phone            string     `gorm:"column:phone;index" json:"phone"`
	DateOfBirth      *time.Time `gorm:"column:date_of_birth;type:date;index" json:"date_of_birth"`
	Gender           string     `gorm:"column:gender;check:gender IN ('MALE', 'FEMALE', 'OTHER');not null;default:'OTHER'" json:"gender"`
	Address          string     `gorm:"column:address" json:"address"`
	City             string     `gorm:"column:city" json:"city"`
	State            string     `gorm:"column:state" json:"state"`
	ZipCode          string     `gorm:"column:zip_code" json:"zip_code"`
	EmergencyContact string     `gorm:"column:emergency_contact" json:"emergency_contact"`
	CreationSource   string     `gorm:"column:creation_source" json:"creation_source"`
	IsActive         bool       `gorm:"column:is_active;not null;default:true;index" json:"is_active"`
	UserID           *int64     `gorm:"column:user_id;uniqueIndex" json:"user_id"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	MedicalHistory *MedicalHistory `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}

// MedicalHistory is one-to-one with Patient and is created empty alongside the
// patient row. When a patient is merged away its history is deleted; the
// surviving patient's history is left untouched.
type MedicalHistory struct {
	ID                string    `gorm:"primaryKey;column:id" json:"id"`
	PatientID         string    `gorm:"column:patient_id;not null;uniqueIndex" json:"patient_id"`
	ChronicConditions string    `gorm:"column:chronic_conditions;type:jsonb;not null;default:'[]'" json:"chronic_conditions"`
	PastSurgeries     string    `gorm:"column:past_surgeries;type:jsonb;not null;default:'[]'" json:"past_surgeries"`
	FamilyHistory     string    `gorm:"column:family_history;type:jsonb;not null;default:'[]'" json:"family_history"`
	Medications       string    `gorm:"column:medications;type:jsonb;not null;default:'[]'" json:"medications"`
	Immunizations     string    `gorm:"column:immunizations;type:jsonb;not null;default:'[]'" json:"immunizations"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (MedicalHistory) TableName() string {
	return "medical_history"
}

// Appointment model
type Appointment struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID  string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	HospitalID string    `gorm:"column:hospital_id;not null;index" json:"hospital_id"`
	DoctorName string    `gorm:"column:doctor_name" json:"doctor_name"`
	DateTime   time.Time `gorm:"column:date_time;not null;index" json:"date_time"`
	Status     string    `gorm:"column:status;check:status IN ('scheduled', 'fulfilled', 'cancelled');not null;default:'scheduled'" json:"status"`
	Notes      string    `gorm:"column:notes" json:"notes"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// Prescription model
type Prescription struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID  string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Medication string    `gorm:"column:medication;not null" json:"medication"`
	Dosage     string    `gorm:"column:dosage" json:"dosage"`
	Frequency  string    `gorm:"column:frequency" json:"frequency"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Prescription) TableName() string {
	return "prescription"
}

// LabOrder model
type LabOrder struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	TestName  string    `gorm:"column:test_name;not null" json:"test_name"`
	Status    string    `gorm:"column:status;not null;default:'ordered'" json:"status"`
	Result    string    `gorm:"column:result" json:"result"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (LabOrder) TableName() string {
	return "lab_order"
}

// ImagingOrder model
type ImagingOrder struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Modality  string    `gorm:"column:modality;not null" json:"modality"`
	BodyPart  string    `gorm:"column:body_part" json:"body_part"`
	Status    string    `gorm:"column:status;not null;default:'ordered'" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ImagingOrder) TableName() string {
	return "imaging_order"
}

// Admission model
type Admission struct {
	ID           uint       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID    string     `gorm:"column:patient_id;not null;index" json:"patient_id"`
	HospitalID   string     `gorm:"column:hospital_id;not null;index" json:"hospital_id"`
	Ward         string     `gorm:"column:ward" json:"ward"`
	Bed          string     `gorm:"column:bed" json:"bed"`
	TriageLevel  int        `gorm:"column:triage_level" json:"triage_level"`
	Complaint    string     `gorm:"column:complaint" json:"complaint"`
	AdmittedAt   time.Time  `gorm:"column:admitted_at;autoCreateTime" json:"admitted_at"`
	DischargedAt *time.Time `gorm:"column:discharged_at" json:"discharged_at"`
}

func (Admission) TableName() string {
	return "admission"
}

// Consultation model
type Consultation struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Specialty string    `gorm:"column:specialty" json:"specialty"`
	Summary   string    `gorm:"column:summary" json:"summary"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Consultation) TableName() string {
	return "consultation"
}

// Vital model
type Vital struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID   string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	HeartRate   int       `gorm:"column:heart_rate" json:"heart_rate"`
	Systolic    int       `gorm:"column:systolic" json:"systolic"`
	Diastolic   int       `gorm:"column:diastolic" json:"diastolic"`
	Temperature float64   `gorm:"column:temperature" json:"temperature"`
	SpO2        int       `gorm:"column:spo2" json:"spo2"`
	RecordedAt  time.Time `gorm:"column:recorded_at;autoCreateTime" json:"recorded_at"`
}

func (Vital) TableName() string {
	return "vital"
}

// Invoice model
type Invoice struct {
	ID          string    `gorm:"primaryKey;column:id" json:"id"`
	PatientID   string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Amount      float64   `gorm:"column:amount;not null" json:"amount"`
	CopayAmount float64   `gorm:"column:copay_amount" json:"copay_amount"`
	Status      string    `gorm:"column:status;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Invoice) TableName() string {
	return "invoice"
}

// Allergy model
type Allergy struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Allergen  string    `gorm:"column:allergen;not null" json:"allergen"`
	Severity  string    `gorm:"column:severity" json:"severity"`
	Reaction  string    `gorm:"column:reaction" json:"reaction"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Allergy) TableName() string {
	return "allergy"
}

// PatientInsurance model
type PatientInsurance struct {
	ID           uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID    string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Provider     string    `gorm:"column:provider;not null" json:"provider"`
	PolicyNumber string    `gorm:"column:policy_number" json:"policy_number"`
	GroupNumber  string    `gorm:"column:group_number" json:"group_number"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PatientInsurance) TableName() string {
	return "patient_insurance"
}

// AIPrediction model
type AIPrediction struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID  string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Model      string    `gorm:"column:model" json:"model"`
	Prediction string    `gorm:"column:prediction" json:"prediction"`
	Confidence float64   `gorm:"column:confidence" json:"confidence"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AIPrediction) TableName() string {
	return "ai_prediction"
}

// AIDiagnosis model
type AIDiagnosis struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	ICD10Code string    `gorm:"column:icd10_code" json:"icd10_code"`
	Summary   string    `gorm:"column:summary" json:"summary"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AIDiagnosis) TableName() string {
	return "ai_diagnosis"
}

// SmartOrder model
type SmartOrder struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	OrderType string    `gorm:"column:order_type" json:"order_type"`
	Payload   string    `gorm:"column:payload;type:jsonb;not null;default:'{}'" json:"payload"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (SmartOrder) TableName() string {
	return "smart_order"
}

// ClinicalNote model
type ClinicalNote struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Author    string    `gorm:"column:author" json:"author"`
	Body      string    `gorm:"column:body;not null" json:"body"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ClinicalNote) TableName() string {
	return "clinical_note"
}

// ScribeSession model
type ScribeSession struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID  string    `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Transcript string    `gorm:"column:transcript" json:"transcript"`
	Status     string    `gorm:"column:status;not null;default:'recording'" json:"status"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ScribeSession) TableName() string {
	return "scribe_session"
}

// OwnedRecord names a dependent record type whose ownership is reassignable.
// The merge orchestrator is the only component permitted to bulk-reassign
// these from one patient to another.
type OwnedRecord string

const (
	RecordAppointments   OwnedRecord = "appointments"
	RecordPrescriptions  OwnedRecord = "prescriptions"
	RecordLabOrders      OwnedRecord = "lab_orders"
	RecordImagingOrders  OwnedRecord = "imaging_orders"
	RecordAdmissions     OwnedRecord = "admissions"
	RecordConsultations  OwnedRecord = "consultations"
	RecordVitals         OwnedRecord = "vitals"
	RecordInvoices       OwnedRecord = "invoices"
	RecordAllergies      OwnedRecord = "allergies"
	RecordInsurances     OwnedRecord = "insurances"
	RecordAIPredictions  OwnedRecord = "ai_predictions"
	RecordAIDiagnoses    OwnedRecord = "ai_diagnoses"
	RecordSmartOrders    OwnedRecord = "smart_orders"
	RecordClinicalNotes  OwnedRecord = "clinical_notes"
	RecordScribeSessions OwnedRecord = "scribe_sessions"
)

// CountedMergeRecords are the clinical/financial types whose migration counts
// are reported back to the caller of a merge, in reporting order.
var CountedMergeRecords = []OwnedRecord{
	RecordAppointments,
	RecordPrescriptions,
	RecordLabOrders,
	RecordImagingOrders,
	RecordAdmissions,
	RecordConsultations,
	RecordVitals,
	RecordInvoices,
}

// UncountedMergeRecords are reassigned during a merge without appearing in
// the result summary.
var UncountedMergeRecords = []OwnedRecord{
	RecordAllergies,
	RecordInsurances,
	RecordAIPredictions,
	RecordAIDiagnoses,
	RecordSmartOrders,
	RecordClinicalNotes,
	RecordScribeSessions,
}
