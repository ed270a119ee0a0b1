package services

import (
	"MediCoreHMS/models"
	"MediCoreHMS/utils"
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

// fakeStore is an in-memory PatientStore. Patients are held in insertion
// order so oldest-first lookup semantics can be asserted. Transaction clones
// the state and commits only when fn succeeds, mirroring rollback behavior.
type fakeStore struct {
	hospitals map[string]*models.Hospital
	patients  []*models.Patient
	histories map[string]*models.MedicalHistory
	users     map[int64]*models.User
	owned     map[models.OwnedRecord]map[string]int64

	createErrs   []error           // consumed one per CreatePatientWithHistory call
	failReassign models.OwnedRecord
	updateErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		hospitals: make(map[string]*models.Hospital),
		histories: make(map[string]*models.MedicalHistory),
		users:     make(map[int64]*models.User),
		owned:     make(map[models.OwnedRecord]map[string]int64),
	}
}

func (f *fakeStore) addHospital(id, code string) {
	f.hospitals[id] = &models.Hospital{ID: id, Code: code, Name: "Hospital " + code, IsActive: true}
}

func (f *fakeStore) addPatient(p *models.Patient) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().Add(time.Duration(len(f.patients)) * time.Minute)
	}
	f.patients = append(f.patients, p)
	f.histories[p.ID] = &models.MedicalHistory{ID: "h-" + p.ID, PatientID: p.ID}
}

func (f *fakeStore) addOwned(record models.OwnedRecord, patientID string, n int64) {
	if f.owned[record] == nil {
		f.owned[record] = make(map[string]int64)
	}
	f.owned[record][patientID] = n
}

func (f *fakeStore) patientByID(id string) *models.Patient {
	for _, p := range f.patients {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (f *fakeStore) HospitalByID(ctx context.Context, id string) (*models.Hospital, error) {
	return f.hospitals[id], nil
}

func (f *fakeStore) PatientByID(ctx context.Context, id string) (*models.Patient, error) {
	return f.patientByID(id), nil
}

func (f *fakeStore) ActivePatientByEmail(ctx context.Context, hospitalID, email string) (*models.Patient, error) {
	for _, p := range f.patients {
		if p.HospitalID == hospitalID && p.IsActive && strings.ToLower(p.Email) == email && p.Email != "" {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ActivePatientsWithPhone(ctx context.Context, hospitalID string) ([]models.Patient, error) {
	var out []models.Patient
	for _, p := range f.patients {
		if p.HospitalID == hospitalID && p.IsActive && p.Phone != "" {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) ActivePatientByNameDOB(ctx context.Context, hospitalID, firstName, lastName string, dayStart, dayEnd time.Time) (*models.Patient, error) {
	for _, p := range f.patients {
		if p.HospitalID != hospitalID || !p.IsActive || p.DateOfBirth == nil {
			continue
		}
		if !strings.EqualFold(p.FirstName, firstName) || !strings.EqualFold(p.LastName, lastName) {
			continue
		}
		if p.DateOfBirth.Before(dayStart) || p.DateOfBirth.After(dayEnd) {
			continue
		}
		return p, nil
	}
	return nil, nil
}

func (f *fakeStore) SearchDuplicateCandidates(ctx context.Context, hospitalID string, q DuplicateQuery, limit int) ([]models.Patient, error) {
	if q.IsEmpty() {
		return []models.Patient{}, nil
	}
	var out []models.Patient
	for _, p := range f.patients {
		if p.HospitalID != hospitalID || !p.IsActive {
			continue
		}
		email := strings.ToLower(p.Email)
		match := (q.Email != "" && email == q.Email) ||
			(q.EmailLocalPart != "" && strings.HasPrefix(email, q.EmailLocalPart+"@")) ||
			(q.PhoneSuffix != "" && strings.HasSuffix(utils.NormalizePhone(p.Phone), q.PhoneSuffix)) ||
			(q.FirstName != "" && strings.ToLower(p.FirstName) == q.FirstName) ||
			(q.LastName != "" && strings.ToLower(p.LastName) == q.LastName)
		if match {
			out = append(out, *p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) CreatePatientWithHistory(ctx context.Context, patient *models.Patient) error {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return err
		}
	}
	for _, p := range f.patients {
		if p.MRN == patient.MRN {
			return errors.New("duplicate MRN")
		}
	}
	clone := *patient
	f.addPatient(&clone)
	*patient = clone
	return nil
}

func (f *fakeStore) UpdatePatient(ctx context.Context, patient *models.Patient) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i, p := range f.patients {
		if p.ID == patient.ID {
			clone := *patient
			f.patients[i] = &clone
			return nil
		}
	}
	return errors.New("patient not found")
}

func (f *fakeStore) DeleteMedicalHistory(ctx context.Context, patientID string) error {
	delete(f.histories, patientID)
	return nil
}

func (f *fakeStore) MedicalHistoryByPatientID(ctx context.Context, patientID string) (*models.MedicalHistory, error) {
	return f.histories[patientID], nil
}

func (f *fakeStore) ReassignOwnedRecords(ctx context.Context, record models.OwnedRecord, fromPatientID, toPatientID string) (int64, error) {
	if record == f.failReassign {
		return 0, errors.New("reassign failed")
	}
	n := f.owned[record][fromPatientID]
	if n > 0 {
		if f.owned[record] == nil {
			f.owned[record] = make(map[string]int64)
		}
		f.owned[record][toPatientID] += n
		delete(f.owned[record], fromPatientID)
	}
	return n, nil
}

func (f *fakeStore) UserByID(ctx context.Context, userID int64) (*models.User, error) {
	return f.users[userID], nil
}

func (f *fakeStore) PatientByUserID(ctx context.Context, userID int64) (*models.Patient, error) {
	for _, p := range f.patients {
		if p.UserID != nil && *p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Transaction(ctx context.Context, fn func(tx PatientStore) error) error {
	snapshot := f.clone()
	if err := fn(f); err != nil {
		*f = *snapshot
		return err
	}
	return nil
}

func (f *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	for k, v := range f.hospitals {
		h := *v
		c.hospitals[k] = &h
	}
	for _, p := range f.patients {
		cp := *p
		c.patients = append(c.patients, &cp)
	}
	for k, v := range f.histories {
		h := *v
		c.histories[k] = &h
	}
	for k, v := range f.users {
		u := *v
		c.users[k] = &u
	}
	for record, byPatient := range f.owned {
		c.owned[record] = make(map[string]int64, len(byPatient))
		for id, n := range byPatient {
			c.owned[record][id] = n
		}
	}
	c.failReassign = f.failReassign
	c.updateErr = f.updateErr
	return c
}

// fakeRecordStore collects admissions and vitals in memory. When backed by a
// fakeStore it reads ownership counts from the same state merges mutate.
type fakeRecordStore struct {
	backing    *fakeStore
	admissions []*models.Admission
	vitals     []*models.Vital
	vitalErr   error
}

func (f *fakeRecordStore) CreateAdmission(ctx context.Context, admission *models.Admission) error {
	admission.ID = uint(len(f.admissions) + 1)
	f.admissions = append(f.admissions, admission)
	return nil
}

func (f *fakeRecordStore) CreateVital(ctx context.Context, vital *models.Vital) error {
	if f.vitalErr != nil {
		return f.vitalErr
	}
	vital.ID = uint(len(f.vitals) + 1)
	f.vitals = append(f.vitals, vital)
	return nil
}

func (f *fakeRecordStore) CountOwnedRecords(ctx context.Context, record models.OwnedRecord, patientID string) (int64, error) {
	if f.backing == nil {
		return 0, nil
	}
	return f.backing.owned[record][patientID], nil
}

// noopLocker always grants the lock.
type noopLocker struct{}

func (noopLocker) Acquire(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return true, nil
}

func (noopLocker) Release(ctx context.Context, key, value string) error {
	return nil
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
