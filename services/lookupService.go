package services

import (
	"MediCoreHMS/models"
	"MediCoreHMS/utils"
	"context"
	"sort"
	"strings"
	"time"
)

// Match channels, in priority order. Email is the strongest self-reported
// identifier, phone is weaker (shared household lines), name+DOB is weakest
// but is the only identifier available for walk-ins with no contact info.
const (
	MatchedByEmail   = "email"
	MatchedByPhone   = "phone"
	MatchedByNameDOB = "name_dob"
)

// LookupCriteria are the identity fields used for matching. All optional;
// stages whose fields are absent are skipped.
type LookupCriteria struct {
	Email       string
	Phone       string
	FirstName   string
	LastName    string
	DateOfBirth *time.Time
}

// MatchResult is the matched patient plus which channel produced the match.
type MatchResult struct {
	Patient   *models.Patient `json:"patient"`
	MatchedBy string          `json:"matched_by"`
}

// PotentialDuplicate is a candidate surfaced for human review, never an
// identity decision on its own.
type PotentialDuplicate struct {
	Patient       *models.Patient `json:"patient"`
	MatchScore    int             `json:"match_score"`
	MatchedFields []string        `json:"matched_fields"`
}

// PatientLookupService resolves identity matches and surfaces duplicate
// candidates. Read-only: it never mutates data.
type PatientLookupService struct {
	store PatientStore
}

func NewPatientLookupService(store PatientStore) *PatientLookupService {
	return &PatientLookupService{store: store}
}

// FindExistingPatient runs a strict priority cascade over active patients in
// the tenant: email, then phone, then name+DOB. The first stage that hits
// wins; scores never accumulate across stages. A miss at every stage returns
// (nil, nil).
func (s *PatientLookupService) FindExistingPatient(ctx context.Context, hospitalID string, criteria LookupCriteria) (*MatchResult, error) {
	if email := utils.NormalizeEmail(criteria.Email); email != "" {
		patient, err := s.store.ActivePatientByEmail(ctx, hospitalID, email)
		if err != nil {
			return nil, err
		}
		if patient != nil {
			return &MatchResult{Patient: patient, MatchedBy: MatchedByEmail}, nil
		}
	}

	if phone := utils.NormalizePhone(criteria.Phone); phone != "" {
		candidates, err := s.store.ActivePatientsWithPhone(ctx, hospitalID)
		if err != nil {
			return nil, err
		}
		for i := range candidates {
			if utils.NormalizePhone(candidates[i].Phone) == phone {
				return &MatchResult{Patient: &candidates[i], MatchedBy: MatchedByPhone}, nil
			}
		}
	}

	if criteria.FirstName != "" && criteria.LastName != "" && criteria.DateOfBirth != nil {
		dayStart, dayEnd := utils.DayRange(*criteria.DateOfBirth)
		patient, err := s.store.ActivePatientByNameDOB(ctx, hospitalID, criteria.FirstName, criteria.LastName, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		if patient != nil {
			return &MatchResult{Patient: patient, MatchedBy: MatchedByNameDOB}, nil
		}
	}

	return nil, nil
}

// FindPotentialDuplicates retrieves up to 2x limit candidates matching any of
// the loose disjunction terms, scores each against the criteria, discards
// zero scores, and returns the top `limit` by descending score. Newest
// candidates keep their retrieval order on score ties.
func (s *PatientLookupService) FindPotentialDuplicates(ctx context.Context, hospitalID string, criteria LookupCriteria, limit int) ([]PotentialDuplicate, error) {
	if limit <= 0 {
		limit = 10
	}

	query := buildDuplicateQuery(criteria)
	if query.IsEmpty() {
		return []PotentialDuplicate{}, nil
	}

	candidates, err := s.store.SearchDuplicateCandidates(ctx, hospitalID, query, 2*limit)
	if err != nil {
		return nil, err
	}

	duplicates := make([]PotentialDuplicate, 0, len(candidates))
	for i := range candidates {
		score, fields := calculateMatchScore(&candidates[i], criteria)
		if score == 0 {
			continue
		}
		duplicates = append(duplicates, PotentialDuplicate{
			Patient:       &candidates[i],
			MatchScore:    score,
			MatchedFields: fields,
		})
	}

	sort.SliceStable(duplicates, func(i, j int) bool {
		return duplicates[i].MatchScore > duplicates[j].MatchScore
	})
	if len(duplicates) > limit {
		duplicates = duplicates[:limit]
	}
	return duplicates, nil
}

func buildDuplicateQuery(criteria LookupCriteria) DuplicateQuery {
	q := DuplicateQuery{
		Email:     utils.NormalizeEmail(criteria.Email),
		FirstName: strings.ToLower(strings.TrimSpace(criteria.FirstName)),
		LastName:  strings.ToLower(strings.TrimSpace(criteria.LastName)),
	}
	if q.Email != "" {
		q.EmailLocalPart = emailLocalPart(q.Email)
	}
	if phone := utils.NormalizePhone(criteria.Phone); len(phone) >= 7 {
		q.PhoneSuffix = phone[len(phone)-7:]
	}
	return q
}

// calculateMatchScore awards points per field independently and sums them:
// email 40/20/10, phone 35/20, first name 15/8, last name 15/8, DOB 20.
// Each contributing rule appends a human-readable tag for reviewers.
func calculateMatchScore(candidate *models.Patient, criteria LookupCriteria) (int, []string) {
	score := 0
	fields := make([]string, 0, 5)

	email := utils.NormalizeEmail(criteria.Email)
	candidateEmail := utils.NormalizeEmail(candidate.Email)
	if email != "" && candidateEmail != "" {
		local, candidateLocal := emailLocalPart(email), emailLocalPart(candidateEmail)
		switch {
		case email == candidateEmail:
			score += 40
			fields = append(fields, "email (exact)")
		case local != "" && local == candidateLocal:
			score += 20
			fields = append(fields, "email (same local part)")
		case local != "" && candidateLocal != "" &&
			(strings.Contains(candidateLocal, local) || strings.Contains(local, candidateLocal)):
			score += 10
			fields = append(fields, "email (partial)")
		}
	}

	phone := utils.NormalizePhone(criteria.Phone)
	candidatePhone := utils.NormalizePhone(candidate.Phone)
	if phone != "" && candidatePhone != "" {
		switch {
		case phone == candidatePhone:
			score += 35
			fields = append(fields, "phone (exact)")
		case len(phone) >= 7 && len(candidatePhone) >= 7 &&
			phone[len(phone)-7:] == candidatePhone[len(candidatePhone)-7:]:
			score += 20
			fields = append(fields, "phone (last 7 digits)")
		}
	}

	score += scoreName(criteria.FirstName, candidate.FirstName, "first name", &fields)
	score += scoreName(criteria.LastName, candidate.LastName, "last name", &fields)

	if criteria.DateOfBirth != nil && candidate.DateOfBirth != nil {
		a := utils.NormalizeDate(criteria.DateOfBirth)
		b := utils.NormalizeDate(candidate.DateOfBirth)
		if a.Equal(*b) {
			score += 20
			fields = append(fields, "date of birth")
		}
	}

	return score, fields
}

func scoreName(want, got, label string, fields *[]string) int {
	want = strings.ToLower(strings.TrimSpace(want))
	got = strings.ToLower(strings.TrimSpace(got))
	if want == "" || got == "" {
		return 0
	}
	if want == got {
		*fields = append(*fields, label+" (exact)")
		return 15
	}
	if strings.Contains(got, want) || strings.Contains(want, got) {
		*fields = append(*fields, label+" (partial)")
		return 8
	}
	return 0
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return ""
}
