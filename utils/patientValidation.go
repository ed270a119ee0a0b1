package utils

import (
	"MediCoreHMS/models"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// DateOfBirthLayout is the wire format for dates of birth.
const DateOfBirthLayout = "2006-01-02"

// genderInputs is the closed set accepted at the API boundary. Unknown gender
// strings are rejected up front instead of being silently coerced deep in the
// identity resolver, so client bugs surface as 400s.
var genderInputs = []interface{}{"male", "m", "female", "f", "other"}

// ValidatePatientIntake validates the fields of a patient registration or
// find-or-create request. First and last name are required; everything else
// is optional but must be well-formed when present.
func ValidatePatientIntake(firstName, lastName, email, phone, gender, dateOfBirth string) error {
	return validation.Errors{
		"first_name":    validation.Validate(firstName, validation.Required, validation.Length(1, 100)),
		"last_name":     validation.Validate(lastName, validation.Required, validation.Length(1, 100)),
		"email":         validation.Validate(email, is.Email),
		"phone":         validation.Validate(NormalizePhone(phone), validation.Length(0, 15)),
		"gender":        validation.Validate(strings.ToLower(gender), validation.In(genderInputs...)),
		"date_of_birth": validation.Validate(dateOfBirth, validation.Date(DateOfBirthLayout)),
	}.Filter()
}

// CoerceGender maps free-text gender to the closed enum: MALE/M and FEMALE/F
// (case-insensitive) map to their enum value, anything else (including absent)
// maps to OTHER.
func CoerceGender(gender string) string {
	switch strings.ToUpper(strings.TrimSpace(gender)) {
	case "MALE", "M":
		return models.GenderMale
	case "FEMALE", "F":
		return models.GenderFemale
	default:
		return models.GenderOther
	}
}

// ParseDateOfBirth parses an optional YYYY-MM-DD date and normalizes it to
// UTC midnight. Empty input yields nil; date of birth stays nullable rather
// than being defaulted, since a fabricated birth date would later produce
// false name+DOB matches.
func ParseDateOfBirth(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse(DateOfBirthLayout, s)
	if err != nil {
		return nil, err
	}
	return NormalizeDate(&t), nil
}
