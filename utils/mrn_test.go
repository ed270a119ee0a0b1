package utils

import (
	"regexp"
	"strings"
	"testing"
)

func TestGenerateMRNFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^MERCY-[A-Z0-9]+$`)
	mrn := GenerateMRN("MERCY")
	if !pattern.MatchString(mrn) {
		t.Fatalf("MRN %q does not match {code}-{base36}{suffix}", mrn)
	}
	if mrn != strings.ToUpper(mrn) {
		t.Errorf("MRN %q is not uppercase", mrn)
	}
	// Timestamp (>= 8 base36 chars for current epochs) plus 4 char suffix.
	body := strings.TrimPrefix(mrn, "MERCY-")
	if len(body) < 12 {
		t.Errorf("MRN body %q shorter than timestamp+suffix", body)
	}
}

func TestGenerateMRNLowercaseTenantCode(t *testing.T) {
	mrn := GenerateMRN("gh")
	if !strings.HasPrefix(mrn, "GH-") {
		t.Errorf("MRN %q must uppercase the tenant code prefix", mrn)
	}
}

func TestGenerateMRNVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		mrn := GenerateMRN("GH")
		if seen[mrn] {
			t.Fatalf("MRN %q repeated within 100 generations", mrn)
		}
		seen[mrn] = true
	}
}
