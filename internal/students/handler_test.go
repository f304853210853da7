package students

import (
	"testing"

	"github.com/pjok-digital/backend/internal/models"
)

func TestValidateStudentRequest(t *testing.T) {
	tests := []struct {
		name string
		req  models.StudentRequest
		want string
	}{
		{
			"valid",
			models.StudentRequest{NIS: "2400123", Name: "Budi Santoso", ClassName: "7A", Gender: models.GenderMale},
			"",
		},
		{
			"missing nis",
			models.StudentRequest{Name: "Budi", ClassName: "7A", Gender: models.GenderMale},
			"nis is required",
		},
		{
			"missing name",
			models.StudentRequest{NIS: "2400123", ClassName: "7A", Gender: models.GenderFemale},
			"name is required",
		},
		{
			"missing class",
			models.StudentRequest{NIS: "2400123", Name: "Siti", Gender: models.GenderFemale},
			"class_name is required",
		},
		{
			"bad gender",
			models.StudentRequest{NIS: "2400123", Name: "Siti", ClassName: "8B", Gender: "X"},
			"gender must be 'L' or 'P'",
		},
		{
			"whitespace only counts as missing",
			models.StudentRequest{NIS: "  ", Name: "Siti", ClassName: "8B", Gender: models.GenderFemale},
			"nis is required",
		},
	}

	for _, tt := range tests {
		if got := validateStudentRequest(&tt.req); got != tt.want {
			t.Errorf("%s: validateStudentRequest = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestValidateStudentRequestNormalizes(t *testing.T) {
	req := models.StudentRequest{NIS: " 2400123 ", Name: " Budi ", ClassName: " 7a ", Gender: models.GenderMale}
	if msg := validateStudentRequest(&req); msg != "" {
		t.Fatalf("validateStudentRequest = %q, want valid", msg)
	}
	if req.NIS != "2400123" || req.Name != "Budi" || req.ClassName != "7A" {
		t.Errorf("normalized request = %+v", req)
	}
}

func TestNormalizeClass(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"7a", "7A"},
		{" 8B ", "8B"},
		{"9c", "9C"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeClass(tt.in); got != tt.want {
			t.Errorf("normalizeClass(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
