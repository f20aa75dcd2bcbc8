package notify

import (
	"strings"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0634567890", "252634567890"},
		{"252634567890", "252634567890"},
		{"634567890", "252634567890"},
		{"+252 63 456 7890", "252634567890"},
		{"063-456-7890", "252634567890"},
		{"", ""},
		{"abc", ""},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Fatalf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHonorific(t *testing.T) {
	if got := Honorific("male"); got != "Mudane" {
		t.Fatalf("male honorific = %q", got)
	}
	if got := Honorific("Male"); got != "Mudane" {
		t.Fatalf("case-insensitive male honorific = %q", got)
	}
	if got := Honorific("female"); got != "Marwo" {
		t.Fatalf("female honorific = %q", got)
	}
}

func TestBuildMessage(t *testing.T) {
	data := TemplateData{
		Name:         "Axmed",
		Gender:       "male",
		Fee:          30,
		RegisterDate: "2024-06-01",
		ExpireDate:   "2024-07-01",
	}

	welcome, err := BuildMessage(TypeWelcome, data)
	if err != nil {
		t.Fatalf("welcome: %v", err)
	}
	for _, want := range []string{"Mudane", "Axmed", "2024-06-01", "Kusoo Dhawoow"} {
		if !strings.Contains(welcome, want) {
			t.Fatalf("welcome message missing %q", want)
		}
	}

	reminder, err := BuildMessage(TypePaymentReminder, data)
	if err != nil {
		t.Fatalf("reminder: %v", err)
	}
	if !strings.Contains(reminder, "Ogaysiiska Lacag Bixinta") {
		t.Fatal("reminder message missing header")
	}

	renewal, err := BuildMessage(TypeRenewal, data)
	if err != nil {
		t.Fatalf("renewal: %v", err)
	}
	for _, want := range []string{"$30", "2024-07-01", "Mahadsanid"} {
		if !strings.Contains(renewal, want) {
			t.Fatalf("renewal message missing %q", want)
		}
	}

	// No expire date falls back to the within-a-month wording.
	data.ExpireDate = ""
	renewal, err = BuildMessage(TypeRenewal, data)
	if err != nil {
		t.Fatalf("renewal without expire: %v", err)
	}
	if !strings.Contains(renewal, "1 bil gudahood") {
		t.Fatal("renewal message missing fallback expire wording")
	}

	if _, err := BuildMessage("bogus", data); err == nil {
		t.Fatal("unknown type should fail")
	}
}
