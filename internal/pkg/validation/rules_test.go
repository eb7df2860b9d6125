package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestFieldRules(t *testing.T) {
	cases := []struct {
		name string
		ok   bool
		want bool
	}{
		{"email mixed case", ValidEmail("  Asha@Campus.EDU "), true},
		{"email missing domain", ValidEmail("asha@"), false},
		{"name blank", ValidName("   "), false},
		{"name too short", ValidName("a"), false},
		{"name ok", ValidName("Asha Rao"), true},
		{"college id ok", ValidCollegeID("2024CS017"), true},
		{"college id space", ValidCollegeID("2024 CS"), false},
		{"supervisor id ok", ValidSupervisorID("SUP_01"), true},
		{"mobile ok", ValidMobile("+919876543210"), true},
		{"mobile short", ValidMobile("12345"), false},
	}
	for _, tc := range cases {
		if tc.ok != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, tc.ok, tc.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Asha@Campus.EDU "); got != "asha@campus.edu" {
		t.Fatalf("got %q", got)
	}
}

func TestIsValidDate(t *testing.T) {
	if !IsValidDate("2024-08-14") {
		t.Fatal("expected valid")
	}
	for _, bad := range []string{"", "14/08/2024", "2024-13-01"} {
		if IsValidDate(bad) {
			t.Fatalf("%q should be invalid", bad)
		}
	}
}

func TestRegisteredTags(t *testing.T) {
	v := validator.New()
	if err := Register(v); err != nil {
		t.Fatal(err)
	}

	type form struct {
		CollegeID string `validate:"collegeid"`
		Mobile    string `validate:"mobile"`
		Date      string `validate:"isodate"`
	}
	if err := v.Struct(form{CollegeID: "2024CS017", Mobile: "+919876543210", Date: "2024-08-14"}); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}
	err := v.Struct(form{CollegeID: "no spaces", Mobile: "12", Date: "tomorrow"})
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) != 3 {
		t.Fatalf("expected 3 field errors, got %v", err)
	}
}
