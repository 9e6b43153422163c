package shared

import (
	"testing"
)

func TestValidatorRequired(t *testing.T) {
	v := NewValidator()
	v.Required("name", "  ", "name is required")
	v.Required("email", "a@b.c", "email is required")

	if !v.HasIssues() {
		t.Fatalf("expected issues for blank name")
	}
	issues := v.Issues()
	if len(issues) != 1 || issues[0].Field != "name" {
		t.Fatalf("unexpected issues: %+v", issues)
	}
}

func TestValidatorEnum(t *testing.T) {
	allowed := []string{"open", "closed"}

	v := NewValidator()
	v.Enum("status", "OPEN", allowed, "invalid status")
	if v.HasIssues() {
		t.Fatalf("enum match should be case insensitive: %+v", v.Issues())
	}

	v = NewValidator()
	v.Enum("status", "archived", allowed, "invalid status")
	if !v.HasIssues() {
		t.Fatalf("expected issue for disallowed value")
	}

	v = NewValidator()
	v.Enum("status", "", allowed, "invalid status")
	if v.HasIssues() {
		t.Fatalf("empty value must pass, it is Required's job")
	}
}

func TestValidatorObjectID(t *testing.T) {
	v := NewValidator()
	if _, ok := v.ObjectID("id", "not-an-id"); ok {
		t.Fatalf("invalid hex accepted")
	}
	if !v.HasIssues() {
		t.Fatalf("expected issue for invalid object id")
	}

	v = NewValidator()
	id, ok := v.ObjectID("id", "64b2f8f1a2c3d4e5f6a7b8c9")
	if !ok || v.HasIssues() {
		t.Fatalf("valid object id rejected: %+v", v.Issues())
	}
	if id.Hex() != "64b2f8f1a2c3d4e5f6a7b8c9" {
		t.Fatalf("round trip mismatch: %s", id.Hex())
	}
}

func TestValidatorDate(t *testing.T) {
	v := NewValidator()
	day, ok := v.Date("date", "2026-02-14")
	if !ok || v.HasIssues() {
		t.Fatalf("date-only format rejected: %+v", v.Issues())
	}
	if day.Year() != 2026 || day.Month() != 2 || day.Day() != 14 {
		t.Fatalf("parsed wrong date: %v", day)
	}

	v = NewValidator()
	if _, ok := v.Date("date", "14/02/2026"); ok {
		t.Fatalf("unsupported format accepted")
	}
	if !v.HasIssues() {
		t.Fatalf("expected issue for bad date format")
	}
}

func TestIssuesSortedByField(t *testing.T) {
	v := NewValidator()
	v.Add("zeta", "late issue")
	v.Add("alpha", "early issue")

	issues := v.Issues()
	if issues[0].Field != "alpha" || issues[1].Field != "zeta" {
		t.Fatalf("issues not sorted: %+v", issues)
	}
}
