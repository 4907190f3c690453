package hardcover

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeGoalCamelCase(t *testing.T) {
	g, err := DecodeGoal([]byte(`{
		"id": 42, "goal": 24, "metric": "book",
		"startDate": "2026-01-01", "endDate": "2026-12-31",
		"progress": 6, "percentComplete": 0.25,
		"description": "2026 reading", "privacySettingId": 2
	}`))
	if err != nil {
		t.Fatalf("DecodeGoal: %v", err)
	}
	if g.ID != 42 || g.Goal != 24 || g.Metric != "book" {
		t.Errorf("core fields = %+v", g)
	}
	if g.StartDate != "2026-01-01" || g.EndDate != "2026-12-31" {
		t.Errorf("dates = %q..%q", g.StartDate, g.EndDate)
	}
	if g.Progress != 6 || g.PercentComplete != 0.25 {
		t.Errorf("progress = %d, percent = %v", g.Progress, g.PercentComplete)
	}
	if g.PrivacyID != 2 {
		t.Errorf("PrivacyID = %d, want 2", g.PrivacyID)
	}
}

func TestDecodeGoalSnakeCaseAndStringNumbers(t *testing.T) {
	g, err := DecodeGoal([]byte(`{
		"id": "42", "goal": "24", "metric": "Book",
		"start_date": "2026-01-01", "end_date": "2026-12-31",
		"progress": "6", "percent_complete": "0.5"
	}`))
	if err != nil {
		t.Fatalf("DecodeGoal: %v", err)
	}
	if g.ID != 42 || g.Goal != 24 || g.Progress != 6 {
		t.Errorf("numeric strings not coerced: %+v", g)
	}
	if g.PercentComplete != 0.5 {
		t.Errorf("PercentComplete = %v, want 0.5", g.PercentComplete)
	}
}

func TestDecodeGoalNumericDateCoercedToString(t *testing.T) {
	g, err := DecodeGoal([]byte(`{
		"id": 1, "goal": 10, "metric": "book",
		"startDate": 5, "endDate": "2026-12-31"
	}`))
	if err != nil {
		t.Fatalf("DecodeGoal: %v", err)
	}
	if g.StartDate != "5" {
		t.Errorf("StartDate = %q, want %q", g.StartDate, "5")
	}
}

func TestDecodeGoalDerivesPercentFromProgress(t *testing.T) {
	g, err := DecodeGoal([]byte(`{
		"id": 1, "goal": 20, "metric": "book",
		"startDate": "2026-01-01", "endDate": "2026-12-31",
		"progress": 10
	}`))
	if err != nil {
		t.Fatalf("DecodeGoal: %v", err)
	}
	if g.PercentComplete != 0.5 {
		t.Errorf("PercentComplete = %v, want derived 0.5", g.PercentComplete)
	}
}

func TestDecodeGoalPercentClamped(t *testing.T) {
	g, err := DecodeGoal([]byte(`{
		"id": 1, "goal": 4, "metric": "book",
		"startDate": "2026-01-01", "endDate": "2026-12-31",
		"progress": 9
	}`))
	if err != nil {
		t.Fatalf("DecodeGoal: %v", err)
	}
	if g.PercentComplete != 1 {
		t.Errorf("PercentComplete = %v, want clamped to 1", g.PercentComplete)
	}
}

func TestDecodeGoalZeroGoalNoDivideByZero(t *testing.T) {
	g, err := DecodeGoal([]byte(`{
		"id": 1, "goal": 0, "metric": "book",
		"startDate": "2026-01-01", "endDate": "2026-12-31",
		"progress": 3
	}`))
	if err != nil {
		t.Fatalf("DecodeGoal: %v", err)
	}
	if g.PercentComplete != 1 {
		t.Errorf("PercentComplete = %v, want 1 for zero-target goal", g.PercentComplete)
	}
}

func TestDecodeGoalMissingRequiredField(t *testing.T) {
	_, err := DecodeGoal([]byte(`{"id": 1, "goal": 10, "metric": "book", "endDate": "2026-12-31"}`))
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want *MissingFieldError", err)
	}
	if len(missing.Keys) != 2 || missing.Keys[0] != "startDate" {
		t.Errorf("Keys = %v, want [startDate start_date]", missing.Keys)
	}
	if !strings.Contains(missing.Error(), "startDate") {
		t.Errorf("Error() = %q, should name the tried keys", missing.Error())
	}
}

func TestDecodeGoalDescriptionFallbacks(t *testing.T) {
	g, err := DecodeGoal([]byte(`{
		"id": 1, "goal": 10, "metric": "book",
		"startDate": "2026-01-01", "endDate": "2026-12-31",
		"name": "yearly goal"
	}`))
	if err != nil {
		t.Fatalf("DecodeGoal: %v", err)
	}
	if g.Description != "yearly goal" {
		t.Errorf("Description = %q, want fallback to name", g.Description)
	}
}

func TestDecodeGoalDefaults(t *testing.T) {
	g, err := DecodeGoal([]byte(`{
		"id": 1, "goal": 10, "metric": "book",
		"startDate": "2026-01-01", "endDate": "2026-12-31"
	}`))
	if err != nil {
		t.Fatalf("DecodeGoal: %v", err)
	}
	if g.Progress != 0 {
		t.Errorf("Progress = %d, want default 0", g.Progress)
	}
	if g.PrivacyID != 1 {
		t.Errorf("PrivacyID = %d, want default 1", g.PrivacyID)
	}
}
