package contract

import (
	"testing"
	"time"
)

func TestDateRangeValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		dr      DateRange
		wantErr bool
	}{
		{"valid", DateRange{Start: "2023-01-01", End: "2024-01-01"}, false},
		{"same day", DateRange{Start: "2024-01-01", End: "2024-01-01"}, false},
		{"reversed", DateRange{Start: "2024-01-01", End: "2023-01-01"}, true},
		{"bad start", DateRange{Start: "Jan 2023", End: "2024-01-01"}, true},
		{"bad end", DateRange{Start: "2023-01-01", End: "2024-13-40"}, true},
		{"empty", DateRange{}, true},
	}

	for _, tc := range cases {
		err := tc.dr.Validate()
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestDateRangeYears(t *testing.T) {
	t.Parallel()

	start, end := DateRange{Start: "2023-06-15", End: "2025-01-02"}.Years()
	if start != "2023" || end != "2025" {
		t.Fatalf("unexpected years: %s, %s", start, end)
	}
}

func TestFailureInvariants(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	f := Failure("Acme CRM", "upstream timeout", at)
	if f.Success {
		t.Fatal("failure result must not be successful")
	}
	if f.Error == "" {
		t.Fatal("failure result must carry an error")
	}
	if f.Updates == nil || len(f.Updates) != 0 {
		t.Fatalf("failure result must have an empty, non-nil updates slice: %+v", f.Updates)
	}
}
