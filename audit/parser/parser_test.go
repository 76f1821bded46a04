package parser

import "testing"

func TestParseUpdatesSectionOrder(t *testing.T) {
	t.Parallel()

	input := "Feature Name: Webhook Support\nRelease Date: 2024-03\n---\nFeature Name: OAuth\n"
	updates := ParseUpdates(input)
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	if updates[0].FeatureName != "Webhook Support" {
		t.Fatalf("unexpected first feature: %q", updates[0].FeatureName)
	}
	if updates[0].ReleaseDate != "2024-03" {
		t.Fatalf("unexpected release date: %q", updates[0].ReleaseDate)
	}
	if updates[1].FeatureName != "OAuth" {
		t.Fatalf("unexpected second feature: %q", updates[1].FeatureName)
	}
}

func TestParseUpdatesNegativeMarkerWins(t *testing.T) {
	t.Parallel()

	input := "No public updates found for Acme CRM.\n---\nFeature Name: Shiny Thing\nRelease Date: Q2 2024\n"
	updates := ParseUpdates(input)
	if len(updates) != 0 {
		t.Fatalf("negative marker must override sections, got %d updates", len(updates))
	}
}

func TestParseUpdatesNegativeMarkerCaseInsensitive(t *testing.T) {
	t.Parallel()

	if got := ParseUpdates("COULD NOT FIND any changelog entries"); len(got) != 0 {
		t.Fatalf("expected empty result, got %d updates", len(got))
	}
}

func TestParseUpdatesDropsSectionsWithoutFeatureName(t *testing.T) {
	t.Parallel()

	input := "Description: something vague\nSource URL: https://example.com\n"
	if got := ParseUpdates(input); len(got) != 0 {
		t.Fatalf("section without feature name must be dropped, got %d updates", len(got))
	}
}

func TestParseUpdatesLastWriteWinsWithinSection(t *testing.T) {
	t.Parallel()

	updates := ParseUpdates("Feature Name: A\nFeature Name: B\n")
	if len(updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(updates))
	}
	if updates[0].FeatureName != "B" {
		t.Fatalf("expected last write to win, got %q", updates[0].FeatureName)
	}
}

func TestParseUpdatesFieldMapping(t *testing.T) {
	t.Parallel()

	input := `Feature Name: Bulk Export API
Released: March 2024
Source URL: https://vendor.example/changelog
Description: Adds async CSV export jobs.
Automation Value: Removes manual report pulls.
Business Impact: Saves hours per week.
Category: api
Implementation Difficulty: low
`
	updates := ParseUpdates(input)
	if len(updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(updates))
	}
	u := updates[0]
	if u.FeatureName != "Bulk Export API" {
		t.Fatalf("unexpected feature name: %q", u.FeatureName)
	}
	if u.ReleaseDate != "March 2024" {
		t.Fatalf("released key must map to release date, got %q", u.ReleaseDate)
	}
	if u.SourceURL != "https://vendor.example/changelog" {
		t.Fatalf("unexpected source url: %q", u.SourceURL)
	}
	if u.Description != "Adds async CSV export jobs." {
		t.Fatalf("unexpected description: %q", u.Description)
	}
	if u.AutomationValue != "Removes manual report pulls." {
		t.Fatalf("unexpected automation value: %q", u.AutomationValue)
	}
	if u.BusinessImpact != "Saves hours per week." {
		t.Fatalf("unexpected business impact: %q", u.BusinessImpact)
	}
	if u.Category != "api" {
		t.Fatalf("unexpected category: %q", u.Category)
	}
	if u.ImplementationDifficulty != "low" {
		t.Fatalf("unexpected difficulty: %q", u.ImplementationDifficulty)
	}
}

func TestParseUpdatesDelimiterRequiresOwnLine(t *testing.T) {
	t.Parallel()

	// An inline "---" is not a section break; a line of hyphens is.
	input := "Feature Name: A --- still the name line\n----\nFeature Name: C\n"
	updates := ParseUpdates(input)
	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	if updates[0].FeatureName != "A --- still the name line" {
		t.Fatalf("unexpected first feature: %q", updates[0].FeatureName)
	}
}

func TestParseUpdatesMalformedInputNeverErrors(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"\n\n\n",
		"---\n---\n---",
		"just prose with no colons at all",
		":::: odd punctuation ::",
	}
	for _, input := range inputs {
		if got := ParseUpdates(input); len(got) != 0 {
			t.Fatalf("input %q: expected empty result, got %d updates", input, len(got))
		}
	}
}
