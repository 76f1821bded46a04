// Package parser extracts structured update records from free-text research
// output. The format is loose by nature: sections separated by hyphen rules,
// key: value lines inside each section. Parsing is heuristic and never
// fails; unusable input yields an empty slice.
package parser

import (
	"regexp"
	"strings"

	contractx "github.com/tanpawarit/stackaudit/audit/contract"
)

// noUpdateMarkers are phrases the research capability uses to report an
// honest negative. Any of them, anywhere in the text, takes precedence over
// structured sections that may also be present.
var noUpdateMarkers = []string{
	"no public updates found",
	"no updates found",
	"could not find",
	"no information available",
	"no public changelog",
	"no verifiable updates",
}

// sectionDelimiter is a line of three or more hyphens.
var sectionDelimiter = regexp.MustCompile(`(?m)^[ \t]*-{3,}[ \t]*$`)

// fieldRule maps key substrings to a record field. Rules are checked in
// order; the first rule with a matching substring claims the line.
type fieldRule struct {
	substrings []string
	assign     func(*contractx.UpdateRecord, string)
}

var fieldRules = []fieldRule{
	{[]string{"feature", "name"}, func(u *contractx.UpdateRecord, v string) { u.FeatureName = v }},
	{[]string{"date", "released"}, func(u *contractx.UpdateRecord, v string) { u.ReleaseDate = v }},
	{[]string{"url", "source"}, func(u *contractx.UpdateRecord, v string) { u.SourceURL = v }},
	{[]string{"description"}, func(u *contractx.UpdateRecord, v string) { u.Description = v }},
	{[]string{"automation", "value"}, func(u *contractx.UpdateRecord, v string) { u.AutomationValue = v }},
	{[]string{"impact"}, func(u *contractx.UpdateRecord, v string) { u.BusinessImpact = v }},
	{[]string{"category"}, func(u *contractx.UpdateRecord, v string) { u.Category = v }},
	{[]string{"difficulty"}, func(u *contractx.UpdateRecord, v string) { u.ImplementationDifficulty = v }},
}

// ParseUpdates converts one block of research output into update records,
// in section order. Sections that never produce a feature name are dropped.
func ParseUpdates(text string) []contractx.UpdateRecord {
	if containsNegativeMarker(text) {
		return []contractx.UpdateRecord{}
	}

	updates := []contractx.UpdateRecord{}
	for _, section := range sectionDelimiter.Split(text, -1) {
		if strings.TrimSpace(section) == "" {
			continue
		}
		if record, ok := parseSection(section); ok {
			updates = append(updates, record)
		}
	}
	return updates
}

func containsNegativeMarker(text string) bool {
	lowered := strings.ToLower(text)
	for _, marker := range noUpdateMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

func parseSection(section string) (contractx.UpdateRecord, bool) {
	var record contractx.UpdateRecord

	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		for _, rule := range fieldRules {
			if rule.matches(key) {
				rule.assign(&record, value)
				break
			}
		}
	}

	if record.FeatureName == "" {
		return contractx.UpdateRecord{}, false
	}
	return record, true
}

func (r fieldRule) matches(key string) bool {
	for _, sub := range r.substrings {
		if strings.Contains(key, sub) {
			return true
		}
	}
	return false
}
