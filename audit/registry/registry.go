// Package registry maps tool names to known structured-API changelog
// endpoints. The table is fixed at construction; lookups use the same
// name normalization as the research cache.
package registry

import "strings"

// EndpointDescriptor describes a vendor changelog or release-notes API.
type EndpointDescriptor struct {
	Endpoint     string `json:"endpoint"`
	AuthRequired bool   `json:"auth_required"`
}

type Registry struct {
	entries map[string]EndpointDescriptor
}

// Option customizes Registry construction.
type Option func(map[string]EndpointDescriptor)

// WithEndpoints merges extra entries into the table, overriding defaults on
// normalized-name collision.
func WithEndpoints(extra map[string]EndpointDescriptor) Option {
	return func(entries map[string]EndpointDescriptor) {
		for name, desc := range extra {
			entries[normalize(name)] = desc
		}
	}
}

// WithoutDefaults drops the built-in table; combine with WithEndpoints to
// supply a custom one.
func WithoutDefaults() Option {
	return func(entries map[string]EndpointDescriptor) {
		for k := range entries {
			delete(entries, k)
		}
	}
}

func New(opts ...Option) *Registry {
	entries := make(map[string]EndpointDescriptor, len(defaultEndpoints))
	for name, desc := range defaultEndpoints {
		entries[normalize(name)] = desc
	}
	for _, opt := range opts {
		if opt != nil {
			opt(entries)
		}
	}
	return &Registry{entries: entries}
}

func (r *Registry) Has(toolName string) bool {
	_, ok := r.entries[normalize(toolName)]
	return ok
}

func (r *Registry) Lookup(toolName string) (EndpointDescriptor, bool) {
	desc, ok := r.entries[normalize(toolName)]
	return desc, ok
}

func normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// defaultEndpoints covers the vendors most common in advisory-firm stacks.
// Entries without a public changelog API carry AuthRequired=true so the
// researcher falls back to the web path.
var defaultEndpoints = map[string]EndpointDescriptor{
	"Wealthbox": {
		Endpoint:     "https://api.crmworkspace.com/v1/changelog",
		AuthRequired: true,
	},
	"Redtail CRM": {
		Endpoint:     "https://api.redtailtechnology.com/crm/v1/releases",
		AuthRequired: true,
	},
	"Salesforce": {
		Endpoint:     "https://api.salesforce.com/services/data/releases",
		AuthRequired: true,
	},
	"HubSpot": {
		Endpoint:     "https://api.hubapi.com/integrations/v1/changelog",
		AuthRequired: true,
	},
	"Slack": {
		Endpoint:     "https://api.slack.com/changelog.rss",
		AuthRequired: false,
	},
	"GitHub": {
		Endpoint:     "https://api.github.com/repos/github/roadmap/releases",
		AuthRequired: false,
	},
	"Calendly": {
		Endpoint:     "https://api.calendly.com/release_notes",
		AuthRequired: true,
	},
	"QuickBooks Online": {
		Endpoint:     "https://developer.api.intuit.com/v2/release-notes",
		AuthRequired: true,
	},
}
