package registry

import "testing"

func TestLookupNormalizesNames(t *testing.T) {
	t.Parallel()

	reg := New()
	for _, name := range []string{"Redtail CRM", "redtail crm", "REDTAIL  CRM", " redtail crm "} {
		desc, ok := reg.Lookup(name)
		if !ok {
			t.Fatalf("expected registry hit for %q", name)
		}
		if desc.Endpoint == "" {
			t.Fatalf("expected endpoint for %q", name)
		}
	}
}

func TestHasUnknownTool(t *testing.T) {
	t.Parallel()

	reg := New()
	if reg.Has("Completely Unknown Tool") {
		t.Fatal("unexpected registry hit")
	}
	if _, ok := reg.Lookup("Completely Unknown Tool"); ok {
		t.Fatal("unexpected lookup hit")
	}
}

func TestWithEndpointsOverridesDefaults(t *testing.T) {
	t.Parallel()

	reg := New(WithEndpoints(map[string]EndpointDescriptor{
		"Slack":     {Endpoint: "https://example.test/slack", AuthRequired: true},
		"HomeGrown": {Endpoint: "https://example.test/homegrown"},
	}))

	desc, ok := reg.Lookup("slack")
	if !ok {
		t.Fatal("expected slack entry")
	}
	if desc.Endpoint != "https://example.test/slack" || !desc.AuthRequired {
		t.Fatalf("override not applied: %+v", desc)
	}

	if !reg.Has("homegrown") {
		t.Fatal("expected merged custom entry")
	}
}

func TestWithoutDefaults(t *testing.T) {
	t.Parallel()

	reg := New(
		WithoutDefaults(),
		WithEndpoints(map[string]EndpointDescriptor{
			"Only Tool": {Endpoint: "https://example.test/only"},
		}),
	)

	if reg.Has("Slack") {
		t.Fatal("defaults must be cleared")
	}
	if !reg.Has("only tool") {
		t.Fatal("expected custom entry")
	}
}
