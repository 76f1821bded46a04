package contract

import "context"

// ResearchCapability is the opaque external text-generation and web-browsing
// capability. It receives a natural-language research brief and returns
// free-form findings text. The core controls only the brief it sends and the
// parsing of what comes back.
type ResearchCapability interface {
	Invoke(ctx context.Context, brief string) (string, error)
}
