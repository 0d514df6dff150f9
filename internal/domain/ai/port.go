package ai

import "context"

// Client turns a report (JSON) into advice (JSON, see Advice).
type Client interface {
	Advise(ctx context.Context, reportJSON string) (string, error)
}
