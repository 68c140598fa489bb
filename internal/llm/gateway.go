// Package llm implements the generation gateway: prompt assembly and the
// streaming call to the upstream text-generation service. The rest of the
// system only consumes the final concatenated text; partial deltas go to a
// caller-supplied sink as they arrive.
package llm

import (
	"context"
	"io"
)

// Gateway produces generated prose for a paid action. Implementations report
// failure for missing configuration, malformed templates, upstream errors,
// and empty results; callers decide what a failure costs.
type Gateway interface {
	// GenerateScript produces one long-form script for the subject.
	// Incremental text is written to sink (may be nil) as it arrives.
	GenerateScript(ctx context.Context, subject string, sink io.Writer) (string, error)

	// GenerateHooks produces one hook-set from all of a conversation's
	// accepted scripts combined into a single prompt.
	GenerateHooks(ctx context.Context, scripts []string, sink io.Writer) (string, error)
}
