// AngelaMos | 2026
// provider.go

package ai

import "context"

// TextGenerator produces a completion for a single prompt. Implementations
// wrap one upstream provider and surface its failures verbatim for the
// caller to classify.
type TextGenerator interface {
	Name() string
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator renders a prompt into a hosted image and returns its URL.
type ImageGenerator interface {
	Name() string
	GenerateImage(ctx context.Context, prompt string) (string, error)
}
