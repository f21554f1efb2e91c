// Package ai generates text through pluggable LLM providers. The demo data
// generator only needs single-shot prompt completion, so a provider is one
// method.
package ai

import "context"

// TextGenerator produces a completion for a single prompt. Temperature is
// passed per call; the generator runs different prompts at different
// creativity levels.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}
