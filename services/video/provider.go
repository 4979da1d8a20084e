// Package video proxies text/image-to-video requests to third-party providers.
//
// Providers are tried in order; inside a provider each model is tried in order.
// The first model that returns a video URL wins and nothing after it runs.
package video

import (
	"context"
	"fmt"
	"strings"

	"github.com/Govind-619/ClipCraft/models"
	"github.com/Govind-619/ClipCraft/utils"
)

// Output is a successful generation
type Output struct {
	VideoURL string
	Model    string
}

// Provider is one video generation vendor
type Provider interface {
	Name() string
	Generate(ctx context.Context, req models.GenerationRequest) (*Output, error)
	// Troubleshooting returns hints shown to the user when the provider is exhausted
	Troubleshooting() map[string]string
}

// ModelFailure records why a single model attempt failed
type ModelFailure struct {
	Model      string
	Class      ErrorClass
	StatusCode int
	Message    string
}

func (f ModelFailure) String() string {
	return fmt.Sprintf("%s: %s (%s)", f.Model, f.Message, f.Class)
}

// ExhaustedError is returned when every model of a provider failed
type ExhaustedError struct {
	Provider string
	Failures []ModelFailure
}

func (e *ExhaustedError) Error() string {
	lines := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		lines = append(lines, f.String())
	}
	return fmt.Sprintf("all %s models failed:\n%s", e.Provider, strings.Join(lines, "\n"))
}

// modelRunner runs one model and returns its video URL
type modelRunner func(ctx context.Context, model string) (string, error)

// runModels tries each model in order and stops at the first success
func runModels(ctx context.Context, provider string, modelIDs []string, run modelRunner) (*Output, error) {
	exhausted := &ExhaustedError{Provider: provider}

	for _, model := range modelIDs {
		if err := ctx.Err(); err != nil {
			exhausted.Failures = append(exhausted.Failures, ModelFailure{
				Model: model, Class: ClassTimeout, Message: err.Error(),
			})
			break
		}

		utils.LogInfo("Trying %s model: %s", provider, model)
		videoURL, err := run(ctx, model)
		if err == nil && videoURL == "" {
			err = errNoVideoURL
		}
		if err == nil {
			utils.LogInfo("Success with %s model: %s", provider, model)
			return &Output{VideoURL: videoURL, Model: model}, nil
		}

		failure := ModelFailure{
			Model:      model,
			Class:      Classify(err),
			StatusCode: statusCode(err),
			Message:    err.Error(),
		}
		utils.LogError("Model %s failed on %s: %s (class=%s, code=%d)",
			model, provider, failure.Message, failure.Class, failure.StatusCode)
		exhausted.Failures = append(exhausted.Failures, failure)
	}

	return nil, exhausted
}

// promptOrDefault is the prompt sent with image-to-video requests
func promptOrDefault(prompt string) string {
	if strings.TrimSpace(prompt) == "" {
		return utils.DefaultImagePrompt
	}
	return prompt
}
