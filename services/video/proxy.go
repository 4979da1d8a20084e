package video

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Govind-619/ClipCraft/models"
	"github.com/Govind-619/ClipCraft/utils"
)

// Proxy runs a generation request against the configured providers in order
type Proxy struct {
	providers []Provider
	mailer    utils.Mailer
}

// NewProxy builds a proxy. Nil providers are skipped so callers can pass
// optional ones directly.
func NewProxy(mailer utils.Mailer, providers ...Provider) *Proxy {
	p := &Proxy{mailer: mailer}
	for _, provider := range providers {
		if provider != nil {
			p.providers = append(p.providers, provider)
		}
	}
	return p
}

// Providers returns the names of the configured providers in call order
func (p *Proxy) Providers() []string {
	names := make([]string, 0, len(p.providers))
	for _, provider := range p.providers {
		names = append(names, provider.Name())
	}
	return names
}

// Validate checks the mode and its required input
func Validate(req *models.GenerationRequest) error {
	switch req.Mode {
	case models.ModeText:
		if utils.IsBlank(req.Prompt) {
			return utils.NewValidationError(utils.ErrPromptRequired)
		}
	case models.ModeImage:
		if utils.IsBlank(req.ImageURL) {
			return utils.NewValidationError(utils.ErrImageRequired)
		}
	default:
		return utils.NewValidationError(utils.ErrInvalidMode)
	}
	if req.NotifyEmail != "" {
		if valid, msg := utils.ValidateEmail(req.NotifyEmail); !valid {
			return utils.NewValidationError(msg)
		}
	}
	return nil
}

// Generate validates the request and returns the first video any provider produces
func (p *Proxy) Generate(ctx context.Context, req models.GenerationRequest) (*models.GenerationResult, error) {
	if err := Validate(&req); err != nil {
		return nil, err
	}
	if len(p.providers) == 0 {
		return nil, notConfiguredError()
	}

	started := time.Now()
	var details []string
	var lastErr error
	var last Provider

	for _, provider := range p.providers {
		last = provider
		utils.LogInfo("Generating %s-to-video with provider %s", req.Mode, provider.Name())

		out, err := provider.Generate(ctx, req)
		if err == nil {
			elapsed := int(time.Since(started).Seconds())
			utils.LogInfo("Video generated by %s/%s in %ds", provider.Name(), out.Model, elapsed)
			p.notify(req, out)
			return &models.GenerationResult{
				Success:  true,
				VideoURL: out.VideoURL,
				Metadata: &models.GenerationMetadata{
					Model:                 out.Model,
					Provider:              provider.Name(),
					GenerationTimeSeconds: elapsed,
				},
			}, nil
		}

		lastErr = err
		var exhausted *ExhaustedError
		if errors.As(err, &exhausted) {
			for _, f := range exhausted.Failures {
				details = append(details, f.String())
			}
		} else {
			details = append(details, fmt.Sprintf("%s: %v", provider.Name(), err))
		}

		if ctx.Err() != nil {
			break
		}
		utils.LogError("Provider %s exhausted, falling back if another is configured", provider.Name())
	}

	return nil, utils.NewProviderUnavailableError(
		fmt.Sprintf("%s error: all video generation models failed", last.Name()), lastErr,
	).WithDetails(map[string]interface{}{
		"troubleshooting": last.Troubleshooting(),
		"details":         details,
	})
}

func (p *Proxy) notify(req models.GenerationRequest, out *Output) {
	if req.NotifyEmail == "" {
		return
	}
	prompt := req.Prompt
	if strings.TrimSpace(prompt) == "" {
		prompt = req.Mode + "-to-video"
	}
	utils.SendAsync(p.mailer, utils.VideoReadyEmail(req.NotifyEmail, out.VideoURL, prompt))
}

func notConfiguredError() *utils.AppError {
	return utils.NewConfigurationError(400, utils.ErrServiceNotConfigured).WithDetails(map[string]interface{}{
		"message": "Please add either FAL_KEY or REPLICATE_API_TOKEN to your .env file",
		"instructions": map[string]string{
			"fal":       "Get your API key from https://fal.ai/dashboard and add FAL_KEY=your-key to .env",
			"replicate": "Get your API token from https://replicate.com/account/api-tokens and add REPLICATE_API_TOKEN=your-token to .env",
		},
	})
}
