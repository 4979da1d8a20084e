package video

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Govind-619/ClipCraft/models"
	"github.com/Govind-619/ClipCraft/utils"
)

// Fal model ids in priority order
var (
	FalTextModels = []string{
		"veo3.1",
		"veo3.1/fast",
		"sora-2/text-to-video",
		"kling-video/v2.5-turbo/pro/text-to-video",
	}
	FalImageModels = []string{
		"veo3.1/fast/image-to-video",
		"veo3.1/image-to-video",
		"sora-2/image-to-video",
		"kling-video/v2.5-turbo/pro/image-to-video",
		"pixverse/v5/image-to-video",
	}
)

const (
	falProviderName     = "fal"
	defaultFalHost      = "queue.fal.run"
	defaultPollInterval = 2 * time.Second
)

// FalConfig configures the fal.ai queue client
type FalConfig struct {
	Key string
	// BaseURL defaults to https://queue.fal.run
	BaseURL      string
	PollInterval time.Duration
	HTTPClient   *http.Client
}

// FalProvider generates videos through the fal.ai queue API
type FalProvider struct {
	key          string
	baseURL      string
	pollInterval time.Duration
	client       *http.Client
}

type falQueueStatus struct {
	RequestID   string `json:"request_id"`
	Status      string `json:"status"`
	StatusURL   string `json:"status_url"`
	ResponseURL string `json:"response_url"`
}

// NewFalProvider creates a fal.ai provider
func NewFalProvider(cfg FalConfig) *FalProvider {
	p := &FalProvider{
		key:          cfg.Key,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		pollInterval: cfg.PollInterval,
		client:       cfg.HTTPClient,
	}
	if p.baseURL == "" {
		p.baseURL = "https://" + defaultFalHost
	}
	if p.pollInterval <= 0 {
		p.pollInterval = defaultPollInterval
	}
	if p.client == nil {
		p.client = &http.Client{Timeout: 60 * time.Second}
	}
	return p
}

func (p *FalProvider) Name() string { return falProviderName }

func (p *FalProvider) Troubleshooting() map[string]string {
	return map[string]string{
		"checkApiKey":     "Verify FAL_KEY in .env matches your fal.ai API key",
		"checkModels":     "Visit https://fal.ai/models to see available video generation models",
		"checkParameters": "Review the model documentation for required parameters",
		"checkNetwork":    "Ensure your server can reach fal.ai servers",
	}
}

// Generate tries every fal model for the request mode
func (p *FalProvider) Generate(ctx context.Context, req models.GenerationRequest) (*Output, error) {
	modelIDs := FalTextModels
	input := map[string]interface{}{"prompt": req.Prompt}
	if req.Mode == models.ModeImage {
		modelIDs = FalImageModels
		input = map[string]interface{}{
			"image_url": req.ImageURL,
			"prompt":    promptOrDefault(req.Prompt),
		}
	}

	return runModels(ctx, p.Name(), modelIDs, func(ctx context.Context, model string) (string, error) {
		return p.run(ctx, model, input)
	})
}

func (p *FalProvider) headers() http.Header {
	h := http.Header{}
	h.Set("Authorization", "Key "+p.key)
	return h
}

// run submits to the queue, polls the status url and fetches the result
func (p *FalProvider) run(ctx context.Context, model string, input map[string]interface{}) (string, error) {
	var queued falQueueStatus
	if err := doJSON(ctx, p.client, http.MethodPost, p.baseURL+"/fal-ai/"+model, p.headers(), input, &queued); err != nil {
		return "", err
	}
	if queued.StatusURL == "" || queued.ResponseURL == "" {
		return "", fmt.Errorf("%w: queue response missing status or response url", errInvalidResponse)
	}
	utils.LogDebug("fal request %s queued for model %s", queued.RequestID, model)

	status := queued.Status
	for status != "COMPLETED" {
		switch status {
		case "", "IN_QUEUE", "IN_PROGRESS":
		default:
			return "", fmt.Errorf("fal request %s ended with status %s", queued.RequestID, status)
		}
		if err := sleepCtx(ctx, p.pollInterval); err != nil {
			return "", err
		}

		var current falQueueStatus
		if err := doJSON(ctx, p.client, http.MethodGet, queued.StatusURL, p.headers(), nil, &current); err != nil {
			return "", err
		}
		status = current.Status
		if status == "IN_PROGRESS" {
			utils.LogDebug("Generating video with %s (request %s)", model, queued.RequestID)
		}
	}

	var result interface{}
	if err := doJSON(ctx, p.client, http.MethodGet, queued.ResponseURL, p.headers(), nil, &result); err != nil {
		return "", err
	}
	videoURL := ExtractVideoURL(result)
	if videoURL == "" {
		return "", errNoVideoURL
	}
	return videoURL, nil
}
