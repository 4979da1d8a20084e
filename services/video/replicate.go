package video

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Govind-619/ClipCraft/models"
	"github.com/Govind-619/ClipCraft/utils"
	"github.com/replicate/replicate-go"
	"github.com/sethvargo/go-retry"
)

// Replicate model ids in priority order
var (
	ReplicateTextModels = []string{
		"anotherjesse/zeroscope-v2-xl",
		"anotherjesse/zeroscope-v2-576w",
	}
	ReplicateImageModels = []string{
		"lucataco/animate-lcm",
		"anotherjesse/zeroscope-v2-xl",
	}
)

const (
	replicateProviderName = "replicate"
	defaultReplicateURL   = "https://api.replicate.com/v1"
	defaultMaxAttempts    = 3
	defaultBackoffBase    = 10 * time.Second
	maxRetryDelay         = 2 * time.Minute
)

// ReplicateConfig configures the Replicate predictions client
type ReplicateConfig struct {
	Token string
	// BaseURL is the API root including the version prefix
	BaseURL      string
	PollInterval time.Duration
	// BackoffBase is the first exponential wait when the vendor suggests none
	BackoffBase time.Duration
	MaxAttempts uint64
	HTTPClient  *http.Client
}

// ReplicateProvider generates videos through Replicate predictions
type ReplicateProvider struct {
	client       *replicate.Client
	pollInterval time.Duration
	backoffBase  time.Duration
	maxAttempts  uint64
}

// NewReplicateProvider creates a Replicate provider. The SDK's own retries are
// turned off so that rate limits are handled by runWithRetry alone.
func NewReplicateProvider(cfg ReplicateConfig) (*ReplicateProvider, error) {
	p := &ReplicateProvider{
		pollInterval: cfg.PollInterval,
		backoffBase:  cfg.BackoffBase,
		maxAttempts:  cfg.MaxAttempts,
	}
	if p.pollInterval <= 0 {
		p.pollInterval = defaultPollInterval
	}
	if p.backoffBase <= 0 {
		p.backoffBase = defaultBackoffBase
	}
	if p.maxAttempts == 0 {
		p.maxAttempts = defaultMaxAttempts
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultReplicateURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 90 * time.Second}
	}

	client, err := replicate.NewClient(
		replicate.WithToken(cfg.Token),
		replicate.WithBaseURL(baseURL),
		replicate.WithHTTPClient(httpClient),
		replicate.WithRetryPolicy(0, &replicate.ConstantBackoff{}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create replicate client: %w", err)
	}
	p.client = client
	return p, nil
}

func (p *ReplicateProvider) Name() string { return replicateProviderName }

func (p *ReplicateProvider) Troubleshooting() map[string]string {
	return map[string]string{
		"rateLimit":    "Free tier: 6 requests/min. Add payment method for higher limits at https://replicate.com/account/billing",
		"checkApiKey":  "Verify REPLICATE_API_TOKEN in .env matches your Replicate token",
		"checkModels":  "Visit https://replicate.com/models to see available video generation models",
		"checkNetwork": "Ensure your server can reach api.replicate.com",
	}
}

// Generate tries every Replicate model for the request mode
func (p *ReplicateProvider) Generate(ctx context.Context, req models.GenerationRequest) (*Output, error) {
	modelIDs := ReplicateTextModels
	input := replicate.PredictionInput{"prompt": req.Prompt}
	if req.Mode == models.ModeImage {
		modelIDs = ReplicateImageModels
		input = replicate.PredictionInput{
			"image":  req.ImageURL,
			"prompt": promptOrDefault(req.Prompt),
		}
	}

	return runModels(ctx, p.Name(), modelIDs, func(ctx context.Context, model string) (string, error) {
		return p.runWithRetry(ctx, model, input)
	})
}

// runWithRetry retries rate-limited attempts up to maxAttempts. The wait is the
// vendor-suggested delay when one is given, otherwise exponential from backoffBase.
// Any other error, including not found, ends the model immediately.
func (p *ReplicateProvider) runWithRetry(ctx context.Context, model string, input replicate.PredictionInput) (string, error) {
	var suggested time.Duration
	exponential := retry.NewExponential(p.backoffBase)
	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		next, stop := exponential.Next()
		if stop {
			return 0, true
		}
		if suggested > 0 {
			next, suggested = suggested, 0
		}
		return next, false
	})
	policy := retry.WithMaxRetries(p.maxAttempts-1, retry.WithCappedDuration(maxRetryDelay, backoff))

	var attempt uint64
	var videoURL string
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		attempt++
		utils.LogInfo("Starting prediction for model %s (attempt %d/%d)", model, attempt, p.maxAttempts)
		started := time.Now()

		url, err := p.predict(ctx, model, input)
		if err == nil {
			utils.LogInfo("Model %s completed in %ds", model, int(time.Since(started).Seconds()))
			videoURL = url
			return nil
		}

		if Classify(err) == ClassRateLimit {
			suggested = SuggestedDelay(err)
			utils.LogInfo("Rate limit hit for model %s (attempt %d/%d), suggested wait %s",
				model, attempt, p.maxAttempts, suggested)
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return "", err
	}
	return videoURL, nil
}

// predict creates a prediction and waits for it to reach a terminal status
func (p *ReplicateProvider) predict(ctx context.Context, model string, input replicate.PredictionInput) (string, error) {
	owner, name, ok := strings.Cut(model, "/")
	if !ok {
		return "", fmt.Errorf("%w: model id %q is not owner/name", errInvalidResponse, model)
	}

	pred, err := p.client.CreatePredictionWithModel(ctx, owner, name, input, nil, false)
	if err != nil {
		return "", err
	}
	if !terminal(pred.Status) {
		if err := p.client.Wait(ctx, pred, replicate.WithPollingInterval(p.pollInterval)); err != nil {
			return "", err
		}
	}

	if pred.Status != replicate.Succeeded {
		return "", fmt.Errorf("prediction %s %s: %v", pred.ID, pred.Status, pred.Error)
	}
	videoURL := ExtractVideoURL(pred.Output)
	if videoURL == "" {
		return "", errNoVideoURL
	}
	return videoURL, nil
}

func terminal(status replicate.Status) bool {
	switch status {
	case replicate.Succeeded, replicate.Failed, replicate.Canceled:
		return true
	}
	return false
}
