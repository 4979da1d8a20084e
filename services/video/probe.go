package video

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Govind-619/ClipCraft/utils"
)

const probeTimeout = 10 * time.Second

// DefaultProbeEndpoints are tried in order by the fal connectivity probe
var DefaultProbeEndpoints = []string{
	"https://api.fal.ai/v1/models",
	"https://gateway.alpha.fal.ai/models",
}

// Prober checks that the fal key works and the fal API is reachable
type Prober struct {
	key       string
	endpoints []string
	client    *http.Client
}

// NewProber creates a probe. With no endpoints the defaults are used.
func NewProber(key string, endpoints []string, client *http.Client) *Prober {
	if len(endpoints) == 0 {
		endpoints = DefaultProbeEndpoints
	}
	if client == nil {
		client = &http.Client{}
	}
	return &Prober{key: key, endpoints: endpoints, client: client}
}

// Probe returns the HTTP status and JSON body describing the outcome
func (p *Prober) Probe(ctx context.Context) (int, map[string]interface{}) {
	if p.key == "" {
		return http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "FAL_KEY not found in environment variables",
		}
	}

	for _, endpoint := range p.endpoints {
		host := endpointHost(endpoint)
		status, body, err := p.get(ctx, endpoint)
		if err != nil {
			class := Classify(err)
			if class == ClassDNS {
				utils.LogError("Probe DNS failure for %s: %v", host, err)
				continue
			}
			utils.LogError("Probe network error for %s: %v", host, err)
			return http.StatusInternalServerError, map[string]interface{}{
				"success":  false,
				"error":    "Network error",
				"message":  err.Error(),
				"details":  string(class),
				"endpoint": host,
				"troubleshooting": map[string]interface{}{
					"dnsError":        false,
					"connectionError": isConnectionError(err),
					"suggestion":      "Check network connectivity to fal.ai servers",
				},
			}
		}

		switch status {
		case http.StatusOK:
			var data interface{}
			if jsonErr := json.Unmarshal(body, &data); jsonErr == nil {
				return http.StatusOK, map[string]interface{}{
					"success":      true,
					"message":      "API key is valid! Successfully connected to fal.ai",
					"statusCode":   status,
					"endpoint":     host,
					"data":         data,
					"apiKeyFormat": p.keyFormat(),
				}
			}
			raw := string(body)
			if len(raw) > 500 {
				raw = raw[:500]
			}
			return http.StatusOK, map[string]interface{}{
				"success":     true,
				"message":     "API key appears to be valid (connected successfully)",
				"statusCode":  status,
				"endpoint":    host,
				"rawResponse": raw,
			}
		case http.StatusUnauthorized:
			return http.StatusUnauthorized, map[string]interface{}{
				"success":    false,
				"error":      "API key authentication failed",
				"message":    "The API key appears to be invalid or expired",
				"statusCode": status,
				"endpoint":   host,
			}
		default:
			utils.LogInfo("Probe endpoint %s answered %d, trying next", host, status)
		}
	}

	return http.StatusInternalServerError, map[string]interface{}{
		"success":      false,
		"error":        "All API endpoints failed",
		"message":      "Could not connect to any fal.ai endpoints",
		"apiKeyFormat": p.keyFormat(),
		"troubleshooting": map[string]interface{}{
			"checkApiKey":  "Verify your FAL_KEY is correct at https://fal.ai/dashboard",
			"checkNetwork": "Ensure your server can reach fal.ai servers",
			"checkDNS":     "Test DNS resolution: nslookup api.fal.ai",
		},
	}
}

func (p *Prober) get(ctx context.Context, endpoint string) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Key "+p.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func (p *Prober) keyFormat() map[string]interface{} {
	return map[string]interface{}{
		"provided":     utils.MaskSecret(p.key, 20),
		"hasKeySecret": strings.Contains(p.key, ":"),
	}
}

func endpointHost(endpoint string) string {
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		return u.Host
	}
	return endpoint
}

func isConnectionError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") || Classify(err) == ClassTimeout
}
