package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	disol_errors "github.com/pr-poehali-dev/ai-programmer-disol/pkg/errors"
)

// Fixed generation parameters.
const (
	Width    = 1024
	Height   = 1024
	Steps    = 30
	CfgScale = 7
	Samples  = 1
)

type StabilityProvider struct {
	APIURL string
	APIKey string
	Client *http.Client
}

// NewStabilityProvider allows an empty key; TextToImage reports it as a configuration error.
// The HTTP client has no timeout: outbound calls block until the API answers
// or the request context is cancelled.
func NewStabilityProvider(apiURL, apiKey string) *StabilityProvider {
	return &StabilityProvider{
		APIURL: apiURL,
		APIKey: apiKey,
		Client: &http.Client{},
	}
}

// --- Request/Response structs (Internal to this package) ---

type textPrompt struct {
	Text string `json:"text"`
}

type textToImageRequest struct {
	TextPrompts []textPrompt `json:"text_prompts"`
	CfgScale    int          `json:"cfg_scale"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
}

type artifact struct {
	Base64       string `json:"base64"`
	Seed         int64  `json:"seed"`
	FinishReason string `json:"finishReason"`
}

type textToImageResponse struct {
	Artifacts []artifact `json:"artifacts"`
}

// TextToImage renders prompt and returns the decoded PNG bytes.
func (p *StabilityProvider) TextToImage(ctx context.Context, prompt string) ([]byte, error) {
	if p.APIKey == "" {
		return nil, disol_errors.Configuration("STABILITY_API_KEY is required")
	}

	payload, err := json.Marshal(textToImageRequest{
		TextPrompts: []textPrompt{{Text: prompt}},
		CfgScale:    CfgScale,
		Height:      Height,
		Width:       Width,
		Samples:     Samples,
		Steps:       Steps,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.APIURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, disol_errors.Upstream("image generation failed",
			fmt.Errorf("stability API status %d: %s", resp.StatusCode, string(body)))
	}

	var out textToImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, disol_errors.Upstream("image generation returned an unreadable response", err)
	}
	if len(out.Artifacts) == 0 {
		return nil, disol_errors.Upstream("image generation returned no artifacts", nil)
	}

	image, err := base64.StdEncoding.DecodeString(out.Artifacts[0].Base64)
	if err != nil {
		return nil, disol_errors.Upstream("image generation returned invalid base64", err)
	}
	return image, nil
}
