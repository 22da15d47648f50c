package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"grassroots/warchest/internal/models/dtos"
)

// FECFeedProvider pulls candidate reference data from the regulatory bulk
// feed over HTTP.
type FECFeedProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewFECFeedProvider() *FECFeedProvider {
	baseURL := os.Getenv("FEC_FEED_URL")
	if baseURL == "" {
		baseURL = "https://api.open.fec.gov/v1/candidates" // Default
	}
	apiKey := os.Getenv("FEC_FEED_API_KEY")

	return &FECFeedProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetProviderType returns the provider type identifier
func (p *FECFeedProvider) GetProviderType() string {
	return "fec_bulk_feed"
}

// FetchPage fetches one page of candidates, 1-based.
func (p *FECFeedProvider) FetchPage(ctx context.Context, page int) (*dtos.CandidateFeedPage, error) {
	if page < 1 {
		return nil, &ProviderError{
			Code:    ErrCodeInvalidDataFormat,
			Message: "Page number must be greater than 0",
		}
	}

	url := fmt.Sprintf("%s?page=%d", p.BaseURL, page)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, &ProviderError{
			Code:    ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}

	if p.APIKey != "" {
		req.Header.Set("X-Api-Key", p.APIKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, &ProviderError{
			Code:    ErrCodeNetworkError,
			Message: "Feed request failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{
			Code:    ErrCodeFeedUnavailable,
			Message: fmt.Sprintf("Feed returned HTTP %d", resp.StatusCode),
			Details: string(bodyBytes),
		}
	}

	var result dtos.CandidateFeedPage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ProviderError{
			Code:    ErrCodeInvalidDataFormat,
			Message: "Failed to decode feed page",
			Err:     err,
		}
	}

	return &result, nil
}
