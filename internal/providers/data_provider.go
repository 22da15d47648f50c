package providers

import (
	"context"
	"fmt"

	"grassroots/warchest/internal/models/dtos"
)

// CandidateFeedProvider is the interface for sources of candidate reference
// data. The regulatory feed is the only production implementation; tests
// swap in a stub.
type CandidateFeedProvider interface {
	// FetchPage fetches one page of the feed, 1-based
	FetchPage(ctx context.Context, page int) (*dtos.CandidateFeedPage, error)

	// GetProviderType returns the provider type identifier
	GetProviderType() string
}

// ProviderError wraps failures from external data sources with enough
// context to log without string-matching.
type ProviderError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

const (
	ErrCodeNetworkError      = "NETWORK_ERROR"
	ErrCodeInvalidDataFormat = "INVALID_DATA_FORMAT"
	ErrCodeFeedUnavailable   = "FEED_UNAVAILABLE"
)
