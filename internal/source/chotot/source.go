package chotot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"reeltor/internal/domain"
)

const sourceName = "chotot"

// Query parameters baked into every listing request: real-estate category,
// first page, sticky+urgent listings, expired ads included.
const (
	queryCategory = "1000"
	queryPage     = "1"
	querySP       = "1"
	queryST       = "u,h"
)

// Config holds the listing gateway configuration.
type Config struct {
	BaseURL     string
	Limit       int
	Fingerprint string
	Timeout     time.Duration
}

// Source pulls one page of listings from the ad-listing gateway.
type Source struct {
	httpClient  *http.Client
	baseURL     string
	limit       int
	fingerprint string
	logger      *slog.Logger
}

// FetchError signals a transport or non-2xx failure. The caller treats it
// as "nothing to process this cycle", not as a hard stop.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch ad listing: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func New(cfg Config, logger *slog.Logger) *Source {
	return &Source{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     cfg.BaseURL,
		limit:       cfg.Limit,
		fingerprint: cfg.Fingerprint,
		logger:      logger.With("source", sourceName),
	}
}

// Name returns the source identifier.
func (s *Source) Name() string {
	return sourceName
}

// Fetch issues a single GET against the listing endpoint and returns the
// normalized batch. Single-shot: retries are the scheduler's concern.
func (s *Source) Fetch(ctx context.Context) ([]domain.ListingRecord, error) {
	resp, err := s.doRequest(ctx)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	records := make([]domain.ListingRecord, 0, len(resp.Ads))
	for _, ad := range resp.Ads {
		records = append(records, normalizeAd(ad))
	}

	s.logger.Debug("fetched listing page",
		"total", resp.Total,
		"ads", len(records),
	)

	return records, nil
}

func (s *Source) doRequest(ctx context.Context) (*APIResponse, error) {
	q := url.Values{}
	q.Set("cg", queryCategory)
	q.Set("page", queryPage)
	q.Set("sp", querySP)
	q.Set("st", queryST)
	q.Set("limit", fmt.Sprint(s.limit))
	q.Set("fingerprint", s.fingerprint)
	q.Set("include_expired_ads", "true")
	q.Set("key_param_included", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "ru,en-US;q=0.9,en;q=0.8")
	req.Header.Set("ct-fingerprint", s.fingerprint)
	req.Header.Set("ct-platform", "web")
	req.Header.Set("Referer", "https://www.nhatot.com/")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &apiResp, nil
}
