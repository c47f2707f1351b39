package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "matchmaker/internal/errors"
)

// maxGeocodeBody is the largest upstream reply relayed; anything longer is an error.
const maxGeocodeBody = 1 << 20

// GeocodeResult is the upstream reply, relayed verbatim.
type GeocodeResult struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// GeocodeService proxies address lookups to the third-party geocoder so the
// API key never reaches the browser.
type GeocodeService interface {
	Geocode(ctx context.Context, address string) (*GeocodeResult, error)
}

type geocodeService struct {
	client   *http.Client
	endpoint string
	apiKey   string
	maxBody  int64
	observe  func(outcome string)
}

// NewGeocodeService creates a new geocoding proxy. observe, if non-nil, is
// told the outcome of each call ("ok", "upstream_status" or "error").
func NewGeocodeService(endpoint, apiKey string, timeout time.Duration, observe func(outcome string)) GeocodeService {
	if observe == nil {
		observe = func(string) {}
	}
	return &geocodeService{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		apiKey:   apiKey,
		maxBody:  maxGeocodeBody,
		observe:  observe,
	}
}

// Geocode forwards address and returns the upstream status and body unchanged.
// Only a transport failure or an oversized reply is an error.
func (s *geocodeService) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse geocode endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", s.apiKey)
	q.Set("address", address)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.observe("error")
		return nil, &apperrors.UpstreamError{Service: "geocode", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBody+1))
	if err != nil {
		s.observe("error")
		return nil, &apperrors.UpstreamError{Service: "geocode", Err: err}
	}
	if int64(len(body)) > s.maxBody {
		s.observe("error")
		return nil, &apperrors.UpstreamError{Service: "geocode", Err: fmt.Errorf("reply exceeds %d bytes", s.maxBody)}
	}

	outcome := "ok"
	if resp.StatusCode >= http.StatusBadRequest {
		outcome = "upstream_status"
		log.Ctx(ctx).Warn().Int("status", resp.StatusCode).Msg("geocoder returned an error status")
	}
	s.observe(outcome)

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	return &GeocodeResult{StatusCode: resp.StatusCode, ContentType: contentType, Body: body}, nil
}
