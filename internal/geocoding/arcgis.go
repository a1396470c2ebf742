package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/models"
	"golang.org/x/time/rate"
)

// ArcgisBaseURL -- ArcGIS World Geocoding Service base URL.
const ArcgisBaseURL = "https://geocode.arcgis.com/arcgis/rest/services/World/GeocodeServer/findAddressCandidates"

// ArcgisProvider implements geocoding using the ArcGIS World Geocoding Service.
// The findAddressCandidates operation is free for non-stored results and does
// not require an API key.
type ArcgisProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the ArcGIS API
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// Common errors for ArcGIS provider.
var (
	ErrArcgisEmptyResponse = errors.New("arcgis API returned no candidates")
	ErrArcgisEmptyAddress  = errors.New("arcgis provider got empty address")
)

// ArcGIS API response (simplified for geocoding use-case).
type arcgisResponse struct {
	Candidates []struct {
		Location struct {
			X float64 `json:"x"` // Longitude
			Y float64 `json:"y"` // Latitude
		} `json:"location"`
	} `json:"candidates"`
}

// NewArcgisProvider creates a new ArcGIS geocoding provider.
func NewArcgisProvider(rateLimit int, log *slog.Logger) *ArcgisProvider {
	const timeout = 10

	return &ArcgisProvider{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: ArcgisBaseURL,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}
}

// NewArcgisProviderWithClient allows injecting custom HTTP client.
func NewArcgisProviderWithClient(client HTTPClient, limiter *rate.Limiter, log *slog.Logger) *ArcgisProvider {
	return &ArcgisProvider{
		client:  client,
		baseURL: ArcgisBaseURL,
		log:     log,
		limiter: limiter,
	}
}

// Geocode converts an address into geographic coordinates using the ArcGIS API.
func (ap *ArcgisProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	if err := ap.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	ap.log.DebugContext(ctx, "Geocoding using ArcGIS", "address", address)

	if address == "" {
		return nil, ErrArcgisEmptyAddress
	}

	reqURL, err := url.Parse(ap.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("singleLine", address)
	query.Set("f", "json")
	query.Set("maxLocations", "1")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := ap.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		ap.log.ErrorContext(ctx, "ArcGIS API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("arcgis API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result arcgisResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode arcgis response: %w", err)
	}

	if len(result.Candidates) == 0 {
		return nil, ErrArcgisEmptyResponse
	}

	location := result.Candidates[0].Location

	ap.log.DebugContext(ctx, "ArcGIS found result", "address", address, "lat", location.Y, "lon", location.X)

	return &models.Coordinates{
		Latitude:  location.Y,
		Longitude: location.X,
	}, nil
}
