package geocoding_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/waypoint/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient implements geocoding.HTTPClient with a scripted Do func.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestArcgisProvider_Geocode(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	defaultRL := rate.NewLimiter(rate.Inf, 0)

	t.Run("successfull geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				// Verify request parameters
				assert.Equal(t, "GET", req.Method)
				assert.Contains(t, req.URL.String(), geocoding.ArcgisBaseURL)
				assert.Equal(t, "1600 Amphitheatre Parkway Mountain View CA", req.URL.Query().Get("singleLine"))
				assert.Equal(t, "json", req.URL.Query().Get("f"))
				assert.Equal(t, "1", req.URL.Query().Get("maxLocations"))

				responseBody := `{"candidates":[{"address":"1600 Amphitheatre Pkwy","location":{"x":-122.0842499,"y":37.4224764},"score":100}]}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := geocoding.NewArcgisProviderWithClient(mockClient, defaultRL, logger)
		coords, err := provider.Geocode(ctx, "1600 Amphitheatre Parkway Mountain View CA")

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.InEpsilon(t, 37.4224764, coords.Latitude, 0.0001)
		assert.InEpsilon(t, -122.0842499, coords.Longitude, 0.0001)
	})

	t.Run("no candidates", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{"candidates":[]}`)),
				}, nil
			},
		}

		provider := geocoding.NewArcgisProviderWithClient(mockClient, defaultRL, logger)
		coords, err := provider.Geocode(ctx, "somewhere that does not exist")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrArcgisEmptyResponse)
	})

	t.Run("empty address", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("no request expected for empty address")
				return nil, nil
			},
		}

		provider := geocoding.NewArcgisProviderWithClient(mockClient, defaultRL, logger)
		coords, err := provider.Geocode(ctx, "")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrArcgisEmptyAddress)
	})

	t.Run("non-OK status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusInternalServerError,
					Body:       io.NopCloser(bytes.NewBufferString(`upstream broke`)),
				}, nil
			},
		}

		provider := geocoding.NewArcgisProviderWithClient(mockClient, defaultRL, logger)
		coords, err := provider.Geocode(ctx, "10 Downing Street London")

		require.Nil(t, coords)
		require.Error(t, err)
		require.ErrorContains(t, err, "status 500")
	})

	t.Run("transport error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		provider := geocoding.NewArcgisProviderWithClient(mockClient, defaultRL, logger)
		coords, err := provider.Geocode(ctx, "10 Downing Street London")

		require.Nil(t, coords)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("malformed response body", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`not json`)),
				}, nil
			},
		}

		provider := geocoding.NewArcgisProviderWithClient(mockClient, defaultRL, logger)
		coords, err := provider.Geocode(ctx, "10 Downing Street London")

		require.Nil(t, coords)
		require.ErrorContains(t, err, "failed to decode arcgis response")
	})
}
