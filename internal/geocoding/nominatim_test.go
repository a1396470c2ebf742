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
)

func TestNominatimProvider_Geocode(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()

	t.Run("successfull geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "GET", req.Method)
				assert.Equal(t, "221B Baker Street London", req.URL.Query().Get("q"))
				assert.Equal(t, "json", req.URL.Query().Get("format"))
				assert.Equal(t, "1", req.URL.Query().Get("limit"))
				assert.NotEmpty(t, req.Header.Get("User-Agent"))

				responseBody := `[{"lat":"51.5237629","lon":"-0.1584743"}]`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, logger)
		coords, err := provider.Geocode(ctx, "221B Baker Street London")

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.InEpsilon(t, 51.5237629, coords.Latitude, 0.0001)
		assert.InEpsilon(t, -0.1584743, coords.Longitude, 0.0001)
	})

	t.Run("empty result list", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`[]`)),
				}, nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, logger)
		coords, err := provider.Geocode(ctx, "nowhere at all")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrNominatimEmptyResponse)
	})

	t.Run("invalid coordinates in response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`[{"lat":"garbage","lon":"-0.15"}]`)),
				}, nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, logger)
		coords, err := provider.Geocode(ctx, "221B Baker Street London")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrNominatimInvalidCoords)
	})

	t.Run("non-OK status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusTooManyRequests,
					Body:       io.NopCloser(bytes.NewBufferString(`slow down`)),
				}, nil
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, logger)
		coords, err := provider.Geocode(ctx, "221B Baker Street London")

		require.Nil(t, coords)
		require.ErrorContains(t, err, "status 429")
	})
}
