package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	httpClient "github.com/cyphera/cyphera-relay/internal/client/http"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
}

type recordingCollector struct {
	calls atomic.Int32
}

func (r *recordingCollector) ObserveRequest(string, string, int, time.Duration, error) {
	r.calls.Add(1)
}

func fastRetries() *httpClient.RetryConfig {
	cfg := httpClient.DefaultRetryConfig()
	cfg.InitialInterval = time.Millisecond
	cfg.MaxInterval = 5 * time.Millisecond
	return cfg
}

func TestHTTPClient_GetJSON(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []int
		wantAttempts int32
		wantStatus   int
	}{
		{name: "first attempt succeeds", statuses: []int{200}, wantAttempts: 1},
		{name: "retries transient status", statuses: []int{503, 502, 200}, wantAttempts: 3},
		{name: "does not retry client error", statuses: []int{404}, wantAttempts: 1, wantStatus: 404},
		{name: "gives up after max retries", statuses: []int{500, 500, 500, 500, 500}, wantAttempts: 4, wantStatus: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := attempts.Add(1)
				assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
				assert.Equal(t, "ETH", r.URL.Query().Get("symbol"))
				w.WriteHeader(tt.statuses[n-1])
				_, _ = w.Write([]byte(`{"price": 42}`))
			}))
			defer server.Close()

			collector := &recordingCollector{}
			client := httpClient.NewHTTPClient(
				httpClient.WithBaseURL(server.URL+"/"),
				httpClient.WithRetryConfig(fastRetries()),
				httpClient.WithMetricsCollector(collector),
			)

			var out struct {
				Price int `json:"price"`
			}
			err := client.GetJSON(context.Background(), "quotes", &out,
				httpClient.WithHeader("X-Api-Key", "secret"),
				httpClient.WithQueryParam("symbol", "ETH"))

			assert.Equal(t, tt.wantAttempts, attempts.Load())
			assert.Equal(t, int32(1), collector.calls.Load())
			if tt.wantStatus != 0 {
				var httpErr *httpClient.HTTPError
				require.True(t, errors.As(err, &httpErr))
				assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 42, out.Price)
		})
	}
}

func TestHTTPClient_PostJSONResendsBody(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"to":"ops"}`, string(buf))
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := httpClient.NewHTTPClient(httpClient.WithBaseURL(server.URL), httpClient.WithRetryConfig(fastRetries()))
	err := client.PostJSON(context.Background(), "/alerts", map[string]string{"to": "ops"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), attempts.Load())
}
