package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learntime/learntime/internal/config"
)

func testHTTPClient(maxRetries int) *HTTPClient {
	return NewHTTPClient(config.HTTPConfig{
		Timeout:     5 * time.Second,
		MaxRetries:  maxRetries,
		RetryDelays: []time.Duration{0, 0, 0, 0},
	})
}

func TestHTTPClientSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "LearnTime/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	result := testHTTPClient(3).Send(context.Background(), srv.URL, "application/json", []byte(`{}`))

	require.NoError(t, result.Error)
	assert.Equal(t, http.StatusNoContent, result.StatusCode)
	assert.Equal(t, 1, result.Attempts)
}

func TestHTTPClientRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	result := testHTTPClient(3).Send(context.Background(), srv.URL, "application/json", []byte(`{}`))

	require.NoError(t, result.Error)
	assert.Equal(t, 2, result.Attempts)
}

func TestHTTPClientRetriesRateLimits(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	result := testHTTPClient(3).Send(context.Background(), srv.URL, "application/json", []byte(`{}`))

	require.NoError(t, result.Error)
	assert.Equal(t, 2, result.Attempts)
}

func TestHTTPClientDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	result := testHTTPClient(3).Send(context.Background(), srv.URL, "application/json", []byte(`{}`))

	require.Error(t, result.Error)
	assert.Equal(t, int32(1), hits.Load())
}

func TestHTTPClientExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	result := testHTTPClient(2).Send(context.Background(), srv.URL, "application/json", []byte(`{}`))

	require.Error(t, result.Error)
	assert.Equal(t, 3, result.Attempts)
}
