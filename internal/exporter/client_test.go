package exporter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/metricsvc/internal/domain/models"
	"github.com/turtacn/metricsvc/pkg/errors"
)

func TestClient_Fetch(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		_, _ = rw.Write([]byte(`{"400_count": 10, "500_count": 5, "request_count": 100}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", time.Second)
	snap, err := client.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/metrics", gotPath)
	assert.Equal(t, models.Snapshot{ClientErrorCount: 10, ServerErrorCount: 5, RequestCount: 100}, snap)
}

func TestClient_FetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name:    "bad request status",
			handler: func(rw http.ResponseWriter, _ *http.Request) { rw.WriteHeader(http.StatusBadRequest) },
			wantErr: errors.ErrScrapeStatus,
		},
		{
			name:    "not found status",
			handler: func(rw http.ResponseWriter, _ *http.Request) { rw.WriteHeader(http.StatusNotFound) },
			wantErr: errors.ErrScrapeStatus,
		},
		{
			name:    "malformed body",
			handler: func(rw http.ResponseWriter, _ *http.Request) { _, _ = rw.Write([]byte(`invalid json`)) },
			wantErr: errors.ErrScrapeDecode,
		},
		{
			name: "wrong field type",
			handler: func(rw http.ResponseWriter, _ *http.Request) {
				_, _ = rw.Write([]byte(`{"400_count": "invalid", "500_count": 5, "request_count": 100}`))
			},
			wantErr: errors.ErrScrapeDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewClient(server.URL, time.Second).Fetch(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestClient_FetchTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		select {
		case <-release:
		case <-req.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := NewClient(server.URL, 50*time.Millisecond).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrScrapeRequest))
}

func TestClient_FetchInvalidURL(t *testing.T) {
	_, err := NewClient("invalidurl", time.Second).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrScrapeRequest))
}

func TestClient_FetchUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(url, time.Second).Fetch(context.Background())
	assert.True(t, errors.Is(err, errors.ErrScrapeRequest))
}
