package transcript

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newGenerator(endpoint string) *HTTPGenerator {
	return NewHTTPGenerator(endpoint, 2*time.Second, logs.GetLoggerFromLevel(slog.LevelDebug))
}

func TestHTTPGenerator_Generate(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in generateRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(generateResponse{Transcript: "[00:01] Tutor: hello from " + in.VideoURL})
	}))
	defer srv.Close()

	text, err := newGenerator(srv.URL).Generate(context.Background(), "https://videos.example/v1.mp4")
	req.NoError(err)
	req.Equal("[00:01] Tutor: hello from https://videos.example/v1.mp4", text)
}

func TestHTTPGenerator_EmptyTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"transcript":"  "}`))
	}))
	defer srv.Close()

	text, err := newGenerator(srv.URL).Generate(context.Background(), "https://videos.example/v1.mp4")
	require.NoError(t, err)
	require.Equal(t, EmptyTranscript, text)
}

func TestHTTPGenerator_Errors(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer failing.Close()

	tests := []struct {
		name     string
		endpoint string
		videoURL string
		wantErr  error
	}{
		{name: "not configured", endpoint: "", videoURL: "https://v", wantErr: ErrNotConfigured},
		{name: "empty url", endpoint: failing.URL, videoURL: " ", wantErr: ErrEmptyVideoURL},
		{name: "upstream failure", endpoint: failing.URL, videoURL: "https://v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newGenerator(tt.endpoint).Generate(context.Background(), tt.videoURL)
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Generate(context.Background(), "https://v")
	require.ErrorIs(t, err, ErrNotConfigured)
}
