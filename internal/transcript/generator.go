// Package transcript calls an external transcription service for course videos.
package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

var (
	ErrNotConfigured = errors.New("transcript generation is not configured")
	ErrEmptyVideoURL = errors.New("video url is required")
)

// EmptyTranscript is stored when the service answers with no text.
const EmptyTranscript = "No transcription generated"

// Generator turns a video URL into transcript text.
type Generator interface {
	Generate(ctx context.Context, videoURL string) (string, error)
}

type generateRequest struct {
	VideoURL string `json:"videoUrl"`
}

type generateResponse struct {
	Transcript string `json:"transcript"`
}

// HTTPGenerator posts {"videoUrl"} to a transcription endpoint and reads {"transcript"} back.
type HTTPGenerator struct {
	endpoint string
	client   *http.Client
	log      *slog.Logger
}

func NewHTTPGenerator(endpoint string, timeout time.Duration, log *slog.Logger) *HTTPGenerator {
	return &HTTPGenerator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

func (g *HTTPGenerator) Generate(ctx context.Context, videoURL string) (string, error) {
	if g.endpoint == "" {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(videoURL) == "" {
		return "", ErrEmptyVideoURL
	}

	body, err := json.Marshal(generateRequest{VideoURL: videoURL})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build transcript request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to generate transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("failed to generate transcript: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode transcript response: %w", err)
	}

	g.log.Debug("Transcript generated", "video_url", videoURL, "duration", time.Since(start), "chars", len(out.Transcript))
	if strings.TrimSpace(out.Transcript) == "" {
		return EmptyTranscript, nil
	}
	return out.Transcript, nil
}

// Disabled is used when no endpoint is configured.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
