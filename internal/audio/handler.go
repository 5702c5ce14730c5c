package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/observability"
)

// Handler fetches call recordings into ephemeral storage and cleans them up.
type Handler struct {
	httpClient *http.Client
	logger     *observability.Logger
}

func New(logger *observability.Logger) *Handler {
	return &Handler{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// IsRemote reports whether the recording reference needs downloading.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Download fetches a recording URL into a temp WAV file and returns its path.
// An unreachable URL or an empty body is an error; the caller treats either
// as a failed acquisition.
func (h *Handler) Download(ctx context.Context, recordingURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, recordingURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create recording request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download recording: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("recording download returned status %d", resp.StatusCode)
	}

	tempFile, err := os.CreateTemp("", "recording-*.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tempFile.Close()

	written, err := io.Copy(tempFile, resp.Body)
	if err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to write recording: %w", err)
	}
	if written == 0 {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("recording is empty")
	}

	h.logger.Info(ctx, "downloaded recording",
		observability.Field{Key: "bytes", Value: written},
		observability.Field{Key: "path", Value: tempFile.Name()})
	return tempFile.Name(), nil
}

// Cleanup removes an ephemeral file. Missing files are not an error; cleanup
// runs on every exit path and may race a rename into durable storage.
func (h *Handler) Cleanup(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		h.logger.Warn(ctx, "could not delete temp file",
			observability.Field{Key: "path", Value: path},
			observability.Field{Key: "error", Value: err.Error()})
	}
}
