package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/observability"
)

// AzureBlob uploads reply audio to an Azure Blob Storage container through a
// container SAS URL, so no account key lives in this process.
type AzureBlob struct {
	containerURL *url.URL
	httpClient   *http.Client
	logger       *observability.Logger
}

func NewAzureBlob(containerSASURL string, logger *observability.Logger) (*AzureBlob, error) {
	parsed, err := url.Parse(containerSASURL)
	if err != nil {
		return nil, fmt.Errorf("invalid container SAS URL: %w", err)
	}
	if parsed.RawQuery == "" {
		return nil, fmt.Errorf("container SAS URL is missing its SAS token")
	}
	return &AzureBlob{
		containerURL: parsed,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
	}, nil
}

// Upload puts the local file into the container under name and returns the
// blob URL without the SAS token. Re-uploading the same name overwrites.
func (a *AzureBlob) Upload(ctx context.Context, localPath, name string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to read audio file: %w", err)
	}

	blobURL := *a.containerURL
	blobURL.Path = blobURL.Path + "/" + name

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, blobURL.String(), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create blob request: %w", err)
	}
	req.Header.Set("x-ms-blob-type", "BlockBlob")
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("blob upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("blob upload returned status %d: %s", resp.StatusCode, string(respBody))
	}

	publicURL := url.URL{Scheme: blobURL.Scheme, Host: blobURL.Host, Path: blobURL.Path}
	a.logger.Info(ctx, "uploaded reply audio to blob storage",
		observability.Field{Key: "blob", Value: name})
	return publicURL.String(), nil
}
