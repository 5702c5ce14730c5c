package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/observability"
)

func TestNewAzureBlobRequiresSASToken(t *testing.T) {
	t.Parallel()

	_, err := NewAzureBlob("https://acct.blob.core.windows.net/audio", observability.NewLogger())
	assert.ErrorContains(t, err, "SAS token")
}

func TestAzureBlobUpload(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery, gotBlobType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotBlobType = r.Header.Get("x-ms-blob-type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	blob, err := NewAzureBlob(srv.URL+"/audio?sv=2024&sig=abc", observability.NewLogger())
	require.NoError(t, err)

	src := filepath.Join(t.TempDir(), "reply.wav")
	require.NoError(t, os.WriteFile(src, []byte("RIFF"), 0o644))

	url, err := blob.Upload(context.Background(), src, "response_911_abc.wav")
	require.NoError(t, err)

	assert.Equal(t, "/audio/response_911_abc.wav", gotPath)
	assert.Equal(t, "sv=2024&sig=abc", gotQuery)
	assert.Equal(t, "BlockBlob", gotBlobType)
	assert.Equal(t, []byte("RIFF"), gotBody)

	// The returned URL never carries the SAS token.
	assert.Equal(t, srv.URL+"/audio/response_911_abc.wav", url)
}

func TestAzureBlobUploadRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	blob, err := NewAzureBlob(srv.URL+"/audio?sig=expired", observability.NewLogger())
	require.NoError(t, err)

	src := filepath.Join(t.TempDir(), "reply.wav")
	require.NoError(t, os.WriteFile(src, []byte("RIFF"), 0o644))

	_, err = blob.Upload(context.Background(), src, "response.wav")
	assert.ErrorContains(t, err, "status 403")
}
