package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/observability"
)

func TestLocalUpload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	local, err := NewLocal(filepath.Join(dir, "audio"), "https://hotel.example.com/", observability.NewLogger())
	require.NoError(t, err)

	src := filepath.Join(dir, "reply.wav")
	require.NoError(t, os.WriteFile(src, []byte("RIFF"), 0o644))

	url, err := local.Upload(context.Background(), src, "response_911_abc.wav")
	require.NoError(t, err)
	assert.Equal(t, "https://hotel.example.com/audio/response_911_abc.wav", url)

	stored, err := os.ReadFile(filepath.Join(local.Dir(), "response_911_abc.wav"))
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF"), stored)

	// Source file was moved, not copied.
	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalUploadOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	local, err := NewLocal(filepath.Join(dir, "audio"), "https://hotel.example.com", observability.NewLogger())
	require.NoError(t, err)

	for _, content := range []string{"first", "second"} {
		src := filepath.Join(dir, "greeting.wav")
		require.NoError(t, os.WriteFile(src, []byte(content), 0o644))
		_, err := local.Upload(context.Background(), src, "greeting_CA1.wav")
		require.NoError(t, err)
	}

	stored, err := os.ReadFile(filepath.Join(local.Dir(), "greeting_CA1.wav"))
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), stored)
}

func TestLocalUploadStripsPathComponents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	local, err := NewLocal(filepath.Join(dir, "audio"), "https://hotel.example.com", observability.NewLogger())
	require.NoError(t, err)

	src := filepath.Join(dir, "reply.wav")
	require.NoError(t, os.WriteFile(src, []byte("RIFF"), 0o644))

	url, err := local.Upload(context.Background(), src, "../escape.wav")
	require.NoError(t, err)
	assert.Equal(t, "https://hotel.example.com/audio/escape.wav", url)

	_, err = os.Stat(filepath.Join(local.Dir(), "escape.wav"))
	assert.NoError(t, err)
}
