package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zAcKeR-KrAcKeR/ai-hotel-receptionist/internal/observability"
)

// Local stores reply audio in a durable directory served by the HTTP server
// under /audio. The returned URL is public so the telephony provider can
// fetch and play it.
type Local struct {
	dir           string
	publicBaseURL string
	logger        *observability.Logger
}

func NewLocal(dir, publicBaseURL string, logger *observability.Logger) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}
	return &Local{
		dir:           dir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// Upload moves the local file into the durable directory under name. A rename
// is attempted first; it falls back to copy+remove across filesystems.
func (l *Local) Upload(ctx context.Context, localPath, name string) (string, error) {
	dest := filepath.Join(l.dir, filepath.Base(name))
	if err := os.Rename(localPath, dest); err != nil {
		if err := copyFile(localPath, dest); err != nil {
			return "", fmt.Errorf("failed to store audio file: %w", err)
		}
		os.Remove(localPath)
	}
	url := fmt.Sprintf("%s/audio/%s", l.publicBaseURL, filepath.Base(name))
	l.logger.Info(ctx, "stored reply audio",
		observability.Field{Key: "path", Value: dest},
		observability.Field{Key: "url", Value: url})
	return url, nil
}

// Dir returns the durable directory, for static file serving.
func (l *Local) Dir() string {
	return l.dir
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
