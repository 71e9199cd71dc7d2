package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactWriter persists generated documents.
type ArtifactWriter interface {
	WriteFile(ctx context.Context, path string, content []byte) error
}

// FileWriter writes artifacts to the local filesystem, creating parent
// directories and replacing the target atomically.
type FileWriter struct{}

var _ ArtifactWriter = FileWriter{}

func (FileWriter) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		return errors.New("generator: write requires path")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
