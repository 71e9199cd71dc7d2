package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// DefaultExtension is the suffix identifying markdown sources.
const DefaultExtension = ".md"

// StoreConfig locates the content directory.
type StoreConfig struct {
	Root      string
	Extension string
}

// Store enumerates and reads markdown sources from one flat directory.
type Store struct {
	root      string
	extension string
	logger    interfaces.Logger
}

// NewStore builds a Store. A nil logger disables logging.
func NewStore(cfg StoreConfig, logger interfaces.Logger) *Store {
	ext := strings.TrimSpace(cfg.Extension)
	if ext == "" {
		ext = DefaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Store{
		root:      filepath.Clean(cfg.Root),
		extension: strings.ToLower(ext),
		logger:    logger,
	}
}

// ListContentFiles lists markdown filenames in root using the default
// extension.
func ListContentFiles(ctx context.Context, root string) ([]string, error) {
	return NewStore(StoreConfig{Root: root}, nil).List(ctx)
}

// ReadContentFile reads one file from root. See Store.Read.
func ReadContentFile(ctx context.Context, root, name string) ([]byte, error) {
	return NewStore(StoreConfig{Root: root}, nil).Read(ctx, name)
}

// Root returns the cleaned content directory.
func (s *Store) Root() string { return s.root }

// List returns the markdown filenames directly under the root, in directory
// order. A missing root is created and reported as empty.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		if mkErr := os.MkdirAll(s.root, 0o755); mkErr != nil {
			return nil, StorageError(mkErr, "create", s.root)
		}
		s.logger.Info("blog.content.root_created", "path", s.root)
		return []string{}, nil
	}
	if err != nil {
		return nil, StorageError(err, "list", s.root)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !s.matches(entry.Name()) {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

// Read loads one source file by name. Names containing path separators are
// rejected so lookups cannot leave the root. A missing file keeps
// fs.ErrNotExist in the chain.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("content file %q: %w", name, fs.ErrNotExist)
	}

	data, err := os.ReadFile(filepath.Join(s.root, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("content file %q: %w", name, err)
	}
	if err != nil {
		return nil, StorageError(err, "read", filepath.Join(s.root, name))
	}
	return data, nil
}

// ModTime reports the content directory's modification time. A missing root
// yields the zero time.
func (s *Store) ModTime() (time.Time, error) {
	info, err := os.Stat(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, StorageError(err, "stat", s.root)
	}
	return info.ModTime(), nil
}

// SlugFor strips the markdown extension from a filename.
func (s *Store) SlugFor(name string) string {
	return name[:len(name)-len(s.extension)]
}

// FileFor maps a slug back to its source filename.
func (s *Store) FileFor(slug string) string {
	return slug + s.extension
}

// Matches reports whether name carries the markdown extension.
func (s *Store) Matches(name string) bool { return s.matches(name) }

func (s *Store) matches(name string) bool {
	if len(name) <= len(s.extension) {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), s.extension)
}
