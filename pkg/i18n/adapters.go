package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path"
	"path/filepath"

	"github.com/dmitrymomot/rulekit/pkg/logger"
)

// TranslationAdapter loads a catalogue keyed by language.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves an in-memory catalogue.
type MapAdapter struct {
	Data map[string]map[string]any
}

// Load implements TranslationAdapter.
func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return make(map[string]map[string]any), nil
	}
	return a.Data, nil
}

// FileAdapter loads a single translation file.
type FileAdapter struct {
	parser Parser
	path   string
}

// NewFileAdapter creates a FileAdapter. A nil parser is chosen from the
// file extension at load time.
func NewFileAdapter(parser Parser, path string) *FileAdapter {
	return &FileAdapter{parser: parser, path: path}
}

// Load implements TranslationAdapter.
func (a *FileAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	dir, name := filepath.Split(a.path)
	if dir == "" {
		dir = "."
	}
	return loadFile(ctx, os.DirFS(dir), name, a.parser)
}

// AdapterOption configures an FSAdapter.
type AdapterOption func(*FSAdapter)

// WithAdapterLogger sets the logger used to report skipped files.
func WithAdapterLogger(l *slog.Logger) AdapterOption {
	return func(a *FSAdapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// FSAdapter merges every supported file of a directory in an fs.FS.
// It serves embed.FS catalogues and, through NewDirectoryAdapter, plain
// directories. Files that fail to load are skipped and logged.
type FSAdapter struct {
	parser Parser
	fsys   fs.FS
	dir    string
	logger *slog.Logger
}

// NewFSAdapter creates an FSAdapter reading dir from fsys. A nil parser
// accepts every extension NewParserForFile knows.
func NewFSAdapter(parser Parser, fsys fs.FS, dir string, opts ...AdapterOption) *FSAdapter {
	if dir == "" {
		dir = "."
	}
	a := &FSAdapter{parser: parser, fsys: fsys, dir: dir, logger: logger.Discard()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewDirectoryAdapter creates an FSAdapter over a directory on disk.
func NewDirectoryAdapter(parser Parser, dir string, opts ...AdapterOption) *FSAdapter {
	return NewFSAdapter(parser, os.DirFS(dir), ".", opts...)
}

// Load implements TranslationAdapter.
func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDirectory, err)
	}

	all := make(map[string]map[string]any)
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		parser := a.parser
		if parser == nil {
			parser = NewParserForFile(name)
		}
		if parser == nil || !parser.SupportsFileExtension(path.Ext(name)) {
			continue
		}

		filePath := path.Join(a.dir, name)
		translations, err := loadFile(ctx, a.fsys, filePath, parser)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			a.logger.WarnContext(ctx, "skipping translation file",
				slog.String("file", filePath),
				logger.Error(err),
			)
			continue
		}

		for lang, messages := range translations {
			if all[lang] == nil {
				all[lang] = make(map[string]any, len(messages))
			}
			maps.Copy(all[lang], messages)
		}
		loaded++
	}

	if loaded == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoTranslationFiles, a.dir)
	}
	return all, nil
}

// loadFile reads and parses a single file. It stops waiting for the read
// once ctx is done.
func loadFile(ctx context.Context, fsys fs.FS, name string, parser Parser) (map[string]map[string]any, error) {
	if parser == nil {
		parser = NewParserForFile(name)
	}
	if parser == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}

	type readResult struct {
		content []byte
		err     error
	}
	done := make(chan readResult, 1)
	go func() {
		content, err := fs.ReadFile(fsys, name)
		done <- readResult{content, err}
	}()

	var res readResult
	select {
	case <-ctx.Done():
		return nil, errors.Join(ErrLoadingCancelled, ctx.Err())
	case res = <-done:
	}

	if res.err != nil {
		return nil, errors.Join(ErrFailedToReadFile, res.err)
	}
	if len(res.content) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyFile, name)
	}

	translations, err := parser.Parse(ctx, string(res.content))
	if err != nil {
		return nil, errors.Join(ErrFailedToParseFile, err)
	}
	return translations, nil
}
