package loader

import (
	"context"
	"errors"
	"log/slog"

	"kornmo/internal/frame"
)

// ErrNotFound reports that a loader's source does not exist. It is the only
// error FileWithFallback recovers from.
var ErrNotFound = errors.New("loader: source not found")

// Loader produces one raw table.
type Loader interface {
	Load(ctx context.Context) (*frame.Frame, error)
}

// LoadFunc adapts a plain function to the Loader interface, which is how the
// external fetch collaborators plug in.
type LoadFunc func(ctx context.Context) (*frame.Frame, error)

// Load implements Loader.
func (fn LoadFunc) Load(ctx context.Context) (*frame.Frame, error) {
	return fn(ctx)
}

// fallbackLoader tries the primary source and falls through to the fallback
// when the primary does not exist.
type fallbackLoader struct {
	name     string
	primary  Loader
	fallback Loader
	logger   *slog.Logger
}

// FileWithFallback composes a cached-file loader with a fetch collaborator.
// A nil fallback means a cache miss is fatal. The name is only used for
// logging.
func FileWithFallback(name string, primary, fallback Loader, logger *slog.Logger) Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &fallbackLoader{
		name:     name,
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Load implements Loader. Failures of the fallback propagate untouched; there
// are no retries.
func (l *fallbackLoader) Load(ctx context.Context) (*frame.Frame, error) {
	f, err := l.primary.Load(ctx)
	if err == nil {
		l.logger.InfoContext(ctx, "loaded table from cache",
			slog.String("table", l.name),
			slog.Int("rows", f.Len()))
		return f, nil
	}
	if !errors.Is(err, ErrNotFound) || l.fallback == nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "cache file missing, fetching table",
		slog.String("table", l.name))
	f, err = l.fallback.Load(ctx)
	if err != nil {
		return nil, err
	}
	l.logger.InfoContext(ctx, "loaded table from fetcher",
		slog.String("table", l.name),
		slog.Int("rows", f.Len()))
	return f, nil
}
