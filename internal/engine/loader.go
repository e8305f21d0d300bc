package engine

import (
	"context"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/sync/singleflight"

	"github.com/kolah/plugforge/internal/loader"
	"github.com/kolah/plugforge/internal/platform"
)

// Factory builds the full engine. An error makes the Loader fall back to
// the Stub.
type Factory func(ctx context.Context) (Engine, error)

type PipelineConfig struct {
	TemplatesDir string
	FetchTimeout time.Duration
	Strict       bool
}

// PipelineFactory builds a Pipeline from the embedded templates, with
// templates in cfg.TemplatesDir overriding them.
func PipelineFactory(logger arbor.ILogger, cfg PipelineConfig) Factory {
	return func(context.Context) (Engine, error) {
		tmpl, err := platform.NewTemplateEngine(cfg.TemplatesDir)
		if err != nil {
			return nil, err
		}
		l := loader.New(loader.WithTimeout(cfg.FetchTimeout), loader.WithStrict(cfg.Strict))
		return NewPipeline(logger, l, platform.NewRegistry(tmpl)), nil
	}
}

// Loader resolves the engine once. Concurrent first calls share a single
// build and later calls get the cached result.
type Loader struct {
	logger arbor.ILogger
	build  Factory

	group singleflight.Group

	mu     sync.Mutex
	engine Engine
}

func NewLoader(logger arbor.ILogger, build Factory) *Loader {
	return &Loader{logger: logger, build: build}
}

// Get returns the cached engine, building it on first use. It never fails:
// a build error is logged and the Stub is cached instead.
func (l *Loader) Get(ctx context.Context) Engine {
	if e := l.cached(); e != nil {
		return e
	}

	v, _, _ := l.group.Do("engine", func() (any, error) {
		if e := l.cached(); e != nil {
			return e, nil
		}

		var e Engine
		built, err := l.build(ctx)
		if err != nil {
			l.logger.Warn().Err(err).Msg("Failed to load transformation engine, using stub")
			e = Stub{}
		} else {
			l.logger.Debug().Msg("Transformation engine loaded")
			e = built
		}

		l.mu.Lock()
		l.engine = e
		l.mu.Unlock()
		return e, nil
	})
	return v.(Engine)
}

// Reset drops the cached engine so the next Get builds it again.
func (l *Loader) Reset() {
	l.mu.Lock()
	l.engine = nil
	l.mu.Unlock()
}

func (l *Loader) cached() Engine {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.engine
}
