package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/searchexpr"
	"github.com/aretw0/searchexpr/internal/compiler"
	"github.com/aretw0/searchexpr/internal/config"
	"github.com/aretw0/searchexpr/internal/logging"
	"github.com/aretw0/searchexpr/internal/validator"
	"github.com/aretw0/searchexpr/pkg/adapters/file"
	"github.com/aretw0/searchexpr/pkg/adapters/memory"
	"github.com/aretw0/searchexpr/pkg/adapters/redis"
	"github.com/aretw0/searchexpr/pkg/domain"
	"github.com/aretw0/searchexpr/pkg/observability"
	"github.com/aretw0/searchexpr/pkg/persistence/middleware"
	"github.com/aretw0/searchexpr/pkg/ports"
)

// Options are the global CLI flags.
type Options struct {
	ConfigPath string
	ViewsDir   string
	LogLevel   string
	// Metrics forces the Prometheus collectors on, whatever the config says.
	Metrics bool
	// LogWriter defaults to stderr.
	LogWriter io.Writer
}

// Env is everything a command needs, built once per invocation.
type Env struct {
	Config  *config.Config
	Logger  *slog.Logger
	Handler *searchexpr.Handler
	Metrics *observability.Metrics
	Hints   []domain.Hint
}

// Setup loads the config, applies flag overrides and builds the handler.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.ViewsDir != "" {
		cfg.Views = opts.ViewsDir
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Metrics {
		cfg.Metrics.Enabled = true
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	hints, err := cfg.ParsedHints()
	if err != nil {
		return nil, err
	}

	w := opts.LogWriter
	if w == nil {
		w = os.Stderr
	}
	logger := logging.NewWithWriter(w, level)

	env := &Env{Config: cfg, Logger: logger, Hints: hints}

	hooks := []domain.LifecycleHooks{observability.LoggingHooks(logger)}
	if cfg.Metrics.Enabled {
		env.Metrics = observability.NewMetrics(nil)
		hooks = append(hooks, env.Metrics.Hooks())
	}

	env.Handler, err = createHandler(cfg, logger, observability.Combine(hooks...))
	if err != nil {
		return nil, err
	}
	return env, nil
}

// createHandler initializes a Handler with standard CLI conventions.
func createHandler(cfg *config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) (*searchexpr.Handler, error) {
	opts := []searchexpr.Option{
		searchexpr.WithLogger(logger),
		searchexpr.WithLifecycleHooks(hooks),
	}
	if seps := cfg.Separators(); len(seps) > 0 {
		opts = append(opts, searchexpr.WithSeparatorChars(seps...))
	}

	h, err := searchexpr.New(cfg.Views, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing handler: %w", err)
	}
	return h, nil
}

// CreateStore builds the configured ViewStore, wrapped with attribute
// redaction when patterns are configured. The returned close function is never nil.
func CreateStore(cfg *config.Config) (ports.ViewStore, func() error, error) {
	store, closeFn, err := createBackend(cfg)
	if err != nil || len(cfg.Store.Redact) == 0 {
		return store, closeFn, err
	}
	redact, err := middleware.NewPIIMiddleware(cfg.Store.Redact)
	if err != nil {
		return nil, closeFn, err
	}
	return middleware.Chain(store, redact), closeFn, nil
}

func createBackend(cfg *config.Config) (ports.ViewStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Kind {
	case "", "memory":
		return memory.NewStore(), noop, nil
	case "file":
		return file.New(cfg.Store.Path), noop, nil
	case "redis":
		var opts []redis.Option
		if cfg.Store.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Store.Redis.Prefix))
		}
		if cfg.Store.Redis.TTL != "" {
			ttl, err := time.ParseDuration(cfg.Store.Redis.TTL)
			if err != nil {
				return nil, noop, fmt.Errorf("invalid store.redis.ttl: %w", err)
			}
			opts = append(opts, redis.WithTTL(ttl))
		}
		store := redis.New(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB, opts...)
		return store, store.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown store kind %q", cfg.Store.Kind)
}

// LoadView accepts either a path to a JSON/YAML view document or a view ID
// known to the handler's loader.
func (e *Env) LoadView(ref string) (*domain.View, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return loadViewFile(ref)
	}
	return e.Handler.LoadView(ref)
}

func loadViewFile(path string) (*domain.View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read view: %w", err)
	}
	view, err := compiler.NewParser().Parse(data)
	if err != nil {
		return nil, err
	}
	if view.ID == "" {
		base := filepath.Base(path)
		view.ID = base[:len(base)-len(filepath.Ext(base))]
	}
	if err := validator.ValidateView(view); err != nil {
		return nil, fmt.Errorf("view %s is invalid: %w", view.ID, err)
	}
	return view, nil
}

// SearchContext anchors a context at the component with client id source,
// or at the root when source is empty.
func (e *Env) SearchContext(view *domain.View, source string, extra ...domain.Hint) (*domain.SearchContext, error) {
	var anchor *domain.Component
	if source != "" {
		if anchor = view.FindByClientID(source); anchor == nil {
			return nil, fmt.Errorf("source component %q not found in view %s", source, view.ID)
		}
	}
	hints := append(append([]domain.Hint(nil), e.Hints...), extra...)
	return domain.NewSearchContext(view, anchor, hints...), nil
}
