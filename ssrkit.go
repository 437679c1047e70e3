package ssrkit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/3-lines-studio/ssrkit/internal/adapters/fs"
	httpadapter "github.com/3-lines-studio/ssrkit/internal/adapters/http"
	"github.com/3-lines-studio/ssrkit/internal/adapters/process"
	"github.com/3-lines-studio/ssrkit/internal/adapters/watch"
	"github.com/3-lines-studio/ssrkit/internal/core"
	"github.com/3-lines-studio/ssrkit/internal/metrics"
	"github.com/3-lines-studio/ssrkit/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type (
	Renderer      = core.Renderer
	RenderContext = core.RenderContext
	RenderedApp   = core.RenderedApp
	RenderError   = core.RenderError
)

var ErrNotFound = core.ErrNotFound

// App owns the loaded build artifacts and the renderer for the lifetime of
// the process. Request handlers only read from it.
type App struct {
	opts      options
	logger    *slog.Logger
	fs        fs.FileSystem
	artifacts *usecase.ArtifactStore
	renderer  core.Renderer
	sidecar   *process.Renderer
	service   *usecase.RenderService
	metrics   *metrics.Metrics

	cancelWatch context.CancelFunc
	watchDone   chan struct{}
}

func New(opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	fsys := fs.NewOSFileSystem()
	artifacts, err := usecase.LoadArtifacts(fsys, o.bundlePath, o.templatePath)
	if err != nil {
		return nil, err
	}

	app := &App{
		opts:      o,
		logger:    o.logger,
		fs:        fsys,
		artifacts: usecase.NewArtifactStore(artifacts),
		renderer:  o.renderer,
		metrics:   metrics.New(),
	}

	if app.renderer == nil {
		sidecar, err := process.NewRenderer(process.Config{
			Runtime:    o.runtime,
			BundlePath: o.bundlePath,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to start renderer: %w", err)
		}
		app.sidecar = sidecar
		app.renderer = sidecar
	}

	app.service = usecase.NewRenderService(
		app.renderer,
		app.artifacts,
		usecase.WithObserver(app.metrics),
		usecase.WithTimeout(o.renderTimeout),
	)

	if o.dev {
		if err := app.watchArtifacts(); err != nil {
			_ = app.Stop()
			return nil, err
		}
	}

	app.logger.Info("ssr app ready",
		"bundle", o.bundlePath,
		"entry", artifacts.Bundle.Entry,
		"template", o.templatePath,
		"dev", o.dev,
	)

	return app, nil
}

func (a *App) routerConfig() httpadapter.RouterConfig {
	return httpadapter.RouterConfig{
		Service:             a.service,
		PublicDir:           a.opts.publicDir,
		DistDir:             a.opts.distDir,
		DistinguishNotFound: a.opts.distinguishNotFound,
		Logger:              a.logger,
		Observer:            a.metrics,
	}
}

// Handler serves static files and renders every other GET.
func (a *App) Handler() http.Handler {
	return httpadapter.NewRouter(a.routerConfig())
}

// Wrap adds the static and render routes to an existing router. Routes
// already registered on r take precedence over the catch-all.
func (a *App) Wrap(r chi.Router) http.Handler {
	if r == nil {
		panic("ssrkit: nil router passed to Wrap; use app.Handler()")
	}
	httpadapter.Mount(r, a.routerConfig())
	return r
}

// RenderPage renders url to a complete HTML page.
func (a *App) RenderPage(ctx context.Context, url string) (string, error) {
	return a.service.RenderPage(ctx, url)
}

// MetricsHandler exposes the Prometheus registry. Serve it on its own
// listener so it never shadows an app route.
func (a *App) MetricsHandler() http.Handler {
	return a.metrics.Handler()
}

func (a *App) Stop() error {
	if a.cancelWatch != nil {
		a.cancelWatch()
		<-a.watchDone
		a.cancelWatch = nil
	}
	if a.sidecar != nil {
		err := a.sidecar.Stop()
		a.sidecar = nil
		return err
	}
	return nil
}

func (a *App) watchArtifacts() error {
	reloader := usecase.NewReloadService(a.fs, a.artifacts, a.renderer)

	onChange := func(ctx context.Context, path string) {
		if err := reloader.Reload(ctx, path); err != nil {
			a.logger.Error("artifact reload failed", "path", path, "error", err)
			return
		}
		a.logger.Info("artifacts reloaded", "path", path)
	}

	w, err := watch.New([]string{a.opts.bundlePath, a.opts.templatePath}, onChange, a.logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancelWatch = cancel
	a.watchDone = make(chan struct{})
	go func() {
		defer close(a.watchDone)
		w.Run(ctx)
	}()
	return nil
}
