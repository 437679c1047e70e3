package ssrkit

import (
	"log/slog"
	"time"

	"github.com/3-lines-studio/ssrkit/internal/core"
)

type options struct {
	bundlePath          string
	templatePath        string
	publicDir           string
	distDir             string
	runtime             string
	renderer            core.Renderer
	logger              *slog.Logger
	renderTimeout       time.Duration
	distinguishNotFound bool
	dev                 bool
}

func defaultOptions() options {
	return options{
		bundlePath:   "dist/vue-ssr-server-bundle.json",
		templatePath: "src/index.template.html",
		publicDir:    "public",
		distDir:      "dist",
		runtime:      "node",
		logger:       slog.Default(),
	}
}

type Option func(*options)

// WithBundlePath sets the server bundle JSON produced by the bundler.
func WithBundlePath(path string) Option {
	return func(o *options) { o.bundlePath = path }
}

// WithTemplatePath sets the HTML template holding the outlet marker.
func WithTemplatePath(path string) Option {
	return func(o *options) { o.templatePath = path }
}

// WithPublicDir sets the directory served at "/".
func WithPublicDir(dir string) Option {
	return func(o *options) { o.publicDir = dir }
}

// WithDistDir sets the directory served at "/dist".
func WithDistDir(dir string) Option {
	return func(o *options) { o.distDir = dir }
}

// WithRuntime sets the JS runtime used for the renderer sidecar.
func WithRuntime(runtime string) Option {
	return func(o *options) { o.runtime = runtime }
}

// WithRenderer replaces the sidecar renderer. The App does not stop it.
func WithRenderer(r Renderer) Option {
	return func(o *options) { o.renderer = r }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRenderTimeout bounds each render; zero means no bound.
func WithRenderTimeout(d time.Duration) Option {
	return func(o *options) { o.renderTimeout = d }
}

// WithDistinguishNotFound answers 404 instead of 500 when no route matches.
func WithDistinguishNotFound(enabled bool) Option {
	return func(o *options) { o.distinguishNotFound = enabled }
}

// WithDev reloads the bundle and template when they change on disk.
func WithDev(enabled bool) Option {
	return func(o *options) { o.dev = enabled }
}
