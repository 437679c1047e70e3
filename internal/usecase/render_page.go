package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/3-lines-studio/ssrkit/internal/core"
	"github.com/3-lines-studio/ssrkit/internal/metrics"
)

type RenderService struct {
	renderer  Renderer
	artifacts *ArtifactStore
	observer  RenderObserver
	timeout   time.Duration
}

type RenderServiceOption func(*RenderService)

func WithObserver(o RenderObserver) RenderServiceOption {
	return func(s *RenderService) { s.observer = o }
}

// WithTimeout bounds a single render. Zero leaves the render unbounded
// apart from the caller's context.
func WithTimeout(d time.Duration) RenderServiceOption {
	return func(s *RenderService) { s.timeout = d }
}

func NewRenderService(renderer Renderer, artifacts *ArtifactStore, opts ...RenderServiceOption) *RenderService {
	s := &RenderService{
		renderer:  renderer,
		artifacts: artifacts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RenderPage renders url once and wraps the result in the page template.
func (s *RenderService) RenderPage(ctx context.Context, url string) (string, error) {
	if s.renderer == nil {
		return "", fmt.Errorf("renderer not available")
	}

	artifacts := s.artifacts.Load()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	app, err := s.renderer.Render(ctx, core.RenderContext{URL: url})
	s.observe(err, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}

	return artifacts.Template.Assemble(app), nil
}

func (s *RenderService) observe(err error, d time.Duration) {
	if s.observer == nil {
		return
	}
	result := metrics.ResultOK
	switch {
	case core.IsNotFound(err):
		result = metrics.ResultNotFound
	case err != nil:
		result = metrics.ResultError
	}
	s.observer.ObserveRender(result, d)
}
