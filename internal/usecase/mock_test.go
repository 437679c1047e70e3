package usecase

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/3-lines-studio/ssrkit/internal/adapters/fs"
	"github.com/3-lines-studio/ssrkit/internal/core"
)

const testTemplate = "<!doctype html>\n<html>\n<head><title>ssrkit</title></head>\n<body>\n<!--vue-ssr-outlet-->\n<script src=\"/dist/main.js\"></script>\n</body>\n</html>"

const testBundle = `{"entry":"main.js","files":{"main.js":"module.exports = {}"},"maps":{}}`

type MockRenderer struct {
	pages     map[string]core.RenderedApp
	delay     time.Duration
	calls     atomic.Int64
	reloads   atomic.Int64
	reloadErr error
}

func newMockRenderer() *MockRenderer {
	return &MockRenderer{
		pages: map[string]core.RenderedApp{
			"/":     {HTML: `<div id="app" data-server-rendered="true"><h1>Top</h1></div>`},
			"/page": {HTML: `<div id="app" data-server-rendered="true"><h1>Page</h1></div>`, Head: `<meta name="page">`},
		},
	}
}

func (m *MockRenderer) Render(ctx context.Context, rc core.RenderContext) (core.RenderedApp, error) {
	m.calls.Add(1)

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return core.RenderedApp{}, ctx.Err()
		}
	}

	if rc.URL == "/boom" {
		return core.RenderedApp{}, errors.New("component threw")
	}

	app, ok := m.pages[rc.URL]
	if !ok {
		return core.RenderedApp{}, &core.RenderError{Code: http.StatusNotFound, Message: "no route"}
	}
	return app, nil
}

func (m *MockRenderer) Reload(ctx context.Context) error {
	m.reloads.Add(1)
	return m.reloadErr
}

type recordingObserver struct {
	results []string
}

func (o *recordingObserver) ObserveRender(result string, d time.Duration) {
	o.results = append(o.results, result)
}

type artifactFiles struct {
	dir          string
	bundlePath   string
	templatePath string
}

func writeArtifacts(t *testing.T) artifactFiles {
	t.Helper()

	dir := t.TempDir()
	files := artifactFiles{
		dir:          dir,
		bundlePath:   filepath.Join(dir, "vue-ssr-server-bundle.json"),
		templatePath: filepath.Join(dir, "index.template.html"),
	}

	writeFile(t, files.bundlePath, testBundle)
	writeFile(t, files.templatePath, testTemplate)
	return files
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func newTestStore(t *testing.T) *ArtifactStore {
	t.Helper()
	files := writeArtifacts(t)
	artifacts, err := LoadArtifacts(fs.NewOSFileSystem(), files.bundlePath, files.templatePath)
	if err != nil {
		t.Fatalf("failed to load artifacts: %v", err)
	}
	return NewArtifactStore(artifacts)
}
