package process

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/3-lines-studio/ssrkit/internal/core"
)

const fakeSidecarEnv = "SSRKIT_FAKE_SIDECAR"

// TestMain lets the test binary stand in for the JS runtime: when started
// with fakeSidecarEnv set it serves the sidecar protocol instead of tests.
func TestMain(m *testing.M) {
	if os.Getenv(fakeSidecarEnv) == "1" {
		runFakeSidecar()
		return
	}
	os.Exit(m.Run())
}

func runFakeSidecar() {
	_, _ = io.Copy(io.Discard, os.Stdin)

	socket := os.Getenv("SSRKIT_SOCKET")
	ln, err := net.Listen("unix", socket)
	if err != nil {
		os.Exit(2)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/render", func(w http.ResponseWriter, r *http.Request) {
		var rc core.RenderContext
		_ = json.NewDecoder(r.Body).Decode(&rc)

		var body any
		switch rc.URL {
		case "/", "/page":
			body = map[string]any{
				"html":    `<div data-server-rendered="true">` + rc.URL + `</div>`,
				"head":    "<title>t</title>",
				"state":   "<script>window.__INITIAL_STATE__={}</script>",
				"context": map[string]string{"url": rc.URL, "title": "Page"},
			}
		case "/boom":
			body = map[string]any{"error": map[string]any{"message": "boom", "stack": "Error: boom\n    at render"}}
		case "/slow":
			time.Sleep(2 * time.Second)
			body = map[string]any{"html": "late"}
		default:
			body = map[string]any{"error": map[string]any{"message": "render rejected with code 404", "code": 404}}
		}
		_ = json.NewEncoder(w).Encode(body)
	})
	mux.HandleFunc("/reload", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	_ = http.Serve(ln, mux)
}

func newFakeRenderer(t *testing.T) *Renderer {
	t.Helper()

	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("failed to find test binary: %v", err)
	}
	t.Setenv(fakeSidecarEnv, "1")

	r, err := NewRenderer(Config{Runtime: exe, BundlePath: "bundle.json"})
	if err != nil {
		t.Fatalf("failed to start fake sidecar: %v", err)
	}
	t.Cleanup(func() { _ = r.Stop() })
	return r
}

func TestRendererRender(t *testing.T) {
	r := newFakeRenderer(t)
	ctx := context.Background()

	t.Run("matching route", func(t *testing.T) {
		app, err := r.Render(ctx, core.RenderContext{URL: "/page"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if app.HTML != `<div data-server-rendered="true">/page</div>` {
			t.Errorf("html = %q", app.HTML)
		}
		if app.Head != "<title>t</title>" {
			t.Errorf("head = %q", app.Head)
		}
		if app.State != "<script>window.__INITIAL_STATE__={}</script>" {
			t.Errorf("state = %q", app.State)
		}
		if app.Context["url"] != "/page" || app.Context["title"] != "Page" {
			t.Errorf("context = %v", app.Context)
		}
	})

	t.Run("no matching route", func(t *testing.T) {
		_, err := r.Render(ctx, core.RenderContext{URL: "/missing"})
		if !core.IsNotFound(err) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("render failure keeps stack", func(t *testing.T) {
		_, err := r.Render(ctx, core.RenderContext{URL: "/boom"})
		var renderErr *core.RenderError
		if !errors.As(err, &renderErr) {
			t.Fatalf("expected RenderError, got %v", err)
		}
		if core.IsNotFound(err) {
			t.Error("failure should not be reported as not found")
		}
		if !strings.Contains(renderErr.Message, "at render") {
			t.Errorf("stack missing from message: %q", renderErr.Message)
		}
	})

	t.Run("context cancels the call", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		_, err := r.Render(ctx, core.RenderContext{URL: "/slow"})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline exceeded, got %v", err)
		}
	})

	t.Run("reload", func(t *testing.T) {
		if err := r.Reload(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestRendererStop(t *testing.T) {
	r := newFakeRenderer(t)

	if err := r.Stop(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(r.socket); !os.IsNotExist(err) {
		t.Errorf("socket should be removed, stat err = %v", err)
	}
	if err := r.Stop(); err != nil {
		t.Errorf("second stop should be a no-op, got %v", err)
	}
}

func TestRendererReplacesStaleSocket(t *testing.T) {
	stale := filepath.Join(os.TempDir(), fmt.Sprintf("ssrkit-%d-%d.sock", os.Getpid(), socketSeq.Load()+1))
	if err := os.WriteFile(stale, []byte("left over"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(stale) })

	r := newFakeRenderer(t)
	if r.socket != stale {
		t.Fatalf("socket = %s, want %s", r.socket, stale)
	}
	if _, err := r.Render(context.Background(), core.RenderContext{URL: "/"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRendererRuntimeExitsEarly(t *testing.T) {
	falseBin, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false not available")
	}

	_, err = NewRenderer(Config{Runtime: falseBin, BundlePath: "bundle.json", StartTimeout: 2 * time.Second})
	if err == nil {
		t.Fatal("expected error when runtime exits")
	}
	if !strings.Contains(err.Error(), "exited") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRendererMissingRuntime(t *testing.T) {
	_, err := NewRenderer(Config{Runtime: "ssrkit-no-such-runtime", BundlePath: "bundle.json"})
	if err == nil {
		t.Fatal("expected error for missing runtime")
	}
}
