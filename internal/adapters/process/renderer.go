package process

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/3-lines-studio/ssrkit/internal/core"
)

//go:embed ssr_renderer.js
var SidecarSource string

var socketSeq atomic.Int64

type Config struct {
	// Runtime is the JS runtime executable, "node" by default.
	Runtime    string
	BundlePath string
	// Dir is where the runtime resolves the SSR library from.
	Dir          string
	StartTimeout time.Duration
}

// Renderer drives a JS runtime that executes the server bundle and answers
// render requests over a unix socket.
type Renderer struct {
	cmd    *exec.Cmd
	socket string
	client *http.Client
	exited chan struct{}
}

var _ core.Renderer = (*Renderer)(nil)

func NewRenderer(cfg Config) (*Renderer, error) {
	if cfg.Runtime == "" {
		cfg.Runtime = "node"
	}
	if cfg.StartTimeout == 0 {
		cfg.StartTimeout = 5 * time.Second
	}
	if cfg.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		cfg.Dir = cwd
	}

	bundlePath, err := filepath.Abs(cfg.BundlePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve bundle path: %w", err)
	}

	socket := filepath.Join(os.TempDir(), fmt.Sprintf("ssrkit-%d-%d.sock", os.Getpid(), socketSeq.Add(1)))

	if err := os.Remove(socket); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove stale socket %s: %w", socket, err)
	}

	cmd := exec.Command(cfg.Runtime, "-")
	cmd.Dir = cfg.Dir
	cmd.Env = append(os.Environ(), "SSRKIT_SOCKET="+socket, "SSRKIT_BUNDLE="+bundlePath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = strings.NewReader(SidecarSource)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", cfg.Runtime, err)
	}

	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	if err := waitForSocket(socket, cfg.StartTimeout, exited); err != nil {
		_ = cmd.Process.Kill()
		return nil, err
	}

	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socket)
		},
	}

	return &Renderer{
		cmd:    cmd,
		socket: socket,
		client: &http.Client{Transport: transport},
		exited: exited,
	}, nil
}

func (r *Renderer) Stop() error {
	select {
	case <-r.exited:
	default:
		if err := r.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return err
		}
		<-r.exited
	}
	_ = os.Remove(r.socket)
	return nil
}

type sidecarError struct {
	Message string `json:"message"`
	Stack   string `json:"stack"`
	Code    int    `json:"code"`
}

func (e *sidecarError) toError() error {
	msg := e.Message
	if e.Stack != "" {
		msg += "\n\nStack:\n" + e.Stack
	}
	return &core.RenderError{Code: e.Code, Message: msg}
}

func (r *Renderer) Render(ctx context.Context, rc core.RenderContext) (core.RenderedApp, error) {
	var result struct {
		HTML    string            `json:"html"`
		Head    string            `json:"head"`
		State   string            `json:"state"`
		Context map[string]string `json:"context"`
		Error   *sidecarError     `json:"error"`
	}

	if err := r.postJSON(ctx, "/render", rc, &result); err != nil {
		return core.RenderedApp{}, err
	}

	if result.Error != nil {
		return core.RenderedApp{}, result.Error.toError()
	}

	return core.RenderedApp{
		HTML:    result.HTML,
		Head:    result.Head,
		State:   result.State,
		Context: result.Context,
	}, nil
}

// Reload makes the sidecar re-read the server bundle from disk.
func (r *Renderer) Reload(ctx context.Context) error {
	var result struct {
		OK    bool          `json:"ok"`
		Error *sidecarError `json:"error"`
	}

	if err := r.postJSON(ctx, "/reload", struct{}{}, &result); err != nil {
		return err
	}
	if result.Error != nil {
		return fmt.Errorf("bundle reload failed: %w", result.Error.toError())
	}
	if !result.OK {
		return fmt.Errorf("bundle reload failed")
	}
	return nil
}

func (r *Renderer) postJSON(ctx context.Context, endpoint string, body any, result any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://localhost"+endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("renderer request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("invalid renderer response: %w", err)
	}
	return nil
}

func waitForSocket(path string, timeout time.Duration, exited <-chan struct{}) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if info, err := os.Stat(path); err == nil && info.Mode()&os.ModeSocket != 0 {
			return nil
		}
		select {
		case <-exited:
			return fmt.Errorf("renderer runtime exited before listening on %s", path)
		case <-time.After(10 * time.Millisecond):
		}
	}
	return fmt.Errorf("timeout waiting for renderer socket at %s", path)
}
