package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/3-lines-studio/ssrkit/internal/core"
	"github.com/go-chi/chi/v5/middleware"
)

type PageRenderer interface {
	RenderPage(ctx context.Context, url string) (string, error)
}

type PageHandler struct {
	service             PageRenderer
	logger              *slog.Logger
	distinguishNotFound bool
}

func NewPageHandler(service PageRenderer, logger *slog.Logger, distinguishNotFound bool) http.Handler {
	return &PageHandler{
		service:             service,
		logger:              logger,
		distinguishNotFound: distinguishNotFound,
	}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	html, err := h.service.RenderPage(req.Context(), req.URL.RequestURI())
	if err != nil {
		h.serveError(w, req, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if req.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte(html))
}

func (h *PageHandler) serveError(w http.ResponseWriter, req *http.Request, err error) {
	status := core.StatusForError(err, h.distinguishNotFound)

	level := slog.LevelError
	if status == http.StatusNotFound {
		level = slog.LevelInfo
	}
	h.logger.Log(req.Context(), level, "render failed",
		"url", req.URL.RequestURI(),
		"status", status,
		"request_id", middleware.GetReqID(req.Context()),
		"error", err,
	)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if req.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte(core.BodyForStatus(status)))
}
