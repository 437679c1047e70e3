package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	Service             PageRenderer
	PublicDir           string
	DistDir             string
	DistinguishNotFound bool
	Logger              *slog.Logger
	Observer            StaticObserver
}

// Mount registers the catch-all route on r. A request is tried against
// the public dir, then the dist dir, and is rendered when neither has a
// file for it.
func Mount(r chi.Router, cfg RouterConfig) {
	page := NewPageHandler(cfg.Service, cfg.Logger, cfg.DistinguishNotFound)
	dist := NewStaticHandler(cfg.DistDir, "/dist", page, cfg.Observer)
	public := NewStaticHandler(cfg.PublicDir, "/", dist, cfg.Observer)

	r.Get("/*", public.ServeHTTP)
	r.Head("/*", public.ServeHTTP)
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)

	Mount(r, cfg)
	return r
}

func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.Handler(), slog.LevelInfo),
		NoColor: true,
	})
}
