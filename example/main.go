// This program mounts an ssrkit app behind a chi router that also serves a
// small JSON API. Build the Vue bundles first, then run it from a project
// directory holding dist/ and src/index.template.html.
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/3-lines-studio/ssrkit"
)

func main() {
	app, err := ssrkit.New(
		ssrkit.WithBundlePath("dist/vue-ssr-server-bundle.json"),
		ssrkit.WithTemplatePath("src/index.template.html"),
		ssrkit.WithDistinguishNotFound(true),
	)
	if err != nil {
		log.Fatalf("Failed to start renderer: %v", err)
	}
	defer app.Stop()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// API routes are matched before the render catch-all.
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	handler := app.Wrap(r)

	log.Printf("Serving on http://localhost:8080")
	if err := http.ListenAndServe(":8080", handler); err != nil {
		log.Print(err)
	}
}
