package http

import (
	"net/http"
	"os"

	"github.com/3-lines-studio/ssrkit/internal/core"
)

type StaticObserver interface {
	ObserveStatic(mount string)
}

// StaticHandler serves regular files from root under mount. Anything it
// cannot serve goes to next: directories, missing files, dotfiles and paths
// escaping root.
type StaticHandler struct {
	root     string
	mount    string
	next     http.Handler
	observer StaticObserver
}

func NewStaticHandler(root, mount string, next http.Handler, observer StaticObserver) http.Handler {
	return &StaticHandler{
		root:     root,
		mount:    core.NormalizePath(mount),
		next:     next,
		observer: observer,
	}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	fullPath, ok := core.ResolveStaticPath(h.root, h.mount, req.URL.Path)
	if !ok {
		h.next.ServeHTTP(w, req)
		return
	}

	info, err := os.Stat(fullPath)
	if err != nil || !info.Mode().IsRegular() {
		h.next.ServeHTTP(w, req)
		return
	}

	file, err := os.Open(fullPath)
	if err != nil {
		h.next.ServeHTTP(w, req)
		return
	}
	defer func() { _ = file.Close() }()

	if h.observer != nil {
		h.observer.ObserveStatic(h.mount)
	}

	w.Header().Set("Content-Type", core.GetContentType(fullPath))
	http.ServeContent(w, req, info.Name(), info.ModTime(), file)
}
