// Package static delivers the single-page front end. Real files under the
// asset root are served as-is; every other GET falls back to index.html so
// client-side routes survive a hard refresh.
package static

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gigbook/pkg/logger"
)

type Handler struct {
	root      string
	fileServe http.Handler
	log       *logger.Logger
}

func NewHandler(root string, log *logger.Logger) *Handler {
	return &Handler{
		root:      root,
		fileServe: http.FileServer(http.Dir(root)),
		log:       log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rel := strings.TrimPrefix(filepath.Clean("/"+r.URL.Path), "/")
	if rel == "" {
		rel = "index.html"
	}

	if info, err := os.Stat(filepath.Join(h.root, rel)); err == nil && !info.IsDir() {
		h.fileServe.ServeHTTP(w, r)
		return
	}

	h.serveShell(w, r)
}

// serveShell renders index.html regardless of the request path. ServeFile
// would 400 raw dot-dot paths before the fallback could apply, so the shell
// is opened directly.
func (h *Handler) serveShell(w http.ResponseWriter, r *http.Request) {
	shell := filepath.Join(h.root, "index.html")

	f, err := os.Open(shell)
	if err != nil {
		h.log.Error("App shell unavailable", "path", shell, "error", err)
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.log.Error("App shell unavailable", "path", shell, "error", err)
		http.NotFound(w, r)
		return
	}

	http.ServeContent(w, r, "index.html", info.ModTime(), f)
}
