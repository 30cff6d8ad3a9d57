package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// spaHandler serves files from dir and falls back to index.html so client-side
// routes resolve on reload.
type spaHandler struct {
	dir   string
	files http.Handler
}

func newSPAHandler(dir string) http.Handler {
	return &spaHandler{
		dir:   dir,
		files: http.FileServer(http.Dir(dir)),
	}
}

func (h *spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := filepath.Join(h.dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))

	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
		return
	}

	h.files.ServeHTTP(w, r)
}
