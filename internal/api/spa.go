package api

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/phrazzld/tasktag-api/internal/api/shared"
)

// IndexFile is served for any path that does not name a file in the bundle.
const IndexFile = "index.html"

// SPAHandler serves a built client bundle. Requests for existing files get
// the file; everything else gets the bundle's index so client-side routes
// resolve after a reload.
type SPAHandler struct {
	fsys  fs.FS
	files http.Handler
}

// NewSPAHandler serves the bundle rooted at fsys. Use os.DirFS for a
// directory on disk.
func NewSPAHandler(fsys fs.FS) *SPAHandler {
	return &SPAHandler{fsys: fsys, files: http.FileServerFS(fsys)}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		shared.RespondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name != "" {
		if info, err := fs.Stat(h.fsys, name); err == nil && !info.IsDir() {
			h.files.ServeHTTP(w, r)
			return
		}
	}

	if _, err := fs.Stat(h.fsys, IndexFile); err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Resource not found")
		return
	}
	http.ServeFileFS(w, r, h.fsys, IndexFile)
}
