package web

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/JaimeStill/bizz/pkg/routes"
)

func cacheControl(maxAge time.Duration) string {
	if maxAge <= 0 {
		return "no-cache"
	}
	return "public, max-age=" + strconv.Itoa(int(maxAge.Seconds()))
}

// MustStatic serves the files under subdir of fsys at urlPrefix with the
// given cache lifetime. Directory listings are not served. It panics
// when subdir does not exist in fsys.
func MustStatic(fsys fs.FS, subdir, urlPrefix string, maxAge time.Duration) http.HandlerFunc {
	sub, err := fs.Sub(fsys, subdir)
	if err != nil {
		panic("web: static subdir " + subdir + ": " + err.Error())
	}
	server := http.StripPrefix(urlPrefix, http.FileServerFS(sub))
	cache := cacheControl(maxAge)

	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == urlPrefix || r.URL.Path[len(r.URL.Path)-1] == '/' {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", cache)
		server.ServeHTTP(w, r)
	}
}

// PublicFile serves one file from fsys, such as robots.txt.
func PublicFile(fsys fs.FS, subdir, filename string, maxAge time.Duration) http.HandlerFunc {
	path := subdir + "/" + filename
	cache := cacheControl(maxAge)
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", cache)
		http.ServeContent(w, r, filename, time.Time{}, bytes.NewReader(data))
	}
}

// PublicFileRoutes maps each file to a GET route at the site root.
func PublicFileRoutes(fsys fs.FS, subdir string, maxAge time.Duration, files ...string) []routes.Route {
	out := make([]routes.Route, len(files))
	for i, file := range files {
		out[i] = routes.Route{
			Method:  "GET",
			Pattern: "/" + file,
			Handler: PublicFile(fsys, subdir, file, maxAge),
		}
	}
	return out
}

// ServeEmbeddedFile serves fixed bytes with a content-hash ETag and
// answers matching If-None-Match requests with 304.
func ServeEmbeddedFile(data []byte, contentType string, maxAge time.Duration) http.HandlerFunc {
	sum := sha256.Sum256(data)
	etag := `"` + hex.EncodeToString(sum[:8]) + `"`
	cache := cacheControl(maxAge)

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", cache)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}
