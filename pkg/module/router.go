package module

import (
	"fmt"
	"net/http"
	"strings"
)

// Router sends requests whose first path segment names a mounted module
// to that module and everything else to a native ServeMux. Page paths
// served natively have one canonical form: GET and HEAD requests with a
// trailing slash are redirected to the path without it. Module paths are
// trimmed in place instead.
type Router struct {
	modules map[string]*Module
	native  *http.ServeMux
}

func NewRouter() *Router {
	return &Router{
		modules: make(map[string]*Module),
		native:  http.NewServeMux(),
	}
}

// HandleNative registers a handler on the fallback mux.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount registers m under its prefix. Mounting two modules on the same
// prefix panics.
func (r *Router) Mount(m *Module) {
	if _, dup := r.modules[m.prefix]; dup {
		panic(fmt.Sprintf("module already mounted at %s", m.prefix))
	}
	r.modules[m.prefix] = m
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	trimmed := path
	if len(path) > 1 {
		trimmed = strings.TrimRight(path, "/")
		if trimmed == "" {
			trimmed = "/"
		}
	}

	if m, ok := r.modules[firstSegment(trimmed)]; ok {
		if trimmed != path {
			req = withPath(req, trimmed)
		}
		m.Serve(w, req)
		return
	}

	if trimmed != path && !strings.HasPrefix(trimmed, "//") {
		if req.Method == http.MethodGet || req.Method == http.MethodHead {
			target := trimmed
			if req.URL.RawQuery != "" {
				target += "?" + req.URL.RawQuery
			}
			http.Redirect(w, req, target, http.StatusMovedPermanently)
			return
		}
		req = withPath(req, trimmed)
	}

	r.native.ServeHTTP(w, req)
}

func firstSegment(path string) string {
	rest := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return "/" + rest
}
