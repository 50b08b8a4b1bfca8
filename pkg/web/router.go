package web

import (
	"net/http"

	"github.com/JaimeStill/bizz/pkg/routes"
)

// Router is a ServeMux whose unmatched GET and HEAD requests go to a
// fallback page instead of the plain-text 404. Other methods keep the
// mux behavior so a POST to a page still gets 405.
type Router struct {
	mux      *http.ServeMux
	fallback http.HandlerFunc
}

func NewRouter() *Router {
	return &Router{mux: http.NewServeMux()}
}

// SetFallback sets the handler for unmatched page requests.
func (r *Router) SetFallback(handler http.HandlerFunc) {
	r.fallback = handler
}

func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

// Routes registers each route under "METHOD pattern".
func (r *Router) Routes(rs ...routes.Route) {
	for _, route := range rs {
		r.mux.HandleFunc(route.MuxPattern(""), route.Handler)
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.fallback != nil && (req.Method == http.MethodGet || req.Method == http.MethodHead) {
		if _, pattern := r.mux.Handler(req); pattern == "" {
			r.fallback.ServeHTTP(w, req)
			return
		}
	}
	r.mux.ServeHTTP(w, req)
}
