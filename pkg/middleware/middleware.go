// Package middleware holds the HTTP middleware shared by the site and the API.
package middleware

import "net/http"

// System manages an ordered stack of HTTP middleware. The first
// middleware added is the outermost at request time.
type System interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
}

type stack struct {
	layers []func(http.Handler) http.Handler
}

// New creates a System seeded with the given middleware in order.
func New(mws ...func(http.Handler) http.Handler) System {
	s := &stack{}
	for _, fn := range mws {
		s.Use(fn)
	}
	return s
}

func (s *stack) Use(fn func(http.Handler) http.Handler) {
	if fn == nil {
		return
	}
	s.layers = append(s.layers, fn)
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.layers) - 1; i >= 0; i-- {
		handler = s.layers[i](handler)
	}
	return handler
}

// Recorder captures the status code and body size written through a
// ResponseWriter. Status defaults to 200 when the handler never calls
// WriteHeader.
type Recorder struct {
	http.ResponseWriter
	Status int
	Bytes  int
	wrote  bool
}

// NewRecorder wraps w for status and size capture.
func NewRecorder(w http.ResponseWriter) *Recorder {
	return &Recorder{ResponseWriter: w, Status: http.StatusOK}
}

func (r *Recorder) WriteHeader(status int) {
	if !r.wrote {
		r.Status = status
		r.wrote = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *Recorder) Write(b []byte) (int, error) {
	r.wrote = true
	n, err := r.ResponseWriter.Write(b)
	r.Bytes += n
	return n, err
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *Recorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
