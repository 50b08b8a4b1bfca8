// Package openapi builds the OpenAPI 3.1 document served beside the API.
package openapi

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/JaimeStill/bizz/pkg/web"
)

const Version = "3.1.0"

// Spec is the root document.
type Spec struct {
	OpenAPI    string               `json:"openapi"`
	Info       *Info                `json:"info"`
	Servers    []*Server            `json:"servers,omitempty"`
	Tags       []*Tag               `json:"tags,omitempty"`
	Paths      map[string]*PathItem `json:"paths"`
	Components *Components          `json:"components,omitempty"`
}

// NewSpec returns a document seeded with the shared components.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI:    Version,
		Info:       &Info{Title: title, Version: version},
		Paths:      map[string]*PathItem{},
		Components: NewComponents(),
	}
}

func (s *Spec) AddServer(url string) {
	s.Servers = append(s.Servers, &Server{URL: url})
}

func (s *Spec) SetDescription(desc string) {
	s.Info.Description = desc
}

// AddOperation attaches op to path under method. Methods other than
// GET, POST, PUT, PATCH and DELETE are ignored.
func (s *Spec) AddOperation(path, method string, op *Operation) {
	item := s.Paths[path]
	if item == nil {
		item = &PathItem{}
	}
	if item.set(strings.ToUpper(method), op) {
		s.Paths[path] = item
	}
}

// collectTags lists every operation tag once, sorted, unless tags were
// declared explicitly.
func (s *Spec) collectTags() {
	if len(s.Tags) > 0 {
		return
	}
	var names []string
	for _, item := range s.Paths {
		for _, op := range item.operations() {
			names = append(names, op.Tags...)
		}
	}
	slices.Sort(names)
	for _, name := range slices.Compact(names) {
		s.Tags = append(s.Tags, &Tag{Name: name})
	}
}

// MarshalJSON renders the document as indented JSON.
func MarshalJSON(spec *Spec) ([]byte, error) {
	spec.collectTags()
	return json.MarshalIndent(spec, "", "  ")
}

// ServeSpec serves a rendered document. Clients revalidate on every
// request through the content ETag.
func ServeSpec(doc []byte) http.HandlerFunc {
	return web.ServeEmbeddedFile(doc, "application/json; charset=utf-8", 0)
}
