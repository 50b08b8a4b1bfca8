package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/bizz/pkg/routes"
)

func TestRegisterHandlers(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/listings",
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "",
				Handler: func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusOK)
				},
			},
			{
				Method:  "GET",
				Pattern: "/{id}",
				Handler: func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusOK)
				},
			},
		},
	})

	tests := []struct {
		name   string
		method string
		path   string
		wantOK bool
	}{
		{"list listings", "GET", "/listings", true},
		{"get listing", "GET", "/listings/123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			mux.ServeHTTP(rec, req)

			if tt.wantOK && rec.Code != http.StatusOK {
				t.Errorf("status: got %d, want 200", rec.Code)
			}
		})
	}
}

func TestNestedGroups(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/api",
		Children: []routes.Group{
			{
				Prefix: "/v1",
				Routes: []routes.Route{
					{
						Method:  "GET",
						Pattern: "/attachments",
						Handler: func(w http.ResponseWriter, r *http.Request) {
							w.WriteHeader(http.StatusOK)
						},
					},
				},
			},
		},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/attachments", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("nested route: got %d, want 200", rec.Code)
	}
}

func TestGroupWrap(t *testing.T) {
	ok := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	deny := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}

	group := routes.Group{
		Prefix: "/reviews",
		Routes: []routes.Route{{Method: "GET", Pattern: "", Handler: ok}},
		Children: []routes.Group{
			{Prefix: "/queue", Routes: []routes.Route{{Method: "GET", Pattern: "", Handler: ok}}},
		},
	}

	mux := http.NewServeMux()
	routes.Register(mux, group.Wrap(deny))

	tests := []struct {
		name   string
		path   string
		auth   string
		status int
	}{
		{"root without token", "/reviews", "", http.StatusUnauthorized},
		{"root with token", "/reviews", "Bearer x", http.StatusOK},
		{"child without token", "/reviews/queue", "", http.StatusUnauthorized},
		{"child with token", "/reviews/queue", "Bearer x", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
		})
	}

	if len(group.Routes) != 1 || group.Routes[0].Handler == nil {
		t.Fatal("original group modified")
	}
}

func TestGroupWrapMethods(t *testing.T) {
	ok := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	deny := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}

	group := routes.Group{
		Prefix: "/listings",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: ok},
			{Method: "POST", Pattern: "", Handler: ok},
			{Method: "PUT", Pattern: "/{id}", Handler: ok},
			{Method: "DELETE", Pattern: "/{id}", Handler: ok},
		},
		Children: []routes.Group{
			{Prefix: "/drafts", Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: ok},
				{Method: "DELETE", Pattern: "", Handler: ok},
			}},
		},
	}

	mux := http.NewServeMux()
	routes.Register(mux, group.WrapMethods(deny, "PUT", "DELETE"))

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		status int
	}{
		{"get stays open", "GET", "/listings/1", "", http.StatusOK},
		{"post stays open", "POST", "/listings", "", http.StatusOK},
		{"put without token", "PUT", "/listings/1", "", http.StatusUnauthorized},
		{"put with token", "PUT", "/listings/1", "Bearer x", http.StatusOK},
		{"delete without token", "DELETE", "/listings/1", "", http.StatusUnauthorized},
		{"child get stays open", "GET", "/listings/drafts", "", http.StatusOK},
		{"child delete without token", "DELETE", "/listings/drafts", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status: got %d, want %d", rec.Code, tt.status)
			}
		})
	}
}

func TestMuxPattern(t *testing.T) {
	tests := []struct {
		name   string
		route  routes.Route
		prefix string
		want   string
	}{
		{"method and prefix", routes.Route{Method: "GET", Pattern: "/{id}"}, "/listings", "GET /listings/{id}"},
		{"empty pattern", routes.Route{Method: "POST", Pattern: ""}, "/attachments", "POST /attachments"},
		{"any method", routes.Route{Pattern: "/robots.txt"}, "", "/robots.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.route.MuxPattern(tt.prefix); got != tt.want {
				t.Errorf("MuxPattern(%q) = %q, want %q", tt.prefix, got, tt.want)
			}
		})
	}
}
