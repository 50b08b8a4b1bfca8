package query_test

import (
	"slices"
	"testing"

	"github.com/JaimeStill/bizz/pkg/query"
)

const selectListings = "SELECT l.id, l.title, l.city, l.created_at FROM public.listings l"

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "listings", "l").
		Project("id", "ID").
		Project("title", "Title").
		Project("city", "City").
		Project("created_at", "CreatedAt")
}

func ptr(s string) *string { return &s }

func TestProjectionMap(t *testing.T) {
	p := testProjection()

	if got := p.Table(); got != "public.listings l" {
		t.Errorf("Table() = %q", got)
	}
	if got := p.From(); got != "public.listings l" {
		t.Errorf("From() = %q", got)
	}
	if got := p.Columns(); got != "l.id, l.title, l.city, l.created_at" {
		t.Errorf("Columns() = %q", got)
	}
}

func TestProjectionMapColumn(t *testing.T) {
	p := testProjection()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"view name", "Title", "l.title"},
		{"view name to snake column", "CreatedAt", "l.created_at"},
		{"raw expression passthrough", "c.position", "c.position"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.in); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestProjectionMapLookup(t *testing.T) {
	p := testProjection()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Title", "l.title", true},
		{"title", "l.title", true},
		{"createdat", "l.created_at", true},
		{"created_at", "l.created_at", true},
		{"c.position", "", false},
		{"title; DROP TABLE listings", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := p.Lookup(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestProjectionMapJoin(t *testing.T) {
	p := query.NewProjectionMap("public", "location_reviews", "r").
		Project("id", "ID").
		Project("listing_id", "ListingID").
		Join("public", "listings", "l", "JOIN", "l.id = r.listing_id").
		Project("title", "Title")

	wantFrom := "public.location_reviews r JOIN public.listings l ON l.id = r.listing_id"
	if got := p.From(); got != wantFrom {
		t.Errorf("From() = %q, want %q", got, wantFrom)
	}
	if got := p.Column("Title"); got != "l.title" {
		t.Errorf("Column(Title) = %q, want l.title", got)
	}
	if got := p.Columns(); got != "r.id, r.listing_id, l.title" {
		t.Errorf("Columns() = %q", got)
	}

	sql, args := query.NewBuilder(p).BuildSingle("ID", 7)
	wantSQL := "SELECT r.id, r.listing_id, l.title FROM public.location_reviews r JOIN public.listings l ON l.id = r.listing_id WHERE r.id = $1"
	if sql != wantSQL {
		t.Errorf("BuildSingle() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != 7 {
		t.Errorf("BuildSingle() args = %v", args)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty string", "", nil},
		{"single ascending", "title", []query.SortField{{Field: "title"}}},
		{"single descending", "-created_at", []query.SortField{{Field: "created_at", Descending: true}}},
		{"mixed with spaces", " title , -created_at ", []query.SortField{
			{Field: "title"},
			{Field: "created_at", Descending: true},
		}},
		{"empty parts skipped", "title,,city", []query.SortField{{Field: "title"}, {Field: "city"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseSortFields(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuilderStatements(t *testing.T) {
	newest := query.SortField{Field: "CreatedAt", Descending: true}

	tests := []struct {
		name     string
		build    func() (string, []any)
		wantSQL  string
		wantArgs []any
	}{
		{
			name:    "plain select",
			build:   query.NewBuilder(testProjection()).Build,
			wantSQL: selectListings,
		},
		{
			name:    "count",
			build:   query.NewBuilder(testProjection()).BuildCount,
			wantSQL: "SELECT COUNT(*) FROM public.listings l",
		},
		{
			name: "count with condition",
			build: query.NewBuilder(testProjection()).
				WhereEquals("City", "Salmiya").
				BuildCount,
			wantSQL:  "SELECT COUNT(*) FROM public.listings l WHERE l.city = $1",
			wantArgs: []any{"Salmiya"},
		},
		{
			name: "page with default sort",
			build: func() (string, []any) {
				return query.NewBuilder(testProjection(), newest).BuildPage(2, 10)
			},
			wantSQL: selectListings + " ORDER BY l.created_at DESC LIMIT 10 OFFSET 10",
		},
		{
			name: "page below one is first page",
			build: func() (string, []any) {
				return query.NewBuilder(testProjection(), newest).BuildPage(0, 10)
			},
			wantSQL: selectListings + " ORDER BY l.created_at DESC LIMIT 10 OFFSET 0",
		},
		{
			name: "page with conditions",
			build: func() (string, []any) {
				return query.NewBuilder(testProjection(), query.SortField{Field: "ID"}).
					WhereContains("Title", ptr("shawarma")).
					BuildPage(3, 25)
			},
			wantSQL:  selectListings + " WHERE l.title ILIKE $1 ORDER BY l.id ASC LIMIT 25 OFFSET 50",
			wantArgs: []any{"%shawarma%"},
		},
		{
			name: "single ignores conditions",
			build: func() (string, []any) {
				return query.NewBuilder(testProjection()).WhereEquals("City", "Hawally").BuildSingle("ID", "abc")
			},
			wantSQL:  selectListings + " WHERE l.id = $1",
			wantArgs: []any{"abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.build()
			if sql != tt.wantSQL {
				t.Errorf("sql = %q, want %q", sql, tt.wantSQL)
			}
			if !slices.Equal(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestBuilderConditions(t *testing.T) {
	var nilBool *bool

	tests := []struct {
		name      string
		apply     func(b *query.Builder)
		wantWhere string
		wantArgs  []any
	}{
		{"equals", func(b *query.Builder) { b.WhereEquals("Title", "Al Boom") }, " WHERE l.title = $1", []any{"Al Boom"}},
		{"equals nil skipped", func(b *query.Builder) { b.WhereEquals("Title", nil) }, "", nil},
		{"equals nil pointer skipped", func(b *query.Builder) { b.WhereEquals("Title", nilBool) }, "", nil},
		{"contains", func(b *query.Builder) { b.WhereContains("City", ptr("salm")) }, " WHERE l.city ILIKE $1", []any{"%salm%"}},
		{"contains escapes wildcards", func(b *query.Builder) { b.WhereContains("Title", ptr(`50%_off\`)) }, " WHERE l.title ILIKE $1", []any{`%50\%\_off\\%`}},
		{"contains nil skipped", func(b *query.Builder) { b.WhereContains("Title", nil) }, "", nil},
		{"contains empty skipped", func(b *query.Builder) { b.WhereContains("Title", ptr("")) }, "", nil},
		{"in", func(b *query.Builder) { b.WhereIn("ID", []any{"a", "b", "c"}) }, " WHERE l.id IN ($1, $2, $3)", []any{"a", "b", "c"}},
		{"in empty skipped", func(b *query.Builder) { b.WhereIn("ID", nil) }, "", nil},
		{
			"search",
			func(b *query.Builder) { b.WhereSearch(ptr("cafe"), "Title", "City") },
			" WHERE (l.title ILIKE $1 OR l.city ILIKE $2)",
			[]any{"%cafe%", "%cafe%"},
		},
		{"search nil skipped", func(b *query.Builder) { b.WhereSearch(nil, "Title") }, "", nil},
		{"raw empty skipped", func(b *query.Builder) { b.Where("") }, "", nil},
		{
			"numbering across conditions",
			func(b *query.Builder) {
				b.WhereEquals("City", "Kuwait City").
					WhereIn("ID", []any{"a", "b"}).
					Where("EXISTS (SELECT 1 FROM public.listing_categories c WHERE c.listing_id = l.id AND c.slug = $%d)", "restaurants")
			},
			" WHERE l.city = $1 AND l.id IN ($2, $3) AND EXISTS (SELECT 1 FROM public.listing_categories c WHERE c.listing_id = l.id AND c.slug = $4)",
			[]any{"Kuwait City", "a", "b", "restaurants"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := query.NewBuilder(testProjection())
			tt.apply(b)
			sql, args := b.Build()
			if want := selectListings + tt.wantWhere; sql != want {
				t.Errorf("sql = %q, want %q", sql, want)
			}
			if !slices.Equal(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestBuilderOrderByFields(t *testing.T) {
	defaultSort := query.SortField{Field: "CreatedAt", Descending: true}

	tests := []struct {
		name   string
		fields []query.SortField
		want   string
	}{
		{
			"view and column names",
			[]query.SortField{{Field: "city"}, {Field: "Title", Descending: true}},
			" ORDER BY l.city ASC, l.title DESC",
		},
		{
			"unknown fields dropped",
			[]query.SortField{{Field: "rating; --"}, {Field: "created_at"}},
			" ORDER BY l.created_at ASC",
		},
		{
			"nothing valid falls back to default",
			[]query.SortField{{Field: "popularity"}},
			" ORDER BY l.created_at DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := query.NewBuilder(testProjection(), defaultSort).OrderByFields(tt.fields).Build()
			if want := selectListings + tt.want; sql != want {
				t.Errorf("sql = %q, want %q", sql, want)
			}
		})
	}
}
