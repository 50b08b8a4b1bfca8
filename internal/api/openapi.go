package api

import "github.com/JaimeStill/bizz/pkg/openapi"

// newSpec describes the routes registered by registerRoutes. Paths are
// relative to basePath, which is published as the server URL.
func newSpec(cfg *openapi.Config, version, basePath string) *openapi.Spec {
	spec := openapi.NewSpec(cfg.Title, version)
	spec.SetDescription(cfg.Description)
	spec.AddServer(cfg.ServerURL(basePath))
	if cfg.ContactEmail != "" {
		spec.Info.Contact = &openapi.Contact{Email: cfg.ContactEmail}
	}
	spec.Components.AddSchemas(schemas())

	listingID := openapi.PathParam("id", "Listing ID")
	reviewListing := openapi.PathParam("listingId", "Listing ID")
	attachmentID := openapi.PathParam("id", "Attachment ID")
	blobKey := openapi.StringPathParam("key", "Blob key, may contain slashes")

	pageParams := []*openapi.Parameter{
		openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
		openapi.QueryParam("page_size", "integer", "Results per page", false),
		openapi.QueryParam("search", "string", "Search query", false),
		openapi.QueryParam("sort", "string", "Comma-separated sort fields", false),
	}

	listingFilters := append(pageParams,
		openapi.QueryParam("is_global", "boolean", "Filter by directory section", false),
		openapi.QueryParam("featured", "boolean", "Filter featured listings", false),
		openapi.QueryParam("needs_admin_review", "boolean", "Filter listings awaiting location review", false),
		openapi.QueryParam("location_verified", "boolean", "Filter by verified placement", false),
		openapi.QueryParam("location_detection", "string", "Filter by detection source (user_confirmed or auto)", false),
		openapi.QueryParam("category", "string", "Filter by category slug", false),
		openapi.QueryParam("city", "string", "Filter by city", false),
		openapi.QueryParam("location", "string", "Filter by location text", false),
	)

	bad := openapi.ResponseRef("BadRequest")
	notFound := openapi.ResponseRef("NotFound")
	conflict := openapi.ResponseRef("Conflict")
	unauthorized := openapi.ResponseRef("Unauthorized")

	spec.AddOperation("/listings", "GET", &openapi.Operation{
		Summary:    "List listings",
		Tags:       []string{"Listings"},
		Parameters: listingFilters,
		Responses:  map[int]*openapi.Response{200: openapi.ResponseJSON("Listing page", "ListingPage")},
	})
	spec.AddOperation("/listings", "POST", &openapi.Operation{
		Summary:     "Submit a listing",
		Description: "Classifies the city and stores the derived location record with the listing.",
		Tags:        []string{"Listings"},
		RequestBody: openapi.RequestBodyJSON("CreateListing", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Created listing", "Listing"),
			400: bad,
			409: conflict,
		},
	})
	spec.AddOperation("/listings/featured", "GET", &openapi.Operation{
		Summary: "Featured listings for a directory section",
		Tags:    []string{"Listings"},
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("context", "string", "local, global, or all", false),
		},
		Responses: map[int]*openapi.Response{200: {
			Description: "Featured listings",
			Content: map[string]*openapi.MediaType{
				"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Listing")}},
			},
		}},
	})
	spec.AddOperation("/listings/search", "POST", &openapi.Operation{
		Summary:     "Search listings",
		Tags:        []string{"Listings"},
		RequestBody: openapi.RequestBodyJSON("ListingSearch", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Listing page", "ListingPage"),
			400: bad,
		},
	})
	spec.AddOperation("/listings/detect-location", "POST", &openapi.Operation{
		Summary:     "Classify a city",
		Description: "Returns the placement hint shown by the submission form.",
		Tags:        []string{"Listings"},
		RequestBody: openapi.RequestBodyJSON("DetectRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Classification", "LocationResult"),
			400: bad,
		},
	})
	spec.AddOperation("/listings/slug/{slug}", "GET", &openapi.Operation{
		Summary:    "Find a listing by slug",
		Tags:       []string{"Listings"},
		Parameters: []*openapi.Parameter{openapi.StringPathParam("slug", "Listing slug")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Listing", "Listing"),
			404: notFound,
		},
	})
	spec.AddOperation("/listings/{id}", "GET", &openapi.Operation{
		Summary:    "Find a listing",
		Tags:       []string{"Listings"},
		Parameters: []*openapi.Parameter{listingID},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Listing", "Listing"),
			400: bad,
			404: notFound,
		},
	})
	spec.AddOperation("/listings/{id}", "PUT", &openapi.Operation{
		Summary:     "Edit a listing",
		Description: "A changed city or location_confirmation re-processes the location record.",
		Tags:        []string{"Listings"},
		Parameters:  []*openapi.Parameter{listingID},
		RequestBody: openapi.RequestBodyJSON("UpdateListing", true),
		Security:    openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Updated listing", "Listing"),
			400: bad,
			401: unauthorized,
			404: notFound,
		},
	})
	spec.AddOperation("/listings/{id}", "DELETE", &openapi.Operation{
		Summary:    "Delete a listing",
		Tags:       []string{"Listings"},
		Parameters: []*openapi.Parameter{listingID},
		Security:   openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			204: {Description: "Deleted"},
			400: bad,
			401: unauthorized,
			404: notFound,
		},
	})

	spec.AddOperation("/reviews", "GET", &openapi.Operation{
		Summary:    "Listings awaiting location review",
		Tags:       []string{"Reviews"},
		Parameters: pageParams,
		Security:   openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Listing page", "ListingPage"),
			401: unauthorized,
		},
	})
	spec.AddOperation("/reviews/{listingId}", "GET", &openapi.Operation{
		Summary:    "Review history of a listing",
		Tags:       []string{"Reviews"},
		Parameters: []*openapi.Parameter{reviewListing},
		Security:   openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Recorded decisions, newest first",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Review")}},
				},
			},
			401: unauthorized,
			404: notFound,
		},
	})
	spec.AddOperation("/reviews/{listingId}/approve", "POST", &openapi.Operation{
		Summary:     "Approve the detected placement",
		Tags:        []string{"Reviews"},
		Parameters:  []*openapi.Parameter{reviewListing},
		RequestBody: openapi.RequestBodyJSON("ApproveReview", false),
		Security:    openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Recorded decision", "Review"),
			400: bad,
			401: unauthorized,
			404: notFound,
			409: conflict,
		},
	})
	spec.AddOperation("/reviews/{listingId}/override", "POST", &openapi.Operation{
		Summary:     "Override the placement",
		Tags:        []string{"Reviews"},
		Parameters:  []*openapi.Parameter{reviewListing},
		RequestBody: openapi.RequestBodyJSON("OverrideReview", true),
		Security:    openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Recorded decision", "Review"),
			400: bad,
			401: unauthorized,
			404: notFound,
		},
	})

	spec.AddOperation("/attachments", "GET", &openapi.Operation{
		Summary: "Attachments of a listing",
		Tags:    []string{"Attachments"},
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("listing_id", "string", "Listing ID", true),
		},
		Responses: map[int]*openapi.Response{
			200: {
				Description: "Attachments",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Attachment")}},
				},
			},
			400: bad,
		},
	})
	spec.AddOperation("/attachments", "POST", &openapi.Operation{
		Summary:     "Upload listing media",
		Description: "Returns 201 when every file is stored, otherwise 207 with a result per file.",
		Tags:        []string{"Attachments"},
		RequestBody: openapi.RequestBodyMultipart(&openapi.Schema{
			Type:     "object",
			Required: []string{"listing_id", "kind", "files"},
			Properties: map[string]*openapi.Schema{
				"listing_id": {Type: "string", Format: "uuid"},
				"kind":       {Type: "string", Enum: []any{"logo", "gallery", "brochure"}},
				"files":      {Type: "array", Items: &openapi.Schema{Type: "string", Format: "binary"}},
			},
		}),
		Security:  openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			201: {Description: "All files stored"},
			207: {Description: "Some files rejected"},
			400: bad,
			401: unauthorized,
			413: openapi.ResponseRef("PayloadTooLarge"),
		},
	})
	spec.AddOperation("/attachments/{id}", "GET", &openapi.Operation{
		Summary:    "Find an attachment",
		Tags:       []string{"Attachments"},
		Parameters: []*openapi.Parameter{attachmentID},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Attachment", "Attachment"),
			404: notFound,
		},
	})
	spec.AddOperation("/attachments/{id}", "DELETE", &openapi.Operation{
		Summary:    "Delete an attachment",
		Tags:       []string{"Attachments"},
		Parameters: []*openapi.Parameter{attachmentID},
		Security:   openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			204: {Description: "Deleted"},
			401: unauthorized,
			404: notFound,
		},
	})
	spec.AddOperation("/attachments/{id}/download", "GET", &openapi.Operation{
		Summary:    "Download an attachment",
		Tags:       []string{"Attachments"},
		Parameters: []*openapi.Parameter{attachmentID},
		Responses: map[int]*openapi.Response{
			200: {Description: "Attachment content"},
			404: notFound,
		},
	})

	spec.AddOperation("/storage", "GET", &openapi.Operation{
		Summary: "List stored blobs",
		Tags:    []string{"Storage"},
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("prefix", "string", "Key prefix", false),
			{Name: "listing", In: "query", Description: "Listing ID; selects that listing's media and overrides prefix", Schema: &openapi.Schema{Type: "string", Format: "uuid"}},
			openapi.QueryParam("max_results", "integer", "Blobs fetched per service page", false),
		},
		Security: openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			200: {Description: "Blob metadata"},
			400: bad,
			401: unauthorized,
		},
	})
	spec.AddOperation("/storage/{key}", "GET", &openapi.Operation{
		Summary:    "Find blob metadata",
		Tags:       []string{"Storage"},
		Parameters: []*openapi.Parameter{blobKey},
		Security:   openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			200: {Description: "Blob metadata"},
			401: unauthorized,
			404: notFound,
		},
	})
	spec.AddOperation("/storage/download/{key}", "GET", &openapi.Operation{
		Summary:    "Download a blob",
		Tags:       []string{"Storage"},
		Parameters: []*openapi.Parameter{blobKey},
		Security:   openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			200: {Description: "Blob content"},
			401: unauthorized,
			404: notFound,
		},
	})

	return spec
}

func schemas() map[string]*openapi.Schema {
	str := func(desc string) *openapi.Schema { return &openapi.Schema{Type: "string", Description: desc} }
	boolean := &openapi.Schema{Type: "boolean"}
	confirmation := &openapi.Schema{
		Type:        "string",
		Description: "Submitter's answer to \"is this business in Kuwait?\"",
		Enum:        []any{"", "kuwait", "other"},
	}

	category := &openapi.Schema{
		Type:     "object",
		Required: []string{"name"},
		Properties: map[string]*openapi.Schema{
			"name":       str("Display name"),
			"slug":       str("URL segment, derived from name when empty"),
			"is_primary": boolean,
		},
	}

	listingFields := func() map[string]*openapi.Schema {
		return map[string]*openapi.Schema{
			"title":        str("Business name"),
			"description":  str("Listing description"),
			"city":         str("Free-text city used for location classification"),
			"location":     str("Address or area"),
			"categories":   {Type: "array", Items: category},
			"featured":     boolean,
			"rating":       {Type: "string", Enum: []any{"high", "mid", "low"}},
			"rating_score": {Type: "number", Format: "double"},
			"review_count": {Type: "integer"},
			"phone":        str("Contact phone"),
			"verified":     boolean,
			"status":       str("Open status text"),
			"image_url":    str("Cover image URL"),
		}
	}

	listing := listingFields()
	listing["id"] = &openapi.Schema{Type: "string", Format: "uuid"}
	listing["slug"] = str("Stable URL slug")
	listing["is_global"] = boolean
	listing["location_confirmation"] = confirmation
	listing["location_verified"] = boolean
	listing["location_detection"] = &openapi.Schema{Type: "string", Enum: []any{"user_confirmed", "auto"}}
	listing["needs_admin_review"] = boolean
	listing["created_at"] = &openapi.Schema{Type: "string", Format: "date-time"}
	listing["updated_at"] = &openapi.Schema{Type: "string", Format: "date-time"}

	create := listingFields()
	create["location_confirmation"] = confirmation

	search := map[string]*openapi.Schema{
		"page":               {Type: "integer"},
		"page_size":          {Type: "integer"},
		"search":             {Type: "string"},
		"sort":               {Type: "string"},
		"is_global":          boolean,
		"featured":           boolean,
		"needs_admin_review": boolean,
		"location_verified":  boolean,
		"location_detection": {Type: "string"},
		"category":           {Type: "string"},
		"city":               {Type: "string"},
		"location":           {Type: "string"},
	}

	return map[string]*openapi.Schema{
		"Listing": {Type: "object", Properties: listing},
		"ListingPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Listing")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
		"CreateListing": {Type: "object", Required: []string{"title", "categories"}, Properties: create},
		"UpdateListing": {
			Type:        "object",
			Description: "Partial edit. Omitted fields are unchanged.",
			Properties:  create,
		},
		"ListingSearch": {Type: "object", Properties: search},
		"DetectRequest": {
			Type:       "object",
			Properties: map[string]*openapi.Schema{"city": str("City to classify")},
		},
		"LocationResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"context":                 {Type: "string", Enum: []any{"kuwait", "other", "uncertain"}},
				"confidence":              {Type: "string", Enum: []any{"high", "medium", "low"}},
				"reason":                  str("Rule that decided the classification"),
				"needs_user_confirmation": boolean,
			},
		},
		"Review": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"listing_id":   {Type: "string", Format: "uuid"},
				"action":       {Type: "string", Enum: []any{"approve", "override"}},
				"confirmation": confirmation,
				"is_global":    boolean,
				"reviewer":     str("Subject of the reviewing token"),
				"note":         str("Reviewer note"),
				"reviewed_at":  {Type: "string", Format: "date-time"},
			},
		},
		"ApproveReview": {
			Type:       "object",
			Properties: map[string]*openapi.Schema{"note": str("Reviewer note")},
		},
		"OverrideReview": {
			Type:     "object",
			Required: []string{"confirmation"},
			Properties: map[string]*openapi.Schema{
				"confirmation": {Type: "string", Enum: []any{"kuwait", "other"}},
				"note":         str("Reviewer note"),
			},
		},
		"Attachment": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":           {Type: "string", Format: "uuid"},
				"listing_id":   {Type: "string", Format: "uuid"},
				"kind":         {Type: "string", Enum: []any{"logo", "gallery", "brochure"}},
				"filename":     {Type: "string"},
				"content_type": {Type: "string"},
				"size_bytes":   {Type: "integer"},
				"page_count":   {Type: "integer", Description: "Brochure page count"},
				"storage_key":  {Type: "string"},
				"uploaded_at":  {Type: "string", Format: "date-time"},
			},
		},
	}
}
