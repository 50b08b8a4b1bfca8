package seo

import "fmt"

// Document is a JSON-LD object. html/template encodes it as JSON when it is
// rendered inside a <script type="application/ld+json"> element.
type Document map[string]any

const schemaContext = "https://schema.org"

var actionPlatforms = []string{
	"https://schema.org/DesktopWebPlatform",
	"https://schema.org/MobileWebPlatform",
}

// SearchURLTemplate is the site search endpoint advertised in SearchAction markup.
func (c *Config) SearchURLTemplate() string {
	return c.Absolute("/search?q={search_term_string}")
}

func (c *Config) searchAction() Document {
	return Document{
		"@type": "SearchAction",
		"target": Document{
			"@type":          "EntryPoint",
			"urlTemplate":    c.SearchURLTemplate(),
			"actionPlatform": actionPlatforms,
		},
		"query-input": "required name=search_term_string",
	}
}

// AgentSchema returns the WebPage, QAPage, and ItemList documents describing a
// listing, category, or location page.
func (c *Config) AgentSchema(name, category, location, description string, kind Kind) []Document {
	content := c.AgentContent(name, category, location, description, kind)

	answer := description
	if len(content.QA) > 0 {
		answer = content.QA[0].Answer
	}

	items := make([]Document, 0, len(content.Entities))
	for i, entity := range content.Entities {
		items = append(items, Document{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     entity,
			"item": Document{
				"@type":       "Thing",
				"name":        entity,
				"description": fmt.Sprintf("%s related to %s in %s", entity, category, location),
			},
		})
	}

	return []Document{
		{
			"@context":    schemaContext,
			"@type":       "WebPage",
			"name":        name,
			"description": description,
			"about": Document{
				"@type":       "Thing",
				"name":        category,
				"description": fmt.Sprintf("%s services in %s, %s", category, location, c.Country),
			},
			"mainEntity": Document{
				"@type": "Organization",
				"name":  name,
				"address": Document{
					"@type":           "PostalAddress",
					"addressLocality": location,
					"addressCountry":  c.CountryCode,
				},
				"knowsAbout": content.Topics,
				"sameAs":     content.Entities,
			},
			"potentialAction": c.searchAction(),
		},
		{
			"@context": schemaContext,
			"@type":    "QAPage",
			"mainEntity": Document{
				"@type": "Question",
				"name":  fmt.Sprintf("What is %s?", name),
				"acceptedAnswer": Document{
					"@type": "Answer",
					"text":  answer,
				},
			},
		},
		{
			"@context":        schemaContext,
			"@type":           "ItemList",
			"name":            fmt.Sprintf("%s in %s", category, location),
			"description":     fmt.Sprintf("Directory of %s businesses in %s, %s", category, location, c.Country),
			"itemListElement": items,
		},
	}
}

// WebsiteSchema returns the WebSite document with its search action.
func (c *Config) WebsiteSchema() Document {
	return Document{
		"@context":        schemaContext,
		"@type":           "WebSite",
		"name":            c.Name,
		"url":             c.URL,
		"potentialAction": c.searchAction(),
	}
}

// OrganizationSchema returns the Organization document for the directory operator.
func (c *Config) OrganizationSchema() Document {
	b := c.Business
	return Document{
		"@context":    schemaContext,
		"@type":       "Organization",
		"name":        b.Name,
		"legalName":   b.LegalName,
		"description": b.Description,
		"url":         c.URL,
		"logo":        c.Absolute(c.OGImage),
		"address": Document{
			"@type":           "PostalAddress",
			"addressLocality": b.Locality,
			"addressRegion":   b.Region,
			"addressCountry":  b.CountryCode,
		},
		"contactPoint": Document{
			"@type":             "ContactPoint",
			"telephone":         b.Telephone,
			"contactType":       b.ContactType,
			"availableLanguage": b.Languages,
		},
		"areaServed": c.Governorates,
		"sameAs":     c.Social.Links(),
	}
}

// FAQSchema returns an FAQPage document, or nil when qa is empty.
func FAQSchema(qa []QA) Document {
	if len(qa) == 0 {
		return nil
	}
	questions := make([]Document, 0, len(qa))
	for _, q := range qa {
		questions = append(questions, Document{
			"@type": "Question",
			"name":  q.Question,
			"acceptedAnswer": Document{
				"@type": "Answer",
				"text":  q.Answer,
			},
		})
	}
	return Document{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": questions,
	}
}
