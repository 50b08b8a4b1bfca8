package seo

import "strings"

// MetaTag is a <meta name content> pair.
type MetaTag struct {
	Name    string
	Content string
}

// AgentMetaTags renders agent content as meta tags followed by the fixed
// regional tags. Empty values are omitted.
func (c *Config) AgentMetaTags(content AgentContent) []MetaTag {
	var tags []MetaTag
	if content.Intent != "" {
		tags = append(tags, MetaTag{"ai-agent-intent", content.Intent})
	}
	if len(content.Entities) > 0 {
		tags = append(tags, MetaTag{"ai-agent-entities", strings.Join(content.Entities, ",")})
	}
	if len(content.Topics) > 0 {
		tags = append(tags, MetaTag{"ai-agent-topics", strings.Join(content.Topics, ",")})
	}
	if len(content.Hooks) > 0 {
		tags = append(tags, MetaTag{"ai-agent-conversational-hooks", strings.Join(content.Hooks, "|")})
	}
	return append(tags, c.GeoMetaTags()...)
}

// GeoMetaTags returns the regional meta tags carried by every page.
func (c *Config) GeoMetaTags() []MetaTag {
	return []MetaTag{
		{"content-language", c.ContentLanguage()},
		{"geo.region", c.CountryCode},
		{"geo.country", c.Country},
		{"distribution", "global"},
		{"rating", "general"},
		{"revisit-after", "1 day"},
	}
}
