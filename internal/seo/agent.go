package seo

import (
	"fmt"
	"strings"
)

// Kind selects the page type an agent summary describes.
type Kind string

const (
	KindListing  Kind = "listing"
	KindCategory Kind = "category"
	KindLocation Kind = "location"
)

// QA is a question and answer pair surfaced to AI search agents.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AgentContent is the machine-oriented summary of a page: the searcher intent
// it satisfies, recognised entities, knowledge-graph topics, conversational
// hooks, and canned Q&A.
type AgentContent struct {
	Intent   string   `json:"intent"`
	Entities []string `json:"entities"`
	Topics   []string `json:"topics"`
	Hooks    []string `json:"conversational_hooks"`
	QA       []QA     `json:"question_answer"`
}

const answerExcerpt = 200

var businessTypes = []string{
	"restaurant", "hotel", "clinic", "school", "bank", "shop", "office",
	"factory", "warehouse", "salon", "gym", "pharmacy", "garage",
	"law firm", "accounting firm", "real estate", "insurance",
}

var mainTopics = []string{
	"Kuwait business directory",
	"local businesses",
	"service providers",
	"company listings",
	"business information",
	"contact details",
	"location services",
}

var semanticKeywords = []string{
	"business directory Kuwait",
	"verified companies Kuwait",
	"business contacts Kuwait",
	"businesses Kuwait City",
	"service providers Hawalli",
	"local businesses Salmiya",
	"professional services directory",
}

var greetings = []string{
	"Looking for a business in Kuwait?",
	"Need to find a service provider?",
	"Searching for local businesses?",
	"Want to connect with companies?",
}

// AgentContent builds the agent summary for a listing, category, or location page.
// Entities, topics, and hooks keep first-seen order with duplicates removed.
func (c *Config) AgentContent(name, category, location, description string, kind Kind) AgentContent {
	var intent string
	switch kind {
	case KindCategory:
		intent = fmt.Sprintf("Find %s businesses and services in %s", category, c.Country)
	case KindLocation:
		intent = fmt.Sprintf("Find businesses and services in %s, %s", location, c.Country)
	default:
		intent = fmt.Sprintf("Find information about %s, a %s business in %s, %s", name, category, location, c.Country)
	}

	lowerCategory := strings.ToLower(category)
	lowerLocation := strings.ToLower(location)

	entities := []string{name, category, location, c.Country, "business directory"}
	for _, bt := range businessTypes {
		if strings.Contains(lowerCategory, bt) {
			entities = append(entities, bt)
		}
	}
	for _, city := range c.MajorCities {
		if strings.Contains(lowerLocation, strings.ToLower(city)) {
			entities = append(entities, city)
		}
	}

	topics := []string{lowerCategory, "business services", "local directory", c.Country + " business"}
	topics = append(topics, mainTopics...)
	for _, kw := range semanticKeywords {
		lower := strings.ToLower(kw)
		if strings.Contains(lower, lowerCategory) || strings.Contains(lower, lowerLocation) {
			topics = append(topics, kw)
		}
	}

	hooks := append([]string{}, greetings...)
	hooks = append(hooks,
		fmt.Sprintf("Looking for %s in %s?", category, location),
		fmt.Sprintf("Find the best %s services", category),
		fmt.Sprintf("Connect with %s", name),
	)

	qa := []QA{
		{
			Question: fmt.Sprintf("What is %s?", name),
			Answer: fmt.Sprintf("%s is a %s business located in %s, %s. %s...",
				name, category, location, c.Country, excerpt(description, answerExcerpt)),
		},
		{
			Question: fmt.Sprintf("Where is %s located?", name),
			Answer: fmt.Sprintf("%s is located in %s, %s. You can find their exact address and contact details on our directory.",
				name, location, c.Country),
		},
		{
			Question: fmt.Sprintf("What services does %s offer?", name),
			Answer: fmt.Sprintf("%s offers %s services in %s. For detailed information about their services, contact them directly.",
				name, category, location),
		},
	}

	return AgentContent{
		Intent:   intent,
		Entities: dedupe(entities),
		Topics:   dedupe(topics),
		Hooks:    dedupe(hooks),
		QA:       qa,
	}
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
