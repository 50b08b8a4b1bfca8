package site

// Card is a titled block of copy used by the static pages.
type Card struct {
	Title       string
	Description string
	Features    []string
}

// Stat is a counter shown on the about page.
type Stat struct {
	Number int
	Symbol string
	Title  string
}

var previewCategories = []Card{
	{Title: "Real Estate", Description: "Properties, rentals & developers"},
	{Title: "Manufacturing", Description: "Suppliers & manufacturers"},
	{Title: "Shops & Suppliers", Description: "Retail & wholesale"},
	{Title: "Services", Description: "Professional services"},
	{Title: "Technology", Description: "IT & communications"},
	{Title: "And More...", Description: "Growing daily"},
}

var aboutStats = []Stat{
	{Number: 500, Symbol: "+", Title: "Active Businesses"},
	{Number: 50, Symbol: "+", Title: "Business Categories"},
	{Number: 6, Title: "Governorates Covered"},
	{Number: 98, Symbol: "%", Title: "Client Satisfaction"},
}

var processSteps = []Card{
	{
		Title:       "Discover Businesses",
		Description: "Browse through our comprehensive directory of verified Kuwaiti businesses across all industries and locations.",
	},
	{
		Title:       "Verify & Connect",
		Description: "Access verified business information including contacts, locations, and services to make informed decisions.",
	},
	{
		Title:       "Grow Together",
		Description: "List your business and reach thousands of potential customers searching for services like yours.",
	},
}

var values = []Card{
	{
		Title:       "Trust & Transparency",
		Description: "We verify every business listing to ensure authenticity and build trust within our community.",
	},
	{
		Title:       "Innovation",
		Description: "Leveraging technology to make business discovery and networking easier for all Kuwaitis.",
	},
	{
		Title:       "Growth",
		Description: "Committed to helping Kuwaiti businesses grow their digital presence and reach more customers.",
	},
}

var offerings = []Card{
	{
		Title:       "Free Business Listings",
		Description: "List your business for free with complete details, images, contact information, and location.",
	},
	{
		Title:       "Verified Businesses",
		Description: "All businesses go through our verification process to ensure authenticity and quality.",
	},
	{
		Title:       "Increased Visibility",
		Description: "Reach more customers through our SEO-optimized platform and comprehensive search features.",
	},
}

var marketingServices = []Card{
	{
		Title:       "Online Directory Listing",
		Description: "Get your business listed on Kuwait's premier online directory. Increase visibility and reach thousands of potential customers across all 6 governorates.",
		Features: []string{
			"Verified business profile",
			"Complete business information",
			"Photos and gallery",
			"Location mapping",
			"Customer reviews",
			"Direct contact details",
		},
	},
	{
		Title:       "SEO Optimization",
		Description: "Improve your search engine rankings and get found by customers searching for your services online in Kuwait.",
		Features: []string{
			"Keyword research & strategy",
			"On-page SEO optimization",
			"Local SEO for Kuwait market",
			"Google My Business setup",
			"Monthly performance reports",
			"Competitor analysis",
		},
	},
	{
		Title:       "Social Media Marketing",
		Description: "Build your brand presence across Instagram, Facebook, Twitter, and Snapchat with engaging content and targeted campaigns.",
		Features: []string{
			"Social media strategy",
			"Arabic & English content creation",
			"Community management",
			"Paid social advertising",
			"Influencer partnerships",
			"Analytics & reporting",
		},
	},
	{
		Title:       "Digital Advertising",
		Description: "Run targeted advertising campaigns to reach your ideal customers across Kuwait and drive conversions.",
		Features: []string{
			"Google Ads management",
			"Instagram & Snapchat ads",
			"Display advertising",
			"Retargeting campaigns",
			"A/B testing",
			"ROI optimization",
		},
	},
}

var marketingBenefits = []Card{
	{
		Title:       "Expert Team",
		Description: "Seasoned professionals with proven track records in the Gulf region and Kuwait market",
	},
	{
		Title:       "Data-Driven Strategy",
		Description: "Advanced analytics and insights to optimize campaigns and maximize your return on investment",
	},
	{
		Title:       "Bilingual Excellence",
		Description: "Professional content creation in both Arabic and English to reach all Kuwait audiences",
	},
	{
		Title:       "Personalized Service",
		Description: "Dedicated account management with tailored strategies designed specifically for your business goals",
	},
}
