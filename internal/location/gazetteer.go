package location

import (
	"slices"
	"strings"
)

// kuwaitiPlaceNames lists Kuwaiti cities, districts, and development zones,
// grouped by governorate. Some names appear under more than one heading.
var kuwaitiPlaceNames = []string{
	// Major cities and governorate seats
	"Kuwait City", "Hawalli", "Salmiya", "Farwaniya", "Jahra", "Ahmadi",

	// Hawalli
	"Mangaf", "Rumaithiya", "Bayan", "Mishref", "Salwa", "Shaab",
	"Siddiq", "Jabriya", "Surra", "Hitteen", "Shuhada", "Zahra",

	// Capital (Al Asimah)
	"Sharq", "Qibla", "Mirgab", "Dasman", "Abdullah Al-Salem", "Adiliya",
	"Kaifan", "Khaldiya", "Mansouriya", "Nuzha", "Qadsiya", "Qortuba",
	"Rawda", "Shamiya", "Shuwaikh", "Sulaibikhat", "Yarmouk", "Bneid Al-Gar",
	"Daiya", "Dasma", "Faiha", "Ghornata", "Keifan", "Nahda",

	// Farwaniya
	"Andalous", "Abdullah Al-Mubarak", "Ardhiya", "Khaitan", "Ferdous",
	"Jleeb Al-Shuyoukh", "Omariya", "Rai", "Rabiya", "Rehab", "Sabah Al-Nasser",
	"Farwaniya", "Ardiya Industrial", "Dhajeej",

	// Ahmadi
	"Fahaheel", "Fintas", "Mahboula", "Mangaf", "Abu Halifa", "Sabahiya",
	"Wafra", "Ahmadi", "Riqqa", "Hadiya", "Zoor", "Julaia", "Khiran",
	"Mina Abdullah", "Shuaiba", "Fahaheel", "Dahar",

	// Jahra
	"Jahra", "Sulaibiya", "Qasr", "Taima", "Naeem", "Oyoun", "Naseem",
	"Saad Al-Abdullah", "Abdali", "Kabd", "Waha", "Amghara",

	// Mubarak Al-Kabeer
	"Qurain", "Qusour", "Funaitees", "Messila", "Mubarak Al-Kabeer",
	"Sabah Al-Salem", "Adan", "Abu Ftaira", "Coastal Strip",

	// Special economic zones and new developments
	"Jaber Al-Ali", "Sabah Al-Ahmad", "South Saad Al-Abdullah", "Khairan",
	"Al-Zour", "Silk City", "Boubyan Island", "Failaka Island",
}

var knownGlobalCities = []string{
	"london", "new york", "dubai", "mumbai", "delhi", "tokyo",
	"beijing", "paris", "sydney", "toronto", "lagos", "cairo",
	"johannesburg", "cape town", "kampala", "dar es salaam",
	"addis ababa", "kigali", "accra", "dakar", "abuja", "nairobi",
	"los angeles", "chicago", "singapore", "hong kong", "shanghai",
	"berlin", "madrid", "rome", "amsterdam", "brussels", "riyadh",
	"jeddah", "abu dhabi", "doha", "manama", "muscat", "amman",
	"beirut", "baghdad", "tehran", "ankara", "istanbul",
}

// Lowercased forms used for matching, built once at init.
var (
	kuwaitiLower = lowerAll(kuwaitiPlaceNames)
	globalLower  = lowerAll(knownGlobalCities)
)

// KuwaitiPlaceNames returns a copy of the Kuwaiti gazetteer in source order.
func KuwaitiPlaceNames() []string {
	return slices.Clone(kuwaitiPlaceNames)
}

// KnownGlobalCities returns a copy of the international gazetteer in source order.
func KnownGlobalCities() []string {
	return slices.Clone(knownGlobalCities)
}

func lowerAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(n)
	}
	return out
}
