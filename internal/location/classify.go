package location

import (
	"regexp"
	"strings"
)

var (
	governorateSuffix = regexp.MustCompile(`(?i)\bgovernorate$`)
	arabicArticle     = regexp.MustCompile(`(?i)\bal[\s-]?`)
)

// Classify maps a raw city string to a Result. Rules are evaluated in a fixed
// order and the first match wins:
//
//  1. empty input
//  2. exact Kuwaiti match
//  3. exact international match
//  4. partial Kuwaiti match (substring in either direction)
//  5. "kuwait" or "kw" keyword
//  6. governorate suffix or "al" article prefix
//  7. partial international match
//  8. unknown
//
// Rule 6 also fires for Arabic-prefixed names outside Kuwait ("Al Ain").
func Classify(city string) Result {
	normalized := strings.ToLower(strings.TrimSpace(city))

	if normalized == "" {
		return Result{
			Context:               ContextUncertain,
			Confidence:            ConfidenceLow,
			Reason:                "No city provided",
			NeedsUserConfirmation: true,
		}
	}

	if matchesExact(kuwaitiLower, normalized) {
		return Result{
			Context:               ContextKuwait,
			Confidence:            ConfidenceHigh,
			Reason:                "Exact match with known Kuwaiti city",
			NeedsUserConfirmation: false,
		}
	}

	if matchesExact(globalLower, normalized) {
		return Result{
			Context:               ContextOther,
			Confidence:            ConfidenceHigh,
			Reason:                "Exact match with known international city",
			NeedsUserConfirmation: false,
		}
	}

	if matchesPartial(kuwaitiLower, normalized) {
		return Result{
			Context:               ContextKuwait,
			Confidence:            ConfidenceMedium,
			Reason:                "Partial match with Kuwaiti city",
			NeedsUserConfirmation: true,
		}
	}

	if strings.Contains(normalized, "kuwait") || strings.Contains(normalized, "kw") {
		return Result{
			Context:               ContextKuwait,
			Confidence:            ConfidenceMedium,
			Reason:                "Contains Kuwait reference",
			NeedsUserConfirmation: true,
		}
	}

	if governorateSuffix.MatchString(normalized) || arabicArticle.MatchString(normalized) {
		return Result{
			Context:               ContextKuwait,
			Confidence:            ConfidenceMedium,
			Reason:                "Kuwaiti governorate naming pattern",
			NeedsUserConfirmation: true,
		}
	}

	if matchesPartial(globalLower, normalized) {
		return Result{
			Context:               ContextOther,
			Confidence:            ConfidenceMedium,
			Reason:                "Partial match with international city",
			NeedsUserConfirmation: true,
		}
	}

	return Result{
		Context:               ContextUncertain,
		Confidence:            ConfidenceLow,
		Reason:                "Unknown location",
		NeedsUserConfirmation: true,
	}
}

func matchesExact(names []string, normalized string) bool {
	for _, n := range names {
		if n == normalized {
			return true
		}
	}
	return false
}

func matchesPartial(names []string, normalized string) bool {
	for _, n := range names {
		if strings.Contains(normalized, n) || strings.Contains(n, normalized) {
			return true
		}
	}
	return false
}
