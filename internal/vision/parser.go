package vision

import (
	"strconv"
	"strings"
	"unicode"
)

// CriticalCartRecommendation is put first whenever the cart icon check fails
const CriticalCartRecommendation = "CRITICAL: Add a clearly visible shopping cart icon to the header on every page - shoppers cannot buy what they cannot find"

const overallKey = "overall"

type labelRule struct {
	substring string
	key       string
}

// scoreLabelRules maps a lower-cased score label to its sub-score key.
// Evaluated in order, first match wins.
var scoreLabelRules = []labelRule{
	{"overall", overallKey},
	{"ecommerce", CategoryEcommerceVisibility},
	{"e-commerce", CategoryEcommerceVisibility},
	{"hierarchy", CategoryVisualHierarchy},
	{"search", CategorySearchFirst},
	{"mobile", CategoryMobileFirst},
	{"simplicity", CategorySimplicity},
	{"accessib", CategoryAccessibility},
	{"brand", CategoryBrandConsistency},
}

// checklistRules maps a checklist question phrasing to its feature flag
var checklistRules = []labelRule{
	{"cart icon visible?", FlagCartIconVisible},
	{"pricing visible?", FlagPricingVisible},
	{"add to cart buttons?", FlagAddToCartButtons},
	{"shopping intent clear?", FlagShoppingIntentClear},
}

type section int

const (
	sectionNone section = iota
	sectionIssues
	sectionRecommendations
	sectionHighlights
)

var sectionMarkers = []struct {
	marker  string
	section section
}{
	{"**ISSUES", sectionIssues},
	{"**RECOMMENDATIONS", sectionRecommendations},
	{"**HIGHLIGHTS", sectionHighlights},
}

// ParseResponse converts the model's free-text reply into a ScreenAnalysis.
// It accepts any input; anything it cannot read falls back to defaults.
func ParseResponse(screenName, response string) ScreenAnalysis {
	analysis := newScreenAnalysis(screenName)
	analysis.RawResponse = response

	overallFound := false
	current := sectionNone

	for _, rawLine := range strings.Split(response, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		for _, rule := range checklistRules {
			if strings.Contains(lower, rule.substring) {
				analysis.FeatureFlags[rule.key] = strings.Contains(lower, "yes")
			}
		}

		if key, score, ok := parseScoreLine(line); ok {
			if key == overallKey {
				analysis.OverallScore = score
				overallFound = true
			} else {
				analysis.SubScores[key] = score
			}
		}

		if s, ok := sectionFor(line); ok {
			current = s
			continue
		}

		if current == sectionNone || !(strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*")) {
			continue
		}

		item := strings.TrimSpace(strings.TrimLeft(line, "-*• "))
		if item == "" {
			continue
		}

		switch current {
		case sectionIssues:
			analysis.Issues = append(analysis.Issues, item)
		case sectionRecommendations:
			analysis.Recommendations = append(analysis.Recommendations, screenName+": "+item)
		case sectionHighlights:
			analysis.Highlights = append(analysis.Highlights, item)
		}
	}

	if !overallFound {
		analysis.OverallScore = deriveOverall(analysis.SubScores)
	}

	if !analysis.FeatureFlags[FlagCartIconVisible] {
		analysis.Recommendations = prependOnce(analysis.Recommendations, CriticalCartRecommendation)
	}

	return analysis
}

// parseScoreLine reads "Label: N/100". It reports ok=false for lines that
// are not score lines, carry an unknown label, or have no readable number.
func parseScoreLine(line string) (string, int, bool) {
	if !strings.Contains(line, ":") || !strings.Contains(line, "/100") {
		return "", 0, false
	}

	label, rest, _ := strings.Cut(line, ":")
	label = strings.ToLower(strings.TrimSpace(strings.TrimLeft(label, "-*#•> \t")))
	label = strings.TrimRight(label, "*_ ")

	key := ""
	for _, rule := range scoreLabelRules {
		if strings.Contains(label, rule.substring) {
			key = rule.key
			break
		}
	}
	if key == "" {
		return "", 0, false
	}

	idx := strings.Index(rest, "/100")
	if idx < 0 {
		return "", 0, false
	}

	for _, field := range strings.Fields(rest[:idx]) {
		digits := strings.TrimFunc(field, func(r rune) bool { return !unicode.IsDigit(r) })
		if digits == "" {
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		return key, clampScore(n), true
	}

	return "", 0, false
}

func sectionFor(line string) (section, bool) {
	upper := strings.ToUpper(line)
	for _, m := range sectionMarkers {
		if strings.Contains(upper, m.marker) {
			return m.section, true
		}
	}
	return sectionNone, false
}

// deriveOverall is the integer mean of the non-zero sub-scores, or
// NeutralScore when there are none. A deliberate 0 counts as absent.
func deriveOverall(subScores map[string]int) int {
	total, count := 0, 0
	for _, c := range Categories {
		if v := subScores[c]; v > 0 {
			total += v
			count++
		}
	}
	if count == 0 {
		return NeutralScore
	}
	return total / count
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func prependOnce(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append([]string{item}, list...)
}
