package vision

import (
	"fmt"
	"strings"
)

// mobileTokens mark a screen name as a phone-sized capture
var mobileTokens = []string{"mobile", "phone", "iphone", "android"}

// IsMobileScreen reports whether the screen name indicates a mobile capture
func IsMobileScreen(screenName string) bool {
	lower := strings.ToLower(screenName)
	for _, token := range mobileTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// DeviceFor returns DeviceMobile or DeviceDesktop for a screen name
func DeviceFor(screenName string) string {
	if IsMobileScreen(screenName) {
		return DeviceMobile
	}
	return DeviceDesktop
}

type rubricEntry struct {
	Label  string
	Key    string
	Points []string
}

// rubric labels must keep matching scoreLabelRules
var rubric = []rubricEntry{
	{"E-commerce Visibility", CategoryEcommerceVisibility, []string{
		"Cart icon visible in header (30 points)",
		"Prices shown next to products (25 points)",
		"Add to cart buttons present and obvious (25 points)",
		"Store purpose clear at a glance (20 points)",
	}},
	{"Visual Hierarchy", CategoryVisualHierarchy, []string{
		"Clear primary focal point (30 points)",
		"Headings sized by importance (25 points)",
		"Calls to action stand out (25 points)",
		"Logical reading order (20 points)",
	}},
	{"Search-First Design", CategorySearchFirst, []string{
		"Search bar visible without interaction (40 points)",
		"Search bar prominent in size and position (30 points)",
		"Placeholder text guides the shopper (15 points)",
		"Search reachable from every page (15 points)",
	}},
	{"Mobile-First Design", CategoryMobileFirst, []string{
		"Tap targets at least 44px (30 points)",
		"Readable text without zooming (25 points)",
		"No horizontal scrolling (25 points)",
		"Key actions within thumb reach (20 points)",
	}},
	{"Simplicity", CategorySimplicity, []string{
		"Uncluttered layout with whitespace (35 points)",
		"Limited number of competing elements (35 points)",
		"Consistent spacing and alignment (30 points)",
	}},
	{"Accessibility", CategoryAccessibility, []string{
		"Text contrast meets WCAG AA (40 points)",
		"Interactive elements clearly labelled (30 points)",
		"Information not conveyed by colour alone (30 points)",
	}},
	{"Brand Consistency", CategoryBrandConsistency, []string{
		"Logo placement and sizing consistent (35 points)",
		"Colour palette applied consistently (35 points)",
		"Typography consistent across elements (30 points)",
	}},
}

// checklist questions must keep matching checklistRules
var checklist = []string{
	"Cart icon visible?",
	"Pricing visible?",
	"Add to cart buttons?",
	"Shopping intent clear?",
}

// BuildPrompt assembles the full request text for one screen. The output is
// a pure function of its inputs.
func BuildPrompt(screenName string, goals Goals, kb KnowledgeBase) string {
	if kb == nil {
		kb = DefaultKnowledgeBase{}
	}
	goals = goals.WithDefaults()

	var b strings.Builder

	device := "Desktop"
	if IsMobileScreen(screenName) {
		b.WriteString(kb.MobileInstructions())
		device = "Mobile"
	} else {
		b.WriteString(kb.DesktopInstructions())
	}

	fmt.Fprintf(&b, "\n\nSCREEN: %s (%s)\n", screenName, device)

	b.WriteString("\nPROJECT GOALS:\n")
	fmt.Fprintf(&b, "- Vision: %s\n", goals.Vision)
	fmt.Fprintf(&b, "- Design principle: %s\n", goals.DesignPrinciple)
	fmt.Fprintf(&b, "- Accessibility: %s\n", goals.Accessibility)

	b.WriteString("\nE-COMMERCE CHECKLIST (answer each with Yes or No):\n")
	for _, q := range checklist {
		fmt.Fprintf(&b, "- %s\n", q)
	}

	b.WriteString("\nSCORING RUBRIC (score each category from 0 to 100):\n")
	for i, entry := range rubric {
		fmt.Fprintf(&b, "%d. %s\n", i+1, entry.Label)
		for _, p := range entry.Points {
			fmt.Fprintf(&b, "   - %s\n", p)
		}
	}

	b.WriteString("\nREQUIRED OUTPUT FORMAT (use these exact labels, one per line):\n")
	for _, q := range checklist {
		fmt.Fprintf(&b, "%s Yes/No\n", q)
	}
	b.WriteString("\n")
	for _, entry := range rubric {
		fmt.Fprintf(&b, "%s: N/100\n", entry.Label)
	}
	b.WriteString("Overall Score: N/100\n")
	b.WriteString("\n**ISSUES:**\n- Critical problem a shopper would hit on this screen\n")
	b.WriteString("\n**RECOMMENDATIONS:**\n- Specific, actionable fix\n")
	b.WriteString("\n**HIGHLIGHTS:**\n- Something this screen does well\n")
	b.WriteString("\nReplace N with an integer. Start every list item with \"- \". Do not add other sections.\n")

	return b.String()
}
