package vision

// Sub-score categories, in rubric order
const (
	CategoryEcommerceVisibility = "ecommerce_visibility"
	CategoryVisualHierarchy     = "visual_hierarchy"
	CategorySearchFirst         = "search_first"
	CategoryMobileFirst         = "mobile_first"
	CategorySimplicity          = "simplicity"
	CategoryAccessibility       = "accessibility"
	CategoryBrandConsistency    = "brand_consistency"
)

// Categories lists every sub-score key a ScreenAnalysis carries
var Categories = []string{
	CategoryEcommerceVisibility,
	CategoryVisualHierarchy,
	CategorySearchFirst,
	CategoryMobileFirst,
	CategorySimplicity,
	CategoryAccessibility,
	CategoryBrandConsistency,
}

// Feature checks extracted from the model's checklist answers
const (
	FlagCartIconVisible     = "cart_icon_visible"
	FlagPricingVisible      = "pricing_visible"
	FlagAddToCartButtons    = "add_to_cart_buttons"
	FlagShoppingIntentClear = "shopping_intent_clear"
)

// FeatureFlags lists every boolean check a ScreenAnalysis carries
var FeatureFlags = []string{
	FlagCartIconVisible,
	FlagPricingVisible,
	FlagAddToCartButtons,
	FlagShoppingIntentClear,
}

// Status of a single screen analysis
const (
	StatusOK       = "ok"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Device classes
const (
	DeviceMobile  = "mobile"
	DeviceDesktop = "desktop"
)

// NeutralScore is the overall score used when no score could be extracted
const NeutralScore = 50

// ScreenAnalysis is the structured result for one analyzed screenshot
type ScreenAnalysis struct {
	ScreenName      string          `json:"screen_name" yaml:"screen_name"`
	Device          string          `json:"device" yaml:"device"`
	Status          string          `json:"status" yaml:"status"`
	Error           string          `json:"error,omitempty" yaml:"error,omitempty"`
	OverallScore    int             `json:"overall_score" yaml:"overall_score"`
	SubScores       map[string]int  `json:"sub_scores" yaml:"sub_scores"`
	FeatureFlags    map[string]bool `json:"feature_flags" yaml:"feature_flags"`
	Issues          []string        `json:"issues" yaml:"issues"`
	Recommendations []string        `json:"recommendations" yaml:"recommendations"`
	Highlights      []string        `json:"highlights" yaml:"highlights"`
	RawResponse     string          `json:"raw_response" yaml:"raw_response"`
}

// newScreenAnalysis returns a result with every category and flag at its default
func newScreenAnalysis(screenName string) ScreenAnalysis {
	a := ScreenAnalysis{
		ScreenName:      screenName,
		Device:          DeviceFor(screenName),
		Status:          StatusOK,
		SubScores:       make(map[string]int, len(Categories)),
		FeatureFlags:    make(map[string]bool, len(FeatureFlags)),
		Issues:          []string{},
		Recommendations: []string{},
		Highlights:      []string{},
	}
	for _, c := range Categories {
		a.SubScores[c] = 0
	}
	for _, f := range FeatureFlags {
		a.FeatureFlags[f] = false
	}
	return a
}

// failedAnalysis is the zero-score, empty-findings result used when a
// screen could not be analyzed
func failedAnalysis(screenName, status, message string) ScreenAnalysis {
	a := newScreenAnalysis(screenName)
	a.Status = status
	a.Error = message
	a.OverallScore = 0
	return a
}
