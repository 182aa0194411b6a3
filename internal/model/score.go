package model

// BusinessContext is a coarse business classification used to adjust
// which policies are expected of a site.
type BusinessContext string

const (
	ContextSaaS       BusinessContext = "saas"
	ContextFintech    BusinessContext = "fintech"
	ContextBlockchain BusinessContext = "blockchain"
	ContextEcommerce  BusinessContext = "ecommerce"
	ContextContent    BusinessContext = "content_media"
	ContextGeneric    BusinessContext = "generic"
)

// Expectation states whether a policy page is expected for a business
// context.
type Expectation string

const (
	ExpectationRequired      Expectation = "required"
	ExpectationOptional      Expectation = "optional"
	ExpectationNotApplicable Expectation = "not_applicable"
)

// PolicyFinding is one row of the policy-presence table.
type PolicyFinding struct {
	Policy      PageType    `json:"policy"`
	Present     bool        `json:"present"`
	Expectation Expectation `json:"expectation"`
	Points      int         `json:"points"`
}

// TrustDeduction explains one deduction from the trust bucket.
type TrustDeduction struct {
	Reason string `json:"reason"`
	Points int    `json:"points"`
}

// PassCheck is a named boolean compliance gate.
type PassCheck struct {
	Pass   bool   `json:"pass"`
	Detail string `json:"detail,omitempty"`
}

// ComplianceResult is the compliance intelligence output: a 0-100 score
// with its technical/policy/trust breakdown and two pass/fail gates.
type ComplianceResult struct {
	Score  int    `json:"score"`
	Rating string `json:"rating"` // Good | Fair | Poor

	Technical int `json:"technical"` // <= 30
	Policy    int `json:"policy"`    // <= 40
	Trust     int `json:"trust"`     // <= 30

	Policies   []PolicyFinding  `json:"policies"`
	Deductions []TrustDeduction `json:"deductions,omitempty"`

	GeneralCompliance      PassCheck `json:"general_compliance"`
	PaymentTermsCompliance PassCheck `json:"payment_terms_compliance"`
}

// SEOCheck is one scored SEO criterion.
type SEOCheck struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
	Max    int    `json:"max"`
	Detail string `json:"detail,omitempty"`
}

// SEOResult is the 0-100 SEO analyzer output.
type SEOResult struct {
	Score  int        `json:"score"`
	Checks []SEOCheck `json:"checks"`
}

// ContentRisk is the auxiliary content-risk score. Informational only; it
// never feeds the public compliance number.
type ContentRisk struct {
	Score              int       `json:"score"`
	Hits               []RiskHit `json:"hits,omitempty"`
	DummyWordsDetected bool      `json:"dummy_words_detected"`
}

// MCCMatch is one merchant-category suggestion.
type MCCMatch struct {
	Category   string   `json:"category"`
	Code       string   `json:"code"`
	Confidence int      `json:"confidence"`
	Matched    []string `json:"matched_keywords,omitempty"`
}

// MCCResult holds the advisory merchant-category classification. It never
// gates the scan outcome.
type MCCResult struct {
	Primary   *MCCMatch  `json:"primary,omitempty"`
	Secondary *MCCMatch  `json:"secondary,omitempty"`
	Top       []MCCMatch `json:"top,omitempty"`
}
