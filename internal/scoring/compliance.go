package scoring

import (
	"fmt"
	"sort"

	"github.com/meridianpay/sitescan/internal/extract"
	"github.com/meridianpay/sitescan/internal/model"
)

// scoredPolicies are the page types the policy bucket awards points for,
// 10 each.
var scoredPolicies = []model.PageType{
	model.PagePrivacy,
	model.PageTerms,
	model.PageRefund,
	model.PageContact,
}

// policyExpectations is the (context, policy) -> expectation table. Rows
// absent here fall back to required. Refund handling follows the business
// model: a pure SaaS can reasonably fold refunds into its terms, and
// blockchain/fintech services typically have no refundable goods at all.
var policyExpectations = map[model.BusinessContext]map[model.PageType]model.Expectation{
	model.ContextSaaS: {
		model.PageRefund: model.ExpectationOptional,
	},
	model.ContextBlockchain: {
		model.PageRefund: model.ExpectationNotApplicable,
	},
	model.ContextFintech: {
		model.PageRefund: model.ExpectationNotApplicable,
	},
	model.ContextContent: {
		model.PageRefund: model.ExpectationOptional,
	},
}

func expectationFor(ctx model.BusinessContext, policy model.PageType) model.Expectation {
	if row, ok := policyExpectations[ctx]; ok {
		if exp, ok := row[policy]; ok {
			return exp
		}
	}
	return model.ExpectationRequired
}

// trustDeductions weighs each restricted-content category. Cryptocurrency
// costs nothing for a business classified as blockchain or fintech.
var trustDeductions = map[string]int{
	"gambling":       15,
	"adult":          20,
	"pharmacy":       10,
	"cryptocurrency": 5,
}

const (
	technicalMax = 30
	policyMax    = 40
	trustMax     = 30
)

// Compliance computes the 0-100 compliance score with its
// technical/policy/trust breakdown and the two pass gates.
func Compliance(graph *model.PageGraph, health model.DomainHealth, ctx model.BusinessContext) model.ComplianceResult {
	res := model.ComplianceResult{}

	// Technical: TLS presence plus registration-age bracket.
	if health.HTTPSValid {
		res.Technical += 15
	}
	res.Technical += registrationAgePoints(health.RegistrationAgeDays)

	// Policy: 10 points per policy, discounted by expectation when absent.
	for _, policy := range scoredPolicies {
		present := graph.HasType(policy)
		exp := expectationFor(ctx, policy)
		points := 0
		switch {
		case present:
			points = 10
		case exp == model.ExpectationNotApplicable:
			points = 10
		case exp == model.ExpectationOptional:
			points = 5
		}
		res.Policy += points
		res.Policies = append(res.Policies, model.PolicyFinding{
			Policy:      policy,
			Present:     present,
			Expectation: exp,
			Points:      points,
		})
	}

	// Trust: start full, deduct per finding.
	res.Trust = trustMax
	categories, dummy := aggregateRisk(graph)
	if dummy {
		res.Trust -= 10
		res.Deductions = append(res.Deductions, model.TrustDeduction{
			Reason: "placeholder text detected", Points: 10,
		})
	}
	for _, category := range categories {
		points := trustDeductions[category]
		if category == "cryptocurrency" &&
			(ctx == model.ContextBlockchain || ctx == model.ContextFintech) {
			continue
		}
		if points == 0 {
			continue
		}
		res.Trust -= points
		res.Deductions = append(res.Deductions, model.TrustDeduction{
			Reason: fmt.Sprintf("restricted content: %s", category), Points: points,
		})
	}
	if res.Trust < 0 {
		res.Trust = 0
	}

	res.Score = res.Technical + res.Policy + res.Trust
	switch {
	case res.Score >= 80:
		res.Rating = "Good"
	case res.Score >= 50:
		res.Rating = "Fair"
	default:
		res.Rating = "Poor"
	}

	res.GeneralCompliance = generalCompliance(health)
	res.PaymentTermsCompliance = paymentTermsCompliance(graph, ctx)
	return res
}

func registrationAgePoints(days int) int {
	switch {
	case days >= 730:
		return 15
	case days >= 365:
		return 10
	case days >= 180:
		return 5
	default:
		return 0
	}
}

// generalCompliance passes when the site serves valid HTTPS and does not
// redirect more than once on entry.
func generalCompliance(health model.DomainHealth) model.PassCheck {
	switch {
	case !health.HTTPSValid:
		return model.PassCheck{Pass: false, Detail: "missing or invalid HTTPS"}
	case health.RedirectCount > 1:
		return model.PassCheck{
			Pass:   false,
			Detail: fmt.Sprintf("excessive redirects (%d)", health.RedirectCount),
		}
	default:
		return model.PassCheck{Pass: true}
	}
}

// paymentTermsCompliance passes when both terms and refund policies are
// present, except a refund policy that the context does not require.
func paymentTermsCompliance(graph *model.PageGraph, ctx model.BusinessContext) model.PassCheck {
	if !graph.HasType(model.PageTerms) {
		return model.PassCheck{Pass: false, Detail: "terms and conditions missing"}
	}
	if !graph.HasType(model.PageRefund) &&
		expectationFor(ctx, model.PageRefund) == model.ExpectationRequired {
		return model.PassCheck{Pass: false, Detail: "refund policy missing"}
	}
	return model.PassCheck{Pass: true}
}

// aggregateRisk folds the per-page risk hits into the set of categories
// seen anywhere on the site, plus whether any page carries placeholder
// filler text.
func aggregateRisk(graph *model.PageGraph) ([]string, bool) {
	seen := map[string]struct{}{}
	dummy := false
	for _, p := range graph.Pages {
		for _, hit := range p.Risk {
			seen[hit.Category] = struct{}{}
		}
		if !dummy && p.Text != "" && extract.DummyText(p.Text) {
			dummy = true
		}
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, dummy
}
