// Package changes compares the current scan against the most recent
// prior snapshot of the same URL and grades what moved.
package changes

import (
	"fmt"
	"sort"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/meridianpay/sitescan/internal/model"
)

// policyPages are the page types whose content changes matter most to a
// due-diligence reviewer.
var policyPages = map[model.PageType]bool{
	model.PagePrivacy:  true,
	model.PageTerms:    true,
	model.PageRefund:   true,
	model.PageShipping: true,
}

// Detect diffs the current snapshot against the prior one. A nil prior
// yields a baseline ChangeSet with no changes, which is not an error.
func Detect(prior, current *model.SiteSnapshot) *model.ChangeSet {
	if prior == nil {
		return &model.ChangeSet{Baseline: true}
	}

	set := &model.ChangeSet{}

	// Page types present in both scans, stable order for the report.
	var shared []model.PageType
	for pt := range current.Fingerprints {
		if _, ok := prior.Fingerprints[pt]; ok {
			shared = append(shared, pt)
		}
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i] < shared[j] })

	for _, pt := range shared {
		if prior.Fingerprints[pt] == current.Fingerprints[pt] {
			continue
		}
		set.Changes = append(set.Changes, contentChange(pt, prior, current))
	}

	if prior.Signals.PricingModel != "" && current.Signals.PricingModel != "" &&
		prior.Signals.PricingModel != current.Signals.PricingModel {
		set.Changes = append(set.Changes, model.Change{
			Type:     model.ChangePricing,
			Severity: model.SeverityCritical,
			Detail: fmt.Sprintf("pricing model changed from %s to %s",
				prior.Signals.PricingModel, current.Signals.PricingModel),
		})
	}

	if prior.Signals.ProductCount != current.Signals.ProductCount {
		set.Changes = append(set.Changes, productChange(
			prior.Signals.ProductCount, current.Signals.ProductCount))
	}

	return set
}

func contentChange(pt model.PageType, prior, current *model.SiteSnapshot) model.Change {
	switch {
	case pt == model.PagePricing:
		return model.Change{
			Type:     model.ChangePricing,
			Severity: model.SeverityCritical,
			PageType: pt,
			Detail:   "pricing page content changed",
		}
	case policyPages[pt]:
		return model.Change{
			Type:     model.ChangeContent,
			Severity: model.SeverityCritical,
			PageType: pt,
			Detail:   fmt.Sprintf("%s content changed", pt),
		}
	case pt == model.PageHome:
		detail := "home page content changed"
		if sim, ok := summarySimilarity(prior.Signals.Summary, current.Signals.Summary); ok {
			detail = fmt.Sprintf("home page content changed (summary similarity %d%%)", sim)
		}
		return model.Change{
			Type:     model.ChangeContent,
			Severity: model.SeverityModerate,
			PageType: pt,
			Detail:   detail,
		}
	default:
		return model.Change{
			Type:     model.ChangeContent,
			Severity: model.SeverityInfo,
			PageType: pt,
			Detail:   fmt.Sprintf("%s content changed", pt),
		}
	}
}

// productChange grades a product-count move: halving or doubling the
// catalog, or it vanishing entirely, is moderate; smaller drift is info.
func productChange(before, after int) model.Change {
	severity := model.SeverityInfo
	delta := after - before
	if delta < 0 {
		delta = -delta
	}
	if (before > 0 && after == 0) || delta*2 >= max(before, 1) {
		severity = model.SeverityModerate
	}
	return model.Change{
		Type:     model.ChangeProduct,
		Severity: severity,
		Detail:   fmt.Sprintf("product count changed from %d to %d", before, after),
	}
}

// summarySimilarity grades how much of the stored business summary
// survived, as a 0-100 percentage of unchanged text.
func summarySimilarity(before, after string) (int, bool) {
	if before == "" || after == "" {
		return 0, false
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)

	common, total := 0, 0
	for _, d := range diffs {
		n := len(d.Text)
		total += n
		if d.Type == diffmatchpatch.DiffEqual {
			common += 2 * n
			total += n
		}
	}
	if total == 0 {
		return 100, true
	}
	return common * 100 / total, true
}
