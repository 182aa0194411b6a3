package scoring

import (
	"sort"

	"github.com/meridianpay/sitescan/internal/extract"
	"github.com/meridianpay/sitescan/internal/model"
)

// AnalyzeContentRisk computes the auxiliary risk score: every restricted
// keyword occurrence costs 20 points and placeholder text adds a flat 50.
// The score is informational and never folds into the compliance number.
func AnalyzeContentRisk(graph *model.PageGraph) model.ContentRisk {
	merged := map[string]*model.RiskHit{}
	totalHits := 0
	dummy := false

	for _, p := range graph.Pages {
		for _, hit := range p.Risk {
			totalHits += hit.Count
			m, ok := merged[hit.Category]
			if !ok {
				m = &model.RiskHit{Category: hit.Category}
				merged[hit.Category] = m
			}
			m.Count += hit.Count
			m.Keywords = mergeKeywords(m.Keywords, hit.Keywords)
		}
		if !dummy && p.Text != "" && extract.DummyText(p.Text) {
			dummy = true
		}
	}

	res := model.ContentRisk{
		Score:              totalHits * 20,
		DummyWordsDetected: dummy,
	}
	if dummy {
		res.Score += 50
	}

	for _, m := range merged {
		res.Hits = append(res.Hits, *m)
	}
	sort.Slice(res.Hits, func(i, j int) bool { return res.Hits[i].Category < res.Hits[j].Category })
	return res
}

func mergeKeywords(have, more []string) []string {
	seen := map[string]struct{}{}
	for _, k := range have {
		seen[k] = struct{}{}
	}
	for _, k := range more {
		if _, dup := seen[k]; !dup {
			seen[k] = struct{}{}
			have = append(have, k)
		}
	}
	sort.Strings(have)
	return have
}
