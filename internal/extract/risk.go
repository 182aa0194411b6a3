package extract

import (
	"sort"
	"strings"

	"github.com/meridianpay/sitescan/internal/model"
)

// RiskCategories is the fixed category -> keyword dictionary for
// restricted-content detection. Matching is whole-word-ish: keywords are
// looked up in lowercased page text.
var RiskCategories = map[string][]string{
	"gambling": {
		"casino", "poker", "betting", "sportsbook", "jackpot", "roulette",
		"slot machine", "wager",
	},
	"adult": {
		"adult content", "xxx", "escort", "18+ only", "explicit content",
	},
	"cryptocurrency": {
		"cryptocurrency", "bitcoin", "ethereum", "crypto wallet", "defi",
		"token sale", "ico", "nft",
	},
	"pharmacy": {
		"prescription", "pharmacy", "viagra", "cialis", "no prescription needed",
		"online pharmacy",
	},
}

// dummyPhrases are boilerplate/placeholder fillers that indicate an
// unfinished or templated site.
var dummyPhrases = []string{
	"lorem ipsum",
	"dolor sit amet",
	"your content here",
	"insert text here",
	"sample text",
	"coming soon",
	"under construction",
}

// RiskText scans normalized page text for restricted-keyword hits.
func RiskText(text string) []model.RiskHit {
	lower := strings.ToLower(text)
	var hits []model.RiskHit
	for category, keywords := range RiskCategories {
		var matched []string
		count := 0
		for _, kw := range keywords {
			if n := strings.Count(lower, kw); n > 0 {
				matched = append(matched, kw)
				count += n
			}
		}
		if len(matched) > 0 {
			sort.Strings(matched)
			hits = append(hits, model.RiskHit{Category: category, Keywords: matched, Count: count})
		}
	}
	// Map iteration order is random; keep report output stable.
	sort.Slice(hits, func(i, j int) bool { return hits[i].Category < hits[j].Category })
	return hits
}

// DummyText reports whether the text contains known placeholder fillers.
func DummyText(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range dummyPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
