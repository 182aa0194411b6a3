package scoring

import (
	"sort"
	"strings"

	"github.com/meridianpay/sitescan/internal/model"
)

type mccCategory struct {
	name     string
	code     string
	keywords []string
}

// mccDictionary maps merchant categories to the vocabulary that marks
// them, each with its ISO 18245 code. Matching runs over the accumulated
// text of every fetched page.
var mccDictionary = []mccCategory{
	{"computer_software", "5734", []string{
		"software", "saas", "api", "cloud platform", "developer tools",
		"integration", "automation", "free trial",
	}},
	{"digital_goods", "5817", []string{
		"download", "digital download", "ebook", "license key", "in-app purchase",
		"digital content",
	}},
	{"financial_services", "6012", []string{
		"banking", "loans", "lending", "payments", "invoice", "payouts",
		"credit", "insurance", "investment",
	}},
	{"cryptocurrency", "6051", []string{
		"cryptocurrency", "bitcoin", "ethereum", "crypto exchange", "wallet",
		"token", "defi",
	}},
	{"retail_general", "5399", []string{
		"shop", "store", "add to cart", "free shipping", "checkout",
		"best seller", "new arrivals",
	}},
	{"clothing_apparel", "5651", []string{
		"clothing", "apparel", "fashion", "t-shirt", "dress", "sneakers",
		"size guide",
	}},
	{"food_restaurants", "5812", []string{
		"restaurant", "menu", "reservation", "takeaway", "delivery",
		"order online", "cuisine",
	}},
	{"grocery", "5411", []string{
		"grocery", "fresh produce", "supermarket", "organic food", "pantry",
	}},
	{"drug_stores", "5912", []string{
		"pharmacy", "prescription", "medication", "supplements", "vitamins",
	}},
	{"gambling", "7995", []string{
		"casino", "betting", "poker", "sportsbook", "jackpot", "odds",
	}},
	{"travel_agencies", "4722", []string{
		"travel", "flights", "hotels", "booking", "vacation", "itinerary",
		"tour packages",
	}},
	{"education", "8299", []string{
		"courses", "learning", "curriculum", "students", "certification",
		"tuition", "enroll",
	}},
	{"membership_clubs", "7997", []string{
		"membership", "gym", "fitness", "classes", "personal training",
	}},
	{"professional_services", "7392", []string{
		"consulting", "agency", "our clients", "case studies", "expertise",
		"engagement",
	}},
	{"media_publishing", "2741", []string{
		"magazine", "articles", "editorial", "subscribe", "podcast",
		"newsletter", "journalism",
	}},
}

// ClassifyMCC matches accumulated page text against the category
// dictionary. Confidence per category is min(matched keywords x 15, 100).
// Advisory only; it never gates the scan outcome.
func ClassifyMCC(graph *model.PageGraph) model.MCCResult {
	text := strings.ToLower(graph.AllText())

	var matches []model.MCCMatch
	for _, cat := range mccDictionary {
		var matched []string
		for _, kw := range cat.keywords {
			if strings.Contains(text, kw) {
				matched = append(matched, kw)
			}
		}
		if len(matched) == 0 {
			continue
		}
		confidence := len(matched) * 15
		if confidence > 100 {
			confidence = 100
		}
		matches = append(matches, model.MCCMatch{
			Category:   cat.name,
			Code:       cat.code,
			Confidence: confidence,
			Matched:    matched,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		return matches[i].Category < matches[j].Category
	})
	if len(matches) > 10 {
		matches = matches[:10]
	}

	var res model.MCCResult
	res.Top = matches
	if len(matches) > 0 {
		res.Primary = &matches[0]
	}
	if len(matches) > 1 {
		res.Secondary = &matches[1]
	}
	return res
}
