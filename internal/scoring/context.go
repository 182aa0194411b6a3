// Package scoring holds the analyzers that turn a crawled PageGraph into
// report numbers: business-context classification, compliance
// intelligence, the SEO score, the auxiliary content-risk score and the
// merchant-category suggestions. All of them are pure functions over the
// graph and the domain-health finding.
package scoring

import (
	"strings"

	"github.com/meridianpay/sitescan/internal/model"
)

// contextOrder breaks count ties; more specific contexts win.
var contextOrder = []model.BusinessContext{
	model.ContextBlockchain,
	model.ContextFintech,
	model.ContextEcommerce,
	model.ContextSaaS,
	model.ContextContent,
}

// contextKeywords maps each business context to the vocabulary that
// marks it in page text.
var contextKeywords = map[model.BusinessContext][]string{
	model.ContextBlockchain: {
		"blockchain", "smart contract", "web3", "decentralized", "token",
		"crypto wallet", "defi", "nft", "staking",
	},
	model.ContextFintech: {
		"payments", "payment processing", "banking", "lending", "invoice",
		"payouts", "kyc", "remittance", "neobank", "open banking",
	},
	model.ContextEcommerce: {
		"add to cart", "checkout", "free shipping", "shop now", "our products",
		"best seller", "in stock", "sku",
	},
	model.ContextSaaS: {
		"free trial", "per month", "per user", "api access", "dashboard",
		"integrations", "start free", "book a demo", "self-serve",
	},
	model.ContextContent: {
		"subscribe to our newsletter", "latest articles", "editorial",
		"podcast", "read more", "our writers", "published",
	},
}

// ClassifyContext assigns the business-context label that parameterizes
// the compliance policy expectations. Commerce signals from the crawl
// outweigh raw vocabulary; otherwise the best keyword count wins, with
// generic as the floor.
func ClassifyContext(graph *model.PageGraph) model.BusinessContext {
	text := strings.ToLower(graph.AllText())

	counts := make(map[model.BusinessContext]int, len(contextKeywords))
	for ctx, words := range contextKeywords {
		for _, w := range words {
			if strings.Contains(text, w) {
				counts[ctx]++
			}
		}
	}

	for _, p := range graph.Pages {
		if p.Commerce == nil {
			continue
		}
		if p.Commerce.HasCart || p.Commerce.Platform != "" || p.Commerce.ProductCount > 0 {
			counts[model.ContextEcommerce] += 3
		}
		if p.Commerce.PricingModel == "subscription" {
			counts[model.ContextSaaS] += 2
		}
	}

	best := model.ContextGeneric
	bestCount := 1 // a single stray keyword is not a classification
	for _, ctx := range contextOrder {
		if counts[ctx] > bestCount {
			best = ctx
			bestCount = counts[ctx]
		}
	}
	return best
}
