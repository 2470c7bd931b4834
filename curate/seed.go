package curate

import "time"

// DefaultCategories is the built-in registry used when no categories blob has
// been persisted yet (or when the persisted one is unreadable). The reserved
// fallback is always last.
func DefaultCategories() []string {
	return []string{
		"Technology",
		"Finance",
		"Health",
		"Legal",
		"Research",
		"Education",
		"Culture",
		ReservedCategory,
	}
}

// SeedLibrary is the fixed starter dataset a fresh (or corrupted) store falls
// back to.
func SeedLibrary() *Library {
	now := time.Now().UnixMilli()
	return &Library{
		Categories: DefaultCategories(),
		Articles: []*Article{
			{
				ID:       "seed-1",
				Title:    "Understanding Large Model Architectures: From Transformers to MoE",
				Author:   "The Architect's Path",
				URL:      "https://example.com/articles/transformers-to-moe",
				Category: "Technology",
				Tags:     []string{"LLM", "AI", "architecture"},
				Summary:  "A detailed look at how generative model architectures evolved, and how mixture-of-experts designs balance compute against quality.",
				AddedAt:  now - time.Hour.Milliseconds(),
			},
			{
				ID:       "seed-2",
				Title:    "Global Macro Outlook: The Challenges of a Rate-Cut Cycle",
				Author:   "Financial Reference",
				URL:      "https://example.com/articles/macro-outlook",
				Category: "Finance",
				Tags:     []string{"macroeconomics", "investing", "finance"},
				Summary:  "How central-bank policy shifts ripple through global markets, and how emerging markets fare under rate-cut expectations.",
				AddedAt:  now - 2*time.Hour.Milliseconds(),
			},
		},
	}
}
