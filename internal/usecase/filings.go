package usecase

import (
	"context"
	"strings"

	"CoinPulse/internal/domain/models"
	"CoinPulse/pkg/cache"
	"CoinPulse/pkg/util"
)

const (
	filingsCap         = 10
	filingsFallbackLen = 5
)

// alwaysRelevantForms are filing types kept regardless of keyword match:
// material events and periodic reports.
var alwaysRelevantForms = map[string]bool{
	"8-K":  true,
	"10-Q": true,
	"10-K": true,
}

// Filings serves the filtered SEC filing set for every tracked company.
// Per company: recent filings matching the configured keywords or an
// always-relevant form, capped; when nothing matches, the few most recent
// filings are served instead and flagged as a fallback. Global full-text
// hits for the keywords are merged into their company by exact CIK.
func (a *Aggregator) Filings(ctx context.Context) []models.CompanyFilings {
	defer a.observe("filings")()
	return lookupCached(ctx, a, "filings", cache.Key("filings"), ttlFilings, a.fetchFilings)
}

func (a *Aggregator) fetchFilings(ctx context.Context) []models.CompanyFilings {
	results := make([]models.CompanyFilings, 0, len(a.deps.Companies))
	anyFilings := false

	for _, company := range a.deps.Companies {
		recent := a.deps.Filings.CompanyFilings(ctx, company.CIK)
		if len(recent) > 0 {
			anyFilings = true
		}

		entry := models.CompanyFilings{
			Company: company.Name,
			CIK:     company.CIK,
			Filings: filterFilings(recent, company.Keywords),
		}
		if len(entry.Filings) == 0 && len(recent) > 0 {
			entry.Filings = recent[:min(filingsFallbackLen, len(recent))]
			entry.Fallback = true
		}
		results = append(results, entry)
	}

	a.mergeSearchHits(ctx, results)

	if !anyFilings {
		a.degraded("filings")
	}
	return results
}

// filterFilings keeps keyword matches and always-relevant forms, capped.
func filterFilings(filings []models.RegulatoryFiling, keywords []string) []models.RegulatoryFiling {
	var kept []models.RegulatoryFiling
	for _, f := range filings {
		if len(kept) >= filingsCap {
			break
		}
		if alwaysRelevantForms[strings.ToUpper(f.Form)] || matchesAny(f, keywords) {
			kept = append(kept, f)
		}
	}
	return kept
}

// mergeSearchHits runs the global full-text search per distinct keyword and
// folds each hit into the tracked company with the same CIK, keeping the
// union under the cap.
func (a *Aggregator) mergeSearchHits(ctx context.Context, results []models.CompanyFilings) {
	byCIK := make(map[string]*models.CompanyFilings, len(results))
	for i := range results {
		byCIK[results[i].CIK] = &results[i]
	}

	for _, keyword := range a.distinctKeywords() {
		for _, hit := range a.deps.Filings.SearchFilings(ctx, keyword) {
			entry, ok := byCIK[hit.CompanyCIK]
			if !ok || len(entry.Filings) >= filingsCap {
				continue
			}
			if containsFiling(entry.Filings, hit) {
				continue
			}
			entry.Filings = append(entry.Filings, hit)
		}
	}
}

func (a *Aggregator) distinctKeywords() []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, company := range a.deps.Companies {
		for _, kw := range company.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" || seen[kw] {
				continue
			}
			seen[kw] = true
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

// matchesAny checks the keywords against both the form type and the
// description.
func matchesAny(f models.RegulatoryFiling, keywords []string) bool {
	for _, kw := range keywords {
		if util.ContainsFold(f.Form, kw) || util.ContainsFold(f.Description, kw) {
			return true
		}
	}
	return false
}

func containsFiling(filings []models.RegulatoryFiling, f models.RegulatoryFiling) bool {
	for _, existing := range filings {
		if existing.FilingDate == f.FilingDate && strings.EqualFold(existing.Form, f.Form) {
			return true
		}
	}
	return false
}
