// Package lens implements the five stakeholder-perspective analyzers of the
// contract risk engine: Legal, Financial, Operational, Vendor, and Compliance.
//
// Each analyzer is a pure function of the document text (plus document type,
// and for the vendor lens an optional vendor identifier). Analyzers share no
// state, never fail, and degrade gracefully: an empty document simply yields
// maximal "everything missing" findings. Detection is case-insensitive
// keyword/pattern matching; the heuristic path is a deterministic,
// explainable scorer, not a language model.
//
// Every scoring constant is a named package-level value so the aggregate
// arithmetic can be asserted on directly in tests.
package lens

import (
	"strings"

	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

// baseScore is the floor every lens starts from before penalties are added.
// Even a flawless document carries residual contract risk.
const baseScore = 20

// maxRecommendations caps the recommendation list of every lens result.
const maxRecommendations = 5

// ClauseGap records an expected contractual clause found to be absent.
type ClauseGap struct {
	Clause      string        `json:"clause"`
	Severity    risk.Severity `json:"severity"`
	Description string        `json:"description"`
}

// document is a pre-lowered view of the input text shared by the keyword
// matchers. Lowering once keeps repeated Contains checks cheap.
type document struct {
	raw   string
	lower string
}

func newDocument(text string) document {
	return document{raw: text, lower: strings.ToLower(text)}
}

// containsAny reports whether the document mentions at least one of the
// given signals. Signals are expected to be lowercase already.
func (d document) containsAny(signals ...string) bool {
	for _, s := range signals {
		if strings.Contains(d.lower, s) {
			return true
		}
	}
	return false
}

// capRecommendations truncates recs to the per-lens limit.
func capRecommendations(recs []string) []string {
	if len(recs) > maxRecommendations {
		return recs[:maxRecommendations]
	}
	return recs
}
