// Package risk defines the shared risk primitives used by every lens analyzer
// and by the aggregate result: the 0-100 score, the four ordinal risk bands,
// the band classifier, and the priority ordering used when ranking
// recommendations across lenses.
//
// The band classifier lives here, and only here, so that every lens and the
// overall aggregate classify scores through the same thresholds.
package risk

// Band is one of the four ordinal risk classifications of a 0-100 score.
type Band string

const (
	BandLow      Band = "LOW"
	BandMedium   Band = "MEDIUM"
	BandHigh     Band = "HIGH"
	BandCritical Band = "CRITICAL"
)

// Band thresholds. A score greater than or equal to the threshold falls into
// the corresponding band; anything below ThresholdMedium is LOW.
const (
	ThresholdCritical = 70
	ThresholdHigh     = 50
	ThresholdMedium   = 30
)

// Ordinal returns the band's position in the LOW < MEDIUM < HIGH < CRITICAL
// ordering. Unknown bands sort below LOW.
func (b Band) Ordinal() int {
	switch b {
	case BandLow:
		return 1
	case BandMedium:
		return 2
	case BandHigh:
		return 3
	case BandCritical:
		return 4
	default:
		return 0
	}
}

// ColorHint returns the display color associated with the band. The engine
// attaches it to every Level so presentation layers do not re-derive it.
func (b Band) ColorHint() string {
	switch b {
	case BandCritical:
		return "#dc2626"
	case BandHigh:
		return "#ea580c"
	case BandMedium:
		return "#d97706"
	default:
		return "#16a34a"
	}
}

// BandFromScore classifies a 0-100 score into its risk band. It is a total
// function: callers clamp their scores into [0,100] first (see ClampScore),
// and any integer input still maps to a band.
func BandFromScore(score int) Band {
	switch {
	case score >= ThresholdCritical:
		return BandCritical
	case score >= ThresholdHigh:
		return BandHigh
	case score >= ThresholdMedium:
		return BandMedium
	default:
		return BandLow
	}
}

// ClampScore bounds a computed score into [0,100]. Lens scoring formulas are
// additive and can exceed 100 on badly deficient documents; they never go
// negative, but the lower bound is enforced anyway.
func ClampScore(score int) int {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// Level pairs a clamped score with its band and display color. Every lens
// result and the aggregate carry one.
type Level struct {
	Score     int    `json:"score"`
	Band      Band   `json:"band"`
	ColorHint string `json:"color_hint"`
}

// LevelFromScore clamps score and classifies it.
func LevelFromScore(score int) Level {
	s := ClampScore(score)
	b := BandFromScore(s)
	return Level{Score: s, Band: b, ColorHint: b.ColorHint()}
}

// Priority ranks a synthesized recommendation. Critical sorts before High,
// High before Medium.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
)

// Ordinal returns the priority's sort rank; lower sorts first.
func (p Priority) Ordinal() int {
	switch p {
	case PriorityCritical:
		return 1
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 3
	default:
		return 4
	}
}

// PriorityFromBand maps a lens band to the priority its recommendations carry
// when promoted into the cross-lens top list.
func PriorityFromBand(b Band) Priority {
	switch b {
	case BandCritical:
		return PriorityCritical
	case BandHigh:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

// Severity rates an individual finding (a missing clause, a cost outlier, a
// regulatory gap) independently of the lens score.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// DocumentType identifies the kind of procurement document under analysis.
type DocumentType string

const (
	DocTypeSOW       DocumentType = "SOW"
	DocTypePO        DocumentType = "PO"
	DocTypeAgreement DocumentType = "Agreement"
)

// Valid reports whether t is one of the supported document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocTypeSOW, DocTypePO, DocTypeAgreement:
		return true
	}
	return false
}

// AnalysisMethod records which path produced an analysis result.
type AnalysisMethod string

const (
	MethodAI        AnalysisMethod = "ai"
	MethodHeuristic AnalysisMethod = "heuristic"
)
