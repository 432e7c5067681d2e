package lens

import (
	"regexp"
	"time"

	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

// Operational lens scoring constants.
const (
	operationalUnrealisticPenalty = 30
	operationalTightPenalty       = 15
	operationalUnavailablePenalty = 20
	operationalLimitedPenalty     = 10
	operationalHighDepPenalty     = 15
)

// Timeline feasibility boundaries, in days. A span under UnrealisticMaxDays is
// unrealistic; from there up to but excluding TightMaxDays is tight; 90 days
// and over is feasible.
const (
	UnrealisticMaxDays = 30
	TightMaxDays       = 90
)

// limitedResourceCount is the required-resource count above which
// availability is rated limited.
const limitedResourceCount = 3

// TimelineFeasibility rates whether the delivery window is achievable.
type TimelineFeasibility string

const (
	FeasibilityUnrealistic TimelineFeasibility = "unrealistic"
	FeasibilityTight       TimelineFeasibility = "tight"
	FeasibilityFeasible    TimelineFeasibility = "feasible"
)

// ResourceAvailability rates whether the required resources are identifiable.
type ResourceAvailability string

const (
	AvailabilityAvailable   ResourceAvailability = "available"
	AvailabilityLimited     ResourceAvailability = "limited"
	AvailabilityUnavailable ResourceAvailability = "unavailable"
)

// Placeholder findings used when the document names no milestones/resources.
// A placeholder is a finding in its own right, not an empty list.
const (
	PlaceholderCriticalPath = "Milestone definition needed"
	PlaceholderResources    = "Resource requirements not specified"
)

// Timeline is the extracted delivery window.
type Timeline struct {
	StartDate    string              `json:"start_date"`
	EndDate      string              `json:"end_date"`
	DurationDays int                 `json:"duration_days"`
	Feasibility  TimelineFeasibility `json:"feasibility"`
}

// Resources summarizes inferred resource needs.
type Resources struct {
	Required     []string             `json:"required"`
	Availability ResourceAvailability `json:"availability"`
}

// Dependency records an external dependency and its delivery risk.
type Dependency struct {
	Description string        `json:"description"`
	Risk        risk.Severity `json:"risk"`
}

// OperationalResult is the operational lens output.
type OperationalResult struct {
	RiskLevel       risk.Level   `json:"risk_level"`
	Timeline        Timeline     `json:"timeline"`
	CriticalPath    []string     `json:"critical_path"`
	Resources       Resources    `json:"resources"`
	Dependencies    []Dependency `json:"dependencies"`
	Recommendations []string     `json:"recommendations"`
}

var isoDatePattern = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)

// extractTimeline takes the first two parseable ISO dates as start and end.
// With fewer than two dates the duration is zero, which classifies as
// unrealistic; an undated delivery window is treated like an impossible one.
func extractTimeline(text string) Timeline {
	var dates []time.Time
	var labels []string
	for _, m := range isoDatePattern.FindAllString(text, -1) {
		d, err := time.Parse("2006-01-02", m)
		if err != nil {
			continue
		}
		dates = append(dates, d)
		labels = append(labels, m)
		if len(dates) == 2 {
			break
		}
	}

	tl := Timeline{}
	if len(dates) == 2 {
		tl.StartDate = labels[0]
		tl.EndDate = labels[1]
		tl.DurationDays = int(dates[1].Sub(dates[0]).Hours() / 24)
	}

	switch {
	case tl.DurationDays < UnrealisticMaxDays:
		tl.Feasibility = FeasibilityUnrealistic
	case tl.DurationDays < TightMaxDays:
		tl.Feasibility = FeasibilityTight
	default:
		tl.Feasibility = FeasibilityFeasible
	}
	return tl
}

// AnalyzeOperational assesses delivery-timeline feasibility, resource
// availability, and dependency risk.
func AnalyzeOperational(text string, docType risk.DocumentType) OperationalResult {
	doc := newDocument(text)

	tl := extractTimeline(text)

	var criticalPath []string
	if doc.containsAny("delivery", "deliverable") {
		criticalPath = append(criticalPath, "Delivery milestones")
	}
	if doc.containsAny("testing", "acceptance test") {
		criticalPath = append(criticalPath, "Testing and acceptance")
	}
	if doc.containsAny("approval") {
		criticalPath = append(criticalPath, "Approval gates")
	}
	if len(criticalPath) == 0 {
		criticalPath = []string{PlaceholderCriticalPath}
	}

	var required []string
	if doc.containsAny("engineer") {
		required = append(required, "Engineering staff")
	}
	if doc.containsAny("consultant") {
		required = append(required, "Consulting resources")
	}
	if doc.containsAny("equipment") {
		required = append(required, "Equipment and materials")
	}
	availability := AvailabilityAvailable
	if len(required) == 0 {
		required = []string{PlaceholderResources}
		availability = AvailabilityUnavailable
	} else if len(required) > limitedResourceCount {
		availability = AvailabilityLimited
	}

	var deps []Dependency
	if doc.containsAny("vendor") && doc.containsAny("third-party", "third party") {
		deps = append(deps, Dependency{Description: "Third-party vendor deliverables", Risk: risk.SeverityHigh})
	}
	if doc.containsAny("approval") && doc.containsAny("stakeholder") {
		deps = append(deps, Dependency{Description: "Stakeholder approval cycles", Risk: risk.SeverityMedium})
	}

	highDeps := 0
	for _, d := range deps {
		if d.Risk == risk.SeverityHigh {
			highDeps++
		}
	}

	score := baseScore + operationalHighDepPenalty*highDeps
	var recs []string
	switch tl.Feasibility {
	case FeasibilityUnrealistic:
		score += operationalUnrealisticPenalty
		recs = append(recs, "Extend the delivery timeline or phase the scope; the current window is unrealistic")
	case FeasibilityTight:
		score += operationalTightPenalty
		recs = append(recs, "Build schedule buffer into key milestones; the timeline is tight")
	}
	switch availability {
	case AvailabilityUnavailable:
		score += operationalUnavailablePenalty
		recs = append(recs, "Define required resources and staffing commitments in the statement of work")
	case AvailabilityLimited:
		score += operationalLimitedPenalty
		recs = append(recs, "Confirm resource availability before committing to the schedule")
	}
	if highDeps > 0 {
		recs = append(recs, "Add contingency plans for third-party vendor dependencies")
	}

	return OperationalResult{
		RiskLevel:       risk.LevelFromScore(score),
		Timeline:        tl,
		CriticalPath:    criticalPath,
		Resources:       Resources{Required: required, Availability: availability},
		Dependencies:    deps,
		Recommendations: capRecommendations(recs),
	}
}
