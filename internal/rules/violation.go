package rules

import "github.com/careworks/cincensus/internal/model"

// Level is the applicability level a rule reports at. Review findings
// report at the protection-plan level.
type Level string

const (
	LevelReturn         Level = "return"
	LevelChild          Level = "child"
	LevelEpisode        Level = "episode"
	LevelAssessment     Level = "assessment"
	LevelEnquiry        Level = "enquiry"
	LevelPlan           Level = "plan"
	LevelProtectionPlan Level = "protection-plan"
)

// Severity labels a rule. Advisory rules carry a trailing Q on their code
// and SeverityQuery; the engine treats both identically.
type Severity string

const (
	// SeverityError marks data as non-compliant.
	SeverityError Severity = "error"
	// SeverityQuery surfaces data for manual review.
	SeverityQuery Severity = "query"
)

// Subject identifies the entity a violation is about: its synthetic
// identity plus the natural keys of its level, already enriched with the
// owning child's identity fields for traceability.
type Subject struct {
	ID model.Identity `json:"id"`

	// Child identity fields, populated for every level below return.
	LAChildID string      `json:"la_child_id,omitempty"`
	UPN       string      `json:"upn,omitempty"`
	BirthDate *model.Date `json:"birth_date,omitempty"`

	// Level-specific natural keys (referral date, start date, ...).
	Keys map[string]string `json:"keys,omitempty"`
}

// Violation is one rule finding.
type Violation struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Level    Level    `json:"level"`
	Message  string   `json:"message"`
	Subject  Subject  `json:"subject"`
}

func dateKey(d *model.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
