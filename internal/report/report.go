package report

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/careworks/cincensus/internal/rules"
)

// levelOrder fixes the presentation order of the report sections.
var levelOrder = []rules.Level{
	rules.LevelReturn,
	rules.LevelChild,
	rules.LevelEpisode,
	rules.LevelAssessment,
	rules.LevelEnquiry,
	rules.LevelPlan,
	rules.LevelProtectionPlan,
}

// Report is one validation run's findings, grouped by level.
type Report struct {
	RunID    string    `json:"run_id"`
	Errors   int       `json:"errors"`
	Queries  int       `json:"queries"`
	Sections []Section `json:"sections"`
}

// Section holds the findings of one applicability level.
type Section struct {
	Level    rules.Level       `json:"level"`
	Findings []rules.Violation `json:"findings"`
}

// Build groups violations into sections and stamps the report with a fresh
// UUIDv7 run id. Violations arrive sorted from the engine and keep that
// order within each section.
func Build(violations []rules.Violation) *Report {
	r := &Report{RunID: uuid.Must(uuid.NewV7()).String()}
	byLevel := make(map[rules.Level][]rules.Violation)
	for _, v := range violations {
		byLevel[v.Level] = append(byLevel[v.Level], v)
		if v.Severity == rules.SeverityError {
			r.Errors++
		} else {
			r.Queries++
		}
	}
	for _, level := range levelOrder {
		r.Sections = append(r.Sections, Section{Level: level, Findings: byLevel[level]})
	}
	return r
}

// WriteText renders the report for a terminal.
func (r *Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "run %s: %d errors, %d queries\n", r.RunID, r.Errors, r.Queries); err != nil {
		return err
	}
	for _, section := range r.Sections {
		if len(section.Findings) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n%s level (%d):\n", section.Level, len(section.Findings)); err != nil {
			return err
		}
		for _, f := range section.Findings {
			if err := writeFinding(w, f); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeFinding(w io.Writer, f rules.Violation) error {
	subject := f.Subject.LAChildID
	if subject == "" {
		subject = fmt.Sprintf("#%d", f.Subject.ID)
	}
	_, err := fmt.Fprintf(w, "  [%s] %s  %s: %s\n", f.Code, f.Severity, subject, f.Message)
	return err
}
