package rules

import (
	"sort"

	"github.com/careworks/cincensus/internal/model"
)

// Window is the census reference window the return covers.
type Window struct {
	Start model.Date
	End   model.Date
}

// Thresholds are the externally supplied working-day counts.
type Thresholds struct {
	AssessmentDays int // overdue-assessment lookback, conventionally 45
	EnquiryDays    int // overdue-enquiry lookback, conventionally 15
}

// Rule is one member of the battery. Eval must be a pure function of the
// context; the engine guarantees nothing else about evaluation order.
type Rule struct {
	Code     string
	Level    Level
	Severity Severity
	Message  string
	Eval     func(*Context) []Subject
}

// Context is what a rule may read: the frozen snapshot and the census
// constants, plus the thresholds precomputed once per run.
type Context struct {
	Snap   *model.Snapshot
	Window Window

	// Working-day thresholds, precomputed from Window.End.
	AssessmentThreshold model.Date
	EnquiryThreshold    model.Date
}

// Evaluate runs the whole battery and returns the findings sorted by
// subject identity, then code. Two runs over the same snapshot produce
// identical output.
func Evaluate(snap *model.Snapshot, window Window, thresholds Thresholds) []Violation {
	ctx := &Context{
		Snap:                snap,
		Window:              window,
		AssessmentThreshold: WorkingDayThreshold(window.End, thresholds.AssessmentDays),
		EnquiryThreshold:    WorkingDayThreshold(window.End, thresholds.EnquiryDays),
	}

	var out []Violation
	for _, rule := range Registry() {
		for _, subject := range rule.Eval(ctx) {
			out = append(out, Violation{
				Code:     rule.Code,
				Severity: rule.Severity,
				Level:    rule.Level,
				Message:  rule.Message,
				Subject:  subject,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Subject.ID != out[j].Subject.ID {
			return out[i].Subject.ID < out[j].Subject.ID
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// Subject constructors. Each level's natural keys are fixed here so every
// rule at that level reports the same identifying shape.

func (c *Context) returnSubject() Subject {
	h := c.Snap.Header
	return Subject{
		ID: h.ID,
		Keys: map[string]string{
			"collection": h.Collection,
			"lea":        h.LEA,
		},
	}
}

func (c *Context) childSubject(ch *model.Child) Subject {
	return Subject{
		ID:        ch.ID,
		LAChildID: ch.LAChildID,
		UPN:       ch.UPN,
		BirthDate: ch.BirthDate,
	}
}

func (c *Context) episodeSubject(e *model.CINDetails) Subject {
	s := c.descendantSubject(e.ParentID)
	s.ID = e.ID
	s.Keys = map[string]string{
		"referral_date": dateKey(e.ReferralDate),
		"closure_date":  dateKey(e.ClosureDate),
	}
	return s
}

func (c *Context) assessmentSubject(a *model.Assessment) Subject {
	s := c.episodeOwnerSubject(a.ParentID)
	s.ID = a.ID
	s.Keys = map[string]string{
		"start_date":         dateKey(a.StartDate),
		"authorisation_date": dateKey(a.AuthorisationDate),
	}
	return s
}

func (c *Context) enquirySubject(q *model.Section47) Subject {
	s := c.episodeOwnerSubject(q.ParentID)
	s.ID = q.ID
	s.Keys = map[string]string{
		"start_date": dateKey(q.StartDate),
		"icpc_date":  dateKey(q.DateOfInitialCPC),
	}
	return s
}

func (c *Context) planSubject(p *model.CINPlan) Subject {
	s := c.episodeOwnerSubject(p.ParentID)
	s.ID = p.ID
	s.Keys = map[string]string{
		"start_date": dateKey(p.StartDate),
		"end_date":   dateKey(p.EndDate),
	}
	return s
}

func (c *Context) protectionPlanSubject(p *model.ChildProtectionPlan) Subject {
	s := c.episodeOwnerSubject(p.ParentID)
	s.ID = p.ID
	s.Keys = map[string]string{
		"start_date": dateKey(p.StartDate),
		"end_date":   dateKey(p.EndDate),
	}
	return s
}

func (c *Context) reviewSubject(r *model.Review) Subject {
	var s Subject
	if plan := c.Snap.ProtectionPlanByID(r.ParentID); plan != nil {
		s = c.protectionPlanSubject(plan)
	}
	s.ID = r.ID
	s.Keys = map[string]string{
		"review_date": dateKey(r.ReviewDate),
	}
	return s
}

// descendantSubject carries the owning child's identity fields into a
// lower-level subject.
func (c *Context) descendantSubject(child model.Identity) Subject {
	if ch := c.Snap.ChildByID(child); ch != nil {
		return Subject{
			LAChildID: ch.LAChildID,
			UPN:       ch.UPN,
			BirthDate: ch.BirthDate,
		}
	}
	return Subject{}
}

func (c *Context) episodeOwnerSubject(episode model.Identity) Subject {
	if e := c.Snap.EpisodeByID(episode); e != nil {
		return c.descendantSubject(e.ParentID)
	}
	return Subject{}
}

// childOf resolves the owning child of an episode identity, nil when the
// snapshot was hand-built with a broken link.
func (c *Context) childOf(episode model.Identity) *model.Child {
	if e := c.Snap.EpisodeByID(episode); e != nil {
		return c.Snap.ChildByID(e.ParentID)
	}
	return nil
}
