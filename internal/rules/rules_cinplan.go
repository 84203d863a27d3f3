package rules

import "github.com/careworks/cincensus/internal/model"

// Plan-level rules: CIN plan date ranges.

var planRules = []Rule{
	{
		Code:     "8800",
		Level:    LevelPlan,
		Severity: SeverityError,
		Message:  "CINPlanStartDate is missing",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.CINPlans {
				p := &c.Snap.CINPlans[i]
				if p.StartDate == nil {
					out = append(out, c.planSubject(p))
				}
			}
			return out
		},
	},
	{
		Code:     "8805",
		Level:    LevelPlan,
		Severity: SeverityError,
		Message:  "CINPlanEndDate must not be before CINPlanStartDate",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.CINPlans {
				p := &c.Snap.CINPlans[i]
				if p.EndDate != nil && p.StartDate != nil && p.EndDate.Before(*p.StartDate) {
					out = append(out, c.planSubject(p))
				}
			}
			return out
		},
	},
	{
		Code:     "8810",
		Level:    LevelPlan,
		Severity: SeverityError,
		Message:  "CIN plan must not start before the episode's referral date",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.CINPlans {
				p := &c.Snap.CINPlans[i]
				e := c.Snap.EpisodeByID(p.ParentID)
				if e == nil || e.ReferralDate == nil || p.StartDate == nil {
					continue
				}
				if p.StartDate.Before(*e.ReferralDate) {
					out = append(out, c.planSubject(p))
				}
			}
			return out
		},
	},
	{
		Code:     "8815",
		Level:    LevelPlan,
		Severity: SeverityError,
		Message:  "CIN plans for the same child must not overlap",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				var plans []*model.CINPlan
				for _, e := range c.Snap.EpisodesOf(c.Snap.Children[i].ID) {
					plans = append(plans, c.Snap.CINPlansOf(e.ID)...)
				}
				flagged := make(map[model.Identity]bool)
				for a := 0; a < len(plans); a++ {
					for b := a + 1; b < len(plans); b++ {
						ia := Interval{Start: plans[a].StartDate, End: plans[a].EndDate}
						ib := Interval{Start: plans[b].StartDate, End: plans[b].EndDate}
						if OverlapsEither(ia, ib, c.Window.End) {
							flagged[plans[a].ID] = true
							flagged[plans[b].ID] = true
						}
					}
				}
				for _, p := range plans {
					if flagged[p.ID] {
						out = append(out, c.planSubject(p))
					}
				}
			}
			return out
		},
	},
	{
		Code:     "8820",
		Level:    LevelPlan,
		Severity: SeverityError,
		Message:  "An open CIN plan must not sit on a closed episode",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.CINPlans {
				p := &c.Snap.CINPlans[i]
				e := c.Snap.EpisodeByID(p.ParentID)
				if e == nil {
					continue
				}
				if p.EndDate == nil && e.ClosureDate != nil {
					out = append(out, c.planSubject(p))
				}
			}
			return out
		},
	},
	{
		Code:     "8825",
		Level:    LevelPlan,
		Severity: SeverityError,
		Message:  "CINPlanStartDate must not be after the census end date",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.CINPlans {
				p := &c.Snap.CINPlans[i]
				if p.StartDate != nil && p.StartDate.After(c.Window.End) {
					out = append(out, c.planSubject(p))
				}
			}
			return out
		},
	},
	{
		Code:     "8840Q",
		Level:    LevelPlan,
		Severity: SeverityQuery,
		Message:  "Please check: CIN plan end date is inconsistent with the plan's own end date",
		Eval: func(c *Context) []Subject {
			// Both sides of the comparison read the same plan, so this can
			// never fire. Kept as-is pending clarification with the
			// collection owner; see DESIGN.md.
			var out []Subject
			for i := range c.Snap.CINPlans {
				p := &c.Snap.CINPlans[i]
				if p.EndDate != nil && p.EndDate.Before(*p.EndDate) {
					out = append(out, c.planSubject(p))
				}
			}
			return out
		},
	},
}
