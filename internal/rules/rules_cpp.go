package rules

import "github.com/careworks/cincensus/internal/model"

// Protection-plan-level rules, including reviews.

var protectionPlanRules = []Rule{
	{
		Code:     "8900",
		Level:    LevelProtectionPlan,
		Severity: SeverityError,
		Message:  "CPPstartDate is missing",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.ProtectionPlans {
				p := &c.Snap.ProtectionPlans[i]
				if p.StartDate == nil {
					out = append(out, c.protectionPlanSubject(p))
				}
			}
			return out
		},
	},
	{
		Code:     "8905",
		Level:    LevelProtectionPlan,
		Severity: SeverityError,
		Message:  "CPPendDate must not be before CPPstartDate",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.ProtectionPlans {
				p := &c.Snap.ProtectionPlans[i]
				if p.EndDate != nil && p.StartDate != nil && p.EndDate.Before(*p.StartDate) {
					out = append(out, c.protectionPlanSubject(p))
				}
			}
			return out
		},
	},
	{
		Code:     "8910",
		Level:    LevelProtectionPlan,
		Severity: SeverityError,
		Message:  "Protection plan must not start before the episode's referral date",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.ProtectionPlans {
				p := &c.Snap.ProtectionPlans[i]
				e := c.Snap.EpisodeByID(p.ParentID)
				if e == nil || e.ReferralDate == nil || p.StartDate == nil {
					continue
				}
				if p.StartDate.Before(*e.ReferralDate) {
					out = append(out, c.protectionPlanSubject(p))
				}
			}
			return out
		},
	},
	{
		Code:     "8915",
		Level:    LevelProtectionPlan,
		Severity: SeverityError,
		Message:  "Protection plans for the same child must not overlap",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				var plans []*model.ChildProtectionPlan
				for _, e := range c.Snap.EpisodesOf(c.Snap.Children[i].ID) {
					plans = append(plans, c.Snap.ProtectionPlansOf(e.ID)...)
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
						out = append(out, c.protectionPlanSubject(p))
					}
				}
			}
			return out
		},
	},
	{
		Code:     "8920",
		Level:    LevelProtectionPlan,
		Severity: SeverityError,
		Message:  "InitialCategoryOfAbuse must be a valid code",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.ProtectionPlans {
				p := &c.Snap.ProtectionPlans[i]
				if !abuseCategoryCodes[p.InitialCategory] {
					out = append(out, c.protectionPlanSubject(p))
				}
			}
			return out
		},
	},
	{
		Code:     "8925",
		Level:    LevelProtectionPlan,
		Severity: SeverityError,
		Message:  "LatestCategoryOfAbuse must be a valid code",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.ProtectionPlans {
				p := &c.Snap.ProtectionPlans[i]
				if !abuseCategoryCodes[p.LatestCategory] {
					out = append(out, c.protectionPlanSubject(p))
				}
			}
			return out
		},
	},
	{
		Code:     "8930Q",
		Level:    LevelProtectionPlan,
		Severity: SeverityQuery,
		Message:  "Please check: the number of previous protection plans is missing",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.ProtectionPlans {
				p := &c.Snap.ProtectionPlans[i]
				if p.PreviousPlans == nil {
					out = append(out, c.protectionPlanSubject(p))
				}
			}
			return out
		},
	},
	{
		Code:     "8935",
		Level:    LevelProtectionPlan,
		Severity: SeverityError,
		Message:  "An open protection plan must not sit on a closed episode",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.ProtectionPlans {
				p := &c.Snap.ProtectionPlans[i]
				e := c.Snap.EpisodeByID(p.ParentID)
				if e == nil {
					continue
				}
				if p.EndDate == nil && e.ClosureDate != nil {
					out = append(out, c.protectionPlanSubject(p))
				}
			}
			return out
		},
	},
	{
		Code:     "8940",
		Level:    LevelProtectionPlan,
		Severity: SeverityError,
		Message:  "CPPendDate must not be after the census end date",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.ProtectionPlans {
				p := &c.Snap.ProtectionPlans[i]
				if p.EndDate != nil && p.EndDate.After(c.Window.End) {
					out = append(out, c.protectionPlanSubject(p))
				}
			}
			return out
		},
	},
	{
		Code:     "8950",
		Level:    LevelProtectionPlan,
		Severity: SeverityError,
		Message:  "CPPreviewDate must not be before CPPstartDate",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Reviews {
				r := &c.Snap.Reviews[i]
				p := c.Snap.ProtectionPlanByID(r.ParentID)
				if p == nil || p.StartDate == nil || r.ReviewDate == nil {
					continue
				}
				if r.ReviewDate.Before(*p.StartDate) {
					out = append(out, c.reviewSubject(r))
				}
			}
			return out
		},
	},
	{
		Code:     "8955",
		Level:    LevelProtectionPlan,
		Severity: SeverityError,
		Message:  "CPPreviewDate must not be after CPPendDate",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Reviews {
				r := &c.Snap.Reviews[i]
				p := c.Snap.ProtectionPlanByID(r.ParentID)
				if p == nil || p.EndDate == nil || r.ReviewDate == nil {
					continue
				}
				if r.ReviewDate.After(*p.EndDate) {
					out = append(out, c.reviewSubject(r))
				}
			}
			return out
		},
	},
	{
		Code:     "8960Q",
		Level:    LevelProtectionPlan,
		Severity: SeverityQuery,
		Message:  "Please check: protection plan open for over three months with no review recorded",
		Eval: func(c *Context) []Subject {
			limit := c.Window.End.AddMonths(-3)
			var out []Subject
			for i := range c.Snap.ProtectionPlans {
				p := &c.Snap.ProtectionPlans[i]
				if p.EndDate != nil || p.StartDate == nil {
					continue
				}
				if p.StartDate.OnOrBefore(limit) && len(c.Snap.ReviewsOf(p.ID)) == 0 {
					out = append(out, c.protectionPlanSubject(p))
				}
			}
			return out
		},
	},
}
