package rules

import "github.com/careworks/cincensus/internal/model"

// Episode-level rules: referral, closure and cross-episode consistency.

var episodeRules = []Rule{
	{
		Code:     "8600",
		Level:    LevelEpisode,
		Severity: SeverityError,
		Message:  "CINreferralDate is missing",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Episodes {
				e := &c.Snap.Episodes[i]
				if e.ReferralDate == nil {
					out = append(out, c.episodeSubject(e))
				}
			}
			return out
		},
	},
	{
		Code:     "8605",
		Level:    LevelEpisode,
		Severity: SeverityError,
		Message:  "CINreferralDate must not be after the census end date",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Episodes {
				e := &c.Snap.Episodes[i]
				if e.ReferralDate != nil && e.ReferralDate.After(c.Window.End) {
					out = append(out, c.episodeSubject(e))
				}
			}
			return out
		},
	},
	{
		Code:     "8606",
		Level:    LevelEpisode,
		Severity: SeverityError,
		Message:  "Referral must not be after the child's date of death",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Episodes {
				e := &c.Snap.Episodes[i]
				ch := c.Snap.ChildByID(e.ParentID)
				if ch == nil || ch.DeathDate == nil || e.ReferralDate == nil {
					continue
				}
				if e.ReferralDate.After(*ch.DeathDate) {
					out = append(out, c.episodeSubject(e))
				}
			}
			return out
		},
	},
	{
		Code:     "8610",
		Level:    LevelEpisode,
		Severity: SeverityError,
		Message:  "CINclosureDate must not be before CINreferralDate",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Episodes {
				e := &c.Snap.Episodes[i]
				if e.ClosureDate != nil && e.ReferralDate != nil && e.ClosureDate.Before(*e.ReferralDate) {
					out = append(out, c.episodeSubject(e))
				}
			}
			return out
		},
	},
	{
		Code:     "8615",
		Level:    LevelEpisode,
		Severity: SeverityError,
		Message:  "A closed episode must carry a reason for closure",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Episodes {
				e := &c.Snap.Episodes[i]
				if e.ClosureDate != nil && e.ReasonForClosure == "" {
					out = append(out, c.episodeSubject(e))
				}
			}
			return out
		},
	},
	{
		Code:     "8616",
		Level:    LevelEpisode,
		Severity: SeverityError,
		Message:  "A reason for closure must not be present on an open episode",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Episodes {
				e := &c.Snap.Episodes[i]
				if e.ClosureDate == nil && e.ReasonForClosure != "" {
					out = append(out, c.episodeSubject(e))
				}
			}
			return out
		},
	},
	{
		Code:     "8620",
		Level:    LevelEpisode,
		Severity: SeverityError,
		Message:  "ReasonForClosure is not a valid code",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Episodes {
				e := &c.Snap.Episodes[i]
				if e.ReasonForClosure != "" && !closureReasonCodes[e.ReasonForClosure] {
					out = append(out, c.episodeSubject(e))
				}
			}
			return out
		},
	},
	{
		Code:     "8625",
		Level:    LevelEpisode,
		Severity: SeverityError,
		Message:  "ReferralSource must be a valid code",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Episodes {
				e := &c.Snap.Episodes[i]
				if !referralSourceCodes[e.ReferralSource] {
					out = append(out, c.episodeSubject(e))
				}
			}
			return out
		},
	},
	{
		Code:     "8630",
		Level:    LevelEpisode,
		Severity: SeverityError,
		Message:  "PrimaryNeedCode must be present on an episode not closed as no further action",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Episodes {
				e := &c.Snap.Episodes[i]
				nfa := e.ReferralNFA != nil && *e.ReferralNFA
				if !nfa && e.PrimaryNeedCode == "" {
					out = append(out, c.episodeSubject(e))
				}
			}
			return out
		},
	},
	{
		Code:     "8631",
		Level:    LevelEpisode,
		Severity: SeverityError,
		Message:  "PrimaryNeedCode is not a valid code",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Episodes {
				e := &c.Snap.Episodes[i]
				if e.PrimaryNeedCode != "" && !primaryNeedCodes[e.PrimaryNeedCode] {
					out = append(out, c.episodeSubject(e))
				}
			}
			return out
		},
	},
	{
		Code:     "8640",
		Level:    LevelEpisode,
		Severity: SeverityError,
		Message:  "More than one open CIN episode for the same child",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				episodes := c.Snap.EpisodesOf(c.Snap.Children[i].ID)
				open := 0
				for _, e := range episodes {
					if e.Open() {
						open++
					}
				}
				if open < 2 {
					continue
				}
				for _, e := range episodes {
					if e.Open() {
						out = append(out, c.episodeSubject(e))
					}
				}
			}
			return out
		},
	},
	{
		Code:     "8650",
		Level:    LevelEpisode,
		Severity: SeverityError,
		Message:  "CIN episodes for the same child must not overlap",
		Eval: func(c *Context) []Subject {
			return overlappingPairs(c, func(e *model.CINDetails) Interval {
				return Interval{Start: e.ReferralDate, End: e.ClosureDate}
			})
		},
	},
	{
		Code:     "8670",
		Level:    LevelEpisode,
		Severity: SeverityError,
		Message:  "DateOfInitialCPC must not be before CINreferralDate",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Episodes {
				e := &c.Snap.Episodes[i]
				if e.DateOfInitialCPC != nil && e.ReferralDate != nil && e.DateOfInitialCPC.Before(*e.ReferralDate) {
					out = append(out, c.episodeSubject(e))
				}
			}
			return out
		},
	},
	{
		Code:     "8675Q",
		Level:    LevelEpisode,
		Severity: SeverityQuery,
		Message:  "Please check: episode flagged as no further action carries assessments or plans",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Episodes {
				e := &c.Snap.Episodes[i]
				nfa := e.ReferralNFA != nil && *e.ReferralNFA
				if !nfa {
					continue
				}
				if len(c.Snap.AssessmentsOf(e.ID)) > 0 ||
					len(c.Snap.CINPlansOf(e.ID)) > 0 ||
					len(c.Snap.ProtectionPlansOf(e.ID)) > 0 {
					out = append(out, c.episodeSubject(e))
				}
			}
			return out
		},
	},
	{
		Code:     "8685Q",
		Level:    LevelEpisode,
		Severity: SeverityQuery,
		Message:  "Please check: DateOfInitialCPC does not match any section 47 enquiry on the episode",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Episodes {
				e := &c.Snap.Episodes[i]
				if e.DateOfInitialCPC == nil {
					continue
				}
				enquiries := c.Snap.EnquiriesOf(e.ID)
				if len(enquiries) == 0 {
					continue
				}
				matched := false
				for _, q := range enquiries {
					if q.DateOfInitialCPC != nil && q.DateOfInitialCPC.Equal(*e.DateOfInitialCPC) {
						matched = true
						break
					}
				}
				if !matched {
					out = append(out, c.episodeSubject(e))
				}
			}
			return out
		},
	},
}

// overlappingPairs flags every episode that starts inside a sibling episode
// of the same child, both directions of each unordered pair.
func overlappingPairs(c *Context, window func(*model.CINDetails) Interval) []Subject {
	var out []Subject
	for i := range c.Snap.Children {
		episodes := c.Snap.EpisodesOf(c.Snap.Children[i].ID)
		flagged := make(map[model.Identity]bool)
		for a := 0; a < len(episodes); a++ {
			for b := a + 1; b < len(episodes); b++ {
				if OverlapsEither(window(episodes[a]), window(episodes[b]), c.Window.End) {
					flagged[episodes[a].ID] = true
					flagged[episodes[b].ID] = true
				}
			}
		}
		for _, e := range episodes {
			if flagged[e.ID] {
				out = append(out, c.episodeSubject(e))
			}
		}
	}
	return out
}
