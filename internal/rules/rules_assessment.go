package rules

// Assessment-level rules, including the factor presence pair 8614/8897 that
// mirrors the rebuilder's forced-presence policy.

var assessmentRules = []Rule{
	{
		Code:     "8700",
		Level:    LevelAssessment,
		Severity: SeverityError,
		Message:  "AssessmentActualStartDate is missing",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Assessments {
				a := &c.Snap.Assessments[i]
				if a.StartDate == nil {
					out = append(out, c.assessmentSubject(a))
				}
			}
			return out
		},
	},
	{
		Code:     "8705",
		Level:    LevelAssessment,
		Severity: SeverityError,
		Message:  "Assessment must not start before the episode's referral date",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Assessments {
				a := &c.Snap.Assessments[i]
				e := c.Snap.EpisodeByID(a.ParentID)
				if e == nil || e.ReferralDate == nil || a.StartDate == nil {
					continue
				}
				if a.StartDate.Before(*e.ReferralDate) {
					out = append(out, c.assessmentSubject(a))
				}
			}
			return out
		},
	},
	{
		Code:     "8710",
		Level:    LevelAssessment,
		Severity: SeverityError,
		Message:  "AssessmentAuthorisationDate must not be before AssessmentActualStartDate",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Assessments {
				a := &c.Snap.Assessments[i]
				if a.AuthorisationDate != nil && a.StartDate != nil && a.AuthorisationDate.Before(*a.StartDate) {
					out = append(out, c.assessmentSubject(a))
				}
			}
			return out
		},
	},
	{
		Code:     "8715",
		Level:    LevelAssessment,
		Severity: SeverityError,
		Message:  "AssessmentActualStartDate must not be after the census end date",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Assessments {
				a := &c.Snap.Assessments[i]
				if a.StartDate != nil && a.StartDate.After(c.Window.End) {
					out = append(out, c.assessmentSubject(a))
				}
			}
			return out
		},
	},
	{
		Code:     "8720Q",
		Level:    LevelAssessment,
		Severity: SeverityQuery,
		Message:  "Please check: internal review date falls outside the assessment",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Assessments {
				a := &c.Snap.Assessments[i]
				if a.InternalReviewDate == nil {
					continue
				}
				if a.StartDate != nil && a.InternalReviewDate.Before(*a.StartDate) {
					out = append(out, c.assessmentSubject(a))
					continue
				}
				if a.AuthorisationDate != nil && a.InternalReviewDate.After(*a.AuthorisationDate) {
					out = append(out, c.assessmentSubject(a))
				}
			}
			return out
		},
	},
	{
		Code:     "8730Q",
		Level:    LevelAssessment,
		Severity: SeverityQuery,
		Message:  "Please check: assessment started over 45 working days ago and is not yet authorised",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Assessments {
				a := &c.Snap.Assessments[i]
				if a.AuthorisationDate != nil || a.StartDate == nil {
					continue
				}
				if a.StartDate.OnOrBefore(c.AssessmentThreshold) {
					out = append(out, c.assessmentSubject(a))
				}
			}
			return out
		},
	},
	{
		Code:     "8614",
		Level:    LevelAssessment,
		Severity: SeverityError,
		Message:  "A completed assessment must record the factors identified",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Assessments {
				a := &c.Snap.Assessments[i]
				if a.Authorised() && len(c.Snap.FactorsOf(a.ID)) == 0 {
					out = append(out, c.assessmentSubject(a))
				}
			}
			return out
		},
	},
	{
		Code:     "8897",
		Level:    LevelAssessment,
		Severity: SeverityError,
		Message:  "Factors must not be recorded against an assessment that has not been authorised",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Assessments {
				a := &c.Snap.Assessments[i]
				if !a.Authorised() && len(c.Snap.FactorsOf(a.ID)) > 0 {
					out = append(out, c.assessmentSubject(a))
				}
			}
			return out
		},
	},
	{
		Code:     "8898",
		Level:    LevelAssessment,
		Severity: SeverityError,
		Message:  "AssessmentFactors is not a valid code",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Assessments {
				a := &c.Snap.Assessments[i]
				for _, f := range c.Snap.FactorsOf(a.ID) {
					if !assessmentFactorCodes[f.Code] {
						out = append(out, c.assessmentSubject(a))
						break
					}
				}
			}
			return out
		},
	},
	{
		Code:     "8899Q",
		Level:    LevelAssessment,
		Severity: SeverityQuery,
		Message:  "Please check: the same factor code is recorded more than once",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Assessments {
				a := &c.Snap.Assessments[i]
				seen := make(map[string]bool)
				for _, f := range c.Snap.FactorsOf(a.ID) {
					if seen[f.Code] {
						out = append(out, c.assessmentSubject(a))
						break
					}
					seen[f.Code] = true
				}
			}
			return out
		},
	},
}
