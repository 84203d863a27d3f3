package rules

// Enquiry-level rules: section 47 enquiries and initial child protection
// conferences.

var enquiryRules = []Rule{
	{
		Code:     "8740",
		Level:    LevelEnquiry,
		Severity: SeverityError,
		Message:  "S47ActualStartDate is missing",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Enquiries {
				q := &c.Snap.Enquiries[i]
				if q.StartDate == nil {
					out = append(out, c.enquirySubject(q))
				}
			}
			return out
		},
	},
	{
		Code:     "8745",
		Level:    LevelEnquiry,
		Severity: SeverityError,
		Message:  "Enquiry must not start before the episode's referral date",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Enquiries {
				q := &c.Snap.Enquiries[i]
				e := c.Snap.EpisodeByID(q.ParentID)
				if e == nil || e.ReferralDate == nil || q.StartDate == nil {
					continue
				}
				if q.StartDate.Before(*e.ReferralDate) {
					out = append(out, c.enquirySubject(q))
				}
			}
			return out
		},
	},
	{
		Code:     "8750",
		Level:    LevelEnquiry,
		Severity: SeverityError,
		Message:  "DateOfInitialCPC must not be before S47ActualStartDate",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Enquiries {
				q := &c.Snap.Enquiries[i]
				if q.DateOfInitialCPC != nil && q.StartDate != nil && q.DateOfInitialCPC.Before(*q.StartDate) {
					out = append(out, c.enquirySubject(q))
				}
			}
			return out
		},
	},
	{
		Code:     "8755",
		Level:    LevelEnquiry,
		Severity: SeverityError,
		Message:  "An enquiry marked as not requiring a conference must not carry a conference date",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Enquiries {
				q := &c.Snap.Enquiries[i]
				notRequired := q.ICPCNotRequired != nil && *q.ICPCNotRequired
				if notRequired && q.DateOfInitialCPC != nil {
					out = append(out, c.enquirySubject(q))
				}
			}
			return out
		},
	},
	{
		Code:     "8760",
		Level:    LevelEnquiry,
		Severity: SeverityError,
		Message:  "An enquiry must carry a conference date, a target date, or the not-required flag",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Enquiries {
				q := &c.Snap.Enquiries[i]
				if q.DateOfInitialCPC == nil && q.ICPCTarget == nil && q.ICPCNotRequired == nil {
					out = append(out, c.enquirySubject(q))
				}
			}
			return out
		},
	},
	{
		Code:     "8770Q",
		Level:    LevelEnquiry,
		Severity: SeverityQuery,
		Message:  "Please check: enquiry started over 15 working days ago with no conference held or exemption",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Enquiries {
				q := &c.Snap.Enquiries[i]
				notRequired := q.ICPCNotRequired != nil && *q.ICPCNotRequired
				if q.DateOfInitialCPC != nil || notRequired || q.StartDate == nil {
					continue
				}
				if q.StartDate.OnOrBefore(c.EnquiryThreshold) {
					out = append(out, c.enquirySubject(q))
				}
			}
			return out
		},
	},
	{
		Code:     "8775Q",
		Level:    LevelEnquiry,
		Severity: SeverityQuery,
		Message:  "Please check: the conference was held after its target date",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Enquiries {
				q := &c.Snap.Enquiries[i]
				if q.DateOfInitialCPC != nil && q.ICPCTarget != nil && q.DateOfInitialCPC.After(*q.ICPCTarget) {
					out = append(out, c.enquirySubject(q))
				}
			}
			return out
		},
	},
	{
		Code:     "8776Q",
		Level:    LevelEnquiry,
		Severity: SeverityQuery,
		Message:  "Please check: the initial conference date falls on a weekend",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Enquiries {
				q := &c.Snap.Enquiries[i]
				if q.DateOfInitialCPC != nil && IsWeekend(*q.DateOfInitialCPC) {
					out = append(out, c.enquirySubject(q))
				}
			}
			return out
		},
	},
}
