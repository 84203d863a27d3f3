package rules

// Child-level rules: identifiers, demographics, characteristics.

var childRules = []Rule{
	{
		Code:     "8500",
		Level:    LevelChild,
		Severity: SeverityError,
		Message:  "LAchildID is missing",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				if ch.LAChildID == "" {
					out = append(out, c.childSubject(ch))
				}
			}
			return out
		},
	},
	{
		Code:     "8510",
		Level:    LevelChild,
		Severity: SeverityError,
		Message:  "More than one child record with the same LAchildID",
		Eval: func(c *Context) []Subject {
			counts := make(map[string]int)
			for i := range c.Snap.Children {
				if id := c.Snap.Children[i].LAChildID; id != "" {
					counts[id]++
				}
			}
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				if ch.LAChildID != "" && counts[ch.LAChildID] > 1 {
					out = append(out, c.childSubject(ch))
				}
			}
			return out
		},
	},
	{
		Code:     "1510",
		Level:    LevelChild,
		Severity: SeverityError,
		Message:  "UPN invalid (wrong check letter at character 1)",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				if ch.UPN != "" && !ValidUPN(ch.UPN) {
					out = append(out, c.childSubject(ch))
				}
			}
			return out
		},
	},
	{
		Code:     "1520",
		Level:    LevelChild,
		Severity: SeverityError,
		Message:  "More than one child record with the same UPN",
		Eval: func(c *Context) []Subject {
			counts := make(map[string]int)
			for i := range c.Snap.Children {
				if upn := c.Snap.Children[i].UPN; upn != "" {
					counts[upn]++
				}
			}
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				if ch.UPN != "" && counts[ch.UPN] > 1 {
					out = append(out, c.childSubject(ch))
				}
			}
			return out
		},
	},
	{
		Code:     "1530Q",
		Level:    LevelChild,
		Severity: SeverityQuery,
		Message:  "Please check: former UPN fails the check-letter validation",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				if ch.FormerUPN != "" && !ValidUPN(ch.FormerUPN) {
					out = append(out, c.childSubject(ch))
				}
			}
			return out
		},
	},
	{
		Code:     "8525",
		Level:    LevelChild,
		Severity: SeverityError,
		Message:  "Either a UPN or a reason for its absence must be provided",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				if ch.UPN == "" && ch.UPNUnknown == "" {
					out = append(out, c.childSubject(ch))
				}
			}
			return out
		},
	},
	{
		Code:     "8526",
		Level:    LevelChild,
		Severity: SeverityError,
		Message:  "UPNunknown reason is not a valid code",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				if ch.UPNUnknown != "" && !upnUnknownCodes[ch.UPNUnknown] {
					out = append(out, c.childSubject(ch))
				}
			}
			return out
		},
	},
	{
		Code:     "8527Q",
		Level:    LevelChild,
		Severity: SeverityQuery,
		Message:  "Please check: both a UPN and a UPNunknown reason are present",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				if ch.UPN != "" && ch.UPNUnknown != "" {
					out = append(out, c.childSubject(ch))
				}
			}
			return out
		},
	},
	{
		Code:     "8530",
		Level:    LevelChild,
		Severity: SeverityError,
		Message:  "Either a date of birth or an expected date of birth must be provided",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				if ch.BirthDate == nil && ch.ExpectedBirthDate == nil {
					out = append(out, c.childSubject(ch))
				}
			}
			return out
		},
	},
	{
		Code:     "8535Q",
		Level:    LevelChild,
		Severity: SeverityQuery,
		Message:  "Please check: both a date of birth and an expected date of birth are present",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				if ch.BirthDate != nil && ch.ExpectedBirthDate != nil {
					out = append(out, c.childSubject(ch))
				}
			}
			return out
		},
	},
	{
		Code:     "8540",
		Level:    LevelChild,
		Severity: SeverityError,
		Message:  "PersonBirthDate must not be after the census end date",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				if ch.BirthDate != nil && ch.BirthDate.After(c.Window.End) {
					out = append(out, c.childSubject(ch))
				}
			}
			return out
		},
	},
	{
		Code:     "8545Q",
		Level:    LevelChild,
		Severity: SeverityQuery,
		Message:  "Please check: expected date of birth is more than nine months after the census end",
		Eval: func(c *Context) []Subject {
			limit := c.Window.End.AddMonths(9)
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				if ch.ExpectedBirthDate != nil && ch.ExpectedBirthDate.After(limit) {
					out = append(out, c.childSubject(ch))
				}
			}
			return out
		},
	},
	{
		Code:     "8550",
		Level:    LevelChild,
		Severity: SeverityError,
		Message:  "GenderCurrent must be a valid code",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				if !genderCodes[ch.GenderCurrent] {
					out = append(out, c.childSubject(ch))
				}
			}
			return out
		},
	},
	{
		Code:     "8555",
		Level:    LevelChild,
		Severity: SeverityError,
		Message:  "PersonDeathDate must not be before PersonBirthDate",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				if ch.DeathDate != nil && ch.BirthDate != nil && ch.DeathDate.Before(*ch.BirthDate) {
					out = append(out, c.childSubject(ch))
				}
			}
			return out
		},
	},
	{
		Code:     "8560",
		Level:    LevelChild,
		Severity: SeverityError,
		Message:  "PersonDeathDate must not be after the census end date",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				if ch.DeathDate != nil && ch.DeathDate.After(c.Window.End) {
					out = append(out, c.childSubject(ch))
				}
			}
			return out
		},
	},
	{
		Code:     "8565",
		Level:    LevelChild,
		Severity: SeverityError,
		Message:  "Ethnicity must be a valid code",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				if !ethnicityCodes[ch.Ethnicity] {
					out = append(out, c.childSubject(ch))
				}
			}
			return out
		},
	},
	{
		Code:     "8570",
		Level:    LevelChild,
		Severity: SeverityError,
		Message:  "Disability is not a valid code",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				for _, d := range c.Snap.DisabilitiesOf(ch.ID) {
					if !disabilityCodes[d.Code] {
						out = append(out, c.childSubject(ch))
						break
					}
				}
			}
			return out
		},
	},
	{
		Code:     "8575Q",
		Level:    LevelChild,
		Severity: SeverityQuery,
		Message:  "Please check: the same disability code is recorded more than once",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				seen := make(map[string]bool)
				for _, d := range c.Snap.DisabilitiesOf(ch.ID) {
					if seen[d.Code] {
						out = append(out, c.childSubject(ch))
						break
					}
					seen[d.Code] = true
				}
			}
			return out
		},
	},
	{
		Code:     "8580",
		Level:    LevelChild,
		Severity: SeverityError,
		Message:  "NONE must not be recorded alongside other disability codes",
		Eval: func(c *Context) []Subject {
			var out []Subject
			for i := range c.Snap.Children {
				ch := &c.Snap.Children[i]
				ds := c.Snap.DisabilitiesOf(ch.ID)
				if len(ds) < 2 {
					continue
				}
				for _, d := range ds {
					if d.Code == "NONE" {
						out = append(out, c.childSubject(ch))
						break
					}
				}
			}
			return out
		},
	},
}
