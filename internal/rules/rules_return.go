package rules

// Return-level rules: the header blocks.

var returnRules = []Rule{
	{
		Code:     "100",
		Level:    LevelReturn,
		Severity: SeverityError,
		Message:  "ReferenceDate must be present and equal to the census end date",
		Eval: func(c *Context) []Subject {
			h := c.Snap.Header
			if h.ReferenceDate == nil || !h.ReferenceDate.Equal(c.Window.End) {
				return []Subject{c.returnSubject()}
			}
			return nil
		},
	},
	{
		Code:     "105",
		Level:    LevelReturn,
		Severity: SeverityError,
		Message:  "Year must be present and match the census end year",
		Eval: func(c *Context) []Subject {
			h := c.Snap.Header
			if h.Year == nil || *h.Year != c.Window.End.Time().Year() {
				return []Subject{c.returnSubject()}
			}
			return nil
		},
	},
	{
		Code:     "110",
		Level:    LevelReturn,
		Severity: SeverityError,
		Message:  "Collection must be CIN",
		Eval: func(c *Context) []Subject {
			if c.Snap.Header.Collection != "CIN" {
				return []Subject{c.returnSubject()}
			}
			return nil
		},
	},
	{
		Code:     "115",
		Level:    LevelReturn,
		Severity: SeverityError,
		Message:  "LEA number must be present",
		Eval: func(c *Context) []Subject {
			if c.Snap.Header.LEA == "" {
				return []Subject{c.returnSubject()}
			}
			return nil
		},
	},
	{
		Code:     "120Q",
		Level:    LevelReturn,
		Severity: SeverityQuery,
		Message:  "Please check: the return contains no child records",
		Eval: func(c *Context) []Subject {
			if len(c.Snap.Children) == 0 {
				return []Subject{c.returnSubject()}
			}
			return nil
		},
	},
}
