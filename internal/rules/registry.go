package rules

// Registry returns the whole battery in declaration order. The slice is
// rebuilt per call so callers cannot mutate the battery.
func Registry() []Rule {
	var all []Rule
	all = append(all, returnRules...)
	all = append(all, childRules...)
	all = append(all, episodeRules...)
	all = append(all, assessmentRules...)
	all = append(all, enquiryRules...)
	all = append(all, planRules...)
	all = append(all, protectionPlanRules...)
	return all
}
