package model

import (
	"fmt"
	"sort"
)

// Diff compares two frozen snapshots structurally: same entities, in the
// same sibling order, with the same field values. Synthetic identities are
// opaque and excluded from the comparison; a re-shredded render assigns
// fresh ones. Assessment factors are compared sorted by code, matching the
// rebuilder's one ordering exception.
//
// The result is a list of human-readable divergences, empty when the
// snapshots are equivalent.
func Diff(a, b *Snapshot) []string {
	var out []string
	report := func(format string, args ...any) {
		out = append(out, fmt.Sprintf(format, args...))
	}

	diffHeader(&a.Header, &b.Header, report)

	if len(a.Children) != len(b.Children) {
		report("children: %d vs %d", len(a.Children), len(b.Children))
		return out
	}
	for i := range a.Children {
		ca, cb := &a.Children[i], &b.Children[i]
		at := fmt.Sprintf("child[%d] %s", i, ca.LAChildID)
		diffChild(ca, cb, at, report)
		diffDisabilities(a.DisabilitiesOf(ca.ID), b.DisabilitiesOf(cb.ID), at, report)

		ea, eb := a.EpisodesOf(ca.ID), b.EpisodesOf(cb.ID)
		if len(ea) != len(eb) {
			report("%s: episodes %d vs %d", at, len(ea), len(eb))
			continue
		}
		for j := range ea {
			diffEpisode(a, b, ea[j], eb[j], fmt.Sprintf("%s episode[%d]", at, j), report)
		}
	}
	return out
}

// Equivalent reports whether two snapshots diff clean.
func Equivalent(a, b *Snapshot) bool { return len(Diff(a, b)) == 0 }

type reporter func(format string, args ...any)

func diffHeader(a, b *Header, report reporter) {
	diffText(a.Collection, b.Collection, "header Collection", report)
	diffInt(a.Year, b.Year, "header Year", report)
	diffDate(a.ReferenceDate, b.ReferenceDate, "header ReferenceDate", report)
	diffText(a.SourceLevel, b.SourceLevel, "header SourceLevel", report)
	diffText(a.LEA, b.LEA, "header LEA", report)
	diffText(a.SoftwareCode, b.SoftwareCode, "header SoftwareCode", report)
	diffText(a.Release, b.Release, "header Release", report)
	diffText(a.SerialNo, b.SerialNo, "header SerialNo", report)
	diffText(a.DateTime, b.DateTime, "header DateTime", report)
}

func diffChild(a, b *Child, at string, report reporter) {
	diffText(a.LAChildID, b.LAChildID, at+" LAchildID", report)
	diffText(a.UPN, b.UPN, at+" UPN", report)
	diffText(a.FormerUPN, b.FormerUPN, at+" FormerUPN", report)
	diffText(a.UPNUnknown, b.UPNUnknown, at+" UPNunknown", report)
	diffDate(a.BirthDate, b.BirthDate, at+" PersonBirthDate", report)
	diffDate(a.ExpectedBirthDate, b.ExpectedBirthDate, at+" ExpectedPersonBirthDate", report)
	diffText(a.GenderCurrent, b.GenderCurrent, at+" GenderCurrent", report)
	diffDate(a.DeathDate, b.DeathDate, at+" PersonDeathDate", report)
	diffText(a.Ethnicity, b.Ethnicity, at+" Ethnicity", report)
}

func diffDisabilities(a, b []*Disability, at string, report reporter) {
	if len(a) != len(b) {
		report("%s: disabilities %d vs %d", at, len(a), len(b))
		return
	}
	for i := range a {
		diffText(a[i].Code, b[i].Code, fmt.Sprintf("%s disability[%d]", at, i), report)
	}
}

func diffEpisode(sa, sb *Snapshot, a, b *CINDetails, at string, report reporter) {
	diffDate(a.ReferralDate, b.ReferralDate, at+" CINreferralDate", report)
	diffText(a.ReferralSource, b.ReferralSource, at+" ReferralSource", report)
	diffText(a.PrimaryNeedCode, b.PrimaryNeedCode, at+" PrimaryNeedCode", report)
	diffDate(a.ClosureDate, b.ClosureDate, at+" CINclosureDate", report)
	diffText(a.ReasonForClosure, b.ReasonForClosure, at+" ReasonForClosure", report)
	diffDate(a.DateOfInitialCPC, b.DateOfInitialCPC, at+" DateOfInitialCPC", report)
	diffBool(a.ReferralNFA, b.ReferralNFA, at+" ReferralNFA", report)

	aa, ab := sa.AssessmentsOf(a.ID), sb.AssessmentsOf(b.ID)
	if len(aa) != len(ab) {
		report("%s: assessments %d vs %d", at, len(aa), len(ab))
	} else {
		for i := range aa {
			p := fmt.Sprintf("%s assessment[%d]", at, i)
			diffDate(aa[i].StartDate, ab[i].StartDate, p+" start", report)
			diffDate(aa[i].InternalReviewDate, ab[i].InternalReviewDate, p+" internal review", report)
			diffDate(aa[i].AuthorisationDate, ab[i].AuthorisationDate, p+" authorisation", report)
			diffFactors(sa.FactorsOf(aa[i].ID), sb.FactorsOf(ab[i].ID), p, report)
		}
	}

	qa, qb := sa.EnquiriesOf(a.ID), sb.EnquiriesOf(b.ID)
	if len(qa) != len(qb) {
		report("%s: enquiries %d vs %d", at, len(qa), len(qb))
	} else {
		for i := range qa {
			p := fmt.Sprintf("%s enquiry[%d]", at, i)
			diffDate(qa[i].StartDate, qb[i].StartDate, p+" start", report)
			diffDate(qa[i].ICPCTarget, qb[i].ICPCTarget, p+" target", report)
			diffDate(qa[i].DateOfInitialCPC, qb[i].DateOfInitialCPC, p+" icpc", report)
			diffBool(qa[i].ICPCNotRequired, qb[i].ICPCNotRequired, p+" not required", report)
		}
	}

	pa, pb := sa.CINPlansOf(a.ID), sb.CINPlansOf(b.ID)
	if len(pa) != len(pb) {
		report("%s: cin plans %d vs %d", at, len(pa), len(pb))
	} else {
		for i := range pa {
			p := fmt.Sprintf("%s cin plan[%d]", at, i)
			diffDate(pa[i].StartDate, pb[i].StartDate, p+" start", report)
			diffDate(pa[i].EndDate, pb[i].EndDate, p+" end", report)
		}
	}

	ppa, ppb := sa.ProtectionPlansOf(a.ID), sb.ProtectionPlansOf(b.ID)
	if len(ppa) != len(ppb) {
		report("%s: protection plans %d vs %d", at, len(ppa), len(ppb))
		return
	}
	for i := range ppa {
		p := fmt.Sprintf("%s protection plan[%d]", at, i)
		diffDate(ppa[i].StartDate, ppb[i].StartDate, p+" start", report)
		diffDate(ppa[i].EndDate, ppb[i].EndDate, p+" end", report)
		diffText(ppa[i].InitialCategory, ppb[i].InitialCategory, p+" initial category", report)
		diffText(ppa[i].LatestCategory, ppb[i].LatestCategory, p+" latest category", report)
		diffInt(ppa[i].PreviousPlans, ppb[i].PreviousPlans, p+" previous plans", report)

		ra, rb := sa.ReviewsOf(ppa[i].ID), sb.ReviewsOf(ppb[i].ID)
		if len(ra) != len(rb) {
			report("%s: reviews %d vs %d", p, len(ra), len(rb))
			continue
		}
		for j := range ra {
			diffDate(ra[j].ReviewDate, rb[j].ReviewDate, fmt.Sprintf("%s review[%d]", p, j), report)
		}
	}
}

// diffFactors compares factor codes sorted, the rebuilder's ordering
// exception.
func diffFactors(a, b []*AssessmentFactor, at string, report reporter) {
	ca := factorCodes(a)
	cb := factorCodes(b)
	if len(ca) != len(cb) {
		report("%s: factors %d vs %d", at, len(ca), len(cb))
		return
	}
	for i := range ca {
		diffText(ca[i], cb[i], fmt.Sprintf("%s factor[%d]", at, i), report)
	}
}

func factorCodes(fs []*AssessmentFactor) []string {
	codes := make([]string, len(fs))
	for i, f := range fs {
		codes[i] = f.Code
	}
	sort.Strings(codes)
	return codes
}

func diffText(a, b, at string, report reporter) {
	if a != b {
		report("%s: %q vs %q", at, a, b)
	}
}

func diffInt(a, b *int, at string, report reporter) {
	switch {
	case a == nil && b == nil:
	case a == nil || b == nil || *a != *b:
		report("%s: %s vs %s", at, intKey(a), intKey(b))
	}
}

func diffDate(a, b *Date, at string, report reporter) {
	switch {
	case a == nil && b == nil:
	case a == nil || b == nil || !a.Equal(*b):
		report("%s: %s vs %s", at, dateKeyOrAbsent(a), dateKeyOrAbsent(b))
	}
}

func diffBool(a, b *bool, at string, report reporter) {
	switch {
	case a == nil && b == nil:
	case a == nil || b == nil || *a != *b:
		report("%s: %s vs %s", at, boolKey(a), boolKey(b))
	}
}

func intKey(v *int) string {
	if v == nil {
		return "absent"
	}
	return fmt.Sprintf("%d", *v)
}

func dateKeyOrAbsent(d *Date) string {
	if d == nil {
		return "absent"
	}
	return d.String()
}

func boolKey(b *bool) string {
	if b == nil {
		return "absent"
	}
	return fmt.Sprintf("%t", *b)
}
