package rebuild

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/careworks/cincensus/internal/model"
	"github.com/careworks/cincensus/internal/xmldoc"
)

// legacyContentCutover is the first census year whose returns no longer
// carry the Header Content block.
const legacyContentCutover = 2020

// AmbiguityError reports sibling entities sharing an identity. Ordering is
// undefined in that case, so the rebuilder refuses rather than picking one.
type AmbiguityError struct {
	Entity string
	ID     model.Identity
}

// Error implements the error interface.
func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("render ambiguity: duplicate %s identity %d", e.Entity, e.ID)
}

// Render builds the full return tree from a snapshot. The only error is an
// *AmbiguityError on snapshots edited into duplicate identities.
func Render(snap *model.Snapshot) (*xmldoc.Element, error) {
	if err := checkIdentities(snap); err != nil {
		return nil, err
	}

	msg := xmldoc.NewElement("Message")
	msg.Add(renderHeader(&snap.Header))

	children := xmldoc.NewElement("Children")
	for i := range snap.Children {
		children.Add(renderChild(snap, &snap.Children[i]))
	}
	msg.Add(children)
	return msg, nil
}

func renderHeader(h *model.Header) *xmldoc.Element {
	collection := xmldoc.NewElement("CollectionDetails").Add(
		xmldoc.TextElement("Collection", h.Collection),
	)
	if h.Year != nil {
		collection.Add(xmldoc.TextElement("Year", strconv.Itoa(*h.Year)))
	}
	optionalDateInto(collection, "ReferenceDate", h.ReferenceDate)

	source := xmldoc.NewElement("Source").Add(
		xmldoc.TextElement("SourceLevel", h.SourceLevel),
		xmldoc.TextElement("LEA", h.LEA),
		xmldoc.TextElement("SoftwareCode", h.SoftwareCode),
		xmldoc.TextElement("Release", h.Release),
		xmldoc.TextElement("SerialNo", h.SerialNo),
	)
	if h.DateTime != "" {
		// The source timestamp is carried verbatim, fractional seconds and
		// zone suffix included; reformatting would break round trips.
		source.Add(xmldoc.TextElement("DateTime", h.DateTime))
	}

	header := xmldoc.NewElement("Header").Add(collection, source)
	if h.Year != nil && *h.Year < legacyContentCutover {
		header.Add(xmldoc.NewElement("Content").Add(xmldoc.NewElement("CBDSLevels")))
	}
	return header
}

func renderChild(snap *model.Snapshot, ch *model.Child) *xmldoc.Element {
	ids := xmldoc.NewElement("ChildIdentifiers").Add(
		xmldoc.TextElement("LAchildID", ch.LAChildID),
	)
	optionalTextInto(ids, "UPN", ch.UPN)
	optionalTextInto(ids, "FormerUPN", ch.FormerUPN)
	optionalTextInto(ids, "UPNunknown", ch.UPNUnknown)
	optionalDateInto(ids, "PersonBirthDate", ch.BirthDate)
	optionalDateInto(ids, "ExpectedPersonBirthDate", ch.ExpectedBirthDate)
	ids.Add(xmldoc.TextElement("GenderCurrent", ch.GenderCurrent))
	optionalDateInto(ids, "PersonDeathDate", ch.DeathDate)

	characteristics := xmldoc.NewElement("ChildCharacteristics").Add(
		xmldoc.TextElement("Ethnicity", ch.Ethnicity),
	)
	if disabilities := snap.DisabilitiesOf(ch.ID); len(disabilities) > 0 {
		wrapper := xmldoc.NewElement("Disabilities")
		for _, d := range disabilities {
			wrapper.Add(xmldoc.TextElement("Disability", d.Code))
		}
		characteristics.Add(wrapper)
	}

	child := xmldoc.NewElement("Child").Add(ids, characteristics)
	for _, e := range snap.EpisodesOf(ch.ID) {
		child.Add(renderEpisode(snap, e))
	}
	return child
}

func renderEpisode(snap *model.Snapshot, e *model.CINDetails) *xmldoc.Element {
	episode := xmldoc.NewElement("CINdetails")
	optionalDateInto(episode, "CINreferralDate", e.ReferralDate)
	// ReferralSource is an always-present element with possibly-empty
	// content under the schema convention.
	episode.Add(xmldoc.TextElement("ReferralSource", e.ReferralSource))
	optionalTextInto(episode, "PrimaryNeedCode", e.PrimaryNeedCode)
	optionalDateInto(episode, "CINclosureDate", e.ClosureDate)
	optionalTextInto(episode, "ReasonForClosure", e.ReasonForClosure)
	optionalDateInto(episode, "DateOfInitialCPC", e.DateOfInitialCPC)
	optionalBoolInto(episode, "ReferralNFA", e.ReferralNFA)

	for _, a := range snap.AssessmentsOf(e.ID) {
		episode.Add(renderAssessment(snap, a))
	}
	for _, q := range snap.EnquiriesOf(e.ID) {
		episode.Add(renderEnquiry(q))
	}
	for _, p := range snap.CINPlansOf(e.ID) {
		plan := xmldoc.NewElement("CINPlanDates")
		optionalDateInto(plan, "CINPlanStartDate", p.StartDate)
		optionalDateInto(plan, "CINPlanEndDate", p.EndDate)
		episode.Add(plan)
	}
	for _, p := range snap.ProtectionPlansOf(e.ID) {
		episode.Add(renderProtectionPlan(snap, p))
	}
	return episode
}

func renderAssessment(snap *model.Snapshot, a *model.Assessment) *xmldoc.Element {
	assessment := xmldoc.NewElement("Assessments")
	optionalDateInto(assessment, "AssessmentActualStartDate", a.StartDate)
	optionalDateInto(assessment, "AssessmentInternalReviewDate", a.InternalReviewDate)
	optionalDateInto(assessment, "AssessmentAuthorisationDate", a.AuthorisationDate)

	// Forced-presence policy: a completed assessment always reports its
	// factors wrapper, even empty; an incomplete one never does.
	if a.Authorised() {
		wrapper := xmldoc.NewElement("FactorsIdentifiedAtAssessment")
		factors := snap.FactorsOf(a.ID)
		codes := make([]string, len(factors))
		for i, f := range factors {
			codes[i] = f.Code
		}
		sort.Strings(codes)
		for _, code := range codes {
			wrapper.Add(xmldoc.TextElement("AssessmentFactors", code))
		}
		assessment.Add(wrapper)
	}
	return assessment
}

func renderEnquiry(q *model.Section47) *xmldoc.Element {
	enquiry := xmldoc.NewElement("Section47")
	optionalDateInto(enquiry, "S47ActualStartDate", q.StartDate)
	optionalDateInto(enquiry, "InitialCPCtarget", q.ICPCTarget)
	optionalDateInto(enquiry, "DateOfInitialCPC", q.DateOfInitialCPC)
	optionalBoolInto(enquiry, "ICPCnotRequired", q.ICPCNotRequired)
	return enquiry
}

func renderProtectionPlan(snap *model.Snapshot, p *model.ChildProtectionPlan) *xmldoc.Element {
	plan := xmldoc.NewElement("ChildProtectionPlans")
	optionalDateInto(plan, "CPPstartDate", p.StartDate)
	optionalDateInto(plan, "CPPendDate", p.EndDate)
	optionalTextInto(plan, "InitialCategoryOfAbuse", p.InitialCategory)
	optionalTextInto(plan, "LatestCategoryOfAbuse", p.LatestCategory)
	if p.PreviousPlans != nil {
		plan.Add(xmldoc.TextElement("NumberOfPreviousCPP", strconv.Itoa(*p.PreviousPlans)))
	}
	if reviews := snap.ReviewsOf(p.ID); len(reviews) > 0 {
		wrapper := xmldoc.NewElement("Reviews")
		for _, r := range reviews {
			// An unparsable review date survives as an empty element so the
			// review itself is not lost on a round trip.
			text := ""
			if r.ReviewDate != nil {
				text = r.ReviewDate.String()
			}
			wrapper.Add(xmldoc.TextElement("CPPreviewDate", text))
		}
		plan.Add(wrapper)
	}
	return plan
}

func optionalTextInto(parent *xmldoc.Element, name, value string) {
	if value != "" {
		parent.Add(xmldoc.TextElement(name, value))
	}
}

func optionalDateInto(parent *xmldoc.Element, name string, d *model.Date) {
	if d != nil {
		parent.Add(xmldoc.TextElement(name, d.String()))
	}
}

// optionalBoolInto renders the literal tokens true/false, never 0/1; a nil
// boolean renders as absent.
func optionalBoolInto(parent *xmldoc.Element, name string, b *bool) {
	if b == nil {
		return
	}
	parent.Add(xmldoc.TextElement(name, strconv.FormatBool(*b)))
}

// checkIdentities rejects snapshots with duplicate identities anywhere; the
// shredder cannot produce them, but an edited snapshot can.
func checkIdentities(snap *model.Snapshot) error {
	seen := make(map[model.Identity]string)
	check := func(entity string, id model.Identity) error {
		if prior, dup := seen[id]; dup {
			return &AmbiguityError{Entity: prior + "/" + entity, ID: id}
		}
		seen[id] = entity
		return nil
	}
	for i := range snap.Children {
		if err := check("Child", snap.Children[i].ID); err != nil {
			return err
		}
	}
	for i := range snap.Disabilities {
		if err := check("Disability", snap.Disabilities[i].ID); err != nil {
			return err
		}
	}
	for i := range snap.Episodes {
		if err := check("CINdetails", snap.Episodes[i].ID); err != nil {
			return err
		}
	}
	for i := range snap.Assessments {
		if err := check("Assessments", snap.Assessments[i].ID); err != nil {
			return err
		}
	}
	for i := range snap.Factors {
		if err := check("AssessmentFactors", snap.Factors[i].ID); err != nil {
			return err
		}
	}
	for i := range snap.Enquiries {
		if err := check("Section47", snap.Enquiries[i].ID); err != nil {
			return err
		}
	}
	for i := range snap.CINPlans {
		if err := check("CINPlanDates", snap.CINPlans[i].ID); err != nil {
			return err
		}
	}
	for i := range snap.ProtectionPlans {
		if err := check("ChildProtectionPlans", snap.ProtectionPlans[i].ID); err != nil {
			return err
		}
	}
	for i := range snap.Reviews {
		if err := check("CPPreviewDate", snap.Reviews[i].ID); err != nil {
			return err
		}
	}
	return nil
}
