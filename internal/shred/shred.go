package shred

import (
	"github.com/careworks/cincensus/internal/model"
	"github.com/careworks/cincensus/internal/xmldoc"
)

// Shred parses a return and builds its snapshot. The only error it can
// return is a *xmldoc.ParseError; everything downstream of a navigable
// document is data quality, not failure.
func Shred(data []byte) (*model.Snapshot, error) {
	doc, err := xmldoc.Parse(data)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

// FromDocument builds the snapshot from an already-parsed document.
func FromDocument(doc *xmldoc.Document) (*model.Snapshot, error) {
	roots, err := doc.Select("/Message")
	if err != nil {
		return nil, err
	}
	if len(roots) != 1 {
		return nil, &xmldoc.ParseError{Message: "document root is not a single Message element"}
	}

	snap := &model.Snapshot{}

	header, err := shredHeader(doc)
	if err != nil {
		return nil, err
	}
	snap.Header = header

	children, err := extract(doc, childSpec)
	if err != nil {
		return nil, err
	}
	for _, r := range children {
		snap.Children = append(snap.Children, model.Child{
			ID:                r.ID,
			ParentID:          r.ParentID,
			LAChildID:         r.Text("LAchildID"),
			UPN:               r.Text("UPN"),
			FormerUPN:         r.Text("FormerUPN"),
			UPNUnknown:        r.Text("UPNunknown"),
			BirthDate:         r.Date("PersonBirthDate"),
			ExpectedBirthDate: r.Date("ExpectedPersonBirthDate"),
			GenderCurrent:     r.Text("GenderCurrent"),
			DeathDate:         r.Date("PersonDeathDate"),
			Ethnicity:         r.Text("Ethnicity"),
		})
	}
	childIDs := idSet(children)

	disabilities, err := extractWrapped(doc, disabilityWrapperSpec, disabilitySpec)
	if err != nil {
		return nil, err
	}
	for _, r := range keepResolved(disabilities, childIDs) {
		snap.Disabilities = append(snap.Disabilities, model.Disability{
			ID:       r.ID,
			ParentID: r.ParentID,
			Code:     r.Text("Disability"),
		})
	}

	episodes, err := extract(doc, episodeSpec)
	if err != nil {
		return nil, err
	}
	episodes = keepResolved(episodes, childIDs)
	for _, r := range episodes {
		snap.Episodes = append(snap.Episodes, model.CINDetails{
			ID:               r.ID,
			ParentID:         r.ParentID,
			ReferralDate:     r.Date("CINreferralDate"),
			ReferralSource:   r.Text("ReferralSource"),
			PrimaryNeedCode:  r.Text("PrimaryNeedCode"),
			ClosureDate:      r.Date("CINclosureDate"),
			ReasonForClosure: r.Text("ReasonForClosure"),
			DateOfInitialCPC: r.Date("DateOfInitialCPC"),
			ReferralNFA:      r.Bool("ReferralNFA"),
		})
	}
	episodeIDs := idSet(episodes)

	assessments, err := extract(doc, assessmentSpec)
	if err != nil {
		return nil, err
	}
	assessments = keepResolved(assessments, episodeIDs)
	for _, r := range assessments {
		snap.Assessments = append(snap.Assessments, model.Assessment{
			ID:                 r.ID,
			ParentID:           r.ParentID,
			StartDate:          r.Date("AssessmentActualStartDate"),
			InternalReviewDate: r.Date("AssessmentInternalReviewDate"),
			AuthorisationDate:  r.Date("AssessmentAuthorisationDate"),
		})
	}

	factors, err := extractWrapped(doc, factorWrapperSpec, factorSpec)
	if err != nil {
		return nil, err
	}
	for _, r := range keepResolved(factors, idSet(assessments)) {
		snap.Factors = append(snap.Factors, model.AssessmentFactor{
			ID:       r.ID,
			ParentID: r.ParentID,
			Code:     r.Text("AssessmentFactors"),
		})
	}

	enquiries, err := extract(doc, section47Spec)
	if err != nil {
		return nil, err
	}
	for _, r := range keepResolved(enquiries, episodeIDs) {
		snap.Enquiries = append(snap.Enquiries, model.Section47{
			ID:               r.ID,
			ParentID:         r.ParentID,
			StartDate:        r.Date("S47ActualStartDate"),
			ICPCTarget:       r.Date("InitialCPCtarget"),
			DateOfInitialCPC: r.Date("DateOfInitialCPC"),
			ICPCNotRequired:  r.Bool("ICPCnotRequired"),
		})
	}

	cinPlans, err := extract(doc, cinPlanSpec)
	if err != nil {
		return nil, err
	}
	for _, r := range keepResolved(cinPlans, episodeIDs) {
		snap.CINPlans = append(snap.CINPlans, model.CINPlan{
			ID:        r.ID,
			ParentID:  r.ParentID,
			StartDate: r.Date("CINPlanStartDate"),
			EndDate:   r.Date("CINPlanEndDate"),
		})
	}

	cpps, err := extract(doc, cppSpec)
	if err != nil {
		return nil, err
	}
	cpps = keepResolved(cpps, episodeIDs)
	for _, r := range cpps {
		snap.ProtectionPlans = append(snap.ProtectionPlans, model.ChildProtectionPlan{
			ID:              r.ID,
			ParentID:        r.ParentID,
			StartDate:       r.Date("CPPstartDate"),
			EndDate:         r.Date("CPPendDate"),
			InitialCategory: r.Text("InitialCategoryOfAbuse"),
			LatestCategory:  r.Text("LatestCategoryOfAbuse"),
			PreviousPlans:   r.Int("NumberOfPreviousCPP"),
		})
	}

	reviews, err := extractWrapped(doc, reviewWrapperSpec, reviewSpec)
	if err != nil {
		return nil, err
	}
	for _, r := range keepResolved(reviews, idSet(cpps)) {
		snap.Reviews = append(snap.Reviews, model.Review{
			ID:         r.ID,
			ParentID:   r.ParentID,
			ReviewDate: r.Date("CPPreviewDate"),
		})
	}

	snap.Freeze()
	return snap, nil
}

// shredHeader combines the two cardinality-1 header blocks into one row.
// Either block may be missing entirely; its fields are then absent, which
// the return-level rules report.
func shredHeader(doc *xmldoc.Document) (model.Header, error) {
	collection, err := extract(doc, collectionSpec)
	if err != nil {
		return model.Header{}, err
	}
	source, err := extract(doc, sourceSpec)
	if err != nil {
		return model.Header{}, err
	}

	var h model.Header
	if len(collection) > 0 {
		r := collection[0]
		h.ID = r.ParentID // the Header element itself
		h.Collection = r.Text("Collection")
		h.Year = r.Int("Year")
		h.ReferenceDate = r.Date("ReferenceDate")
	}
	if len(source) > 0 {
		r := source[0]
		h.ID = r.ParentID
		h.SourceLevel = r.Text("SourceLevel")
		h.LEA = r.Text("LEA")
		h.SoftwareCode = r.Text("SoftwareCode")
		h.Release = r.Text("Release")
		h.SerialNo = r.Text("SerialNo")
		h.DateTime = r.Text("DateTime")
	}
	return h, nil
}

// extractWrapped runs the wrapper and leaf passes and joins them.
func extractWrapped(doc *xmldoc.Document, wrapper, leaf Spec) ([]Row, error) {
	wrappers, err := extract(doc, wrapper)
	if err != nil {
		return nil, err
	}
	leaves, err := extract(doc, leaf)
	if err != nil {
		return nil, err
	}
	return resolveWrapper(wrappers, leaves), nil
}

// keepResolved drops rows whose parent is not a known entity identity.
func keepResolved(rows []Row, parents map[model.Identity]bool) []Row {
	out := rows[:0]
	for _, r := range rows {
		if parents[r.ParentID] {
			out = append(out, r)
		}
	}
	return out
}

func idSet(rows []Row) map[model.Identity]bool {
	ids := make(map[model.Identity]bool, len(rows))
	for _, r := range rows {
		ids[r.ID] = true
	}
	return ids
}
