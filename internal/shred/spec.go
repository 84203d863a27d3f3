package shred

// Kind is the target semantic type of an extracted field.
type Kind int

const (
	// KindText is NFC-normalized, space-trimmed text.
	KindText Kind = iota
	// KindInt is a base-10 integer.
	KindInt
	// KindDate is a YYYY-MM-DD calendar date.
	KindDate
	// KindBool accepts true/false/1/0.
	KindBool
	// KindRaw is verbatim text, kept byte-for-byte (timestamps).
	KindRaw
)

// Field projects one value out of a matched element. Loc is a child
// sub-path ("ChildIdentifiers/UPN"), an attribute ("@id"), or "." for the
// element's own inner text.
type Field struct {
	Name string
	Loc  string
	Kind Kind
}

// Spec is the declarative extraction for one entity type. ParentLoc is the
// relative location of the element whose identity becomes the row's parent
// reference; for wrapped scalar lists that is the wrapper, never the real
// parent entity, which is why the wrapper join exists.
type Spec struct {
	Entity    string
	Path      string
	ParentLoc string
	Fields    []Field
}

// The fixed extraction battery. Paths are the external contract; renaming an
// element here is a schema change, not a refactor.
var (
	collectionSpec = Spec{
		Entity:    "CollectionDetails",
		Path:      "/Message/Header/CollectionDetails",
		ParentLoc: "..",
		Fields: []Field{
			{Name: "Collection", Loc: "Collection", Kind: KindText},
			{Name: "Year", Loc: "Year", Kind: KindInt},
			{Name: "ReferenceDate", Loc: "ReferenceDate", Kind: KindDate},
		},
	}

	sourceSpec = Spec{
		Entity:    "Source",
		Path:      "/Message/Header/Source",
		ParentLoc: "..",
		Fields: []Field{
			{Name: "SourceLevel", Loc: "SourceLevel", Kind: KindText},
			{Name: "LEA", Loc: "LEA", Kind: KindText},
			{Name: "SoftwareCode", Loc: "SoftwareCode", Kind: KindText},
			{Name: "Release", Loc: "Release", Kind: KindText},
			{Name: "SerialNo", Loc: "SerialNo", Kind: KindText},
			{Name: "DateTime", Loc: "DateTime", Kind: KindRaw},
		},
	}

	childSpec = Spec{
		Entity:    "Child",
		Path:      "/Message/Children/Child",
		ParentLoc: "../..",
		Fields: []Field{
			{Name: "LAchildID", Loc: "ChildIdentifiers/LAchildID", Kind: KindText},
			{Name: "UPN", Loc: "ChildIdentifiers/UPN", Kind: KindText},
			{Name: "FormerUPN", Loc: "ChildIdentifiers/FormerUPN", Kind: KindText},
			{Name: "UPNunknown", Loc: "ChildIdentifiers/UPNunknown", Kind: KindText},
			{Name: "PersonBirthDate", Loc: "ChildIdentifiers/PersonBirthDate", Kind: KindDate},
			{Name: "ExpectedPersonBirthDate", Loc: "ChildIdentifiers/ExpectedPersonBirthDate", Kind: KindDate},
			{Name: "GenderCurrent", Loc: "ChildIdentifiers/GenderCurrent", Kind: KindText},
			{Name: "PersonDeathDate", Loc: "ChildIdentifiers/PersonDeathDate", Kind: KindDate},
			{Name: "Ethnicity", Loc: "ChildCharacteristics/Ethnicity", Kind: KindText},
		},
	}

	disabilityWrapperSpec = Spec{
		Entity:    "Disabilities",
		Path:      "/Message/Children/Child/ChildCharacteristics/Disabilities",
		ParentLoc: "../..",
	}

	disabilitySpec = Spec{
		Entity:    "Disability",
		Path:      "/Message/Children/Child/ChildCharacteristics/Disabilities/Disability",
		ParentLoc: "..",
		Fields: []Field{
			{Name: "Disability", Loc: ".", Kind: KindText},
		},
	}

	episodeSpec = Spec{
		Entity:    "CINdetails",
		Path:      "/Message/Children/Child/CINdetails",
		ParentLoc: "..",
		Fields: []Field{
			{Name: "CINreferralDate", Loc: "CINreferralDate", Kind: KindDate},
			{Name: "ReferralSource", Loc: "ReferralSource", Kind: KindText},
			{Name: "PrimaryNeedCode", Loc: "PrimaryNeedCode", Kind: KindText},
			{Name: "CINclosureDate", Loc: "CINclosureDate", Kind: KindDate},
			{Name: "ReasonForClosure", Loc: "ReasonForClosure", Kind: KindText},
			{Name: "DateOfInitialCPC", Loc: "DateOfInitialCPC", Kind: KindDate},
			{Name: "ReferralNFA", Loc: "ReferralNFA", Kind: KindBool},
		},
	}

	assessmentSpec = Spec{
		Entity:    "Assessments",
		Path:      "/Message/Children/Child/CINdetails/Assessments",
		ParentLoc: "..",
		Fields: []Field{
			{Name: "AssessmentActualStartDate", Loc: "AssessmentActualStartDate", Kind: KindDate},
			{Name: "AssessmentInternalReviewDate", Loc: "AssessmentInternalReviewDate", Kind: KindDate},
			{Name: "AssessmentAuthorisationDate", Loc: "AssessmentAuthorisationDate", Kind: KindDate},
		},
	}

	factorWrapperSpec = Spec{
		Entity:    "FactorsIdentifiedAtAssessment",
		Path:      "/Message/Children/Child/CINdetails/Assessments/FactorsIdentifiedAtAssessment",
		ParentLoc: "..",
	}

	factorSpec = Spec{
		Entity:    "AssessmentFactors",
		Path:      "/Message/Children/Child/CINdetails/Assessments/FactorsIdentifiedAtAssessment/AssessmentFactors",
		ParentLoc: "..",
		Fields: []Field{
			{Name: "AssessmentFactors", Loc: ".", Kind: KindText},
		},
	}

	section47Spec = Spec{
		Entity:    "Section47",
		Path:      "/Message/Children/Child/CINdetails/Section47",
		ParentLoc: "..",
		Fields: []Field{
			{Name: "S47ActualStartDate", Loc: "S47ActualStartDate", Kind: KindDate},
			{Name: "InitialCPCtarget", Loc: "InitialCPCtarget", Kind: KindDate},
			{Name: "DateOfInitialCPC", Loc: "DateOfInitialCPC", Kind: KindDate},
			{Name: "ICPCnotRequired", Loc: "ICPCnotRequired", Kind: KindBool},
		},
	}

	cinPlanSpec = Spec{
		Entity:    "CINPlanDates",
		Path:      "/Message/Children/Child/CINdetails/CINPlanDates",
		ParentLoc: "..",
		Fields: []Field{
			{Name: "CINPlanStartDate", Loc: "CINPlanStartDate", Kind: KindDate},
			{Name: "CINPlanEndDate", Loc: "CINPlanEndDate", Kind: KindDate},
		},
	}

	cppSpec = Spec{
		Entity:    "ChildProtectionPlans",
		Path:      "/Message/Children/Child/CINdetails/ChildProtectionPlans",
		ParentLoc: "..",
		Fields: []Field{
			{Name: "CPPstartDate", Loc: "CPPstartDate", Kind: KindDate},
			{Name: "CPPendDate", Loc: "CPPendDate", Kind: KindDate},
			{Name: "InitialCategoryOfAbuse", Loc: "InitialCategoryOfAbuse", Kind: KindText},
			{Name: "LatestCategoryOfAbuse", Loc: "LatestCategoryOfAbuse", Kind: KindText},
			{Name: "NumberOfPreviousCPP", Loc: "NumberOfPreviousCPP", Kind: KindInt},
		},
	}

	reviewWrapperSpec = Spec{
		Entity:    "Reviews",
		Path:      "/Message/Children/Child/CINdetails/ChildProtectionPlans/Reviews",
		ParentLoc: "..",
	}

	reviewSpec = Spec{
		Entity:    "CPPreviewDate",
		Path:      "/Message/Children/Child/CINdetails/ChildProtectionPlans/Reviews/CPPreviewDate",
		ParentLoc: "..",
		Fields: []Field{
			{Name: "CPPreviewDate", Loc: ".", Kind: KindDate},
		},
	}
)
