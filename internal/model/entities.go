package model

// Identity is the synthetic identity assigned to every source element in
// document order. Identities are opaque but their ascending order reproduces
// the order entities were read from the return.
type Identity int64

// Header combines the return's collection metadata and source-system
// metadata. Exactly one Header exists per snapshot.
type Header struct {
	ID Identity `json:"id"`

	// CollectionDetails block.
	Collection    string `json:"collection"`
	Year          *int   `json:"year"`
	ReferenceDate *Date  `json:"reference_date"`

	// Source block.
	SourceLevel  string `json:"source_level"`
	LEA          string `json:"lea"`
	SoftwareCode string `json:"software_code"`
	Release      string `json:"release"`
	SerialNo     string `json:"serial_no"`

	// DateTime is kept as the literal source text so the fractional-seconds
	// and zone suffix survive a round trip untouched.
	DateTime string `json:"date_time"`
}

// Child is one child record in the return.
type Child struct {
	ID       Identity `json:"id"`
	ParentID Identity `json:"parent_id"`

	LAChildID         string `json:"la_child_id"`
	UPN               string `json:"upn"`
	FormerUPN         string `json:"former_upn"`
	UPNUnknown        string `json:"upn_unknown"`
	BirthDate         *Date  `json:"birth_date"`
	ExpectedBirthDate *Date  `json:"expected_birth_date"`
	GenderCurrent     string `json:"gender_current"`
	DeathDate         *Date  `json:"death_date"`
	Ethnicity         string `json:"ethnicity"`
}

// Disability is one disability code under a child's characteristics wrapper.
type Disability struct {
	ID       Identity `json:"id"`
	ParentID Identity `json:"parent_id"` // Child identity, resolved through the wrapper

	Code string `json:"code"`
}

// CINDetails is one referral-to-closure episode. Sibling order under the
// child is significant and must survive to rebuild.
type CINDetails struct {
	ID       Identity `json:"id"`
	ParentID Identity `json:"parent_id"` // Child identity

	ReferralDate     *Date  `json:"referral_date"`
	ReferralSource   string `json:"referral_source"`
	PrimaryNeedCode  string `json:"primary_need_code"`
	ClosureDate      *Date  `json:"closure_date"`
	ReasonForClosure string `json:"reason_for_closure"`
	DateOfInitialCPC *Date  `json:"date_of_initial_cpc"`
	ReferralNFA      *bool  `json:"referral_nfa"`
}

// Open reports whether the episode has no closure date.
func (e *CINDetails) Open() bool { return e.ClosureDate == nil }

// Assessment is one assessment under an episode.
type Assessment struct {
	ID       Identity `json:"id"`
	ParentID Identity `json:"parent_id"` // CINDetails identity

	StartDate          *Date `json:"start_date"`
	InternalReviewDate *Date `json:"internal_review_date"`
	AuthorisationDate  *Date `json:"authorisation_date"`
}

// Authorised reports whether the assessment has been completed.
// An authorised assessment must report its factors wrapper even when empty;
// an unauthorised one must never report it.
func (a *Assessment) Authorised() bool { return a.AuthorisationDate != nil }

// AssessmentFactor is one factor code identified at an assessment, resolved
// through the factors wrapper. Factors are exported sorted by code, the one
// place snapshot order is not document order.
type AssessmentFactor struct {
	ID       Identity `json:"id"`
	ParentID Identity `json:"parent_id"` // Assessment identity

	Code string `json:"code"`
}

// Section47 is one child-protection enquiry under an episode.
type Section47 struct {
	ID       Identity `json:"id"`
	ParentID Identity `json:"parent_id"` // CINDetails identity

	StartDate        *Date `json:"start_date"`
	ICPCTarget       *Date `json:"icpc_target"`
	DateOfInitialCPC *Date `json:"date_of_initial_cpc"`
	ICPCNotRequired  *bool `json:"icpc_not_required"`
}

// CINPlan is one CIN plan date range under an episode.
type CINPlan struct {
	ID       Identity `json:"id"`
	ParentID Identity `json:"parent_id"` // CINDetails identity

	StartDate *Date `json:"start_date"`
	EndDate   *Date `json:"end_date"`
}

// ChildProtectionPlan is one protection plan under an episode.
type ChildProtectionPlan struct {
	ID       Identity `json:"id"`
	ParentID Identity `json:"parent_id"` // CINDetails identity

	StartDate       *Date  `json:"start_date"`
	EndDate         *Date  `json:"end_date"`
	InitialCategory string `json:"initial_category"`
	LatestCategory  string `json:"latest_category"`
	PreviousPlans   *int   `json:"previous_plans"`
}

// Review is one review date under a protection plan, resolved through the
// Reviews wrapper.
type Review struct {
	ID       Identity `json:"id"`
	ParentID Identity `json:"parent_id"` // ChildProtectionPlan identity

	ReviewDate *Date `json:"review_date"`
}
