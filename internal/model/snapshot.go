package model

import "sort"

// Snapshot is the normalized form of one return. Entity slices are kept in
// ascending identity order. After Freeze the snapshot must not be mutated;
// consumers may then read it from any number of goroutines.
type Snapshot struct {
	Header          Header                `json:"header"`
	Children        []Child               `json:"children"`
	Disabilities    []Disability          `json:"disabilities"`
	Episodes        []CINDetails          `json:"episodes"`
	Assessments     []Assessment          `json:"assessments"`
	Factors         []AssessmentFactor    `json:"factors"`
	Enquiries       []Section47           `json:"enquiries"`
	CINPlans        []CINPlan             `json:"cin_plans"`
	ProtectionPlans []ChildProtectionPlan `json:"protection_plans"`
	Reviews         []Review              `json:"reviews"`

	idx *index
}

// index is the precomputed parent-identity index. Entity slices store
// positions, not pointers, so the index stays valid if the snapshot value is
// copied wholesale.
type index struct {
	disabilitiesOf map[Identity][]int
	episodesOf     map[Identity][]int
	assessmentsOf  map[Identity][]int
	factorsOf      map[Identity][]int
	enquiriesOf    map[Identity][]int
	cinPlansOf     map[Identity][]int
	cppOf          map[Identity][]int
	reviewsOf      map[Identity][]int

	childByID   map[Identity]int
	episodeByID map[Identity]int
	cppByID     map[Identity]int
}

// Freeze sorts every entity slice into ascending identity order and builds
// the parent index. The shredder calls it exactly once; calling the parent
// accessors before Freeze panics by design.
func (s *Snapshot) Freeze() {
	sort.SliceStable(s.Children, func(i, j int) bool { return s.Children[i].ID < s.Children[j].ID })
	sort.SliceStable(s.Disabilities, func(i, j int) bool { return s.Disabilities[i].ID < s.Disabilities[j].ID })
	sort.SliceStable(s.Episodes, func(i, j int) bool { return s.Episodes[i].ID < s.Episodes[j].ID })
	sort.SliceStable(s.Assessments, func(i, j int) bool { return s.Assessments[i].ID < s.Assessments[j].ID })
	sort.SliceStable(s.Factors, func(i, j int) bool { return s.Factors[i].ID < s.Factors[j].ID })
	sort.SliceStable(s.Enquiries, func(i, j int) bool { return s.Enquiries[i].ID < s.Enquiries[j].ID })
	sort.SliceStable(s.CINPlans, func(i, j int) bool { return s.CINPlans[i].ID < s.CINPlans[j].ID })
	sort.SliceStable(s.ProtectionPlans, func(i, j int) bool { return s.ProtectionPlans[i].ID < s.ProtectionPlans[j].ID })
	sort.SliceStable(s.Reviews, func(i, j int) bool { return s.Reviews[i].ID < s.Reviews[j].ID })

	idx := &index{
		disabilitiesOf: make(map[Identity][]int),
		episodesOf:     make(map[Identity][]int),
		assessmentsOf:  make(map[Identity][]int),
		factorsOf:      make(map[Identity][]int),
		enquiriesOf:    make(map[Identity][]int),
		cinPlansOf:     make(map[Identity][]int),
		cppOf:          make(map[Identity][]int),
		reviewsOf:      make(map[Identity][]int),
		childByID:      make(map[Identity]int),
		episodeByID:    make(map[Identity]int),
		cppByID:        make(map[Identity]int),
	}
	for i, c := range s.Children {
		idx.childByID[c.ID] = i
	}
	for i, d := range s.Disabilities {
		idx.disabilitiesOf[d.ParentID] = append(idx.disabilitiesOf[d.ParentID], i)
	}
	for i, e := range s.Episodes {
		idx.episodesOf[e.ParentID] = append(idx.episodesOf[e.ParentID], i)
		idx.episodeByID[e.ID] = i
	}
	for i, a := range s.Assessments {
		idx.assessmentsOf[a.ParentID] = append(idx.assessmentsOf[a.ParentID], i)
	}
	for i, f := range s.Factors {
		idx.factorsOf[f.ParentID] = append(idx.factorsOf[f.ParentID], i)
	}
	for i, q := range s.Enquiries {
		idx.enquiriesOf[q.ParentID] = append(idx.enquiriesOf[q.ParentID], i)
	}
	for i, p := range s.CINPlans {
		idx.cinPlansOf[p.ParentID] = append(idx.cinPlansOf[p.ParentID], i)
	}
	for i, p := range s.ProtectionPlans {
		idx.cppOf[p.ParentID] = append(idx.cppOf[p.ParentID], i)
		idx.cppByID[p.ID] = i
	}
	for i, r := range s.Reviews {
		idx.reviewsOf[r.ParentID] = append(idx.reviewsOf[r.ParentID], i)
	}
	s.idx = idx
}

func (s *Snapshot) mustIdx() *index {
	if s.idx == nil {
		panic("model: snapshot accessed before Freeze")
	}
	return s.idx
}

// DisabilitiesOf returns the disabilities of a child in identity order.
func (s *Snapshot) DisabilitiesOf(child Identity) []*Disability {
	pos := s.mustIdx().disabilitiesOf[child]
	out := make([]*Disability, len(pos))
	for i, p := range pos {
		out[i] = &s.Disabilities[p]
	}
	return out
}

// EpisodesOf returns the CIN episodes of a child in identity order.
func (s *Snapshot) EpisodesOf(child Identity) []*CINDetails {
	pos := s.mustIdx().episodesOf[child]
	out := make([]*CINDetails, len(pos))
	for i, p := range pos {
		out[i] = &s.Episodes[p]
	}
	return out
}

// AssessmentsOf returns the assessments of an episode in identity order.
func (s *Snapshot) AssessmentsOf(episode Identity) []*Assessment {
	pos := s.mustIdx().assessmentsOf[episode]
	out := make([]*Assessment, len(pos))
	for i, p := range pos {
		out[i] = &s.Assessments[p]
	}
	return out
}

// FactorsOf returns the factors of an assessment in identity order.
// The rebuilder re-sorts by code; everything else wants source order.
func (s *Snapshot) FactorsOf(assessment Identity) []*AssessmentFactor {
	pos := s.mustIdx().factorsOf[assessment]
	out := make([]*AssessmentFactor, len(pos))
	for i, p := range pos {
		out[i] = &s.Factors[p]
	}
	return out
}

// EnquiriesOf returns the section 47 enquiries of an episode in identity order.
func (s *Snapshot) EnquiriesOf(episode Identity) []*Section47 {
	pos := s.mustIdx().enquiriesOf[episode]
	out := make([]*Section47, len(pos))
	for i, p := range pos {
		out[i] = &s.Enquiries[p]
	}
	return out
}

// CINPlansOf returns the CIN plans of an episode in identity order.
func (s *Snapshot) CINPlansOf(episode Identity) []*CINPlan {
	pos := s.mustIdx().cinPlansOf[episode]
	out := make([]*CINPlan, len(pos))
	for i, p := range pos {
		out[i] = &s.CINPlans[p]
	}
	return out
}

// ProtectionPlansOf returns the protection plans of an episode in identity order.
func (s *Snapshot) ProtectionPlansOf(episode Identity) []*ChildProtectionPlan {
	pos := s.mustIdx().cppOf[episode]
	out := make([]*ChildProtectionPlan, len(pos))
	for i, p := range pos {
		out[i] = &s.ProtectionPlans[p]
	}
	return out
}

// ReviewsOf returns the reviews of a protection plan in identity order.
func (s *Snapshot) ReviewsOf(plan Identity) []*Review {
	pos := s.mustIdx().reviewsOf[plan]
	out := make([]*Review, len(pos))
	for i, p := range pos {
		out[i] = &s.Reviews[p]
	}
	return out
}

// ChildByID resolves a child by identity, or nil.
func (s *Snapshot) ChildByID(id Identity) *Child {
	if i, ok := s.mustIdx().childByID[id]; ok {
		return &s.Children[i]
	}
	return nil
}

// EpisodeByID resolves an episode by identity, or nil.
func (s *Snapshot) EpisodeByID(id Identity) *CINDetails {
	if i, ok := s.mustIdx().episodeByID[id]; ok {
		return &s.Episodes[i]
	}
	return nil
}

// ProtectionPlanByID resolves a protection plan by identity, or nil.
func (s *Snapshot) ProtectionPlanByID(id Identity) *ChildProtectionPlan {
	if i, ok := s.mustIdx().cppByID[id]; ok {
		return &s.ProtectionPlans[i]
	}
	return nil
}

// ChildOfEpisode resolves the child an episode belongs to. Snapshots built
// by the shredder never have dangling parent identities, so a nil return
// indicates a hand-built snapshot with a broken link.
func (s *Snapshot) ChildOfEpisode(episode *CINDetails) *Child {
	return s.ChildByID(episode.ParentID)
}
