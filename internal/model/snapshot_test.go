package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scrambled builds a snapshot with entity slices deliberately out of
// identity order, as if appended by concurrent extraction passes.
func scrambled() *Snapshot {
	s := &Snapshot{
		Header: Header{ID: 1, Collection: "CIN", LEA: "201"},
		Children: []Child{
			{ID: 30, ParentID: 1, LAChildID: "C3"},
			{ID: 10, ParentID: 1, LAChildID: "C1"},
			{ID: 20, ParentID: 1, LAChildID: "C2"},
		},
		Episodes: []CINDetails{
			{ID: 25, ParentID: 20},
			{ID: 11, ParentID: 10},
			{ID: 15, ParentID: 10},
		},
		Assessments: []Assessment{
			{ID: 13, ParentID: 11},
			{ID: 12, ParentID: 11},
		},
		Factors: []AssessmentFactor{
			{ID: 14, ParentID: 12, Code: "2B"},
		},
		ProtectionPlans: []ChildProtectionPlan{
			{ID: 26, ParentID: 25},
		},
		Reviews: []Review{
			{ID: 28, ParentID: 26},
			{ID: 27, ParentID: 26},
		},
	}
	s.Freeze()
	return s
}

func TestFreezeSortsByIdentity(t *testing.T) {
	s := scrambled()

	assert.Equal(t, []string{"C1", "C2", "C3"}, []string{
		s.Children[0].LAChildID, s.Children[1].LAChildID, s.Children[2].LAChildID,
	})
	assert.Equal(t, Identity(11), s.Episodes[0].ID)
	assert.Equal(t, Identity(15), s.Episodes[1].ID)
	assert.Equal(t, Identity(25), s.Episodes[2].ID)
}

func TestParentAccessorsPreserveOrder(t *testing.T) {
	s := scrambled()

	episodes := s.EpisodesOf(10)
	require.Len(t, episodes, 2)
	assert.Equal(t, Identity(11), episodes[0].ID)
	assert.Equal(t, Identity(15), episodes[1].ID)

	assessments := s.AssessmentsOf(11)
	require.Len(t, assessments, 2)
	assert.Equal(t, Identity(12), assessments[0].ID)
	assert.Equal(t, Identity(13), assessments[1].ID)

	reviews := s.ReviewsOf(26)
	require.Len(t, reviews, 2)
	assert.Equal(t, Identity(27), reviews[0].ID)
	assert.Equal(t, Identity(28), reviews[1].ID)

	assert.Empty(t, s.EpisodesOf(30))
	assert.Empty(t, s.FactorsOf(13))
}

func TestByIDLookups(t *testing.T) {
	s := scrambled()

	require.NotNil(t, s.ChildByID(20))
	assert.Equal(t, "C2", s.ChildByID(20).LAChildID)
	assert.Nil(t, s.ChildByID(999))

	e := s.EpisodeByID(25)
	require.NotNil(t, e)
	owner := s.ChildOfEpisode(e)
	require.NotNil(t, owner)
	assert.Equal(t, "C2", owner.LAChildID)

	require.NotNil(t, s.ProtectionPlanByID(26))
	assert.Nil(t, s.ProtectionPlanByID(11))
}

func TestAccessorsPanicBeforeFreeze(t *testing.T) {
	s := &Snapshot{}
	assert.Panics(t, func() { s.EpisodesOf(1) })
	assert.Panics(t, func() { s.ChildByID(1) })
}
