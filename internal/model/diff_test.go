package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diffFixture(childID, episodeID, factorID Identity) *Snapshot {
	ref := MustDate("2021-06-01")
	auth := MustDate("2021-06-20")
	s := &Snapshot{
		Header: Header{ID: 1, Collection: "CIN", LEA: "201", DateTime: "2022-04-12T09:00:00"},
		Children: []Child{{
			ID: childID, ParentID: 1,
			LAChildID: "CHILD1", GenderCurrent: "1", Ethnicity: "WBRI",
		}},
		Episodes: []CINDetails{{
			ID: episodeID, ParentID: childID,
			ReferralDate: &ref, ReferralSource: "1A",
		}},
		Assessments: []Assessment{{
			ID: episodeID + 1, ParentID: episodeID, AuthorisationDate: &auth,
		}},
		Factors: []AssessmentFactor{
			{ID: factorID, ParentID: episodeID + 1, Code: "2B"},
			{ID: factorID + 1, ParentID: episodeID + 1, Code: "1A"},
		},
	}
	s.Freeze()
	return s
}

func TestDiffIgnoresIdentities(t *testing.T) {
	// The same structure under entirely different synthetic identities is
	// equivalent; identities are opaque.
	a := diffFixture(10, 20, 30)
	b := diffFixture(100, 200, 300)

	assert.Empty(t, Diff(a, b))
	assert.True(t, Equivalent(a, b))
}

func TestDiffComparesFactorsSorted(t *testing.T) {
	a := diffFixture(10, 20, 30)
	b := diffFixture(10, 20, 30)
	// Swap the source order of b's factors; codes are compared sorted.
	b.Factors[0], b.Factors[1] = b.Factors[1], b.Factors[0]
	b.Factors[0].ID, b.Factors[1].ID = 30, 31
	b.Freeze()

	assert.True(t, Equivalent(a, b))
}

func TestDiffReportsFieldChange(t *testing.T) {
	a := diffFixture(10, 20, 30)
	b := diffFixture(10, 20, 30)
	b.Children[0].Ethnicity = "AIND"

	out := Diff(a, b)
	require.Len(t, out, 1)
	assert.Contains(t, out[0], "Ethnicity")
	assert.Contains(t, out[0], "AIND")
}

func TestDiffReportsMissingOptionalDate(t *testing.T) {
	a := diffFixture(10, 20, 30)
	b := diffFixture(10, 20, 30)
	b.Episodes[0].ReferralDate = nil

	out := Diff(a, b)
	require.Len(t, out, 1)
	assert.Contains(t, out[0], "CINreferralDate")
	assert.Contains(t, out[0], "absent")
}

func TestDiffReportsCountMismatch(t *testing.T) {
	a := diffFixture(10, 20, 30)
	b := diffFixture(10, 20, 30)
	b.Children = nil
	b.Freeze()

	out := Diff(a, b)
	require.Len(t, out, 1)
	assert.Contains(t, out[0], "children")
}

func TestDiffSiblingOrderMatters(t *testing.T) {
	build := func(first, second string) *Snapshot {
		r1 := MustDate("2021-04-10")
		r2 := MustDate("2021-08-10")
		c1 := MustDate("2021-06-01")
		s := &Snapshot{
			Header: Header{ID: 1, Collection: "CIN", LEA: "201"},
			Children: []Child{{
				ID: 10, ParentID: 1, LAChildID: "CHILD1", GenderCurrent: "1", Ethnicity: "WBRI",
			}},
			Episodes: []CINDetails{
				{ID: 20, ParentID: 10, ReferralDate: &r1, ClosureDate: &c1, ReferralSource: first},
				{ID: 21, ParentID: 10, ReferralDate: &r2, ReferralSource: second},
			},
		}
		s.Freeze()
		return s
	}

	// Same multiset of episodes, different sibling order: not equivalent.
	assert.True(t, Equivalent(build("1A", "2B"), build("1A", "2B")))
	assert.False(t, Equivalent(build("1A", "2B"), build("2B", "1A")))
}
