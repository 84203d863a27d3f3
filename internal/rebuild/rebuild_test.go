package rebuild

import (
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careworks/cincensus/internal/model"
	"github.com/careworks/cincensus/internal/testutil"
	"github.com/careworks/cincensus/internal/xmldoc"
)

func renderFixture() *model.Snapshot {
	return testutil.Freeze(&model.Snapshot{
		Header: model.Header{
			ID:            1,
			Collection:    "CIN",
			Year:          testutil.Int(2022),
			ReferenceDate: testutil.Date("2022-03-31"),
			SourceLevel:   "L",
			LEA:           "201",
			DateTime:      "2022-04-12T09:14:55Z",
		},
		Children: []model.Child{{
			ID:            10,
			ParentID:      1,
			LAChildID:     "CHILD1",
			UPN:           "H801200001001",
			BirthDate:     testutil.Date("2015-05-10"),
			GenderCurrent: "1",
			Ethnicity:     "WBRI",
		}},
		Disabilities: []model.Disability{{ID: 11, ParentID: 10, Code: "HAND"}},
		Episodes: []model.CINDetails{{
			ID:              20,
			ParentID:        10,
			ReferralDate:    testutil.Date("2021-06-01"),
			ReferralSource:  "1A",
			PrimaryNeedCode: "N1",
			ReferralNFA:     testutil.Bool(false),
		}},
		Assessments: []model.Assessment{{
			ID:                30,
			ParentID:          20,
			StartDate:         testutil.Date("2021-06-05"),
			AuthorisationDate: testutil.Date("2021-06-20"),
		}},
		Factors: []model.AssessmentFactor{
			{ID: 31, ParentID: 30, Code: "2B"},
			{ID: 32, ParentID: 30, Code: "1A"},
		},
		ProtectionPlans: []model.ChildProtectionPlan{{
			ID:              40,
			ParentID:        20,
			StartDate:       testutil.Date("2021-09-01"),
			InitialCategory: "NEG",
			LatestCategory:  "NEG",
		}},
		Reviews: []model.Review{
			{ID: 41, ParentID: 40, ReviewDate: testutil.Date("2021-12-01")},
			{ID: 42, ParentID: 40},
		},
	})
}

func TestRenderGolden(t *testing.T) {
	tree, err := Render(renderFixture())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "full_return", tree.Marshal())
}

// findPath walks a rendered tree by element names, nil when a step is
// missing.
func findPath(e *xmldoc.Element, names ...string) *xmldoc.Element {
	cur := e
	for _, name := range names {
		var next *xmldoc.Element
		for _, c := range cur.Children {
			if c.Name == name {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

func TestRenderForcedFactorsWrapper(t *testing.T) {
	t.Run("authorised without factors keeps the wrapper", func(t *testing.T) {
		snap := renderFixture()
		snap.Factors = nil
		snap.Freeze()

		tree, err := Render(snap)
		require.NoError(t, err)

		wrapper := findPath(tree, "Children", "Child", "CINdetails", "Assessments", "FactorsIdentifiedAtAssessment")
		require.NotNil(t, wrapper)
		assert.Empty(t, wrapper.Children)
	})

	t.Run("unauthorised suppresses the wrapper", func(t *testing.T) {
		snap := renderFixture()
		snap.Assessments[0].AuthorisationDate = nil

		tree, err := Render(snap)
		require.NoError(t, err)

		assessment := findPath(tree, "Children", "Child", "CINdetails", "Assessments")
		require.NotNil(t, assessment)
		assert.Nil(t, findPath(assessment, "FactorsIdentifiedAtAssessment"))
	})

	t.Run("factors render sorted by code", func(t *testing.T) {
		tree, err := Render(renderFixture())
		require.NoError(t, err)

		wrapper := findPath(tree, "Children", "Child", "CINdetails", "Assessments", "FactorsIdentifiedAtAssessment")
		require.NotNil(t, wrapper)
		require.Len(t, wrapper.Children, 2)
		assert.Equal(t, "1A", wrapper.Children[0].Text)
		assert.Equal(t, "2B", wrapper.Children[1].Text)
	})
}

func TestRenderEmptyReviewDateSurvives(t *testing.T) {
	tree, err := Render(renderFixture())
	require.NoError(t, err)

	reviews := findPath(tree, "Children", "Child", "CINdetails", "ChildProtectionPlans", "Reviews")
	require.NotNil(t, reviews)
	require.Len(t, reviews.Children, 2)
	assert.Equal(t, "2021-12-01", reviews.Children[0].Text)
	// A review with no parseable date still occupies its slot.
	assert.Equal(t, "", reviews.Children[1].Text)
}

func TestRenderLegacyContentBlock(t *testing.T) {
	snap := renderFixture()
	snap.Header.Year = testutil.Int(2019)

	tree, err := Render(snap)
	require.NoError(t, err)
	assert.NotNil(t, findPath(tree, "Header", "Content", "CBDSLevels"))

	snap.Header.Year = testutil.Int(2020)
	tree, err = Render(snap)
	require.NoError(t, err)
	assert.Nil(t, findPath(tree, "Header", "Content"))
}

func TestRenderBoolTokens(t *testing.T) {
	snap := renderFixture()
	snap.Episodes[0].ReferralNFA = testutil.Bool(true)

	tree, err := Render(snap)
	require.NoError(t, err)

	nfa := findPath(tree, "Children", "Child", "CINdetails", "ReferralNFA")
	require.NotNil(t, nfa)
	assert.Equal(t, "true", nfa.Text)
}

func TestRenderRejectsDuplicateIdentities(t *testing.T) {
	snap := renderFixture()
	snap.Episodes = append(snap.Episodes, model.CINDetails{ID: 10, ParentID: 10})
	snap.Freeze()

	_, err := Render(snap)
	require.Error(t, err)
	var ambErr *AmbiguityError
	require.True(t, errors.As(err, &ambErr))
	assert.Equal(t, model.Identity(10), ambErr.ID)
}
