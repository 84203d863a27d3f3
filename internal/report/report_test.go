package report

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careworks/cincensus/internal/rules"
)

func sampleViolations() []rules.Violation {
	return []rules.Violation{
		{
			Code:     "110",
			Severity: rules.SeverityError,
			Level:    rules.LevelReturn,
			Message:  "Collection must be CIN",
			Subject:  rules.Subject{ID: 1, Keys: map[string]string{"lea": "201"}},
		},
		{
			Code:     "8510",
			Severity: rules.SeverityError,
			Level:    rules.LevelChild,
			Message:  "More than one child record with the same LAchildID",
			Subject:  rules.Subject{ID: 10, LAChildID: "CHILD1", UPN: "H801200001001"},
		},
		{
			Code:     "8730Q",
			Severity: rules.SeverityQuery,
			Level:    rules.LevelAssessment,
			Message:  "Please check: assessment started over 45 working days ago and is not yet authorised",
			Subject:  rules.Subject{ID: 30, LAChildID: "CHILD1"},
		},
	}
}

func TestBuild(t *testing.T) {
	r := Build(sampleViolations())

	id, err := uuid.Parse(r.RunID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	assert.Equal(t, 2, r.Errors)
	assert.Equal(t, 1, r.Queries)

	// Every level gets a section, populated or not, in fixed order.
	require.Len(t, r.Sections, 7)
	assert.Equal(t, rules.LevelReturn, r.Sections[0].Level)
	assert.Len(t, r.Sections[0].Findings, 1)
	assert.Equal(t, rules.LevelChild, r.Sections[1].Level)
	assert.Len(t, r.Sections[1].Findings, 1)
	assert.Empty(t, r.Sections[2].Findings)
	assert.Equal(t, rules.LevelProtectionPlan, r.Sections[6].Level)
}

func TestBuildEmpty(t *testing.T) {
	r := Build(nil)
	assert.Zero(t, r.Errors)
	assert.Zero(t, r.Queries)
	require.Len(t, r.Sections, 7)
}

func TestWriteText(t *testing.T) {
	r := Build(sampleViolations())

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	out := buf.String()

	assert.Contains(t, out, "2 errors, 1 queries")
	assert.Contains(t, out, "[8510] error  CHILD1")
	// Return-level findings have no child; the synthetic identity stands
	// in.
	assert.Contains(t, out, "[110] error  #1")
	// Empty sections are not printed.
	assert.NotContains(t, out, "plan level")
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findings.db")
	r := Build(sampleViolations())
	require.NoError(t, r.WriteSQLite(path))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var errors, queries int
	require.NoError(t, db.QueryRow(
		"SELECT errors, queries FROM runs WHERE run_id = ?", r.RunID,
	).Scan(&errors, &queries))
	assert.Equal(t, 2, errors)
	assert.Equal(t, 1, queries)

	var code, laChildID string
	require.NoError(t, db.QueryRow(
		"SELECT code, la_child_id FROM child_findings WHERE run_id = ?", r.RunID,
	).Scan(&code, &laChildID))
	assert.Equal(t, "8510", code)
	assert.Equal(t, "CHILD1", laChildID)

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM episode_findings").Scan(&n))
	assert.Zero(t, n)
}

func TestWriteSQLiteAppendsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findings.db")
	first := Build(sampleViolations())
	second := Build(sampleViolations())
	require.NoError(t, first.WriteSQLite(path))
	require.NoError(t, second.WriteSQLite(path))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n))
	assert.Equal(t, 2, n)
}
