package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanReturn = `<?xml version="1.0" encoding="UTF-8"?>
<Message>
  <Header>
    <CollectionDetails>
      <Collection>CIN</Collection>
      <Year>2022</Year>
      <ReferenceDate>2022-03-31</ReferenceDate>
    </CollectionDetails>
    <Source>
      <SourceLevel>L</SourceLevel>
      <LEA>201</LEA>
      <SoftwareCode>Local Authority</SoftwareCode>
      <Release>ver 3.1.21</Release>
      <SerialNo>001</SerialNo>
      <DateTime>2022-04-12T09:14:55.0000000Z</DateTime>
    </Source>
  </Header>
  <Children>
    <Child>
      <ChildIdentifiers>
        <LAchildID>CHILD1</LAchildID>
        <UPN>H801200001001</UPN>
        <PersonBirthDate>2015-05-10</PersonBirthDate>
        <GenderCurrent>1</GenderCurrent>
      </ChildIdentifiers>
      <ChildCharacteristics>
        <Ethnicity>WBRI</Ethnicity>
      </ChildCharacteristics>
      <CINdetails>
        <CINreferralDate>2021-06-01</CINreferralDate>
        <ReferralSource>1A</ReferralSource>
        <PrimaryNeedCode>N1</PrimaryNeedCode>
        <Assessments>
          <AssessmentActualStartDate>2021-06-05</AssessmentActualStartDate>
          <AssessmentAuthorisationDate>2021-06-20</AssessmentAuthorisationDate>
          <FactorsIdentifiedAtAssessment>
            <AssessmentFactors>1A</AssessmentFactors>
          </FactorsIdentifiedAtAssessment>
        </Assessments>
      </CINdetails>
    </Child>
  </Children>
</Message>`

func writeReturn(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "return.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestValidateCleanReturn(t *testing.T) {
	path := writeReturn(t, cleanReturn)

	out, _, err := execute(t, "validate", path)

	require.NoError(t, err)
	assert.Contains(t, out, "0 errors, 0 queries")
}

func TestValidateFailsOnErrors(t *testing.T) {
	// An unknown gender code is an error-severity finding.
	bad := writeReturn(t, `<Message>
  <Header>
    <CollectionDetails>
      <Collection>CIN</Collection>
      <Year>2022</Year>
      <ReferenceDate>2022-03-31</ReferenceDate>
    </CollectionDetails>
    <Source><SourceLevel>L</SourceLevel><LEA>201</LEA></Source>
  </Header>
  <Children>
    <Child>
      <ChildIdentifiers>
        <LAchildID>CHILD1</LAchildID>
        <UPN>H801200001001</UPN>
        <PersonBirthDate>2015-05-10</PersonBirthDate>
        <GenderCurrent>X</GenderCurrent>
      </ChildIdentifiers>
      <ChildCharacteristics><Ethnicity>WBRI</Ethnicity></ChildCharacteristics>
    </Child>
  </Children>
</Message>`)

	out, _, err := execute(t, "validate", bad)

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "8550")
}

func TestValidateJSON(t *testing.T) {
	path := writeReturn(t, cleanReturn)

	out, _, err := execute(t, "--format", "json", "validate", path)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(0), data["errors"])
	assert.NotEmpty(t, data["run_id"])
}

func TestValidateMissingInput(t *testing.T) {
	_, _, err := execute(t, "validate", filepath.Join(t.TempDir(), "absent.xml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidateUnparsableInput(t *testing.T) {
	path := writeReturn(t, "<Message><Children>")
	_, _, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidateBadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("census:\n  year: 1999\n"), 0o644))

	_, _, err := execute(t, "--config", cfgPath, "validate", writeReturn(t, cleanReturn))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidateWritesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "findings.db")

	_, _, err := execute(t, "validate", "--db", dbPath, writeReturn(t, cleanReturn))

	require.NoError(t, err)
	_, statErr := os.Stat(dbPath)
	assert.NoError(t, statErr)
}

func TestExport(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "export.xml")

	_, _, err := execute(t, "export", "-o", outPath, writeReturn(t, cleanReturn))
	require.NoError(t, err)

	data, readErr := os.ReadFile(outPath)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "<LAchildID>CHILD1</LAchildID>")
}

func TestExportToStdout(t *testing.T) {
	out, _, err := execute(t, "export", writeReturn(t, cleanReturn))
	require.NoError(t, err)
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, "<Message>")
}

func TestRoundtrip(t *testing.T) {
	out, _, err := execute(t, "roundtrip", writeReturn(t, cleanReturn))
	require.NoError(t, err)
	assert.Contains(t, out, "round trip clean")
}

func TestRulesText(t *testing.T) {
	out, _, err := execute(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "CODE")
	assert.Contains(t, out, "8510")
	assert.Contains(t, out, "8730Q")
}

func TestRulesJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "rules")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	entries, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, entries, 76)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "--format", "xml", "rules")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(&ExitError{Code: ExitCommandError, Message: "x"}))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
}

func TestCommandsRegistered(t *testing.T) {
	root := NewRootCommand()
	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"validate", "export", "roundtrip", "rules"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}
