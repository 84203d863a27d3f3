package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careworks/cincensus/internal/model"
)

const validYAML = `census:
  year: 2022
thresholds:
  assessment_working_days: 45
  enquiry_working_days: 15
`

func TestDefault(t *testing.T) {
	cfg := Default(2022)

	w := cfg.Window()
	assert.Equal(t, model.MustDate("2021-04-01"), w.Start)
	assert.Equal(t, model.MustDate("2022-03-31"), w.End)

	th := cfg.RuleThresholds()
	assert.Equal(t, 45, th.AssessmentDays)
	assert.Equal(t, 15, th.EnquiryDays)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)
	assert.Equal(t, 2022, cfg.Census.Year)
	assert.Equal(t, 45, cfg.Thresholds.AssessmentWorkingDays)
}

func TestParseExplicitWindow(t *testing.T) {
	cfg, err := Parse([]byte(`census:
  year: 2022
  window:
    start: "2021-09-01"
    end: "2022-08-31"
thresholds:
  assessment_working_days: 40
  enquiry_working_days: 10
`))
	require.NoError(t, err)

	w := cfg.Window()
	assert.Equal(t, model.MustDate("2021-09-01"), w.Start)
	assert.Equal(t, model.MustDate("2022-08-31"), w.End)
}

func TestParseRejections(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "not yaml",
			yaml: "census: [unclosed",
		},
		{
			name: "year out of range",
			yaml: "census:\n  year: 2008\nthresholds:\n  assessment_working_days: 45\n  enquiry_working_days: 15\n",
		},
		{
			name: "unknown field",
			yaml: "census:\n  year: 2022\n  colour: blue\nthresholds:\n  assessment_working_days: 45\n  enquiry_working_days: 15\n",
		},
		{
			name: "zero threshold",
			yaml: "census:\n  year: 2022\nthresholds:\n  assessment_working_days: 0\n  enquiry_working_days: 15\n",
		},
		{
			name: "window date format",
			yaml: "census:\n  year: 2022\n  window:\n    start: \"01/04/2021\"\n    end: \"2022-03-31\"\nthresholds:\n  assessment_working_days: 45\n  enquiry_working_days: 15\n",
		},
		{
			name: "window inverted",
			yaml: "census:\n  year: 2022\n  window:\n    start: \"2022-03-31\"\n    end: \"2021-04-01\"\nthresholds:\n  assessment_working_days: 45\n  enquiry_working_days: 15\n",
		},
		{
			name: "window not a real date",
			yaml: "census:\n  year: 2022\n  window:\n    start: \"2021-02-30\"\n    end: \"2022-03-31\"\nthresholds:\n  assessment_working_days: 45\n  enquiry_working_days: 15\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cincensus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2022, cfg.Census.Year)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
