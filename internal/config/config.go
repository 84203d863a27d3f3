// Package config loads and validates the run configuration: the census
// window and the working-day thresholds. These are externally supplied
// constants, never hard-coded business logic.
//
// The YAML file is unified with an embedded CUE schema before it is
// accepted, so malformed configuration fails loudly and early.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/careworks/cincensus/internal/model"
	"github.com/careworks/cincensus/internal/rules"
)

//go:embed schema.cue
var schemaCUE string

// Config is the validated run configuration.
type Config struct {
	Census struct {
		Year   int `yaml:"year" json:"year"`
		Window *struct {
			Start string `yaml:"start" json:"start"`
			End   string `yaml:"end" json:"end"`
		} `yaml:"window,omitempty" json:"window,omitempty"`
	} `yaml:"census" json:"census"`

	Thresholds struct {
		AssessmentWorkingDays int `yaml:"assessment_working_days" json:"assessment_working_days"`
		EnquiryWorkingDays    int `yaml:"enquiry_working_days" json:"enquiry_working_days"`
	} `yaml:"thresholds" json:"thresholds"`
}

// Default returns the conventional configuration for a census year:
// a 1 April to 31 March window, 45 working days for assessments, 15 for
// enquiries.
func Default(year int) *Config {
	cfg := &Config{}
	cfg.Census.Year = year
	cfg.Thresholds.AssessmentWorkingDays = 45
	cfg.Thresholds.EnquiryWorkingDays = 15
	return cfg
}

// Load reads, schema-checks and decodes a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse validates YAML bytes against the schema and decodes them.
func Parse(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config is not valid YAML: %w", err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE).LookupPath(configPath())
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("internal schema error: %w", err)
	}
	unified := schema.Unify(ctx.Encode(raw))
	if err := unified.Validate(); err != nil {
		return nil, fmt.Errorf("config rejected by schema: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Window resolves the census window: explicit dates when configured, the
// conventional April-to-March window for the census year otherwise.
func (c *Config) Window() rules.Window {
	if c.Census.Window != nil {
		start, _ := model.ParseDate(c.Census.Window.Start)
		end, _ := model.ParseDate(c.Census.Window.End)
		return rules.Window{Start: start, End: end}
	}
	return rules.Window{
		Start: model.NewDate(c.Census.Year-1, time.April, 1),
		End:   model.NewDate(c.Census.Year, time.March, 31),
	}
}

// RuleThresholds adapts the configured day counts for the rule engine.
func (c *Config) RuleThresholds() rules.Thresholds {
	return rules.Thresholds{
		AssessmentDays: c.Thresholds.AssessmentWorkingDays,
		EnquiryDays:    c.Thresholds.EnquiryWorkingDays,
	}
}

func configPath() cue.Path { return cue.ParsePath("#Config") }

// check verifies what the schema's regex cannot: the window dates must be
// real dates in the right order.
func (c *Config) check() error {
	if c.Census.Window == nil {
		return nil
	}
	start, err := model.ParseDate(c.Census.Window.Start)
	if err != nil {
		return fmt.Errorf("config window start: %w", err)
	}
	end, err := model.ParseDate(c.Census.Window.End)
	if err != nil {
		return fmt.Errorf("config window end: %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("config window ends %s before it starts %s", end, start)
	}
	return nil
}
