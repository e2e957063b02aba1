package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "community.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeTempConfig(t, `{
		"professions": {"blacksmith": {"skill_name": "smithing", "good_produced": "tools"}},
		"consumption": {"tools": 1.5}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := cfg.Professions["blacksmith"]
	if *p.MaxApprenticesPerMaster != DefaultMaxApprenticesPerMaster {
		t.Errorf("got %d, want default %d", *p.MaxApprenticesPerMaster, DefaultMaxApprenticesPerMaster)
	}
	if *p.ApprenticeshipDurationYrs != DefaultApprenticeshipDurationYrs {
		t.Errorf("got %d, want default %d", *p.ApprenticeshipDurationYrs, DefaultApprenticeshipDurationYrs)
	}
	if *p.BaseUnitsPerYear != DefaultBaseUnitsPerYear {
		t.Errorf("got %v, want default %v", *p.BaseUnitsPerYear, DefaultBaseUnitsPerYear)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := writeTempConfig(t, `{not json`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed JSON")
	} else if _, ok := err.(*ErrInvalid); !ok {
		t.Errorf("got error type %T, want *ErrInvalid", err)
	}
}

func TestLoadRejectsEmptyProfessions(t *testing.T) {
	path := writeTempConfig(t, `{"professions": {}, "consumption": {}}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for empty professions")
	}
}

func TestLoadRejectsMissingSkillName(t *testing.T) {
	path := writeTempConfig(t, `{
		"professions": {"blacksmith": {"good_produced": "tools"}},
		"consumption": {}
	}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a profession missing skill_name")
	}
}

func TestToEconomyRulesConvertsBuildingRequired(t *testing.T) {
	raw := `{
		"professions": {
			"blacksmith": {"skill_name": "smithing", "good_produced": "tools", "building_required": "forge"},
			"farmer": {"skill_name": "farming", "good_produced": "grain"}
		},
		"consumption": {"tools": 1, "grain": 2}
	}`
	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	rules := cfg.ToEconomyRules()
	if rules["blacksmith"].BuildingRequired != "forge" {
		t.Errorf("got %q, want forge", rules["blacksmith"].BuildingRequired)
	}
	if rules["farmer"].BuildingRequired != "" {
		t.Errorf("got %q, want empty string for no building requirement", rules["farmer"].BuildingRequired)
	}
}
