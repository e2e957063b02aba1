package economy

import (
	"math"
	"testing"
)

func TestMarketGapEdgeCases(t *testing.T) {
	if got := MarketGap(0, 5); got != 0 {
		t.Errorf("zero demand should give gap 0, got %v", got)
	}
	if got := MarketGap(10, 0); !math.IsInf(got, 1) {
		t.Errorf("positive demand over zero supply should give +Inf, got %v", got)
	}
	if got := MarketGap(10, 5); got != 2 {
		t.Errorf("got %v, want 2", got)
	}
}

func TestRecomputeGapsUsesLatestSnapshot(t *testing.T) {
	e := New(
		map[string]ProfessionRule{"blacksmith": {Name: "blacksmith", GoodProduced: "tools", BaseUnitsPerYear: 10}},
		map[string]float64{"tools": 1},
	)
	e.Consumption["tools"].CurrentPopulation = 20
	e.Production["tools"].CurrentPractitioners = 1
	e.Production["tools"].AvgSkillMultiplier = 1

	e.RecomputeGaps()

	want := 20.0 / 10.0
	if got := e.MarketGaps["tools"]; got != want {
		t.Errorf("got gap %v, want %v", got, want)
	}
}

func TestRecomputeGapsWithNoProducers(t *testing.T) {
	e := New(
		map[string]ProfessionRule{},
		map[string]float64{"grain": 2},
	)
	e.Consumption["grain"].CurrentPopulation = 5

	e.RecomputeGaps()

	if got := e.MarketGaps["grain"]; !math.IsInf(got, 1) {
		t.Errorf("got %v, want +Inf for demand with no producers", got)
	}
}
