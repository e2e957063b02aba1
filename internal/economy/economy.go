// Package economy holds profession rules, consumption needs, production
// capacities, and the latest market-gap snapshot, per spec.md §3 and §4.4.
// Re-keyed from the teacher's per-settlement supply/demand/price record in
// internal/economy/goods.go (Market/MarketEntry) down to the single
// community-wide aggregate the spec calls for, and stripped of the
// teacher's price-resolution and conjugate-field mechanics (ResolvePrice,
// MarketField, its phi package), which belong to a per-agent trading
// economy that spec.md's Non-goals exclude (no individual economic
// accounts).
package economy

import "math"

// ProfessionRule describes one profession's shape, loaded once from
// configuration.
type ProfessionRule struct {
	Name                    string
	SkillName               string
	GoodProduced            string
	MaxApprenticesPerMaster int
	ApprenticeshipDuration  int    // years
	BuildingRequired        string // empty if none
	BaseUnitsPerYear        float64
}

// ConsumptionNeed tracks one good's per-capita demand and the last-known
// population it was computed against.
type ConsumptionNeed struct {
	Good               string
	UnitsPerCapitaYear float64
	CurrentPopulation  int
}

// AnnualDemand returns units_per_capita_year * current_population.
func (c *ConsumptionNeed) AnnualDemand() float64 {
	return c.UnitsPerCapitaYear * float64(c.CurrentPopulation)
}

// ProductionCapacity tracks one good's production-side state.
type ProductionCapacity struct {
	Good                string
	Profession          string
	CurrentPractitioners int
	AvgSkillMultiplier  float64
	BaseUnitsPerYear    float64
}

// AnnualOutput returns base * practitioners * multiplier.
func (p *ProductionCapacity) AnnualOutput() float64 {
	return p.BaseUnitsPerYear * float64(p.CurrentPractitioners) * p.AvgSkillMultiplier
}

// Economy is the aggregate economic state, recomputed once per simulated
// year by UpdateCommunityEconomyEvent and read by the career market and
// resource-stress check in between.
type Economy struct {
	Professions map[string]ProfessionRule
	Consumption map[string]*ConsumptionNeed
	Production  map[string]*ProductionCapacity
	MarketGaps  map[string]float64
}

// New builds an Economy from profession rules and per-capita consumption
// figures, seeding one ProductionCapacity per profession (keyed by the good
// it produces) and one ConsumptionNeed per configured good.
func New(professions map[string]ProfessionRule, consumptionPerCapita map[string]float64) *Economy {
	e := &Economy{
		Professions: professions,
		Consumption: make(map[string]*ConsumptionNeed, len(consumptionPerCapita)),
		Production:  make(map[string]*ProductionCapacity, len(professions)),
		MarketGaps:  make(map[string]float64, len(consumptionPerCapita)),
	}
	for good, units := range consumptionPerCapita {
		e.Consumption[good] = &ConsumptionNeed{Good: good, UnitsPerCapitaYear: units}
	}
	for name, rule := range professions {
		e.Production[rule.GoodProduced] = &ProductionCapacity{
			Good:             rule.GoodProduced,
			Profession:       name,
			BaseUnitsPerYear: rule.BaseUnitsPerYear,
		}
	}
	return e
}

// MarketGap computes demand/supply for one good: 0 for zero demand, +Inf
// for positive demand over zero supply.
func MarketGap(demand, supply float64) float64 {
	if demand <= 0 {
		return 0
	}
	if supply <= 0 {
		return math.Inf(1)
	}
	return demand / supply
}

// RecomputeGaps refreshes MarketGaps from the current Consumption/
// Production snapshots. Called only from UpdateCommunityEconomyEvent, per
// spec.md §4.4.
func (e *Economy) RecomputeGaps() {
	for good, need := range e.Consumption {
		supply := 0.0
		if prod, ok := e.Production[good]; ok {
			supply = prod.AnnualOutput()
		}
		e.MarketGaps[good] = MarketGap(need.AnnualDemand(), supply)
	}
}
