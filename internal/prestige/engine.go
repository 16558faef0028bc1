package prestige

import (
	"log/slog"
	"math"
	"slices"

	"conquest-server/internal/universe"
)

const (
	basePoints           = 1000
	baseRequirement      = 1000.0
	requirementScaling   = 1.5
	requirementStep      = 10000.0
	requiredProgress     = 0.8
	startingResourcesAt  = 10000
	galaxyModifierAt     = 50000
	resourcePerPoint     = 0.001
	researchPerPoint     = 0.0005
	startingResourceMult = 2.0
	galaxyModifierMult   = 1.5
)

var modifierBonuses = map[universe.ModifierType]universe.PrestigeBonusType{
	universe.ModifierResearchBonus:        universe.BonusResearchSpeed,
	universe.ModifierMineralMultiplier:    universe.BonusResourceMultiplier,
	universe.ModifierEnergyMultiplier:     universe.BonusResourceMultiplier,
	universe.ModifierTechnologyMultiplier: universe.BonusResearchSpeed,
	universe.ModifierDefensiveBonus:       universe.BonusConquestSpeed,
	universe.ModifierTradeBonus:           universe.BonusTransportEfficiency,
	universe.ModifierManufacturingBonus:   universe.BonusBuildingEfficiency,
}

type Statistics struct {
	TotalPrestige   uint64  `json:"total_prestige"`
	TotalMultiplier float64 `json:"total_multiplier"`
	NextRequirement uint64  `json:"next_requirement"`
	BonusCount      int     `json:"bonus_count"`
}

type Engine struct {
	logger *slog.Logger
}

func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger}
}

func timeBonus(ticks uint64) uint64 {
	switch {
	case ticks <= 1000:
		return 500
	case ticks <= 5000:
		return 300
	case ticks <= 10000:
		return 150
	default:
		return 50
	}
}

// GalaxyPrestigePoints scores a finished galaxy. efficiency is on a 0..100 scale.
func (e *Engine) GalaxyPrestigePoints(g *universe.Galaxy, conquestTicks uint64, efficiency float64) uint64 {
	points := uint64(basePoints) + timeBonus(conquestTicks)
	if efficiency > 0 {
		points += uint64(efficiency * 0.5)
	}
	for _, m := range g.Modifiers {
		var v float64
		switch m.Type {
		case universe.ModifierResearchBonus:
			v = m.Value
		case universe.ModifierMineralMultiplier:
			v = m.Value * 0.5
		case universe.ModifierEnergyMultiplier:
			v = m.Value * 0.3
		}
		if v > 0 {
			points += uint64(v)
		}
	}
	return points
}

// Requirements is the prestige total needed before the next prestige.
func (e *Engine) Requirements(current uint64) uint64 {
	return uint64(baseRequirement * math.Pow(requirementScaling, float64(current)/requirementStep))
}

func (e *Engine) CanPrestige(current uint64, progress float64) bool {
	return progress >= requiredProgress && current >= e.Requirements(current)
}

// EfficiencyScore averages min(spent/generated, 1) over every resource that
// was generated, scaled to 0..100.
func (e *Engine) EfficiencyScore(spent, generated universe.Resources) float64 {
	sum, count := 0.0, 0
	for t, used := range spent {
		gen := generated.Get(t)
		if gen == 0 {
			continue
		}
		sum += math.Min(float64(used)/float64(gen), 1)
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count) * 100
}

// CreateBonuses derives the bonuses earned by points from one galaxy. The
// universal bonuses scale with points; the one-time unlocks trigger once the
// cumulative total reaches their threshold and are skipped when already held.
func (e *Engine) CreateBonuses(points, total uint64, galaxyModifiers []universe.Modifier, held []universe.PrestigeBonus) []universe.PrestigeBonus {
	bonuses := []universe.PrestigeBonus{
		{Type: universe.BonusResourceMultiplier, Value: 1 + float64(points)*resourcePerPoint, IsPercentage: true},
		{Type: universe.BonusResearchSpeed, Value: 1 + float64(points)*researchPerPoint, IsPercentage: true},
	}
	for _, m := range galaxyModifiers {
		t, ok := modifierBonuses[m.Type]
		if !ok {
			continue
		}
		bonuses = append(bonuses, universe.PrestigeBonus{Type: t, Value: 1 + m.Value*0.01, IsPercentage: true})
	}
	if total >= startingResourcesAt && !hasBonus(held, universe.BonusStartingResources) {
		bonuses = append(bonuses, universe.PrestigeBonus{Type: universe.BonusStartingResources, Value: startingResourceMult, IsPercentage: true})
	}
	if total >= galaxyModifierAt && !hasBonus(held, universe.BonusGalaxyModifier) {
		bonuses = append(bonuses, universe.PrestigeBonus{Type: universe.BonusGalaxyModifier, Value: galaxyModifierMult, IsPercentage: true})
	}
	return bonuses
}

func hasBonus(bonuses []universe.PrestigeBonus, t universe.PrestigeBonusType) bool {
	return slices.ContainsFunc(bonuses, func(b universe.PrestigeBonus) bool { return b.Type == t })
}

// ApplyBonuses appends bonuses to the persisted list. Starting resource
// bonuses multiply the current empire pool right away; every other type is
// read back through BonusValue by the formulas that use it.
func (e *Engine) ApplyBonuses(state *universe.State, bonuses []universe.PrestigeBonus) {
	for _, b := range bonuses {
		if b.Type != universe.BonusStartingResources {
			continue
		}
		for t, v := range state.EmpireResources {
			state.EmpireResources[t] = uint64(float64(v) * b.Value)
		}
	}
	state.PrestigeBonuses = append(state.PrestigeBonuses, bonuses...)

	e.logger.Debug("Prestige bonuses applied",
		"component", "prestige",
		"added", len(bonuses),
		"total", len(state.PrestigeBonuses),
	)
}

// BonusValue multiplies every bonus of type t. It is 1 when there are none.
func BonusValue(bonuses []universe.PrestigeBonus, t universe.PrestigeBonusType) float64 {
	v := 1.0
	for _, b := range bonuses {
		if b.Type == t {
			v *= b.Value
		}
	}
	return v
}

func TotalMultiplier(bonuses []universe.PrestigeBonus) float64 {
	v := 1.0
	for _, b := range bonuses {
		v *= b.Value
	}
	return v
}

func (e *Engine) Statistics(total uint64, bonuses []universe.PrestigeBonus) Statistics {
	return Statistics{
		TotalPrestige:   total,
		TotalMultiplier: TotalMultiplier(bonuses),
		NextRequirement: e.Requirements(total),
		BonusCount:      len(bonuses),
	}
}
