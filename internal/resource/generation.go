package resource

import (
	"conquest-server/internal/universe"
)

var baseRates = map[universe.ResourceType]float64{
	universe.ResourceEnergy:     1.0,
	universe.ResourceMinerals:   0.8,
	universe.ResourcePopulation: 0.5,
	universe.ResourceTechnology: 0.3,
	universe.ResourceFood:       0.7,
}

var multiplierTargets = map[universe.ModifierType]universe.ResourceType{
	universe.ModifierEnergyMultiplier:     universe.ResourceEnergy,
	universe.ModifierMineralMultiplier:    universe.ResourceMinerals,
	universe.ModifierPopulationMultiplier: universe.ResourcePopulation,
	universe.ModifierTechnologyMultiplier: universe.ResourceTechnology,
	universe.ModifierFoodMultiplier:       universe.ResourceFood,
	universe.ModifierPopulationPenalty:    universe.ResourcePopulation,
}

// GenerationContext carries everything outside the planet that shapes its output.
type GenerationContext struct {
	SystemModifiers []universe.Modifier
	GalaxyModifiers []universe.Modifier
	// ModifierScale stretches system and galaxy modifier values.
	ModifierScale      float64
	Rate               float64
	ResourceMultiplier float64
	ResearchSpeed      float64
	Speed              universe.GameSpeed
}

func (c GenerationContext) withDefaults() GenerationContext {
	if c.ModifierScale == 0 {
		c.ModifierScale = 1
	}
	if c.Rate == 0 {
		c.Rate = 1
	}
	if c.ResourceMultiplier == 0 {
		c.ResourceMultiplier = 1
	}
	if c.ResearchSpeed == 0 {
		c.ResearchSpeed = 1
	}
	if c.Speed == 0 {
		c.Speed = universe.SpeedNormal
	}
	return c
}

func affects(m universe.ModifierType, t universe.ResourceType) bool {
	if m == universe.ModifierResourcePenalty {
		return true
	}
	target, ok := multiplierTargets[m]
	return ok && target == t
}

func apply(rate float64, m universe.Modifier, scale float64) float64 {
	v := m.Value * scale
	if m.IsPercentage {
		return rate * (1 + v/100)
	}
	return rate + v
}

// GenerationRate is the per unit rate of t on planet p before the planet's
// base amount is applied.
func GenerationRate(p *universe.Planet, t universe.ResourceType, ctx GenerationContext) float64 {
	ctx = ctx.withDefaults()
	rate, ok := baseRates[t]
	if !ok {
		return 0
	}
	for _, m := range p.Modifiers {
		if affects(m.Type, t) {
			rate = apply(rate, m, 1)
		}
	}
	for _, m := range ctx.SystemModifiers {
		if affects(m.Type, t) {
			rate = apply(rate, m, ctx.ModifierScale)
		}
	}
	for _, m := range ctx.GalaxyModifiers {
		if affects(m.Type, t) {
			rate = apply(rate, m, ctx.ModifierScale)
		}
	}
	if rate < 0 {
		return 0
	}
	return rate
}

// PlanetGeneration is what p yields in one tick.
func (l *Ledger) PlanetGeneration(p *universe.Planet, ctx GenerationContext) universe.Resources {
	ctx = ctx.withDefaults()
	out := make(universe.Resources)
	for _, t := range universe.BasicResources {
		base := p.Resources.Get(t)
		if base == 0 {
			continue
		}
		amount := float64(base) * GenerationRate(p, t, ctx) * ctx.Rate * ctx.ResourceMultiplier
		if t == universe.ResourceTechnology {
			amount *= ctx.ResearchSpeed
		}
		amount *= float64(ctx.Speed)
		if v := uint64(amount); v > 0 {
			out[t] = v
		}
	}
	return out
}

// EmpireGeneration sums PlanetGeneration over every owned planet. contextFor
// supplies each planet's surroundings.
func (l *Ledger) EmpireGeneration(planets []*universe.Planet, contextFor func(*universe.Planet) GenerationContext) universe.Resources {
	total := make(universe.Resources)
	for _, p := range planets {
		if !p.State.Owned() {
			continue
		}
		l.Add(total, l.PlanetGeneration(p, contextFor(p)))
	}
	return total
}
