package planet

import (
	"fmt"
	"log/slog"

	"conquest-server/internal/random"
	"conquest-server/internal/universe"
)

type resourceRange struct {
	lo, hi uint64
}

type classProfile struct {
	class     universe.PlanetClass
	weight    int
	resources map[universe.ResourceType]resourceRange
	modifiers []universe.Modifier
	// optional modifiers rolled independently, each with its own chance
	chances []chanceModifier
}

type chanceModifier struct {
	chance   float64
	modifier universe.Modifier
}

func pct(t universe.ModifierType, v float64) universe.Modifier {
	return universe.Modifier{Type: t, Value: v, IsPercentage: true}
}

// classTable weights sum to 100; the order defines the roll buckets.
var classTable = []classProfile{
	{
		class: universe.PlanetClassBarren, weight: 16,
		resources: ranges(50, 200, 10, 50, 0, 0, 5, 30, 0, 0),
		modifiers: []universe.Modifier{
			pct(universe.ModifierPopulationPenalty, -80),
			pct(universe.ModifierMineralMultiplier, 50),
		},
	},
	{
		class: universe.PlanetClassTerran, weight: 10,
		resources: ranges(30, 150, 20, 100, 100, 500, 10, 80, 80, 300),
		chances: []chanceModifier{
			{0.3, pct(universe.ModifierPopulationMultiplier, 25)},
		},
	},
	{
		class: universe.PlanetClassGasGiant, weight: 10,
		resources: ranges(10, 50, 200, 800, 0, 0, 5, 20, 0, 0),
		modifiers: []universe.Modifier{
			pct(universe.ModifierPopulationPenalty, -100),
			pct(universe.ModifierEnergyMultiplier, 100),
		},
	},
	{
		class: universe.PlanetClassOcean, weight: 10,
		resources: ranges(20, 100, 30, 120, 50, 300, 5, 40, 150, 600),
		modifiers: []universe.Modifier{
			pct(universe.ModifierFoodMultiplier, 75),
		},
		chances: []chanceModifier{
			{0.4, pct(universe.ModifierPopulationMultiplier, 30)},
		},
	},
	{
		class: universe.PlanetClassDesert, weight: 10,
		resources: ranges(40, 200, 100, 400, 10, 80, 15, 60, 5, 30),
		modifiers: []universe.Modifier{
			pct(universe.ModifierResourcePenalty, -60),
			pct(universe.ModifierEnergyMultiplier, 50),
		},
	},
	{
		class: universe.PlanetClassIce, weight: 10,
		resources: ranges(30, 150, 10, 60, 5, 50, 50, 200, 5, 40),
		modifiers: []universe.Modifier{
			pct(universe.ModifierTechnologyMultiplier, 100),
			pct(universe.ModifierPopulationPenalty, -40),
		},
	},
	{
		class: universe.PlanetClassVolcanic, weight: 10,
		resources: ranges(80, 300, 150, 600, 0, 0, 10, 50, 0, 0),
		modifiers: []universe.Modifier{
			pct(universe.ModifierPopulationPenalty, -100),
			pct(universe.ModifierEnergyMultiplier, 150),
			pct(universe.ModifierMineralMultiplier, 80),
		},
	},
	{
		class: universe.PlanetClassToxic, weight: 10,
		resources: ranges(100, 400, 30, 150, 0, 0, 20, 100, 0, 0),
		modifiers: []universe.Modifier{
			pct(universe.ModifierPopulationPenalty, -100),
			{Type: universe.ModifierToxicAtmosphere, Value: 1},
			pct(universe.ModifierMineralMultiplier, 60),
		},
	},
	{
		class: universe.PlanetClassCrystalline, weight: 10,
		resources: ranges(200, 800, 50, 200, 10, 100, 100, 500, 5, 50),
		modifiers: []universe.Modifier{
			pct(universe.ModifierTechnologyMultiplier, 200),
			pct(universe.ModifierMineralMultiplier, 150),
		},
	},
	{
		class: universe.PlanetClassMetallic, weight: 4,
		resources: ranges(300, 1000, 40, 180, 20, 150, 50, 250, 10, 80),
		modifiers: []universe.Modifier{
			pct(universe.ModifierMineralMultiplier, 300),
			pct(universe.ModifierTechnologyMultiplier, 80),
		},
	},
}

// ranges takes lo/hi pairs in minerals, energy, population, technology, food order.
func ranges(v ...uint64) map[universe.ResourceType]resourceRange {
	order := []universe.ResourceType{
		universe.ResourceMinerals,
		universe.ResourceEnergy,
		universe.ResourcePopulation,
		universe.ResourceTechnology,
		universe.ResourceFood,
	}
	out := make(map[universe.ResourceType]resourceRange, len(order))
	for i, t := range order {
		out[t] = resourceRange{lo: v[2*i], hi: v[2*i+1]}
	}
	return out
}

var (
	namePrefixes  = []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta", "Eta", "Theta"}
	nameSuffixes  = []string{"Prime", "Secundus", "Tertius", "Quartus", "Quintus", "Major", "Minor", "Nova"}
	romanNumerals = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}
)

type Generator struct {
	rng      random.Source
	counters *universe.Counters
	logger   *slog.Logger
}

func NewGenerator(rng random.Source, counters *universe.Counters, logger *slog.Logger) *Generator {
	return &Generator{
		rng:      rng,
		counters: counters,
		logger:   logger,
	}
}

// GeneratePlanet rolls a class and builds an unexplored planet of it.
func (g *Generator) GeneratePlanet(position universe.Position, systemID uint64) *universe.Planet {
	return g.GeneratePlanetWithClass(g.rollClass(), position, systemID)
}

func (g *Generator) GeneratePlanetWithClass(class universe.PlanetClass, position universe.Position, systemID uint64) *universe.Planet {
	profile := profileFor(class)

	p := &universe.Planet{
		ID:            g.counters.Planet(),
		Name:          g.generateName(),
		Class:         class,
		State:         universe.PlanetStateUnexplored,
		Resources:     g.rollResources(profile),
		Modifiers:     g.rollModifiers(profile),
		Buildings:     []universe.Building{},
		Storage:       make(universe.Resources),
		Position:      position,
		SolarSystemID: systemID,
	}

	g.logger.Debug("Planet generated",
		"component", "planet_generator",
		"planet_id", p.ID,
		"class", p.Class,
		"system_id", systemID,
	)
	return p
}

func profileFor(class universe.PlanetClass) classProfile {
	for _, p := range classTable {
		if p.class == class {
			return p
		}
	}
	return classTable[0]
}

func (g *Generator) rollClass() universe.PlanetClass {
	roll := g.rng.IntN(100)
	current := 0
	for _, p := range classTable {
		current += p.weight
		if roll < current {
			return p.class
		}
	}
	return universe.PlanetClassBarren
}

func (g *Generator) rollResources(profile classProfile) universe.Resources {
	out := make(universe.Resources, len(universe.BasicResources))
	for _, t := range universe.BasicResources {
		r := profile.resources[t]
		if amount := random.Uint64Range(g.rng, r.lo, r.hi); amount > 0 {
			out[t] = amount
		}
	}
	return out
}

func (g *Generator) rollModifiers(profile classProfile) []universe.Modifier {
	mods := make([]universe.Modifier, 0, len(profile.modifiers)+3)
	mods = append(mods, profile.modifiers...)
	for _, c := range profile.chances {
		if random.Chance(g.rng, c.chance) {
			mods = append(mods, c.modifier)
		}
	}
	if random.Chance(g.rng, 0.2) {
		mods = append(mods, pct(universe.ModifierDefensiveBonus, random.FloatRange(g.rng, 10, 50)))
	}
	if random.Chance(g.rng, 0.15) {
		mods = append(mods, pct(universe.ModifierResearchBonus, random.FloatRange(g.rng, 20, 80)))
	}
	return mods
}

func (g *Generator) generateName() string {
	prefix := namePrefixes[g.rng.IntN(len(namePrefixes))]
	if random.Chance(g.rng, 0.3) {
		return fmt.Sprintf("%s %s", prefix, nameSuffixes[g.rng.IntN(len(nameSuffixes))])
	}
	return fmt.Sprintf("%s %s", prefix, romanNumerals[g.rng.IntN(len(romanNumerals))])
}
