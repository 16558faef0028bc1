package game

import (
	"fmt"
	"log/slog"
	"time"

	"conquest-server/internal/conquest"
	"conquest-server/internal/galaxy"
	"conquest-server/internal/prestige"
	"conquest-server/internal/production"
	"conquest-server/internal/random"
	"conquest-server/internal/resource"
	"conquest-server/internal/snapshot"
	"conquest-server/internal/transport"
	"conquest-server/internal/universe"
)

// Engine owns the empire state and every subsystem that mutates it. It is
// not safe for concurrent use; Runner serializes access.
type Engine struct {
	state   *universe.State
	balance Balance
	rng     random.Source

	ledger   *resource.Ledger
	graph    *production.Graph
	network  *transport.Network
	conquest *conquest.Service
	prestige *prestige.Engine
	logger   *slog.Logger
}

type Option func(*engineOptions)

type engineOptions struct {
	seed    uint64
	rng     random.Source
	logger  *slog.Logger
	hasSeed bool
}

func WithSeed(seed uint64) Option {
	return func(o *engineOptions) {
		o.seed = seed
		o.hasSeed = true
	}
}

// WithRandomSource replaces the seeded generator used for every galaxy.
func WithRandomSource(src random.Source) Option {
	return func(o *engineOptions) { o.rng = src }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) { o.logger = logger }
}

// New builds an engine with a freshly generated starting galaxy.
func New(balance Balance, opts ...Option) *Engine {
	o := engineOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.hasSeed {
		o.seed = uint64(time.Now().UnixNano())
	}

	ledger := resource.NewLedger()
	e := &Engine{
		state:    universe.NewState(o.seed),
		balance:  balance.withDefaults(),
		rng:      o.rng,
		ledger:   ledger,
		graph:    production.NewGraph(o.logger),
		network:  transport.NewNetwork(o.logger),
		conquest: conquest.NewService(ledger, o.logger),
		prestige: prestige.NewEngine(o.logger),
		logger:   o.logger,
	}
	e.initialize()
	return e
}

func (e *Engine) initialize() {
	logger := e.logger.With("component", "engine", "operation", "initialize", "seed", e.state.Seed)

	e.startGalaxy(e.balance.GalaxyName)
	e.state.EmpireResources = e.balance.StartingResources.Clone()

	logger.Info("Game initialized",
		"galaxies", len(e.state.Galaxies),
		"systems", len(e.state.SolarSystems),
		"planets", len(e.state.Planets),
	)
}

// sourceFor gives each galaxy its own stream so a persisted seed regenerates
// the same universe.
func (e *Engine) sourceFor(galaxyID uint64) random.Source {
	if e.rng != nil {
		return e.rng
	}
	return random.Derive(e.state.Seed, galaxyID)
}

// startGalaxy replaces the current galaxy with a newly generated one. The
// first planet of the first system starts conquered and that system starts
// explored.
func (e *Engine) startGalaxy(name string) {
	s := e.state
	gen := galaxy.NewGenerator(e.sourceFor(s.Counters.NextGalaxyID), &s.Counters, e.logger)
	gal, systems, planets := gen.GenerateGalaxy(name, e.balance.SystemsPerGalaxy)

	s.Galaxies = map[uint64]*universe.Galaxy{gal.ID: gal}
	s.SolarSystems = make(map[uint64]*universe.SolarSystem, len(systems))
	for _, sys := range systems {
		s.SolarSystems[sys.ID] = sys
	}
	s.Planets = make(map[uint64]*universe.Planet, len(planets))
	for _, p := range planets {
		s.Planets[p.ID] = p
	}
	s.Routes = make(map[uint64]*universe.TransportRoute)
	s.InTransit = nil
	s.DiscoveredSystems = universe.NewIDSet()
	s.ExploredSystems = universe.NewIDSet()
	s.CycleGenerated = make(universe.Resources)
	s.CycleSpent = make(universe.Resources)
	s.CurrentGalaxy = gal.ID

	if len(systems) == 0 {
		return
	}
	first := systems[0]
	s.DiscoveredSystems.Add(first.ID)
	s.ExploredSystems.Add(first.ID)
	if len(first.Planets) > 0 {
		if p, ok := s.Planets[first.Planets[0]]; ok {
			p.State = universe.PlanetStateConquered
			galaxy.RefreshConquered(s, p.ID)
			e.logger.Debug("Starting planet conquered",
				"component", "engine",
				"planet_id", p.ID,
				"system_id", first.ID,
			)
		}
	}
}

// Tick advances the simulation by one step scaled by the game speed. It
// does nothing while paused.
func (e *Engine) Tick() {
	if e.state.IsPaused {
		return
	}

	e.updateResourceGeneration()
	e.updateProduction()
	e.updateTransport()
	e.updateTerraforming()

	e.state.CurrentTick += uint64(e.state.Speed)
}

func (e *Engine) bonus(t universe.PrestigeBonusType) float64 {
	return prestige.BonusValue(e.state.PrestigeBonuses, t)
}

func (e *Engine) generationContext(p *universe.Planet) resource.GenerationContext {
	ctx := resource.GenerationContext{
		ModifierScale:      e.bonus(universe.BonusGalaxyModifier),
		Rate:               e.balance.GenerationRate,
		ResourceMultiplier: e.bonus(universe.BonusResourceMultiplier),
		ResearchSpeed:      e.bonus(universe.BonusResearchSpeed),
		Speed:              e.state.Speed,
	}
	if sys, ok := e.state.SolarSystems[p.SolarSystemID]; ok {
		ctx.SystemModifiers = sys.Modifiers
		if gal, ok := e.state.Galaxies[sys.GalaxyID]; ok {
			ctx.GalaxyModifiers = gal.Modifiers
		}
	}
	return ctx
}

func (e *Engine) ownedPlanets() []*universe.Planet {
	var out []*universe.Planet
	for _, id := range e.state.SortedPlanetIDs() {
		if p := e.state.Planets[id]; p.State.Owned() {
			out = append(out, p)
		}
	}
	return out
}

// extraCapacity is storage granted by housing on owned planets.
func (e *Engine) extraCapacity() universe.Resources {
	var housing uint64
	for _, p := range e.ownedPlanets() {
		for _, b := range p.Buildings {
			if b.Type == universe.BuildingHousing && b.IsActive {
				housing += production.HousingCapacity(b.Level)
			}
		}
	}
	return universe.Resources{universe.ResourcePopulation: housing}
}

func (e *Engine) updateResourceGeneration() {
	generated := e.ledger.EmpireGeneration(e.ownedPlanets(), e.generationContext)
	added := e.ledger.ClampAdd(e.state.EmpireResources, generated, e.extraCapacity())
	e.ledger.Add(e.state.CycleGenerated, added)
}

func (e *Engine) productionBonus(b universe.BuildingType) float64 {
	bonus := e.bonus(universe.BonusBuildingEfficiency)
	if b == universe.BuildingResearch {
		bonus *= e.bonus(universe.BonusResearchSpeed)
	}
	return bonus
}

func (e *Engine) updateProduction() {
	for _, p := range e.ownedPlanets() {
		for i := range p.Buildings {
			b := &p.Buildings[i]
			for _, out := range e.graph.UpdateBuildingProduction(b, p, e.state.Speed, e.productionBonus(b.Type)) {
				p.Storage[out.Type] += out.Amount
			}
		}
	}
}

func (e *Engine) updateTransport() {
	for _, shipment := range e.network.UpdateTransit(&e.state.InTransit, e.state.Speed) {
		p, ok := e.state.Planets[shipment.ToPlanet]
		if !ok {
			e.logger.Warn("Shipment destination missing",
				"component", "engine",
				"shipment_id", shipment.ID,
				"planet_id", shipment.ToPlanet,
			)
			continue
		}
		p.Storage[shipment.ResourceType] += shipment.Amount
	}
}

func (e *Engine) updateTerraforming() {
	bonus := e.bonus(universe.BonusTerraformingSpeed)
	for _, id := range e.state.SortedPlanetIDs() {
		p := e.state.Planets[id]
		for _, target := range e.conquest.UpdateTerraforming(p, e.state.Speed, bonus) {
			e.logger.Debug("Terraforming completed",
				"component", "engine",
				"planet_id", p.ID,
				"target", target,
			)
		}
	}
}

// Serialize encodes the whole empire as an opaque blob.
func (e *Engine) Serialize() ([]byte, error) {
	return snapshot.Encode(e.state)
}

// Deserialize decodes blob and fills defaults for anything it omits. The
// engine itself is left untouched.
func (e *Engine) Deserialize(blob []byte) (*universe.State, error) {
	state, err := snapshot.Decode(blob)
	if err != nil {
		return nil, err
	}
	state.Normalize(e.balance.StartingResources)
	return state, nil
}

// Restore swaps in a previously deserialized state.
func (e *Engine) Restore(state *universe.State) {
	e.state = state
}

// Load restores blob, leaving the current state in place when it cannot be
// decoded.
func (e *Engine) Load(blob []byte) error {
	logger := e.logger.With("component", "engine", "operation", "load")

	state, err := e.Deserialize(blob)
	if err != nil {
		logger.Warn("Failed to load snapshot", "error", err)
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	e.Restore(state)

	logger.Info("Snapshot loaded",
		"tick", state.CurrentTick,
		"planets", len(state.Planets),
		"prestige_points", state.PrestigePoints,
	)
	return nil
}
