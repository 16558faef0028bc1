package universe

import "slices"

// StateVersion is bumped whenever the persisted layout changes incompatibly.
const StateVersion = 1

// Counters hand out entity ids. They only ever increase, including across prestige.
type Counters struct {
	NextGalaxyID   uint64 `json:"next_galaxy_id"`
	NextSystemID   uint64 `json:"next_system_id"`
	NextPlanetID   uint64 `json:"next_planet_id"`
	NextBuildingID uint64 `json:"next_building_id"`
	NextProjectID  uint64 `json:"next_project_id"`
	NextRouteID    uint64 `json:"next_route_id"`
	NextShipmentID uint64 `json:"next_shipment_id"`
}

func NewCounters() Counters {
	return Counters{1, 1, 1, 1, 1, 1, 1}
}

func next(c *uint64) uint64 {
	if *c == 0 {
		*c = 1
	}
	id := *c
	*c++
	return id
}

func (c *Counters) Galaxy() uint64   { return next(&c.NextGalaxyID) }
func (c *Counters) System() uint64   { return next(&c.NextSystemID) }
func (c *Counters) Planet() uint64   { return next(&c.NextPlanetID) }
func (c *Counters) Building() uint64 { return next(&c.NextBuildingID) }
func (c *Counters) Project() uint64  { return next(&c.NextProjectID) }
func (c *Counters) Route() uint64    { return next(&c.NextRouteID) }
func (c *Counters) Shipment() uint64 { return next(&c.NextShipmentID) }

// State is the whole persisted empire.
type State struct {
	Version       uint32    `json:"version"`
	Seed          uint64    `json:"seed"`
	CurrentTick   uint64    `json:"current_tick"`
	Speed         GameSpeed `json:"speed"`
	IsPaused      bool      `json:"is_paused"`
	CurrentGalaxy uint64    `json:"current_galaxy"`

	Galaxies     map[uint64]*Galaxy         `json:"galaxies"`
	SolarSystems map[uint64]*SolarSystem    `json:"solar_systems"`
	Planets      map[uint64]*Planet         `json:"planets"`
	Routes       map[uint64]*TransportRoute `json:"routes"`
	InTransit    []ResourceInTransit        `json:"in_transit"`

	EmpireResources   Resources       `json:"empire_resources"`
	PrestigeBonuses   []PrestigeBonus `json:"prestige_bonuses"`
	PrestigePoints    uint64          `json:"prestige_points"`
	DiscoveredSystems IDSet           `json:"discovered_systems"`
	ExploredSystems   IDSet           `json:"explored_systems"`
	Counters          Counters        `json:"counters"`

	// Per galaxy cycle bookkeeping used for the efficiency score.
	CycleGenerated Resources `json:"cycle_generated"`
	CycleSpent     Resources `json:"cycle_spent"`
}

func NewState(seed uint64) *State {
	return &State{
		Version:           StateVersion,
		Seed:              seed,
		Speed:             SpeedNormal,
		Galaxies:          make(map[uint64]*Galaxy),
		SolarSystems:      make(map[uint64]*SolarSystem),
		Planets:           make(map[uint64]*Planet),
		Routes:            make(map[uint64]*TransportRoute),
		EmpireResources:   make(Resources),
		DiscoveredSystems: NewIDSet(),
		ExploredSystems:   NewIDSet(),
		Counters:          NewCounters(),
		CycleGenerated:    make(Resources),
		CycleSpent:        make(Resources),
	}
}

// Normalize fills in defaults for fields a snapshot may omit. starting is
// used when the empire pool is absent.
func (s *State) Normalize(starting Resources) {
	if s.Version == 0 {
		s.Version = StateVersion
	}
	if !s.Speed.Valid() {
		s.Speed = SpeedNormal
	}
	if s.Galaxies == nil {
		s.Galaxies = make(map[uint64]*Galaxy)
	}
	if s.SolarSystems == nil {
		s.SolarSystems = make(map[uint64]*SolarSystem)
	}
	if s.Planets == nil {
		s.Planets = make(map[uint64]*Planet)
	}
	if s.Routes == nil {
		s.Routes = make(map[uint64]*TransportRoute)
	}
	if s.EmpireResources == nil {
		s.EmpireResources = starting.Clone()
	}
	if s.DiscoveredSystems == nil {
		s.DiscoveredSystems = NewIDSet()
	}
	if s.ExploredSystems == nil {
		s.ExploredSystems = NewIDSet()
	}
	if s.CycleGenerated == nil {
		s.CycleGenerated = make(Resources)
	}
	if s.CycleSpent == nil {
		s.CycleSpent = make(Resources)
	}
	dropNil(s.Galaxies)
	dropNil(s.SolarSystems)
	dropNil(s.Planets)
	dropNil(s.Routes)
	for _, p := range s.Planets {
		if p.Resources == nil {
			p.Resources = make(Resources)
		}
		if p.Storage == nil {
			p.Storage = make(Resources)
		}
		p.normalizeState()
	}
	s.repairCounters()
}

// dropNil removes entries a snapshot stored as null.
func dropNil[T any](m map[uint64]*T) {
	for id, v := range m {
		if v == nil {
			delete(m, id)
		}
	}
}

// normalizeState keeps State consistent with the project list: an owned
// planet is terraforming exactly when it has projects, and only owned planets
// carry projects. Unknown states fall back to unexplored.
func (p *Planet) normalizeState() {
	if !p.State.Valid() {
		p.State = PlanetStateUnexplored
	}
	if !p.State.Owned() {
		p.TerraformingProjects = nil
		return
	}
	if len(p.TerraformingProjects) > 0 {
		p.State = PlanetStateTerraforming
	} else {
		p.State = PlanetStateConquered
	}
}

func (s *State) repairCounters() {
	var galaxy, system, planet, building, project, route, shipment uint64
	for id := range s.Galaxies {
		galaxy = max(galaxy, id)
	}
	for id := range s.SolarSystems {
		system = max(system, id)
	}
	for id, p := range s.Planets {
		planet = max(planet, id)
		for _, b := range p.Buildings {
			building = max(building, b.ID)
		}
		for _, tp := range p.TerraformingProjects {
			project = max(project, tp.ID)
		}
	}
	for id := range s.Routes {
		route = max(route, id)
	}
	for _, t := range s.InTransit {
		shipment = max(shipment, t.ID)
	}

	c := &s.Counters
	c.NextGalaxyID = max(c.NextGalaxyID, galaxy+1)
	c.NextSystemID = max(c.NextSystemID, system+1)
	c.NextPlanetID = max(c.NextPlanetID, planet+1)
	c.NextBuildingID = max(c.NextBuildingID, building+1)
	c.NextProjectID = max(c.NextProjectID, project+1)
	c.NextRouteID = max(c.NextRouteID, route+1)
	c.NextShipmentID = max(c.NextShipmentID, shipment+1)
}

// SystemPlanets returns the planets of a system in generation order.
func (s *State) SystemPlanets(systemID uint64) []*Planet {
	sys, ok := s.SolarSystems[systemID]
	if !ok {
		return nil
	}
	out := make([]*Planet, 0, len(sys.Planets))
	for _, id := range sys.Planets {
		if p, ok := s.Planets[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// SortedPlanetIDs gives a stable iteration order over planets.
func (s *State) SortedPlanetIDs() []uint64 {
	ids := make([]uint64, 0, len(s.Planets))
	for id := range s.Planets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (g *Galaxy) Clone() *Galaxy {
	c := *g
	c.SolarSystems = slices.Clone(g.SolarSystems)
	c.Modifiers = slices.Clone(g.Modifiers)
	return &c
}

func (s *SolarSystem) Clone() *SolarSystem {
	c := *s
	c.Planets = slices.Clone(s.Planets)
	c.Modifiers = slices.Clone(s.Modifiers)
	return &c
}

func (p *Planet) Clone() *Planet {
	c := *p
	c.Resources = p.Resources.Clone()
	c.Storage = p.Storage.Clone()
	c.Modifiers = slices.Clone(p.Modifiers)
	c.TerraformingProjects = make([]TerraformingProject, len(p.TerraformingProjects))
	for i, tp := range p.TerraformingProjects {
		tp.RequiredResources = tp.RequiredResources.Clone()
		c.TerraformingProjects[i] = tp
	}
	c.Buildings = make([]Building, len(p.Buildings))
	for i, b := range p.Buildings {
		b.ProductionQueue = slices.Clone(b.ProductionQueue)
		c.Buildings[i] = b
	}
	return &c
}
