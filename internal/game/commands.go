package game

import (
	"fmt"

	"conquest-server/internal/conquest"
	"conquest-server/internal/galaxy"
	"conquest-server/internal/production"
	"conquest-server/internal/transport"
	"conquest-server/internal/universe"
)

// AttemptPlanetConquest pays the conquest cost from the empire pool and
// claims the planet.
func (e *Engine) AttemptPlanetConquest(planetID uint64) conquest.Result {
	result := e.conquest.Attempt(e.state, planetID, e.balance.ConquestDifficulty, e.bonus(universe.BonusConquestSpeed))
	if result.Succeeded() {
		e.ledger.Add(e.state.CycleSpent, result.Cost)
		galaxy.RefreshConquered(e.state, planetID)
	}
	return result
}

// ConquestCost prices a planet without attempting anything.
func (e *Engine) ConquestCost(planetID uint64) (universe.Resources, bool) {
	p, ok := e.state.Planets[planetID]
	if !ok {
		return nil, false
	}
	return conquest.ConquestCost(p, e.balance.ConquestDifficulty, e.bonus(universe.BonusConquestSpeed)), true
}

// DefaultTerraformRequest prices a project from the balance tunables.
func (e *Engine) DefaultTerraformRequest(target universe.ModifierType) conquest.TerraformRequest {
	base := e.balance.TerraformingBaseCost
	return conquest.TerraformRequest{
		Target: target,
		Cost: universe.Resources{
			universe.ResourceEnergy:   base,
			universe.ResourceMinerals: base / 2,
		},
		Duration:   e.balance.TerraformingDuration,
		EnergyCost: base / 10,
	}
}

// StartTerraformingProject queues a project on an owned planet, paid from
// the planet's own resources. It returns the project id.
func (e *Engine) StartTerraformingProject(planetID uint64, req conquest.TerraformRequest) (uint64, bool) {
	p, ok := e.state.Planets[planetID]
	if !ok || !p.State.Owned() || !req.Target.Valid() {
		return 0, false
	}
	if !e.ledger.CanAfford(p.Resources, req.Cost) {
		return 0, false
	}

	id := e.state.Counters.Project()
	if !e.conquest.StartTerraforming(p, id, req) {
		return 0, false
	}
	return id, true
}

// AddBuilding constructs a building on an owned planet and returns its id.
func (e *Engine) AddBuilding(planetID uint64, buildingType universe.BuildingType) (uint64, bool) {
	p, ok := e.state.Planets[planetID]
	if !ok || !p.State.Owned() || !buildingType.Valid() {
		return 0, false
	}

	cost := production.BuildCost(buildingType)
	if !e.ledger.Deduct(e.state.EmpireResources, cost) {
		return 0, false
	}
	e.ledger.Add(e.state.CycleSpent, cost)

	id := e.state.Counters.Building()
	p.Buildings = append(p.Buildings, production.NewBuilding(id, buildingType))

	e.logger.Debug("Building added",
		"component", "engine",
		"planet_id", planetID,
		"building_id", id,
		"type", buildingType,
	)
	return id, true
}

func (e *Engine) building(planetID, buildingID uint64) *universe.Building {
	p, ok := e.state.Planets[planetID]
	if !ok {
		return nil
	}
	return p.Building(buildingID)
}

func (e *Engine) AddProductionOrder(planetID, buildingID uint64, product universe.ResourceType, quantity uint64, priority uint8) bool {
	b := e.building(planetID, buildingID)
	if b == nil {
		return false
	}
	return e.graph.AddProductionOrder(b, product, quantity, priority)
}

// UpgradeBuilding raises a building one level. The price doubles per level.
func (e *Engine) UpgradeBuilding(planetID, buildingID uint64) (uint32, bool) {
	b := e.building(planetID, buildingID)
	if b == nil {
		return 0, false
	}

	cost := production.UpgradeCost(b.Type, b.Level)
	if !e.ledger.Deduct(e.state.EmpireResources, cost) {
		return b.Level, false
	}
	e.ledger.Add(e.state.CycleSpent, cost)
	b.Level++
	return b.Level, true
}

// ToggleBuilding flips whether a building produces and returns the new state.
func (e *Engine) ToggleBuilding(planetID, buildingID uint64) (bool, bool) {
	b := e.building(planetID, buildingID)
	if b == nil {
		return false, false
	}
	b.IsActive = !b.IsActive
	return b.IsActive, true
}

// CreateRoute links two planets. A zero capacity uses the default.
func (e *Engine) CreateRoute(from, to, capacity uint64) (uint64, bool) {
	src, ok := e.state.Planets[from]
	if !ok || !src.State.Owned() {
		return 0, false
	}
	dst, ok := e.state.Planets[to]
	if !ok || from == to {
		return 0, false
	}
	if capacity == 0 {
		capacity = e.balance.RouteCapacity
	}

	id := e.state.Counters.Route()
	e.state.Routes[id] = e.network.CreateRoute(id, from, to, transport.Distance(src.Position, dst.Position), capacity)
	e.network.OptimizeRoutes(e.state.Routes)
	return id, true
}

func (e *Engine) routeLoad(routeID uint64) uint64 {
	var total uint64
	for _, s := range e.state.InTransit {
		if s.RouteID == routeID {
			total += s.Amount
		}
	}
	return total
}

// StartResourceTransport ships amount of t out of the source planet's
// storage. The energy cost is paid by the empire. A matching route shortens
// the bill and caps how much can be in flight on it.
func (e *Engine) StartResourceTransport(from, to uint64, t universe.ResourceType, amount uint64) (uint64, bool) {
	logger := e.logger.With("component", "engine", "operation", "start_transport", "from", from, "to", to)

	src, ok := e.state.Planets[from]
	if !ok || from == to || amount == 0 || !t.Valid() {
		return 0, false
	}
	dst, ok := e.state.Planets[to]
	if !ok {
		return 0, false
	}
	if src.Storage.Get(t) < amount {
		logger.Debug("Not enough goods in storage", "resource", t, "amount", amount)
		return 0, false
	}

	distance := transport.Distance(src.Position, dst.Position)
	efficiency := e.bonus(universe.BonusTransportEfficiency)
	var routeID uint64
	if route, ok := e.network.FindRoute(from, to, e.state.Routes); ok {
		if e.routeLoad(route.ID)+amount > route.Capacity {
			logger.Debug("Route at capacity", "route_id", route.ID)
			return 0, false
		}
		distance = route.Distance
		efficiency *= route.Efficiency
		routeID = route.ID
	}

	energy := e.network.TransportCost(distance, t, amount)
	if efficiency > 0 {
		energy = uint64(float64(energy) / efficiency)
	}
	fee := universe.Resources{universe.ResourceEnergy: energy}
	if !e.ledger.Deduct(e.state.EmpireResources, fee) {
		logger.Debug("Not enough energy for transport", "energy", energy)
		return 0, false
	}
	e.ledger.Add(e.state.CycleSpent, fee)
	src.Storage[t] -= amount

	shipment := e.network.StartTransport(e.state.Counters.Shipment(), from, to, t, amount, distance, e.state.Speed)
	shipment.RouteID = routeID
	e.state.InTransit = append(e.state.InTransit, shipment)

	logger.Debug("Transport started", "shipment_id", shipment.ID, "arrival", shipment.ArrivalTime, "energy", energy)
	return shipment.ID, true
}

// pendingPrestige scores the current galaxy as if it ended now.
func (e *Engine) pendingPrestige() (points uint64, progress, efficiency float64) {
	gal, ok := e.state.Galaxies[e.state.CurrentGalaxy]
	if !ok {
		return 0, 0, 0
	}
	progress = galaxy.ConquestProgress(e.state, gal.ID)
	efficiency = e.prestige.EfficiencyScore(e.state.CycleSpent, e.state.CycleGenerated)
	points = e.prestige.GalaxyPrestigePoints(gal, e.state.CurrentTick, efficiency)
	return points, progress, efficiency
}

func (e *Engine) CanPrestige() bool {
	points, progress, _ := e.pendingPrestige()
	return e.prestige.CanPrestige(e.state.PrestigePoints+points, progress)
}

// PerformPrestige banks the current galaxy's points and replaces it with a
// new one. Counters carry over; resources reset to the starting pool.
func (e *Engine) PerformPrestige() (PrestigeResult, bool) {
	points, progress, efficiency := e.pendingPrestige()
	if !e.prestige.CanPrestige(e.state.PrestigePoints+points, progress) {
		return PrestigeResult{}, false
	}

	gal := e.state.Galaxies[e.state.CurrentGalaxy]
	e.state.PrestigePoints += points
	bonuses := e.prestige.CreateBonuses(points, e.state.PrestigePoints, gal.Modifiers, e.state.PrestigeBonuses)

	e.startGalaxy(fmt.Sprintf("Galaxy %d", e.state.Counters.NextGalaxyID))
	e.state.CurrentTick = 0
	e.state.EmpireResources = e.balance.StartingResources.Clone()
	e.prestige.ApplyBonuses(e.state, bonuses)

	e.logger.Info("Prestige performed",
		"component", "engine",
		"operation", "prestige",
		"points", points,
		"efficiency", efficiency,
		"total_points", e.state.PrestigePoints,
		"galaxy_id", e.state.CurrentGalaxy,
	)
	return PrestigeResult{Points: points, Bonuses: bonuses, GalaxyID: e.state.CurrentGalaxy}, true
}

func (e *Engine) SetSpeed(speed universe.GameSpeed) bool {
	if !speed.Valid() {
		return false
	}
	e.state.Speed = speed
	return true
}

// TogglePause flips the pause flag and returns the new value.
func (e *Engine) TogglePause() bool {
	e.state.IsPaused = !e.state.IsPaused
	return e.state.IsPaused
}
