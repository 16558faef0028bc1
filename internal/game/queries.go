package game

import (
	"conquest-server/internal/galaxy"
	"conquest-server/internal/transport"
	"conquest-server/internal/universe"
)

func (e *Engine) Statistics() GameStatistics {
	s := e.state
	stats := GameStatistics{
		CurrentTick:      s.CurrentTick,
		TotalPlanets:     len(s.Planets),
		TotalResources:   s.EmpireResources.Total(),
		EmpireResources:  s.EmpireResources.Clone(),
		PrestigePoints:   s.PrestigePoints,
		Speed:            s.Speed,
		IsPaused:         s.IsPaused,
		GalaxyID:         s.CurrentGalaxy,
		ConquestProgress: galaxy.ConquestProgress(s, s.CurrentGalaxy),
	}
	for _, p := range s.Planets {
		if p.State.Owned() {
			stats.ConqueredPlanets++
		}
		stats.TotalBuildings += len(p.Buildings)
	}
	return stats
}

func (e *Engine) IsSystemDiscovered(systemID uint64) bool {
	return e.state.DiscoveredSystems.Has(systemID)
}

func (e *Engine) IsSystemExplored(systemID uint64) bool {
	return e.state.ExploredSystems.Has(systemID)
}

func (e *Engine) PlanetCount() int {
	return len(e.state.Planets)
}

func (e *Engine) HasPlanet(planetID uint64) bool {
	_, ok := e.state.Planets[planetID]
	return ok
}

// OwnedPlanetIDs lists conquered and terraforming planets in id order.
func (e *Engine) OwnedPlanetIDs() []uint64 {
	owned := e.ownedPlanets()
	ids := make([]uint64, len(owned))
	for i, p := range owned {
		ids[i] = p.ID
	}
	return ids
}

// Planet returns a copy that is safe to hand outside the runner.
func (e *Engine) Planet(planetID uint64) (*universe.Planet, bool) {
	p, ok := e.state.Planets[planetID]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

func (e *Engine) systemView(sys *universe.SolarSystem, withPlanets bool) SystemView {
	view := SystemView{
		SolarSystem: sys.Clone(),
		Discovered:  e.IsSystemDiscovered(sys.ID),
		Explored:    e.IsSystemExplored(sys.ID),
		Progress:    galaxy.SystemProgress(e.state, sys.ID),
	}
	if withPlanets && view.Discovered {
		for _, p := range e.state.SystemPlanets(sys.ID) {
			view.PlanetList = append(view.PlanetList, p.Clone())
		}
	}
	return view
}

// System describes one system. Planets are only listed once it is discovered.
func (e *Engine) System(systemID uint64) (SystemView, bool) {
	sys, ok := e.state.SolarSystems[systemID]
	if !ok {
		return SystemView{}, false
	}
	return e.systemView(sys, true), true
}

func (e *Engine) Galaxy() (GalaxyView, bool) {
	gal, ok := e.state.Galaxies[e.state.CurrentGalaxy]
	if !ok {
		return GalaxyView{}, false
	}
	view := GalaxyView{
		Galaxy:   gal.Clone(),
		Progress: galaxy.ConquestProgress(e.state, gal.ID),
		Systems:  make([]SystemView, 0, len(gal.SolarSystems)),
	}
	for _, id := range gal.SolarSystems {
		if sys, ok := e.state.SolarSystems[id]; ok {
			view.Systems = append(view.Systems, e.systemView(sys, false))
		}
	}
	return view, true
}

func (e *Engine) ProductionOrder() []universe.ResourceType {
	return e.graph.ProductionOrder()
}

// ProductionCost is the full raw material bill for one unit of product.
func (e *Engine) ProductionCost(product universe.ResourceType) (universe.Resources, bool) {
	if !product.Valid() {
		return nil, false
	}
	return e.graph.ProductionCost(product), true
}

func (e *Engine) PrestigeStatus() PrestigeStatus {
	points, progress, efficiency := e.pendingPrestige()
	return PrestigeStatus{
		Statistics:    e.prestige.Statistics(e.state.PrestigePoints, e.state.PrestigeBonuses),
		Progress:      progress,
		PendingPoints: points,
		Efficiency:    efficiency,
		CanPrestige:   e.prestige.CanPrestige(e.state.PrestigePoints+points, progress),
	}
}

func (e *Engine) TransportStatus() TransportStatus {
	routes := transport.SortedRoutes(e.state.Routes)
	for i, r := range routes {
		c := *r
		routes[i] = &c
	}
	return TransportStatus{
		Statistics: e.network.Statistics(e.state.Routes, e.state.InTransit),
		Routes:     routes,
		InTransit:  append([]universe.ResourceInTransit(nil), e.state.InTransit...),
	}
}
