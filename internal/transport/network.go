package transport

import (
	"log/slog"
	"math"
	"slices"

	"conquest-server/internal/universe"
)

const (
	costPerDistance  = 0.1
	ticksPerDistance = 10
	shortRoute       = 100.0
	longRoute        = 500.0
)

var costMultipliers = map[universe.ResourceType]float64{
	universe.ResourceEnergy:     0.5,
	universe.ResourcePopulation: 2.0,
	universe.ResourceFood:       1.5,
	universe.ResourceTechnology: 1.2,
	universe.ResourceMinerals:   1.0,
}

type Statistics struct {
	TotalRoutes             int     `json:"total_routes"`
	TotalCapacity           uint64  `json:"total_capacity"`
	ShipmentsInTransit      int     `json:"shipments_in_transit"`
	TotalResourcesInTransit uint64  `json:"total_resources_in_transit"`
	AverageRouteEfficiency  float64 `json:"average_route_efficiency"`
}

type Network struct {
	logger *slog.Logger
}

func NewNetwork(logger *slog.Logger) *Network {
	return &Network{logger: logger}
}

func Distance(a, b universe.Position) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// TransportCost is the energy needed to move amount of t over distance.
func (n *Network) TransportCost(distance float64, t universe.ResourceType, amount uint64) uint64 {
	mult, ok := costMultipliers[t]
	if !ok {
		mult = 1.0
	}
	return uint64(distance * costPerDistance * mult * float64(amount))
}

// StartTransport builds a pending shipment. Travel time is fixed when the
// shipment starts; speed both shortens it and speeds the countdown.
func (n *Network) StartTransport(id, from, to uint64, t universe.ResourceType, amount uint64, distance float64, speed universe.GameSpeed) universe.ResourceInTransit {
	base := uint64(distance * ticksPerDistance)
	return universe.ResourceInTransit{
		ID:           id,
		ResourceType: t,
		Amount:       amount,
		FromPlanet:   from,
		ToPlanet:     to,
		ArrivalTime:  base / max(uint64(speed), 1),
	}
}

// UpdateTransit counts every shipment down by speed and returns the ones
// that arrived, removing them from shipments.
func (n *Network) UpdateTransit(shipments *[]universe.ResourceInTransit, speed universe.GameSpeed) []universe.ResourceInTransit {
	step := max(uint64(speed), 1)
	var arrived []universe.ResourceInTransit

	live := (*shipments)[:0]
	for _, s := range *shipments {
		if s.ArrivalTime > step {
			s.ArrivalTime -= step
			live = append(live, s)
			continue
		}
		s.ArrivalTime = 0
		arrived = append(arrived, s)
	}
	clear((*shipments)[len(live):])
	*shipments = live
	return arrived
}

func (n *Network) CreateRoute(id, from, to uint64, distance float64, capacity uint64) *universe.TransportRoute {
	return &universe.TransportRoute{
		ID:         id,
		FromPlanet: from,
		ToPlanet:   to,
		Capacity:   capacity,
		Efficiency: 1.0,
		EnergyCost: uint64(distance * costPerDistance),
		Distance:   distance,
	}
}

// FindRoute returns the lowest id route from one planet to another.
func (n *Network) FindRoute(from, to uint64, routes map[uint64]*universe.TransportRoute) (*universe.TransportRoute, bool) {
	var best *universe.TransportRoute
	for _, r := range routes {
		if r.FromPlanet != from || r.ToPlanet != to {
			continue
		}
		if best == nil || r.ID < best.ID {
			best = r
		}
	}
	return best, best != nil
}

// OptimizeRoutes rewards short routes and penalizes long ones.
func (n *Network) OptimizeRoutes(routes map[uint64]*universe.TransportRoute) {
	for _, r := range routes {
		bonus := 0.0
		switch {
		case r.Distance < shortRoute:
			bonus = 0.1
		case r.Distance > longRoute:
			bonus = -0.05
		}
		r.Efficiency = max(1+bonus, 0.1)
	}
}

func (n *Network) PlanetTransportCapacity(planetID uint64, routes map[uint64]*universe.TransportRoute) uint64 {
	var total uint64
	for _, r := range routes {
		if r.FromPlanet == planetID || r.ToPlanet == planetID {
			total += r.Capacity
		}
	}
	return total
}

func (n *Network) Statistics(routes map[uint64]*universe.TransportRoute, shipments []universe.ResourceInTransit) Statistics {
	stats := Statistics{
		TotalRoutes:        len(routes),
		ShipmentsInTransit: len(shipments),
	}
	efficiency := 0.0
	for _, r := range routes {
		stats.TotalCapacity += r.Capacity
		efficiency += r.Efficiency
	}
	for _, s := range shipments {
		stats.TotalResourcesInTransit += s.Amount
	}
	stats.AverageRouteEfficiency = efficiency / float64(max(len(routes), 1))
	return stats
}

// SortedRoutes lists routes by id.
func SortedRoutes(routes map[uint64]*universe.TransportRoute) []*universe.TransportRoute {
	out := make([]*universe.TransportRoute, 0, len(routes))
	for _, r := range routes {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b *universe.TransportRoute) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}
