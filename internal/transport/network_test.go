package transport

import (
	"log/slog"
	"testing"

	"conquest-server/internal/universe"
)

func TestTransportCost(t *testing.T) {
	n := NewNetwork(slog.Default())
	tests := []struct {
		rt     universe.ResourceType
		amount uint64
		want   uint64
	}{
		{universe.ResourceEnergy, 100, 500},
		{universe.ResourcePopulation, 10, 200},
		{universe.ResourceFood, 10, 150},
		{universe.ResourceTechnology, 10, 120},
		{universe.ResourceMinerals, 10, 100},
		{universe.ResourceAlloys, 10, 100},
	}
	for _, tt := range tests {
		if got := n.TransportCost(100, tt.rt, tt.amount); got != tt.want {
			t.Errorf("TransportCost(100, %s, %d) = %d, want %d", tt.rt, tt.amount, got, tt.want)
		}
	}
}

func TestStartTransportArrival(t *testing.T) {
	n := NewNetwork(slog.Default())
	s := n.StartTransport(1, 1, 2, universe.ResourceFood, 5, 12.34, universe.SpeedFast)
	// floor(123.4) / 10
	if s.ArrivalTime != 12 {
		t.Errorf("ArrivalTime = %d, want 12", s.ArrivalTime)
	}
}

func TestShipmentArrivesAfterCeilTOverS(t *testing.T) {
	n := NewNetwork(slog.Default())
	tests := []struct {
		arrival uint64
		speed   universe.GameSpeed
	}{
		{1, 1}, {7, 1}, {10, 10}, {11, 10}, {99, 10}, {1234, 100}, {5, 1000},
	}
	for _, tt := range tests {
		shipments := []universe.ResourceInTransit{{ID: 1, Amount: 3, ArrivalTime: tt.arrival}}
		want := int((tt.arrival + uint64(tt.speed) - 1) / uint64(tt.speed))

		calls := 0
		last := tt.arrival
		for {
			calls++
			arrived := n.UpdateTransit(&shipments, tt.speed)
			if len(arrived) == 1 {
				break
			}
			if len(shipments) != 1 || shipments[0].ArrivalTime >= last {
				t.Fatalf("T=%d S=%d: countdown did not decrease (%v)", tt.arrival, tt.speed, shipments)
			}
			last = shipments[0].ArrivalTime
			if calls > want {
				t.Fatalf("T=%d S=%d: still in transit after %d calls", tt.arrival, tt.speed, calls)
			}
		}
		if calls != want {
			t.Errorf("T=%d S=%d: arrived after %d calls, want %d", tt.arrival, tt.speed, calls, want)
		}
		if len(shipments) != 0 {
			t.Errorf("T=%d S=%d: arrived shipment left in list", tt.arrival, tt.speed)
		}
	}
}

func TestUpdateTransitKeepsOthers(t *testing.T) {
	n := NewNetwork(slog.Default())
	shipments := []universe.ResourceInTransit{
		{ID: 1, ArrivalTime: 1},
		{ID: 2, ArrivalTime: 5},
		{ID: 3, ArrivalTime: 1},
	}
	arrived := n.UpdateTransit(&shipments, universe.SpeedNormal)
	if len(arrived) != 2 || arrived[0].ID != 1 || arrived[1].ID != 3 {
		t.Errorf("arrived = %v", arrived)
	}
	if len(shipments) != 1 || shipments[0].ID != 2 || shipments[0].ArrivalTime != 4 {
		t.Errorf("remaining = %v", shipments)
	}
}

func TestRoutes(t *testing.T) {
	n := NewNetwork(slog.Default())
	routes := map[uint64]*universe.TransportRoute{
		1: n.CreateRoute(1, 10, 20, 50, 100),
		2: n.CreateRoute(2, 10, 30, 600, 200),
		3: n.CreateRoute(3, 20, 30, 300, 50),
	}
	if routes[2].EnergyCost != 60 {
		t.Errorf("EnergyCost = %d, want 60", routes[2].EnergyCost)
	}

	n.OptimizeRoutes(routes)
	if routes[1].Efficiency != 1.1 || routes[2].Efficiency != 0.95 || routes[3].Efficiency != 1.0 {
		t.Errorf("efficiencies = %v %v %v", routes[1].Efficiency, routes[2].Efficiency, routes[3].Efficiency)
	}

	if r, ok := n.FindRoute(10, 30, routes); !ok || r.ID != 2 {
		t.Errorf("FindRoute(10, 30) = %v, %v", r, ok)
	}
	if _, ok := n.FindRoute(30, 10, routes); ok {
		t.Error("FindRoute matched a reversed route")
	}
	if got := n.PlanetTransportCapacity(10, routes); got != 300 {
		t.Errorf("PlanetTransportCapacity(10) = %d, want 300", got)
	}

	stats := n.Statistics(routes, []universe.ResourceInTransit{{Amount: 4}, {Amount: 6}})
	if stats.TotalRoutes != 3 || stats.TotalCapacity != 350 || stats.TotalResourcesInTransit != 10 {
		t.Errorf("Statistics = %+v", stats)
	}
}
