package production

import (
	"log/slog"
	"slices"

	"conquest-server/internal/universe"
)

type ResourceAmount struct {
	Type   universe.ResourceType `json:"type"`
	Amount uint64                `json:"amount"`
}

type ProductDependency struct {
	Product        universe.ResourceType `json:"product"`
	Dependencies   []ResourceAmount      `json:"dependencies"`
	ProductionTime uint64                `json:"production_time"`
	EnergyCost     uint64                `json:"energy_cost"`
}

// DefaultPriority is used for orders a building queues for itself.
const DefaultPriority uint8 = 127

func dep(t universe.ResourceType, amount uint64) ResourceAmount {
	return ResourceAmount{Type: t, Amount: amount}
}

func defaultTable() []ProductDependency {
	return []ProductDependency{
		{Product: universe.ResourceEnergy, ProductionTime: 5},
		{Product: universe.ResourceMinerals, ProductionTime: 8},
		{Product: universe.ResourcePopulation, ProductionTime: 10},
		{Product: universe.ResourceTechnology, ProductionTime: 12},
		{Product: universe.ResourceFood, ProductionTime: 6},
		{
			Product:        universe.ResourceAlloys,
			Dependencies:   []ResourceAmount{dep(universe.ResourceMinerals, 100), dep(universe.ResourceEnergy, 50)},
			ProductionTime: 10, EnergyCost: 25,
		},
		{
			Product:        universe.ResourceElectronics,
			Dependencies:   []ResourceAmount{dep(universe.ResourceMinerals, 50), dep(universe.ResourceTechnology, 30), dep(universe.ResourceEnergy, 40)},
			ProductionTime: 15, EnergyCost: 30,
		},
		{
			Product:        universe.ResourceMedicine,
			Dependencies:   []ResourceAmount{dep(universe.ResourceFood, 20), dep(universe.ResourceTechnology, 25), dep(universe.ResourceEnergy, 15)},
			ProductionTime: 12, EnergyCost: 20,
		},
		{
			Product:        universe.ResourceStarships,
			Dependencies:   []ResourceAmount{dep(universe.ResourceAlloys, 200), dep(universe.ResourceElectronics, 100), dep(universe.ResourceEnergy, 300)},
			ProductionTime: 50, EnergyCost: 100,
		},
		{
			Product:        universe.ResourceAdvancedWeapons,
			Dependencies:   []ResourceAmount{dep(universe.ResourceAlloys, 150), dep(universe.ResourceElectronics, 80), dep(universe.ResourceTechnology, 100), dep(universe.ResourceEnergy, 200)},
			ProductionTime: 40, EnergyCost: 80,
		},
		{
			Product:        universe.ResourceAISystems,
			Dependencies:   []ResourceAmount{dep(universe.ResourceElectronics, 200), dep(universe.ResourceTechnology, 300), dep(universe.ResourceEnergy, 500)},
			ProductionTime: 80, EnergyCost: 150,
		},
		{
			Product:        universe.ResourceDysonSpheres,
			Dependencies:   []ResourceAmount{dep(universe.ResourceAlloys, 10000), dep(universe.ResourceElectronics, 5000), dep(universe.ResourceAISystems, 1000), dep(universe.ResourceEnergy, 50000)},
			ProductionTime: 1000, EnergyCost: 2000,
		},
		{
			Product:        universe.ResourceGalacticNetworks,
			Dependencies:   []ResourceAmount{dep(universe.ResourceAISystems, 2000), dep(universe.ResourceElectronics, 10000), dep(universe.ResourceTechnology, 5000), dep(universe.ResourceEnergy, 100000)},
			ProductionTime: 2000, EnergyCost: 5000,
		},
	}
}

var buildingProducts = map[universe.BuildingType][]universe.ResourceType{
	universe.BuildingBasicManufacturing:    {universe.ResourceAlloys, universe.ResourceElectronics},
	universe.BuildingAdvancedManufacturing: {universe.ResourceAlloys, universe.ResourceElectronics, universe.ResourceMedicine},
	universe.BuildingElectronics:           {universe.ResourceElectronics},
	universe.BuildingPharmaceuticals:       {universe.ResourceMedicine},
	universe.BuildingShipyard:              {universe.ResourceStarships},
	universe.BuildingWeapons:               {universe.ResourceAdvancedWeapons},
	universe.BuildingResearch:              {universe.ResourceAISystems},
	universe.BuildingHousing:               {universe.ResourcePopulation},
}

var defaultQuantities = map[universe.ResourceType]uint64{
	universe.ResourceEnergy:           50,
	universe.ResourceMinerals:         40,
	universe.ResourceFood:             45,
	universe.ResourcePopulation:       25,
	universe.ResourceTechnology:       20,
	universe.ResourceAlloys:           15,
	universe.ResourceElectronics:      15,
	universe.ResourceMedicine:         15,
	universe.ResourceStarships:        5,
	universe.ResourceAdvancedWeapons:  5,
	universe.ResourceAISystems:        5,
	universe.ResourceDysonSpheres:     1,
	universe.ResourceGalacticNetworks: 1,
}

// Graph is the static product dependency table plus the per building
// production rules.
type Graph struct {
	order  []universe.ResourceType
	table  map[universe.ResourceType]ProductDependency
	logger *slog.Logger
}

func NewGraph(logger *slog.Logger) *Graph {
	return newGraphFromTable(defaultTable(), logger)
}

func newGraphFromTable(entries []ProductDependency, logger *slog.Logger) *Graph {
	g := &Graph{
		table:  make(map[universe.ResourceType]ProductDependency, len(entries)),
		logger: logger,
	}
	for _, e := range entries {
		if _, ok := g.table[e.Product]; !ok {
			g.order = append(g.order, e.Product)
		}
		g.table[e.Product] = e
	}
	return g
}

func (g *Graph) Dependency(product universe.ResourceType) (ProductDependency, bool) {
	d, ok := g.table[product]
	return d, ok
}

// AllDependencies flattens the transitive inputs of product depth first.
// Every edge is listed once per parent; a product already expanded is not
// expanded again, which also stops cycles.
func (g *Graph) AllDependencies(product universe.ResourceType) []ResourceAmount {
	type frame struct {
		product universe.ResourceType
		next    int
	}

	var out []ResourceAmount
	visited := map[universe.ResourceType]bool{product: true}
	stack := []frame{{product: product}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		deps := g.table[top.product].Dependencies
		if top.next >= len(deps) {
			stack = stack[:len(stack)-1]
			continue
		}
		d := deps[top.next]
		top.next++
		out = append(out, d)
		if !visited[d.Type] {
			visited[d.Type] = true
			stack = append(stack, frame{product: d.Type})
		}
	}
	return out
}

// ProductionCost sums the flattened dependency list per resource.
func (g *Graph) ProductionCost(product universe.ResourceType) universe.Resources {
	cost := make(universe.Resources)
	for _, d := range g.AllDependencies(product) {
		cost[d.Type] += d.Amount
	}
	return cost
}

// CanProduce reports whether available covers the direct inputs of product.
func (g *Graph) CanProduce(product universe.ResourceType, available universe.Resources) bool {
	for _, d := range g.table[product].Dependencies {
		if available.Get(d.Type) < d.Amount {
			return false
		}
	}
	return true
}

func (g *Graph) ProductionTime(product universe.ResourceType) uint64 {
	if d, ok := g.table[product]; ok {
		return d.ProductionTime
	}
	return 1
}

func (g *Graph) EnergyCost(product universe.ResourceType) uint64 {
	return g.table[product].EnergyCost
}

// ProductionOrder is a topological order of the table (Kahn). Zero in-degree
// nodes are seeded in table order and ties are resolved in discovery order.
func (g *Graph) ProductionOrder() []universe.ResourceType {
	inDegree := make(map[universe.ResourceType]int, len(g.order))
	children := make(map[universe.ResourceType][]universe.ResourceType, len(g.order))

	for _, p := range g.order {
		inDegree[p] = 0
	}
	for _, p := range g.order {
		for _, d := range g.table[p].Dependencies {
			if _, known := inDegree[d.Type]; !known {
				continue
			}
			children[d.Type] = append(children[d.Type], p)
			inDegree[p]++
		}
	}

	queue := make([]universe.ResourceType, 0, len(g.order))
	for _, p := range g.order {
		if inDegree[p] == 0 {
			queue = append(queue, p)
		}
	}

	result := make([]universe.ResourceType, 0, len(g.order))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)
		for _, child := range children[current] {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if len(result) != len(g.order) {
		g.logger.Warn("Dependency table contains a cycle",
			"component", "production_graph",
			"ordered", len(result),
			"products", len(g.order),
		)
	}
	return result
}

func BuildingProducts(b universe.BuildingType) []universe.ResourceType {
	return slices.Clone(buildingProducts[b])
}

func CanBuildingProduce(b universe.BuildingType, product universe.ResourceType) bool {
	return slices.Contains(buildingProducts[b], product)
}

// OptimalBuilding returns the first building type able to make product.
func OptimalBuilding(product universe.ResourceType) (universe.BuildingType, bool) {
	for _, b := range universe.AllBuildings {
		if CanBuildingProduce(b, product) {
			return b, true
		}
	}
	return "", false
}

func DefaultQuantity(product universe.ResourceType) uint64 {
	if q, ok := defaultQuantities[product]; ok {
		return q
	}
	return 1
}
