package production

import (
	"slices"

	"conquest-server/internal/universe"
)

// HousingCapacityPerLevel is the extra population storage each housing level adds.
const HousingCapacityPerLevel uint64 = 500

var buildCosts = map[universe.BuildingType]universe.Resources{
	universe.BuildingBasicManufacturing:    {universe.ResourceMinerals: 200, universe.ResourceEnergy: 100},
	universe.BuildingAdvancedManufacturing: {universe.ResourceMinerals: 500, universe.ResourceEnergy: 300, universe.ResourceTechnology: 100},
	universe.BuildingElectronics:           {universe.ResourceMinerals: 300, universe.ResourceEnergy: 200, universe.ResourceTechnology: 50},
	universe.BuildingPharmaceuticals:       {universe.ResourceMinerals: 250, universe.ResourceEnergy: 150, universe.ResourceFood: 100},
	universe.BuildingShipyard:              {universe.ResourceMinerals: 1000, universe.ResourceEnergy: 500, universe.ResourceTechnology: 200},
	universe.BuildingWeapons:               {universe.ResourceMinerals: 800, universe.ResourceEnergy: 600, universe.ResourceTechnology: 200},
	universe.BuildingResearch:              {universe.ResourceMinerals: 300, universe.ResourceEnergy: 400, universe.ResourceTechnology: 300},
	universe.BuildingHousing:               {universe.ResourceMinerals: 150, universe.ResourceEnergy: 50},
}

// BuildCost is what constructing a new building of type b costs the empire.
func BuildCost(b universe.BuildingType) universe.Resources {
	return buildCosts[b].Clone()
}

// UpgradeCost doubles the build cost for every level already reached.
func UpgradeCost(b universe.BuildingType, level uint32) universe.Resources {
	cost := BuildCost(b)
	if level == 0 {
		level = 1
	}
	factor := uint64(1) << min(level, 32)
	for t, v := range cost {
		cost[t] = v * factor
	}
	return cost
}

// HousingCapacity is the population storage a housing building of level adds.
func HousingCapacity(level uint32) uint64 {
	return uint64(level) * HousingCapacityPerLevel
}

// NewBuilding returns an active level one building with an empty queue.
func NewBuilding(id uint64, b universe.BuildingType) universe.Building {
	return universe.Building{
		ID:              id,
		Type:            b,
		ProductionQueue: []universe.ProductionOrder{},
		Efficiency:      1.0,
		IsActive:        true,
		Level:           1,
	}
}

// PlanetEfficiency multiplies every manufacturing bonus on the planet, and
// research bonuses for research buildings.
func PlanetEfficiency(p *universe.Planet, b universe.BuildingType) float64 {
	efficiency := 1.0
	for _, m := range p.Modifiers {
		switch m.Type {
		case universe.ModifierManufacturingBonus:
			efficiency *= 1 + m.Value/100
		case universe.ModifierResearchBonus:
			if b == universe.BuildingResearch {
				efficiency *= 1 + m.Value/100
			}
		}
	}
	return efficiency
}

func sortByPriority(queue []universe.ProductionOrder) {
	slices.SortStableFunc(queue, func(a, b universe.ProductionOrder) int {
		return int(b.Priority) - int(a.Priority)
	})
}

// UpdateBuildingProduction advances one tick of b's queue. bonus multiplies
// progress on top of planet efficiency. Finished orders are returned and
// removed.
func (g *Graph) UpdateBuildingProduction(b *universe.Building, p *universe.Planet, speed universe.GameSpeed, bonus float64) []ResourceAmount {
	if !b.IsActive {
		return nil
	}
	if bonus <= 0 {
		bonus = 1
	}

	if len(b.ProductionQueue) == 0 {
		for _, product := range buildingProducts[b.Type] {
			b.ProductionQueue = append(b.ProductionQueue, universe.ProductionOrder{
				Product:  product,
				Quantity: DefaultQuantity(product),
				Priority: DefaultPriority,
			})
		}
		sortByPriority(b.ProductionQueue)
	}

	buildingEfficiency := b.Efficiency
	if buildingEfficiency <= 0 {
		buildingEfficiency = 1
	}
	step := PlanetEfficiency(p, b.Type) * buildingEfficiency * bonus * float64(speed)

	var produced []ResourceAmount
	for i := range b.ProductionQueue {
		order := &b.ProductionQueue[i]
		if order.Progress >= 1 {
			continue
		}
		t := max(g.ProductionTime(order.Product), 1)
		order.Progress += step / float64(t)
		if order.Progress >= 1 {
			order.Progress = 1
			produced = append(produced, ResourceAmount{Type: order.Product, Amount: order.Quantity})
		}
	}

	b.ProductionQueue = slices.DeleteFunc(b.ProductionQueue, func(o universe.ProductionOrder) bool {
		return o.Progress >= 1
	})
	return produced
}

// AddProductionOrder queues an explicit order if the building can make product.
func (g *Graph) AddProductionOrder(b *universe.Building, product universe.ResourceType, quantity uint64, priority uint8) bool {
	if !CanBuildingProduce(b.Type, product) || quantity == 0 {
		return false
	}
	b.ProductionQueue = append(b.ProductionQueue, universe.ProductionOrder{
		Product:  product,
		Quantity: quantity,
		Priority: priority,
	})
	sortByPriority(b.ProductionQueue)
	return true
}
