package resource

import (
	"conquest-server/internal/universe"
)

const defaultCapacity uint64 = 1000

var storageCapacities = map[universe.ResourceType]uint64{
	universe.ResourceEnergy:     10000,
	universe.ResourceMinerals:   10000,
	universe.ResourcePopulation: 5000,
	universe.ResourceTechnology: 2000,
	universe.ResourceFood:       8000,
}

// Ledger holds the resource arithmetic shared by every command. It does not
// own any quantities itself.
type Ledger struct {
	capacities map[universe.ResourceType]uint64
}

func NewLedger() *Ledger {
	caps := make(map[universe.ResourceType]uint64, len(storageCapacities))
	for k, v := range storageCapacities {
		caps[k] = v
	}
	return &Ledger{capacities: caps}
}

// CanAfford reports whether every cost entry is covered. Absent entries count as zero.
func (l *Ledger) CanAfford(available, cost universe.Resources) bool {
	for t, amount := range cost {
		if available.Get(t) < amount {
			return false
		}
	}
	return true
}

// Deduct subtracts cost from available only when all of it is affordable.
func (l *Ledger) Deduct(available, cost universe.Resources) bool {
	if !l.CanAfford(available, cost) {
		return false
	}
	for t, amount := range cost {
		if amount == 0 {
			continue
		}
		available[t] -= amount
	}
	return true
}

func (l *Ledger) Add(available, delta universe.Resources) {
	for t, amount := range delta {
		available[t] += amount
	}
}

// Shortfall lists how much of each cost entry is missing.
func (l *Ledger) Shortfall(available, cost universe.Resources) universe.Resources {
	out := make(universe.Resources)
	for t, amount := range cost {
		if have := available.Get(t); have < amount {
			out[t] = amount - have
		}
	}
	return out
}

func (l *Ledger) StorageCapacity(t universe.ResourceType) uint64 {
	if c, ok := l.capacities[t]; ok {
		return c
	}
	return defaultCapacity
}

func (l *Ledger) StorageLimits() universe.Resources {
	out := make(universe.Resources, len(l.capacities))
	for k, v := range l.capacities {
		out[k] = v
	}
	return out
}

func (l *Ledger) WouldExceedCapacity(current, delta universe.Resources) bool {
	for t, amount := range delta {
		if current.Get(t)+amount > l.StorageCapacity(t) {
			return true
		}
	}
	return false
}

// ClampAdd adds delta up to each resource's capacity plus any extra
// capacity. Quantities already above capacity are left untouched. It
// returns what was actually added.
func (l *Ledger) ClampAdd(available, delta, extra universe.Resources) universe.Resources {
	added := make(universe.Resources, len(delta))
	for t, amount := range delta {
		limit := l.StorageCapacity(t) + extra.Get(t)
		have := available.Get(t)
		if have >= limit || amount == 0 {
			continue
		}
		room := limit - have
		if amount > room {
			amount = room
		}
		available[t] = have + amount
		added[t] = amount
	}
	return added
}
