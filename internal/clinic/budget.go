package clinic

// EnergyBudget books allocations against a fixed pool. It is deliberately
// not goroutine-safe: the check-then-allocate sequence is only atomic when
// the caller serializes dispatches that share a budget.
type EnergyBudget struct {
	remaining float64
	ledger    map[string]float64
}

func NewEnergyBudget(pool float64) *EnergyBudget {
	return &EnergyBudget{
		remaining: pool,
		ledger:    map[string]float64{},
	}
}

// Allocate withdraws amount from the pool under the given category. It
// refuses overdrafts and non-positive amounts.
func (b *EnergyBudget) Allocate(amount float64, category string) bool {
	if amount <= 0 || amount > b.remaining {
		return false
	}
	b.remaining -= amount
	b.ledger[category] += amount
	return true
}

func (b *EnergyBudget) Remaining() float64 {
	return b.remaining
}

func (b *EnergyBudget) Spent(category string) float64 {
	return b.ledger[category]
}
