package engine

import "fmt"

// EntityType separates what can be recycled from what must be healed.
type EntityType string

const (
	// Technosphere entities are fungible assets: machines, code, tooling.
	Technosphere EntityType = "TECHNOSPHERE"
	// Biosphere entities are non-fungible actors: people, living processes.
	Biosphere EntityType = "BIOSPHERE"
	// Idea entities are dormant potential: blueprints, drafts, signals.
	Idea EntityType = "IDEA"
)

// Entity is any unit of work, artifact, or actor submitted for evaluation.
type Entity struct {
	ID   string
	Type EntityType
	Name string

	// Information block: compressed vs raw size proxies and structural
	// order, target 0.75.
	CodeLen    float64
	DataLen    float64
	OrderRatio float64

	// Physics block.
	PTech float64
	KWear float64 // 1.0 new, 0.0 broken

	// Biology block.
	PBio    float64
	KHealth float64 // 1.0 flow, 0.0 death

	// Economics block.
	EIn   float64
	EDebt float64

	// Alpha is activation: 0.0 dormant idea, 1.0 fully active process.
	Alpha float64

	ReplacementCost float64
}

// Validate fails fast on fields outside their documented ranges. The engine
// itself never re-clamps; out-of-range input propagates into nonsensical
// scores, so this belongs at the boundary before Evaluate is called.
func (e Entity) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"code_len", e.CodeLen},
		{"data_len", e.DataLen},
		{"p_tech", e.PTech},
		{"p_bio", e.PBio},
		{"e_in", e.EIn},
		{"e_debt", e.EDebt},
		{"replacement_cost", e.ReplacementCost},
	} {
		if f.value < 0 {
			return fmt.Errorf("entity %s: %s must be non-negative, got %v", e.ID, f.name, f.value)
		}
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"order_ratio", e.OrderRatio},
		{"k_wear", e.KWear},
		{"k_health", e.KHealth},
		{"alpha", e.Alpha},
	} {
		if f.value < 0 || f.value > 1 {
			return fmt.Errorf("entity %s: %s must be in [0,1], got %v", e.ID, f.name, f.value)
		}
	}
	switch e.Type {
	case Technosphere, Biosphere, Idea:
	default:
		return fmt.Errorf("entity %s: unknown type %q", e.ID, e.Type)
	}
	return nil
}
