package clinic

import "github.com/Anton-art/Syntropy/internal/engine"

// Symptom is one observed pathology signal accumulated during diagnosis.
type Symptom string

const (
	SymptomSemanticChaos Symptom = "SEMANTIC_CHAOS"
	SymptomNegativeValue Symptom = "NEGATIVE_VALUE"
	SymptomHighEnergy    Symptom = "HIGH_ENERGY"
)

// Recognized testimony context modes and biological states.
const (
	ContextCreativeFlow = "CREATIVE_FLOW"
	ContextLearning     = "LEARNING"

	BioStable   = "STABLE"
	BioCritical = "CRITICAL"
)

// Testimony is third-party context submitted on behalf of the examined
// agent. It can only ever soften a verdict, never harden one.
type Testimony struct {
	ContextMode     string
	BiologicalState string
	DefensePlea     string
}

// UserState is the mutable per-user record owned by the support collaborator.
// The dispatcher reads and writes it through ProvideSupport only; concurrent
// dispatches touching the same user must be serialized by the caller.
type UserState struct {
	UserID        string
	WalletBalance float64
	Sigma         float64
}

// Prescription is the single decision record a dispatch emits. It is created
// once, never stored by the core; ownership transfers to the caller.
type Prescription struct {
	Verdict         engine.Verdict
	Pathology       string
	Treatment       string
	SigmaPenalty    float64
	QuarantineLevel int
	Confidence      float64
	Reversible      bool
}

// SupportProvider is the external support/amnesty collaborator. A non-empty
// message means an intervention happened and scoring is skipped entirely.
// Implementations may mutate the user state.
type SupportProvider interface {
	ProvideSupport(user *UserState, testimony *Testimony) string
}

// BudgetAllocator books energy allocations against an external fixed pool.
type BudgetAllocator interface {
	Allocate(amount float64, category string) bool
}

// Logger receives diagnostic progress lines; nil disables logging.
type Logger interface {
	Log(level, stage, message, detail string)
}

type symptomSet map[Symptom]bool

func (s symptomSet) add(sym Symptom)      { s[sym] = true }
func (s symptomSet) has(sym Symptom) bool { return s[sym] }
