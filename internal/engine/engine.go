package engine

import (
	"fmt"
	"math"
)

// Verdict is the engine's remedial action for an entity.
type Verdict string

const (
	// VerdictDelete is reserved for external policy on clearly fungible
	// technical garbage; no phase of this engine ever emits it.
	VerdictDelete   Verdict = "DELETE"
	VerdictArchive  Verdict = "ARCHIVE"
	VerdictAmplify  Verdict = "AMPLIFY"
	VerdictStop     Verdict = "STOP"
	VerdictRecovery Verdict = "RECOVERY"
	VerdictRecycle  Verdict = "RECYCLE"
)

const (
	// OptimalOrder encodes the 3:1 rule: ideal structural order is 75%,
	// not 100%.
	OptimalOrder = 0.75
	// SigmaWidth is the Gaussian tolerance around the optimal order.
	SigmaWidth = 0.15

	// CriticalHealth: below this a biosphere actor is never scored for
	// productivity, only sent to recovery.
	CriticalHealth = 0.15
	// WearFloor: below this wear a technosphere asset is a recycling
	// candidate when its debt exceeds replacement.
	WearFloor = 0.2

	// AmplifyThreshold separates syntropy worth amplifying from an
	// entropy leak.
	AmplifyThreshold = 10.0
	// ArchiveQualityFloor separates high-potential dormant ideas from
	// unrecognized signals.
	ArchiveQualityFloor = 500.0
	// DormantAlpha: at or below this activation an entity counts as a
	// sleeping idea.
	DormantAlpha = 0.01

	costEpsilon = 1e-9
)

// Evaluation is the engine's full answer for one entity.
type Evaluation struct {
	Score   float64
	Verdict Verdict
	Reason  string
}

// Evaluate runs the strict phase sequence: somatic veto, economic veto,
// valuation, classification. Earlier phases veto later ones; first match
// wins with no fall-through.
func Evaluate(e Entity) Evaluation {
	// Phase 1: somatic veto. A dying actor is never scored.
	if e.Type == Biosphere && e.KHealth < CriticalHealth {
		return Evaluation{
			Score:   0,
			Verdict: VerdictRecovery,
			Reason:  fmt.Sprintf("critical health: %.2f below %.2f, all resources redirected to healing", e.KHealth, CriticalHealth),
		}
	}

	// Phase 2: economic veto. Repairing a worn-out machine that costs
	// more than its replacement is waste.
	if e.Type == Technosphere && e.KWear < WearFloor && e.EDebt > e.ReplacementCost {
		return Evaluation{
			Score:   0,
			Verdict: VerdictRecycle,
			Reason:  "repair cost exceeds replacement, recycle",
		}
	}

	// Phase 3: valuation.
	quality := qualityPotential(e)
	power := kineticPower(e)
	mu := quality * power * e.Alpha

	// Phase 4: classification.
	if e.Alpha <= DormantAlpha {
		if quality > ArchiveQualityFloor {
			return Evaluation{
				Score:   quality,
				Verdict: VerdictArchive,
				Reason:  fmt.Sprintf("sleeping giant: potential %.0f, stored for activation", quality),
			}
		}
		// A dormant idea the system cannot read is never discarded,
		// only shelved until it can be decoded.
		return Evaluation{
			Score:   0,
			Verdict: VerdictArchive,
			Reason:  "unrecognized signal: frozen for future decoding",
		}
	}

	if mu > AmplifyThreshold {
		return Evaluation{
			Score:   mu,
			Verdict: VerdictAmplify,
			Reason:  fmt.Sprintf("syntropy detected (mu=%.1f), allocate resources", mu),
		}
	}
	return Evaluation{
		Score:   mu,
		Verdict: VerdictStop,
		Reason:  fmt.Sprintf("entropy leak: cost exceeds value (mu=%.1f)", mu),
	}
}

// qualityPotential measures how much insight the structure packs: strong
// compression and near-optimal order score high.
func qualityPotential(e Entity) float64 {
	denom := math.Max(e.DataLen, 1.0)
	compression := 1.0 - e.CodeLen/denom
	if compression < 0 {
		compression = 0
	}
	return compression * orderVitality(e.OrderRatio) * 1000.0
}

// kineticPower is the physical capability to execute per unit of cost.
func kineticPower(e Entity) float64 {
	power := e.PTech*e.KWear + e.PBio*e.KHealth
	cost := e.EIn + e.EDebt
	return power / math.Max(cost, costEpsilon)
}

// orderVitality peaks at the optimal order ratio and penalizes both pure
// chaos and pure crystal.
func orderVitality(orderRatio float64) float64 {
	d := orderRatio - OptimalOrder
	return math.Exp(-(d * d) / (2 * SigmaWidth * SigmaWidth))
}
