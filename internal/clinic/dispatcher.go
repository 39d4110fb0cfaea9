package clinic

import (
	"fmt"

	"github.com/Anton-art/Syntropy/internal/engine"
	"github.com/Anton-art/Syntropy/internal/scanner"
)

const (
	// Fixed allocations reported to the budget collaborator.
	GrowthAllocation = 10.0
	LogicAllocation  = 1.0

	CategoryGrowth = "growth"
	CategoryLogic  = "logic"

	// HighEnergyAlpha marks an entity as running hot.
	HighEnergyAlpha = 0.8
	// FalseAlarmConsistency: above this the deep scan overrules the
	// cheap pass — the content was dense art, not noise.
	FalseAlarmConsistency = 0.7

	// Isolation action parameters.
	isolationConfidenceGate = 0.7
	isolationPenalty        = 50.0
	isolationQuarantine     = 2

	recycleConfidence = 0.8
	recyclePenalty    = 5.0

	mitigationCreativeFlow = 0.5
	mitigationBioCritical  = 0.8
)

// TextAnalyzer is the scoring surface the dispatcher consults for text
// evidence: the cheap stream pass and the gated escalation scan.
type TextAnalyzer interface {
	AnalyzeStream(text string) *scanner.StreamResult
	AnalyzeFractal(text string) scanner.FractalState
}

// scanAnalyzer is the production TextAnalyzer backed by the scanner package.
type scanAnalyzer struct {
	cfg scanner.Config
}

func (a scanAnalyzer) AnalyzeStream(text string) *scanner.StreamResult {
	return scanner.AnalyzeStream(text, a.cfg)
}

func (a scanAnalyzer) AnalyzeFractal(text string) scanner.FractalState {
	return scanner.AnalyzeFractal(text, a.cfg)
}

// Dispatcher orchestrates the full diagnosis: support check, cheap text
// pass, gated deep scan, entity valuation, and the decision table. It holds
// no mutable state of its own; collaborators are injected once.
type Dispatcher struct {
	support  SupportProvider
	budget   BudgetAllocator
	logger   Logger
	analyzer TextAnalyzer
}

func NewDispatcher(support SupportProvider, budget BudgetAllocator, logger Logger, scanCfg scanner.Config) *Dispatcher {
	return &Dispatcher{
		support:  support,
		budget:   budget,
		logger:   logger,
		analyzer: scanAnalyzer{cfg: scanCfg},
	}
}

// Diagnose merges all signals for one entity into a single prescription.
// text and testimony are optional; an empty text skips the stream pass.
func (d *Dispatcher) Diagnose(entity engine.Entity, user *UserState, text string, testimony *Testimony) Prescription {
	// Support and amnesty outrank every scorer: a user in need gets help,
	// not a verdict.
	if d.support != nil {
		if msg := d.support.ProvideSupport(user, testimony); msg != "" {
			d.log("DECISION", "support", "support intervention, scoring skipped", msg)
			d.allocate(GrowthAllocation, CategoryGrowth)
			return Prescription{
				Verdict:    engine.VerdictAmplify,
				Pathology:  "AMNESTY",
				Treatment:  msg,
				Confidence: 1.0,
				Reversible: true,
			}
		}
	}

	symptoms := symptomSet{}

	// Cheap pass first; the expensive fractal scan runs only when the
	// stream verdict is ambiguous enough to need confirmation.
	if text != "" {
		if stream := d.analyzer.AnalyzeStream(text); stream != nil {
			d.log("ANALYSIS", "stream", "stream scored",
				fmt.Sprintf("structure=%s global=%.2f windows=%d integrity=%.2f",
					stream.Structure, stream.GlobalScore, len(stream.Series), stream.Integrity))
			if stream.Structure == scanner.StructureChaos || stream.Structure == scanner.StructureDisruption {
				state := d.analyzer.AnalyzeFractal(text)
				d.log("ANALYSIS", "fractal", "escalation scan completed",
					fmt.Sprintf("diagnosis=%s consistency=%.2f weakest=%.2f", state.Diagnosis, state.Consistency, state.WeakestLink))
				if state.Consistency > FalseAlarmConsistency {
					d.log("ANALYSIS", "fractal", "false alarm suppressed", "dense structured content, no symptom recorded")
				} else {
					symptoms.add(SymptomSemanticChaos)
				}
			}
		}
	}

	eval := engine.Evaluate(entity)
	d.log("ANALYSIS", "engine", "entity evaluated",
		fmt.Sprintf("verdict=%s score=%.2f reason=%s", eval.Verdict, eval.Score, eval.Reason))
	if eval.Verdict == engine.VerdictStop {
		symptoms.add(SymptomNegativeValue)
	}
	if entity.Alpha > HighEnergyAlpha {
		symptoms.add(SymptomHighEnergy)
	}

	mitigation := mitigationScore(symptoms, testimony)
	p := d.decide(symptoms, testimony, mitigation)
	d.log("DECISION", "dispatch", "prescription emitted",
		fmt.Sprintf("verdict=%s pathology=%s confidence=%.2f penalty=%.1f quarantine=%d",
			p.Verdict, p.Pathology, p.Confidence, p.SigmaPenalty, p.QuarantineLevel))
	return p
}

// mitigationScore only ever reduces downstream confidence, never increases
// a penalty.
func mitigationScore(symptoms symptomSet, testimony *Testimony) float64 {
	if testimony == nil {
		return 0
	}
	mitigation := 0.0
	if symptoms.has(SymptomSemanticChaos) && testimony.ContextMode == ContextCreativeFlow {
		mitigation += mitigationCreativeFlow
	}
	if testimony.BiologicalState == BioCritical {
		mitigation += mitigationBioCritical
	}
	return mitigation
}

// rule is one guard/action pair of the ordered decision table.
type rule struct {
	name   string
	match  func(symptoms symptomSet) bool
	decide func(d *Dispatcher, symptoms symptomSet, testimony *Testimony, mitigation float64) Prescription
}

// decisionTable is evaluated in order; the first matching rule wins.
var decisionTable = []rule{
	{
		name: "chaotic high-energy process",
		match: func(s symptomSet) bool {
			return s.has(SymptomSemanticChaos) && s.has(SymptomHighEnergy)
		},
		decide: func(d *Dispatcher, s symptomSet, _ *Testimony, mitigation float64) Prescription {
			confidence := 0.6
			if s.has(SymptomNegativeValue) {
				confidence = 0.9
			}
			confidence -= mitigation
			if confidence > isolationConfidenceGate {
				// Reversible on purpose: isolation is a quarantine
				// that an appeal can lift, not a destruction.
				return Prescription{
					Verdict:         engine.VerdictStop,
					Pathology:       string(SymptomSemanticChaos),
					Treatment:       "Isolation",
					SigmaPenalty:    isolationPenalty,
					QuarantineLevel: isolationQuarantine,
					Confidence:      confidence,
					Reversible:      true,
				}
			}
			// Benefit of the doubt: the plea holds, so the process is
			// allowed with explicitly zero confidence.
			return Prescription{
				Verdict:    engine.VerdictAmplify,
				Pathology:  string(SymptomSemanticChaos),
				Treatment:  "Allowed (agent plea)",
				Confidence: 0.0,
				Reversible: true,
			}
		},
	},
	{
		name: "negative value loop",
		match: func(s symptomSet) bool {
			return s.has(SymptomNegativeValue)
		},
		decide: func(d *Dispatcher, _ symptomSet, testimony *Testimony, _ float64) Prescription {
			penalty := recyclePenalty
			if testimony != nil && testimony.ContextMode == ContextLearning {
				penalty = 0
			}
			return Prescription{
				Verdict:      engine.VerdictRecycle,
				Pathology:    string(SymptomNegativeValue),
				Treatment:    "Feedback loop",
				SigmaPenalty: penalty,
				Confidence:   recycleConfidence,
				Reversible:   true,
			}
		},
	},
	{
		name: "healthy flow",
		match: func(symptomSet) bool {
			return true
		},
		decide: func(d *Dispatcher, _ symptomSet, _ *Testimony, _ float64) Prescription {
			d.allocate(LogicAllocation, CategoryLogic)
			return Prescription{
				Verdict:    engine.VerdictAmplify,
				Pathology:  "NONE",
				Treatment:  "Healthy flow",
				Confidence: 1.0,
				Reversible: true,
			}
		},
	},
}

func (d *Dispatcher) decide(symptoms symptomSet, testimony *Testimony, mitigation float64) Prescription {
	for _, r := range decisionTable {
		if r.match(symptoms) {
			return r.decide(d, symptoms, testimony, mitigation)
		}
	}
	// Unreachable: the last rule always matches.
	return Prescription{Verdict: engine.VerdictAmplify, Pathology: "NONE", Confidence: 0}
}

func (d *Dispatcher) allocate(amount float64, category string) {
	if d.budget == nil {
		return
	}
	if !d.budget.Allocate(amount, category) {
		d.log("WARN", "budget", "allocation rejected", fmt.Sprintf("amount=%.1f category=%s", amount, category))
	}
}

func (d *Dispatcher) log(level, stage, message, detail string) {
	if d.logger != nil {
		d.logger.Log(level, stage, message, detail)
	}
}
