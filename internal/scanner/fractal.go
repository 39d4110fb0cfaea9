package scanner

// Diagnosis is the outcome of the multi-resolution escalation ladder.
type Diagnosis string

const (
	DiagnosisConceptualFailure  Diagnosis = "CONCEPTUAL_FAILURE"
	DiagnosisStructuralFracture Diagnosis = "STRUCTURAL_FRACTURE"
	DiagnosisLocalAnomaly       Diagnosis = "LOCAL_ANOMALY"
	DiagnosisFractalHarmony     Diagnosis = "FRACTAL_HARMONY"
	DiagnosisSolidDraft         Diagnosis = "SOLID_DRAFT"
)

// FractalState reports whether a text holds together across resolutions.
type FractalState struct {
	Consistency     float64
	AnomalyDetected bool
	WeakestLink     float64
	Diagnosis       Diagnosis
}

// AnalyzeFractal re-scans the same text at three decreasing window sizes,
// coarse to fine, each stage gated by the previous one. Its job is to tell
// genuine incoherence apart from dense-but-structured content that the
// single-resolution pass misread. Text shorter than a stage's window
// degenerates to one direct scan at that stage.
func AnalyzeFractal(text string, cfg Config) FractalState {
	// Macro: is there any large-scale signal at all?
	macro := scanWindows(text, cfg.MacroWindowTokens, cfg)
	macroMean := meanOf(macro)
	if macroMean < cfg.MacroMeanFloor {
		return FractalState{
			Consistency:     0.1,
			AnomalyDetected: true,
			Diagnosis:       DiagnosisConceptualFailure,
		}
	}

	// Meso: do the mid-scale passages hold crystal quality?
	meso := scanWindows(text, cfg.MesoWindowTokens, cfg)
	mesoIntegrity := integrityOf(meso)
	if mesoIntegrity < cfg.MesoIntegrityFloor {
		return FractalState{
			Consistency:     0.4,
			AnomalyDetected: true,
			WeakestLink:     minScoreOf(meso),
			Diagnosis:       DiagnosisStructuralFracture,
		}
	}

	// Micro: find the single weakest passage.
	micro := scanWindows(text, cfg.MicroWindowTokens, cfg)
	weakest := minScoreOf(micro)

	return synthesize(macroMean, mesoIntegrity, weakest, cfg)
}

// synthesize folds the three resolution signals into one state once no stage
// short-circuited.
func synthesize(macroMean, mesoIntegrity, weakest float64, cfg Config) FractalState {
	consistency := 0.4*(macroMean/30.0) + 0.4*mesoIntegrity + 0.2*(weakest/10.0)
	if consistency > 1.0 {
		consistency = 1.0
	}
	anomaly := weakest < cfg.WeakestLinkFloor

	diagnosis := DiagnosisSolidDraft
	switch {
	case anomaly:
		diagnosis = DiagnosisLocalAnomaly
	case consistency > 0.7:
		diagnosis = DiagnosisFractalHarmony
	}

	return FractalState{
		Consistency:     consistency,
		AnomalyDetected: anomaly,
		WeakestLink:     weakest,
		Diagnosis:       diagnosis,
	}
}

func meanOf(scores []*WindowScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, ws := range scores {
		sum += ws.Score
	}
	return sum / float64(len(scores))
}

func integrityOf(scores []*WindowScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	crystals := 0
	for _, ws := range scores {
		if ws.Status == StatusCrystal {
			crystals++
		}
	}
	return float64(crystals) / float64(len(scores))
}

func minScoreOf(scores []*WindowScore) float64 {
	if len(scores) == 0 {
		return 0
	}
	lowest := scores[0].Score
	for _, ws := range scores[1:] {
		if ws.Score < lowest {
			lowest = ws.Score
		}
	}
	return lowest
}
