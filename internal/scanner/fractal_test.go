package scanner

import (
	"strings"
	"testing"
)

func noise(tokens int) string {
	return strings.TrimSpace(strings.Repeat("@# $% ^& *! ", (tokens+3)/4))
}

func TestAnalyzeFractalNoiseIsConceptualFailure(t *testing.T) {
	// Symbol soup has zero coherence everywhere, so every macro window
	// scores zero and the ladder stops at the first rung.
	state := AnalyzeFractal(noise(2400), DefaultConfig())
	if state.Diagnosis != DiagnosisConceptualFailure {
		t.Fatalf("expected CONCEPTUAL_FAILURE, got %s", state.Diagnosis)
	}
	if !state.AnomalyDetected {
		t.Fatal("expected anomaly flag")
	}
	if state.Consistency != 0.1 {
		t.Fatalf("expected terminal consistency 0.1, got %v", state.Consistency)
	}
}

func TestAnalyzeFractalShortTextDegeneratesWithoutPanic(t *testing.T) {
	// Fewer tokens than even the micro window: every stage scans the
	// whole text once.
	state := AnalyzeFractal(noise(40), DefaultConfig())
	if state.Diagnosis != DiagnosisConceptualFailure {
		t.Fatalf("expected CONCEPTUAL_FAILURE for short noise, got %s", state.Diagnosis)
	}
}

func TestSynthesizeHarmony(t *testing.T) {
	cfg := DefaultConfig()
	// 0.4*(30/30) + 0.4*1.0 + 0.2*(8/10) = 0.96
	state := synthesize(30, 1.0, 8, cfg)
	if state.Diagnosis != DiagnosisFractalHarmony {
		t.Fatalf("expected FRACTAL_HARMONY, got %s", state.Diagnosis)
	}
	if state.AnomalyDetected {
		t.Fatal("no anomaly expected with a strong weakest link")
	}
	if state.Consistency < 0.95 || state.Consistency > 0.97 {
		t.Fatalf("expected consistency 0.96, got %v", state.Consistency)
	}
}

func TestSynthesizeLocalAnomaly(t *testing.T) {
	state := synthesize(25, 0.8, 2, DefaultConfig())
	if state.Diagnosis != DiagnosisLocalAnomaly {
		t.Fatalf("expected LOCAL_ANOMALY, got %s", state.Diagnosis)
	}
	if !state.AnomalyDetected {
		t.Fatal("weakest link below floor must raise the anomaly flag")
	}
	if state.WeakestLink != 2 {
		t.Fatalf("expected weakest link 2, got %v", state.WeakestLink)
	}
}

func TestSynthesizeSolidDraft(t *testing.T) {
	// 0.4*(12/30) + 0.4*0.5 + 0.2*(6/10) = 0.48: consistent enough to
	// pass, not enough for harmony.
	state := synthesize(12, 0.5, 6, DefaultConfig())
	if state.Diagnosis != DiagnosisSolidDraft {
		t.Fatalf("expected SOLID_DRAFT, got %s", state.Diagnosis)
	}
	if state.AnomalyDetected {
		t.Fatal("no anomaly expected")
	}
}

func TestSynthesizeConsistencyClamped(t *testing.T) {
	state := synthesize(300, 1.0, 100, DefaultConfig())
	if state.Consistency != 1.0 {
		t.Fatalf("consistency must clamp to 1.0, got %v", state.Consistency)
	}
}

func TestScanWindowsDropsUnscorableSegments(t *testing.T) {
	cfg := DefaultConfig()
	scores := scanWindows("ab", cfg.MicroWindowTokens, cfg)
	if len(scores) != 0 {
		t.Fatalf("expected no scores for sub-minimum text, got %d", len(scores))
	}
}
