package scanner

import (
	"strings"

	"github.com/Anton-art/Syntropy/internal/chunk"
)

// Structure classifies the shape of an entire stream of windows.
type Structure string

const (
	StructureWaves        Structure = "WAVES"
	StructureSparkInDark  Structure = "SPARK_IN_DARK"
	StructureAscension    Structure = "ASCENSION"
	StructureCrystalChain Structure = "CRYSTAL_CHAIN"
	StructureChaos        Structure = "CHAOS"
	StructureDisruption   Structure = "DISRUPTION"
)

// StreamResult aggregates per-window scores over a whole text. Series keeps
// one score per window in window order; trend detection depends on it.
type StreamResult struct {
	Structure   Structure
	GlobalScore float64
	Series      []float64
	Integrity   float64
}

// AnalyzeStream slices arbitrarily long text into overlapping windows, scores
// each, and classifies the overall structure. Texts under the short-stream
// word count are scored as a single degenerate window. Returns nil when no
// window survives scoring.
func AnalyzeStream(text string, cfg Config) *StreamResult {
	var scores []*WindowScore
	if chunk.TokenCount(text) < cfg.ShortStreamWords {
		ws := ScoreWindow(text, cfg)
		if ws == nil {
			return nil
		}
		scores = []*WindowScore{ws}
	} else {
		scores = scanWindows(text, cfg.StreamWindowTokens, cfg)
		if len(scores) == 0 {
			return nil
		}
	}
	return aggregate(scores)
}

// scanWindows re-windows text at the given resolution and scores every
// window, dropping the ones too short to score. Step is half the window.
func scanWindows(text string, windowTokens int, cfg Config) []*WindowScore {
	segments := chunk.SlidingWindow(text, windowTokens, windowTokens/2)
	scores := make([]*WindowScore, 0, len(segments))
	for _, seg := range segments {
		if ws := ScoreWindow(seg.Text, cfg); ws != nil {
			scores = append(scores, ws)
		}
	}
	return scores
}

func aggregate(scores []*WindowScore) *StreamResult {
	series := make([]float64, len(scores))
	crystals := 0
	anyChaos := false
	anyDisruption := false
	meanScore := 0.0
	maxScore := 0.0
	for i, ws := range scores {
		series[i] = ws.Score
		meanScore += ws.Score
		if ws.Score > maxScore {
			maxScore = ws.Score
		}
		switch {
		case ws.Status == StatusCrystal:
			crystals++
		case ws.Status == StatusChaos:
			anyChaos = true
		}
		if ws.IsDisruption {
			anyDisruption = true
		}
	}
	meanScore /= float64(len(scores))
	integrity := float64(crystals) / float64(len(scores))
	slope := regressionSlope(series)

	global := 0.4*meanScore + 0.6*maxScore
	if integrity > integrityBonus {
		global *= bonusMultiplier
	}

	structure := StructureWaves
	switch {
	case maxScore > sparkMaxFloor && meanScore < sparkMeanCeil:
		structure = StructureSparkInDark
	case slope > ascensionSlope:
		structure = StructureAscension
	case integrity > chainIntegrity:
		structure = StructureCrystalChain
	case anyChaos:
		structure = StructureChaos
	case anyDisruption:
		structure = StructureDisruption
	}

	return &StreamResult{
		Structure:   structure,
		GlobalScore: global,
		Series:      series,
		Integrity:   integrity,
	}
}

// regressionSlope is the least-squares slope of score against window index.
// A positive slope means the text builds toward higher structure. Too few
// points yield no trend.
func regressionSlope(series []float64) float64 {
	n := len(series)
	if n < 3 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

// Preview returns a short single-line excerpt for logs and reports.
func Preview(text string, limit int) string {
	flat := strings.Join(strings.Fields(text), " ")
	if len(flat) <= limit {
		return flat
	}
	return flat[:limit] + "..."
}
