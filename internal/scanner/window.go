package scanner

import (
	"bytes"
	"compress/zlib"
	"math"
	"regexp"
	"strings"
)

// ContentFamily tags what kind of text a window looks like; each family has
// its own target density.
type ContentFamily string

const (
	FamilyProse   ContentFamily = "PROSE"
	FamilyCode    ContentFamily = "CODE"
	FamilyUnknown ContentFamily = "UNKNOWN"
)

// Status classifies a single scored window.
type Status string

const (
	StatusLiquid     Status = "LIQUID"
	StatusCrystal    Status = "CRYSTAL"
	StatusChaos      Status = "CHAOS"
	StatusDisruption Status = "DISRUPTION"
)

// WindowScore is the result of scoring one bounded chunk of text.
type WindowScore struct {
	Density      float64
	Coherence    float64
	Vitality     float64
	Score        float64
	Status       Status
	Family       ContentFamily
	IsDisruption bool
}

var (
	wordToken    = regexp.MustCompile(`[A-Za-z0-9]+`)
	strippedChar = regexp.MustCompile(`[\s.,:;!?'"()\-]`)
)

// Characters that carry structure in source code rather than prose.
const structuralChars = "{}[]()<>=&|#$%^*/\\+~`"

// ScoreWindow scores one chunk of text. It returns nil when the chunk, after
// trimming, is too short to carry signal; callers skip such windows.
func ScoreWindow(text string, cfg Config) *WindowScore {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < MinWindowChars {
		return nil
	}

	family := classifyFamily(trimmed, cfg)
	target := cfg.targetFor(family)

	raw := []byte(trimmed)
	density := compressionDensity(raw)
	coherence := tokenCoherence(trimmed)
	vitality := gaussianVitality(density, target, cfg.SigmaWidth)
	score := math.Log(float64(len(raw))+1) * vitality * coherence * 10.0

	ws := &WindowScore{
		Density:   density,
		Coherence: coherence,
		Vitality:  vitality,
		Score:     score,
		Family:    family,
	}

	// CHAOS is checked first and is terminal; the remaining checks
	// tie-break in this order.
	switch {
	case coherence < chaosCoherenceCeil:
		ws.Status = StatusChaos
	case density > disruptionDensityGate && coherence > disruptionCoherence:
		ws.Status = StatusDisruption
		ws.IsDisruption = true
	case vitality > crystalVitalityFloor:
		ws.Status = StatusCrystal
	default:
		ws.Status = StatusLiquid
	}
	return ws
}

func (c Config) targetFor(family ContentFamily) float64 {
	switch family {
	case FamilyProse:
		return c.ProseTarget
	case FamilyCode:
		return c.CodeTarget
	default:
		return c.UnknownTarget
	}
}

func classifyFamily(text string, cfg Config) ContentFamily {
	words := len(strings.Fields(text))
	if words == 0 {
		return FamilyUnknown
	}
	structural := 0
	for _, r := range text {
		if strings.ContainsRune(structuralChars, r) {
			structural++
		}
	}
	if float64(structural) > cfg.CodePunctRatio*float64(words) {
		return FamilyCode
	}
	return FamilyProse
}

// compressionDensity is the compressed-to-original byte ratio: a cheap proxy
// for structural redundancy. Low means repetitive, high means novel or noisy.
func compressionDensity(raw []byte) float64 {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, _ = zw.Write(raw)
	_ = zw.Close()

	compressed := buf.Len() - codecHeaderAllowance
	if compressed < 1 {
		compressed = 1
	}
	density := float64(compressed) / float64(len(raw))
	if density > 1.0 {
		density = 1.0
	}
	return density
}

// tokenCoherence measures how much of the text consists of real word-like
// tokens, as opposed to symbol soup.
func tokenCoherence(text string) float64 {
	stripped := strippedChar.ReplaceAllString(text, "")
	if len(stripped) == 0 {
		return 0
	}
	sum := 0
	for _, tok := range wordToken.FindAllString(text, -1) {
		if len(tok) >= 2 {
			sum += len(tok)
		}
	}
	coherence := float64(sum) / float64(len(stripped))
	if coherence > 1.0 {
		coherence = 1.0
	}
	return coherence
}

// gaussianVitality peaks at 1.0 when value sits exactly on target and decays
// toward both extremes: pure repetition and pure noise are equally penalized.
func gaussianVitality(value, target, width float64) float64 {
	d := value - target
	return math.Exp(-(d * d) / (2 * width * width))
}
