package scanner

import (
	"os"
	"strconv"
	"strings"
)

// Fixed classification thresholds. These define the status taxonomy itself
// and are not tunable per deployment.
const (
	// MinWindowChars is the shortest trimmed chunk that can be scored.
	MinWindowChars = 5

	// codecHeaderAllowance approximates the fixed zlib stream overhead
	// (header, checksum, block framing) subtracted before the density ratio.
	codecHeaderAllowance = 11

	chaosCoherenceCeil    = 0.3
	disruptionDensityGate = 0.75
	disruptionCoherence   = 0.8
	crystalVitalityFloor  = 0.8

	sparkMaxFloor   = 20.0
	sparkMeanCeil   = 5.0
	ascensionSlope  = 0.5
	chainIntegrity  = 0.5
	integrityBonus  = 0.3
	bonusMultiplier = 1.2
)

type Config struct {
	// Target density per content family. Vitality peaks when the
	// compression ratio lands exactly on the target.
	ProseTarget   float64
	CodeTarget    float64
	UnknownTarget float64

	// SigmaWidth is the Gaussian tolerance around the target density.
	SigmaWidth float64

	// CodePunctRatio: structural characters above this fraction of the
	// word count classify a chunk as code.
	CodePunctRatio float64

	// ShortStreamWords: below this word count a stream degenerates to a
	// single window.
	ShortStreamWords int

	// Window sizes per resolution. Step is always half the window.
	StreamWindowTokens int
	MacroWindowTokens  int
	MesoWindowTokens   int
	MicroWindowTokens  int

	// Fractal escalation thresholds.
	MacroMeanFloor     float64
	MesoIntegrityFloor float64
	WeakestLinkFloor   float64
}

func DefaultConfig() Config {
	return Config{
		ProseTarget:        getenvFloat("SYN_PROSE_TARGET", 0.55),
		CodeTarget:         getenvFloat("SYN_CODE_TARGET", 0.40),
		UnknownTarget:      getenvFloat("SYN_UNKNOWN_TARGET", 0.50),
		SigmaWidth:         getenvFloat("SYN_SIGMA_WIDTH", 0.15),
		CodePunctRatio:     getenvFloat("SYN_CODE_PUNCT_RATIO", 0.10),
		ShortStreamWords:   getenvInt("SYN_SHORT_STREAM_WORDS", 100),
		StreamWindowTokens: getenvInt("SYN_STREAM_WINDOW", 150),
		MacroWindowTokens:  getenvInt("SYN_MACRO_WINDOW", 1000),
		MesoWindowTokens:   getenvInt("SYN_MESO_WINDOW", 300),
		MicroWindowTokens:  getenvInt("SYN_MICRO_WINDOW", 80),
		MacroMeanFloor:     getenvFloat("SYN_MACRO_MEAN_FLOOR", 10.0),
		MesoIntegrityFloor: getenvFloat("SYN_MESO_INTEGRITY_FLOOR", 0.4),
		WeakestLinkFloor:   getenvFloat("SYN_WEAKEST_LINK_FLOOR", 5.0),
	}
}

func getenvInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func getenvFloat(name string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
