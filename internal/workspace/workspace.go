package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const BaseDirName = ".syntropy"

// Settings are the per-user defaults the CLI reads on startup.
type Settings struct {
	UserID     string  `json:"user_id"`
	EnergyPool float64 `json:"energy_pool"`
}

// EnsureDefault prepares the workspace under the user's home directory.
func EnsureDefault() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return EnsureAt(filepath.Join(home, BaseDirName))
}

// EnsureAt creates the workspace layout at base and seeds default settings
// when none exist. It returns base for chaining.
func EnsureAt(base string) (string, error) {
	for _, p := range []string{
		filepath.Join(base, "data"),
		filepath.Join(base, "vault"),
	} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", p, err)
		}
	}

	settingsPath := filepath.Join(base, "settings.json")
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		defaults := Settings{
			UserID:     "local",
			EnergyPool: 1000,
		}
		raw, marshalErr := json.MarshalIndent(defaults, "", "  ")
		if marshalErr != nil {
			return "", fmt.Errorf("marshal settings: %w", marshalErr)
		}
		if writeErr := os.WriteFile(settingsPath, raw, 0o644); writeErr != nil {
			return "", fmt.Errorf("write settings: %w", writeErr)
		}
	}

	return base, nil
}

// LoadSettings reads settings.json from an ensured workspace.
func LoadSettings(base string) (Settings, error) {
	raw, err := os.ReadFile(filepath.Join(base, "settings.json"))
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// SubstratePath is the shared fact/event database location.
func SubstratePath(base string) string {
	return filepath.Join(base, "data", "substrate.db")
}

// VaultPath is the private draft database location.
func VaultPath(base string) string {
	return filepath.Join(base, "vault", "vault.db")
}
