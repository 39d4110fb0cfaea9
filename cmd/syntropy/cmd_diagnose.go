package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Anton-art/Syntropy/internal/clinic"
	"github.com/Anton-art/Syntropy/internal/engine"
	"github.com/Anton-art/Syntropy/internal/ingest"
	"github.com/Anton-art/Syntropy/internal/scanner"
	"github.com/Anton-art/Syntropy/internal/substrate"
	"github.com/Anton-art/Syntropy/internal/workspace"
)

var diagnoseFlags struct {
	entityPath   string
	textPath     string
	contextMode  string
	bioState     string
	plea         string
	wallet       float64
	skipValidate bool
}

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Run the full clinical pipeline on one entity",
	Long: "Diagnose combines the support check, the stream scan, the gated\n" +
		"escalation scan, and entity valuation into one prescription, then\n" +
		"persists the decision record in the workspace substrate.",
	RunE: runDiagnose,
}

func init() {
	f := diagnoseCmd.Flags()
	f.StringVar(&diagnoseFlags.entityPath, "entity", "", "Path to entity JSON (required)")
	f.StringVar(&diagnoseFlags.textPath, "text", "", "Optional document to scan alongside the entity")
	f.StringVar(&diagnoseFlags.contextMode, "context-mode", "", "Testimony context mode (e.g. CREATIVE_FLOW, LEARNING)")
	f.StringVar(&diagnoseFlags.bioState, "bio-state", "", "Testimony biological state (STABLE or CRITICAL)")
	f.StringVar(&diagnoseFlags.plea, "plea", "", "Testimony defense plea")
	f.Float64Var(&diagnoseFlags.wallet, "wallet", 100, "Current wallet balance of the examined user")
	f.BoolVar(&diagnoseFlags.skipValidate, "skip-validate", false, "Skip entity range validation")

	_ = diagnoseCmd.MarkFlagRequired("entity")
}

// entityJSON mirrors the entity wire shape producers submit.
type entityJSON struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"`
	Name            string  `json:"name"`
	CodeLen         float64 `json:"code_len"`
	DataLen         float64 `json:"data_len"`
	OrderRatio      float64 `json:"order_ratio"`
	PTech           float64 `json:"p_tech"`
	KWear           float64 `json:"k_wear"`
	PBio            float64 `json:"p_bio"`
	KHealth         float64 `json:"k_health"`
	EIn             float64 `json:"e_in"`
	EDebt           float64 `json:"e_debt"`
	Alpha           float64 `json:"alpha"`
	ReplacementCost float64 `json:"replacement_cost"`
}

func runDiagnose(cmd *cobra.Command, _ []string) error {
	raw, err := os.ReadFile(diagnoseFlags.entityPath)
	if err != nil {
		return fmt.Errorf("read entity: %w", err)
	}
	var ej entityJSON
	if err := json.Unmarshal(raw, &ej); err != nil {
		return fmt.Errorf("parse entity: %w", err)
	}
	entity := engine.Entity{
		ID:              ej.ID,
		Type:            engine.EntityType(ej.Type),
		Name:            ej.Name,
		CodeLen:         ej.CodeLen,
		DataLen:         ej.DataLen,
		OrderRatio:      ej.OrderRatio,
		PTech:           ej.PTech,
		KWear:           ej.KWear,
		PBio:            ej.PBio,
		KHealth:         ej.KHealth,
		EIn:             ej.EIn,
		EDebt:           ej.EDebt,
		Alpha:           ej.Alpha,
		ReplacementCost: ej.ReplacementCost,
	}
	if !diagnoseFlags.skipValidate {
		if err := entity.Validate(); err != nil {
			return fmt.Errorf("invalid entity: %w", err)
		}
	}

	text := ""
	if diagnoseFlags.textPath != "" {
		doc, err := ingest.ParseFile(diagnoseFlags.textPath)
		if err != nil {
			return fmt.Errorf("ingest text: %w", err)
		}
		text = doc.Text
	}

	var testimony *clinic.Testimony
	if diagnoseFlags.contextMode != "" || diagnoseFlags.bioState != "" || diagnoseFlags.plea != "" {
		testimony = &clinic.Testimony{
			ContextMode:     diagnoseFlags.contextMode,
			BiologicalState: diagnoseFlags.bioState,
			DefensePlea:     diagnoseFlags.plea,
		}
	}

	base, err := workspace.EnsureDefault()
	if err != nil {
		return fmt.Errorf("workspace: %w", err)
	}
	settings, err := workspace.LoadSettings(base)
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	store, err := substrate.Open(workspace.SubstratePath(base))
	if err != nil {
		return fmt.Errorf("substrate: %w", err)
	}
	defer store.Close()

	budget := clinic.NewEnergyBudget(settings.EnergyPool)
	dispatcher := clinic.NewDispatcher(clinic.NewWalletSupport(), budget, stdLogger{}, scanner.DefaultConfig())

	user := &clinic.UserState{UserID: settings.UserID, WalletBalance: diagnoseFlags.wallet}
	prescription := dispatcher.Diagnose(entity, user, text, testimony)

	recordID, err := store.SavePrescription(entity.ID, prescription)
	if err != nil {
		return fmt.Errorf("persist prescription: %w", err)
	}
	if err := store.LogEvent("DIAGNOSIS", fmt.Sprintf("%s -> %s", entity.Name, prescription.Verdict), settings.UserID); err != nil {
		return fmt.Errorf("log event: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Record:      %s\n", recordID)
	fmt.Fprintf(out, "Verdict:     %s\n", prescription.Verdict)
	fmt.Fprintf(out, "Pathology:   %s\n", prescription.Pathology)
	fmt.Fprintf(out, "Treatment:   %s\n", prescription.Treatment)
	fmt.Fprintf(out, "Penalty:     %.1f\n", prescription.SigmaPenalty)
	fmt.Fprintf(out, "Quarantine:  %d\n", prescription.QuarantineLevel)
	fmt.Fprintf(out, "Confidence:  %.2f\n", prescription.Confidence)
	fmt.Fprintf(out, "Reversible:  %t\n", prescription.Reversible)
	return nil
}
