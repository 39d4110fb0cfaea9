package substrate

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Anton-art/Syntropy/internal/clinic"
	"github.com/Anton-art/Syntropy/internal/engine"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "substrate.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreFactRoundTrip(t *testing.T) {
	store := openTestStore(t)

	id, err := store.StoreFact("Water", "boils_at", "100C", "user_007")
	if err != nil {
		t.Fatalf("store fact: %v", err)
	}
	if id == "" {
		t.Fatal("expected a fact id")
	}

	facts, err := store.SearchFacts("Wat")
	if err != nil {
		t.Fatalf("search facts: %v", err)
	}
	if len(facts) != 1 {
		t.Fatalf("expected 1 fact, got %d", len(facts))
	}
	got := facts[0]
	if got.ID != id || got.Subject != "Water" || got.Predicate != "boils_at" || got.Object != "100C" || got.SourceAgent != "user_007" {
		t.Fatalf("unexpected fact: %+v", got)
	}
	if got.CreatedAt <= 0 {
		t.Fatalf("expected a timestamp, got %v", got.CreatedAt)
	}

	none, err := store.SearchFacts("Napoleon")
	if err != nil {
		t.Fatalf("search facts: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no facts, got %d", len(none))
	}
}

func TestEventLogOrdering(t *testing.T) {
	store := openTestStore(t)
	for _, desc := range []string{"first", "second", "third"} {
		if err := store.LogEvent("DISCOVERY", desc, "agent-1"); err != nil {
			t.Fatalf("log event: %v", err)
		}
	}

	events, err := store.RecentEvents(2)
	if err != nil {
		t.Fatalf("recent events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Description != "third" {
		t.Fatalf("expected newest first, got %q", events[0].Description)
	}

	count, err := store.CountRows("event_log")
	if err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 rows, got %d", count)
	}
}

func TestPrescriptionPersistence(t *testing.T) {
	store := openTestStore(t)

	p := clinic.Prescription{
		Verdict:         engine.VerdictStop,
		Pathology:       "SEMANTIC_CHAOS",
		Treatment:       "Isolation",
		SigmaPenalty:    50,
		QuarantineLevel: 2,
		Confidence:      0.9,
		Reversible:      true,
	}
	id, err := store.SavePrescription("entity-9", p)
	if err != nil {
		t.Fatalf("save prescription: %v", err)
	}

	records, err := store.PrescriptionsFor("entity-9")
	if err != nil {
		t.Fatalf("load prescriptions: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	got := records[0]
	if got.ID != id || got.EntityID != "entity-9" {
		t.Fatalf("unexpected record identity: %+v", got)
	}
	if diff := cmp.Diff(p, got.Prescription, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("prescription mismatch (-want +got):\n%s", diff)
	}

	empty, err := store.PrescriptionsFor("entity-none")
	if err != nil {
		t.Fatalf("load prescriptions: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no records, got %d", len(empty))
	}
}

func TestVaultDraftLifecycle(t *testing.T) {
	vault, err := OpenVault(filepath.Join(t.TempDir(), "vault.db"))
	if err != nil {
		t.Fatalf("open vault: %v", err)
	}
	defer vault.Close()

	id, err := vault.SaveDraft("The universe is a hologram.", []string{"cosmology"})
	if err != nil {
		t.Fatalf("save draft: %v", err)
	}
	draft, err := vault.Retrieve(id)
	if err != nil {
		t.Fatalf("retrieve draft: %v", err)
	}
	if draft == nil {
		t.Fatal("expected the draft back")
	}
	if draft.Content != "The universe is a hologram." {
		t.Fatalf("unexpected content: %q", draft.Content)
	}
	if len(draft.Tags) != 1 || draft.Tags[0] != "cosmology" {
		t.Fatalf("unexpected tags: %v", draft.Tags)
	}

	missing, err := vault.Retrieve("no-such-id")
	if err != nil {
		t.Fatalf("retrieve missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing draft, got %+v", missing)
	}
}

func TestVaultArchiveRejectedTagsTheDraft(t *testing.T) {
	vault, err := OpenVault(filepath.Join(t.TempDir(), "vault.db"))
	if err != nil {
		t.Fatalf("open vault: %v", err)
	}
	defer vault.Close()

	id, err := vault.ArchiveRejected("Strange poem.", "no empirical evidence")
	if err != nil {
		t.Fatalf("archive rejected: %v", err)
	}
	draft, err := vault.Retrieve(id)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if draft == nil {
		t.Fatal("rejected content must still be stored")
	}
	want := []string{TagPotential, TagRejected, "no empirical evidence"}
	if diff := cmp.Diff(want, draft.Tags); diff != "" {
		t.Fatalf("tag mismatch (-want +got):\n%s", diff)
	}
}
