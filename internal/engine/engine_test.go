package engine

import (
	"strings"
	"testing"
)

func TestSomaticVetoOverridesEverything(t *testing.T) {
	// The burned-out genius: maximal capability, critical health.
	genius := Entity{
		ID: "human-01", Type: Biosphere, Name: "Tesla at 4am",
		CodeLen: 5, DataLen: 1000, OrderRatio: 0.75,
		PBio: 1000, KHealth: 0.1,
		EIn: 10, EDebt: 5000, Alpha: 1.0,
	}
	eval := Evaluate(genius)
	if eval.Verdict != VerdictRecovery {
		t.Fatalf("expected RECOVERY, got %s", eval.Verdict)
	}
	if eval.Score != 0 {
		t.Fatalf("expected zero score under somatic veto, got %v", eval.Score)
	}
	if !strings.Contains(eval.Reason, "critical health") {
		t.Fatalf("expected critical health reason, got %q", eval.Reason)
	}
}

func TestSomaticVetoIgnoresAllOtherFields(t *testing.T) {
	for _, alpha := range []float64{0, 0.5, 1.0} {
		e := Entity{
			ID: "b", Type: Biosphere,
			CodeLen: 0, DataLen: 1e6, OrderRatio: 0.75,
			PBio: 1e9, KHealth: 0.14, EIn: 1, Alpha: alpha,
		}
		eval := Evaluate(e)
		if eval.Verdict != VerdictRecovery || eval.Score != 0 {
			t.Fatalf("alpha=%v: expected RECOVERY/0, got %s/%v", alpha, eval.Verdict, eval.Score)
		}
	}
}

func TestEconomicVetoRecyclesWornOutAssets(t *testing.T) {
	rustbucket := Entity{
		ID: "machine-07", Type: Technosphere,
		KWear: 0.1, EDebt: 500, ReplacementCost: 100,
		PTech: 50, EIn: 10, Alpha: 1.0, DataLen: 1, OrderRatio: 0.75,
	}
	eval := Evaluate(rustbucket)
	if eval.Verdict != VerdictRecycle {
		t.Fatalf("expected RECYCLE, got %s", eval.Verdict)
	}
	if eval.Score != 0 {
		t.Fatalf("expected zero score, got %v", eval.Score)
	}
}

func TestEconomicVetoRequiresBothConditions(t *testing.T) {
	// Worn but cheap to fix: no veto, normal valuation applies.
	e := Entity{
		ID: "machine-08", Type: Technosphere,
		KWear: 0.1, EDebt: 50, ReplacementCost: 100,
		PTech: 50, EIn: 10, Alpha: 1.0, DataLen: 1, OrderRatio: 0.75,
	}
	if eval := Evaluate(e); eval.Verdict == VerdictRecycle {
		t.Fatalf("unexpected economic veto: %+v", eval)
	}
}

func TestDormantHighPotentialIsArchivedWithScore(t *testing.T) {
	blueprint := Entity{
		ID: "idea-01", Type: Idea, Name: "Compression insight",
		CodeLen: 5, DataLen: 1000, OrderRatio: 0.75,
		KHealth: 1.0, Alpha: 0.0,
	}
	eval := Evaluate(blueprint)
	if eval.Verdict != VerdictArchive {
		t.Fatalf("expected ARCHIVE, got %s", eval.Verdict)
	}
	if eval.Score <= ArchiveQualityFloor {
		t.Fatalf("expected score above %v, got %v", ArchiveQualityFloor, eval.Score)
	}
}

func TestDormantEntitiesAreNeverDiscarded(t *testing.T) {
	// The hard invariant: whatever a dormant idea looks like, it is
	// shelved, never deleted, stopped, or amplified.
	cases := []Entity{
		{ID: "van-gogh", Type: Idea, CodeLen: 500, DataLen: 600, OrderRatio: 0.2, KHealth: 1.0, Alpha: 0.0},
		{ID: "zero", Type: Idea, Alpha: 0.0},
		{ID: "noise", Type: Idea, CodeLen: 1000, DataLen: 1, OrderRatio: 1.0, Alpha: 0.01},
		{ID: "dense", Type: Technosphere, CodeLen: 1, DataLen: 1e9, OrderRatio: 0.75, KWear: 1.0, PTech: 1e6, EIn: 1, Alpha: 0.0},
		{ID: "healthy-bio", Type: Biosphere, KHealth: 0.9, PBio: 100, EIn: 5, Alpha: 0.005},
	}
	for _, e := range cases {
		eval := Evaluate(e)
		if eval.Verdict != VerdictArchive {
			t.Fatalf("%s: dormant entity must be ARCHIVE, got %s", e.ID, eval.Verdict)
		}
	}
}

func TestUnrecognizedDormantSignalArchivesAtZero(t *testing.T) {
	vanGogh := Entity{
		ID: "idea-99", Type: Idea, Name: "Strange Poem",
		CodeLen: 500, DataLen: 600, OrderRatio: 0.2,
		KHealth: 1.0, Alpha: 0.0,
	}
	eval := Evaluate(vanGogh)
	if eval.Verdict != VerdictArchive {
		t.Fatalf("expected ARCHIVE, got %s", eval.Verdict)
	}
	if eval.Score != 0 {
		t.Fatalf("unrecognized signal archives at zero score, got %v", eval.Score)
	}
	if !strings.Contains(eval.Reason, "unrecognized") {
		t.Fatalf("expected unrecognized signal reason, got %q", eval.Reason)
	}
}

func TestActiveSyntropyIsAmplified(t *testing.T) {
	builder := Entity{
		ID: "human-02", Type: Biosphere,
		CodeLen: 0, DataLen: 100, OrderRatio: 0.75,
		PBio: 100, KHealth: 1.0, EIn: 10, Alpha: 1.0,
	}
	eval := Evaluate(builder)
	if eval.Verdict != VerdictAmplify {
		t.Fatalf("expected AMPLIFY, got %s (%s)", eval.Verdict, eval.Reason)
	}
	if eval.Score <= AmplifyThreshold {
		t.Fatalf("expected mu above %v, got %v", AmplifyThreshold, eval.Score)
	}
}

func TestActiveEntropyLeakIsStopped(t *testing.T) {
	leak := Entity{
		ID: "proc-13", Type: Technosphere,
		CodeLen: 90, DataLen: 100, OrderRatio: 0.75,
		PTech: 1, KWear: 1.0, EIn: 100, EDebt: 100,
		ReplacementCost: 1000, Alpha: 1.0,
	}
	eval := Evaluate(leak)
	if eval.Verdict != VerdictStop {
		t.Fatalf("expected STOP, got %s (%s)", eval.Verdict, eval.Reason)
	}
	if eval.Score > AmplifyThreshold {
		t.Fatalf("expected mu at or below %v, got %v", AmplifyThreshold, eval.Score)
	}
}

func TestEvaluateNeverEmitsDelete(t *testing.T) {
	grid := []Entity{
		{ID: "a", Type: Technosphere, KWear: 0.05, EDebt: 1e6, Alpha: 1.0, DataLen: 1},
		{ID: "b", Type: Idea, Alpha: 0.0},
		{ID: "c", Type: Biosphere, KHealth: 0.01, Alpha: 1.0},
		{ID: "d", Type: Biosphere, KHealth: 1.0, PBio: 1, EIn: 1e9, Alpha: 1.0, DataLen: 1, OrderRatio: 0.75},
	}
	for _, e := range grid {
		if eval := Evaluate(e); eval.Verdict == VerdictDelete {
			t.Fatalf("%s: DELETE is reserved and must never be produced", e.ID)
		}
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	e := Entity{
		ID: "same", Type: Biosphere,
		CodeLen: 3, DataLen: 70, OrderRatio: 0.7,
		PBio: 40, KHealth: 0.8, EIn: 6, EDebt: 2, Alpha: 0.9,
	}
	a := Evaluate(e)
	b := Evaluate(e)
	if a != b {
		t.Fatalf("evaluation must be deterministic: %+v vs %+v", a, b)
	}
}

func TestValidateCatchesOutOfRangeFields(t *testing.T) {
	valid := Entity{ID: "ok", Type: Idea, DataLen: 10, OrderRatio: 0.5, KHealth: 1, KWear: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid entity, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Entity)
	}{
		{"negative data_len", func(e *Entity) { e.DataLen = -1 }},
		{"negative e_debt", func(e *Entity) { e.EDebt = -0.5 }},
		{"alpha above one", func(e *Entity) { e.Alpha = 1.5 }},
		{"order ratio above one", func(e *Entity) { e.OrderRatio = 2 }},
		{"negative k_health", func(e *Entity) { e.KHealth = -0.1 }},
		{"unknown type", func(e *Entity) { e.Type = "PLASMA" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := valid
			tc.mutate(&e)
			if err := e.Validate(); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}
