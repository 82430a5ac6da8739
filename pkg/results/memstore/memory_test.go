package memstore

import (
	"context"
	"testing"
)

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	st := New()
	defer st.Close()

	run, err := st.SaveRun(ctx, "road-128", map[string]float64{"total": 250})
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, found, err := st.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !found {
		t.Fatal("run should be found")
	}
	if got.Metrics["total"] != 250 {
		t.Errorf("total = %v, want 250", got.Metrics["total"])
	}

	// Returned run must be a copy; mutating it must not leak into the store.
	got.Metrics["total"] = 1
	again, _, _ := st.GetRun(ctx, run.ID)
	if again.Metrics["total"] != 250 {
		t.Error("stored metrics should be isolated from returned copies")
	}
}

func TestListRunsOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	st := New()
	defer st.Close()

	for _, desc := range []string{"a", "b", "c"} {
		if _, err := st.SaveRun(ctx, desc, map[string]float64{"total": 1}); err != nil {
			t.Fatalf("SaveRun %s: %v", desc, err)
		}
	}

	runs, err := st.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	// ULIDs are monotonic within the store, so newest-first means
	// descending IDs.
	for i := 1; i < len(runs); i++ {
		if runs[i-1].ID < runs[i].ID {
			t.Errorf("runs out of order: %s before %s", runs[i-1].ID, runs[i].ID)
		}
	}

	limited, err := st.ListRuns(ctx, 1)
	if err != nil {
		t.Fatalf("ListRuns limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 run with limit, got %d", len(limited))
	}
}

func TestGetMissing(t *testing.T) {
	st := New()
	defer st.Close()

	_, found, err := st.GetRun(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if found {
		t.Error("missing run should not be found")
	}
}
