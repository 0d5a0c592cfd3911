package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/amba-app/amba/internal/database"
)

func setupAdjustmentTestDB(t *testing.T) (*AdjustmentStore, *AmbassadorStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewAdjustmentStore(db), NewAmbassadorStore(db)
}

func TestAdjustmentCreate(t *testing.T) {
	adj, as := setupAdjustmentTestDB(t)
	id := createTestAmbassador(t, as)

	a, err := adj.Create(id, -50, "correction", "2024-01-05")
	if err != nil {
		t.Fatalf("create adjustment: %v", err)
	}
	if a.Delta != -50 {
		t.Errorf("delta = %d, want -50", a.Delta)
	}
	if a.Note != "correction" {
		t.Errorf("note = %q, want %q", a.Note, "correction")
	}
	if a.Date != "2024-01-05" {
		t.Errorf("date = %q, want 2024-01-05", a.Date)
	}
}

func TestAdjustmentCreateDefaultsDate(t *testing.T) {
	adj, as := setupAdjustmentTestDB(t)
	id := createTestAmbassador(t, as)

	a, err := adj.Create(id, 10, "", "")
	if err != nil {
		t.Fatalf("create adjustment: %v", err)
	}
	if a.Date != Today() {
		t.Errorf("date = %q, want today %q", a.Date, Today())
	}
}

func TestAdjustmentDeltaBounds(t *testing.T) {
	adj, as := setupAdjustmentTestDB(t)
	id := createTestAmbassador(t, as)

	if _, err := adj.Create(id, 0, "", ""); !errors.Is(err, ErrZeroDelta) {
		t.Errorf("zero delta error = %v, want ErrZeroDelta", err)
	}
	if _, err := adj.Create(id, MaxDelta+1, "", ""); !errors.Is(err, ErrDeltaOutOfRange) {
		t.Errorf("over-max delta error = %v, want ErrDeltaOutOfRange", err)
	}
	if _, err := adj.Create(id, -MaxDelta-1, "", ""); !errors.Is(err, ErrDeltaOutOfRange) {
		t.Errorf("under-min delta error = %v, want ErrDeltaOutOfRange", err)
	}

	// Exactly at the bound is allowed
	if _, err := adj.Create(id, MaxDelta, "", ""); err != nil {
		t.Errorf("max delta: %v", err)
	}
	if _, err := adj.Create(id, -MaxDelta, "", ""); err != nil {
		t.Errorf("min delta: %v", err)
	}
}

func TestAdjustmentNoteTruncated(t *testing.T) {
	adj, as := setupAdjustmentTestDB(t)
	id := createTestAmbassador(t, as)

	long := strings.Repeat("x", 400)
	a, err := adj.Create(id, 5, long, "")
	if err != nil {
		t.Fatalf("create adjustment: %v", err)
	}
	if len(a.Note) != maxNoteLen {
		t.Errorf("note length = %d, want %d", len(a.Note), maxNoteLen)
	}
}

func TestAdjustmentAmbassadorNotFound(t *testing.T) {
	adj, _ := setupAdjustmentTestDB(t)

	if _, err := adj.Create(9999, 10, "", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("create error = %v, want ErrNotFound", err)
	}
}

func TestAdjustmentCreateAfterAmbassadorDelete(t *testing.T) {
	adj, as := setupAdjustmentTestDB(t)
	id := createTestAmbassador(t, as)

	if err := as.Delete(id); err != nil {
		t.Fatalf("delete ambassador: %v", err)
	}

	if _, err := adj.Create(id, 10, "", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("create error = %v, want ErrNotFound", err)
	}

	list, err := adj.List(0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("adjustments after rejected create = %d, want 0", len(list))
	}
}

func TestAdjustmentListOrdering(t *testing.T) {
	adj, as := setupAdjustmentTestDB(t)
	id := createTestAmbassador(t, as)

	// Out-of-order dates plus two on the same date to exercise the tie-break
	if _, err := adj.Create(id, 10, "third", "2024-02-01"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := adj.Create(id, 20, "first", "2024-01-01"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := adj.Create(id, 30, "fourth", "2024-02-01"); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := adj.List(id)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 adjustments, got %d", len(list))
	}
	if list[0].Note != "first" {
		t.Errorf("list[0].Note = %q, want %q", list[0].Note, "first")
	}
	// Same-date ties keep insertion order
	if list[1].Note != "third" || list[2].Note != "fourth" {
		t.Errorf("tie order = [%q, %q], want [third, fourth]", list[1].Note, list[2].Note)
	}
}

func TestAdjustmentListFiltered(t *testing.T) {
	adj, as := setupAdjustmentTestDB(t)
	a1 := createTestAmbassador(t, as)
	a2joined, err := as.Create("Berk", "berk", "5678", "")
	if err != nil {
		t.Fatalf("create ambassador: %v", err)
	}

	if _, err := adj.Create(a1, 10, "", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := adj.Create(a2joined.ID, 20, "", ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := adj.List(0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 adjustments, got %d", len(all))
	}

	mine, err := adj.List(a1)
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(mine) != 1 || mine[0].AmbassadorID != a1 {
		t.Errorf("filtered list = %+v, want only ambassador %d", mine, a1)
	}
}

func TestAdjustmentDelete(t *testing.T) {
	adj, as := setupAdjustmentTestDB(t)
	id := createTestAmbassador(t, as)

	a, err := adj.Create(id, 10, "", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := adj.Delete(a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	list, err := adj.List(id)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list after delete, got %d", len(list))
	}

	if err := adj.Delete(a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}
