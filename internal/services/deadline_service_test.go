package services

import (
	"context"
	"errors"
	"testing"

	"github.com/focusmate/focusmate-cli/internal/adapters/storage"
	"github.com/focusmate/focusmate-cli/internal/domain"
)

func setupDeadlines(t *testing.T) (*DeadlineService, *fakeBackend) {
	t.Helper()
	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	store.SetUserID(context.Background(), 1)

	backend := newFakeBackend()
	backend.deadlines = []domain.Deadline{
		{ID: 1, Task: "讀離散數學第五章", DeadlineDate: "2025-06-10", DisplayOrder: 1},
		{ID: 2, Task: "寫作業三", DeadlineDate: "2025-06-12", DisplayOrder: 2, CurrentDoing: true},
		{ID: 3, Task: "準備期末報告", DeadlineDate: "2025-06-20", DisplayOrder: 3},
	}
	return NewDeadlineService(backend, store), backend
}

func TestDeadlineService_Find(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupDeadlines(t)

	t.Run("numeric ref is an exact id", func(t *testing.T) {
		d, err := svc.Find(ctx, "2")
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if d.ID != 2 {
			t.Errorf("Find() id = %d, want 2", d.ID)
		}
	})

	t.Run("text ref is a fuzzy match", func(t *testing.T) {
		d, err := svc.Find(ctx, "期末")
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if d.ID != 3 {
			t.Errorf("Find() id = %d, want 3", d.ID)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Find(ctx, "99")
		if !errors.Is(err, domain.ErrDeadlineNotFound) {
			t.Errorf("Find() error = %v, want ErrDeadlineNotFound", err)
		}
	})

	t.Run("no fuzzy match", func(t *testing.T) {
		_, err := svc.Find(ctx, "zzzzzz")
		if !errors.Is(err, domain.ErrDeadlineNotFound) {
			t.Errorf("Find() error = %v, want ErrDeadlineNotFound", err)
		}
	})
}

func TestDeadlineService_Edit(t *testing.T) {
	ctx := context.Background()
	svc, backend := setupDeadlines(t)

	t.Run("empty fields keep current values", func(t *testing.T) {
		if err := svc.Edit(ctx, "1", "", "2025-06-11"); err != nil {
			t.Fatalf("Edit() error = %v", err)
		}
		if backend.deadlines[0].Task != "讀離散數學第五章" {
			t.Errorf("task = %q, should be unchanged", backend.deadlines[0].Task)
		}
		if backend.deadlines[0].DeadlineDate != "2025-06-11" {
			t.Errorf("date = %q, want 2025-06-11", backend.deadlines[0].DeadlineDate)
		}
	})
}

func TestDeadlineService_SetDoing(t *testing.T) {
	ctx := context.Background()
	svc, backend := setupDeadlines(t)

	if err := svc.SetDoing(ctx, "3"); err != nil {
		t.Fatalf("SetDoing() error = %v", err)
	}

	for _, d := range backend.deadlines {
		if d.ID == 3 && !d.CurrentDoing {
			t.Error("target should carry the doing marker")
		}
		if d.ID == 2 && d.CurrentDoing {
			t.Error("previous holder should be cleared")
		}
	}
}

func TestDeadlineService_Move(t *testing.T) {
	ctx := context.Background()

	t.Run("moves to front", func(t *testing.T) {
		svc, backend := setupDeadlines(t)

		if err := svc.Move(ctx, "3", 1); err != nil {
			t.Fatalf("Move() error = %v", err)
		}
		if len(backend.reordered) != 1 {
			t.Fatalf("reorder calls = %d, want 1", len(backend.reordered))
		}
		got := backend.reordered[0]
		want := []int{3, 1, 2}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("reordered = %v, want %v", got, want)
			}
		}
	})

	t.Run("position out of range", func(t *testing.T) {
		svc, _ := setupDeadlines(t)
		if err := svc.Move(ctx, "1", 5); err == nil {
			t.Error("Move() should reject an out-of-range position")
		}
	})
}
