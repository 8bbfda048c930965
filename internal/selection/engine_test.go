package selection

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/gamenight/backend/internal/apperr"
	"github.com/gamenight/backend/internal/models"
)

// fakeStorage serves a fixed candidate list. When persist is set, a status
// change takes the item out of the suggested pool like real storage would;
// the distribution tests leave it off so every draw sees the same pool.
type fakeStorage struct {
	items   []models.Item
	persist bool

	statusCalls map[int64]models.Status

	// beforeTransition runs between the candidate read and the claim,
	// standing in for a concurrent pick.
	beforeTransition func()
}

func newFakeStorage(persist bool, items ...models.Item) *fakeStorage {
	return &fakeStorage{items: items, persist: persist, statusCalls: map[int64]models.Status{}}
}

func (f *fakeStorage) ListItemsByStatus(_ context.Context, status models.Status) ([]models.Item, error) {
	var out []models.Item
	for _, item := range f.items {
		if item.Status == status {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeStorage) TransitionItemStatus(_ context.Context, id int64, from, to models.Status) error {
	if f.beforeTransition != nil {
		f.beforeTransition()
	}
	if f.persist {
		for i := range f.items {
			if f.items[i].ID == id {
				if f.items[i].Status != from {
					return apperr.Conflictf("item is no longer %s", string(from))
				}
				f.items[i].Status = to
			}
		}
	}
	f.statusCalls[id] = to
	return nil
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestPickMajority(t *testing.T) {
	t.Run("clear leader wins and turns active", func(t *testing.T) {
		store := newFakeStorage(true,
			models.Item{ID: 1, Title: "Hades II", Status: models.StatusSuggested, VoteCount: 10},
			models.Item{ID: 2, Title: "Tunic", Status: models.StatusSuggested, VoteCount: 1},
		)
		engine := New(store, seeded(1))

		item, err := engine.Pick(context.Background(), StrategyMajority)
		if err != nil {
			t.Fatalf("Pick failed: %v", err)
		}
		if item.ID != 1 {
			t.Errorf("picked item %d, want 1 (the 10-vote leader)", item.ID)
		}
		if item.Status != models.StatusActive {
			t.Errorf("returned status = %s, want active", item.Status)
		}
		if store.statusCalls[1] != models.StatusActive {
			t.Error("status transition was not persisted")
		}
	})

	t.Run("only suggested items are candidates", func(t *testing.T) {
		store := newFakeStorage(true,
			models.Item{ID: 1, Status: models.StatusActive, VoteCount: 50},
			models.Item{ID: 2, Status: models.StatusFinished, VoteCount: 40},
			models.Item{ID: 3, Status: models.StatusSuggested, VoteCount: 0},
		)
		engine := New(store, seeded(1))

		item, err := engine.Pick(context.Background(), StrategyMajority)
		if err != nil {
			t.Fatalf("Pick failed: %v", err)
		}
		if item.ID != 3 {
			t.Errorf("picked item %d, want 3 (the only suggested one)", item.ID)
		}
	})

	t.Run("ties are broken among the tied set only", func(t *testing.T) {
		store := newFakeStorage(false,
			models.Item{ID: 1, Status: models.StatusSuggested, VoteCount: 5},
			models.Item{ID: 2, Status: models.StatusSuggested, VoteCount: 5},
			models.Item{ID: 3, Status: models.StatusSuggested, VoteCount: 2},
		)
		engine := New(store, seeded(42))

		for i := 0; i < 200; i++ {
			item, err := engine.Pick(context.Background(), StrategyMajority)
			if err != nil {
				t.Fatalf("Pick failed: %v", err)
			}
			if item.ID == 3 {
				t.Fatal("the 2-vote item must never win a majority pick")
			}
		}
	})

	t.Run("no suggested items is not found", func(t *testing.T) {
		store := newFakeStorage(true,
			models.Item{ID: 1, Status: models.StatusActive, VoteCount: 3},
		)
		engine := New(store, seeded(1))

		_, err := engine.Pick(context.Background(), StrategyMajority)
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("error = %v, want not found", err)
		}
	})

	t.Run("losing a concurrent pick is a conflict", func(t *testing.T) {
		store := newFakeStorage(true,
			models.Item{ID: 1, Title: "Hades II", Status: models.StatusSuggested, VoteCount: 3},
		)
		store.beforeTransition = func() {
			// Another pick claims the item between our read and our claim.
			store.items[0].Status = models.StatusActive
		}
		engine := New(store, seeded(1))

		_, err := engine.Pick(context.Background(), StrategyMajority)
		if !errors.Is(err, apperr.ErrConflict) {
			t.Errorf("error = %v, want conflict", err)
		}
	})
}

func TestPickLottery(t *testing.T) {
	t.Run("two unvoted items split evenly", func(t *testing.T) {
		store := newFakeStorage(false,
			models.Item{ID: 1, Status: models.StatusSuggested, VoteCount: 0},
			models.Item{ID: 2, Status: models.StatusSuggested, VoteCount: 0},
		)
		engine := New(store, seeded(7))

		const runs = 10000
		wins := map[int64]int{}
		for i := 0; i < runs; i++ {
			item, err := engine.Pick(context.Background(), StrategyLottery)
			if err != nil {
				t.Fatalf("Pick failed: %v", err)
			}
			wins[item.ID]++
		}

		// 3 sigma for a fair coin over 10000 draws is 150; 500 leaves
		// plenty of slack while still catching a broken draw.
		for id, n := range wins {
			if n < runs/2-500 || n > runs/2+500 {
				t.Errorf("item %d won %d of %d, want about %d", id, n, runs, runs/2)
			}
		}
	})

	t.Run("tickets scale with votes plus one", func(t *testing.T) {
		store := newFakeStorage(false,
			models.Item{ID: 1, Status: models.StatusSuggested, VoteCount: 3}, // 4 tickets
			models.Item{ID: 2, Status: models.StatusSuggested, VoteCount: 0}, // 1 ticket
		)
		engine := New(store, seeded(11))

		const runs = 10000
		wins := map[int64]int{}
		for i := 0; i < runs; i++ {
			item, err := engine.Pick(context.Background(), StrategyLottery)
			if err != nil {
				t.Fatalf("Pick failed: %v", err)
			}
			wins[item.ID]++
		}

		// Expected 8000/2000; the unvoted item must win sometimes but not often.
		if wins[2] == 0 {
			t.Error("zero-vote item never won; every candidate needs a non-zero chance")
		}
		if wins[2] < 1500 || wins[2] > 2500 {
			t.Errorf("one-ticket item won %d of %d, want about 2000", wins[2], runs)
		}
	})

	t.Run("single candidate always wins", func(t *testing.T) {
		store := newFakeStorage(true,
			models.Item{ID: 9, Status: models.StatusSuggested, VoteCount: 0},
		)
		engine := New(store, seeded(3))

		item, err := engine.Pick(context.Background(), StrategyLottery)
		if err != nil {
			t.Fatalf("Pick failed: %v", err)
		}
		if item.ID != 9 {
			t.Errorf("picked item %d, want 9", item.ID)
		}
	})
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		mode    string
		want    Strategy
		wantErr bool
	}{
		{"majority", StrategyMajority, false},
		{"lottery", StrategyLottery, false},
		{"", "", true},
		{"coinflip", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStrategy(tt.mode)
		if tt.wantErr {
			if !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("ParseStrategy(%q) error = %v, want validation", tt.mode, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseStrategy(%q) = %v, %v, want %v", tt.mode, got, err, tt.want)
		}
	}
}
