package usecase

import (
	"context"
	"errors"
	"testing"

	"MarketSim/internal/domain/models"
)

func TestSeed_StoresAndPublishesAllSymbols(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{}
	s := NewSeeder(store, pub, newFakeMetrics(), nil, 50)

	summary, err := s.Seed(context.Background(), models.SeedRequest{
		Symbols:  []string{"AAPL", "MSFT"},
		From:     "2024-01-01",
		To:       "2024-01-31",
		Scenario: "bull",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// 23 weekdays in January 2024, two symbols.
	if summary.Symbols != 2 || summary.Bars != 46 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if !summary.Stored || !summary.Released {
		t.Fatalf("summary backends %+v", summary)
	}
	if len(store.bars) != 46 {
		t.Fatalf("stored %d bars, want 46", len(store.bars))
	}
	if len(pub.bars) != 46 {
		t.Fatalf("published %d bars, want 46", len(pub.bars))
	}
}

func TestSeed_DefaultsToFullUniverse(t *testing.T) {
	store := &fakeStore{}
	s := NewSeeder(store, nil, newFakeMetrics(), nil, 10)

	summary, err := s.Seed(context.Background(), models.SeedRequest{
		From: "2024-01-01",
		To:   "2024-01-05",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if summary.Symbols != 10 {
		t.Fatalf("seeded %d symbols, want 10", summary.Symbols)
	}
	// Jan 1-5 2024 is a full Mon-Fri week: 5 bars per symbol.
	if summary.Bars != 50 {
		t.Fatalf("seeded %d bars, want 50", summary.Bars)
	}
	if summary.Released {
		t.Fatal("no publisher wired but summary says released")
	}
}

func TestStored_ReadsBackSeededRange(t *testing.T) {
	store := &fakeStore{}
	s := NewSeeder(store, nil, newFakeMetrics(), nil, 100)

	if _, err := s.Seed(context.Background(), models.SeedRequest{
		Symbols: []string{"AAPL"},
		From:    "2024-01-01",
		To:      "2024-01-31",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	bars, err := s.Stored(context.Background(), "AAPL", "2024-01-08", "2024-01-12", 0)
	if err != nil {
		t.Fatalf("stored: %v", err)
	}
	if len(bars) != 5 {
		t.Fatalf("got %d bars, want 5 weekdays", len(bars))
	}

	limited, err := s.Stored(context.Background(), "AAPL", "2024-01-01", "2024-01-31", 3)
	if err != nil {
		t.Fatalf("stored with limit: %v", err)
	}
	if len(limited) != 3 {
		t.Fatalf("limit ignored, got %d bars", len(limited))
	}
}

func TestStored_RequiresWarehouse(t *testing.T) {
	s := NewSeeder(nil, nil, newFakeMetrics(), nil, 0)
	if _, err := s.Stored(context.Background(), "AAPL", "2024-01-01", "2024-01-31", 0); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("got %v, want %v", err, models.ErrNotFound)
	}
}

func TestSeed_RejectsBadInput(t *testing.T) {
	s := NewSeeder(nil, nil, newFakeMetrics(), nil, 0)

	if _, err := s.Seed(context.Background(), models.SeedRequest{From: "bad", To: "2024-01-31"}); !errors.Is(err, models.ErrInvalidParameter) {
		t.Fatalf("bad from: got %v", err)
	}
	if _, err := s.Seed(context.Background(), models.SeedRequest{
		From: "2024-01-01", To: "2024-01-31", Scenario: "sideways",
	}); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("bad scenario: got %v", err)
	}
	if _, err := s.Seed(context.Background(), models.SeedRequest{
		Symbols: []string{"NOPE"}, From: "2024-01-01", To: "2024-01-31",
	}); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("bad symbol: got %v", err)
	}
}
