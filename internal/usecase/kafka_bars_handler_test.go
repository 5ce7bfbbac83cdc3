package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"MarketSim/internal/domain/models"
)

func goodBar(symbol string, day int) models.Bar {
	return models.Bar{
		Symbol: symbol,
		Date:   time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Open:   100, High: 101, Low: 99, Close: 100.5,
		Volume: 5000,
	}
}

func TestKafkaBarsHandler_StoresValidBars(t *testing.T) {
	store := &fakeStore{}
	h := NewKafkaBarsHandler("bars.ingest", store, newFakeMetrics(), nil)

	if h.Topic() != "bars.ingest" {
		t.Fatalf("topic %q", h.Topic())
	}

	payload, _ := json.Marshal([]models.Bar{goodBar("AAPL", 2), goodBar("AAPL", 3)})
	if err := h.Handle(context.Background(), payload); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(store.bars) != 2 {
		t.Fatalf("stored %d bars, want 2", len(store.bars))
	}
}

func TestKafkaBarsHandler_SingleObjectPayload(t *testing.T) {
	store := &fakeStore{}
	h := NewKafkaBarsHandler("bars.ingest", store, newFakeMetrics(), nil)

	payload, _ := json.Marshal(goodBar("MSFT", 2))
	if err := h.Handle(context.Background(), payload); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(store.bars) != 1 {
		t.Fatalf("stored %d bars, want 1", len(store.bars))
	}
}

func TestKafkaBarsHandler_DropsInvalidBars(t *testing.T) {
	store := &fakeStore{}
	m := newFakeMetrics()
	h := NewKafkaBarsHandler("bars.ingest", store, m, nil)

	bad := goodBar("AAPL", 2)
	bad.High = 50 // below body and low

	payload, _ := json.Marshal([]models.Bar{goodBar("AAPL", 3), bad})
	if err := h.Handle(context.Background(), payload); err != nil {
		t.Fatalf("handle with partial bad data: %v", err)
	}
	if len(store.bars) != 1 {
		t.Fatalf("stored %d bars, want 1", len(store.bars))
	}
	if m.violations["high_below_body"] == 0 {
		t.Fatal("violation not counted")
	}
}

func TestKafkaBarsHandler_AllRejectedIsError(t *testing.T) {
	store := &fakeStore{}
	h := NewKafkaBarsHandler("bars.ingest", store, newFakeMetrics(), nil)

	bad := goodBar("AAPL", 2)
	bad.Volume = -1

	payload, _ := json.Marshal([]models.Bar{bad})
	err := h.Handle(context.Background(), payload)
	if !errors.Is(err, models.ErrValidationFailed) {
		t.Fatalf("got %v, want %v", err, models.ErrValidationFailed)
	}
	if len(store.bars) != 0 {
		t.Fatal("rejected bars were stored")
	}
}

func TestKafkaBarsHandler_DecodeError(t *testing.T) {
	h := NewKafkaBarsHandler("bars.ingest", &fakeStore{}, newFakeMetrics(), nil)
	if err := h.Handle(context.Background(), []byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}
