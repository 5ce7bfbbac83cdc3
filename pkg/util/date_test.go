package util

import (
    "testing"
    "time"
)

func TestParseDay(t *testing.T) {
    got, ok := ParseDay("2024-10-10")
    if !ok {
        t.Fatalf("expected ok")
    }
    want := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
    if !got.Equal(want) {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseDayRejectsTimestamp(t *testing.T) {
    if _, ok := ParseDay("2024-10-10T10:10:10Z"); ok {
        t.Fatalf("expected parse failure")
    }
}

func TestIsWeekend(t *testing.T) {
    sat := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
    mon := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
    if !IsWeekend(sat) {
        t.Fatalf("saturday should be weekend")
    }
    if IsWeekend(mon) {
        t.Fatalf("monday should not be weekend")
    }
}

func TestCountTradingDaysJanuary(t *testing.T) {
    from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
    to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
    if got := CountTradingDays(from, to, false); got != 23 {
        t.Fatalf("expected 23 weekdays, got %d", got)
    }
    if got := CountTradingDays(from, to, true); got != 31 {
        t.Fatalf("expected 31 days, got %d", got)
    }
}
