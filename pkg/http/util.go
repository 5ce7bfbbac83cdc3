package http

import (
	"time"

	xutil "MarketSim/pkg/util"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int { return xutil.ParseIntDefault(s, def) }

// ParseDay parses a YYYY-MM-DD calendar day in UTC. Returns (t, true) if it parsed.
func ParseDay(s string) (time.Time, bool) { return xutil.ParseDay(s) }

// ParseDayDefault parses a day or returns default if empty/invalid.
func ParseDayDefault(s string, def time.Time) time.Time { return xutil.ParseDayDefault(s, def) }
