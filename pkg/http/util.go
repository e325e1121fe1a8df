package http

import (
	"time"

	xutil "FinLens/pkg/util"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int { return xutil.ParseIntDefault(s, def) }

// ParseDate parses an ISO-8601 calendar date. Returns (t, true) if it parsed.
func ParseDate(s string) (time.Time, bool) { return xutil.ParseDate(s) }

// ParseDateDefault parses a date or returns default if empty/invalid.
func ParseDateDefault(s string, def time.Time) time.Time { return xutil.ParseDateDefault(s, def) }
