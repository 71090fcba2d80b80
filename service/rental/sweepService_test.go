package rentalsvc

import (
	"testing"
	"time"
)

func TestUntilNextMidnight(t *testing.T) {
	loc := time.Local

	now := time.Date(2026, 8, 28, 23, 59, 0, 0, loc)
	if got := untilNextMidnight(now); got != time.Minute {
		t.Fatalf("got %v; want 1m", got)
	}

	now = time.Date(2026, 8, 28, 0, 0, 0, 0, loc)
	if got := untilNextMidnight(now); got != 24*time.Hour {
		t.Fatalf("got %v; want 24h", got)
	}

	target := now.Add(untilNextMidnight(now))
	h, m, s := target.Clock()
	if h+m+s != 0 {
		t.Fatalf("sweep target %v is not midnight", target)
	}
}
