package shared

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BACKEND", "")
	t.Setenv("UNAVAILABLE_PROBABILITY", "")
	t.Setenv("CORS_ORIGINS", "")
	c := Load()
	if c.Backend != "apper" || c.HTTPAddr != ":8080" || c.SyncWorkers != 8 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.UnavailableProbability != 0.1 {
		t.Fatalf("probability = %v", c.UnavailableProbability)
	}
	if len(c.CORSOrigins) != 1 || c.CORSOrigins[0] != "*" {
		t.Fatalf("cors = %v", c.CORSOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BACKEND", "MySQL")
	t.Setenv("CONFIRMATION_TTL_HOURS", "2")
	t.Setenv("UNAVAILABLE_PROBABILITY", "0.25")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("SYNC_WORKERS", "nope")
	c := Load()
	if c.Backend != "mysql" {
		t.Fatalf("backend = %q", c.Backend)
	}
	if c.ConfirmationTTL != 2*time.Hour {
		t.Fatalf("ttl = %v", c.ConfirmationTTL)
	}
	if c.UnavailableProbability != 0.25 {
		t.Fatalf("probability = %v", c.UnavailableProbability)
	}
	if len(c.CORSOrigins) != 2 || c.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("cors = %v", c.CORSOrigins)
	}
	if c.SyncWorkers != 8 {
		t.Fatalf("bad int should fall back to default, got %d", c.SyncWorkers)
	}
}

func TestLoad_ProbabilityOutOfRange(t *testing.T) {
	t.Setenv("UNAVAILABLE_PROBABILITY", "3")
	if c := Load(); c.UnavailableProbability != 0.1 {
		t.Fatalf("probability = %v", c.UnavailableProbability)
	}
}
