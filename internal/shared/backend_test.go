package shared

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"stayhub/internal/domain"
)

func TestOpenBackend_MemoryWithSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(`{"hotel":[{"Id":1,"name_c":"Harbor Inn"}]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	be, closeFn, err := OpenBackend(context.Background(), Config{Backend: "memory", SeedFile: path})
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()
	rec, err := be.GetByID(context.Background(), domain.TableHotel, 1, nil)
	if err != nil || rec == nil {
		t.Fatalf("seeded hotel missing: %v %v", rec, err)
	}
}

func TestOpenBackend_Errors(t *testing.T) {
	if _, _, err := OpenBackend(context.Background(), Config{Backend: "sqlite"}); err == nil {
		t.Fatal("unknown backend accepted")
	}
	if _, _, err := OpenBackend(context.Background(), Config{Backend: "apper", ApperBase: "http://x"}); err == nil {
		t.Fatal("apper without credentials accepted")
	}
	if _, _, err := OpenBackend(context.Background(), Config{Backend: "memory", SeedFile: "/nonexistent/seed.json"}); err == nil {
		t.Fatal("missing seed file accepted")
	}
}
