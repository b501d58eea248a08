package memory

import (
	"encoding/json"
	"fmt"
	"os"

	"stayhub/internal/domain"
)

// LoadSeed reads a JSON document of the form {"hotel": [{...}], ...} and
// seeds every table it names. It returns the number of records loaded.
func (s *Store) LoadSeed(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed: %w", err)
	}
	var doc map[string][]domain.Record
	if err := json.Unmarshal(b, &doc); err != nil {
		return 0, fmt.Errorf("parse seed %s: %w", path, err)
	}
	n := 0
	for tableName, recs := range doc {
		s.Seed(tableName, recs...)
		n += len(recs)
	}
	return n, nil
}
