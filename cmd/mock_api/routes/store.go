package routes

import (
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-tourneyform/pkg/model"
)

type storedRecord struct {
	ID     string
	Record model.Record
}

// Store keeps accepted records in memory, keyed by collection. A record is a
// duplicate when its first field value is already stored in the collection.
type Store struct {
	mu          sync.Mutex
	collections map[string][]storedRecord
	keys        map[string]map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		collections: make(map[string][]storedRecord),
		keys:        make(map[string]map[string]struct{}),
	}
}

// Insert stores record and returns its id. ok is false for duplicates.
func (s *Store) Insert(collection string, record model.Record) (id string, ok bool) {
	key := ""
	if entries := record.Entries(); len(entries) > 0 {
		key = entries[0].Value
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen, exists := s.keys[collection]
	if !exists {
		seen = make(map[string]struct{})
		s.keys[collection] = seen
	}
	if key != "" {
		if _, dup := seen[key]; dup {
			return "", false
		}
		seen[key] = struct{}{}
	}

	id = uuid.NewString()
	s.collections[collection] = append(s.collections[collection], storedRecord{ID: id, Record: record})
	return id, true
}

// Len counts the records stored for collection.
func (s *Store) Len(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collections[collection])
}
