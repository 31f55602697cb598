package cache

import (
	"sync"
	"testing"

	"github.com/tbourn/go-course-catalog/internal/domain"
)

func TestStore_PutGetEvict(t *testing.T) {
	s := NewStore[domain.Category]()

	if _, ok := s.Get(1); ok {
		t.Fatalf("empty store should miss")
	}

	s.Put(1, domain.Category{ID: 1, Name: "IT"})
	got, ok := s.Get(1)
	if !ok || got.Name != "IT" {
		t.Fatalf("Get = %+v, %v; want IT, true", got, ok)
	}

	// Put replaces, never merges.
	s.Put(1, domain.Category{ID: 1, Name: "Tech"})
	got, _ = s.Get(1)
	if got.Name != "Tech" {
		t.Fatalf("Put should replace; got %q", got.Name)
	}

	s.Evict(1)
	if _, ok := s.Get(1); ok {
		t.Fatalf("entry should be gone after Evict")
	}
	// Evicting again is a no-op.
	s.Evict(1)
}

func TestStore_ValuesAreCopies(t *testing.T) {
	s := NewStore[domain.Category]()
	s.Put(7, domain.Category{ID: 7, Name: "Science"})

	got, _ := s.Get(7)
	got.Name = "mutated"

	again, _ := s.Get(7)
	if again.Name != "Science" {
		t.Fatalf("cache entry mutated through a returned copy: %q", again.Name)
	}
}

func TestStore_IsolatedInstances(t *testing.T) {
	a := NewStore[domain.Category]()
	b := NewStore[domain.Course]()

	a.Put(1, domain.Category{ID: 1, Name: "IT"})
	if _, ok := b.Get(1); ok {
		t.Fatalf("stores must not share entries")
	}
	if a.Len() != 1 || b.Len() != 0 {
		t.Fatalf("Len mismatch: a=%d b=%d", a.Len(), b.Len())
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore[domain.Course]()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			for j := int64(0); j < 200; j++ {
				id := j % 10
				s.Put(id, domain.Course{ID: id})
				s.Get(id)
				if n%2 == 0 {
					s.Evict(id)
				}
			}
		}(int64(i))
	}
	wg.Wait()
}
