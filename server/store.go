package server

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"linkedlist/struct/list"
)

// entry guards a single list; LinkedList itself is not safe for concurrent use.
type entry struct {
	mu      sync.Mutex
	list    *list.LinkedList[decimal.Decimal]
	created time.Time
}

type store struct {
	mu       sync.RWMutex
	lists    map[string]*entry
	maxNodes int
}

func makeStore(maxNodes int) *store {
	return &store{
		lists:    make(map[string]*entry),
		maxNodes: maxNodes,
	}
}

func (s *store) create() string {
	id := uuid.NewString()
	e := &entry{
		list:    list.New[decimal.Decimal](list.WithMaxNodes(s.maxNodes)),
		created: time.Now(),
	}
	s.mu.Lock()
	s.lists[id] = e
	s.mu.Unlock()
	return id
}

func (s *store) get(id string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.lists[id]
	return e, ok
}

func (s *store) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.lists[id]
	if !ok {
		return false
	}
	delete(s.lists, id)
	e.mu.Lock()
	e.list.Clear()
	e.mu.Unlock()
	return true
}

func (s *store) ids() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.lists))
	for id := range s.lists {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids
}
