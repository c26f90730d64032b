package gateway

import (
	"context"
	"strconv"
	"sync"
	"time"

	"catalog-service/internal/models"
)

// Memory implements Gateway on in-process maps. It backs tests and local
// development without a database.
type Memory struct {
	mu     sync.Mutex
	data   map[string][]Record
	nextID map[string]int64
}

// NewMemory creates an empty in-memory gateway.
func NewMemory() *Memory {
	return &Memory{
		data:   make(map[string][]Record),
		nextID: make(map[string]int64),
	}
}

// Seed inserts records into a collection without assigning identifiers,
// trusting the caller's ids.
func (m *Memory) Seed(collection string, recs ...Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range recs {
		if id, ok := asInt64(rec["id"]); ok && id > m.nextID[collection] {
			m.nextID[collection] = id
		}
		m.data[collection] = append(m.data[collection], cloneRecord(rec))
	}
}

func (m *Memory) List(ctx context.Context, collection string, filter Filter) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, models.NewFetchError(collection, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Record
	for _, rec := range m.data[collection] {
		if matches(rec, filter) {
			out = append(out, cloneRecord(rec))
		}
	}
	return out, nil
}

func (m *Memory) GetOne(ctx context.Context, collection string, key string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, models.NewFetchError(collection, err)
	}

	t, err := table(collection)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range m.data[collection] {
		if id, perr := strconv.ParseInt(key, 10, 64); perr == nil {
			if sameValue(rec[t.idCol], id) {
				return cloneRecord(rec), nil
			}
		}
		if t.slugCol != "" && sameValue(rec[t.slugCol], key) {
			return cloneRecord(rec), nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *Memory) Insert(ctx context.Context, collection string, rec Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, models.NewFetchError(collection, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := cloneRecord(rec)
	if _, ok := stored["id"]; !ok {
		m.nextID[collection]++
		stored["id"] = m.nextID[collection]
	}
	now := time.Now()
	if _, ok := stored["created_at"]; !ok {
		stored["created_at"] = now
	}
	if _, ok := stored["updated_at"]; !ok {
		stored["updated_at"] = now
	}

	m.data[collection] = append(m.data[collection], stored)
	return cloneRecord(stored), nil
}

func (m *Memory) Update(ctx context.Context, collection string, key string, patch Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, models.NewFetchError(collection, err)
	}

	id, perr := strconv.ParseInt(key, 10, 64)
	if perr != nil {
		return nil, models.ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range m.data[collection] {
		if sameValue(rec["id"], id) {
			for k, v := range patch {
				rec[k] = v
			}
			rec["updated_at"] = time.Now()
			return cloneRecord(rec), nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *Memory) Delete(ctx context.Context, collection string, key string) error {
	if err := ctx.Err(); err != nil {
		return models.NewFetchError(collection, err)
	}

	id, perr := strconv.ParseInt(key, 10, 64)
	if perr != nil {
		return models.ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	recs := m.data[collection]
	for i, rec := range recs {
		if sameValue(rec["id"], id) {
			m.data[collection] = append(recs[:i], recs[i+1:]...)
			return nil
		}
	}
	return nil
}

func matches(rec Record, filter Filter) bool {
	for col, want := range filter {
		got := rec[col]
		switch w := want.(type) {
		case []int64:
			found := false
			for _, v := range w {
				if sameValue(got, v) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case []string:
			found := false
			for _, v := range w {
				if sameValue(got, v) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			if !sameValue(got, want) {
				return false
			}
		}
	}
	return true
}

func sameValue(a, b interface{}) bool {
	if a == b {
		return true
	}
	// int widths differ depending on who stored the value
	ai, aok := asInt64(a)
	bi, bok := asInt64(b)
	return aok && bok && ai == bi
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func cloneRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
