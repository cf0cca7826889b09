package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/noah-isme/college-erp-api/internal/models"
)

// memoryStore is an in-process documentStore used by the service tests.
type memoryStore struct {
	mu          sync.Mutex
	docs        map[string][]models.Document
	unique      map[string][]string
	seq         int
	base        time.Time
	pingErr     error
	findErr     map[string]error
	countErr    map[string]error
	findByIDsN  int
	updateCalls int
	lastFind    map[string]models.FindOptions
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		docs:     map[string][]models.Document{},
		unique:   map[string][]string{models.CollectionStudents: {"roll"}, models.CollectionCourses: {"code"}},
		base:     time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		findErr:  map[string]error{},
		countErr: map[string]error{},
		lastFind: map[string]models.FindOptions{},
	}
}

// seed inserts documents in order so later ones are newer.
func (m *memoryStore) seed(collection string, docs ...models.Document) []string {
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		created, err := m.Insert(context.Background(), collection, doc)
		if err != nil {
			panic(err)
		}
		ids = append(ids, created.ID())
	}
	return ids
}

func (m *memoryStore) Ping(context.Context) error { return m.pingErr }

func (m *memoryStore) Find(_ context.Context, collection string, opts models.FindOptions) ([]models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFind[collection] = opts
	if err := m.findErr[collection]; err != nil {
		return nil, err
	}
	matched := m.matching(collection, opts.Filter)
	if opts.Skip >= len(matched) {
		return []models.Document{}, nil
	}
	matched = matched[opts.Skip:]
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return copyAll(matched), nil
}

func (m *memoryStore) Count(_ context.Context, collection string, filter models.Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.countErr[collection]; err != nil {
		return 0, err
	}
	return int64(len(m.matching(collection, filter))), nil
}

func (m *memoryStore) FindByID(ctx context.Context, collection, id string) (models.Document, error) {
	return m.FindOne(ctx, collection, models.Filter{models.FieldID: id})
}

func (m *memoryStore) FindOne(_ context.Context, collection string, filter models.Filter) (models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := m.matching(collection, filter)
	if len(matched) == 0 {
		return nil, models.ErrDocumentNotFound
	}
	return deepCopy(matched[0]), nil
}

func (m *memoryStore) FindByIDs(_ context.Context, collection string, ids []string) ([]models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findByIDsN++
	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	out := []models.Document{}
	for _, doc := range m.docs[collection] {
		if wanted[doc.ID()] {
			out = append(out, deepCopy(doc))
		}
	}
	return out, nil
}

func (m *memoryStore) Insert(_ context.Context, collection string, doc models.Document) (models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.violatesUnique(collection, doc, "") {
		return nil, models.ErrDuplicateKey
	}
	m.seq++
	stored := deepCopy(doc)
	stored[models.FieldID] = fmt.Sprintf("id-%03d", m.seq)
	created := m.base.Add(time.Duration(m.seq) * time.Minute)
	stored[models.FieldCreatedAt] = created
	stored[models.FieldUpdatedAt] = created
	m.docs[collection] = append(m.docs[collection], stored)
	return deepCopy(stored), nil
}

func (m *memoryStore) Update(_ context.Context, collection string, filter models.Filter, fields models.Document) (models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	matched := m.matching(collection, filter)
	if len(matched) == 0 {
		return nil, models.ErrDocumentNotFound
	}
	target := matched[0]
	merged := deepCopy(target)
	for key, value := range fields {
		merged[key] = value
	}
	if m.violatesUnique(collection, merged, target.ID()) {
		return nil, models.ErrDuplicateKey
	}
	for key, value := range fields {
		target[key] = value
	}
	return deepCopy(target), nil
}

func (m *memoryStore) Upsert(ctx context.Context, collection string, filter models.Filter, doc models.Document) (models.Document, error) {
	m.mu.Lock()
	matched := m.matching(collection, filter)
	m.mu.Unlock()
	if len(matched) == 0 {
		return m.Insert(ctx, collection, doc)
	}
	return m.Update(ctx, collection, models.Filter{models.FieldID: matched[0].ID()}, doc)
}

func (m *memoryStore) matching(collection string, filter models.Filter) []models.Document {
	out := []models.Document{}
	for _, doc := range m.docs[collection] {
		if matches(doc, filter) {
			out = append(out, doc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti := out[i][models.FieldCreatedAt].(time.Time)
		tj := out[j][models.FieldCreatedAt].(time.Time)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].ID() > out[j].ID()
	})
	return out
}

func (m *memoryStore) violatesUnique(collection string, doc models.Document, selfID string) bool {
	for _, field := range m.unique[collection] {
		if doc[field] == nil {
			continue
		}
		for _, existing := range m.docs[collection] {
			if existing.ID() != selfID && fmt.Sprint(existing[field]) == fmt.Sprint(doc[field]) {
				return true
			}
		}
	}
	return false
}

func matches(doc models.Document, filter models.Filter) bool {
	for key, want := range filter {
		if key == models.FieldID {
			if doc.ID() != fmt.Sprint(want) {
				return false
			}
			continue
		}
		switch cond := want.(type) {
		case models.Range:
			n, ok := models.ToFloat(doc[key])
			if !ok || !cond.Includes(n) {
				return false
			}
			continue
		case models.Contains:
			text, ok := doc[key].(string)
			if !ok || !cond.Matches(text) {
				return false
			}
			continue
		}
		if fmt.Sprint(doc[key]) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

func copyAll(docs []models.Document) []models.Document {
	out := make([]models.Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, deepCopy(doc))
	}
	return out
}

func deepCopy(doc models.Document) models.Document {
	return models.Document(copyValue(map[string]interface{}(doc)).(map[string]interface{}))
}

func copyValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, item := range v {
			out[key] = copyValue(item)
		}
		return out
	case models.Document:
		return deepCopy(v)
	case []interface{}:
		out := make([]interface{}, 0, len(v))
		for _, item := range v {
			out = append(out, copyValue(item))
		}
		return out
	}
	return value
}
