package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/noah-isme/college-erp-api/internal/models"
)

// ReferenceExpander replaces reference ids with the referenced documents.
type ReferenceExpander struct {
	store documentLookup
}

// NewReferenceExpander constructs a ReferenceExpander.
func NewReferenceExpander(store documentLookup) *ReferenceExpander {
	return &ReferenceExpander{store: store}
}

// Expand resolves every reference field of docs in place with one batched lookup per field.
// References to missing documents become null.
func (e *ReferenceExpander) Expand(ctx context.Context, docs []models.Document, refs []models.ReferenceField) error {
	for _, ref := range refs {
		segments := strings.Split(ref.Path, ".")

		seen := map[string]struct{}{}
		ids := []string{}
		for _, doc := range docs {
			visitReferences(map[string]interface{}(doc), segments, func(container map[string]interface{}, key string) {
				id, ok := referenceID(container[key])
				if !ok {
					return
				}
				if _, dup := seen[id]; !dup {
					seen[id] = struct{}{}
					ids = append(ids, id)
				}
			})
		}
		if len(ids) == 0 {
			continue
		}

		targets, err := e.store.FindByIDs(ctx, ref.Target, ids)
		if err != nil {
			return fmt.Errorf("expand %s: %w", ref.Path, err)
		}
		byID := make(map[string]models.Document, len(targets))
		for _, target := range targets {
			byID[target.ID()] = target
		}

		for _, doc := range docs {
			visitReferences(map[string]interface{}(doc), segments, func(container map[string]interface{}, key string) {
				id, ok := referenceID(container[key])
				if !ok {
					return
				}
				if target, found := byID[id]; found {
					container[key] = target.Clone()
					return
				}
				container[key] = nil
			})
		}
	}
	return nil
}

// visitReferences walks a dotted path through nested objects and arrays and calls fn for each leaf holder.
func visitReferences(node map[string]interface{}, segments []string, fn func(container map[string]interface{}, key string)) {
	if node == nil || len(segments) == 0 {
		return
	}
	key := segments[0]
	if len(segments) == 1 {
		if _, present := node[key]; present {
			fn(node, key)
		}
		return
	}
	visitValue(node[key], segments[1:], fn)
}

func visitValue(value interface{}, segments []string, fn func(container map[string]interface{}, key string)) {
	switch v := value.(type) {
	case map[string]interface{}:
		visitReferences(v, segments, fn)
	case models.Document:
		visitReferences(map[string]interface{}(v), segments, fn)
	case []interface{}:
		for _, item := range v {
			visitValue(item, segments, fn)
		}
	case []map[string]interface{}:
		for _, item := range v {
			visitReferences(item, segments, fn)
		}
	}
}

func referenceID(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, v != ""
	case models.Ref:
		return string(v), v != ""
	}
	return "", false
}
