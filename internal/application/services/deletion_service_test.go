package services

import (
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VRCMedia/vrcsite-go/internal/domain/relationships"
	"github.com/VRCMedia/vrcsite-go/internal/domain/repositories"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
)

func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	logger, err := logging.NewChanneledLogger(&logging.LoggerConfig{
		OutputToFile:    false,
		OutputToConsole: false,
		DefaultLevel:    slog.LevelError + 4,
		ChannelLevels:   map[logging.Channel]slog.Level{},
	})
	require.NoError(t, err)
	return logger
}

// fakeDeletionStore is an in-memory DeletionStore. Documents live in
// docs[collection][id]; references in refs[link][docID].
type fakeDeletionStore struct {
	docs map[string]map[string]string
	refs map[relationships.Link]map[string]any

	deleteCalls  []string
	scanCalls    []string
	updateCalls  []string
	deleteErrors map[string]error
}

func newFakeDeletionStore() *fakeDeletionStore {
	return &fakeDeletionStore{
		docs:         make(map[string]map[string]string),
		refs:         make(map[relationships.Link]map[string]any),
		deleteErrors: make(map[string]error),
	}
}

func (f *fakeDeletionStore) addDoc(collection, id, name string) {
	if f.docs[collection] == nil {
		f.docs[collection] = make(map[string]string)
	}
	f.docs[collection][id] = name
}

func (f *fakeDeletionStore) setRef(link relationships.Link, docID string, value any) {
	if f.refs[link] == nil {
		f.refs[link] = make(map[string]any)
	}
	f.refs[link][docID] = value
}

func (f *fakeDeletionStore) DisplayName(collection, id string) (string, bool, error) {
	name, ok := f.docs[collection][id]
	return name, ok, nil
}

func (f *fakeDeletionStore) Delete(collection, id string) (bool, error) {
	f.deleteCalls = append(f.deleteCalls, collection+"/"+id)
	if err := f.deleteErrors[id]; err != nil {
		return false, err
	}
	if _, ok := f.docs[collection][id]; !ok {
		return false, nil
	}
	delete(f.docs[collection], id)
	return true, nil
}

func (f *fakeDeletionStore) FindReferencing(link relationships.Link, targetID string) ([]repositories.ReferenceHit, error) {
	f.scanCalls = append(f.scanCalls, link.Collection+"."+link.Field+"->"+targetID)
	var hits []repositories.ReferenceHit
	for docID, value := range f.refs[link] {
		if docID == targetID {
			continue
		}
		if relationships.ContainsID(value, targetID) {
			hits = append(hits, repositories.ReferenceHit{ID: docID, Value: value})
		}
	}
	return hits, nil
}

func (f *fakeDeletionStore) UpdateReference(link relationships.Link, docID string, value any) error {
	f.updateCalls = append(f.updateCalls, link.Collection+"."+link.Field+"/"+docID)
	f.setRef(link, docID, value)
	return nil
}

var productsLink = relationships.Link{Collection: "products", Field: "relatedProducts"}

func TestDeleteCleansInboundReferences(t *testing.T) {
	store := newFakeDeletionStore()
	store.addDoc("products", "P1", "Máy nén khí")
	store.addDoc("products", "P2", "Điều hòa công nghiệp")
	store.addDoc("products", "P3", "Kho lạnh")
	store.setRef(productsLink, "P1", []any{
		map[string]any{"value": "P2", "relationTo": "products"},
	})
	store.setRef(productsLink, "P3", []any{"P2", "P1"})

	svc := NewDeletionService(store, newTestLogger(t))

	outcome, err := svc.Delete("products", "P2")
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, "Điều hòa công nghiệp", outcome.Name)
	assert.Equal(t, 2, outcome.ReferencesCleaned)

	assert.False(t, relationships.ContainsID(store.refs[productsLink]["P1"], "P2"))
	assert.False(t, relationships.ContainsID(store.refs[productsLink]["P3"], "P2"))
	assert.True(t, relationships.ContainsID(store.refs[productsLink]["P3"], "P1"))

	_, found, _ := store.DisplayName("products", "P2")
	assert.False(t, found)
}

func TestDeleteNotFound(t *testing.T) {
	store := newFakeDeletionStore()
	svc := NewDeletionService(store, newTestLogger(t))

	outcome, err := svc.Delete("products", "missing")
	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Empty(t, store.deleteCalls, "a missing document should never reach the delete step")
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newFakeDeletionStore()
	store.addDoc("products", "P1", "Máy nén khí")
	svc := NewDeletionService(store, newTestLogger(t))

	first, err := svc.Delete("products", "P1")
	require.NoError(t, err)
	assert.True(t, first.Success)

	second, err := svc.Delete("products", "P1")
	require.NoError(t, err)
	assert.False(t, second.Success)
}

// Every requested entry counts toward the totals. A duplicate ID succeeds
// once and fails not-found on its second pass; cleanup still scans each
// unique ID only once.
func TestDeleteBulkCountsEveryRequestedID(t *testing.T) {
	store := newFakeDeletionStore()
	store.addDoc("products", "P1", "Máy nén khí")
	store.addDoc("products", "P2", "Điều hòa công nghiệp")
	svc := NewDeletionService(store, newTestLogger(t))

	outcome := svc.DeleteBulk("products", []string{"P1", "P1", "P2"})

	assert.Equal(t, 3, outcome.Total)
	assert.Equal(t, 2, outcome.Successful)
	assert.Equal(t, 1, outcome.Failed)
	assert.Equal(t, outcome.Total, outcome.Successful+outcome.Failed)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, "P1", outcome.Errors[0].ID)
	assert.Contains(t, outcome.Errors[0].Error, "Không tìm thấy")
	assert.Len(t, store.deleteCalls, 2)
	assert.Len(t, store.scanCalls, 2, "cleanup scans once per unique ID")
}

func TestDeleteBulkAggregates(t *testing.T) {
	store := newFakeDeletionStore()
	store.addDoc("products", "P1", "Máy nén khí")
	store.addDoc("products", "P2", "Điều hòa công nghiệp")
	svc := NewDeletionService(store, newTestLogger(t))

	outcome := svc.DeleteBulk("products", []string{"P1", "P2", "P9"})

	assert.Equal(t, 3, outcome.Total)
	assert.Equal(t, 2, outcome.Successful)
	assert.Equal(t, 1, outcome.Failed)
	assert.Equal(t, outcome.Total, outcome.Successful+outcome.Failed)
	require.Len(t, outcome.Results, 2)
	assert.Equal(t, "P1", outcome.Results[0].ID)
	assert.Equal(t, "P2", outcome.Results[1].ID)
	require.Len(t, outcome.Errors, 1)
	assert.Equal(t, "P9", outcome.Errors[0].ID)
	assert.Contains(t, outcome.Errors[0].Error, "P9")
}

func TestDeleteBulkAllFail(t *testing.T) {
	store := newFakeDeletionStore()
	svc := NewDeletionService(store, newTestLogger(t))

	outcome := svc.DeleteBulk("products", []string{"X1", "X2"})
	assert.Equal(t, 2, outcome.Total)
	assert.Equal(t, 0, outcome.Successful)
	assert.Equal(t, 2, outcome.Failed)
	assert.Empty(t, outcome.Results)
	assert.Len(t, outcome.Errors, 2)
}

func TestDeleteBulkStoreError(t *testing.T) {
	store := newFakeDeletionStore()
	store.addDoc("products", "P1", "Máy nén khí")
	store.deleteErrors["P1"] = fmt.Errorf("disk I/O error")
	svc := NewDeletionService(store, newTestLogger(t))

	outcome := svc.DeleteBulk("products", []string{"P1"})
	assert.Equal(t, 1, outcome.Failed)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0].Error, "disk I/O error")
}

// Two products in the same batch reference each other. Cleanup must run for
// both before either row is removed, so neither deletion order leaves a
// dangling reference behind.
func TestDeleteBulkCleansIntraBatchReferences(t *testing.T) {
	store := newFakeDeletionStore()
	store.addDoc("products", "A", "Sản phẩm A")
	store.addDoc("products", "B", "Sản phẩm B")
	store.addDoc("products", "C", "Sản phẩm C")
	store.setRef(productsLink, "A", []any{
		map[string]any{"value": "B", "relationTo": "products"},
	})
	store.setRef(productsLink, "B", []any{
		map[string]any{"value": "A", "relationTo": "products"},
	})
	store.setRef(productsLink, "C", []any{
		map[string]any{"value": "A", "relationTo": "products"},
		map[string]any{"value": "B", "relationTo": "products"},
	})

	svc := NewDeletionService(store, newTestLogger(t))
	outcome := svc.DeleteBulk("products", []string{"B", "A"})

	assert.Equal(t, 2, outcome.Successful)
	assert.False(t, relationships.ContainsID(store.refs[productsLink]["C"], "A"))
	assert.False(t, relationships.ContainsID(store.refs[productsLink]["C"], "B"))

	// Every scan happened before the first delete, and deletion follows
	// the request order.
	assert.Len(t, store.scanCalls, 2)
	require.Len(t, store.deleteCalls, 2)
	assert.Equal(t, []string{"products/B", "products/A"}, store.deleteCalls)
}

func TestDeleteCollectionWithoutInboundLinks(t *testing.T) {
	store := newFakeDeletionStore()
	store.addDoc("menus", "M1", "Main Navigation")
	svc := NewDeletionService(store, newTestLogger(t))

	outcome, err := svc.Delete("menus", "M1")
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Zero(t, outcome.ReferencesCleaned)
	assert.Empty(t, store.scanCalls)
}
