package content

import (
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VRCMedia/vrcsite-go/internal/domain/relationships"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/caching"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/persistence/database"
)

var relatedProductsLink = relationships.Link{Collection: "products", Field: "relatedProducts"}

func newStoreTestLogger(t *testing.T) *logging.ChanneledLogger {
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

// newTestStore opens an in-memory sqlite database with the real schema and
// wraps it in a DeletionStore.
func newTestStore(t *testing.T) (*DeletionStore, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.NewTableCreator().CreateSchema(db))

	store := NewDeletionStore(db, caching.NewContentStore(), newStoreTestLogger(t))
	return store, db
}

func insertProduct(t *testing.T, db *sql.DB, id, name, related string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO products (id, name, slug, related_products) VALUES (?, ?, ?, ?)`,
		id, name, "slug-"+id, related)
	require.NoError(t, err)
}

// A wrapper-shaped column matches both LIKE probes; the hit must still come
// back exactly once.
func TestFindReferencingDedupesAcrossProbes(t *testing.T) {
	store, db := newTestStore(t)
	insertProduct(t, db, "P1", "Máy nén khí", `[{"value":"P2","relationTo":"products"}]`)
	insertProduct(t, db, "P2", "Điều hòa công nghiệp", `[]`)

	hits, err := store.FindReferencing(relatedProductsLink, "P2")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "P1", hits[0].ID)
	assert.True(t, relationships.ContainsID(hits[0].Value, "P2"))
}

func TestFindReferencingFlatStringShape(t *testing.T) {
	store, db := newTestStore(t)
	insertProduct(t, db, "P1", "Máy nén khí", `["P2","P3"]`)
	insertProduct(t, db, "P2", "Điều hòa công nghiệp", `[]`)

	hits, err := store.FindReferencing(relatedProductsLink, "P2")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "P1", hits[0].ID)
	assert.True(t, relationships.ContainsID(hits[0].Value, "P2"))
}

// A document whose relationship column mentions its own ID is never a hit
// for itself.
func TestFindReferencingExcludesTarget(t *testing.T) {
	store, db := newTestStore(t)
	insertProduct(t, db, "P1", "Máy nén khí", `[{"value":"P1","relationTo":"products"}]`)

	hits, err := store.FindReferencing(relatedProductsLink, "P1")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestFindReferencingNoMatches(t *testing.T) {
	store, db := newTestStore(t)
	insertProduct(t, db, "P1", "Máy nén khí", `["P3"]`)

	hits, err := store.FindReferencing(relatedProductsLink, "P2")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

// A column that matches a probe but is not valid JSON is surfaced as the raw
// string so the rewrite step can still handle a flat single-value column.
func TestFindReferencingKeepsUnparsableColumn(t *testing.T) {
	store, db := newTestStore(t)
	raw := `[{"value":"P2"`
	insertProduct(t, db, "P1", "Máy nén khí", raw)

	hits, err := store.FindReferencing(relatedProductsLink, "P2")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, raw, hits[0].Value)
}

func TestUpdateReferencePersistsRewrite(t *testing.T) {
	store, db := newTestStore(t)
	insertProduct(t, db, "P1", "Máy nén khí", `[{"value":"P2","relationTo":"products"},{"value":"P3","relationTo":"products"}]`)
	insertProduct(t, db, "P2", "Điều hòa công nghiệp", `[]`)

	hits, err := store.FindReferencing(relatedProductsLink, "P2")
	require.NoError(t, err)
	require.Len(t, hits, 1)

	rewritten := relationships.RemoveReference(hits[0].Value, "P2")
	require.NoError(t, store.UpdateReference(relatedProductsLink, "P1", rewritten))

	hits, err = store.FindReferencing(relatedProductsLink, "P2")
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = store.FindReferencing(relatedProductsLink, "P3")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "P1", hits[0].ID)
}

func TestDeleteRemovesRow(t *testing.T) {
	store, db := newTestStore(t)
	insertProduct(t, db, "P1", "Máy nén khí", `[]`)

	name, found, err := store.DisplayName("products", "P1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Máy nén khí", name)

	deleted, err := store.Delete("products", "P1")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, found, err = store.DisplayName("products", "P1")
	require.NoError(t, err)
	assert.False(t, found)

	deleted, err = store.Delete("products", "P1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteUnknownCollection(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Delete("widgets", "X")
	assert.Error(t, err)
}
