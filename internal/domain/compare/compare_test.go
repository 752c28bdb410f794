// internal/domain/compare/compare_test.go
package compare

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestAddIsBoundedAndIdempotent(t *testing.T) {
	l := Load(t.TempDir(), 1, 4, testLogger())

	for i := uint(1); i <= 4; i++ {
		assert.True(t, l.Add(Product{ID: i, Name: "p"}))
	}
	assert.Equal(t, 4, l.Len())
	assert.False(t, l.CanAddMore())

	// Duplicate and over-capacity adds are silent no-ops
	assert.False(t, l.Add(Product{ID: 1}))
	assert.False(t, l.Add(Product{ID: 5}))
	assert.Equal(t, 4, l.Len())
}

func TestRemoveFreesCapacity(t *testing.T) {
	l := Load(t.TempDir(), 1, 2, testLogger())

	require.True(t, l.Add(Product{ID: 1}))
	require.True(t, l.Add(Product{ID: 2}))
	require.False(t, l.CanAddMore())

	l.Remove(1)
	assert.False(t, l.IsIn(1))
	assert.True(t, l.CanAddMore())
	assert.True(t, l.Add(Product{ID: 3}))
}

func TestPersistsAcrossLoads(t *testing.T) {
	dir := t.TempDir()

	l := Load(dir, 7, 4, testLogger())
	require.True(t, l.Add(Product{ID: 1, Name: "first"}))
	require.True(t, l.Add(Product{ID: 2, Name: "second"}))

	reloaded := Load(dir, 7, 4, testLogger())
	items := reloaded.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Name)
	assert.Equal(t, "second", items[1].Name)
}

func TestListsAreScopedByUser(t *testing.T) {
	dir := t.TempDir()

	l := Load(dir, 1, 4, testLogger())
	require.True(t, l.Add(Product{ID: 1}))

	other := Load(dir, 2, 4, testLogger())
	assert.Equal(t, 0, other.Len())
}

func TestCorruptFileIsDiscarded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "compare_1.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	l := Load(dir, 1, 4, testLogger())
	assert.Equal(t, 0, l.Len())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadTruncatesOversizedList(t *testing.T) {
	dir := t.TempDir()

	l := Load(dir, 1, 4, testLogger())
	for i := uint(1); i <= 4; i++ {
		require.True(t, l.Add(Product{ID: i}))
	}

	// A tighter limit on the next load trims the tail
	reloaded := Load(dir, 1, 2, testLogger())
	assert.Equal(t, 2, reloaded.Len())
	assert.True(t, reloaded.IsIn(1))
	assert.True(t, reloaded.IsIn(2))
}
