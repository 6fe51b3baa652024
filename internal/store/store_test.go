package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseSlot runs the behaviour every slot implementation shares.
func exerciseSlot(t *testing.T, slot Slot) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "new slot should be absent")

	require.NoError(t, slot.Save(ctx, []byte(`{"topCard":-1}`)))
	data, ok, err := slot.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"topCard":-1}`, string(data))

	require.NoError(t, slot.Save(ctx, []byte(`{"topCard":3}`)))
	data, ok, err = slot.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"topCard":3}`, string(data))

	require.NoError(t, slot.Clear(ctx))
	_, ok, err = slot.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, slot.Clear(ctx), "clearing an empty slot")
}

func TestMemorySlot(t *testing.T) {
	exerciseSlot(t, NewMemorySlot())
}

func TestMemorySlotCopies(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()

	data := []byte("abc")
	require.NoError(t, slot.Save(ctx, data))
	data[0] = 'x'

	loaded, _, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(loaded))
}

func TestMemorySlotCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slot := NewMemorySlot()
	require.ErrorIs(t, slot.Save(ctx, []byte("x")), context.Canceled)
	_, _, err := slot.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFileSlot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	slot, err := NewFileSlot(dir, DefaultSlot)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "deck.json"), slot.Path())

	exerciseSlot(t, slot)
}

func TestFileSlotLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	slot, err := NewFileSlot(dir, DefaultSlot)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, slot.Save(context.Background(), []byte("{}")))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "deck.json", entries[0].Name())
}

func TestFileSlotRequiresPath(t *testing.T) {
	_, err := NewFileSlot("  ", DefaultSlot)
	require.Error(t, err)
	_, err = NewFileSlot(t.TempDir(), "")
	require.Error(t, err)
}

func TestSQLiteSlot(t *testing.T) {
	dir := t.TempDir()
	slot, err := OpenSQLiteSlot(dir, DefaultSlot)
	require.NoError(t, err)
	t.Cleanup(func() { _ = slot.Close() })

	exerciseSlot(t, slot)

	_, err = os.Stat(filepath.Join(dir, SQLiteFile))
	require.NoError(t, err)
}

func TestSQLiteSlotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	a, err := OpenSQLiteSlot(dir, "a")
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	b, err := OpenSQLiteSlot(dir, "b")
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	require.NoError(t, a.Save(ctx, []byte("from a")))
	_, ok, err := b.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteSlotPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	slot, err := OpenSQLiteSlot(dir, DefaultSlot)
	require.NoError(t, err)
	require.NoError(t, slot.Save(ctx, []byte("kept")))
	require.NoError(t, slot.Close())

	slot, err = OpenSQLiteSlot(dir, DefaultSlot)
	require.NoError(t, err)
	t.Cleanup(func() { _ = slot.Close() })

	data, ok, err := slot.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "kept", string(data))
}

func TestOpen(t *testing.T) {
	slot, err := Open("", t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &FileSlot{}, slot)

	slot, err = Open(BackendSQLite, t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &SQLiteSlot{}, slot)
	require.NoError(t, slot.Close())

	_, err = Open("redis", t.TempDir())
	require.Error(t, err)
}
