package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type slotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

func exerciseSlot(t *testing.T, st slotStore) {
	t.Helper()
	ctx := context.Background()

	_, err := st.Load(ctx, "auth")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Save(ctx, "auth", []byte(`{"role":"admin"}`)))
	got, err := st.Load(ctx, "auth")
	require.NoError(t, err)
	require.JSONEq(t, `{"role":"admin"}`, string(got))

	require.NoError(t, st.Save(ctx, "auth", []byte(`{"role":"client","traineeId":1}`)))
	got, err = st.Load(ctx, "auth")
	require.NoError(t, err)
	require.JSONEq(t, `{"role":"client","traineeId":1}`, string(got))

	require.NoError(t, st.Delete(ctx, "auth"))
	require.NoError(t, st.Delete(ctx, "auth"))
	_, err = st.Load(ctx, "auth")
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, st.Save(ctx, "../escape", []byte("x")), ErrInvalidKey)
}

func TestMemorySlot(t *testing.T) {
	exerciseSlot(t, NewMemory())
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	value := []byte("abc")
	require.NoError(t, st.Save(ctx, "k", value))
	value[0] = 'z'

	got, err := st.Load(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "abc", string(got))
}

func TestFileSlot(t *testing.T) {
	st, err := NewFile(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)
	exerciseSlot(t, st)
}

func TestFileSlotLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	st, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, st.Save(context.Background(), "auth", []byte("{}")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "auth.json", entries[0].Name())
}

func TestNewFileRequiresDir(t *testing.T) {
	_, err := NewFile("  ")
	require.Error(t, err)
}

func TestSQLiteSlot(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "trainmate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st := NewSQLite(db)
	require.NoError(t, st.Init(context.Background()))
	require.NoError(t, st.Init(context.Background()))
	exerciseSlot(t, st)
}
