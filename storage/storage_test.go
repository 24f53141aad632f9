package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agency-portal/config"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	key := ObjectKey("documents", "p1", "d1", "devis.pdf")
	require.NoError(t, s.Put(ctx, key, strings.NewReader("hello"), 5, "application/pdf"))

	rc, err := s.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Open(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	assert.NoError(t, s.Delete(ctx, key))
}

func TestObjectKeyStripsDirectories(t *testing.T) {
	assert.Equal(t, "tickets/t1/a1-passwd", ObjectKey("tickets", "t1", "a1", "../../etc/passwd"))
	assert.Equal(t, "tickets/t1/a1-x.png", ObjectKey("tickets", "t1", "a1", `C:\Users\x.png`))
	assert.Equal(t, "tickets/t1/a1-file", ObjectKey("tickets", "t1", "a1", ".."))
}

func TestFileStoreRejectsEmptyKey(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, s.Put(context.Background(), "", strings.NewReader("x"), 1, ""))
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)
}

func TestNewLocal(t *testing.T) {
	s, err := New(context.Background(), config.StorageConfig{Driver: "local", LocalPath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)
}
