package docstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key, err := ObjectKey(12, "Passport Scan.PDF")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "kyc/12/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	_, err = ObjectKey(12, "run.sh")
	assert.Error(t, err)
}

func TestLocalStore_Put(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, 1024)
	require.NoError(t, err)

	ref, err := store.Put(context.Background(), "kyc/1/doc.pdf", strings.NewReader("%PDF-1.4"), 8, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "file://kyc/1/doc.pdf", ref)

	data, err := os.ReadFile(filepath.Join(dir, "kyc", "1", "doc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestLocalStore_RejectsOversized(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, 4)
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "kyc/1/a.png", strings.NewReader("0123456789"), 10, "")
	assert.True(t, errors.Is(err, ErrTooLarge))

	// declared size lies; the stream is still capped and the partial file removed
	_, err = store.Put(context.Background(), "kyc/1/b.png", strings.NewReader("0123456789"), 2, "")
	assert.True(t, errors.Is(err, ErrTooLarge))
	_, statErr := os.Stat(filepath.Join(dir, "kyc", "1", "b.png"))
	assert.True(t, os.IsNotExist(statErr))
}
