//go:build unix

package mmapview

import (
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/plain"
	"github.com/rawbytedev/plain/pkg/recfile"
)

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.rec")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestOpenRecfile(t *testing.T) {
	data, err := recfile.Encode(plain.Uint64, []uint64{3, 1, 4, 1, 5})
	require.NoError(t, err)
	path := writeTemp(t, data)

	m, err := Open(path)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, len(data), m.Len())
	assert.False(t, m.Writable())
	assert.Zero(t, uintptr(unsafe.Pointer(unsafe.SliceData(m.Bytes())))%8)

	f, err := recfile.Decode(plain.Uint64, m.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 1, 4, 1, 5}, f.Records)
}

func TestWritableMapping(t *testing.T) {
	data, err := recfile.Encode(plain.Uint32, []uint32{1, 2, 3})
	require.NoError(t, err)
	path := writeTemp(t, data)

	m, err := OpenWritable(path)
	require.NoError(t, err)

	words, err := plain.Uint32.SliceFromMutBytesLen(m.Bytes()[recfile.HeaderSize:], 3)
	require.NoError(t, err)
	words[2] = 30
	require.NoError(t, m.Sync())
	require.NoError(t, m.Close())
	assert.Nil(t, m.Bytes())

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	var last uint32
	require.NoError(t, plain.Uint32.CopyFromBytes(&last, onDisk[recfile.HeaderSize+8:]))
	assert.Equal(t, uint32(30), last)
}

func TestEmptyFile(t *testing.T) {
	m, err := Open(writeTemp(t, nil))
	require.NoError(t, err)
	assert.Nil(t, m.Bytes())
	assert.Zero(t, m.Len())
	assert.NoError(t, m.Close())

	_, err = recfile.ParseHeader(m.Bytes())
	require.ErrorIs(t, err, recfile.ErrTruncated)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Open(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a regular file")
}
