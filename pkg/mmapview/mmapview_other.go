//go:build !unix

package mmapview

import (
	"os"

	"github.com/pkg/errors"

	"github.com/rawbytedev/plain"
)

// Mapping holds a file read into an 8-byte aligned buffer on platforms
// without mmap.
type Mapping struct {
	path string
	data []byte
}

func Open(path string) (*Mapping, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "mmapview")
	}
	m := &Mapping{path: path}
	if len(raw) > 0 {
		m.data = plain.Uint64.SliceAsMutBytes(make([]uint64, (len(raw)+7)/8))[:len(raw)]
		copy(m.data, raw)
	}
	return m, nil
}

func OpenWritable(path string) (*Mapping, error) {
	return nil, errors.Errorf("mmapview: writable mappings are not supported on this platform (%s)", path)
}

func (m *Mapping) Bytes() []byte  { return m.data }
func (m *Mapping) Len() int       { return len(m.data) }
func (m *Mapping) Writable() bool { return false }
func (m *Mapping) Path() string   { return m.path }
func (m *Mapping) Sync() error    { return nil }

func (m *Mapping) Close() error {
	m.data = nil
	return nil
}
