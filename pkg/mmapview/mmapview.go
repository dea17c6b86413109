//go:build unix

// Package mmapview maps files into memory so their bytes can be viewed in
// place. Mappings start on a page boundary, so offset 0 satisfies every
// alignment a plain type can ask for.
package mmapview

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Mapping is a file mapped into memory. Views derived from Bytes are valid
// until Close.
type Mapping struct {
	path     string
	data     []byte
	writable bool
}

// Open maps path read-only. Writing through the mapping faults.
func Open(path string) (*Mapping, error) {
	return open(path, false)
}

// OpenWritable maps path shared and writable. Stores are visible to other
// mappings of the file and reach it on Sync or Close.
func OpenWritable(path string) (*Mapping, error) {
	return open(path, true)
}

func open(path string, writable bool) (*Mapping, error) {
	flag, prot := os.O_RDONLY, unix.PROT_READ
	if writable {
		flag, prot = os.O_RDWR, unix.PROT_READ|unix.PROT_WRITE
	}

	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, errors.Wrap(err, "mmapview")
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "mmapview: stat %s", path)
	}
	if !fi.Mode().IsRegular() {
		return nil, errors.Errorf("mmapview: %s is not a regular file", path)
	}

	m := &Mapping{path: path, writable: writable}
	size := fi.Size()
	if size == 0 {
		// mmap rejects zero-length mappings.
		return m, nil
	}
	if size != int64(int(size)) {
		return nil, errors.Errorf("mmapview: %s is too large to map (%d bytes)", path, size)
	}

	m.data, err = unix.Mmap(int(f.Fd()), 0, int(size), prot, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Wrapf(err, "mmapview: mmap %s", path)
	}
	return m, nil
}

// Bytes returns the mapped file contents. An empty file maps to nil.
func (m *Mapping) Bytes() []byte { return m.data }

func (m *Mapping) Len() int { return len(m.data) }

func (m *Mapping) Writable() bool { return m.writable }

func (m *Mapping) Path() string { return m.path }

// Sync flushes stores to the file.
func (m *Mapping) Sync() error {
	if !m.writable || m.data == nil {
		return nil
	}
	return errors.Wrapf(unix.Msync(m.data, unix.MS_SYNC), "mmapview: msync %s", m.path)
}

// Close unmaps the file. Any view of Bytes is invalid afterwards.
func (m *Mapping) Close() error {
	if m.data == nil {
		return nil
	}
	err := m.Sync()
	if uerr := unix.Munmap(m.data); uerr != nil && err == nil {
		err = errors.Wrapf(uerr, "mmapview: munmap %s", m.path)
	}
	m.data = nil
	return err
}
