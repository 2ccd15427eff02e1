// Package storagefs provides the narrow filesystem seam the database
// handle uses to reach disk, mirroring the teacher's fs.FS abstraction
// (internal/fs, pkg/fs in the teacher repo) scaled down to exactly what a
// single-writer, offset-addressed file format needs: positioned
// reads/writes, truncate, sync, rename and remove. There is no directory
// listing, no locking interface here — the CLI-level advisory lock (see
// internal/cli) is a separate, smaller seam.
package storagefs

import (
	"io"
	"os"
)

// File is the subset of *os.File the engine touches. Every mutation the
// engine performs targets an explicit offset, so the interface is
// ReaderAt/WriterAt rather than the stateful Read/Write/Seek trio.
type File interface {
	io.ReaderAt
	io.WriterAt
	io.Closer

	// Truncate resizes the file, used by the database handle only at
	// create time to lay down the zeroed header+slot-table prefix.
	Truncate(size int64) error

	// Sync commits the file's contents to disk. No flush guarantees
	// beyond what the underlying file system provides (spec §4.1).
	Sync() error

	// Size reports the current file length.
	Size() (int64, error)
}

// FS defines the filesystem operations the database handle and the
// compacting GC need.
type FS interface {
	// OpenFile opens or creates path with the given flags/perm, mirroring
	// os.OpenFile.
	OpenFile(path string, flag int, perm os.FileMode) (File, error)

	// Rename moves oldpath to newpath, used by GC's atomic swap.
	Rename(oldpath, newpath string) error

	// Remove deletes path, used to unlink a failed GC destination file.
	Remove(path string) error
}

// Real is the production FS implementation: a thin passthrough to os,
// grounded directly on the teacher's Real filesystem adapter.
type Real struct{}

// NewReal returns a Real filesystem.
func NewReal() *Real { return &Real{} }

func (r *Real) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}

	return realFile{f}, nil
}

func (r *Real) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }
func (r *Real) Remove(path string) error             { return os.Remove(path) }

// realFile adapts *os.File to File.
type realFile struct{ f *os.File }

func (r realFile) ReadAt(p []byte, off int64) (int, error)  { return r.f.ReadAt(p, off) }
func (r realFile) WriteAt(p []byte, off int64) (int, error) { return r.f.WriteAt(p, off) }
func (r realFile) Close() error                             { return r.f.Close() }
func (r realFile) Truncate(size int64) error                { return r.f.Truncate(size) }
func (r realFile) Sync() error                               { return r.f.Sync() }

func (r realFile) Size() (int64, error) {
	info, err := r.f.Stat()
	if err != nil {
		return 0, err
	}

	return info.Size(), nil
}

var _ FS = (*Real)(nil)
var _ File = realFile{}
