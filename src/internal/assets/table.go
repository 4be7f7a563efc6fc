package assets

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"sort"

	"github.com/maksimkurb/keen-embed/src/internal/errors"
	"github.com/maksimkurb/keen-embed/src/internal/hashing"
	"github.com/maksimkurb/keen-embed/src/internal/log"
	"github.com/maksimkurb/keen-embed/src/internal/utils"
)

// Provider exposes embedded files by relative path.
type Provider interface {
	// Get returns the file stored under path, or false when absent.
	Get(path string) (*File, bool)
	// Paths returns every key in lexical order.
	Paths() []string
}

// File is a single embedded asset. Data is shared between requests and
// must not be modified.
type File struct {
	Path        string
	Data        []byte
	ContentType string
	// Hash is the hex SHA-256 of Data.
	Hash string
}

// Size returns the length of the file in bytes.
func (f *File) Size() int64 {
	return int64(len(f.Data))
}

// ETag returns the strong entity tag for the file.
func (f *File) ETag() string {
	return `"` + f.Hash + `"`
}

// Table is an immutable Provider.
type Table struct {
	files       map[string]*File
	paths       []string
	fingerprint string
}

type tableOptions struct {
	sniff bool
}

// Option configures table construction.
type Option func(*tableOptions)

// WithSniffing enables content sniffing for files whose extension does not
// resolve to a known content type.
func WithSniffing(enabled bool) Option {
	return func(o *tableOptions) {
		o.sniff = enabled
	}
}

// NewTable reads every regular file of fsys into a new Table.
func NewTable(fsys fs.FS, opts ...Option) (*Table, error) {
	o := applyOptions(opts)
	b := newTableBuilder()

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			// Only links to regular files are served; directory links are not followed.
			target, err := fs.Stat(fsys, name)
			if err != nil {
				log.Debugf("Skipping dangling symlink %s: %v", name, err)
				return nil
			}
			if !target.Mode().IsRegular() {
				log.Debugf("Skipping symlink %s to non-regular file", name)
				return nil
			}
		} else if !d.Type().IsRegular() {
			log.Debugf("Skipping irregular file %s", name)
			return nil
		}

		f, err := fsys.Open(name)
		if err != nil {
			return err
		}
		defer utils.CloseOrWarn(f)

		proxy := hashing.NewSHA256ReaderProxy(f)
		data, err := io.ReadAll(proxy)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}
		hash, err := proxy.GetChecksum()
		if err != nil {
			return fmt.Errorf("failed to hash %s: %w", name, err)
		}

		b.add(&File{
			Path:        name,
			Data:        data,
			ContentType: resolveContentType(name, data, o.sniff),
			Hash:        hash,
		})
		return nil
	})
	if err != nil {
		return nil, errors.NewAssetError("failed to load asset table", err)
	}

	return b.build()
}

// NewTableFromMap builds a Table from an in-memory path to content map.
func NewTableFromMap(files map[string][]byte, opts ...Option) (*Table, error) {
	o := applyOptions(opts)
	b := newTableBuilder()

	for name, content := range files {
		if !fs.ValidPath(name) || name == "." {
			return nil, errors.NewAssetError(fmt.Sprintf("invalid asset path %q", name), nil)
		}

		data := make([]byte, len(content))
		copy(data, content)

		proxy := hashing.NewSHA256ReaderProxy(bytes.NewReader(data))
		if _, err := io.Copy(io.Discard, proxy); err != nil {
			return nil, errors.NewAssetError("failed to hash "+name, err)
		}
		hash, err := proxy.GetChecksum()
		if err != nil {
			return nil, errors.NewAssetError("failed to hash "+name, err)
		}

		b.add(&File{
			Path:        name,
			Data:        data,
			ContentType: resolveContentType(name, data, o.sniff),
			Hash:        hash,
		})
	}

	return b.build()
}

// Get returns the file stored under path.
func (t *Table) Get(path string) (*File, bool) {
	f, ok := t.files[path]
	return f, ok
}

// Paths returns a copy of the sorted key set.
func (t *Table) Paths() []string {
	out := make([]string, len(t.paths))
	copy(out, t.paths)
	return out
}

// Len returns the number of files in the table.
func (t *Table) Len() int {
	return len(t.paths)
}

// Fingerprint digests every path and file hash. Two tables with the same
// content have the same fingerprint.
func (t *Table) Fingerprint() string {
	return t.fingerprint
}

func applyOptions(opts []Option) tableOptions {
	var o tableOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type tableBuilder struct {
	files map[string]*File
	set   *hashing.ChecksumStringSet
}

func newTableBuilder() *tableBuilder {
	return &tableBuilder{
		files: make(map[string]*File),
		set:   hashing.NewChecksumStringSet(),
	}
}

func (b *tableBuilder) add(f *File) {
	b.files[f.Path] = f
	b.set.Put(f.Path + ":" + f.Hash)
	log.Debugf("Loaded asset %s (%d bytes, %s)", f.Path, len(f.Data), f.ContentType)
}

func (b *tableBuilder) build() (*Table, error) {
	paths := make([]string, 0, len(b.files))
	for p := range b.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	fingerprint, err := b.set.GetChecksum()
	if err != nil {
		return nil, errors.NewAssetError("failed to fingerprint asset table", err)
	}

	return &Table{
		files:       b.files,
		paths:       paths,
		fingerprint: fingerprint,
	}, nil
}
