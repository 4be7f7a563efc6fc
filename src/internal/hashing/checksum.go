package hashing

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"sort"
)

type ChecksumProvider interface {
	GetChecksum() (string, error)
}

// ChecksumReaderProxy calculates the checksum of data as it's read.
type ChecksumReaderProxy struct {
	reader      io.Reader
	checksum    hash.Hash
	checksumErr error
}

// NewReaderProxy creates a ChecksumReaderProxy using the given hash.
func NewReaderProxy(reader io.Reader, h hash.Hash) *ChecksumReaderProxy {
	return &ChecksumReaderProxy{
		reader:   reader,
		checksum: h,
	}
}

// NewSHA256ReaderProxy creates a ChecksumReaderProxy computing SHA-256.
func NewSHA256ReaderProxy(reader io.Reader) *ChecksumReaderProxy {
	return NewReaderProxy(reader, sha256.New())
}

// NewMD5ReaderProxy creates a ChecksumReaderProxy computing MD5.
func NewMD5ReaderProxy(reader io.Reader) *ChecksumReaderProxy {
	return NewReaderProxy(reader, md5.New())
}

// Read reads data from the underlying reader and feeds it into the checksum.
func (p *ChecksumReaderProxy) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 {
		if _, checksumErr := p.checksum.Write(buf[:n]); checksumErr != nil {
			p.checksumErr = checksumErr
			return n, checksumErr
		}
	}
	return n, err
}

// GetChecksum returns the calculated checksum as a hex string.
func (p *ChecksumReaderProxy) GetChecksum() (string, error) {
	if p.checksumErr == nil {
		return hex.EncodeToString(p.checksum.Sum(nil)), nil
	}
	return "", p.checksumErr
}

// ChecksumStringSet collects unique strings and digests them in sorted
// order, so the result does not depend on insertion order.
type ChecksumStringSet struct {
	set map[string]struct{}
}

func NewChecksumStringSet() *ChecksumStringSet {
	return &ChecksumStringSet{
		set: make(map[string]struct{}),
	}
}

func (s *ChecksumStringSet) Put(str string) {
	s.set[str] = struct{}{}
}

func (s *ChecksumStringSet) Size() int {
	return len(s.set)
}

func (s *ChecksumStringSet) Map() map[string]struct{} {
	return s.set
}

func (s *ChecksumStringSet) GetChecksum() (string, error) {
	keys := make([]string, 0, len(s.set))
	for k := range s.set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	for _, k := range keys {
		if _, err := io.WriteString(h, k+"\n"); err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
