// Package hashing provides checksum calculation utilities for embedded assets.
//
// This package implements transparent proxies for calculating checksums of
// data streams and string collections. Asset tables use it to compute the
// SHA-256 of every file while it is being loaded (the value becomes the
// ETag) and a fingerprint of the whole table.
//
// # Components
//
//   - ChecksumReaderProxy: Calculates a digest while reading from an io.Reader
//   - ChecksumStringSet: Calculates a digest of a set of strings
//   - ChecksumProvider: Interface for types that provide checksums
//
// # Example Usage
//
// Calculating checksum while reading a file:
//
//	f, _ := fsys.Open("index.html")
//	defer f.Close()
//
//	proxy := hashing.NewSHA256ReaderProxy(f)
//	content, _ := io.ReadAll(proxy)
//
//	checksum, _ := proxy.GetChecksum()
//	fmt.Printf("Loaded %d bytes, SHA-256: %s\n", len(content), checksum)
//
// Building a fingerprint of unique strings:
//
//	set := hashing.NewChecksumStringSet()
//	set.Put("index.html:9f86d0...")
//	set.Put("css/app.css:2c26b4...")
//
//	checksum, _ := set.GetChecksum()
//
// The checksum is computed incrementally as data is read, so existing code
// that works with io.Reader does not change.
package hashing
