// Package assets holds the read-only asset tables served by keen-embed.
//
// A Table maps a forward-slash path, relative to the embedded root, to the
// file bytes together with a content type and a SHA-256 digest computed once
// when the table is built. Tables are populated from any fs.FS (an embed.FS
// compiled into the binary, or an os.DirFS snapshot taken at start-up) or
// from an in-memory map, and are never mutated afterwards.
//
// Because the key set is fixed, a Table can be read from any number of
// goroutines without locking. A lookup miss is a normal result, not an error.
//
// # Example Usage
//
//	//go:embed all:dist
//	var dist embed.FS
//
//	sub, _ := fs.Sub(dist, "dist")
//	table, err := assets.NewTable(sub)
//	if err != nil {
//	    log.Fatalf("Failed to load assets: %v", err)
//	}
//
//	if f, ok := table.Get("css/app.css"); ok {
//	    fmt.Println(f.ContentType, f.Size(), f.ETag())
//	}
package assets
