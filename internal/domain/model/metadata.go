package model

// MetadataEntry is a single key/value row in the metadata table. Keys are
// unique; values are opaque text owned by whoever writes them.
type MetadataEntry struct {
	Key   string
	Value string
}
