// Package manifest reads, writes, verifies and stores checksum manifests.
//
// # Text Format
//
// The text format is compatible with sha256sum-style tools. A header line
// names the algorithm and seed of the entries that follow it:
//
//	# gxhash gxhash64 seed=42
//	9ffaa80003f79397  hello.txt
//	27c0ced979e41ef3  data/part-0001.bin
//
// A header may appear more than once; each applies until the next. Without
// any header, the algorithm is inferred from the digest length and the seed
// is 0. Names containing a backslash or newline are escaped the way
// coreutils does it: the line starts with a backslash and the name uses
// `\\` and `\n`.
//
// # JSON Format
//
// The JSON form carries the same entries plus the format version and the
// codec name:
//
//	{"version":1,"codec":"go-json","entries":[{"name":"hello.txt","algorithm":"gxhash64","seed":42,"digest":"9ffaa80003f79397"}]}
//
// # Persistence
//
// Store keeps numbered manifest versions in a blobstore.BlobStore with a
// CURRENT pointer to the latest one, and can also save and load manifests
// under arbitrary names. Names ending in .gz, .zst or .lz4 are compressed
// transparently.
package manifest
