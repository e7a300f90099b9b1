// Package mmap provides read-only memory mappings of local files.
//
// A Mapping backs the zero-copy path of the local blob store: digesting a
// mapped file hands the mapped bytes straight to the hash provider as a
// borrowed view, with no intermediate read buffer.
//
// # Usage
//
//	m, err := mmap.Open("payload.bin")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	sum := gxhash.Sum64(m.Bytes(), 0)
//
// # Lifetime
//
// Bytes and Range return slices that alias the mapping. They are valid only
// until Close; touching them afterwards faults. Close is idempotent.
//
// # Platform Support
//
//   - Unix: mmap(2) with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile (Advise is a no-op)
package mmap
