// Package fs abstracts the file operations behind blobstore.LocalStore's
// write path so tests can inject I/O failures.
//
// Production code uses [Default]. Tests wrap it in a [FaultyFS]:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailOnSync: true})
//
// Reads go through internal/mmap and are not covered.
package fs
